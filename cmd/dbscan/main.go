// Command dbscan clusters a point set with DBSCAN and prints one label per
// point.
//
// Usage:
//
//	dbscan [flags] [points.json|points.yaml|points.csv]
//
// Without a file it clusters a small built-in sample. Flags may also be set
// in a YAML file given with --config or through DBSCAN_* environment
// variables (DBSCAN_EPS, DBSCAN_MIN_PTS, ...).
package main

import (
	"os"

	"github.com/cockroachdb/errors"
	"github.com/pterm/pterm"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		pterm.Error.Println(err.Error())
		for _, hint := range errors.GetAllHints(err) {
			pterm.Info.Println(hint)
		}
		os.Exit(1)
	}
}
