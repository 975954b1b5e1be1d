// Package dataset loads point sets for clustering from JSON, YAML and CSV
// files.
//
// JSON and YAML files hold either a bare list of points or a document with a
// "points" key:
//
//	[[1, 2], [2, 2], [2, 3]]
//	{"points": [[1, 2], [2, 2], [2, 3]]}
//
// CSV files hold one point per row. A first row that does not parse as
// numbers is treated as a header and skipped.
package dataset

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
	"gopkg.in/yaml.v3"
)

// Format identifies a point set encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatCSV  Format = "csv"
)

// ErrUnknownFormat is returned for file extensions with no decoder.
var ErrUnknownFormat = errors.New("unknown dataset format")

type pointsDocument struct {
	Points [][]float64 `json:"points" yaml:"points"`
}

// Sample returns the demonstration dataset: two dense groups and one
// outlier, which clusters into {0,1,2}, {3,4,6,7} and noise at eps 2,
// minPts 2.
func Sample() [][]float64 {
	return [][]float64{
		{1, 2}, {2, 2}, {2, 3}, {8, 7},
		{8, 8}, {25, 80}, {8, 6}, {7, 7},
	}
}

// FormatFromPath picks the format from the file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".csv":
		return FormatCSV, nil
	default:
		return "", errors.Wrapf(ErrUnknownFormat, "%s", path)
	}
}

// Load reads the point set stored at path.
func Load(path string) ([][]float64, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "open dataset %s", path)
	}
	defer f.Close()

	points, err := Decode(f, format)
	if err != nil {
		return nil, errors.Wrapf(err, "load dataset %s", path)
	}
	return points, nil
}

// Decode reads a point set in the given format from r.
func Decode(r io.Reader, format Format) ([][]float64, error) {
	switch format {
	case FormatJSON:
		return decodeJSON(r)
	case FormatYAML:
		return decodeYAML(r)
	case FormatCSV:
		return decodeCSV(r)
	default:
		return nil, errors.Wrapf(ErrUnknownFormat, "%q", format)
	}
}

func decodeJSON(r io.Reader) ([][]float64, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, "read json")
	}
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return [][]float64{}, nil
	}

	if raw[0] == '{' {
		var doc pointsDocument
		if err := json.Unmarshal(raw, &doc); err != nil {
			return nil, errors.Wrap(err, "decode json document")
		}
		return orEmpty(doc.Points), nil
	}

	var points [][]float64
	if err := json.Unmarshal(raw, &points); err != nil {
		return nil, errors.Wrap(err, "decode json points")
	}
	return orEmpty(points), nil
}

func decodeYAML(r io.Reader) ([][]float64, error) {
	var root yaml.Node
	if err := yaml.NewDecoder(r).Decode(&root); err != nil {
		if errors.Is(err, io.EOF) {
			return [][]float64{}, nil
		}
		return nil, errors.Wrap(err, "decode yaml")
	}

	node := &root
	if node.Kind == yaml.DocumentNode && len(node.Content) > 0 {
		node = node.Content[0]
	}

	if node.Kind == yaml.MappingNode {
		var doc pointsDocument
		if err := node.Decode(&doc); err != nil {
			return nil, errors.Wrap(err, "decode yaml document")
		}
		return orEmpty(doc.Points), nil
	}

	var points [][]float64
	if err := node.Decode(&points); err != nil {
		return nil, errors.Wrap(err, "decode yaml points")
	}
	return orEmpty(points), nil
}

func decodeCSV(r io.Reader) ([][]float64, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1 // ragged rows are reported by the clusterer
	reader.TrimLeadingSpace = true
	reader.Comment = '#'

	points := [][]float64{}
	for n := 1; ; n++ {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, errors.Wrap(err, "read csv")
		}

		point, err := parseRecord(record)
		if err != nil {
			if n == 1 {
				continue // header
			}
			return nil, errors.Wrapf(err, "csv record %d", n)
		}
		points = append(points, point)
	}
	return points, nil
}

func parseRecord(record []string) ([]float64, error) {
	point := make([]float64, len(record))
	for i, field := range record {
		v, err := strconv.ParseFloat(strings.TrimSpace(field), 64)
		if err != nil {
			return nil, errors.Wrapf(err, "column %d", i+1)
		}
		point[i] = v
	}
	return point, nil
}

func orEmpty(points [][]float64) [][]float64 {
	if points == nil {
		return [][]float64{}
	}
	return points
}
