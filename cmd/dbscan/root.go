package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/TrevorS/dbscan"
	"github.com/TrevorS/dbscan/internal/dataset"
	"github.com/TrevorS/dbscan/internal/logging"
)

const (
	outputTable = "table"
	outputJSON  = "json"
)

// jsonResult is the --output json document.
type jsonResult struct {
	Labels      []int  `json:"labels"`
	CoreSamples []bool `json:"core_samples"`
	Clusters    int    `json:"clusters"`
	Noise       int    `json:"noise"`
	Algorithm   string `json:"algorithm"`
}

func newRootCmd() *cobra.Command {
	v := viper.New()

	cmd := &cobra.Command{
		Use:   "dbscan [file]",
		Short: "Cluster points with DBSCAN",
		Long: `Cluster points with DBSCAN (density-based spatial clustering of
applications with noise).

Points are read from a JSON, YAML or CSV file. Each point gets a cluster ID
(1, 2, ...) or -1 for noise. Without a file the built-in sample is used.

Examples:
  dbscan                                  # cluster the built-in sample
  dbscan --eps 0.3 --min-pts 10 pts.csv   # cluster a CSV file
  dbscan --metric manhattan -o json pts.json`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			return loadConfig(v, cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := logging.New(v.GetBool("verbose"), v.GetBool("json-logs"))
			if err != nil {
				return errors.Wrap(err, "initialize logger")
			}
			defer func() { _ = logger.Sync() }()

			return run(cmd.OutOrStdout(), v, args, logger)
		},
	}

	flags := cmd.Flags()
	flags.Float64("eps", 2, "neighborhood radius")
	flags.Int("min-pts", 2, "minimum neighborhood size (point included) of a core point")
	flags.String("metric", "euclidean", "distance metric: euclidean, manhattan, chebyshev, minkowski, cosine")
	flags.Float64("p", 2, "Minkowski exponent (with --metric minkowski)")
	flags.String("algorithm", string(dbscan.AlgorithmAuto), "region query strategy: auto, brute, kdtree")
	flags.Int("leaf-size", 40, "KD-tree leaf size")
	flags.Int("workers", 0, "goroutines precomputing neighborhoods (0 = all CPUs)")
	flags.StringP("output", "o", outputTable, "output format: table, json")
	flags.String("config", "", "YAML config file with flag values")
	flags.BoolP("verbose", "v", false, "enable debug logging")
	flags.Bool("json-logs", false, "emit logs as JSON")

	return cmd
}

// loadConfig layers flag values over environment variables over the
// optional config file over flag defaults.
func loadConfig(v *viper.Viper, cmd *cobra.Command) error {
	v.SetEnvPrefix("DBSCAN")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if err := v.BindPFlags(cmd.Flags()); err != nil {
		return errors.Wrap(err, "bind flags")
	}

	if path := v.GetString("config"); path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return errors.Wrapf(err, "read config file %s", path)
		}
	}
	return nil
}

// buildConfig turns the resolved settings into a clustering config.
func buildConfig(v *viper.Viper, logger *zap.Logger) (dbscan.Config, error) {
	metric, err := dbscan.ParseMetric(v.GetString("metric"), v.GetFloat64("p"))
	if err != nil {
		return dbscan.Config{}, err
	}

	cfg := dbscan.DefaultConfig()
	cfg.Eps = v.GetFloat64("eps")
	cfg.MinPts = v.GetInt("min-pts")
	cfg.Metric = metric
	cfg.Algorithm = dbscan.Algorithm(strings.ToLower(v.GetString("algorithm")))
	cfg.LeafSize = v.GetInt("leaf-size")
	cfg.Workers = v.GetInt("workers")
	cfg.Logger = logger
	return cfg, nil
}

func run(w io.Writer, v *viper.Viper, args []string, logger *zap.Logger) error {
	output := strings.ToLower(v.GetString("output"))
	if output != outputTable && output != outputJSON {
		return errors.Newf("unknown output format %q", output)
	}

	points := dataset.Sample()
	source := "built-in sample"
	if len(args) == 1 {
		var err error
		if points, err = dataset.Load(args[0]); err != nil {
			return err
		}
		source = args[0]
	}
	logger.Debug("loaded points", zap.String("source", source), zap.Int("count", len(points)))

	cfg, err := buildConfig(v, logger)
	if err != nil {
		return err
	}

	result, err := dbscan.Cluster(points, cfg)
	if err != nil {
		return err
	}
	logger.Info("clustered points",
		zap.String("source", source),
		zap.Int("points", len(points)),
		zap.Int("clusters", result.NumClusters),
		zap.Int("noise", result.NoiseCount()),
	)

	if output == outputJSON {
		return writeJSON(w, result)
	}
	return writeTable(w, points, result)
}

func writeJSON(w io.Writer, result *dbscan.Result) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(jsonResult{
		Labels:      result.Labels,
		CoreSamples: result.CoreSamples,
		Clusters:    result.NumClusters,
		Noise:       result.NoiseCount(),
		Algorithm:   string(result.Algorithm),
	})
}

func writeTable(w io.Writer, points [][]float64, result *dbscan.Result) error {
	rows := pterm.TableData{{"Index", "Point", "Label", "Core"}}
	for i, p := range points {
		label := strconv.Itoa(result.Labels[i])
		if result.Labels[i] == dbscan.Noise {
			label = "noise"
		}
		core := ""
		if result.CoreSamples[i] {
			core = "yes"
		}
		rows = append(rows, []string{strconv.Itoa(i), formatPoint(p), label, core})
	}

	table, err := pterm.DefaultTable.WithHasHeader().WithData(rows).Srender()
	if err != nil {
		return errors.Wrap(err, "render table")
	}
	_, err = fmt.Fprintf(w, "%s\n%d clusters, %d noise points\n", table, result.NumClusters, result.NoiseCount())
	return err
}

func formatPoint(p []float64) string {
	parts := make([]string, len(p))
	for i, v := range p {
		parts[i] = strconv.FormatFloat(v, 'g', -1, 64)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}
