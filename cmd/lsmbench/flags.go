package main

import (
	"os"

	"github.com/cockroachdb/errors"
	"github.com/hashicorp/go-hclog"
	"github.com/spf13/pflag"

	"github.com/moguls753/lsm-bench/internal/config"
)

// globalOptions are the flags shared by every report
type globalOptions struct {
	configPath  string
	logLevel    string
	outputDir   string
	format      string
	csv         bool
	postgresDSN string
}

var global globalOptions

func addGlobalFlags(fs *pflag.FlagSet, o *globalOptions) {
	fs.StringVarP(&o.configPath, "config", "c", "", "YAML configuration file")
	fs.StringVar(&o.logLevel, "log-level", "info", "log level (trace, debug, info, warn, error)")
	fs.StringVar(&o.outputDir, "out", "plots", "directory for charts and CSV files")
	fs.StringVar(&o.format, "format", "html", "chart format (html, png, svg, pdf)")
	fs.BoolVar(&o.csv, "csv", false, "also write the assembled series as CSV")
	fs.StringVar(&o.postgresDSN, "postgres-dsn", "", "store results in this Postgres database")
}

// loadConfig layers explicitly set flags over the file and environment, then
// validates the result.
func loadConfig(fs *pflag.FlagSet, o globalOptions) (config.Config, error) {
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return config.Config{}, err
	}

	if fs.Changed("log-level") {
		cfg.LogLevel = o.logLevel
	}
	if fs.Changed("out") {
		cfg.OutputDir = o.outputDir
	}
	if fs.Changed("format") {
		cfg.Format = o.format
	}
	if fs.Changed("csv") {
		cfg.CSV = o.csv
	}
	if fs.Changed("postgres-dsn") {
		cfg.PostgresDSN = o.postgresDSN
	}

	if err := cfg.Validate(); err != nil {
		return config.Config{}, errors.Wrap(err, "invalid configuration")
	}
	return cfg, nil
}

func newLogger(level string) hclog.Logger {
	return hclog.New(&hclog.LoggerOptions{
		Name:   "lsmbench",
		Level:  hclog.LevelFromString(level),
		Output: os.Stderr,
	})
}
