package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/souper/internal/config"
	"github.com/matzehuels/souper/pkg/pipeline"
)

// scanFlags holds the command-line flags shared by scan, watch and the root
// command. Values left unset fall back to .souper.yaml, then to defaults.
type scanFlags struct {
	output      string   // report path
	dir         string   // scan root
	exclude     []string // directories or glob patterns to skip
	meta        []string // default metadata keys
	jobs        int      // parallel extractions
	check       bool     // compare instead of write
	metricsFile string   // Prometheus textfile destination
	config      string   // explicit config file
}

// register adds the flags to cmd. The --check flag is only meaningful for a
// one-shot scan.
func (f *scanFlags) register(cmd *cobra.Command, withCheck bool) {
	fs := cmd.Flags()
	fs.StringVarP(&f.output, "output", "o", "", "report file (default: "+config.DefaultOutput+")")
	fs.StringVarP(&f.dir, "dir", "d", ".", "directory to scan")
	fs.StringArrayVarP(&f.exclude, "exclude", "e", nil, "directory or glob pattern to skip (repeatable)")
	fs.StringArrayVarP(&f.meta, "meta", "m", nil, "metadata key added to new dependencies (repeatable)")
	fs.IntVar(&f.jobs, "jobs", 0, "manifests parsed in parallel (default: number of CPUs)")
	fs.StringVar(&f.metricsFile, "metrics-file", "", "write Prometheus metrics to this file after the run")
	fs.StringVar(&f.config, "config", "", "config file (default: <dir>/"+config.FileName+")")
	if withCheck {
		fs.BoolVar(&f.check, "check", false, "fail if the report is out of date instead of writing it")
	}

	_ = cmd.MarkFlagFilename("output", "json")
	_ = cmd.MarkFlagDirname("dir")
	_ = cmd.MarkFlagFilename("config", "yaml", "yml")
}

// resolve merges the flags with the project configuration.
func (f *scanFlags) resolve(cmd *cobra.Command) (config.Config, error) {
	flags := config.Flags{
		Root:   f.dir,
		Output: f.output,
		Jobs:   f.jobs,
		Config: f.config,
	}
	if cmd.Flags().Changed("exclude") {
		flags.Exclude = append([]string{}, f.exclude...)
	}
	if cmd.Flags().Changed("meta") {
		flags.Meta = append([]string{}, f.meta...)
	}
	return config.Resolve(flags)
}

// options converts a resolved configuration into pipeline options.
func (f *scanFlags) options(cfg config.Config) pipeline.Options {
	return pipeline.Options{
		Root:    cfg.Root,
		Output:  cfg.Output,
		Exclude: cfg.Exclude,
		Meta:    cfg.Meta,
		Jobs:    cfg.Jobs,
		Check:   f.check,
	}
}
