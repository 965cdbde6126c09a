package cli

import (
	"context"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/souper/pkg/observability"
	"github.com/matzehuels/souper/pkg/pipeline"
)

// scanCommand creates the scan command for updating a report from the tree.
func (c *CLI) scanCommand() *cobra.Command {
	flags := &scanFlags{}
	cmd := &cobra.Command{
		Use:   "scan",
		Short: "Scan manifests and update the SOUP report",
		Long: `Scan walks the directory tree, extracts dependencies from every supported
manifest and merges them into the report. Metadata recorded for a dependency
survives as long as the dependency is still declared somewhere.

With --check the report is not written. The command fails if writing it
would change anything, which makes it usable as a CI gate.`,
		Example: `  # Scan the current directory into soups.json
  souper scan

  # Scan a checkout, skipping test fixtures
  souper scan -d ./repo -e 'testdata' -e '**/fixtures/**'

  # Add annotation keys to newly found dependencies
  souper scan -m requirements -m risk

  # Fail in CI when the report is stale
  souper scan --check`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runScan(cmd, flags)
		},
	}
	flags.register(cmd, true)
	return cmd
}

// runScan executes one scan and prints a summary.
func (c *CLI) runScan(cmd *cobra.Command, flags *scanFlags) error {
	cfg, err := flags.resolve(cmd)
	if err != nil {
		return err
	}
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	logger, _ := withRun(loggerFromContext(ctx))
	logger.Debug("starting scan", "root", cfg.Root, "output", cfg.Output, "jobs", cfg.Jobs)

	if flags.metricsFile != "" {
		hooks := observability.NewPrometheusHooks()
		observability.SetScanHooks(hooks)
		observability.SetCacheHooks(hooks)
		defer func() {
			if err := hooks.WriteTextfile(flags.metricsFile); err != nil {
				logger.Warn("metrics not written", "error", err)
			}
			observability.Reset()
		}()
	}

	runner, err := c.newRunner(logger, false)
	if err != nil {
		return err
	}

	res, err := c.execute(ctx, runner, flags.options(cfg), logger)
	if err != nil {
		return err
	}
	logger.Debug("scan finished", "hash", res.Hash)

	c.printResult(res, cfg.Output)
	return pipeline.CheckError(res, cfg.Output)
}

// execute runs the pipeline behind a spinner unless debug logging is on, in
// which case the log lines already show progress.
func (c *CLI) execute(ctx context.Context, runner *pipeline.Runner, opts pipeline.Options, logger *log.Logger) (*pipeline.Result, error) {
	if logger.GetLevel() <= log.DebugLevel {
		return runner.Execute(ctx, opts)
	}
	spinner := newSpinner(ctx, os.Stderr, "Scanning manifests...")
	spinner.Start()
	res, err := runner.Execute(ctx, opts)
	spinner.Stop()
	return res, err
}

// printResult prints the outcome of a scan.
func (c *CLI) printResult(res *pipeline.Result, output string) {
	w := c.Out
	first := len(res.Base) == 0
	switch {
	case res.Outdated:
		printWarning(w, "%s is out of date", output)
	case !res.Changed() && !first:
		printSuccess(w, "%s is up to date", output)
	case res.Written:
		printSuccess(w, "Updated %s", output)
	default:
		printSuccess(w, "%s is up to date", output)
	}
	printStats(w, res.Stats, res.Changes)
	printChanges(w, res.Changes, maxChangeLines)
	if n := res.MetaChanges(); n > 0 {
		printDetail(w, "metadata changed on %d dependencies", n)
	}
	if res.Written {
		printFile(w, output)
	}
	if first && res.Written && res.Snapshot.Count() > 0 {
		printNextStep(w, "Review the report", "souper show -o "+output)
	}
}
