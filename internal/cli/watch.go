package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/matzehuels/souper/pkg/scan"
	"github.com/matzehuels/souper/pkg/watch"
)

// watchCommand creates the watch command for keeping a report current.
func (c *CLI) watchCommand() *cobra.Command {
	flags := &scanFlags{}
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Scan, then update the report whenever a manifest changes",
		Long: `Watch performs a scan and keeps running. Every time a supported manifest is
created, changed or removed it scans again and rewrites the report. Unchanged
manifests are served from an in-memory cache.

A failed scan (for example a manifest saved half-edited) is reported and
the report is left alone until the next change. Stop with Ctrl-C.`,
		Example: `  # Keep soups.json in sync while you work
  souper watch

  # Watch another checkout with a custom report location
  souper watch -d ./repo -o ./repo/docs/soups.json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runWatch(cmd, flags)
		},
	}
	flags.register(cmd, false)
	return cmd
}

func (c *CLI) runWatch(cmd *cobra.Command, flags *scanFlags) error {
	cfg, err := flags.resolve(cmd)
	if err != nil {
		return err
	}
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	base := loggerFromContext(ctx)

	walker, err := scan.NewWalker(cfg.Root, cfg.Exclude)
	if err != nil {
		return err
	}
	runner, err := c.newRunner(base, true)
	if err != nil {
		return err
	}
	opts := flags.options(cfg)

	cycle := func(ctx context.Context) {
		logger, runID := withRun(base)
		runner.Logger = logger
		prog := newProgress(logger)
		res, err := runner.Execute(ctx, opts)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			printError(c.Out, "scan %s failed: %v", runID, err)
			return
		}
		prog.done("scan complete")
		c.printResult(res, cfg.Output)
	}

	cycle(ctx)
	printInfo(c.Out, "Watching %s for manifest changes (Ctrl-C to stop)", walker.Root())

	return watch.Run(ctx, watch.Options{
		Root:   walker.Root(),
		Skip:   walker.SkipDir,
		Match:  walker.Matches,
		Logger: base,
	}, func(ctx context.Context, changed []string) error {
		base.Debug("manifests changed", "paths", changed)
		cycle(ctx)
		return nil
	})
}
