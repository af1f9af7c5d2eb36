package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/urfave/cli/v3"
	"github.com/wanderwise/wander/internal/shared"
	"github.com/wanderwise/wander/internal/tasks"
)

// OfflinePin pins one or more guides for offline use, reporting progress as
// each guide is stored.
func (r *Runner) OfflinePin(ctx context.Context, cmd *cli.Command) error {
	ids := cmd.StringArgs("ids")
	if len(ids) == 0 {
		return fmt.Errorf("%w: at least one guide ID is required", shared.ErrMissingArgument)
	}

	r.logger.Infof("pinning %d guides for offline use", len(ids))

	result, err := r.runPinJob(ctx, func(prog chan<- tasks.ProgressUpdate) (*tasks.PinRunResult, error) {
		return r.pinner.Run(ctx, ids, prog)
	})
	if err != nil {
		return err
	}

	r.reportPinResult(result)
	return nil
}

// OfflineUnpin removes a guide from the offline set. The cached guide itself
// is kept.
func (r *Runner) OfflineUnpin(ctx context.Context, cmd *cli.Command) error {
	id := cmd.StringArg("id")
	if id == "" {
		return fmt.Errorf("%w: guide ID is required", shared.ErrMissingArgument)
	}

	if err := r.guides.Unpin(id); err != nil {
		return fmt.Errorf("failed to unpin guide: %w", err)
	}

	r.writePlain("✓ Guide %s removed from offline set\n", id)
	return nil
}

// OfflineList lists all pinned guides.
func (r *Runner) OfflineList(ctx context.Context, cmd *cli.Command) error {
	pins := r.guides.Pinned()

	if cmd.Bool("json") {
		return r.writeJSON(pins, cmd.Bool("pretty"))
	}

	if len(pins) == 0 {
		r.writePlain("No guides pinned for offline use.\n")
		return nil
	}

	r.writePlain("%d guides available offline:\n\n", len(pins))
	for i, p := range pins {
		r.writePlain("%d. %s, %s\n", i+1, p.Destination, p.Country)
		r.writePlain("   ID: %s\n", p.ID)
		r.writePlain("   Pinned: %s\n", p.PinnedAt.Format("2006-01-02 15:04"))
		r.writePlain("\n")
	}

	return nil
}

// OfflineRefresh re-stores every pinned guide from the cache, typically run
// after connectivity returns.
func (r *Runner) OfflineRefresh(ctx context.Context, cmd *cli.Command) error {
	if !r.netMonitor().Online() {
		r.writePlain("⚠ Currently offline; refresh will use cached content only.\n")
	}

	result, err := r.runPinJob(ctx, func(prog chan<- tasks.ProgressUpdate) (*tasks.PinRunResult, error) {
		return r.pinner.RefreshPinned(ctx, prog)
	})
	if err != nil {
		return err
	}

	r.reportPinResult(result)
	return nil
}

// OfflineStatus prints the current connectivity state and pin counts.
func (r *Runner) OfflineStatus(ctx context.Context, cmd *cli.Command) error {
	online := r.netMonitor().Online()
	pins := r.guides.Pinned()

	if cmd.Bool("json") {
		return r.writeJSON(map[string]any{
			"online":        online,
			"pinned_guides": len(pins),
		}, cmd.Bool("pretty"))
	}

	if online {
		r.writePlain("Network: online\n")
	} else {
		r.writePlain("Network: offline\n")
	}
	r.writePlain("Pinned guides: %d\n", len(pins))

	return nil
}

// runPinJob drains progress updates on a goroutine while the job runs.
func (r *Runner) runPinJob(ctx context.Context, job func(chan<- tasks.ProgressUpdate) (*tasks.PinRunResult, error)) (*tasks.PinRunResult, error) {
	prog := make(chan tasks.ProgressUpdate, 50)
	done := make(chan struct{})

	go func() {
		defer close(done)
		for update := range prog {
			if update.Phase == tasks.Done {
				continue
			}
			r.writePlain("[%d/%d] %s\n", update.Step, update.Total, update.Message)
		}
	}()

	result, err := job(prog)
	close(prog)
	<-done

	if err != nil {
		return nil, fmt.Errorf("pin job failed: %w", err)
	}
	return result, nil
}

func (r *Runner) reportPinResult(result *tasks.PinRunResult) {
	r.writePlain("\n✓ %d of %d guides stored for offline use\n", result.Pinned, result.Requested)
	if len(result.Missing) > 0 {
		r.writePlain("⚠ Not found: %s\n", strings.Join(result.Missing, ", "))
	}
	if len(result.Failed) > 0 {
		r.writePlain("⚠ Failed: %s\n", strings.Join(result.Failed, ", "))
	}
}

func offlineCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "offline",
		Usage: "Pin guides for offline use and inspect connectivity",
		Commands: []*cli.Command{
			{
				Name:      "pin",
				Usage:     "Store one or more guides for offline use",
				Arguments: []cli.Argument{&cli.StringArgs{Name: "ids", Min: 1, Max: -1}},
				Action:    r.OfflinePin,
			},
			{
				Name:      "unpin",
				Usage:     "Remove a guide from the offline set",
				Arguments: []cli.Argument{&cli.StringArg{Name: "id"}},
				Action:    r.OfflineUnpin,
			},
			{
				Name:  "list",
				Usage: "List guides available offline",
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "json", Usage: "Output as JSON"},
					&cli.BoolFlag{Name: "pretty", Usage: "Pretty-print JSON output"},
				},
				Action: r.OfflineList,
			},
			{
				Name:   "refresh",
				Usage:  "Re-store all pinned guides",
				Action: r.OfflineRefresh,
			},
			{
				Name:  "status",
				Usage: "Show connectivity state and pin counts",
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "json", Usage: "Output as JSON"},
					&cli.BoolFlag{Name: "pretty", Usage: "Pretty-print JSON output"},
				},
				Action: r.OfflineStatus,
			},
		},
	}
}
