package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/urfave/cli/v3"
	"github.com/wanderwise/wander/internal/formatter"
	"github.com/wanderwise/wander/internal/models"
	"github.com/wanderwise/wander/internal/shared"
)

// TripSave saves a trip plan from a JSON file.
func (r *Runner) TripSave(ctx context.Context, cmd *cli.Command) error {
	path := cmd.String("file")
	if path == "" {
		return fmt.Errorf("%w: --file is required", shared.ErrMissingArgument)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read trip plan file: %w", err)
	}

	var plan models.TripPlan
	if err := json.Unmarshal(data, &plan); err != nil {
		return fmt.Errorf("%w: %v", shared.ErrInvalidInput, err)
	}

	result := r.trips.Save(plan)
	if !result.OK {
		return fmt.Errorf("failed to save trip plan: %w", result.Err)
	}

	r.writePlain("✓ Trip plan saved: %s (#%d)\n", plan.TripName, result.ID)
	return nil
}

// TripList lists all saved trip plans.
func (r *Runner) TripList(ctx context.Context, cmd *cli.Command) error {
	plans := r.trips.All()

	if cmd.Bool("json") {
		return r.writeJSON(plans, cmd.Bool("pretty"))
	}

	if len(plans) == 0 {
		r.writePlain("No trip plans saved.\n")
		return nil
	}

	r.writePlain("Found %d trip plans:\n\n", len(plans))
	for i, p := range plans {
		r.writePlain("%d. %s (#%d)\n", i+1, p.TripName, p.ID)
		r.writePlain("   Destination: %s\n", p.Destination)
		r.writePlain("   Dates: %s to %s\n", p.StartDate, p.EndDate)
		r.writePlain("   Activities: %d\n", len(p.Activities))
		r.writePlain("\n")
	}

	return nil
}

// TripShow prints a single trip plan by its numeric ID.
func (r *Runner) TripShow(ctx context.Context, cmd *cli.Command) error {
	raw := cmd.StringArg("id")
	if raw == "" {
		return fmt.Errorf("%w: trip plan ID is required", shared.ErrMissingArgument)
	}

	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return fmt.Errorf("%w: trip plan ID must be numeric", shared.ErrInvalidArgument)
	}

	plan := r.trips.ByID(id)
	if plan == nil {
		return fmt.Errorf("%w: trip plan #%d", shared.ErrNotFound, id)
	}

	if cmd.Bool("json") {
		return r.writeJSON(plan, cmd.Bool("pretty"))
	}

	r.output.Write(formatter.TripPlanToMarkdown(*plan))
	return nil
}

// TripExport exports all trip plans to CSV or Markdown.
func (r *Runner) TripExport(ctx context.Context, cmd *cli.Command) error {
	format := strings.ToLower(cmd.String("format"))
	outputFile := cmd.String("output")

	plans := r.trips.All()
	if len(plans) == 0 {
		r.writePlain("No trip plans to export.\n")
		return nil
	}

	var data []byte
	var err error

	switch format {
	case "csv":
		if data, err = formatter.TripPlansToCSV(plans); err != nil {
			return fmt.Errorf("failed to format trip plans: %w", err)
		}
	case "markdown", "md":
		var b strings.Builder
		for _, p := range plans {
			b.Write(formatter.TripPlanToMarkdown(p))
			b.WriteString("\n")
		}
		data = []byte(b.String())
	default:
		return fmt.Errorf("%w: unsupported format %q (csv, markdown)", shared.ErrInvalidFlag, format)
	}

	if outputFile == "" {
		r.output.Write(data)
		return nil
	}

	if err := os.WriteFile(outputFile, data, 0644); err != nil {
		return fmt.Errorf("failed to write export file: %w", err)
	}

	r.writePlain("✓ Exported %d trip plans to %s\n", len(plans), outputFile)
	return nil
}

func tripCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "trip",
		Usage: "Manage trip plans",
		Commands: []*cli.Command{
			{
				Name:  "save",
				Usage: "Save a trip plan from a JSON file",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "file",
						Aliases:  []string{"f"},
						Usage:    "Path to a JSON trip plan document",
						Required: true,
					},
				},
				Action: r.TripSave,
			},
			{
				Name:  "list",
				Usage: "List saved trip plans",
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "json", Usage: "Output as JSON"},
					&cli.BoolFlag{Name: "pretty", Usage: "Pretty-print JSON output"},
				},
				Action: r.TripList,
			},
			{
				Name:      "show",
				Usage:     "Show a trip plan by ID",
				Arguments: []cli.Argument{&cli.StringArg{Name: "id"}},
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "json", Usage: "Output as JSON"},
					&cli.BoolFlag{Name: "pretty", Usage: "Pretty-print JSON output"},
				},
				Action: r.TripShow,
			},
			{
				Name:  "export",
				Usage: "Export all trip plans to CSV or Markdown",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "format",
						Aliases: []string{"F"},
						Usage:   "Export format: csv or markdown",
						Value:   "csv",
					},
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Write to file instead of stdout",
					},
				},
				Action: r.TripExport,
			},
		},
	}
}
