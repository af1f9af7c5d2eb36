package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/urfave/cli/v3"
	"github.com/wanderwise/wander/internal/formatter"
	"github.com/wanderwise/wander/internal/models"
	"github.com/wanderwise/wander/internal/shared"
)

// GuideList lists all cached destination guides.
func (r *Runner) GuideList(ctx context.Context, cmd *cli.Command) error {
	useJSON := cmd.Bool("json")
	pretty := cmd.Bool("pretty")

	guides := r.guides.AllGuides()

	if useJSON {
		return r.writeJSON(guides, pretty)
	}

	if len(guides) == 0 {
		r.writePlain("No guides cached. Run 'wander setup --seed' to import the starter catalog.\n")
		return nil
	}

	r.writePlain("Found %d guides:\n\n", len(guides))
	for i, g := range guides {
		r.writePlain("%d. %s, %s\n", i+1, g.Destination, g.Country)
		r.writePlain("   ID: %s\n", g.ID)
		if g.BestTimeToVisit != "" {
			r.writePlain("   Best time: %s\n", g.BestTimeToVisit)
		}
		if r.guides.IsPinned(g.ID) {
			r.writePlain("   Offline: yes\n")
		}
		r.writePlain("\n")
	}

	return nil
}

// GuideShow prints a single guide by ID.
func (r *Runner) GuideShow(ctx context.Context, cmd *cli.Command) error {
	id := cmd.StringArg("id")
	if id == "" {
		return fmt.Errorf("%w: guide ID is required", shared.ErrMissingArgument)
	}

	guide := r.guides.GuideByID(id)
	if guide == nil {
		return fmt.Errorf("%w: guide %q", shared.ErrNotFound, id)
	}

	if cmd.Bool("json") {
		return r.writeJSON(guide, cmd.Bool("pretty"))
	}

	r.output.Write(formatter.GuideToMarkdown(*guide))
	return nil
}

// GuideSave saves or updates a guide from a JSON file.
func (r *Runner) GuideSave(ctx context.Context, cmd *cli.Command) error {
	path := cmd.String("file")
	if path == "" {
		return fmt.Errorf("%w: --file is required", shared.ErrMissingArgument)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read guide file: %w", err)
	}

	var guide models.Guide
	if err := json.Unmarshal(data, &guide); err != nil {
		return fmt.Errorf("%w: %v", shared.ErrInvalidInput, err)
	}

	saved, err := r.guides.SaveGuide(guide)
	if err != nil {
		return fmt.Errorf("failed to save guide: %w", err)
	}

	r.writePlain("✓ Guide saved: %s (%s)\n", saved.Destination, saved.ID)
	return nil
}

// GuideExport exports all guides to CSV or Markdown.
func (r *Runner) GuideExport(ctx context.Context, cmd *cli.Command) error {
	format := strings.ToLower(cmd.String("format"))
	outputFile := cmd.String("output")

	guides := r.guides.AllGuides()
	if len(guides) == 0 {
		r.writePlain("No guides to export.\n")
		return nil
	}

	var data []byte
	var err error

	switch format {
	case "csv":
		if data, err = formatter.GuidesToCSV(guides); err != nil {
			return fmt.Errorf("failed to format guides: %w", err)
		}
	case "markdown", "md":
		var b strings.Builder
		for _, g := range guides {
			b.Write(formatter.GuideToMarkdown(g))
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

	r.writePlain("✓ Exported %d guides to %s\n", len(guides), outputFile)
	return nil
}

func guideCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "guide",
		Usage: "Browse and manage destination guides",
		Commands: []*cli.Command{
			{
				Name:  "list",
				Usage: "List all cached guides",
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "json", Usage: "Output as JSON"},
					&cli.BoolFlag{Name: "pretty", Usage: "Pretty-print JSON output"},
				},
				Action: r.GuideList,
			},
			{
				Name:      "show",
				Usage:     "Show a guide by ID",
				Arguments: []cli.Argument{&cli.StringArg{Name: "id"}},
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "json", Usage: "Output as JSON"},
					&cli.BoolFlag{Name: "pretty", Usage: "Pretty-print JSON output"},
				},
				Action: r.GuideShow,
			},
			{
				Name:  "save",
				Usage: "Save or update a guide from a JSON file",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "file",
						Aliases:  []string{"f"},
						Usage:    "Path to a JSON guide document",
						Required: true,
					},
				},
				Action: r.GuideSave,
			},
			{
				Name:  "export",
				Usage: "Export all guides to CSV or Markdown",
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
				Action: r.GuideExport,
			},
		},
	}
}
