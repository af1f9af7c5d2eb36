package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/urfave/cli/v3"
	"github.com/wanderwise/wander/internal/models"
)

// DestinationAdd adds a destination to the saved list.
func (r *Runner) DestinationAdd(ctx context.Context, cmd *cli.Command) error {
	dest := models.Destination{
		Name:        cmd.String("name"),
		Country:     cmd.String("country"),
		Continent:   cmd.String("continent"),
		Description: cmd.String("description"),
		Rating:      cmd.Float("rating"),
	}
	if tags := cmd.String("tags"); tags != "" {
		dest.Tags = strings.Split(tags, ",")
	}

	result := r.destinations.Add(dest)
	if !result.OK {
		return fmt.Errorf("failed to add destination: %w", result.Err)
	}

	r.writePlain("✓ Destination saved: %s (#%d)\n", dest.Name, result.ID)
	return nil
}

// DestinationList lists all saved destinations.
func (r *Runner) DestinationList(ctx context.Context, cmd *cli.Command) error {
	dests := r.destinations.All()

	if cmd.Bool("json") {
		return r.writeJSON(dests, cmd.Bool("pretty"))
	}

	if len(dests) == 0 {
		r.writePlain("No destinations saved.\n")
		return nil
	}

	r.writePlain("Found %d destinations:\n\n", len(dests))
	for i, d := range dests {
		r.writePlain("%d. %s, %s\n", i+1, d.Name, d.Country)
		if d.Rating > 0 {
			r.writePlain("   Rating: %.1f (%d reviews)\n", d.Rating, d.ReviewCount)
		}
		if len(d.Tags) > 0 {
			r.writePlain("   Tags: %s\n", strings.Join(d.Tags, ", "))
		}
		r.writePlain("\n")
	}

	return nil
}

func destinationCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "destination",
		Aliases: []string{"dest"},
		Usage:   "Manage saved destinations",
		Commands: []*cli.Command{
			{
				Name:  "add",
				Usage: "Add a destination to the saved list",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "name",
						Aliases:  []string{"n"},
						Usage:    "Destination name",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "country",
						Usage:    "Country",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "continent",
						Usage: "Continent",
					},
					&cli.StringFlag{
						Name:    "description",
						Aliases: []string{"d"},
						Usage:   "Short description",
					},
					&cli.FloatFlag{
						Name:  "rating",
						Usage: "Rating out of 5",
					},
					&cli.StringFlag{
						Name:  "tags",
						Usage: "Comma-separated tags",
					},
				},
				Action: r.DestinationAdd,
			},
			{
				Name:  "list",
				Usage: "List saved destinations",
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "json", Usage: "Output as JSON"},
					&cli.BoolFlag{Name: "pretty", Usage: "Pretty-print JSON output"},
				},
				Action: r.DestinationList,
			},
		},
	}
}
