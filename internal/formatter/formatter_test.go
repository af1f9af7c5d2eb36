package formatter

import (
	"encoding/csv"
	"strings"
	"testing"

	"github.com/wanderwise/wander/internal/models"
)

func TestGuideExporters(t *testing.T) {
	guides := []models.Guide{
		{
			ID:              "paris",
			Destination:     "Paris",
			Country:         "France",
			Description:     "The City of Light",
			MainAttractions: []string{"Eiffel Tower", "Louvre Museum"},
			LocalCuisine:    []string{"Croissants", "Macarons"},
			BestTimeToVisit: "April to June",
			Language:        "French",
			Currency:        "Euro",
			TravelTips:      "Learn basic French phrases.",
			EstimatedSizeKB: 2400,
		},
		{
			ID:          "tokyo",
			Destination: "Tokyo",
			Country:     "Japan",
			Language:    "Japanese",
			Currency:    "Japanese Yen",
		},
	}

	t.Run("GuidesToCSV", func(t *testing.T) {
		data, err := GuidesToCSV(guides)
		if err != nil {
			t.Fatalf("GuidesToCSV failed: %v", err)
		}

		output := string(data)
		if !strings.Contains(output, "ID,Destination,Country,Language,Currency,BestTimeToVisit,SizeKB") {
			t.Errorf("CSV missing headers, got: %s", output)
		}
		if !strings.Contains(output, "paris") {
			t.Error("CSV missing paris row")
		}
		if !strings.Contains(output, "2400") {
			t.Error("CSV missing estimated size")
		}

		records, err := csv.NewReader(strings.NewReader(output)).ReadAll()
		if err != nil {
			t.Fatalf("output is not parseable CSV: %v", err)
		}
		if len(records) != 3 {
			t.Errorf("expected header plus 2 rows, got %d", len(records))
		}
	})

	t.Run("GuidesToCSVEmpty", func(t *testing.T) {
		data, err := GuidesToCSV(nil)
		if err != nil {
			t.Fatalf("GuidesToCSV failed: %v", err)
		}
		if !strings.HasPrefix(string(data), "ID,Destination") {
			t.Errorf("expected headers only, got: %s", data)
		}
	})

	t.Run("GuideToMarkdown", func(t *testing.T) {
		output := string(GuideToMarkdown(guides[0]))

		if !strings.Contains(output, "# Paris, France") {
			t.Errorf("Markdown missing title, got: %s", output)
		}
		if !strings.Contains(output, "## Main Attractions") {
			t.Error("Markdown missing attractions section")
		}
		if !strings.Contains(output, "- Eiffel Tower") {
			t.Error("Markdown missing attraction entry")
		}
		if !strings.Contains(output, "## Travel Tips") {
			t.Error("Markdown missing travel tips section")
		}
	})

	t.Run("GuideToMarkdownSparse", func(t *testing.T) {
		output := string(GuideToMarkdown(guides[1]))

		if strings.Contains(output, "## Main Attractions") {
			t.Error("expected no attractions section for a guide without attractions")
		}
		if strings.Contains(output, "## Travel Tips") {
			t.Error("expected no tips section for a guide without tips")
		}
	})
}

func TestTripPlanExporters(t *testing.T) {
	budget := 1500.0
	plans := []models.TripPlan{
		{
			ID:          1,
			TripName:    "Spring in Paris",
			Destination: "Paris, France",
			StartDate:   "2026-04-10",
			EndDate:     "2026-04-14",
			Budget:      &budget,
			DaysInTrip:  5,
			TotalSpent:  442.50,
			Notes:       "Book Louvre tickets ahead.",
			Activities: []models.Activity{
				{Name: "Flight to CDG", Type: models.ActivityFlight, Location: "CDG Airport", Date: "2026-04-10", StartTime: "08:15", Cost: 420.50},
				{Name: "Louvre", Type: models.ActivityAttraction, Location: "Rue de Rivoli", Date: "2026-04-11", StartTime: "10:00", Cost: 22},
			},
		},
	}

	t.Run("TripPlansToCSV", func(t *testing.T) {
		data, err := TripPlansToCSV(plans)
		if err != nil {
			t.Fatalf("TripPlansToCSV failed: %v", err)
		}

		output := string(data)
		if !strings.Contains(output, "ID,TripName,Destination,StartDate,EndDate,Days,Activities,TotalSpent") {
			t.Errorf("CSV missing headers, got: %s", output)
		}
		if !strings.Contains(output, "Spring in Paris") {
			t.Error("CSV missing trip name")
		}
		if !strings.Contains(output, "442.50") {
			t.Error("CSV missing total spent")
		}
	})

	t.Run("TripPlanToMarkdown", func(t *testing.T) {
		output := string(TripPlanToMarkdown(plans[0]))

		if !strings.Contains(output, "# Spring in Paris") {
			t.Errorf("Markdown missing title, got: %s", output)
		}
		if !strings.Contains(output, "**Budget**: 1500.00") {
			t.Error("Markdown missing budget line")
		}
		if !strings.Contains(output, "## Activities") {
			t.Error("Markdown missing activities section")
		}
		if !strings.Contains(output, "[flight] (420.50)") {
			t.Errorf("Markdown missing activity detail, got: %s", output)
		}
		if !strings.Contains(output, "## Notes") {
			t.Error("Markdown missing notes section")
		}
	})

	t.Run("TripPlanToMarkdownWithoutBudget", func(t *testing.T) {
		plan := plans[0]
		plan.Budget = nil

		output := string(TripPlanToMarkdown(plan))
		if strings.Contains(output, "**Budget**") {
			t.Error("expected no budget line when budget is unset")
		}
	})
}
