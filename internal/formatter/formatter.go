// package formatter provides functions to export guides and trip plans to
// various formats (CSV, Markdown)
package formatter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"

	"github.com/wanderwise/wander/internal/models"
)

// GuidesToCSV converts guides to CSV with columns: ID, Destination, Country, Language, Currency, BestTimeToVisit, SizeKB
func GuidesToCSV(guides []models.Guide) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"ID", "Destination", "Country", "Language", "Currency", "BestTimeToVisit", "SizeKB"}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, g := range guides {
		record := []string{
			g.ID,
			g.Destination,
			g.Country,
			g.Language,
			g.Currency,
			g.BestTimeToVisit,
			strconv.Itoa(g.EstimatedSizeKB),
		}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// GuideToMarkdown converts a single guide to a Markdown document.
func GuideToMarkdown(g models.Guide) []byte {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("# %s, %s\n\n", g.Destination, g.Country))

	if g.Description != "" {
		buf.WriteString(g.Description + "\n\n")
	}

	buf.WriteString(fmt.Sprintf("**Best time to visit**: %s\n", g.BestTimeToVisit))
	buf.WriteString(fmt.Sprintf("**Language**: %s\n", g.Language))
	buf.WriteString(fmt.Sprintf("**Currency**: %s\n\n", g.Currency))

	if len(g.MainAttractions) > 0 {
		buf.WriteString("## Main Attractions\n\n")
		for _, a := range g.MainAttractions {
			buf.WriteString(fmt.Sprintf("- %s\n", a))
		}
		buf.WriteString("\n")
	}

	if len(g.LocalCuisine) > 0 {
		buf.WriteString("## Local Cuisine\n\n")
		for _, c := range g.LocalCuisine {
			buf.WriteString(fmt.Sprintf("- %s\n", c))
		}
		buf.WriteString("\n")
	}

	if g.TravelTips != "" {
		buf.WriteString("## Travel Tips\n\n")
		buf.WriteString(g.TravelTips + "\n")
	}

	return buf.Bytes()
}

// TripPlansToCSV converts trip plans to CSV with columns: ID, TripName, Destination, StartDate, EndDate, Days, Activities, TotalSpent
func TripPlansToCSV(plans []models.TripPlan) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"ID", "TripName", "Destination", "StartDate", "EndDate", "Days", "Activities", "TotalSpent"}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, p := range plans {
		record := []string{
			strconv.FormatInt(p.ID, 10),
			p.TripName,
			p.Destination,
			p.StartDate,
			p.EndDate,
			strconv.Itoa(p.DaysInTrip),
			strconv.Itoa(len(p.Activities)),
			strconv.FormatFloat(p.TotalSpent, 'f', 2, 64),
		}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// TripPlanToMarkdown converts a trip plan to a Markdown itinerary.
func TripPlanToMarkdown(p models.TripPlan) []byte {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("# %s\n\n", p.TripName))
	buf.WriteString(fmt.Sprintf("**Destination**: %s\n", p.Destination))
	buf.WriteString(fmt.Sprintf("**Dates**: %s to %s (%d days)\n", p.StartDate, p.EndDate, p.DaysInTrip))
	if p.Budget != nil {
		buf.WriteString(fmt.Sprintf("**Budget**: %.2f\n", *p.Budget))
	}
	buf.WriteString(fmt.Sprintf("**Total spent**: %.2f\n\n", p.TotalSpent))

	if len(p.Activities) > 0 {
		buf.WriteString("## Activities\n\n")
		for i, a := range p.Activities {
			cost := ""
			if a.Cost > 0 {
				cost = fmt.Sprintf(" (%.2f)", a.Cost)
			}
			buf.WriteString(fmt.Sprintf("%d. %s %s - %s @ %s [%s]%s\n",
				i+1, a.Date, a.StartTime, a.Name, a.Location, a.Type, cost))
		}
		buf.WriteString("\n")
	}

	if p.Notes != "" {
		buf.WriteString("## Notes\n\n")
		buf.WriteString(strings.TrimSpace(p.Notes) + "\n")
	}

	return buf.Bytes()
}
