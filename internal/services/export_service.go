package services

import (
	"bytes"
	"fmt"
	"sort"

	"github.com/phpdave11/gofpdf"
	dm "wayfarer/internal/models/domain_models"
)

type ItineraryGroup struct {
	Title string
	Items []dm.ItineraryItem
}

// GroupItinerary buckets items by scheduled day: numbered days ascending,
// then all-days entries, then unscheduled ones. Insertion order is kept
// inside each group.
func GroupItinerary(items []dm.ItineraryItem) []ItineraryGroup {
	byDay := make(map[int][]dm.ItineraryItem)
	var every, unscheduled []dm.ItineraryItem
	for _, it := range items {
		switch n, ok := it.ScheduledDay.Number(); {
		case ok:
			byDay[n] = append(byDay[n], it)
		case it.ScheduledDay.IsAllDays():
			every = append(every, it)
		default:
			unscheduled = append(unscheduled, it)
		}
	}

	days := make([]int, 0, len(byDay))
	for d := range byDay {
		days = append(days, d)
	}
	sort.Ints(days)

	groups := make([]ItineraryGroup, 0, len(days)+2)
	for _, d := range days {
		groups = append(groups, ItineraryGroup{Title: fmt.Sprintf("Day %d", d), Items: byDay[d]})
	}
	if len(every) > 0 {
		groups = append(groups, ItineraryGroup{Title: "All days", Items: every})
	}
	if len(unscheduled) > 0 {
		groups = append(groups, ItineraryGroup{Title: "Unscheduled", Items: unscheduled})
	}
	return groups
}

// ExportItineraryPDF renders the itinerary as a printable A4 list.
func ExportItineraryPDF(title string, items []dm.ItineraryItem, total float64) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetTitle(title, true)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 18)
	pdf.Cell(0, 10, tr(title))
	pdf.Ln(14)

	if len(items) == 0 {
		pdf.SetFont("Arial", "I", 12)
		pdf.Cell(0, 8, "Your itinerary is empty.")
		pdf.Ln(10)
	}

	for _, g := range GroupItinerary(items) {
		pdf.SetFont("Arial", "B", 14)
		pdf.SetFillColor(230, 236, 245)
		pdf.CellFormat(0, 9, tr(g.Title), "", 1, "L", true, 0, "")
		pdf.Ln(2)

		for _, it := range g.Items {
			when := it.ScheduledTime
			if when == "" && it.ScheduledTimeSlot != dm.SlotNone {
				when = string(it.ScheduledTimeSlot)
			}
			pdf.SetFont("Arial", "B", 11)
			pdf.CellFormat(22, 7, tr(when), "", 0, "L", false, 0, "")
			pdf.CellFormat(128, 7, tr(it.Name), "", 0, "L", false, 0, "")
			pdf.CellFormat(0, 7, priceText(it.Price), "", 1, "R", false, 0, "")

			pdf.SetFont("Arial", "", 9)
			pdf.SetX(pdf.GetX() + 22)
			detail := it.Location
			if it.DurationLabel != "" {
				detail += " | " + it.DurationLabel
			}
			pdf.CellFormat(0, 5, tr(detail), "", 1, "L", false, 0, "")
			pdf.Ln(1)
		}
		pdf.Ln(4)
	}

	pdf.SetFont("Arial", "B", 13)
	pdf.CellFormat(0, 9, fmt.Sprintf("Total: EUR %.2f", total), "T", 1, "R", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render itinerary pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func priceText(p float64) string {
	if p == 0 {
		return "free"
	}
	return fmt.Sprintf("EUR %.2f", p)
}
