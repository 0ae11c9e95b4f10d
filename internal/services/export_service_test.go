package services

import (
	"bytes"
	"testing"

	dm "wayfarer/internal/models/domain_models"
)

func TestGroupItinerary(t *testing.T) {
	items := []dm.ItineraryItem{
		{ExperienceItem: dm.ExperienceItem{ID: "a"}, ScheduledDay: dm.MustDay(2)},
		{ExperienceItem: dm.ExperienceItem{ID: "b"}},
		{ExperienceItem: dm.ExperienceItem{ID: "c"}, ScheduledDay: dm.AllDays},
		{ExperienceItem: dm.ExperienceItem{ID: "d"}, ScheduledDay: dm.MustDay(1)},
		{ExperienceItem: dm.ExperienceItem{ID: "e"}, ScheduledDay: dm.MustDay(2)},
	}

	groups := GroupItinerary(items)
	wantTitles := []string{"Day 1", "Day 2", "All days", "Unscheduled"}
	if len(groups) != len(wantTitles) {
		t.Fatalf("expected %d groups, got %d", len(wantTitles), len(groups))
	}
	for i, g := range groups {
		if g.Title != wantTitles[i] {
			t.Fatalf("group %d: expected %s, got %s", i, wantTitles[i], g.Title)
		}
	}
	if got := ids(groups[1].Items); !equalStrings(got, []string{"a", "e"}) {
		t.Fatalf("day 2 lost insertion order: %v", got)
	}
}

func TestExportItineraryPDF(t *testing.T) {
	catalog := NewBuiltinCatalogService()
	store := NewItineraryStore(catalog, testLogger())
	store.MergeDay(templatePlan()[0])
	store.Add(mustItem(t, catalog, "spa1"), dm.Schedule{Day: dm.AllDays, Slot: dm.SlotEvening})

	pdf, err := ExportItineraryPDF("Rome in three days", store.List(), store.TotalCost())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !bytes.HasPrefix(pdf, []byte("%PDF")) {
		t.Fatal("output is not a PDF")
	}

	empty, err := ExportItineraryPDF("Empty", nil, 0)
	if err != nil || !bytes.HasPrefix(empty, []byte("%PDF")) {
		t.Fatalf("empty export failed: %v", err)
	}
}

func TestPriceText(t *testing.T) {
	if priceText(0) != "free" || priceText(12.5) != "EUR 12.50" {
		t.Fatalf("unexpected %q %q", priceText(0), priceText(12.5))
	}
}
