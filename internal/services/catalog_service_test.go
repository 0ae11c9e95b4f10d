package services

import (
	"context"
	"errors"
	"testing"

	dm "wayfarer/internal/models/domain_models"
	"wayfarer/pkg/utils"
)

func TestBuiltinCatalogCategories(t *testing.T) {
	catalog := NewBuiltinCatalogService()

	want := map[dm.Category]int{
		dm.CategoryActivity:   5,
		dm.CategoryAttraction: 5,
		dm.CategoryDining:     2,
		dm.CategoryService:    2,
		dm.CategoryScript:     2,
	}
	for c, n := range want {
		got := catalog.ListByCategory(c)
		if len(got) != n {
			t.Fatalf("%s: expected %d items, got %d", c, n, len(got))
		}
		for _, it := range got {
			if it.Category != c {
				t.Fatalf("%s: item %s has category %s", c, it.ID, it.Category)
			}
		}
	}
}

func TestListByCategoryNonCatalogIsEmpty(t *testing.T) {
	catalog := NewBuiltinCatalogService()

	for _, c := range []dm.Category{dm.CategoryItinerary, dm.CategoryNone, dm.Category("nightlife")} {
		got := catalog.ListByCategory(c)
		if got == nil || len(got) != 0 {
			t.Fatalf("%q: expected empty non-nil list, got %v", c, got)
		}
	}
}

func TestCatalogGet(t *testing.T) {
	catalog := NewBuiltinCatalogService()

	it, err := catalog.Get("colosseum1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if it.Price != 45 || it.Category != dm.CategoryAttraction {
		t.Fatalf("unexpected colosseum1: %+v", it)
	}

	if _, err := catalog.Get("nope"); !errors.Is(err, utils.ErrExperienceNotFound) {
		t.Fatalf("expected ErrExperienceNotFound, got %v", err)
	}
}

func TestCatalogReturnsCopies(t *testing.T) {
	catalog := NewBuiltinCatalogService()

	it, _ := catalog.Get("colosseum1")
	*it.Lat = 0
	it.Tags = append(it.Tags[:0], "mutated")

	again, _ := catalog.Get("colosseum1")
	if *again.Lat == 0 {
		t.Fatal("caller mutation reached catalog coordinates")
	}
	for _, tag := range again.Tags {
		if tag == "mutated" {
			t.Fatal("caller mutation reached catalog tags")
		}
	}
}

func TestNewCatalogServiceValidation(t *testing.T) {
	cases := []struct {
		name  string
		items []dm.ExperienceItem
		want  error
	}{
		{"empty id", []dm.ExperienceItem{{ID: " ", Category: dm.CategoryDining}}, utils.ErrInvalidExperience},
		{"negative price", []dm.ExperienceItem{{ID: "a", Category: dm.CategoryDining, Price: -1}}, utils.ErrInvalidExperience},
		{"rating above five", []dm.ExperienceItem{{ID: "a", Category: dm.CategoryDining, Rating: 5.5}}, utils.ErrInvalidExperience},
		{"itinerary category", []dm.ExperienceItem{{ID: "a", Category: dm.CategoryItinerary}}, utils.ErrInvalidExperience},
		{"duplicate across categories", []dm.ExperienceItem{
			{ID: "a", Category: dm.CategoryDining},
			{ID: "a", Category: dm.CategoryScript},
		}, utils.ErrDuplicateExperience},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := NewCatalogService(tc.items); !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

type fakeExperienceSource struct {
	rows     []dm.ExperienceItem
	seeded   int
	countErr error
}

func (f *fakeExperienceSource) Migrate(ctx context.Context) error { return nil }

func (f *fakeExperienceSource) Count(ctx context.Context) (int64, error) {
	return int64(len(f.rows)), f.countErr
}

func (f *fakeExperienceSource) ListAll(ctx context.Context) ([]dm.ExperienceItem, error) {
	return f.rows, nil
}

func (f *fakeExperienceSource) Seed(ctx context.Context, items []dm.ExperienceItem) (int, error) {
	f.seeded++
	f.rows = append(f.rows, items...)
	return len(items), nil
}

func TestLoadCatalogSeedsEmptyTable(t *testing.T) {
	src := &fakeExperienceSource{}

	catalog, err := LoadCatalog(context.Background(), src, testLogger())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if src.seeded != 1 {
		t.Fatalf("expected one seed, got %d", src.seeded)
	}
	if len(catalog.All()) != len(BuiltinExperiences()) {
		t.Fatalf("expected %d items, got %d", len(BuiltinExperiences()), len(catalog.All()))
	}

	if _, err := LoadCatalog(context.Background(), src, testLogger()); err != nil {
		t.Fatalf("second load: %v", err)
	}
	if src.seeded != 1 {
		t.Fatal("non-empty table was seeded again")
	}
}

func TestLoadCatalogDatabaseError(t *testing.T) {
	src := &fakeExperienceSource{countErr: errors.New("connection refused")}

	if _, err := LoadCatalog(context.Background(), src, testLogger()); !errors.Is(err, utils.ErrDatabaseError) {
		t.Fatalf("expected ErrDatabaseError, got %v", err)
	}
}
