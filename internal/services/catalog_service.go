package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	dm "wayfarer/internal/models/domain_models"
	"wayfarer/pkg/utils"
)

type CatalogServiceInterface interface {
	ListByCategory(category dm.Category) []dm.ExperienceItem
	Get(id string) (dm.ExperienceItem, error)
	All() []dm.ExperienceItem
	Categories() []dm.Category
}

// CatalogService is read-only after construction, so it needs no locking.
type CatalogService struct {
	items []dm.ExperienceItem
	byID  map[string]int
}

// NewCatalogService validates every item and rejects duplicate ids across
// categories.
func NewCatalogService(items []dm.ExperienceItem) (CatalogServiceInterface, error) {
	c := &CatalogService{
		items: make([]dm.ExperienceItem, 0, len(items)),
		byID:  make(map[string]int, len(items)),
	}
	for _, it := range items {
		if err := it.Validate(); err != nil {
			return nil, err
		}
		if _, dup := c.byID[it.ID]; dup {
			return nil, fmt.Errorf("%w: %s", utils.ErrDuplicateExperience, it.ID)
		}
		c.byID[it.ID] = len(c.items)
		c.items = append(c.items, it.Clone())
	}
	return c, nil
}

func NewBuiltinCatalogService() CatalogServiceInterface {
	c, err := NewCatalogService(builtinExperiences())
	if err != nil {
		// the dataset is compiled in; a failure here is a programming error
		panic(err)
	}
	return c
}

// BuiltinExperiences exposes the shipped dataset for seeding.
func BuiltinExperiences() []dm.ExperienceItem {
	return builtinExperiences()
}

func (c *CatalogService) ListByCategory(category dm.Category) []dm.ExperienceItem {
	out := make([]dm.ExperienceItem, 0)
	if !category.IsCatalog() {
		return out
	}
	for _, it := range c.items {
		if it.Category == category {
			out = append(out, it.Clone())
		}
	}
	return out
}

func (c *CatalogService) Get(id string) (dm.ExperienceItem, error) {
	idx, ok := c.byID[id]
	if !ok {
		return dm.ExperienceItem{}, fmt.Errorf("%w: %s", utils.ErrExperienceNotFound, id)
	}
	return c.items[idx].Clone(), nil
}

func (c *CatalogService) All() []dm.ExperienceItem {
	out := make([]dm.ExperienceItem, 0, len(c.items))
	for _, it := range c.items {
		out = append(out, it.Clone())
	}
	return out
}

func (c *CatalogService) Categories() []dm.Category {
	return append([]dm.Category(nil), dm.CatalogCategories...)
}

// ExperienceSource is the persisted catalog, see repositories.ExperienceRepository.
type ExperienceSource interface {
	Migrate(ctx context.Context) error
	Count(ctx context.Context) (int64, error)
	ListAll(ctx context.Context) ([]dm.ExperienceItem, error)
	Seed(ctx context.Context, items []dm.ExperienceItem) (int, error)
}

// LoadCatalog reads the catalog table once, seeding it from the built-in
// dataset when empty.
func LoadCatalog(ctx context.Context, src ExperienceSource, log *zap.Logger) (CatalogServiceInterface, error) {
	if err := src.Migrate(ctx); err != nil {
		log.Error("catalog migration failed", zap.Error(err))
		return nil, utils.ErrDatabaseError
	}
	n, err := src.Count(ctx)
	if err != nil {
		log.Error("catalog count failed", zap.Error(err))
		return nil, utils.ErrDatabaseError
	}
	if n == 0 {
		seeded, err := src.Seed(ctx, builtinExperiences())
		if err != nil {
			log.Error("catalog seed failed", zap.Error(err))
			return nil, utils.ErrDatabaseError
		}
		log.Info("catalog table seeded", zap.Int("experiences", seeded))
	}

	items, err := src.ListAll(ctx)
	if err != nil {
		log.Error("catalog load failed", zap.Error(err))
		return nil, utils.ErrDatabaseError
	}
	log.Info("catalog loaded from postgres", zap.Int("experiences", len(items)))
	return NewCatalogService(items)
}
