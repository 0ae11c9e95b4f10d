package repositories

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"wayfarer/internal/models/db_models"
	dm "wayfarer/internal/models/domain_models"
)

type ExperienceRepository interface {
	Migrate(ctx context.Context) error
	Count(ctx context.Context) (int64, error)
	ListAll(ctx context.Context) ([]dm.ExperienceItem, error)

	// Seed inserts items in order; existing slugs are left untouched.
	Seed(ctx context.Context, items []dm.ExperienceItem) (int, error)
}

type experienceRepository struct {
	db *gorm.DB
}

func NewExperienceRepository(db *gorm.DB) ExperienceRepository {
	return &experienceRepository{db: db}
}

func (r *experienceRepository) Migrate(ctx context.Context) error {
	if err := r.db.WithContext(ctx).AutoMigrate(&db_models.Experience{}); err != nil {
		return fmt.Errorf("migrate experiences: %w", err)
	}
	return nil
}

func (r *experienceRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(&db_models.Experience{}).Count(&n).Error; err != nil {
		return 0, fmt.Errorf("count experiences: %w", err)
	}
	return n, nil
}

func (r *experienceRepository) ListAll(ctx context.Context) ([]dm.ExperienceItem, error) {
	var rows []db_models.Experience
	err := r.db.WithContext(ctx).
		Order("position ASC").
		Order("created_at ASC").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("list experiences: %w", err)
	}

	items := make([]dm.ExperienceItem, 0, len(rows))
	for _, row := range rows {
		items = append(items, toDomain(row))
	}
	return items, nil
}

func (r *experienceRepository) Seed(ctx context.Context, items []dm.ExperienceItem) (int, error) {
	inserted := 0
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for i, it := range items {
			row := fromDomain(it, i)
			res := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "slug"}},
				DoNothing: true,
			}).Create(&row)
			if res.Error != nil {
				return fmt.Errorf("seed %s: %w", it.ID, res.Error)
			}
			inserted += int(res.RowsAffected)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return inserted, nil
}

func toDomain(row db_models.Experience) dm.ExperienceItem {
	return dm.ExperienceItem{
		ID:            row.Slug,
		Name:          row.Name,
		Category:      dm.Category(row.Category),
		Description:   row.Description,
		Location:      row.Location,
		Price:         row.Price,
		DurationLabel: row.DurationLabel,
		Rating:        row.Rating,
		Tags:          row.Tags,
		Color:         row.Color,
		X:             row.X,
		Y:             row.Y,
		Lat:           row.Latitude,
		Lng:           row.Longitude,
		Website:       row.Website,
		Booking:       row.Booking,
		Phone:         row.Phone,
		Info:          row.Info,
	}
}

func fromDomain(it dm.ExperienceItem, position int) db_models.Experience {
	it = it.Clone()
	return db_models.Experience{
		Slug:          it.ID,
		Position:      position,
		Name:          it.Name,
		Category:      string(it.Category),
		Description:   it.Description,
		Location:      it.Location,
		Price:         it.Price,
		DurationLabel: it.DurationLabel,
		Rating:        it.Rating,
		Tags:          it.Tags,
		Color:         it.Color,
		X:             it.X,
		Y:             it.Y,
		Latitude:      it.Lat,
		Longitude:     it.Lng,
		Website:       it.Website,
		Booking:       it.Booking,
		Phone:         it.Phone,
		Info:          it.Info,
	}
}
