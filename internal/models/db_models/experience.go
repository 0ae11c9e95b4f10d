package db_models

import "wayfarer/internal/models/domain_models"

// Experience is the catalog table. Slug is the public experience id.
type Experience struct {
	BaseModel
	Slug          string `gorm:"uniqueIndex;not null"`
	Position      int    `gorm:"index"`
	Name          string `gorm:"not null"`
	Category      string `gorm:"index"`
	Description   string
	Location      string
	Price         float64
	DurationLabel string
	Rating        float64
	Tags          []string `gorm:"serializer:json"`
	Color         string
	X             *float64
	Y             *float64
	Latitude      *float64
	Longitude     *float64
	Website       string
	Booking       string
	Phone         string
	Info          *domain_models.ExperienceInfo `gorm:"serializer:json"`
}

func (Experience) TableName() string { return "experiences" }
