package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type Product struct {
	Id          uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	SourceId    string         `gorm:"type:text;not null;uniqueIndex"`
	Title       string         `gorm:"type:text;not null"`
	Description string         `gorm:"type:text"`
	Price       string         `gorm:"type:text"`
	URL         string         `gorm:"type:text;not null"`
	Image       string         `gorm:"type:text"`
	Bullets     datatypes.JSON `gorm:"type:jsonb"`
	HowToUse    string         `gorm:"type:text"`
	Ingredients string         `gorm:"type:text"`
	Tags        datatypes.JSON `gorm:"type:jsonb"`
	CreatedAt   time.Time      `gorm:"autoCreateTime"`
	UpdatedAt   time.Time      `gorm:"autoUpdateTime"`
}

func (Product) TableName() string {
	return "products"
}
