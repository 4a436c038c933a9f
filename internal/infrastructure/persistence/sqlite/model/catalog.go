package model

import "gorm.io/datatypes"

type Catalog struct {
	CatalogID uint64         `gorm:"column:catalog_id;primaryKey;autoIncrement"`
	FarmerID  uint64         `gorm:"column:farmer_id;not null;index"`
	Listing   datatypes.JSON `gorm:"column:listing;not null"`
	Status    string         `gorm:"column:status;type:text;not null;index"`
	CreatedAt string         `gorm:"column:created_at;type:text;not null"`
	UpdatedAt string         `gorm:"column:updated_at;type:text;not null"`
}

func (Catalog) TableName() string {
	return "catalogs"
}
