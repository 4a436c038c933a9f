package model

import "gorm.io/datatypes"

type NetworkLog struct {
	LogID     uint64         `gorm:"column:log_id;primaryKey;autoIncrement"`
	EventType string         `gorm:"column:event_type;type:text;not null;index"`
	CatalogID uint64         `gorm:"column:catalog_id;not null;index"`
	Payload   datatypes.JSON `gorm:"column:payload;not null"`
	CreatedAt string         `gorm:"column:created_at;type:text;not null"`
}

func (NetworkLog) TableName() string {
	return "network_logs"
}
