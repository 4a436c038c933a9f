package model

type Farmer struct {
	FarmerID      uint64 `gorm:"column:farmer_id;primaryKey;autoIncrement"`
	Name          string `gorm:"column:name;type:text;not null"`
	Location      string `gorm:"column:location;type:text;not null;default:''"`
	Language      string `gorm:"column:language;type:text;not null;default:''"`
	PaymentHandle string `gorm:"column:payment_handle;type:text;not null;default:''"`
	CreatedAt     string `gorm:"column:created_at;type:text;not null"`
	UpdatedAt     string `gorm:"column:updated_at;type:text;not null"`
}

func (Farmer) TableName() string {
	return "farmers"
}
