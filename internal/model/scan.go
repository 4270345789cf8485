package model

import "time"

// Scan is an accepted QR read. It is never modified after creation.
type Scan struct {
	ScanID         string    `gorm:"column:scan_id;primaryKey;type:varchar(64)"`
	QRCode         string    `gorm:"column:qr_code;size:255;index;not null"`
	StoreID        string    `gorm:"column:store_id;size:64;not null"`
	AvailableBoxes int       `gorm:"column:available_boxes;not null"`
	IsValid        bool      `gorm:"column:is_valid;not null"`
	CanProceed     bool      `gorm:"column:can_proceed;not null"`
	Timestamp      time.Time `gorm:"column:timestamp;not null"`
}

func (Scan) TableName() string {
	return "scans"
}
