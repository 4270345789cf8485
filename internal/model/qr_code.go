package model

import "time"

const (
	QRCodeSourceSeed    = "seed"
	QRCodeSourceDisplay = "display"
)

// QRCode is an allow-list entry accepted regardless of the store prefix rule.
type QRCode struct {
	Code      string    `gorm:"column:code;primaryKey;type:varchar(255)"`
	Source    string    `gorm:"column:source;size:32;not null"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

func (QRCode) TableName() string {
	return "qr_codes"
}
