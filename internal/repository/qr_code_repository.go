package repository

import (
	"context"

	"github.com/shinyyama/pickup-kiosk/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type qrCodeRepository struct {
	db *gorm.DB
}

func NewQRCodeRepository(db *gorm.DB) QRCodeRepository {
	return &qrCodeRepository{db: db}
}

func (r *qrCodeRepository) Add(ctx context.Context, code *model.QRCode) error {
	if r.db == nil {
		return ErrDBNotReady
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(code).Error
}

func (r *qrCodeRepository) Contains(ctx context.Context, code string) (bool, error) {
	if r.db == nil {
		return false, ErrDBNotReady
	}
	var cnt int64
	if err := r.db.WithContext(ctx).
		Model(&model.QRCode{}).
		Where("code = ?", code).
		Count(&cnt).Error; err != nil {
		return false, err
	}
	return cnt > 0, nil
}

func (r *qrCodeRepository) List(ctx context.Context) ([]model.QRCode, error) {
	if r.db == nil {
		return nil, ErrDBNotReady
	}
	var list []model.QRCode
	if err := r.db.WithContext(ctx).
		Order("created_at ASC").
		Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

// NewGormStore backs every repository with the given database.
func NewGormStore(db *gorm.DB) *Store {
	return &Store{
		Backend: "db",
		Scans:   NewScanRepository(db),
		Pickups: NewPickupRepository(db),
		QRCodes: NewQRCodeRepository(db),
		ping: func(ctx context.Context) error {
			sqlDB, err := db.DB()
			if err != nil {
				return err
			}
			return sqlDB.PingContext(ctx)
		},
		close: func() error {
			sqlDB, err := db.DB()
			if err != nil {
				return err
			}
			return sqlDB.Close()
		},
	}
}
