package repository

import (
	"context"

	"github.com/shinyyama/pickup-kiosk/internal/model"
	"gorm.io/gorm"
)

type scanRepository struct {
	db *gorm.DB
}

func NewScanRepository(db *gorm.DB) ScanRepository {
	return &scanRepository{db: db}
}

func (r *scanRepository) Create(ctx context.Context, s *model.Scan) error {
	if r.db == nil {
		return ErrDBNotReady
	}
	return translateGormErr(r.db.WithContext(ctx).Create(s).Error)
}

func (r *scanRepository) FindByID(ctx context.Context, id string) (*model.Scan, error) {
	if r.db == nil {
		return nil, ErrDBNotReady
	}
	var s model.Scan
	if err := r.db.WithContext(ctx).Where("scan_id = ?", id).First(&s).Error; err != nil {
		return nil, translateGormErr(err)
	}
	return &s, nil
}
