package repository

import (
	"context"

	"github.com/shinyyama/pickup-kiosk/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type pickupRepository struct {
	db *gorm.DB
}

func NewPickupRepository(db *gorm.DB) PickupRepository {
	return &pickupRepository{db: db}
}

func (r *pickupRepository) Create(ctx context.Context, p *model.Pickup) error {
	if r.db == nil {
		return ErrDBNotReady
	}
	return translateGormErr(r.db.WithContext(ctx).Create(p).Error)
}

func (r *pickupRepository) FindByID(ctx context.Context, id string) (*model.Pickup, error) {
	if r.db == nil {
		return nil, ErrDBNotReady
	}
	var p model.Pickup
	if err := r.db.WithContext(ctx).Where("pickup_id = ?", id).First(&p).Error; err != nil {
		return nil, translateGormErr(err)
	}
	return &p, nil
}

// Update locks the row for the duration of fn so scheduler ticks and completion
// calls serialize on the same pickup.
func (r *pickupRepository) Update(ctx context.Context, id string, fn UpdateFunc) (*model.Pickup, error) {
	if r.db == nil {
		return nil, ErrDBNotReady
	}
	var (
		out   *model.Pickup
		fnErr error
	)
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var cur model.Pickup
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("pickup_id = ?", id).
			First(&cur).Error; err != nil {
			return err
		}
		next := cur.Clone()
		if err := fn(next); err != nil {
			out, fnErr = &cur, err
			return nil
		}
		if err := tx.Save(next).Error; err != nil {
			return err
		}
		out = next
		return nil
	})
	if err != nil {
		return nil, translateGormErr(err)
	}
	return out, fnErr
}
