package repository

import (
	"context"
	"errors"

	"github.com/shinyyama/pickup-kiosk/internal/model"
	"gorm.io/gorm"
)

var (
	ErrNotFound   = errors.New("record not found")
	ErrDuplicate  = errors.New("record already exists")
	ErrDBNotReady = errors.New("database not initialized")
)

type ScanRepository interface {
	Create(ctx context.Context, s *model.Scan) error
	FindByID(ctx context.Context, id string) (*model.Scan, error)
}

// UpdateFunc mutates a private copy of a pickup. Returning an error discards the copy.
type UpdateFunc func(p *model.Pickup) error

type PickupRepository interface {
	Create(ctx context.Context, p *model.Pickup) error
	FindByID(ctx context.Context, id string) (*model.Pickup, error)
	// Update applies fn to a copy of the stored record and replaces the record with it
	// atomically. When fn fails nothing is written and the unchanged record is returned
	// together with fn's error.
	Update(ctx context.Context, id string, fn UpdateFunc) (*model.Pickup, error)
}

type QRCodeRepository interface {
	// Add registers a code; adding an existing code is a no-op.
	Add(ctx context.Context, code *model.QRCode) error
	Contains(ctx context.Context, code string) (bool, error)
	List(ctx context.Context) ([]model.QRCode, error)
}

// Store groups the repositories of one storage backend.
type Store struct {
	Backend string
	Scans   ScanRepository
	Pickups PickupRepository
	QRCodes QRCodeRepository
	ping    func(ctx context.Context) error
	close   func() error
}

// Ping reports whether the backend is reachable.
func (s *Store) Ping(ctx context.Context) error {
	if s.ping == nil {
		return nil
	}
	return s.ping(ctx)
}

func (s *Store) Close() error {
	if s.close == nil {
		return nil
	}
	return s.close()
}

func translateGormErr(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrDuplicate
	}
	return err
}
