package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/shinyyama/pickup-kiosk/internal/model"
)

// NewMemoryStore keeps every record in process memory for the lifetime of the process.
func NewMemoryStore() *Store {
	return &Store{
		Backend: "memory",
		Scans:   &memoryScanRepository{scans: make(map[string]model.Scan)},
		Pickups: &memoryPickupRepository{pickups: make(map[string]*model.Pickup)},
		QRCodes: &memoryQRCodeRepository{codes: make(map[string]model.QRCode)},
	}
}

type memoryScanRepository struct {
	mu    sync.RWMutex
	scans map[string]model.Scan
}

func (r *memoryScanRepository) Create(_ context.Context, s *model.Scan) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.scans[s.ScanID]; ok {
		return ErrDuplicate
	}
	r.scans[s.ScanID] = *s
	return nil
}

func (r *memoryScanRepository) FindByID(_ context.Context, id string) (*model.Scan, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.scans[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &s, nil
}

// memoryPickupRepository never hands out its stored pointers; records are replaced whole.
type memoryPickupRepository struct {
	mu      sync.RWMutex
	pickups map[string]*model.Pickup
}

func (r *memoryPickupRepository) Create(_ context.Context, p *model.Pickup) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.pickups[p.PickupID]; ok {
		return ErrDuplicate
	}
	r.pickups[p.PickupID] = p.Clone()
	return nil
}

func (r *memoryPickupRepository) FindByID(_ context.Context, id string) (*model.Pickup, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.pickups[id]
	if !ok {
		return nil, ErrNotFound
	}
	return p.Clone(), nil
}

func (r *memoryPickupRepository) Update(_ context.Context, id string, fn UpdateFunc) (*model.Pickup, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	cur, ok := r.pickups[id]
	if !ok {
		return nil, ErrNotFound
	}
	next := cur.Clone()
	if err := fn(next); err != nil {
		return cur.Clone(), err
	}
	r.pickups[id] = next
	return next.Clone(), nil
}

type memoryQRCodeRepository struct {
	mu    sync.RWMutex
	codes map[string]model.QRCode
}

func (r *memoryQRCodeRepository) Add(_ context.Context, code *model.QRCode) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.codes[code.Code]; ok {
		return nil
	}
	entry := *code
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now()
	}
	r.codes[code.Code] = entry
	return nil
}

func (r *memoryQRCodeRepository) Contains(_ context.Context, code string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.codes[code]
	return ok, nil
}

func (r *memoryQRCodeRepository) List(_ context.Context) ([]model.QRCode, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	list := make([]model.QRCode, 0, len(r.codes))
	for _, c := range r.codes {
		list = append(list, c)
	}
	sortQRCodes(list)
	return list, nil
}

func sortQRCodes(list []model.QRCode) {
	sort.Slice(list, func(i, j int) bool {
		if list[i].CreatedAt.Equal(list[j].CreatedAt) {
			return list[i].Code < list[j].Code
		}
		return list[i].CreatedAt.Before(list[j].CreatedAt)
	})
}
