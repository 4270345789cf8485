package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shinyyama/pickup-kiosk/internal/model"
)

const (
	redisQRCodesKey   = "kiosk:qr_codes"
	redisMaxTxRetries = 10
)

func scanKey(id string) string {
	return fmt.Sprintf("kiosk:scan:%s", id)
}

func pickupKey(id string) string {
	return fmt.Sprintf("kiosk:pickup:%s", id)
}

// NewRedisStore keeps records as JSON values under kiosk:* keys without expiry.
func NewRedisStore(client *redis.Client) *Store {
	return &Store{
		Backend: "redis",
		Scans:   &redisScanRepository{redis: client},
		Pickups: &redisPickupRepository{redis: client},
		QRCodes: &redisQRCodeRepository{redis: client},
		ping: func(ctx context.Context) error {
			return client.Ping(ctx).Err()
		},
		close: client.Close,
	}
}

type redisScanRepository struct {
	redis *redis.Client
}

func (r *redisScanRepository) Create(ctx context.Context, s *model.Scan) error {
	data, err := json.Marshal(s)
	if err != nil {
		return err
	}
	ok, err := r.redis.SetNX(ctx, scanKey(s.ScanID), data, 0).Result()
	if err != nil {
		return err
	}
	if !ok {
		return ErrDuplicate
	}
	return nil
}

func (r *redisScanRepository) FindByID(ctx context.Context, id string) (*model.Scan, error) {
	raw, err := r.redis.Get(ctx, scanKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	var s model.Scan
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, fmt.Errorf("decode scan %s: %w", id, err)
	}
	return &s, nil
}

type redisPickupRepository struct {
	redis *redis.Client
}

func (r *redisPickupRepository) Create(ctx context.Context, p *model.Pickup) error {
	data, err := json.Marshal(p)
	if err != nil {
		return err
	}
	ok, err := r.redis.SetNX(ctx, pickupKey(p.PickupID), data, 0).Result()
	if err != nil {
		return err
	}
	if !ok {
		return ErrDuplicate
	}
	return nil
}

func (r *redisPickupRepository) FindByID(ctx context.Context, id string) (*model.Pickup, error) {
	raw, err := r.redis.Get(ctx, pickupKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	var p model.Pickup
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil, fmt.Errorf("decode pickup %s: %w", id, err)
	}
	return &p, nil
}

// Update uses optimistic locking: the write is dropped and retried if another
// client touched the key between WATCH and EXEC.
func (r *redisPickupRepository) Update(ctx context.Context, id string, fn UpdateFunc) (*model.Pickup, error) {
	key := pickupKey(id)
	var (
		out   *model.Pickup
		fnErr error
	)
	txf := func(tx *redis.Tx) error {
		out, fnErr = nil, nil
		raw, err := tx.Get(ctx, key).Bytes()
		if errors.Is(err, redis.Nil) {
			return ErrNotFound
		}
		if err != nil {
			return err
		}
		var cur model.Pickup
		if err := json.Unmarshal(raw, &cur); err != nil {
			return fmt.Errorf("decode pickup %s: %w", id, err)
		}
		next := cur.Clone()
		if err := fn(next); err != nil {
			out, fnErr = &cur, err
			return nil
		}
		data, err := json.Marshal(next)
		if err != nil {
			return err
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, data, 0)
			return nil
		})
		if err == nil {
			out = next
		}
		return err
	}
	for i := 0; i < redisMaxTxRetries; i++ {
		err := r.redis.Watch(ctx, txf, key)
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		if err != nil {
			return nil, err
		}
		return out, fnErr
	}
	return nil, fmt.Errorf("update pickup %s: gave up after %d conflicting writes", id, redisMaxTxRetries)
}

type redisQRCodeRepository struct {
	redis *redis.Client
}

func (r *redisQRCodeRepository) Add(ctx context.Context, code *model.QRCode) error {
	entry := *code
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now()
	}
	data, err := json.Marshal(entry)
	if err != nil {
		return err
	}
	return r.redis.HSetNX(ctx, redisQRCodesKey, entry.Code, data).Err()
}

func (r *redisQRCodeRepository) Contains(ctx context.Context, code string) (bool, error) {
	return r.redis.HExists(ctx, redisQRCodesKey, code).Result()
}

func (r *redisQRCodeRepository) List(ctx context.Context) ([]model.QRCode, error) {
	all, err := r.redis.HGetAll(ctx, redisQRCodesKey).Result()
	if err != nil {
		return nil, err
	}
	list := make([]model.QRCode, 0, len(all))
	for code, raw := range all {
		var c model.QRCode
		if err := json.Unmarshal([]byte(raw), &c); err != nil {
			return nil, fmt.Errorf("decode qr code %s: %w", code, err)
		}
		list = append(list, c)
	}
	sortQRCodes(list)
	return list, nil
}
