package repository

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/shinyyama/pickup-kiosk/internal/model"
)

func TestMemoryScanRepository(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	s := &model.Scan{ScanID: "scan-1", QRCode: "STORE_001_BOX_A", AvailableBoxes: 2}
	if err := store.Scans.Create(ctx, s); err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := store.Scans.Create(ctx, s); !errors.Is(err, ErrDuplicate) {
		t.Fatalf("duplicate create err=%v", err)
	}
	got, err := store.Scans.FindByID(ctx, "scan-1")
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	got.AvailableBoxes = 99
	again, _ := store.Scans.FindByID(ctx, "scan-1")
	if again.AvailableBoxes != 2 {
		t.Fatalf("stored scan mutated through returned copy: %d", again.AvailableBoxes)
	}
	if _, err := store.Scans.FindByID(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("missing err=%v", err)
	}
}

func TestMemoryPickupUpdate(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	p := &model.Pickup{PickupID: "p-1", ScanID: "scan-1", Status: model.PickupStatusInitiated}
	if err := store.Pickups.Create(ctx, p); err != nil {
		t.Fatalf("create: %v", err)
	}

	updated, err := store.Pickups.Update(ctx, "p-1", func(p *model.Pickup) error {
		now := time.Now()
		p.Progress = 25
		p.Status = model.PickupStatusProcessing
		p.LastUpdate = &now
		return nil
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Progress != 25 || updated.LastUpdate == nil {
		t.Fatalf("unexpected update result %+v", updated)
	}

	errAbort := errors.New("abort")
	unchanged, err := store.Pickups.Update(ctx, "p-1", func(p *model.Pickup) error {
		p.Progress = 75
		return errAbort
	})
	if !errors.Is(err, errAbort) {
		t.Fatalf("err=%v", err)
	}
	if unchanged.Progress != 25 {
		t.Fatalf("aborted update leaked progress %d", unchanged.Progress)
	}
	stored, _ := store.Pickups.FindByID(ctx, "p-1")
	if stored.Progress != 25 {
		t.Fatalf("stored progress=%d", stored.Progress)
	}

	if _, err := store.Pickups.Update(ctx, "missing", func(p *model.Pickup) error { return nil }); !errors.Is(err, ErrNotFound) {
		t.Fatalf("missing err=%v", err)
	}
}

func TestMemoryPickupConcurrentUpdates(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	_ = store.Pickups.Create(ctx, &model.Pickup{PickupID: "p-1"})

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = store.Pickups.Update(ctx, "p-1", func(p *model.Pickup) error {
				p.Progress++
				return nil
			})
			_, _ = store.Pickups.FindByID(ctx, "p-1")
		}()
	}
	wg.Wait()
	got, _ := store.Pickups.FindByID(ctx, "p-1")
	if got.Progress != 50 {
		t.Fatalf("lost updates: progress=%d", got.Progress)
	}
}

func TestMemoryQRCodeRepository(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	first := time.Now().Add(-time.Minute)
	_ = store.QRCodes.Add(ctx, &model.QRCode{Code: "B", Source: model.QRCodeSourceSeed, CreatedAt: first})
	_ = store.QRCodes.Add(ctx, &model.QRCode{Code: "A", Source: model.QRCodeSourceDisplay})
	_ = store.QRCodes.Add(ctx, &model.QRCode{Code: "B", Source: model.QRCodeSourceDisplay})

	ok, err := store.QRCodes.Contains(ctx, "A")
	if err != nil || !ok {
		t.Fatalf("contains A: ok=%v err=%v", ok, err)
	}
	if ok, _ := store.QRCodes.Contains(ctx, "C"); ok {
		t.Fatalf("C should not be present")
	}
	list, _ := store.QRCodes.List(ctx)
	if len(list) != 2 {
		t.Fatalf("len=%d", len(list))
	}
	if list[0].Code != "B" || list[0].Source != model.QRCodeSourceSeed {
		t.Fatalf("re-adding must not replace the original entry: %+v", list[0])
	}
}

func TestMemoryStorePing(t *testing.T) {
	store := NewMemoryStore()
	if err := store.Ping(context.Background()); err != nil {
		t.Fatalf("ping: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
}
