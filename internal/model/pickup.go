package model

import "time"

type PickupStatus string

const (
	PickupStatusInitiated  PickupStatus = "initiated"
	PickupStatusProcessing PickupStatus = "processing"
	PickupStatusReady      PickupStatus = "ready"
	PickupStatusCompleted  PickupStatus = "completed"
	PickupStatusCancelled  PickupStatus = "cancelled"
)

// Terminal reports whether no further transition is possible.
func (s PickupStatus) Terminal() bool {
	return s == PickupStatusCompleted || s == PickupStatusCancelled
}

const (
	InstructionsInitiated = "Please wait while we prepare your items..."
	InstructionsCompleted = "Pickup completed successfully. Thank you!"
	InstructionsCancelled = "Pickup cancelled."
)

// ProgressStep is one checkpoint of the simulated retrieval.
type ProgressStep struct {
	Progress     int
	Status       PickupStatus
	Instructions string
}

// ProgressSteps are applied in order, one per scheduler tick.
var ProgressSteps = []ProgressStep{
	{Progress: 25, Status: PickupStatusProcessing, Instructions: "Locating your items..."},
	{Progress: 50, Status: PickupStatusProcessing, Instructions: "Preparing items for pickup..."},
	{Progress: 75, Status: PickupStatusProcessing, Instructions: "Moving items to pickup area..."},
	{Progress: 100, Status: PickupStatusReady, Instructions: "Your items are ready! Please collect them from the pickup area."},
}

type Pickup struct {
	PickupID      string       `gorm:"column:pickup_id;primaryKey;type:varchar(64)"`
	ScanID        string       `gorm:"column:scan_id;type:varchar(64);index;not null"`
	Status        PickupStatus `gorm:"column:status;size:32;not null"`
	Progress      int          `gorm:"column:progress;not null;default:0"`
	Instructions  string       `gorm:"column:instructions;type:text"`
	EstimatedTime int          `gorm:"column:estimated_time;not null"`
	StartedAt     time.Time    `gorm:"column:started_at;not null"`
	LastUpdate    *time.Time   `gorm:"column:last_update"`
	CompletedAt   *time.Time   `gorm:"column:completed_at"`
	CancelledAt   *time.Time   `gorm:"column:cancelled_at"`
}

func (Pickup) TableName() string {
	return "pickups"
}

// Clone returns a copy that shares no pointers with p.
func (p *Pickup) Clone() *Pickup {
	cp := *p
	cp.LastUpdate = cloneTime(p.LastUpdate)
	cp.CompletedAt = cloneTime(p.CompletedAt)
	cp.CancelledAt = cloneTime(p.CancelledAt)
	return &cp
}

func cloneTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := *t
	return &v
}
