package reqctx

import "context"

type ctxKey string

const (
	keyRID      ctxKey = "kiosk_rid"
	keyPickupID ctxKey = "kiosk_pickup_id"
)

// WithRID stores the request correlation id for engine logs.
func WithRID(ctx context.Context, rid string) context.Context {
	return context.WithValue(ctx, keyRID, rid)
}

// RID returns correlation id if present, "-" otherwise.
func RID(ctx context.Context) string {
	v, _ := ctx.Value(keyRID).(string)
	if v == "" {
		return "-"
	}
	return v
}

func WithPickupID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, keyPickupID, id)
}

func PickupID(ctx context.Context) string {
	v, _ := ctx.Value(keyPickupID).(string)
	return v
}
