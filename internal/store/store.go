// Package store defines the key-value interface the pipeline reads and
// writes through, plus the in-memory implementation used by the service.
// The storage engine itself is an external concern; anything that can do
// get/put by key can sit behind this interface.
package store

import (
	"context"
	"encoding/base64"
	"encoding/json"

	"github.com/jayaganeshk/shoptrace/internal/model"
)

// Store is the narrow contract the orchestrator needs: single-record get/put
// plus a paginated per-user order listing. Absent records come back as
// (nil, nil), not as errors.
type Store interface {
	GetCoupon(ctx context.Context, code string) (*model.Coupon, error)
	PutCoupon(ctx context.Context, c model.Coupon) error
	GetOrder(ctx context.Context, userID, orderID string) (*model.Order, error)
	PutOrder(ctx context.Context, o model.Order) error
	// ListOrders returns up to pageSize orders for userID, newest first.
	// after is an opaque cursor from a previous page, empty for the first
	// page. The returned cursor is empty when no more pages exist.
	ListOrders(ctx context.Context, userID string, pageSize int, after string) ([]model.Order, string, error)
}

// cursorKey is the last-seen composite key serialized into the opaque
// pagination cursor.
type cursorKey struct {
	UserID  string `json:"user_id"`
	OrderID string `json:"order_id"`
}

func encodeCursor(userID, orderID string) string {
	raw, _ := json.Marshal(cursorKey{UserID: userID, OrderID: orderID})
	return base64.StdEncoding.EncodeToString(raw)
}

// decodeCursor returns the last-seen order id, or "" when the cursor is
// absent or unreadable. An unreadable cursor restarts from the first page.
func decodeCursor(after string) string {
	if after == "" {
		return ""
	}
	raw, err := base64.StdEncoding.DecodeString(after)
	if err != nil {
		return ""
	}
	var key cursorKey
	if err := json.Unmarshal(raw, &key); err != nil {
		return ""
	}
	return key.OrderID
}
