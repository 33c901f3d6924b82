package store

import (
	"context"
	"sort"
	"sync"

	"github.com/jayaganeshk/shoptrace/internal/model"
)

// Memory is a mutex-guarded in-memory Store. Every operation touches a
// single record atomically; there are no multi-record transactions.
type Memory struct {
	mu      sync.RWMutex
	coupons map[string]model.Coupon
	orders  map[string]map[string]model.Order
}

var _ Store = (*Memory)(nil)

func NewMemory() *Memory {
	return &Memory{
		coupons: make(map[string]model.Coupon),
		orders:  make(map[string]map[string]model.Order),
	}
}

func (m *Memory) GetCoupon(_ context.Context, code string) (*model.Coupon, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	c, ok := m.coupons[code]
	if !ok {
		return nil, nil
	}
	return &c, nil
}

func (m *Memory) PutCoupon(_ context.Context, c model.Coupon) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.coupons[c.Code] = c
	return nil
}

func (m *Memory) GetOrder(_ context.Context, userID, orderID string) (*model.Order, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	o, ok := m.orders[userID][orderID]
	if !ok {
		return nil, nil
	}
	return &o, nil
}

func (m *Memory) PutOrder(_ context.Context, o model.Order) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	byID, ok := m.orders[o.UserID]
	if !ok {
		byID = make(map[string]model.Order)
		m.orders[o.UserID] = byID
	}
	byID[o.OrderID] = o
	return nil
}

func (m *Memory) ListOrders(_ context.Context, userID string, pageSize int, after string) ([]model.Order, string, error) {
	if pageSize <= 0 {
		pageSize = 100
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	ids := make([]string, 0, len(m.orders[userID]))
	for id := range m.orders[userID] {
		ids = append(ids, id)
	}
	// Order ids are time-ordered, so descending id order is reverse
	// chronological.
	sort.Sort(sort.Reverse(sort.StringSlice(ids)))

	start := 0
	if last := decodeCursor(after); last != "" {
		for i, id := range ids {
			if id == last {
				start = i + 1
				break
			}
		}
	}

	end := start + pageSize
	if end > len(ids) {
		end = len(ids)
	}

	page := make([]model.Order, 0, end-start)
	for _, id := range ids[start:end] {
		page = append(page, m.orders[userID][id])
	}

	next := ""
	if end < len(ids) && len(page) > 0 {
		next = encodeCursor(userID, page[len(page)-1].OrderID)
	}
	return page, next, nil
}
