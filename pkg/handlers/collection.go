package handlers

import (
	"context"
	"sync"

	"github.com/goliatone/go-blockgen/pkg/source"
)

// Collection accumulates records declared through handlers until the host
// registers them. It is a source.Source.
type Collection struct {
	mu      sync.Mutex
	records []source.Record
}

var _ source.Source = (*Collection)(nil)

// NewCollection constructs an empty collection.
func NewCollection() *Collection {
	return &Collection{}
}

// Add appends rec.
func (c *Collection) Add(rec source.Record) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.records = append(c.records, rec)
}

// Records returns a copy of the collected records in declaration order.
func (c *Collection) Records() []source.Record {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]source.Record(nil), c.records...)
}

// Len reports the number of collected records.
func (c *Collection) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.records)
}

// Reset drops every collected record.
func (c *Collection) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.records = nil
}

// Load satisfies source.Source.
func (c *Collection) Load(ctx context.Context) ([]source.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return c.Records(), nil
}
