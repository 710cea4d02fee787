package orders

import (
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewOrderIDFormat(t *testing.T) {
	now := time.Date(2025, 8, 31, 14, 35, 12, 0, time.UTC)
	id := NewOrderID(now)
	assert.Regexp(t, regexp.MustCompile(`^ORD-20250831-143512-[0-9A-F]{6}$`), id)
}

func TestNewOrderIDUniqueWithinSameTick(t *testing.T) {
	now := time.Now()
	seen := make(map[string]struct{})
	for i := 0; i < 200; i++ {
		id := NewOrderID(now)
		if _, dup := seen[id]; dup {
			t.Fatalf("duplicate order id %s", id)
		}
		seen[id] = struct{}{}
	}
}
