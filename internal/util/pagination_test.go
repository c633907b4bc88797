package util

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCalculate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		page, size      int
		wantFrom, wantN int
	}{
		{page: 1, size: 10, wantFrom: 0, wantN: 10},
		{page: 3, size: 10, wantFrom: 20, wantN: 10},
		{page: 0, size: 0, wantFrom: 0, wantN: DefaultPageSize},
		{page: 2, size: 500, wantFrom: MaxPageSize, wantN: MaxPageSize},
	}

	for _, tt := range tests {
		from, n := Calculate(tt.page, tt.size)
		assert.GreaterOrEqual(t, from, 0)
		assert.Equal(t, tt.wantFrom, from, "page=%d size=%d", tt.page, tt.size)
		assert.Equal(t, tt.wantN, n, "page=%d size=%d", tt.page, tt.size)
	}
}

func TestCalculate_HugePageStaysPastEnd(t *testing.T) {
	t.Parallel()

	from, n := Calculate(math.MaxInt, 100)
	assert.Equal(t, 100, n)
	assert.Equal(t, math.MaxInt/100*100, from)

	from, _ = Calculate(99999999999999999, 100)
	assert.Greater(t, from, 0)
}
