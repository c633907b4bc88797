package httpserver

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Skotchmaster/cart_api/internal/service"
)

func itoa(v int64) string { return strconv.FormatInt(v, 10) }

func TestStatusFor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "validation", err: service.ValidateAddItem(0, 1), want: http.StatusBadRequest},
		{name: "wrapped not found", err: fmt.Errorf("get: %w", service.ErrNotFound), want: http.StatusNotFound},
		{name: "conflict", err: service.ErrConflict, want: http.StatusConflict},
		{name: "other", err: errors.New("disk full"), want: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, statusFor(tt.err))
		})
	}
}
