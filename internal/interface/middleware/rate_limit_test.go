package middleware

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestSetRateHeaders(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cases := []struct {
		name          string
		max           int
		count         int64
		resetSec      int
		wantRemaining string
	}{
		{"under limit", 5, 2, 10, "3"},
		{"at limit", 5, 5, 10, "0"},
		{"over limit", 5, 7, 30, "0"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			setRateHeaders(c, tc.max, tc.count, tc.resetSec)

			assert.Equal(t, "5", w.Header().Get("X-RateLimit-Limit"))
			assert.Equal(t, tc.wantRemaining, w.Header().Get("X-RateLimit-Remaining"))
		})
	}
}
