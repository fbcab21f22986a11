package helpers

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestCalculateOffsetLimit(t *testing.T) {
	tests := []struct {
		name       string
		page, size int
		wantOffset uint64
		wantLimit  int
	}{
		{name: "first page", page: 1, size: 20, wantOffset: 0, wantLimit: 20},
		{name: "third page", page: 3, size: 10, wantOffset: 20, wantLimit: 10},
		{name: "zero page clamps to first", page: 0, size: 10, wantOffset: 0, wantLimit: 10},
		{name: "negative page clamps to first", page: -5, size: 10, wantOffset: 0, wantLimit: 10},
		{name: "zero size gets default", page: 2, size: 0, wantOffset: 20, wantLimit: DefaultPageSize},
		{name: "oversized size gets default", page: 1, size: 1000, wantOffset: 0, wantLimit: DefaultPageSize},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			offset, limit := CalculateOffsetLimit(tt.page, tt.size)
			assert.Equal(t, tt.wantOffset, offset)
			assert.Equal(t, tt.wantLimit, limit)
		})
	}
}

func TestNewPaginationInfo(t *testing.T) {
	info := NewPaginationInfo(45, 2, 20)
	assert.Equal(t, 2, info.CurrentPage)
	assert.Equal(t, 3, info.TotalPages)
	assert.Equal(t, 20, info.PageSize)
	assert.Equal(t, int64(45), info.TotalItems)

	empty := NewPaginationInfo(0, 1, 20)
	assert.Equal(t, 1, empty.CurrentPage)
	assert.Equal(t, 1, empty.TotalPages)

	// page beyond the end clamps to the last page
	beyond := NewPaginationInfo(10, 9, 20)
	assert.Equal(t, 1, beyond.CurrentPage)
}

func TestParsePaginationParams(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name     string
		query    string
		wantPage int
		wantSize int
	}{
		{name: "defaults", query: "", wantPage: 1, wantSize: 20},
		{name: "explicit values", query: "?page=3&size=50", wantPage: 3, wantSize: 50},
		{name: "garbage falls back", query: "?page=abc&size=xyz", wantPage: 1, wantSize: 20},
		{name: "out of range size", query: "?page=2&size=500", wantPage: 2, wantSize: 20},
		{name: "negative page", query: "?page=-1", wantPage: 1, wantSize: 20},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := gin.CreateTestContext(httptest.NewRecorder())
			c.Request = httptest.NewRequest("GET", "/notes"+tt.query, nil)

			page, size := ParsePaginationParams(c)
			assert.Equal(t, tt.wantPage, page)
			assert.Equal(t, tt.wantSize, size)
		})
	}
}

func TestParseDuration(t *testing.T) {
	assert.Equal(t, 2*time.Hour, ParseDuration("2h", time.Minute))
	assert.Equal(t, time.Minute, ParseDuration("not-a-duration", time.Minute))
	assert.Equal(t, time.Minute, ParseDuration("", time.Minute))
}
