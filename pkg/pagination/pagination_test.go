package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOffsetRequest_Validate_Normalizes(t *testing.T) {
	r := &OffsetRequest{}
	r.Validate()
	assert.Equal(t, 1, r.Page)
	assert.Equal(t, PageDefaultSize, r.Size)

	r = &OffsetRequest{Page: -3, Size: 500}
	r.Validate()
	assert.Equal(t, 1, r.Page)
	assert.Equal(t, PageMaxSize, r.Size)

	r = &OffsetRequest{Page: 2, Size: 25}
	r.Validate()
	assert.Equal(t, 2, r.Page)
	assert.Equal(t, 25, r.Size)
}

func TestNewOffsetResult_HasMore(t *testing.T) {
	first := NewOffsetResult(make([]string, 10), 25, 1, 10)
	assert.True(t, first.HasMore)
	assert.Equal(t, int64(25), first.Total)

	last := NewOffsetResult(make([]string, 5), 25, 3, 10)
	assert.False(t, last.HasMore)

	exact := NewOffsetResult(make([]string, 10), 20, 2, 10)
	assert.False(t, exact.HasMore)
}
