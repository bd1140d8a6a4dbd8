package files

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidCategory(t *testing.T) {
	for _, slug := range Categories {
		assert.True(t, ValidCategory(slug), slug)
	}
	assert.False(t, ValidCategory(""))
	assert.False(t, ValidCategory("videos"))
	assert.False(t, ValidCategory("Books"))
}

func TestPicsIsKnownCategory(t *testing.T) {
	assert.True(t, ValidCategory(CategoryPics))
}
