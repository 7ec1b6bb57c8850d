package id

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNew_Unique(t *testing.T) {
	a := New()
	b := New()
	assert.NotEmpty(t, a)
	assert.NotEqual(t, a, b)
}

func TestSlug(t *testing.T) {
	assert.Equal(t, "food-dining", Slug("Food & Dining"))
	assert.Equal(t, "salary", Slug("Salary"))
	assert.Equal(t, "other-income", Slug("  Other   Income "))
	assert.Equal(t, "card2", Slug("Card2"))
	assert.Equal(t, "", Slug("&&&"))
}
