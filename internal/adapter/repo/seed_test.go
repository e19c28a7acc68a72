package repo

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeedProducts(t *testing.T) {
	now := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)

	products, err := SeedProducts(now)

	require.NoError(t, err)
	require.NotEmpty(t, products)
	seen := map[string]bool{}
	for i, p := range products {
		assert.NoError(t, p.Validate(), p.Name)
		assert.Len(t, p.ID, 24, p.Name)
		assert.False(t, seen[p.ID], "duplicate id %s", p.ID)
		seen[p.ID] = true
		assert.Equal(t, now.Add(-time.Duration(i)*time.Second), p.CreatedAt)
	}
}
