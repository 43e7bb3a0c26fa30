package services

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lonestar/statuary-server/models"
)

func TestUnitAmount(t *testing.T) {
	assert.Equal(t, int64(25000), UnitAmount(250.00))
	assert.Equal(t, int64(27550), UnitAmount(275.50))
	assert.Equal(t, int64(1), UnitAmount(0.01))
	assert.Equal(t, int64(0), UnitAmount(0))

	// Float representation must not shave a cent off.
	assert.Equal(t, int64(1999), UnitAmount(19.99))
	assert.Equal(t, int64(8820), UnitAmount(88.20))
}

func TestMirrorMetadata(t *testing.T) {
	p := createDTO().Product()
	bag := MirrorMetadata("production", p)

	assert.Equal(t, "1", bag["schema_version"])
	assert.Equal(t, "ROM-001", bag["sku"])
	assert.Equal(t, "production", bag["environment"])
	assert.Equal(t, "ROMAN", bag["category"])

	t.Run("nested objects round-trip through json", func(t *testing.T) {
		var dims models.Dimensions
		require.NoError(t, json.Unmarshal([]byte(bag["dimensions"]), &dims))
		assert.Equal(t, p.Dimensions, dims)

		var edition models.Edition
		require.NoError(t, json.Unmarshal([]byte(bag["edition"]), &edition))
		assert.Equal(t, p.Edition, edition)

		var weight models.Weight
		require.NoError(t, json.Unmarshal([]byte(bag["weight"]), &weight))
		assert.Equal(t, p.Weight, weight)
	})
}
