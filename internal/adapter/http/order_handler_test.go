package http

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuantity_UnmarshalJSON(t *testing.T) {
	cases := map[string]float64{
		`2`:        2,
		`2.9`:      2.9,
		`"2"`:      2,
		`" 3abc"`:  3,
		`"2.9"`:    2,
		`"-4x"`:    -4,
		`"+7"`:     7,
		`"1e3"`:    1,
		`"lots"`:   0,
		`"-"`:      0,
		`""`:       0,
		`null`:     0,
		`true`:     0,
		`{"n": 1}`: 0,
	}
	for raw, want := range cases {
		var item orderItemReq
		err := json.Unmarshal([]byte(`{"productId":"p1","quantity":`+raw+`}`), &item)

		require.NoError(t, err, raw)
		assert.Equal(t, want, float64(item.Quantity), raw)
	}
}
