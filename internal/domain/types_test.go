package domain

import (
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNumericInput_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		expect float64
		isNil  bool
	}{
		{name: "number", body: `{"flatFee": 85.5}`, expect: 85.5},
		{name: "string", body: `{"flatFee": "85.5"}`, expect: 85.5},
		{name: "trailing text", body: `{"flatFee": "12abc"}`, expect: 12},
		{name: "garbage", body: `{"flatFee": "abc"}`, expect: 0},
		{name: "empty string", body: `{"flatFee": ""}`, expect: 0},
		{name: "exponent", body: `{"flatFee": 1e2}`, expect: 100},
		{name: "null", body: `{"flatFee": null}`, isNil: true},
		{name: "absent", body: `{}`, isNil: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var in WarehouseInput
			require.NoError(t, json.Unmarshal([]byte(tt.body), &in))

			if tt.isNil {
				assert.Nil(t, in.FlatFee)
				return
			}
			require.NotNil(t, in.FlatFee)
			assert.Equal(t, tt.expect, in.FlatFee.Float64())
		})
	}
}
