package domain

import (
	"bytes"
	"errors"

	"delivery-quote-backend/pkg/utils"

	"github.com/goccy/go-json"
)

// NumericInput holds a form value that should be a number but may arrive as a JSON
// number, a string, or null. It keeps the raw text; Float64 coerces it.
type NumericInput string

func (n *NumericInput) UnmarshalJSON(data []byte) error {
	if n == nil {
		return errors.New("NumericInput: UnmarshalJSON on nil pointer")
	}
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("null")):
		*n = ""
	case len(data) > 0 && data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*n = NumericInput(s)
	default:
		*n = NumericInput(data)
	}
	return nil
}

// Float64 returns the value the way a browser's parseFloat(x) || 0 would.
func (n NumericInput) Float64() float64 {
	return utils.CoerceFloat(string(n))
}
