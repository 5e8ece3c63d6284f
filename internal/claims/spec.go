package claims

import (
	"encoding/json"
	"io"
	"strings"
)

// Spec is a parsed claims request keyed by claim name.
type Spec map[string]any

// Descriptor is a well-formed per-claim request. The Has fields report which
// keys were present; Essential and Values are only filled when the value has
// the expected JSON type.
type Descriptor struct {
	Essential    bool
	HasEssential bool
	Value        any
	HasValue     bool
	Values       []any
	HasValues    bool
}

// Parse decodes the JSON of a claims request. Empty or malformed input
// yields a nil Spec. Numbers are kept as json.Number so values round-trip
// exactly.
func Parse(raw string) Spec {
	if strings.TrimSpace(raw) == "" {
		return nil
	}

	dec := json.NewDecoder(strings.NewReader(raw))
	dec.UseNumber()

	var m map[string]any
	if err := dec.Decode(&m); err != nil || m == nil {
		return nil
	}

	// trailing garbage makes the whole document malformed
	if _, err := dec.Token(); err != io.EOF { //nolint:errorlint // io.EOF is returned unwrapped
		return nil
	}

	return Spec(m)
}

// Descriptor returns the descriptor for the claim. ok is false when the claim
// is not requested or its descriptor is not an object carrying at least one
// of "essential", "value" or "values".
func (s Spec) Descriptor(claimName string) (Descriptor, bool) {
	var d Descriptor

	raw, found := s[claimName]
	if !found {
		return d, false
	}

	obj, isObject := raw.(map[string]any)
	if !isObject {
		return d, false
	}

	if v, found := obj["essential"]; found {
		d.HasEssential = true
		d.Essential, _ = v.(bool)
	}

	if v, found := obj["value"]; found {
		d.Value = v
		d.HasValue = true
	}

	if v, found := obj["values"]; found {
		d.HasValues = true
		d.Values, _ = v.([]any)
	}

	if !d.HasEssential && !d.HasValue && !d.HasValues {
		return Descriptor{}, false
	}

	return d, true
}
