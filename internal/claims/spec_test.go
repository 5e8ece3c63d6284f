package claims

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	testCases := []struct {
		name    string
		raw     string
		wantNil bool
		wantLen int
	}{
		{name: "empty", raw: "", wantNil: true},
		{name: "blank", raw: "   ", wantNil: true},
		{name: "not json", raw: "{openbanking", wantNil: true},
		{name: "array", raw: `[{"value":"x"}]`, wantNil: true},
		{name: "null", raw: "null", wantNil: true},
		{name: "string", raw: `"abc"`, wantNil: true},
		{name: "trailing garbage", raw: `{"email":{"essential":true}} x`, wantNil: true},
		{name: "empty object", raw: `{}`, wantLen: 0},
		{
			name:    "two claims",
			raw:     `{"email":{"essential":true},"openbanking_intent_id":{"value":"abc"}}`,
			wantLen: 2,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			spec := Parse(tc.raw)
			if tc.wantNil {
				assert.Nil(t, spec)
				return
			}

			require.NotNil(t, spec)
			assert.Len(t, spec, tc.wantLen)
		})
	}
}

func TestSpec_Descriptor(t *testing.T) {
	spec := Parse(`{
		"essential_only": {"essential": true},
		"value_only": {"value": "v"},
		"values_only": {"values": ["a", "b"]},
		"null_value": {"value": null},
		"all": {"essential": false, "value": 7, "values": [1]},
		"empty_object": {},
		"null_descriptor": null,
		"string_descriptor": "value",
		"essential_not_bool": {"essential": "yes"},
		"values_not_array": {"values": "a"},
		"unknown_keys": {"purpose": "kyc"}
	}`)
	require.NotNil(t, spec)

	testCases := []struct {
		claim  string
		wantOK bool
		check  func(t *testing.T, d Descriptor)
	}{
		{claim: "essential_only", wantOK: true, check: func(t *testing.T, d Descriptor) {
			assert.True(t, d.Essential)
			assert.False(t, d.HasValue)
		}},
		{claim: "value_only", wantOK: true, check: func(t *testing.T, d Descriptor) {
			assert.Equal(t, "v", d.Value)
		}},
		{claim: "values_only", wantOK: true, check: func(t *testing.T, d Descriptor) {
			assert.Equal(t, []any{"a", "b"}, d.Values)
			assert.Nil(t, d.Value)
		}},
		{claim: "null_value", wantOK: true, check: func(t *testing.T, d Descriptor) {
			assert.True(t, d.HasValue)
			assert.Nil(t, d.Value)
		}},
		{claim: "all", wantOK: true, check: func(t *testing.T, d Descriptor) {
			assert.True(t, d.HasEssential)
			assert.False(t, d.Essential)
			assert.Equal(t, json.Number("7"), d.Value)
		}},
		{claim: "empty_object"},
		{claim: "null_descriptor"},
		{claim: "string_descriptor"},
		{claim: "essential_not_bool", wantOK: true, check: func(t *testing.T, d Descriptor) {
			assert.True(t, d.HasEssential)
			assert.False(t, d.Essential)
		}},
		{claim: "values_not_array", wantOK: true, check: func(t *testing.T, d Descriptor) {
			assert.True(t, d.HasValues)
			assert.Nil(t, d.Values)
			assert.False(t, d.HasValue)
		}},
		{claim: "unknown_keys"},
		{claim: "not_requested"},
	}

	for _, tc := range testCases {
		t.Run(tc.claim, func(t *testing.T) {
			d, ok := spec.Descriptor(tc.claim)
			assert.Equal(t, tc.wantOK, ok)

			if tc.check != nil {
				tc.check(t, d)
			}
		})
	}
}

func TestSpec_DescriptorOnNilSpec(t *testing.T) {
	var spec Spec

	_, ok := spec.Descriptor("email")
	assert.False(t, ok)
}
