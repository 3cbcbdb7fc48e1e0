package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStringListRoundTrip(t *testing.T) {
	tests := []struct {
		name   string
		values []string
	}{
		{name: "empty", values: []string{}},
		{name: "nil encodes as empty", values: nil},
		{name: "single", values: []string{"hiking"}},
		{name: "several", values: []string{"hiking", "food", "museums"}},
		{name: "values with quotes", values: []string{`say "hi"`, "a,b"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			encoded := EncodeStringList(tt.values)
			decoded := DecodeStringList(encoded)
			if len(tt.values) == 0 {
				assert.Empty(t, decoded)
			} else {
				assert.Equal(t, tt.values, decoded)
			}
		})
	}
}

func TestDecodeStringListTolerance(t *testing.T) {
	tests := []struct {
		name  string
		input any
		want  []string
	}{
		{name: "nil", input: nil, want: []string{}},
		{name: "empty text", input: "", want: []string{}},
		{name: "corrupt json", input: `["hiking",`, want: []string{}},
		{name: "wrong json shape", input: `{"a":1}`, want: []string{}},
		{name: "json null", input: "null", want: []string{}},
		{name: "number", input: 42.0, want: []string{}},
		{name: "already a slice", input: []string{"food"}, want: []string{"food"}},
		{name: "decoded any slice", input: []any{"food", 3.0, "art"}, want: []string{"food", "art"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DecodeStringList(tt.input))
		})
	}
}

func TestFieldAccessors(t *testing.T) {
	r := Record{
		"name":   "Paris",
		"amount": 12.5,
		"day":    int64(3),
		"read":   float64(1),
		"flag":   "0",
		"bytes":  []byte("hello"),
		"gone":   nil,
	}

	assert.Equal(t, "Paris", StringField(r, "name"))
	assert.Equal(t, "hello", StringField(r, "bytes"))
	assert.Equal(t, "", StringField(r, "gone"))
	assert.Equal(t, "", StringField(r, "missing"))
	assert.Equal(t, 12.5, FloatField(r, "amount"))
	assert.Equal(t, 3, IntField(r, "day"))
	assert.True(t, BoolField(r, "read"))
	assert.False(t, BoolField(r, "flag"))
	assert.False(t, BoolField(r, "missing"))
}
