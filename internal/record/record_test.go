package record

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRecord_Get(t *testing.T) {
	r := Record{"a": "x", "b": nil}

	_, ok := r.Get("a")
	assert.True(t, ok)

	_, ok = r.Get("b")
	assert.False(t, ok, "nil value counts as absent")

	_, ok = r.Get("missing")
	assert.False(t, ok)

	var empty Record
	_, ok = empty.Get("a")
	assert.False(t, ok, "nil record never panics")
}

func TestRecord_Text(t *testing.T) {
	r := Record{
		"str":   "hello",
		"big":   float64(12_000_000),
		"dec":   2.5,
		"f32":   float32(1500),
		"int":   42,
		"truth": true,
	}

	assert.Equal(t, "hello", r.Text("str"))
	assert.Equal(t, "12000000", r.Text("big"), "large JSON numbers stay in decimal notation")
	assert.Equal(t, "2.5", r.Text("dec"))
	assert.Equal(t, "1500", r.Text("f32"))
	assert.Equal(t, "42", r.Text("int"))
	assert.Equal(t, "true", r.Text("truth"))
	assert.Equal(t, "", r.Text("missing"))
}

func TestRecord_Filled(t *testing.T) {
	tests := []struct {
		name string
		rec  Record
		key  string
		want bool
	}{
		{"non-empty string", Record{"k": "value"}, "k", true},
		{"whitespace only", Record{"k": "   "}, "k", false},
		{"empty string", Record{"k": ""}, "k", false},
		{"number", Record{"k": 42}, "k", true},
		{"bool false still filled", Record{"k": false}, "k", true},
		{"nil value", Record{"k": nil}, "k", false},
		{"absent", Record{}, "k", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.rec.Filled(tt.key))
		})
	}
}

func TestRecord_Truthy(t *testing.T) {
	tests := []struct {
		name string
		rec  Record
		want bool
	}{
		{"bool true", Record{"k": true}, true},
		{"bool false", Record{"k": false}, false},
		{"string true", Record{"k": "true"}, true},
		{"string True", Record{"k": "True"}, true},
		{"string false", Record{"k": "false"}, false},
		{"string yes is not truthy", Record{"k": "yes"}, false},
		{"number is not truthy", Record{"k": 1}, false},
		{"absent", Record{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.rec.Truthy("k"))
		})
	}
}

func TestRecord_IntOr(t *testing.T) {
	r := Record{
		"int":    3,
		"float":  2.9,
		"str":    "4",
		"strf":   "4.7",
		"bad":    "many",
		"absent": nil,
	}

	assert.Equal(t, 3, r.IntOr("int", 0))
	assert.Equal(t, 2, r.IntOr("float", 0))
	assert.Equal(t, 4, r.IntOr("str", 0))
	assert.Equal(t, 4, r.IntOr("strf", 0))
	assert.Equal(t, 0, r.IntOr("bad", 0))
	assert.Equal(t, 7, r.IntOr("absent", 7))
	assert.Equal(t, 7, r.IntOr("missing", 7))
}

func TestRecord_Clone(t *testing.T) {
	orig := Record{"a": "1", "b": 2}
	c := orig.Clone()
	c["a"] = "changed"
	c["new"] = true

	assert.Equal(t, "1", orig["a"], "clone must not mutate original")
	assert.NotContains(t, orig, "new")

	var nilRec Record
	assert.NotNil(t, nilRec.Clone())
}
