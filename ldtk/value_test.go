package ldtk

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseValue_Kinds(t *testing.T) {
	tests := []struct {
		name string
		text string
		want Value
	}{
		{name: "null", text: "null", want: NullValue()},
		{name: "true", text: "true", want: BoolValue(true)},
		{name: "int", text: "42", want: IntValue(42)},
		{name: "negative int", text: "-7", want: IntValue(-7)},
		{name: "float", text: "1.5", want: FloatValue(1.5)},
		{name: "integral float", text: "3.0", want: FloatValue(3)},
		{name: "exponent", text: "1e3", want: FloatValue(1000)},
		{name: "int overflow becomes float", text: "18446744073709551616", want: FloatValue(18446744073709551616)},
		{name: "string", text: `"hello"`, want: StringValue("hello")},
		{name: "empty array", text: "[]", want: ArrayValue()},
		{name: "empty object", text: "{}", want: ObjectValue(nil)},
		{
			name: "nested",
			text: `{"pos":{"cx":3,"cy":4},"tags":["a",null]}`,
			want: ObjectValue(map[string]Value{
				"pos":  ObjectValue(map[string]Value{"cx": IntValue(3), "cy": IntValue(4)}),
				"tags": ArrayValue(StringValue("a"), NullValue()),
			}),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseValue([]byte(tt.text))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseValue_Errors(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{name: "empty", text: ""},
		{name: "truncated", text: `{"a":`},
		{name: "trailing data", text: `{} {}`},
		{name: "bare word", text: `nope`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseValue([]byte(tt.text))
			assert.Error(t, err)
		})
	}
}

func TestParseValue_TrailingData(t *testing.T) {
	_, err := ParseValue([]byte(`[1] "x"`))

	var trailing *TrailingDataError
	require.ErrorAs(t, err, &trailing)
	assert.Equal(t, "x", trailing.Token)
	assert.Equal(t, int64(7), trailing.Offset)
}

func TestValue_UnmarshalJSON(t *testing.T) {
	type holder struct {
		Name  string `json:"name"`
		Value Value  `json:"value"`
	}

	var h holder
	require.NoError(t, json.Unmarshal([]byte(`{"name":"spawn","value":{"cx":3,"tags":["a"],"w":1.5}}`), &h))

	assert.Equal(t, "spawn", h.Name)
	assert.Equal(t, ObjectValue(map[string]Value{
		"cx":   IntValue(3),
		"tags": ArrayValue(StringValue("a")),
		"w":    FloatValue(1.5),
	}), h.Value)

	out, err := json.Marshal(h)
	require.NoError(t, err)
	assert.Equal(t, `{"name":"spawn","value":{"cx":3,"tags":["a"],"w":1.5}}`, string(out))

	t.Run("null", func(t *testing.T) {
		var h holder
		require.NoError(t, json.Unmarshal([]byte(`{"value":null}`), &h))
		assert.True(t, h.Value.IsNull())
	})

	t.Run("invalid", func(t *testing.T) {
		var vs []Value
		err := json.Unmarshal([]byte(`[1, {"a": tru}]`), &vs)
		require.Error(t, err)
	})
}

func TestValue_MarshalJSON_Canonical(t *testing.T) {
	v := ObjectValue(map[string]Value{
		"z": FloatValue(2),
		"a": ArrayValue(IntValue(1), BoolValue(false), NullValue()),
		"m": StringValue("<tag> & \"quote\""),
	})

	b, err := v.MarshalJSON()
	require.NoError(t, err)
	assert.Equal(t, `{"a":[1,false,null],"m":"<tag> & \"quote\"","z":2.0}`, string(b))
}

func TestValue_RoundTrip(t *testing.T) {
	texts := []string{
		`null`,
		`-0.0`,
		`1e+21`,
		`0.1`,
		`[1,2.5,"x",[],{}]`,
		`{"color":"#FF00AA","points":[{"cx":1,"cy":2}],"ok":true}`,
		`"multi\nline é"`,
	}

	for _, text := range texts {
		t.Run(text, func(t *testing.T) {
			v, err := ParseValue([]byte(text))
			require.NoError(t, err)

			again := MustParseValue(v.String())
			assert.Equal(t, v, again)
			assert.Equal(t, v.Kind(), again.Kind())
		})
	}
}

func TestValue_MarshalJSON_Unrepresentable(t *testing.T) {
	_, err := FloatValue(math.NaN()).MarshalJSON()
	require.Error(t, err)

	_, err = ArrayValue(FloatValue(math.Inf(1))).MarshalJSON()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "$[0]")

	_, err = ObjectValue(map[string]Value{"s": StringValue("\xff")}).MarshalJSON()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "$.s")
}

func TestValue_Accessors(t *testing.T) {
	v := MustParseValue(`{"n":3,"f":0.5,"s":"x","b":true,"list":[10,20]}`)

	assert.Equal(t, KindObject, v.Kind())
	assert.Equal(t, 5, v.Len())
	assert.Equal(t, []string{"b", "f", "list", "n", "s"}, v.Keys())

	n, _ := v.Get("n")
	i, ok := n.Int()
	assert.True(t, ok)
	assert.Equal(t, int64(3), i)

	f, ok := n.Float()
	assert.True(t, ok)
	assert.InDelta(t, 3.0, f, 0)

	half, _ := v.Get("f")
	_, ok = half.Int()
	assert.False(t, ok)

	s, _ := v.Get("s")
	str, ok := s.Str()
	assert.True(t, ok)
	assert.Equal(t, "x", str)

	b, _ := v.Get("b")
	bv, ok := b.Bool()
	assert.True(t, ok)
	assert.True(t, bv)

	list, _ := v.Get("list")
	assert.Equal(t, IntValue(20), list.Index(1))
	assert.True(t, list.Index(5).IsNull())

	items := list.Items()
	items[0] = StringValue("changed")
	assert.Equal(t, IntValue(10), list.Index(0))

	_, ok = v.Get("missing")
	assert.False(t, ok)
}

func TestMustParseValue_Panics(t *testing.T) {
	assert.Panics(t, func() { MustParseValue(`{"broken"`) })
}

func TestKind_String(t *testing.T) {
	assert.Equal(t, "null", KindNull.String())
	assert.Equal(t, "float", KindFloat.String())
	assert.Equal(t, "object", KindObject.String())
	assert.Equal(t, "Kind(9)", Kind(9).String())
}
