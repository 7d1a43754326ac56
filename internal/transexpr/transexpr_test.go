package transexpr

import (
	"testing"

	"github.com/sliink/l2gen/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenize(t *testing.T) {
	t.Run("Simple tokens", func(t *testing.T) {
		cases := map[string]Token{
			"a":     {KindID, "a"},
			"true":  {KindKW, "true"},
			"234":   {KindNum, "234"},
			"234.2": {KindNum, "234.2"},
			"a_2":   {KindID, "a_2"},
		}
		for expr, want := range cases {
			tokens, err := Tokenize(expr)
			require.NoError(t, err)
			assert.Equal(t, []Token{want}, tokens, expr)
		}
	})

	t.Run("Composite expression", func(t *testing.T) {
		tokens, err := Tokenize("a > 0.5 AND(NOT b2 == true OR C._x != 3)")
		require.NoError(t, err)
		assert.Equal(t, []Token{
			{KindID, "a"},
			{KindOp, ">"},
			{KindNum, "0.5"},
			{KindKW, "AND"},
			{KindPar, "("},
			{KindKW, "NOT"},
			{KindID, "b2"},
			{KindOp, "=="},
			{KindKW, "true"},
			{KindKW, "OR"},
			{KindID, "C"},
			{KindOp, "."},
			{KindID, "_x"},
			{KindOp, "!="},
			{KindNum, "3"},
			{KindPar, ")"},
		}, tokens)
	})

	t.Run("Conditional operators become keywords", func(t *testing.T) {
		tokens, err := Tokenize("a ? b : c")
		require.NoError(t, err)
		assert.Equal(t, []Token{
			{KindID, "a"},
			{KindKW, "if"},
			{KindID, "b"},
			{KindKW, "else"},
			{KindID, "c"},
		}, tokens)
	})

	t.Run("Unknown characters fail", func(t *testing.T) {
		_, err := Tokenize("a $ b")
		assert.EqualError(t, err, "'$' unexpected in expression 'a $ b'")
	})
}

func TestTranslate(t *testing.T) {
	cases := map[string]string{
		"a":                         "a",
		"!a":                        "not a",
		"a && b":                    "a and b",
		"a || b":                    "a or b",
		"a & b":                     "a&b",
		"a | b":                     "a|b",
		"NOT a AND b":               "not a and b",
		"l2_flags.INVALID == false": "l2_flags.INVALID==False",
		"a >= -1":                   "a>= -1",
	}
	for in, want := range cases {
		got, err := Translate(in)
		require.NoError(t, err)
		assert.Equal(t, want, got, in)
	}
}

func TestTranslateAttributes(t *testing.T) {
	ds := model.NewDataset()
	v, err := model.NewVariable("conc_chl", []string{"y", "x"}, []int{1, 1}, []float64{1}, map[string]interface{}{
		"valid_pixel_expression": "c2rcc_flags.Valid_PE && !l1_flags.INVALID",
		"units":                  "mg m^-3",
	})
	require.NoError(t, err)
	ds.SetDataVar(v)

	translated, err := TranslateAttributes(ds)
	require.NoError(t, err)

	t.Run("Returns a new dataset", func(t *testing.T) {
		assert.NotSame(t, ds, translated)
	})

	t.Run("Translates expression attributes", func(t *testing.T) {
		tv, ok := translated.DataVar("conc_chl")
		require.True(t, ok)
		assert.Equal(t, "c2rcc_flags.Valid_PE and not l1_flags.INVALID", tv.Attrs["valid_pixel_expression"])
		assert.Equal(t, "mg m^-3", tv.Attrs["units"])
	})

	t.Run("Leaves the input untouched", func(t *testing.T) {
		assert.Equal(t, "c2rcc_flags.Valid_PE && !l1_flags.INVALID", v.Attrs["valid_pixel_expression"])
	})

	t.Run("Reports untranslatable expressions", func(t *testing.T) {
		v.Attrs["expression"] = "a # b"
		_, err := TranslateAttributes(ds)
		assert.Error(t, err)
	})
}
