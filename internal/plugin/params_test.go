package plugin

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testSpecs = []ParamSpec{PositiveIntParam("xy_gcp_step")}

func TestApplyParams(t *testing.T) {
	t.Run("Accepts an integer and returns new state", func(t *testing.T) {
		current := Params{}
		next, err := ApplyParams(current, map[string]interface{}{"xy_gcp_step": 4}, testSpecs)
		require.NoError(t, err)

		step, ok := next.Int("xy_gcp_step")
		assert.True(t, ok)
		assert.Equal(t, 4, step)
		assert.Empty(t, current)
	})

	t.Run("Nil unsets the parameter", func(t *testing.T) {
		next, err := ApplyParams(Params{"xy_gcp_step": 4}, map[string]interface{}{"xy_gcp_step": nil}, testSpecs)
		require.NoError(t, err)
		_, ok := next.Int("xy_gcp_step")
		assert.False(t, ok)
	})

	t.Run("Empty input keeps state", func(t *testing.T) {
		next, err := ApplyParams(Params{"xy_gcp_step": 3}, nil, testSpecs)
		require.NoError(t, err)
		assert.Equal(t, Params{"xy_gcp_step": 3}, next)
	})

	t.Run("Replaces the stored value", func(t *testing.T) {
		next, err := ApplyParams(Params{"xy_gcp_step": 3}, map[string]interface{}{"xy_gcp_step": int64(7)}, testSpecs)
		require.NoError(t, err)
		assert.Equal(t, Params{"xy_gcp_step": 7}, next)
	})

	t.Run("Accepts integral JSON numbers", func(t *testing.T) {
		next, err := ApplyParams(nil, map[string]interface{}{"xy_gcp_step": json.Number("6")}, testSpecs)
		require.NoError(t, err)
		assert.Equal(t, Params{"xy_gcp_step": 6}, next)
	})
}

func TestApplyParamsInvalidValues(t *testing.T) {
	for _, value := range []interface{}{"6", 6.0, true, json.Number("6.5"), []int{6}} {
		_, err := ApplyParams(nil, map[string]interface{}{"xy_gcp_step": value}, testSpecs)
		require.Error(t, err)
		assert.Equal(t, "input processor parameter 'xy_gcp_step' must be an integer number", err.Error())
		assert.True(t, errors.Is(err, ErrInvalidParameter))
	}

	for _, value := range []interface{}{0, -3} {
		_, err := ApplyParams(nil, map[string]interface{}{"xy_gcp_step": value}, testSpecs)
		require.Error(t, err)
		assert.Equal(t, "input processor parameter 'xy_gcp_step' must be greater than zero", err.Error())

		var invalid *InvalidParameterError
		assert.True(t, errors.As(err, &invalid))
		assert.Equal(t, "xy_gcp_step", invalid.Name)
	}
}

func TestApplyParamsUnexpected(t *testing.T) {
	t.Run("Lists only the unexpected parameters", func(t *testing.T) {
		_, err := ApplyParams(nil, map[string]interface{}{"xy_gcp_step": 2, "xz_gcp_step": 5}, testSpecs)
		require.Error(t, err)
		assert.Equal(t, "got unexpected input processor parameters {'xz_gcp_step': 5}", err.Error())
		assert.True(t, errors.Is(err, ErrUnexpectedParameters))
		assert.False(t, errors.Is(err, ErrInvalidParameter))
	})

	t.Run("Unknown names are reported before invalid values", func(t *testing.T) {
		_, err := ApplyParams(nil, map[string]interface{}{"xy_gcp_step": "bad", "foo": "bar"}, testSpecs)
		require.Error(t, err)
		assert.Equal(t, "got unexpected input processor parameters {'foo': 'bar'}", err.Error())
	})

	t.Run("Renders values like a mapping literal", func(t *testing.T) {
		_, err := ApplyParams(nil, map[string]interface{}{"b": nil, "a": 1.5, "c": true, "d": 2.0}, nil)
		require.Error(t, err)
		assert.Equal(t, "got unexpected input processor parameters {'a': 1.5, 'b': None, 'c': True, 'd': 2.0}", err.Error())
	})
}
