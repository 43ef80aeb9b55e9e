package tool

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate(t *testing.T) {
	schema := Object(map[string]Property{
		"path":  {Type: "string"},
		"limit": {Type: "number"},
		"all":   {Type: "boolean"},
		"tags":  {Type: "array"},
		"extra": {Type: "object"},
	}, "path")

	tests := []struct {
		name    string
		args    map[string]any
		wantErr error
	}{
		{
			name: "all valid",
			args: map[string]any{"path": "a.txt", "limit": float64(5), "all": true},
		},
		{
			name: "required only",
			args: map[string]any{"path": "a.txt"},
		},
		{
			name:    "missing required",
			args:    map[string]any{"limit": float64(5)},
			wantErr: ErrMissingArgument,
		},
		{
			name:    "wrong type for string",
			args:    map[string]any{"path": 42},
			wantErr: ErrInvalidArgument,
		},
		{
			name:    "wrong type for boolean",
			args:    map[string]any{"path": "a", "all": "yes"},
			wantErr: ErrInvalidArgument,
		},
		{
			name: "int accepted as number",
			args: map[string]any{"path": "a", "limit": 3},
		},
		{
			name: "unknown keys ignored",
			args: map[string]any{"path": "a", "bogus": struct{}{}},
		},
		{
			name: "array and object types",
			args: map[string]any{"path": "a", "tags": []any{"x"}, "extra": map[string]any{"k": "v"}},
		},
		{
			name:    "array wrong type",
			args:    map[string]any{"path": "a", "tags": "x"},
			wantErr: ErrInvalidArgument,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := schema.Validate(tc.args)
			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestValidateDeterministicError(t *testing.T) {
	schema := Object(map[string]Property{
		"alpha": {Type: "string"},
		"zeta":  {Type: "string"},
	})
	args := map[string]any{"alpha": 1, "zeta": 2}

	// Both keys are malformed; the first in sorted order is reported.
	for range 10 {
		err := schema.Validate(args)
		require.ErrorIs(t, err, ErrInvalidArgument)
		assert.Contains(t, err.Error(), "alpha")
	}
}

func TestSchemaMap(t *testing.T) {
	schema := Object(map[string]Property{
		"path": {Type: "string", Description: "File path"},
	}, "path")

	m := schema.Map()
	assert.Equal(t, "object", m["type"])
	assert.Equal(t, []string{"path"}, m["required"])

	props, ok := m["properties"].(map[string]any)
	require.True(t, ok)
	prop, ok := props["path"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "string", prop["type"])
	assert.Equal(t, "File path", prop["description"])
}

func TestSchemaMapOmitsEmptyRequired(t *testing.T) {
	m := Object(map[string]Property{"q": {Type: "string"}}).Map()
	_, present := m["required"]
	assert.False(t, present)
}
