package validation

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Name     string   `json:"name" validate:"required,max=5"`
	Group    string   `json:"walk_group,omitempty" validate:"omitempty,uuid"`
	Action   string   `json:"action" validate:"oneof=accept reject"`
	Keywords []string `json:"keywords" validate:"max=2"`
}

func TestStructReportsJSONFieldNames(t *testing.T) {
	v := New()

	err := v.Struct(sample{Name: "toolong", Group: "nope", Action: "maybe", Keywords: []string{"a", "b", "c"}})
	require.Error(t, err)

	var verr *Error
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, map[string]string{
		"name":       "must not exceed 5 characters",
		"walk_group": "must be a valid UUID",
		"action":     "must be one of: accept reject",
		"keywords":   "must contain at most 2 items",
	}, verr.Fields)
	assert.Contains(t, err.Error(), "action must be one of")
}

func TestStructPasses(t *testing.T) {
	assert.NoError(t, New().Struct(sample{Name: "Rex", Action: "accept"}))
}
