package menufig

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNextOption(t *testing.T) {
	opts := []Option{
		{Label: "A", Value: "a"},
		{Label: "B", Value: "b"},
		{Label: "C", Value: "c"},
	}
	assert.Equal(t, "b", nextOption(opts, "a", 1))
	assert.Equal(t, "a", nextOption(opts, "c", 1))
	assert.Equal(t, "c", nextOption(opts, "a", -1))
	// Unknown current value starts from the first option.
	assert.Equal(t, "b", nextOption(opts, "zzz", 1))
}

func TestToggleSelection(t *testing.T) {
	assert.Equal(t, []any{"a"}, toggleSelection([]any{}, "a"))
	assert.Equal(t, []any{}, toggleSelection([]any{"a"}, "a"))
	assert.Equal(t, []any{"a", "b"}, toggleSelection([]any{"a"}, "b"))
	assert.Equal(t, []any{"b"}, toggleSelection([]any{"a", "b"}, "a"))
	// Non-list current values start a fresh selection.
	assert.Equal(t, []any{"a"}, toggleSelection(nil, "a"))
}

func TestCheckboxChecked(t *testing.T) {
	assert.True(t, checkboxChecked([]any{Checked}))
	assert.False(t, checkboxChecked([]any{}))
	assert.False(t, checkboxChecked(nil))
	assert.False(t, checkboxChecked("CHECKED")) // must be the sentinel list
}

func TestCoerceInput(t *testing.T) {
	assert.Equal(t, 2.5, coerceInput("number", "2.5"))
	assert.Equal(t, float64(0), coerceInput("number", "0"))
	// Unparseable numerics stay strings; the render function decides.
	assert.Equal(t, "2.5.1", coerceInput("number", "2.5.1"))
	assert.Equal(t, "hello", coerceInput("text", "hello"))
}

func TestInputText(t *testing.T) {
	assert.Equal(t, "", inputText(nil))
	assert.Equal(t, "", inputText([]any{})) // empty-list default
	assert.Equal(t, "Iris", inputText("Iris"))
	assert.Equal(t, "2", inputText(2))
}

func TestNewUI(t *testing.T) {
	ui, err := NewUI(irisSchema(), Config{Render: tagRender})
	require.NoError(t, err)
	require.NotNil(t, ui.Session())
	// The default download sink is installed when none is configured.
	assert.NotNil(t, ui.Session().Config().Download)
}
