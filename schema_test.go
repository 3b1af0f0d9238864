package menufig

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validSchema() *Schema {
	return &Schema{
		Menus: []Menu{
			{
				Label: "Display",
				Params: []ParamItem{
					{
						ElemID: "species",
						Type:   TypeDropdown,
						Label:  "Species",
						Value:  "virginica",
						Options: []Option{
							{Label: "Setosa", Value: "setosa"},
							{Label: "Virginica", Value: "virginica"},
						},
					},
					{ElemID: "grid", Type: TypeCheckbox, Label: "Grid"},
				},
			},
		},
	}
}

func TestSchemaValidate(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		assert.NoError(t, validSchema().Validate())
	})

	t.Run("unknown type", func(t *testing.T) {
		s := validSchema()
		s.Menus[0].Params[0].Type = "knob"
		err := s.Validate()
		require.Error(t, err)
		var cfgErr *ConfigError
		require.ErrorAs(t, err, &cfgErr)
		assert.Contains(t, err.Error(), "not recognized")
	})

	t.Run("duplicate elem_id", func(t *testing.T) {
		s := validSchema()
		s.Menus[0].Params[1].ElemID = "species"
		err := s.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "duplicate elem_id")
	})

	t.Run("duplicate elem_id across menus", func(t *testing.T) {
		s := validSchema()
		s.Menus = append(s.Menus, Menu{
			Label:  "Other",
			Params: []ParamItem{{ElemID: "grid", Type: TypeCheckbox}},
		})
		assert.Error(t, s.Validate())
	})

	t.Run("both show_if and hide_if", func(t *testing.T) {
		s := validSchema()
		s.Menus[0].Params[1].ShowIf = &RuleClause{Target: "species", Values: []any{"setosa"}}
		s.Menus[0].Params[1].HideIf = &RuleClause{Target: "species", Values: []any{"setosa"}}
		err := s.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "cannot combine")
	})

	t.Run("rule targeting itself", func(t *testing.T) {
		s := validSchema()
		s.Menus[0].Params[1].ShowIf = &RuleClause{Target: "grid", Values: []any{"x"}}
		err := s.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "targets itself")
	})

	t.Run("dangling rule target", func(t *testing.T) {
		s := validSchema()
		s.Menus[0].Params[1].ShowIf = &RuleClause{Target: "missing", Values: []any{"x"}}
		err := s.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "does not exist")
	})

	t.Run("header items validated", func(t *testing.T) {
		s := validSchema()
		s.Header = []ParamItem{{ElemID: "species", Type: TypeInput}}
		assert.Error(t, s.Validate())
	})
}

func TestLoadSchema(t *testing.T) {
	t.Run("yaml document", func(t *testing.T) {
		doc := `
menus:
  - label: Display
    params:
      - elem_id: species
        type: dropdown
        label: Species
        value: virginica
        options:
          - {label: Setosa, value: setosa}
          - {label: Virginica, value: virginica}
      - elem_id: measures
        type: selector
        label: Measures
        options: [petal_length, petal_width]
header:
  - elem_id: title
    type: input
    label: Title
    value: Iris
    input_type: text
`
		s, err := LoadSchema(strings.NewReader(doc))
		require.NoError(t, err)
		require.Len(t, s.Menus, 1)
		require.Len(t, s.Menus[0].Params, 2)

		// Scalar options expand to label/value pairs.
		sel := s.Menus[0].Params[1]
		require.Len(t, sel.Options, 2)
		assert.Equal(t, "petal_length", sel.Options[0].Label)
		assert.Equal(t, "petal_length", sel.Options[0].Value)

		require.Len(t, s.Header, 1)
		assert.Equal(t, "title", s.Header[0].ElemID)
	})

	t.Run("invalid schema rejected", func(t *testing.T) {
		doc := `
menus:
  - label: Display
    params:
      - elem_id: a
        type: mystery
`
		_, err := LoadSchema(strings.NewReader(doc))
		assert.Error(t, err)
	})

	t.Run("malformed yaml", func(t *testing.T) {
		_, err := LoadSchema(strings.NewReader("menus: ["))
		assert.Error(t, err)
	})
}

func TestParamItemRule(t *testing.T) {
	show := ParamItem{ShowIf: &RuleClause{Target: "t", Values: []any{1}}}
	rule := show.Rule()
	require.NotNil(t, rule)
	assert.Equal(t, ShowIf, rule.Mode)
	assert.Equal(t, "t", rule.Target)

	hide := ParamItem{HideIf: &RuleClause{Target: "t", Values: []any{1}}}
	assert.Equal(t, HideIf, hide.Rule().Mode)

	assert.Nil(t, ParamItem{}.Rule())
}
