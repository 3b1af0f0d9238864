package menufig

import (
	"strconv"
)

// Action identifiers for the buttons in a menu footer. The hosting
// layer maps clicks on these back into events.
const (
	ActionOpen     = "open-button"
	ActionRedraw   = "redraw-button"
	ActionClose    = "close-button"
	ActionDownload = "download-settings-button"
)

// Mark is one labelled tick on a slider. Every slider exposes exactly
// three: min, midpoint, max.
type Mark struct {
	Value float64
	Label string
}

// Control is the compiled descriptor for a single live parameter.
// Which fields are meaningful depends on Type.
type Control struct {
	ElemID string
	Type   ParamType
	Label  string

	// Value is the resolved initial value: session override, then the
	// item default, then an empty list.
	Value any

	// Dropdown: visible options only. Selector: all options.
	Options []Option
	// Multi marks a selector (set-valued) control.
	Multi bool

	// Slider fields.
	Min, Max, Step float64
	Marks          []Mark

	// Input kind for free-form inputs.
	InputType string
}

// Collapse wraps a control in its visibility container. ID is
// "{elem_id}-collapse"; containers start open and are toggled by the
// visibility rule engine.
type Collapse struct {
	ID      string
	Open    bool
	Control Control
}

// CollapseID returns the visibility container id for a parameter.
func CollapseID(elemID string) string {
	return elemID + "-collapse"
}

// MenuPane is one compiled menu: its controls split into display
// columns, plus the footer actions the host should paint.
type MenuPane struct {
	ID      string
	Label   string
	Columns [][]Collapse
	Footer  []string
}

// WidgetTree is the output of Compile: everything the hosting layer
// needs to materialize the UI.
type WidgetTree struct {
	Menus  []MenuPane
	Header *MenuPane
}

// Controls returns every live control in the tree, menu order first,
// header last.
func (t *WidgetTree) Controls() []Control {
	var out []Control
	walk := func(p *MenuPane) {
		for _, col := range p.Columns {
			for _, c := range col {
				out = append(out, c.Control)
			}
		}
	}
	for i := range t.Menus {
		walk(&t.Menus[i])
	}
	if t.Header != nil {
		walk(t.Header)
	}
	return out
}

// Compile validates the schema and lowers every live parameter into a
// control descriptor wrapped in a collapse container. overrides maps
// elem_id to an initial value that takes precedence over the item
// default; ncols controls the column split (minimum 1).
func Compile(schema *Schema, overrides map[string]any, ncols int) (*WidgetTree, error) {
	if err := schema.Validate(); err != nil {
		return nil, err
	}
	if ncols < 1 {
		ncols = 1
	}

	tree := &WidgetTree{}
	for ix, menu := range schema.Menus {
		pane, err := compileMenu(MenuID(ix), menu.Label, menu.Params, overrides, ncols)
		if err != nil {
			return nil, err
		}
		pane.Footer = []string{ActionRedraw, ActionClose, ActionDownload}
		tree.Menus = append(tree.Menus, *pane)
	}
	if len(schema.Header) > 0 {
		pane, err := compileMenu(HeaderMenuID, "", schema.Header, overrides, ncols)
		if err != nil {
			return nil, err
		}
		// The header menu is always visible, so closing makes no sense.
		pane.Footer = []string{ActionRedraw}
		tree.Header = pane
	}
	return tree, nil
}

func compileMenu(id, label string, params []ParamItem, overrides map[string]any, ncols int) (*MenuPane, error) {
	live := make([]ParamItem, 0, len(params))
	for _, item := range params {
		if item.Shown() {
			live = append(live, item)
		}
	}

	pane := &MenuPane{ID: id, Label: label}
	for _, column := range SplitColumns(live, ncols) {
		col := make([]Collapse, 0, len(column))
		for _, item := range column {
			ctl, err := compileControl(item, overrides)
			if err != nil {
				return nil, err
			}
			col = append(col, Collapse{
				ID:      CollapseID(item.ElemID),
				Open:    true,
				Control: ctl,
			})
		}
		pane.Columns = append(pane.Columns, col)
	}
	return pane, nil
}

func compileControl(item ParamItem, overrides map[string]any) (Control, error) {
	ctl := Control{
		ElemID: item.ElemID,
		Type:   item.Type,
		Label:  item.Label,
		Value:  resolveDefault(item, overrides),
	}

	switch item.Type {
	case TypeDropdown:
		for _, opt := range item.Options {
			if opt.Shown() {
				ctl.Options = append(ctl.Options, opt)
			}
		}

	case TypeCheckbox:
		// Value is a list holding the Checked sentinel, or empty.

	case TypeSelector:
		ctl.Options = item.Options
		ctl.Multi = true

	case TypeSlider:
		ctl.Min = item.MinVal
		ctl.Max = item.MaxVal
		ctl.Step = item.Step
		mid := item.MinVal + (item.MaxVal-item.MinVal)/2
		for _, v := range []float64{item.MinVal, mid, item.MaxVal} {
			ctl.Marks = append(ctl.Marks, Mark{Value: v, Label: markLabel(v, item.Suffix)})
		}

	case TypeInput:
		ctl.InputType = item.InputType

	default:
		// Unreachable on validated schemas; kept so Compile never
		// silently produces a control of unknown shape.
		return Control{}, configErrorf("parameter type not recognized: %q (elem_id %q)", item.Type, item.ElemID)
	}
	return ctl, nil
}

// resolveDefault applies the resolution order: session override, item
// default, empty list.
func resolveDefault(item ParamItem, overrides map[string]any) any {
	if v, ok := overrides[item.ElemID]; ok {
		return v
	}
	if item.Value != nil {
		return item.Value
	}
	return []any{}
}

// markLabel renders a slider tick: whole numbers print as integers,
// everything else as-is, with the optional unit suffix appended.
func markLabel(v float64, suffix string) string {
	if v == float64(int64(v)) {
		return strconv.FormatInt(int64(v), 10) + suffix
	}
	return strconv.FormatFloat(v, 'g', -1, 64) + suffix
}
