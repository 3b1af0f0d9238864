package menufig

import "reflect"

// boundRule is one registered visibility subscription: when the target
// control's value changes, the named collapse container opens or
// closes.
type boundRule struct {
	elemID string
	rule   VisibilityRule
}

// ruleEngine indexes visibility rules by the parameter they observe.
// Each rule is evaluated independently, on every change of its target,
// against raw control values only; a rule can never observe another
// rule's visibility.
type ruleEngine struct {
	byTarget map[string][]boundRule
}

// newRuleEngine registers the rules of every live item in the schema.
func newRuleEngine(schema *Schema) *ruleEngine {
	e := &ruleEngine{byTarget: make(map[string][]boundRule)}
	schema.eachItem(func(item *ParamItem) {
		if !item.Shown() {
			return
		}
		rule := item.Rule()
		if rule == nil {
			return
		}
		e.byTarget[rule.Target] = append(e.byTarget[rule.Target], boundRule{
			elemID: item.ElemID,
			rule:   *rule,
		})
	})
	return e
}

// CollapseUpdate is a visibility change the host should apply to one
// container.
type CollapseUpdate struct {
	CollapseID string
	Open       bool
}

// OnChange evaluates every rule observing target against its new value
// and returns the resulting container states.
func (e *ruleEngine) OnChange(target string, value any) []CollapseUpdate {
	bound := e.byTarget[target]
	if len(bound) == 0 {
		return nil
	}
	updates := make([]CollapseUpdate, 0, len(bound))
	for _, b := range bound {
		member := containsValue(b.rule.Values, value)
		open := member
		if b.rule.Mode == HideIf {
			open = !member
		}
		updates = append(updates, CollapseUpdate{
			CollapseID: CollapseID(b.elemID),
			Open:       open,
		})
	}
	return updates
}

// containsValue reports set membership using valueEq.
func containsValue(set []any, v any) bool {
	for _, item := range set {
		if valueEq(item, v) {
			return true
		}
	}
	return false
}

// valueEq compares two control values. Numbers compare by magnitude
// regardless of concrete type, since JSON decoding yields float64 while
// schema literals are often int. Lists compare element-wise, so a
// checkbox's sentinel list can be matched by a rule value.
func valueEq(a, b any) bool {
	if fa, ok := asFloat(a); ok {
		if fb, ok := asFloat(b); ok {
			return fa == fb
		}
		return false
	}
	if _, ok := asFloat(b); ok {
		return false
	}
	la, aList := a.([]any)
	lb, bList := b.([]any)
	if aList || bList {
		if !aList || !bList || len(la) != len(lb) {
			return false
		}
		for i := range la {
			if !valueEq(la[i], lb[i]) {
				return false
			}
		}
		return true
	}
	return reflect.DeepEqual(a, b)
}

func asFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	}
	return 0, false
}
