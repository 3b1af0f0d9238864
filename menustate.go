package menufig

// menuCoordinator tracks which single menu is expanded. Opening one
// menu implicitly closes every other; the initial state is all closed.
type menuCoordinator struct {
	open string // menu id, "" when none
}

// Open expands menu id, closing any other.
func (m *menuCoordinator) Open(id string) {
	m.open = id
}

// CloseAll collapses every menu.
func (m *menuCoordinator) CloseAll() {
	m.open = ""
}

// IsOpen reports whether menu id is the one currently expanded.
func (m *menuCoordinator) IsOpen(id string) bool {
	return m.open != "" && m.open == id
}

// OpenStates recomputes the is_open fan-out for all menus at once.
func (m *menuCoordinator) OpenStates(ids []string) map[string]bool {
	out := make(map[string]bool, len(ids))
	for _, id := range ids {
		out[id] = m.IsOpen(id)
	}
	return out
}
