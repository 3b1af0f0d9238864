package menufig

import (
	"fmt"

	"github.com/google/uuid"
)

// EventKind enumerates everything the hosting layer can report.
type EventKind int

const (
	// ControlChanged carries a live control's new value.
	ControlChanged EventKind = iota
	// MenuOpened reports a click on a menu's open button.
	MenuOpened
	// MenuClosed reports a click on any close button.
	MenuClosed
	// RedrawRequested reports a click on a redraw button.
	RedrawRequested
	// ExportRequested asks for the settings document to be downloaded.
	ExportRequested
)

// Event is a single time-ordered occurrence from the hosting UI layer.
// Elem is the control elem_id for ControlChanged and the menu id for
// MenuOpened; Value is the new control value for ControlChanged.
type Event struct {
	Kind  EventKind
	Elem  string
	Value any
}

// DownloadSink receives exported settings documents from the session.
type DownloadSink func(doc SettingsDocument) error

// DefaultFigure is the figure id used when Config.Figures is empty.
const DefaultFigure = "rendered-figure"

// Config collects the per-session options around a schema.
type Config struct {
	// Title of the application; shown in the navbar brand.
	Title string
	// Product drives the settings download filename,
	// "<product>.settings.json".
	Product string
	// NCols is the number of display columns per menu (default 2).
	NCols int
	// Theme names one of the built-in style sets (default "LUMEN").
	Theme string

	// Figures lists the figure slot ids, in display order. Defaults to
	// a single DefaultFigure slot.
	Figures []string
	// Render drives the first figure. Mutually exclusive with
	// RenderEach.
	Render RenderFunc
	// RenderEach maps figure ids to their render functions; every key
	// must appear in Figures.
	RenderEach map[string]RenderFunc

	// Data is handed verbatim to every render function invocation.
	Data any
	// InitialSettings override item defaults per elem_id.
	InitialSettings map[string]any
	// StateVariables declares named session-scoped value slots.
	StateVariables []string

	// RenderOnEveryChange disables the menu-history debounce: every
	// snapshot change triggers a render, even after a menu has been
	// opened.
	RenderOnEveryChange bool

	// Download receives exported settings documents. Optional; without
	// it ExportRequested events fail.
	Download DownloadSink
}

func (c *Config) normalize() {
	if c.Title == "" {
		c.Title = "Interactive Figure"
	}
	if c.Product == "" {
		c.Product = "menufig"
	}
	if c.NCols < 1 {
		c.NCols = 2
	}
	if c.Theme == "" {
		c.Theme = "LUMEN"
	}
	if len(c.Figures) == 0 {
		c.Figures = []string{DefaultFigure}
	}
}

func (c *Config) validate() error {
	if c.Render == nil && len(c.RenderEach) == 0 {
		return configErrorf("no render function configured")
	}
	if c.Render != nil && len(c.RenderEach) > 0 {
		return configErrorf("set either Render or RenderEach, not both")
	}
	figures := make(map[string]bool, len(c.Figures))
	for _, id := range c.Figures {
		if figures[id] {
			return configErrorf("duplicate figure id %q", id)
		}
		figures[id] = true
	}
	for id := range c.RenderEach {
		if !figures[id] {
			return configErrorf("render function key %q matches no figure", id)
		}
	}
	return nil
}

// renderFuncs resolves the per-figure function map: a single Render
// drives the first figure.
func (c *Config) renderFuncs() map[string]RenderFunc {
	if c.Render != nil {
		return map[string]RenderFunc{c.Figures[0]: c.Render}
	}
	return c.RenderEach
}

// Session is one reactive state stream: the compiled widget tree, the
// settings snapshot, the menu open/close state, and the figure slots,
// all driven through Dispatch. The hosting layer guarantees events
// arrive one at a time, so a Session does no locking of its own.
type Session struct {
	id     string
	cfg    Config
	schema *Schema
	tree   *WidgetTree

	store    *snapshotStore
	coord    menuCoordinator
	rules    *ruleEngine
	slots    []*FigureSlot
	slotByID map[string]*FigureSlot
	collapse map[string]bool
	state    map[string]any

	// everOpened flips on the first MenuOpened event and switches the
	// render trigger rule from render-per-change to explicit-redraw.
	everOpened bool
}

// NewSession validates the schema and configuration, compiles the
// widget tree, and performs the initial default render. Configuration
// errors are fatal: a session that fails to construct must abort
// startup.
func NewSession(schema *Schema, cfg Config) (*Session, error) {
	cfg.normalize()
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	tree, err := Compile(schema, cfg.InitialSettings, cfg.NCols)
	if err != nil {
		return nil, err
	}

	s := &Session{
		id:       uuid.NewString(),
		cfg:      cfg,
		schema:   schema,
		tree:     tree,
		store:    newSnapshotStore(tree.Controls()),
		rules:    newRuleEngine(schema),
		slotByID: make(map[string]*FigureSlot),
		collapse: make(map[string]bool),
		state:    make(map[string]any),
	}
	for _, ctl := range tree.Controls() {
		s.collapse[CollapseID(ctl.ElemID)] = true
	}
	funcs := cfg.renderFuncs()
	for _, id := range cfg.Figures {
		fn, ok := funcs[id]
		if !ok {
			continue
		}
		slot := newFigureSlot(id, fn)
		s.slots = append(s.slots, slot)
		s.slotByID[id] = slot
	}
	for _, name := range cfg.StateVariables {
		s.state[name] = nil
	}

	// Initial load renders with the default settings, before any user
	// interaction.
	s.renderAll()
	return s, nil
}

// ID returns the session's unique identifier.
func (s *Session) ID() string { return s.id }

// Config returns the normalized session configuration.
func (s *Session) Config() Config { return s.cfg }

// Tree returns the compiled widget tree.
func (s *Session) Tree() *WidgetTree { return s.tree }

// Snapshot returns a copy of the current settings mapping.
func (s *Session) Snapshot() Snapshot { return s.store.Snapshot() }

// SnapshotUpdated exposes the store's publication signal.
func (s *Session) SnapshotUpdated() *Signal[Snapshot] { return &s.store.Updated }

// Slots returns the figure slots in display order.
func (s *Session) Slots() []*FigureSlot { return s.slots }

// Slot returns the figure slot with the given id, or nil.
func (s *Session) Slot(id string) *FigureSlot { return s.slotByID[id] }

// MenuOpenStates returns the is_open fan-out for every menu.
func (s *Session) MenuOpenStates() map[string]bool {
	ids := make([]string, len(s.tree.Menus))
	for i := range s.tree.Menus {
		ids[i] = s.tree.Menus[i].ID
	}
	return s.coord.OpenStates(ids)
}

// OpenMenuID returns the id of the expanded menu, or "" when all are
// closed.
func (s *Session) OpenMenuID() string { return s.coord.open }

// CollapseOpen reports whether the visibility container is open.
func (s *Session) CollapseOpen(collapseID string) bool {
	return s.collapse[collapseID]
}

// Dispatch processes one event from the hosting layer, updating the
// relevant sub-state machines in order. Handlers run to completion
// before Dispatch returns.
func (s *Session) Dispatch(ev Event) error {
	switch ev.Kind {
	case ControlChanged:
		if !s.store.Live(ev.Elem) {
			return fmt.Errorf("unknown control %q", ev.Elem)
		}
		s.store.Set(ev.Elem, ev.Value)
		s.applyRules(ev.Elem, ev.Value)
		if s.renderOnChange() {
			s.renderAll()
		}
		return nil

	case MenuOpened:
		if !s.validMenu(ev.Elem) {
			return fmt.Errorf("unknown menu %q", ev.Elem)
		}
		s.everOpened = true
		s.coord.Open(ev.Elem)
		return nil

	case MenuClosed:
		s.coord.CloseAll()
		return nil

	case RedrawRequested:
		s.renderAll()
		return nil

	case ExportRequested:
		if s.cfg.Download == nil {
			return fmt.Errorf("no download sink configured")
		}
		doc, err := s.ExportSettings()
		if err != nil {
			return err
		}
		return s.cfg.Download(doc)
	}
	return fmt.Errorf("unknown event kind %d", ev.Kind)
}

// SetValue dispatches a ControlChanged event.
func (s *Session) SetValue(elemID string, value any) error {
	return s.Dispatch(Event{Kind: ControlChanged, Elem: elemID, Value: value})
}

// OpenMenu dispatches a MenuOpened event.
func (s *Session) OpenMenu(menuID string) error {
	return s.Dispatch(Event{Kind: MenuOpened, Elem: menuID})
}

// CloseMenu dispatches a MenuClosed event without redrawing.
func (s *Session) CloseMenu() error {
	return s.Dispatch(Event{Kind: MenuClosed})
}

// Redraw dispatches a RedrawRequested event.
func (s *Session) Redraw() error {
	return s.Dispatch(Event{Kind: RedrawRequested})
}

// CloseAndRedraw is the "Close Menu & Redraw" footer action: the menu
// closes and a render is triggered.
func (s *Session) CloseAndRedraw() error {
	if err := s.CloseMenu(); err != nil {
		return err
	}
	return s.Redraw()
}

// Export dispatches an ExportRequested event.
func (s *Session) Export() error {
	return s.Dispatch(Event{Kind: ExportRequested})
}

// ExportSettings serializes the current snapshot without going through
// the download sink.
func (s *Session) ExportSettings() (SettingsDocument, error) {
	return s.store.ExportSettings(s.cfg.Product)
}

// ImportSettings applies a serialized settings document to the live
// controls. Unknown keys are ignored; keys absent from the document
// leave their control untouched. A malformed document is a
// render-class failure: every figure shows the placeholder and a
// notification, and the session stays alive.
func (s *Session) ImportSettings(content string) error {
	snap, err := s.store.ParseSnapshot(content)
	if err != nil {
		for _, slot := range s.slots {
			slot.Fail(err)
		}
		return err
	}
	for _, elemID := range s.store.order {
		if v, ok := snap[elemID]; ok {
			s.store.values[elemID] = v
		}
	}
	s.store.Updated.Emit(s.store.Snapshot())
	for _, elemID := range s.store.order {
		s.applyRules(elemID, s.store.Get(elemID))
	}
	if s.renderOnChange() {
		s.renderAll()
	}
	return nil
}

// SetState stores a value in a declared state variable slot.
func (s *Session) SetState(name string, value any) error {
	if _, ok := s.state[name]; !ok {
		return fmt.Errorf("undeclared state variable %q", name)
	}
	s.state[name] = value
	return nil
}

// State returns the value of a declared state variable.
func (s *Session) State(name string) any {
	return s.state[name]
}

// renderOnChange applies the debounce rule: before the first menu has
// been opened every snapshot change renders (bootstrapping the default
// view); afterwards only explicit redraw actions do, unless the
// RenderOnEveryChange flag opts out.
func (s *Session) renderOnChange() bool {
	return !s.everOpened || s.cfg.RenderOnEveryChange
}

func (s *Session) validMenu(id string) bool {
	for i := range s.tree.Menus {
		if s.tree.Menus[i].ID == id {
			return true
		}
	}
	return false
}

func (s *Session) applyRules(target string, value any) {
	for _, up := range s.rules.OnChange(target, value) {
		s.collapse[up.CollapseID] = up.Open
	}
}

// renderAll runs every figure slot against the current snapshot. The
// snapshot travels through its serialized form and the memoized parser,
// so render functions always see the same shapes a reloaded document
// would produce.
func (s *Session) renderAll() {
	doc, err := s.store.Snapshot().Encode()
	if err != nil {
		for _, slot := range s.slots {
			slot.Fail(err)
		}
		return
	}
	settings, err := s.store.ParseSnapshot(doc)
	if err != nil {
		for _, slot := range s.slots {
			slot.Fail(err)
		}
		return
	}
	for _, slot := range s.slots {
		slot.Render(s.cfg.Data, settings)
	}
}
