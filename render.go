package menufig

import (
	"fmt"
)

// RenderFunc maps the user's data and the current settings snapshot to
// a display artifact. It is treated as an opaque, potentially-failing
// black box: errors and panics alike surface as a notification, never
// as a crashed session.
type RenderFunc func(data any, settings Snapshot) (any, error)

// Notification is the per-figure message channel payload.
type Notification struct {
	Open    bool
	Message string
}

// emptyFigure is the one shared placeholder artifact; it carries no
// content and is displayed whenever a render fails.
type emptyFigure struct{}

func (emptyFigure) String() string { return "" }

// PlaceholderArtifact is the immutable empty figure shown on render
// failure. It is the only artifact shared across render cycles.
var PlaceholderArtifact any = emptyFigure{}

// FigureSlot is the render pipeline state for one figure. Slots are
// independent: each has its own render function and notification
// channel, and all share the session's snapshot and trigger bus.
type FigureSlot struct {
	ID string
	fn RenderFunc

	artifact any
	note     Notification

	// Displayed fires with the new artifact after every render,
	// Notified with the notification state.
	Displayed Signal[any]
	Notified  Signal[Notification]
}

func newFigureSlot(id string, fn RenderFunc) *FigureSlot {
	return &FigureSlot{ID: id, fn: fn, artifact: PlaceholderArtifact}
}

// Artifact returns the currently displayed artifact.
func (f *FigureSlot) Artifact() any {
	return f.artifact
}

// Notification returns the current notification state.
func (f *FigureSlot) Notification() Notification {
	return f.note
}

// Render invokes the render function with the given snapshot. On
// success the artifact is published and the notification closed; on
// failure the placeholder is displayed and the notification opened.
// Each invocation produces a fresh artifact; nothing is cached across
// triggers except the shared placeholder.
func (f *FigureSlot) Render(data any, settings Snapshot) {
	artifact, err := invokeRender(f.fn, data, settings)
	if err != nil {
		f.Fail(err)
		return
	}
	f.artifact = artifact
	f.note = Notification{}
	f.Displayed.Emit(f.artifact)
	f.Notified.Emit(f.note)
}

// Fail routes a render-class failure to the display and notification
// channel. A failed render is terminal for its trigger; the slot simply
// waits for the next one.
func (f *FigureSlot) Fail(err error) {
	f.artifact = PlaceholderArtifact
	f.note = Notification{Open: true, Message: fmt.Sprintf("Unable to render -- %v", err)}
	f.Displayed.Emit(f.artifact)
	f.Notified.Emit(f.note)
}

// invokeRender calls fn, converting a panic into an ordinary error.
func invokeRender(fn RenderFunc, data any, settings Snapshot) (artifact any, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%v", r)
		}
	}()
	return fn(data, settings)
}
