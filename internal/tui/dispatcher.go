package tui

import (
	"context"
	"fmt"

	"vlcrc/internal/errors"
	"vlcrc/internal/keys"
	"vlcrc/internal/log"
	"vlcrc/internal/toggle"
	"vlcrc/pkg/types"

	"github.com/charmbracelet/bubbles/key"
)

// Reload carries a replacement key table built from a changed config
// file.
type Reload struct {
	Registry *keys.Registry
	Toggles  []toggle.Spec
}

// dispatchState is the mutable state of the loop.
type dispatchState struct {
	debug bool
	// stale means the base layout has transient text on it.
	stale bool
}

// Dispatcher reads keys and turns them into commands.
type Dispatcher struct {
	term     Terminal
	registry *keys.Registry
	toggles  *toggle.Set
	issuer   Issuer
	keymap   types.KeyMap
	reloads  <-chan Reload
	viewer   *Viewer
	state    dispatchState
}

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithDebug starts the dispatcher with debug display on.
func WithDebug(debug bool) Option {
	return func(d *Dispatcher) { d.state.debug = debug }
}

// WithReloads makes the dispatcher pick up replacement key tables from ch.
func WithReloads(ch <-chan Reload) Option {
	return func(d *Dispatcher) { d.reloads = ch }
}

// WithKeyMap replaces the fixed control keys.
func WithKeyMap(km types.KeyMap) Option {
	return func(d *Dispatcher) { d.keymap = km }
}

// NewDispatcher creates a dispatcher. It owns toggles from here on.
func NewDispatcher(term Terminal, registry *keys.Registry, toggles *toggle.Set, issuer Issuer, opts ...Option) *Dispatcher {
	d := &Dispatcher{
		term:     term,
		registry: registry,
		toggles:  toggles,
		issuer:   issuer,
		keymap:   types.DefaultKeyMap(),
	}
	for _, opt := range opts {
		opt(d)
	}
	d.viewer = NewViewer(term, d.keymap, d.drawBase)
	return d
}

// Debug reports whether debug display is on.
func (d *Dispatcher) Debug() bool {
	return d.state.debug
}

// Toggles returns the toggle set currently in use.
func (d *Dispatcher) Toggles() *toggle.Set {
	return d.toggles
}

// Run draws the layout and handles keys until a quit key, a failed key
// read or cancellation of ctx. Only terminal failures and configuration
// errors are returned; a failed command is shown and the loop goes on.
func (d *Dispatcher) Run(ctx context.Context) error {
	if err := d.drawBase(); err != nil {
		return err
	}
	for {
		if ctx.Err() != nil {
			return nil
		}
		k, err := d.term.ReadKey()
		if err != nil {
			log.Debugf("Key read ended the session: %v", err)
			return nil
		}
		d.applyReloads()
		if d.state.stale || d.state.debug {
			if err := d.drawBase(); err != nil {
				return err
			}
			d.state.stale = false
		}

		switch {
		case key.Matches(k, d.keymap.Quit):
			log.Debugf("Quit on %q", k)
			return nil
		case key.Matches(k, d.keymap.Redraw):
			err = d.drawBase()
		case key.Matches(k, d.keymap.Debug):
			d.state.debug = !d.state.debug
			log.SetDebug(d.state.debug)
			if d.state.debug {
				err = d.status("Debugging enabled")
			} else {
				err = d.status("Debugging disabled")
			}
		default:
			err = d.dispatch(ctx, k)
		}
		if err != nil {
			return err
		}
	}
}

func (d *Dispatcher) dispatch(ctx context.Context, k types.Key) error {
	entry, ok := d.registry.Lookup(k)
	if !ok {
		if d.state.debug {
			return d.status(fmt.Sprintf("Key %q", k))
		}
		return nil
	}

	snapshot := d.toggles.Snapshot()
	command, err := entry.Resolve(d.toggles)
	if err != nil {
		return err
	}
	log.LogWithFields(log.F("key", string(k)), log.F("command", command)).Debug("Dispatching key")

	result, err := d.issuer.Issue(ctx, command)
	if err != nil {
		if !errors.IsConnectionError(err) {
			return err
		}
		d.toggles.Restore(snapshot)
		log.LogError(err, "Command failed")
		return d.status(err.Error())
	}

	if entry.Query {
		return d.viewer.Show(entry.Title(), result)
	}
	if d.state.debug {
		return d.showDebugResult(result)
	}
	return nil
}

// showDebugResult draws a non-query response in the debug region without
// waiting for a key. The next key repaints over it.
func (d *Dispatcher) showDebugResult(result string) error {
	lines := ResultLines(result)
	if lines == nil {
		return nil
	}
	surface, _, err := newResultSurface(d.term, lines)
	if err != nil {
		return err
	}
	origin := d.registry.Layout().Debug
	rows, cols := d.term.Size()
	d.term.MoveCursor(0, 0)
	return surface.Present(0, 0, origin.Row, origin.Col, rows-1, cols-1)
}

// status shows a transient message; the layout is repainted before the
// next key is handled.
func (d *Dispatcher) status(msg string) error {
	d.term.DrawText(statusPos.Row, statusPos.Col, msg, AttrNormal)
	d.term.MoveCursor(0, 0)
	d.state.stale = true
	return d.term.Refresh()
}

func (d *Dispatcher) drawBase() error {
	return DrawBase(d.term, d.registry.Layout(), d.keymap)
}

// applyReloads swaps in the newest pending key table. Toggle values are
// kept for names that are still declared.
func (d *Dispatcher) applyReloads() {
	if d.reloads == nil {
		return
	}
	for {
		select {
		case r, ok := <-d.reloads:
			if !ok {
				d.reloads = nil
				return
			}
			toggles, err := d.toggles.Reconcile(r.Toggles)
			if err != nil {
				log.LogError(err, "Ignoring reloaded key table")
				continue
			}
			d.registry = r.Registry
			d.toggles = toggles
			d.state.stale = true
			log.Infof("Reloaded key table with %d keys", r.Registry.Len())
		default:
			return
		}
	}
}
