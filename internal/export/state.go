// Package export turns a resume into a downloadable PDF.
//
// An export renders the resume to HTML, rasterizes the page in a headless
// browser, slices the bitmap into A4 bands and writes one band per PDF page.
package export

import (
	"fmt"
	"sync"
)

// State is a stage of an export run.
type State int

const (
	Idle State = iota
	Rendering
	Rasterizing
	Paginating
	Downloaded
	Failed
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Rendering:
		return "rendering"
	case Rasterizing:
		return "rasterizing"
	case Paginating:
		return "paginating"
	case Downloaded:
		return "downloaded"
	case Failed:
		return "failed"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Terminal reports whether no further transitions are allowed from s.
func (s State) Terminal() bool {
	return s == Downloaded || s == Failed
}

var transitions = map[State][]State{
	Idle:        {Rendering},
	Rendering:   {Rasterizing, Failed},
	Rasterizing: {Paginating, Failed},
	Paginating:  {Downloaded, Failed},
}

// Run tracks the state of a single export and the path it took.
type Run struct {
	mu      sync.Mutex
	state   State
	history []State
}

// NewRun returns a run in the Idle state.
func NewRun() *Run {
	return &Run{state: Idle, history: []State{Idle}}
}

// State returns the current state.
func (r *Run) State() State {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state
}

// History returns every state the run has been in, oldest first.
func (r *Run) History() []State {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]State(nil), r.history...)
}

// advance moves the run to next. Illegal transitions are programming errors and panic.
func (r *Run) advance(next State) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, allowed := range transitions[r.state] {
		if allowed == next {
			r.state = next
			r.history = append(r.history, next)
			return
		}
	}
	panic(fmt.Sprintf("export: illegal transition %s -> %s", r.state, next))
}
