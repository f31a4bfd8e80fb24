package pointer

import "sync"

// Recorder is an Injector that records actions instead of injecting them.
// It backs tests and dry runs, and tracks a virtual cursor.
type Recorder struct {
	mu      sync.Mutex
	actions []Action
	w, h    int
	x, y    int

	// Fail, when set, is returned by every call of the matching kind.
	Fail map[Kind]error
	// SizeErr and CursorErr are returned by ScreenSize and CursorPosition.
	SizeErr   error
	CursorErr error
}

// NewRecorder creates a Recorder for a w×h screen with the cursor centered.
func NewRecorder(w, h int) *Recorder {
	return &Recorder{w: w, h: h, x: w / 2, y: h / 2}
}

func (r *Recorder) record(a Action) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.Fail[a.Kind]; err != nil {
		return err
	}
	if a.Kind == Move {
		r.x, r.y = a.X, a.Y
	}
	r.actions = append(r.actions, a)
	return nil
}

func (r *Recorder) MoveAbsolute(x, y int) error { return r.record(MoveTo(x, y)) }
func (r *Recorder) ButtonDown() error           { return r.record(Action{Kind: ButtonDown}) }
func (r *Recorder) ButtonUp() error             { return r.record(Action{Kind: ButtonUp}) }
func (r *Recorder) Click() error                { return r.record(Action{Kind: Click}) }
func (r *Recorder) RightClick() error           { return r.record(Action{Kind: RightClick}) }
func (r *Recorder) ScrollBy(amount int) error   { return r.record(ScrollAction(amount)) }

func (r *Recorder) ScreenSize() (int, int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.SizeErr != nil {
		return 0, 0, r.SizeErr
	}
	return r.w, r.h, nil
}

func (r *Recorder) CursorPosition() (int, int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.CursorErr != nil {
		return 0, 0, r.CursorErr
	}
	return r.x, r.y, nil
}

// Actions returns a copy of everything recorded so far.
func (r *Recorder) Actions() []Action {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Action, len(r.actions))
	copy(out, r.actions)
	return out
}

// Count returns how many actions of kind k were recorded.
func (r *Recorder) Count(k Kind) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, a := range r.actions {
		if a.Kind == k {
			n++
		}
	}
	return n
}

// Reset forgets recorded actions.
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.actions = nil
}
