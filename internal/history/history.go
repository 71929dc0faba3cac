// Package history keeps the undo/redo stack of encoded texture snapshots.
package history

// DefaultLimit is the number of snapshots kept before the oldest is dropped.
const DefaultLimit = 50

// Stack is a linear undo history with a cursor. Entries after the cursor
// form the redo branch and are discarded by the next Commit.
type Stack struct {
	entries  [][]byte
	index    int
	limit    int
	stroking bool
}

// New starts a history whose only entry is initial.
func New(initial []byte, limit int) *Stack {
	if limit < 1 {
		limit = DefaultLimit
	}
	return &Stack{entries: [][]byte{initial}, limit: limit}
}

// Commit records snap as the newest entry, truncating any redo branch.
// When the stack is full the oldest entry is dropped.
func (s *Stack) Commit(snap []byte) {
	s.entries = append(s.entries[:s.index+1], snap)
	if len(s.entries) > s.limit {
		s.entries[0] = nil
		s.entries = s.entries[1:]
	}
	s.index = min(s.index+1, s.limit-1)
	s.stroking = false
}

// Undo moves the cursor back and returns the snapshot to restore.
func (s *Stack) Undo() ([]byte, bool) {
	if !s.CanUndo() {
		return nil, false
	}
	s.index--
	return s.entries[s.index], true
}

// Redo moves the cursor forward and returns the snapshot to restore.
func (s *Stack) Redo() ([]byte, bool) {
	if !s.CanRedo() {
		return nil, false
	}
	s.index++
	return s.entries[s.index], true
}

func (s *Stack) CanUndo() bool { return s.index > 0 }
func (s *Stack) CanRedo() bool { return s.index < len(s.entries)-1 }

// Current returns the snapshot under the cursor.
func (s *Stack) Current() []byte { return s.entries[s.index] }

func (s *Stack) Len() int   { return len(s.entries) }
func (s *Stack) Index() int { return s.index }
func (s *Stack) Limit() int { return s.limit }

// Reset drops all entries and starts over from initial.
func (s *Stack) Reset(initial []byte) {
	clear(s.entries)
	s.entries = [][]byte{initial}
	s.index = 0
	s.stroking = false
}

// BeginStroke marks that a gesture is in progress. The flag is cleared by
// the Commit that ends it or by EndStroke.
func (s *Stack) BeginStroke() { s.stroking = true }

// EndStroke clears the stroke flag without committing.
func (s *Stack) EndStroke() { s.stroking = false }

// Stroking reports whether a gesture is in progress.
func (s *Stack) Stroking() bool { return s.stroking }
