// internal/game/types.go
//
// Core type definitions for the guessing game engine.
// Defines:
//   - Phase: coarse state of a session's question cycle.
//   - Session: state for one browser's play-through of the pool.
//   - View: snapshot of every UI region, rendered to the client as JSON.

package game

import (
	"sync"

	"github.com/totototosssss/num/internal/oeis"
)

// Phase is the state of a session within one question cycle.
// Transitions: loading → displaying → answered → (loading | exhausted),
// with error reachable from loading on fetch failure.
type Phase string

const (
	PhaseLoading    Phase = "loading"
	PhaseDisplaying Phase = "displaying"
	PhaseAnswered   Phase = "answered"
	PhaseExhausted  Phase = "exhausted"
	PhaseError      Phase = "error"
)

// TermsToDisplay is the number of terms shown before the blank.
// The held-out answer is the term at this index. Fixed, not user-adjustable.
const TermsToDisplay = 5

// Session holds the state of a single play-through: the shrinking pool of
// unused identifiers, the append-only used list, and the current question.
// All mutation goes through Engine methods, which hold mu.
type Session struct {
	ID    string // unique session identifier (random hex string)
	Owner string // anonymous browser id that created the session

	mu          sync.Mutex
	pool        []string // identifiers not yet presented
	used        []string // identifiers already drawn, in draw order
	current     *oeis.Sequence
	answer      int64 // held-out term, valid while current != nil
	phase       Phase
	loading     bool // true only while a fetch is in flight
	errMsg      string
	lastCorrect bool
	correct     int
	answered    int
}

// View is an immutable snapshot of the presentation surface.
// Rendering the same session state twice yields identical Views.
type View struct {
	Phase       Phase           `json:"phase"`
	Loading     bool            `json:"loading"`
	Sequence    SequenceView    `json:"sequence"`
	Input       InputView       `json:"input"`
	Feedback    FeedbackView    `json:"feedback"`
	Explanation ExplanationView `json:"explanation"`
	Next        NextView        `json:"next"`
	Error       ErrorView       `json:"error"`
	Score       ScoreView       `json:"score"`
}

// SequenceView is the displayed prefix plus a trailing blank marker.
type SequenceView struct {
	Terms   []int64 `json:"terms"`
	Display string  `json:"display"`
}

// InputView reports whether the answer input accepts a guess.
type InputView struct {
	Enabled bool `json:"enabled"`
}

// FeedbackView is the correctness message shown after a guess.
type FeedbackView struct {
	Visible bool   `json:"visible"`
	Correct bool   `json:"correct"`
	Text    string `json:"text"`
}

// ExplanationView reveals the sequence after a guess: name, the sequence
// including the held-out term, and the outbound reference link.
type ExplanationView struct {
	Visible bool   `json:"visible"`
	Title   string `json:"title"`
	Body    string `json:"body"`
	Link    string `json:"link"`
}

// NextView reports whether the next-question control is shown.
type NextView struct {
	Visible bool `json:"visible"`
}

// ErrorView is the error panel with its retry control.
type ErrorView struct {
	Visible bool   `json:"visible"`
	Message string `json:"message"`
	Retry   bool   `json:"retry"`
}

// ScoreView is the running tally for the session.
type ScoreView struct {
	Correct   int `json:"correct"`
	Answered  int `json:"answered"`
	Remaining int `json:"remaining"`
}
