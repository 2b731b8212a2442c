// internal/game/engine.go
//
// Game engine for the next-term guessing game.
// Responsibilities:
//   - Create sessions seeded with a pool of sequence identifiers.
//   - Advance to a new question: draw without replacement, fetch, validate.
//   - Re-attempt failed fetches with fresh identifiers after a fixed delay.
//   - Judge submitted guesses against the held-out term.
//   - Render View snapshots of the full presentation surface.
//
// Notes:
//   - The provider is an interface so tests can run against a double.
//   - A failed identifier is discarded permanently, never requeued.
//   - randomID() is a compact hex identifier for correlating server state.
package game

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"math/big"
	"strconv"
	"strings"
	"time"

	"github.com/totototosssss/num/internal/oeis"
)

// maxFetchAttempts bounds the number of identifiers tried per Advance call
// before the session settles in the error phase with retry exposed.
const maxFetchAttempts = 3

// Provider fetches a validated sequence by identifier.
type Provider interface {
	Fetch(ctx context.Context, id string) (*oeis.Sequence, error)
}

// Engine drives session state transitions. Safe for concurrent use; each
// mutation holds the session's own lock, so at most one fetch is in flight
// per session.
type Engine struct {
	provider   Provider
	retryDelay time.Duration
}

// NewEngine constructs an Engine. retryDelay is the pause before a failed
// fetch is re-attempted with a fresh identifier (tests pass 0).
func NewEngine(p Provider, retryDelay time.Duration) *Engine {
	return &Engine{provider: p, retryDelay: retryDelay}
}

// NewSession creates a session with its own copy of the identifier pool.
// The caller is expected to Advance immediately to load the first question.
func (e *Engine) NewSession(owner string, pool []string) *Session {
	return &Session{
		ID:    randomID(),
		Owner: owner,
		pool:  append([]string{}, pool...),
		used:  []string{},
		phase: PhaseLoading,
	}
}

// Advance moves the session to its next question.
//
// Rules:
//   - No-op while a question is on screen (guards stale UI activations).
//   - Empty pool → exhausted (terminal).
//   - Otherwise draw uniformly at random, remove from the pool, record in
//     the used list, and fetch. On failure the error message is kept and,
//     after retryDelay, a fresh identifier is drawn; after maxFetchAttempts
//     draws (or when the pool runs dry) the session rests in the error
//     phase. Only context cancellation returns a non-nil error.
func (e *Engine) Advance(ctx context.Context, s *Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.phase == PhaseDisplaying || s.phase == PhaseExhausted {
		return nil
	}
	return e.advanceLocked(ctx, s)
}

func (e *Engine) advanceLocked(ctx context.Context, s *Session) error {
	s.current = nil
	for attempt := 1; ; attempt++ {
		if len(s.pool) == 0 {
			s.phase = PhaseExhausted
			return nil
		}

		id := s.drawLocked()
		s.phase = PhaseLoading
		seq, err := e.fetchLocked(ctx, s, id)
		if err == nil {
			s.current = seq
			s.answer = seq.Terms[TermsToDisplay]
			s.errMsg = ""
			s.lastCorrect = false
			s.phase = PhaseDisplaying
			return nil
		}

		s.errMsg = err.Error()
		s.phase = PhaseError
		if len(s.pool) == 0 || attempt >= maxFetchAttempts {
			return nil
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(e.retryDelay):
		}
	}
}

// fetchLocked wraps the provider call with the loading indicator.
// The defer clears it on every exit path, success or failure.
func (e *Engine) fetchLocked(ctx context.Context, s *Session, id string) (*oeis.Sequence, error) {
	s.loading = true
	defer func() { s.loading = false }()
	return e.provider.Fetch(ctx, id)
}

// Submit judges a guess against the held-out term and reveals the answer.
// A no-op unless a question is currently displayed. Non-numeric input is
// treated as a guaranteed mismatch, never as an error.
func (e *Engine) Submit(s *Session, raw string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil || s.phase != PhaseDisplaying {
		return
	}
	guess, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	s.lastCorrect = err == nil && guess == s.answer
	s.answered++
	if s.lastCorrect {
		s.correct++
	}
	s.phase = PhaseAnswered
}

// Retry re-attempts loading after a failure. Only valid in the error phase
// while identifiers remain; the failed identifier itself is not retried.
func (e *Engine) Retry(ctx context.Context, s *Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.phase != PhaseError || len(s.pool) == 0 {
		return nil
	}
	return e.advanceLocked(ctx, s)
}

// Done reports whether the session can make no further progress.
func (s *Session) Done() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.phase == PhaseExhausted || (s.phase == PhaseError && len(s.pool) == 0)
}

// drawLocked removes one identifier from the pool uniformly at random and
// appends it to the used list.
func (s *Session) drawLocked() string {
	i := randomIndex(len(s.pool))
	id := s.pool[i]
	s.pool[i] = s.pool[len(s.pool)-1]
	s.pool = s.pool[:len(s.pool)-1]
	s.used = append(s.used, id)
	return id
}

// View renders a snapshot of every UI region from the current state.
// Pure read: calling it repeatedly yields identical output.
func (s *Session) View() View {
	s.mu.Lock()
	defer s.mu.Unlock()

	v := View{
		Phase:   s.phase,
		Loading: s.loading,
		Score: ScoreView{
			Correct:   s.correct,
			Answered:  s.answered,
			Remaining: len(s.pool),
		},
	}

	if s.current != nil {
		shown := s.current.Terms[:TermsToDisplay]
		v.Sequence.Terms = append([]int64{}, shown...)
		v.Sequence.Display = joinTerms(shown) + ", __"
	}

	switch s.phase {
	case PhaseDisplaying:
		v.Input.Enabled = true
	case PhaseAnswered:
		v.Feedback.Visible = true
		v.Feedback.Correct = s.lastCorrect
		if s.lastCorrect {
			v.Feedback.Text = "Correct!"
		} else {
			v.Feedback.Text = fmt.Sprintf("Incorrect. The next term is %d.", s.answer)
		}
		v.Explanation = ExplanationView{
			Visible: true,
			Title:   s.current.Name,
			Body:    joinTerms(s.current.Terms[:TermsToDisplay+1]) + ", ...",
			Link:    oeis.SiteURL(s.current.ID),
		}
		v.Next.Visible = len(s.pool) > 0
	case PhaseError:
		v.Error = ErrorView{
			Visible: true,
			Message: s.errMsg,
			Retry:   len(s.pool) > 0,
		}
	}
	return v
}

// joinTerms renders terms as "a, b, c".
func joinTerms(terms []int64) string {
	var b strings.Builder
	for i, t := range terms {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(strconv.FormatInt(t, 10))
	}
	return b.String()
}

// randomIndex returns a cryptographically random index in [0, n).
func randomIndex(n int) int {
	nBig, _ := rand.Int(rand.Reader, big.NewInt(int64(n)))
	return int(nBig.Int64())
}

// randomID returns a compact 16-hex-char identifier.
// Collisions are extremely unlikely given crypto/rand entropy.
func randomID() string {
	var b [8]byte
	_, _ = rand.Read(b[:])
	return hex.EncodeToString(b[:])
}
