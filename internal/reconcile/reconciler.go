// Package reconcile implements the categorization reconciliation engine:
// a fingerprint over the item set, a diff between verifier output and
// current assignments, and an orchestrator that owns at most one
// in-flight verification request and discards superseded results.
package reconcile

import (
	"context"
	"log/slog"
	"sync"

	"github.com/nstrayer/aisle-list/internal/common"
	"github.com/nstrayer/aisle-list/internal/model"
	"github.com/nstrayer/aisle-list/internal/service"
	"github.com/nstrayer/aisle-list/internal/taxonomy"
)

// Reconciler drives verification cycles for a single active list. Each
// Start supersedes any request still in flight: the generation counter
// is bumped, the old context is canceled, and a result handler only
// touches state while it still owns the current generation. Logical
// disregard of late results is the guarantee; physical cancellation of
// the network call is best effort.
type Reconciler struct {
	verifier     service.Verifier
	logger       *slog.Logger
	cancel       context.CancelFunc
	lastVerified string
	failReason   string
	suggestions  []model.Suggestion
	taxonomy     taxonomy.Taxonomy
	generation   uint64
	phase        Phase
	mu           sync.Mutex
}

// New creates a reconciler for one list.
func New(verifier service.Verifier, tax taxonomy.Taxonomy, logger *slog.Logger) *Reconciler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Reconciler{
		verifier: verifier,
		taxonomy: tax,
		logger:   logger,
		phase:    Idle,
	}
}

// Start begins a verification cycle for the given items, superseding any
// cycle already in flight. The returned channel delivers the terminal
// state of this particular request, or is closed without a value if a
// newer request superseded it.
func (r *Reconciler) Start(ctx context.Context, items []model.Item) <-chan State {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.generation++
	gen := r.generation

	if r.cancel != nil {
		r.cancel()
	}
	callCtx, cancel := context.WithCancel(ctx)
	r.cancel = cancel

	r.phase = Checking
	r.suggestions = nil
	r.failReason = ""

	// Snapshot before releasing the lock: the fingerprint recorded on
	// success must describe the items as sent, not as they are when the
	// response arrives.
	snapshot := make([]model.Item, len(items))
	copy(snapshot, items)
	sent := model.Assignments(snapshot)
	fingerprint := Fingerprint(snapshot)

	r.logger.Debug("starting verification cycle",
		"generation", gen,
		"items", len(sent))

	done := make(chan State, 1)
	go r.run(callCtx, gen, snapshot, sent, fingerprint, done)
	return done
}

func (r *Reconciler) run(ctx context.Context, gen uint64, items []model.Item, sent []model.Assignment, fingerprint string, done chan<- State) {
	verified, err := r.verifier.VerifyCategories(ctx, sent)

	r.mu.Lock()
	defer r.mu.Unlock()

	if gen != r.generation {
		r.logger.Debug("discarding superseded verification result",
			"generation", gen,
			"current", r.generation)
		close(done)
		return
	}

	if err != nil {
		r.phase = Failed
		r.failReason = common.ErrVerificationFailed.Error()
		r.logger.Warn("verification cycle failed",
			"generation", gen,
			"error", err)
		done <- r.stateLocked()
		return
	}

	r.lastVerified = fingerprint
	suggestions := Diff(r.taxonomy, items, verified)
	if len(suggestions) == 0 {
		r.phase = Idle
		r.logger.Debug("verification confirmed current categories",
			"generation", gen)
	} else {
		r.phase = Suggesting
		r.suggestions = suggestions
		r.logger.Info("verification produced suggestions",
			"generation", gen,
			"count", len(suggestions))
	}
	done <- r.stateLocked()
}

// State returns a snapshot of the current reconciliation state.
func (r *Reconciler) State() State {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.stateLocked()
}

func (r *Reconciler) stateLocked() State {
	st := State{Phase: r.phase, Reason: r.failReason}
	if len(r.suggestions) > 0 {
		st.Suggestions = make([]model.Suggestion, len(r.suggestions))
		copy(st.Suggestions, r.suggestions)
	}
	return st
}

// Accept applies all pending suggestions to items in place, clears them
// atomically, and returns to Idle. The applied suggestions are returned;
// outside the Suggesting phase it is a no-op returning nil.
func (r *Reconciler) Accept(items []model.Item) []model.Suggestion {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.phase != Suggesting {
		return nil
	}
	applied := r.suggestions
	Apply(items, applied)
	r.suggestions = nil
	r.phase = Idle
	return applied
}

// Reject discards pending suggestions without touching any item.
func (r *Reconciler) Reject() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.phase != Suggesting {
		return
	}
	r.suggestions = nil
	r.phase = Idle
}

// HasChangedSinceLastCheck reports whether the item set differs from the
// one covered by the last successful verification.
func (r *Reconciler) HasChangedSinceLastCheck(items []model.Item) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return Fingerprint(items) != r.lastVerified
}

// LastVerifiedFingerprint returns the fingerprint recorded by the most
// recent successful cycle, or "" if none has succeeded.
func (r *Reconciler) LastVerifiedFingerprint() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.lastVerified
}

// RestoreFingerprint seeds the last-verified fingerprint, typically from
// persisted state when a list is reloaded.
func (r *Reconciler) RestoreFingerprint(fingerprint string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lastVerified = fingerprint
}

// Reset returns the reconciler to Idle, invalidating any in-flight
// request. Called when the owning list changes.
func (r *Reconciler) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.generation++
	if r.cancel != nil {
		r.cancel()
		r.cancel = nil
	}
	r.phase = Idle
	r.suggestions = nil
	r.failReason = ""
	r.lastVerified = ""
}
