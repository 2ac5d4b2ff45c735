package mutation

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"
)

var (
	// ErrAlreadyPending is returned when a duplicate action fires for a
	// target that already has a mutation in flight. Callers treat this as
	// "button disabled" and drop the action.
	ErrAlreadyPending = errors.New("a mutation for this target is already pending")

	// ErrMissingSend marks an effect with no network request attached.
	ErrMissingSend = errors.New("mutation effect has no send function")
)

// State tracks one mutation instance through its lifecycle. Committed and
// RolledBack are terminal; a new user action starts a fresh instance.
type State int

const (
	StateIdle State = iota
	StatePending
	StateCommitted
	StateRolledBack
)

// String returns the state name for logging.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StatePending:
		return "pending"
	case StateCommitted:
		return "committed"
	case StateRolledBack:
		return "rolledBack"
	default:
		return "unknown"
	}
}

// Effect binds an intent to its local and network transitions. Apply and
// Revert are only consulted for optimistic mutations; Commit only for
// confirm-first ones. Apply must retain whatever snapshot Revert needs to
// restore the pre-mutation value.
type Effect struct {
	// Apply performs the local-first state change.
	Apply func()
	// Revert restores the pre-mutation snapshot after a failed request.
	Revert func()
	// Send issues the network request. Required.
	Send func(ctx context.Context) error
	// Commit applies the server-confirmed change to local state.
	Commit func()
}

// Result reports how a mutation instance ended.
type Result struct {
	Intent Intent
	State  State
	Err    error
}

// targetKey identifies the item a mutation operates on. IDs are only unique
// within a resource kind, so the key carries the kind's target space too.
type targetKey struct {
	space string
	id    int64
}

// Coordinator serializes mutations per target and reconciles local state with
// the network outcome. Mutations for different targets may run concurrently;
// a second action on the same target while one is pending is rejected.
type Coordinator struct {
	mu      sync.Mutex
	pending map[targetKey]Intent
	logger  *zap.Logger
}

// NewCoordinator creates a coordinator.
func NewCoordinator(logger *zap.Logger) *Coordinator {
	return &Coordinator{
		pending: make(map[targetKey]Intent),
		logger:  logger,
	}
}

// Dispatch runs one mutation instance to a terminal state. For optimistic
// intents the local change is applied before the request and rolled back on
// failure; for confirm-first intents nothing is visible until the backend
// confirms, at which point Commit runs.
func (c *Coordinator) Dispatch(ctx context.Context, intent Intent, effect Effect) Result {
	if effect.Send == nil {
		return Result{Intent: intent, State: StateRolledBack, Err: ErrMissingSend}
	}

	key := targetKey{space: intent.Kind.space(), id: intent.TargetID}

	c.mu.Lock()

	if inflight, busy := c.pending[key]; busy {
		c.mu.Unlock()

		c.logger.Debug("Ignoring duplicate action while pending",
			zap.Stringer("kind", intent.Kind),
			zap.Stringer("inflight", inflight.Kind),
			zap.Int64("target", intent.TargetID))

		return Result{Intent: intent, State: StateIdle, Err: ErrAlreadyPending}
	}

	c.pending[key] = intent

	c.mu.Unlock()

	defer func() {
		c.mu.Lock()
		delete(c.pending, key)
		c.mu.Unlock()
	}()

	optimistic := intent.Kind.Policy() == PolicyOptimistic

	if optimistic && effect.Apply != nil {
		effect.Apply()
	}

	if err := effect.Send(ctx); err != nil {
		if optimistic && effect.Revert != nil {
			effect.Revert()
		}

		c.logger.Debug("Mutation rolled back",
			zap.Stringer("kind", intent.Kind),
			zap.Int64("target", intent.TargetID),
			zap.Error(err))

		return Result{Intent: intent, State: StateRolledBack, Err: err}
	}

	if !optimistic && effect.Commit != nil {
		effect.Commit()
	}

	return Result{Intent: intent, State: StateCommitted}
}

// Pending reports whether a mutation is in flight for the item that the given
// kind and target identify.
func (c *Coordinator) Pending(kind Kind, targetID int64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	_, busy := c.pending[targetKey{space: kind.space(), id: targetID}]

	return busy
}
