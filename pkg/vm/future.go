package vm

import (
	"github.com/intuicio-go/kernel/pkg/core"
	"github.com/intuicio-go/kernel/pkg/managed"
)

// PollResult is the outcome of one Future.Poll call.
type PollResult int

const (
	Pending PollResult = iota
	Ready
)

func (p PollResult) String() string {
	if p == Ready {
		return "ready"
	}
	return "pending"
}

// ContextSource supplies the Context a Future drives its Scope against,
// abstracting over spec.md §4.8's three Context ownership modes: owned,
// mutably borrowed, or lazy. Acquire is non-blocking: a false ok means
// the Context is unavailable this poll.
type ContextSource interface {
	Acquire() (ctx *core.Context, release func(), ok bool)
}

// OwnedContext is a ContextSource that always succeeds — the Future
// exclusively owns its Context.
type OwnedContext struct {
	Context *core.Context
}

func (o OwnedContext) Acquire() (*core.Context, func(), bool) {
	return o.Context, func() {}, true
}

// RefMutContext is a ContextSource backed by a shared, mutably borrowed
// Context: each poll attempts a write borrow and returns Pending without
// stepping if another Future currently holds it.
type RefMutContext struct {
	Managed *managed.Managed[*core.Context]
}

func (r RefMutContext) Acquire() (*core.Context, func(), bool) {
	ref, ok := r.Managed.BorrowMut()
	if !ok {
		return nil, nil, false
	}
	return *ref.Get(), ref.Close, true
}

// LazyContext is a ContextSource backed by a weak handle to a Context
// that may have been dropped elsewhere; Acquire revalidates on every
// poll.
type LazyContext struct {
	Lazy managed.ManagedLazy[*core.Context]
}

func (l LazyContext) Acquire() (*core.Context, func(), bool) {
	ref, ok := l.Lazy.Write()
	if !ok {
		return nil, nil, false
	}
	return *ref.Get(), ref.Close, true
}

// Future pairs a Scope with a Registry and a ContextSource, driving the
// Scope under cooperative polling, per spec.md §4.8.
type Future struct {
	scope             *Scope
	registry          *core.Registry
	source            ContextSource
	operationsPerPoll int // 0 means unlimited
}

// NewFuture builds a Future. The default operations-per-poll budget is
// unlimited; use WithOperationsPerPoll to bound it.
func NewFuture(scope *Scope, registry *core.Registry, source ContextSource) *Future {
	return &Future{scope: scope, registry: registry, source: source}
}

// WithOperationsPerPoll sets the per-poll step budget.
func (f *Future) WithOperationsPerPoll(n int) *Future {
	f.operationsPerPoll = n
	return f
}

// Poll attempts to acquire its Context and steps the Scope, per spec.md
// §4.8's polling contract: Pending if the Context could not be acquired,
// if the Scope suspended, or if the operations-per-poll budget is
// exhausted; Ready once the Scope completes.
func (f *Future) Poll() PollResult {
	ctx, release, ok := f.source.Acquire()
	if !ok {
		return Pending
	}
	defer release()

	count := 0
	for {
		if f.operationsPerPoll > 0 && count >= f.operationsPerPoll {
			return Pending
		}
		switch f.scope.Step(ctx, f.registry) {
		case Suspended:
			return Pending
		case Completed:
			return Ready
		default: // Continue
			count++
		}
	}
}
