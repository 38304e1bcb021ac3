package lifetime

import "sync/atomic"

// State is the atomic borrow-accounting record of a single managed value,
// spec.md §3's LifetimeState. All transitions happen inside a brief
// spin-try critical section gated by locked; none of them block.
//
//   - can_read <=> writerDepth == 0
//   - can_write <=> readers == 0 (writerDepth nests once acquired)
//   - is_read_accessible <=> !writeAccess
//   - is_write_accessible <=> !writeAccess && readAccess == 0
type State struct {
	locked atomic.Bool

	readers     int32
	writerDepth uint32

	readAccess  int32
	writeAccess bool
}

// New returns a State in the Idle state.
func New() *State { return &State{} }

// withLock runs fn inside the spin-try critical section, retrying the
// latch acquisition until it succeeds. The critical section itself never
// blocks on readers/writer conditions — only on the latch, which is held
// for a handful of instructions per caller.
func (s *State) withLock(fn func()) {
	for !s.locked.CompareAndSwap(false, true) {
		// brief spin; the latch is only ever held for a few instructions.
	}
	fn()
	s.locked.Store(false)
}

// TryAcquireRead acquires a read borrow iff no writer holds the value.
func (s *State) TryAcquireRead() bool {
	var ok bool
	s.withLock(func() {
		if s.writerDepth == 0 {
			s.readers++
			ok = true
		}
	})
	return ok
}

// ReleaseRead releases a previously acquired read borrow.
func (s *State) ReleaseRead() {
	s.withLock(func() {
		if s.readers > 0 {
			s.readers--
		}
	})
}

// TryAcquireWrite acquires a write borrow. The first acquisition requires
// no outstanding readers; once held, nested borrow_mut calls succeed
// unconditionally and return successively deeper depth ids, released in
// LIFO order by the caller.
func (s *State) TryAcquireWrite() (depth uint32, ok bool) {
	s.withLock(func() {
		if s.writerDepth == 0 && s.readers > 0 {
			return
		}
		s.writerDepth++
		depth = s.writerDepth
		ok = true
	})
	return
}

// ReleaseWrite releases one level of write borrow. Callers must release
// in LIFO order (deepest depth first); depth is accepted for symmetry
// with the acquire call and to let callers assert ordering.
func (s *State) ReleaseWrite(depth uint32) {
	s.withLock(func() {
		if s.writerDepth == depth && s.writerDepth > 0 {
			s.writerDepth--
		}
	})
}

// CanRead reports whether a read borrow could currently be acquired,
// without acquiring one.
func (s *State) CanRead() bool {
	var ok bool
	s.withLock(func() { ok = s.writerDepth == 0 })
	return ok
}

// TryAcquireReadAccess materializes a read-access guard (e.g. for a
// ValueReadAccess over raw memory), forbidding write access until
// released.
func (s *State) TryAcquireReadAccess() bool {
	var ok bool
	s.withLock(func() {
		if !s.writeAccess {
			s.readAccess++
			ok = true
		}
	})
	return ok
}

// ReleaseReadAccess releases a previously acquired read-access guard.
func (s *State) ReleaseReadAccess() {
	s.withLock(func() {
		if s.readAccess > 0 {
			s.readAccess--
		}
	})
}

// TryAcquireWriteAccess materializes a write-access guard, forbidding any
// further read or write access until released.
func (s *State) TryAcquireWriteAccess() bool {
	var ok bool
	s.withLock(func() {
		if !s.writeAccess && s.readAccess == 0 {
			s.writeAccess = true
			ok = true
		}
	})
	return ok
}

// ReleaseWriteAccess releases a previously acquired write-access guard.
func (s *State) ReleaseWriteAccess() {
	s.withLock(func() {
		s.writeAccess = false
	})
}

// IsReadAccessible reports whether a read-access guard could currently be
// acquired.
func (s *State) IsReadAccessible() bool {
	var ok bool
	s.withLock(func() { ok = !s.writeAccess })
	return ok
}

// IsWriteAccessible reports whether a write-access guard could currently
// be acquired.
func (s *State) IsWriteAccessible() bool {
	var ok bool
	s.withLock(func() { ok = !s.writeAccess && s.readAccess == 0 })
	return ok
}

// IsIdle reports whether the state has no outstanding read or write
// borrows, the precondition for Managed[T].Consume per spec.md §4.2/4.3.
func (s *State) IsIdle() bool {
	var ok bool
	s.withLock(func() { ok = s.readers == 0 && s.writerDepth == 0 })
	return ok
}
