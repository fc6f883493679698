package compiler

// ScratchVar is a handle into the scratch pool. It is valid only inside the session that
// allocated it and must be released exactly once.
type ScratchVar int

// PersistentVar identifies storage that outlives one call of the generated function.
// Identifiers start at 1 and are never reused.
type PersistentVar uint64

// Allocator hands out scratch slots from a free list and persistent identifiers from a
// monotonic counter.
type Allocator struct {
	minted     int
	free       []ScratchVar
	live       map[ScratchVar]bool
	highWater  int
	persistent PersistentVar
}

// NewAllocator creates an empty allocator
func NewAllocator() *Allocator {
	return &Allocator{
		live: make(map[ScratchVar]bool),
	}
}

// AllocScratch returns a released slot when one exists, otherwise a fresh one
func (a *Allocator) AllocScratch() ScratchVar {
	var v ScratchVar
	if n := len(a.free); n > 0 {
		v = a.free[n-1]
		a.free = a.free[:n-1]
	} else {
		v = ScratchVar(a.minted)
		a.minted++
	}

	a.live[v] = true
	if len(a.live) > a.highWater {
		a.highWater = len(a.live)
	}
	return v
}

// FreeScratch returns v to the pool. Releasing a handle that is not live panics.
func (a *Allocator) FreeScratch(v ScratchVar) {
	if !a.live[v] {
		panic(&ScratchMisuseError{Var: v})
	}
	delete(a.live, v)
	a.free = append(a.free, v)
}

// AllocPersistent returns the next persistent identifier
func (a *Allocator) AllocPersistent() PersistentVar {
	a.persistent++
	return a.persistent
}

// Live reports the number of scratch slots currently handed out
func (a *Allocator) Live() int {
	return len(a.live)
}

// HighWater reports the largest number of simultaneously live scratch slots
func (a *Allocator) HighWater() int {
	return a.highWater
}

// Slots reports how many distinct scratch slots were ever minted
func (a *Allocator) Slots() int {
	return a.minted
}

// Persistent reports the last persistent identifier handed out, 0 if none
func (a *Allocator) Persistent() PersistentVar {
	return a.persistent
}

// resetScratch drops the scratch pool; outstanding handles become invalid
func (a *Allocator) resetScratch() {
	a.minted = 0
	a.free = a.free[:0]
	a.live = make(map[ScratchVar]bool)
	a.highWater = 0
}

// Reset drops the scratch pool and restarts the persistent counter
func (a *Allocator) Reset() {
	a.resetScratch()
	a.persistent = 0
}
