package forest

const defaultArenaCapacity = 64

// nodeID addresses one slot of an arena. The generation lets us tell
// a live slot apart from a recycled one that reuses the same index,
// so cursors held across a removal fail validation instead of
// resolving to an unrelated element.
type nodeID struct {
	idx uint32
	gen uint32
}

var nilID = nodeID{}

func (id nodeID) isNil() bool {
	return id.idx == 0
}

// slot is the linkage record of one element. Sibling order lives in
// prev/next, the child list in head/tail, and size caches the element
// count of the whole subtree, this element included.
type slot[T comparable] struct {
	value    T
	parent   ref
	prev     ref
	next     ref
	head     nodeID
	tail     nodeID
	children int64
	size     int64
	gen      uint32
	live     bool
}

// arena owns every slot of one forest (and of the standalone forests
// split off it). Index 0 is reserved so the zero nodeID means nil.
type arena[T comparable] struct {
	slots    []slot[T]
	recycled []uint32
}

func newArena[T comparable]() *arena[T] {
	a := &arena[T]{
		slots: make([]slot[T], 1, defaultArenaCapacity),
	}
	return a
}

// allocate reserves a slot holding v in the detached state, in which
// parent, prev and next all point back at the slot itself.
func (a *arena[T]) allocate(v T) nodeID {
	var idx uint32
	if n := len(a.recycled); n > 0 {
		idx = a.recycled[n-1]
		a.recycled = a.recycled[:n-1]
	} else {
		a.slots = append(a.slots, slot[T]{})
		idx = uint32(len(a.slots) - 1)
	}
	s := &a.slots[idx]
	id := nodeID{idx: idx, gen: s.gen}
	self := nodeRef(id)
	s.value = v
	s.parent, s.prev, s.next = self, self, self
	s.head, s.tail = nilID, nilID
	s.children = 0
	s.size = 1
	s.live = true
	return id
}

// allocateRoot reserves the hidden root slot of a forest. The nil
// parent marks it as a root; it never carries a value.
func (a *arena[T]) allocateRoot() nodeID {
	id := a.allocate(*new(T))
	a.slots[id.idx].parent = nilRef
	return id
}

// release returns a slot to the free list and bumps its generation so
// every outstanding nodeID for it becomes stale.
func (a *arena[T]) release(id nodeID) {
	s := a.at(id)
	if s == nil {
		return
	}
	var zero T
	s.value = zero
	s.live = false
	s.gen++
	s.parent, s.prev, s.next = nilRef, nilRef, nilRef
	s.head, s.tail = nilID, nilID
	s.children, s.size = 0, 0
	a.recycled = append(a.recycled, id.idx)
}

// at resolves id to its slot, or nil if id is stale or out of bounds.
func (a *arena[T]) at(id nodeID) *slot[T] {
	if id.idx == 0 || int(id.idx) >= len(a.slots) {
		return nil
	}
	s := &a.slots[id.idx]
	if !s.live || s.gen != id.gen {
		return nil
	}
	return s
}

func (a *arena[T]) alive(id nodeID) bool {
	return a.at(id) != nil
}
