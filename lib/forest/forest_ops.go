package forest

// Structural edits. linkRaw and unlinkRaw splice sibling chains in
// O(1) and leave subtree size caches alone; link and unlink pair them
// with the ancestor size propagation. Every helper takes ids and
// re-resolves slots on each access, because an allocation may grow
// the backing array and move the slots.

// linkRaw splices the detached element id immediately before the
// position where and bumps the new parent's child count.
func (a *arena[T]) linkRaw(where ref, id nodeID) nodeID {
	s := a.at(id)
	var p nodeID
	switch {
	case where.isBoundary() && !a.hasChildren(where.node):
		// into an empty child list
		p = where.node
		ps := a.at(p)
		s.parent = nodeRef(p)
		s.prev = headAnchor(p)
		s.next = tailAnchor(p)
		ps.head, ps.tail = id, id
	case where.isREnd() || a.isFirstChild(where):
		// before the first child
		p = a.ownerOf(where)
		ps := a.at(p)
		first := ps.head
		s.parent = nodeRef(p)
		s.prev = headAnchor(p)
		s.next = nodeRef(first)
		a.at(first).prev = nodeRef(id)
		ps.head = id
	case where.isEnd():
		// past the last child
		p = where.node
		ps := a.at(p)
		last := ps.tail
		s.parent = nodeRef(p)
		s.prev = nodeRef(last)
		s.next = tailAnchor(p)
		a.at(last).next = nodeRef(id)
		ps.tail = id
	default:
		// before an interior element
		w := where.node
		ws := a.at(w)
		p = ws.parent.node
		prev := ws.prev.node
		s.parent = nodeRef(p)
		s.prev = nodeRef(prev)
		s.next = nodeRef(w)
		a.at(prev).next = nodeRef(id)
		ws.prev = nodeRef(id)
	}
	a.at(p).children++
	return id
}

// unlinkRaw detaches id from its sibling chain, restoring the
// self-referential detached state, and drops the parent's child count.
func (a *arena[T]) unlinkRaw(id nodeID) nodeID {
	s := a.at(id)
	p := s.parent.node
	ps := a.at(p)
	ps.children--
	if s.prev.kind == refNode {
		a.at(s.prev.node).next = s.next
	} else if s.next.kind == refNode {
		ps.head = s.next.node
	} else {
		ps.head = nilID
	}
	if s.next.kind == refNode {
		a.at(s.next.node).prev = s.prev
	} else if s.prev.kind == refNode {
		ps.tail = s.prev.node
	} else {
		ps.tail = nilID
	}
	self := nodeRef(id)
	s.parent, s.prev, s.next = self, self, self
	return id
}

func (a *arena[T]) increaseSizes(id nodeID, delta int64) {
	for p := a.parentID(id); !p.isNil(); p = a.parentID(p) {
		a.at(p).size += delta
	}
}

func (a *arena[T]) decreaseSizes(id nodeID, delta int64) {
	for p := a.parentID(id); !p.isNil(); p = a.parentID(p) {
		a.at(p).size -= delta
	}
}

func (a *arena[T]) link(where ref, id nodeID) nodeID {
	if where == nodeRef(id) {
		return id
	}
	a.linkRaw(where, id)
	a.increaseSizes(id, a.sizeOf(id))
	return id
}

func (a *arena[T]) unlink(id nodeID) nodeID {
	a.decreaseSizes(id, a.sizeOf(id))
	return a.unlinkRaw(id)
}

func (a *arena[T]) moveNode(where ref, id nodeID) nodeID {
	if where == nodeRef(id) {
		return id
	}
	a.unlink(id)
	a.link(where, id)
	return id
}

// moveRange relocates the elements of [begin, end) before where,
// preserving their order, and returns the position of the first moved
// element (or where itself for an empty range). The reverse walk lets
// each relocation reuse where as the running insertion point; the
// ancestor sizes above the destination are adjusted once at the end.
func (a *arena[T]) moveRange(order Order, where, begin, end ref) ref {
	moved := int64(0)
	a.forEachReverse(order, end, begin, func(r ref) bool {
		id := r.node
		a.decreaseSizes(id, a.sizeOf(id))
		a.unlinkRaw(id)
		a.linkRaw(where, id)
		moved += a.sizeOf(id)
		where = nodeRef(id)
		return true
	})
	if moved > 0 {
		a.increaseSizes(where.node, moved)
	}
	return where
}

// removeNode unlinks id, releases its whole subtree children first,
// and returns the position that followed it.
func (a *arena[T]) removeNode(id nodeID) ref {
	following := a.at(id).next
	a.unlink(id)
	a.forEachReverse(Preorder, tailAnchor(id), nodeRef(id), func(r ref) bool {
		a.release(r.node)
		return true
	})
	return following
}

// removeIf removes every element of [begin, end) satisfying pred,
// subtree included, and returns the removed element count. The
// reverse walk keeps the remaining range intact while elements
// disappear under it.
func (a *arena[T]) removeIf(order Order, begin, end ref, pred func(v T) bool) int64 {
	removed := int64(0)
	a.forEachReverse(order, end, begin, func(r ref) bool {
		if pred(a.at(r.node).value) {
			removed += a.sizeOf(r.node)
			a.removeNode(r.node)
		}
		return true
	})
	return removed
}

func (a *arena[T]) shallowCopyNode(where ref, src nodeID) nodeID {
	copied := a.allocate(a.at(src).value)
	a.linkRaw(where, copied)
	a.increaseSizes(copied, 1)
	return copied
}

// shallowCopyRange copies the values of [begin, end) before where,
// subtrees excluded, and returns the position of the first copy.
func (a *arena[T]) shallowCopyRange(order Order, where, begin, end ref) ref {
	copied := int64(0)
	a.forEachReverse(order, end, begin, func(r ref) bool {
		c := a.allocate(a.at(r.node).value)
		a.linkRaw(where, c)
		copied++
		where = nodeRef(c)
		return true
	})
	if copied > 0 {
		a.increaseSizes(where.node, copied)
	}
	return where
}

// adoptSubtree builds a detached copy of src's subtree (owned by the
// src arena) inside dst. The lock-step preorder walk runs over the
// copy while the copy is still growing: visiting a pair appends the
// source element's direct children under the copy element, so the
// walk discovers them a step later. Each copy element takes its
// source's cached size directly, no propagation needed, because the
// copy is still detached.
func adoptSubtree[T comparable](dst, src *arena[T], sid nodeID) nodeID {
	copied := dst.allocate(src.at(sid).value)
	if !src.hasChildren(sid) {
		return copied
	}
	forEachPairOf(
		dst, nodeRef(copied), tailAnchor(copied),
		src, nodeRef(sid), tailAnchor(sid),
		Preorder, func(l, r ref) bool {
			for it := src.begin(r.node); it != src.end(r.node); it = src.at(it.node).next {
				dst.linkRaw(dst.end(l.node), dst.allocate(src.at(it.node).value))
			}
			dst.at(l.node).size = src.sizeOf(r.node)
			return true
		})
	return copied
}

func (a *arena[T]) deepCopyNode(where ref, src nodeID) nodeID {
	copied := adoptSubtree(a, a, src)
	a.linkRaw(where, copied)
	a.increaseSizes(copied, a.sizeOf(copied))
	return copied
}

// deepCopyRange copies the subtrees of the flat range [begin, end)
// before where and returns the position of the first copy.
func (a *arena[T]) deepCopyRange(order Order, where, begin, end ref) ref {
	copied := int64(0)
	a.forEachReverse(order, end, begin, func(r ref) bool {
		c := adoptSubtree(a, a, r.node)
		a.linkRaw(where, c)
		copied += a.sizeOf(c)
		where = nodeRef(c)
		return true
	})
	if copied > 0 {
		a.increaseSizes(where.node, copied)
	}
	return where
}

// compareSubtrees deep-compares two subtrees in lock-step preorder.
// Size and child count gate the value comparison at every pair, so a
// structural mismatch fails fast without descending further.
func compareSubtrees[T comparable](la, ra *arena[T], x, y nodeID, eq func(a, b T) bool) bool {
	return forEachPairOf(
		la, nodeRef(x), tailAnchor(x),
		ra, nodeRef(y), tailAnchor(y),
		Preorder, func(l, r ref) bool {
			return la.sizeOf(l.node) == ra.sizeOf(r.node) &&
				la.childCountOf(l.node) == ra.childCountOf(r.node) &&
				eq(la.at(l.node).value, ra.at(r.node).value)
		})
}

func compareRanges[T comparable](
	la *arena[T], lb, le ref,
	ra *arena[T], rb, re ref,
	order Order, deep bool, eq func(a, b T) bool,
) bool {
	return forEachPairOf(la, lb, le, ra, rb, re, order, func(l, r ref) bool {
		if deep {
			return compareSubtrees(la, ra, l.node, r.node, eq)
		}
		return eq(la.at(l.node).value, ra.at(r.node).value)
	})
}

// swapNodes exchanges the chain positions of two linked elements,
// their subtrees riding along untouched. Adjacent elements need a
// single relocation.
func (a *arena[T]) swapNodes(x, y nodeID) {
	if x == y {
		return
	}
	if a.at(y).next == nodeRef(x) {
		x, y = y, x
	}
	if a.at(x).next == nodeRef(y) {
		a.unlink(x)
		a.link(a.at(y).next, x)
		return
	}
	xpos := a.at(x).next
	a.unlink(x)
	a.link(a.at(y).next, x)
	a.unlink(y)
	a.link(xpos, y)
}
