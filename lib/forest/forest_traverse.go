package forest

// Traversal step functions. Flat steps along one sibling chain and
// saturates at the chain's anchors. Preorder steps depth first inside
// the scope delimited by scopeEnd and never escapes it.

func (a *arena[T]) flatNext(r ref) ref {
	switch r.kind {
	case refHeadAnchor:
		return a.begin(r.node)
	case refNode:
		if s := a.at(r.node); s != nil {
			return s.next
		}
	}
	return r
}

func (a *arena[T]) flatPrev(r ref) ref {
	switch r.kind {
	case refTailAnchor:
		return a.rbegin(r.node)
	case refNode:
		if s := a.at(r.node); s != nil {
			return s.prev
		}
	}
	return r
}

// preorderNext visits children before siblings and climbs back up
// when a chain runs out, stopping at scopeEnd.
func (a *arena[T]) preorderNext(r ref, scopeEnd ref) ref {
	if r.kind != refNode {
		if r.kind == refHeadAnchor {
			return a.begin(r.node)
		}
		return scopeEnd
	}
	n := r.node
	if a.hasChildren(n) {
		return a.begin(n)
	}
	for a.end(n) != scopeEnd {
		s := a.at(n)
		if s == nil {
			return scopeEnd
		}
		if s.next.kind == refNode {
			return s.next
		}
		n = a.parentID(n)
		if n.isNil() {
			return scopeEnd
		}
	}
	return scopeEnd
}

// preorderPrev is the mirror step: the element before a first child
// is its parent, the element before any other element is the deepest
// rightmost of its previous sibling's subtree.
func (a *arena[T]) preorderPrev(r ref) ref {
	switch r.kind {
	case refTailAnchor:
		return nodeRef(a.deepestRightmost(r.node))
	case refNode:
		s := a.at(r.node)
		if s == nil {
			return r
		}
		if s.prev.kind == refNode {
			return nodeRef(a.deepestRightmost(s.prev.node))
		}
		if p := a.parentID(r.node); !p.isNil() {
			return nodeRef(p)
		}
	}
	return r
}

func (a *arena[T]) stepNext(order Order, r, scopeEnd ref) ref {
	if order == Flat {
		return a.flatNext(r)
	}
	return a.preorderNext(r, scopeEnd)
}

func (a *arena[T]) stepPrev(order Order, r ref) ref {
	if order == Flat {
		return a.flatPrev(r)
	}
	return a.preorderPrev(r)
}

// forEach walks [begin, end) forward, stops early when op returns
// false, and reports whether the whole range was consumed.
func (a *arena[T]) forEach(order Order, begin, end ref, op func(r ref) bool) bool {
	cond, it := true, begin
	for cond && it != end {
		cond = op(it)
		it = a.stepNext(order, it, end)
	}
	return cond && it == end
}

// forEachPairOf walks two ranges in lock-step, possibly across two
// arenas, and reports whether both were consumed together with op
// approving every pair.
func forEachPairOf[T comparable](
	la *arena[T], lhs, lend ref,
	ra *arena[T], rhs, rend ref,
	order Order, op func(l, r ref) bool,
) bool {
	cond := true
	for cond && lhs != lend && rhs != rend {
		cond = op(lhs, rhs)
		lhs = la.stepNext(order, lhs, lend)
		rhs = ra.stepNext(order, rhs, rend)
	}
	return cond && lhs == lend && rhs == rend
}

// forEachReverse walks (from, bound] backward, bound included when it
// denotes an element (a boundary bound is exclusive). The
// successor position is captured before op runs, so op may unlink or
// release the element it is handed without derailing the walk.
func (a *arena[T]) forEachReverse(order Order, from, bound ref, op func(r ref) bool) bool {
	if from == bound {
		return true
	}
	cond, it := true, a.stepPrev(order, from)
	for cond && it != bound {
		captured := it
		it = a.stepPrev(order, it)
		cond = op(captured)
	}
	if !cond || it != bound {
		return false
	}
	if bound.kind != refNode {
		return true
	}
	return op(bound)
}
