package forest

import (
	"github.com/benz9527/xforest/lib/infra"
)

// Cursor is a position inside a forest: a live element or one of the
// boundary anchors of some parent's child list. A cursor remembers
// the scope it was vended for (origin) and its traversal order, so
// navigation stays inside that scope and range endpoints from
// different scopes are rejected. Structural edits elsewhere in the
// forest leave a cursor valid; removing the element it points at
// invalidates it through the arena generation check.
type Cursor[T comparable] struct {
	f      *forest[T]
	at     ref
	origin nodeID
	order  Order
}

func (f *forest[T]) cursorAt(r ref, order Order) *Cursor[T] {
	origin := r.node
	if r.kind == refNode {
		origin = f.arena.parentID(r.node)
	}
	return &Cursor[T]{f: f, at: r, origin: origin, order: order}
}

func (f *forest[T]) cursorWithOrigin(r ref, origin nodeID, order Order) *Cursor[T] {
	return &Cursor[T]{f: f, at: r, origin: origin, order: order}
}

func (c *Cursor[T]) Order() Order {
	return c.order
}

// Valid reports whether the cursor still denotes a live position.
func (c *Cursor[T]) Valid() bool {
	return c != nil && c.f != nil && c.f.arena.resolvable(c.at)
}

// IsBoundary reports whether the cursor sits on an end or rend
// anchor rather than on an element.
func (c *Cursor[T]) IsBoundary() bool {
	return c != nil && c.at.isBoundary()
}

// Same reports whether two cursors denote the same position.
func (c *Cursor[T]) Same(o *Cursor[T]) bool {
	return c != nil && o != nil && c.f == o.f && c.at == o.at
}

func (c *Cursor[T]) Value() (T, error) {
	if err := validCursorSource(c); err != nil {
		return *new(T), err
	}
	return c.f.arena.at(c.at.node).value, nil
}

func (c *Cursor[T]) SetValue(v T) error {
	if err := validCursorSource(c); err != nil {
		return err
	}
	c.f.arena.at(c.at.node).value = v
	return nil
}

// Size returns the element count of the cursor's subtree, the element
// itself included, or 0 for boundary and stale cursors.
func (c *Cursor[T]) Size() int64 {
	if c == nil || c.f == nil || c.at.kind != refNode {
		return 0
	}
	return c.f.arena.sizeOf(c.at.node)
}

func (c *Cursor[T]) ChildCount() int64 {
	if c == nil || c.f == nil || c.at.kind != refNode {
		return 0
	}
	return c.f.arena.childCountOf(c.at.node)
}

func (c *Cursor[T]) HasChildren() bool {
	return c.ChildCount() > 0
}

// Next returns the cursor's successor position in its order.
// Stepping past the end anchor fails with ErrForestOutOfRange.
func (c *Cursor[T]) Next() (*Cursor[T], error) {
	if c == nil || c.f == nil || !c.f.arena.resolvable(c.at) {
		return nil, infra.WrapErrorStack(ErrForestInvalidSource)
	}
	a := c.f.arena
	if c.order == Flat {
		if c.at.isEnd() || c.at.isREnd() {
			return nil, infra.WrapErrorStack(ErrForestOutOfRange)
		}
		return c.f.cursorWithOrigin(a.flatNext(c.at), c.origin, c.order), nil
	}
	if c.at.isEnd() {
		return nil, infra.WrapErrorStack(ErrForestOutOfRange)
	}
	return c.f.cursorWithOrigin(a.preorderNext(c.at, a.end(c.origin)), c.origin, c.order), nil
}

// Prev returns the cursor's predecessor position in its order.
// Stepping before the first element of the scope fails with
// ErrForestOutOfRange.
func (c *Cursor[T]) Prev() (*Cursor[T], error) {
	if c == nil || c.f == nil || !c.f.arena.resolvable(c.at) {
		return nil, infra.WrapErrorStack(ErrForestInvalidSource)
	}
	a := c.f.arena
	if c.at.isREnd() {
		return nil, infra.WrapErrorStack(ErrForestOutOfRange)
	}
	if c.order == Flat {
		if a.isFirstChild(c.at) {
			return nil, infra.WrapErrorStack(ErrForestOutOfRange)
		}
		return c.f.cursorWithOrigin(a.flatPrev(c.at), c.origin, c.order), nil
	}
	if a.isFirstChild(c.at) && a.isRoot(a.parentID(c.at.node)) {
		return nil, infra.WrapErrorStack(ErrForestOutOfRange)
	}
	return c.f.cursorWithOrigin(a.preorderPrev(c.at), c.origin, c.order), nil
}

// Parent returns a cursor to the element's parent. A top-level
// element has no visible parent and fails with ErrForestOutOfRange.
func (c *Cursor[T]) Parent() (*Cursor[T], error) {
	if err := validCursorSource(c); err != nil {
		return nil, err
	}
	p := c.f.arena.parentID(c.at.node)
	if p.isNil() || c.f.arena.isRoot(p) {
		return nil, infra.WrapErrorStack(ErrForestOutOfRange)
	}
	return c.f.cursorAt(nodeRef(p), c.order), nil
}

// Flat returns the sibling-order view over the element's direct
// children.
func (c *Cursor[T]) Flat() (View[T], error) {
	if err := validCursorSource(c); err != nil {
		return nil, err
	}
	return &policyView[T]{f: c.f, owner: c.at.node, order: Flat}, nil
}

// Preorder returns the depth-first view over the element's subtree,
// the element itself excluded.
func (c *Cursor[T]) Preorder() (View[T], error) {
	if err := validCursorSource(c); err != nil {
		return nil, err
	}
	return &policyView[T]{f: c.f, owner: c.at.node, order: Preorder}, nil
}

// String renders the element's subtree in the diagnostic dump format.
func (c *Cursor[T]) String() string {
	if c == nil || c.f == nil || !c.f.arena.resolvable(c.at) || c.at.kind != refNode {
		return "<invalid>\n"
	}
	return dumpSubtree(c.f.arena, c.at.node)
}

// validCursorSource accepts only cursors denoting a live, linked,
// non-root element of their own forest.
func validCursorSource[T comparable](c *Cursor[T]) error {
	if c == nil || c.f == nil || c.at.kind != refNode {
		return infra.WrapErrorStack(ErrForestInvalidSource)
	}
	s := c.f.arena.at(c.at.node)
	if s == nil || s.parent.isNil() || s.parent == nodeRef(c.at.node) {
		return infra.WrapErrorStack(ErrForestInvalidSource)
	}
	return nil
}

// validCursorDestination accepts live elements and live boundary
// anchors, rejecting stale and detached positions.
func validCursorDestination[T comparable](c *Cursor[T]) error {
	if c == nil || c.f == nil || c.at.isNil() || !c.f.arena.resolvable(c.at) {
		return infra.WrapErrorStack(ErrForestInvalidDestination)
	}
	if c.at.kind == refNode {
		if s := c.f.arena.at(c.at.node); s.parent == nodeRef(c.at.node) {
			return infra.WrapErrorStack(ErrForestInvalidDestination)
		}
	}
	return nil
}

// validCursorRange accepts two endpoints sharing one forest, one
// scope and one order.
func validCursorRange[T comparable](begin, end *Cursor[T]) error {
	if err := validCursorDestination(begin); err != nil {
		return err
	}
	if err := validCursorDestination(end); err != nil {
		return err
	}
	if begin.f != end.f || begin.origin != end.origin || begin.order != end.order {
		return infra.WrapErrorStack(ErrForestMismatchedOrigin)
	}
	return nil
}

// Mutating operations additionally pin their cursors to the
// receiver's storage.

func (f *forest[T]) validSource(c *Cursor[T]) error {
	if err := validCursorSource(c); err != nil {
		return err
	}
	if c.f.arena != f.arena {
		return infra.WrapErrorStack(ErrForestInvalidSource)
	}
	return nil
}

func (f *forest[T]) validDestination(c *Cursor[T]) error {
	if err := validCursorDestination(c); err != nil {
		return err
	}
	if c.f.arena != f.arena {
		return infra.WrapErrorStack(ErrForestInvalidDestination)
	}
	return nil
}

func (f *forest[T]) validRange(begin, end *Cursor[T]) error {
	if err := validCursorRange(begin, end); err != nil {
		return err
	}
	if begin.f.arena != f.arena {
		return infra.WrapErrorStack(ErrForestInvalidSource)
	}
	return nil
}

// validDependency rejects a destination lying inside src's subtree,
// src itself included. Linking there would detach the subtree from
// the forest into a cycle.
func (f *forest[T]) validDependency(at *Cursor[T], src nodeID) error {
	start := at.at.node
	if f.arena.isDescendant(start, src) {
		return infra.WrapErrorStack(ErrForestCircularDependency)
	}
	return nil
}
