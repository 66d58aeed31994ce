package forest

import "fmt"

// Note that the ordered forest is not thread safe.
// It is a positional container: positions are explicit cursor
// arguments, never derived from value ordering.

// Order selects the traversal strategy applied by cursors, views and
// range operations.
//
// Flat iterates one parent's direct children in sibling order and
// treats every child subtree as an opaque unit, which is why all
// multi-subtree move/copy/compare range operations run under it.
// Preorder iterates a whole subtree depth first, parent before
// children, bounded by the owning scope.
type Order uint8

const (
	Flat Order = iota
	Preorder
)

type ForestErr string

const (
	ErrForestInvalidSource      ForestErr = "[forest] invalid or sentinel source element"
	ErrForestInvalidDestination ForestErr = "[forest] invalid destination position"
	ErrForestCircularDependency ForestErr = "[forest] circular dependency"
	ErrForestMismatchedOrigin   ForestErr = "[forest] range cursors with mismatched origins"
	ErrForestFlatRangeRequired  ForestErr = "[forest] operation requires a flat order range"
	ErrForestOutOfRange         ForestErr = "[forest] navigation out of range"
)

func (err ForestErr) Error() string {
	return string(err)
}

// View is a read/write window over one scope of a forest: either the
// whole container (obtained from Forest) or a single subtree
// (obtained from a Cursor). Both views share the same storage.
type View[T comparable] interface {
	// Begin returns a cursor to the first element of the scope in
	// this view's order, or End for an empty scope.
	Begin() *Cursor[T]
	// End returns the cursor one past the last element of the scope.
	End() *Cursor[T]
	// RBegin returns a cursor to the last element of the scope in
	// this view's order, or REnd for an empty scope.
	RBegin() *Cursor[T]
	// REnd returns the cursor one before the first element of the scope.
	REnd() *Cursor[T]
	// Size returns the element count of the scope, excluding the owner.
	Size() int64
	// ChildCount returns the number of direct children of the scope owner.
	ChildCount() int64
	HasChildren() bool
	Empty() bool
	// Foreach traverses the scope in this view's order and executes
	// fn for each element. If fn returns an error, the traversal
	// stops and returns the error.
	Foreach(fn func(idx int64, c *Cursor[T]) error) error
	// ReverseForeach iterates the scope in reverse order, calling fn
	// for each element. Elements may be removed while iterating.
	ReverseForeach(fn func(idx int64, c *Cursor[T]))
	// Values collects the scope's values in this view's order.
	Values() []T
	// Remove removes every element of the scope whose value equals v,
	// subtree included, and returns the removed element count.
	Remove(v T) int64
	// RemoveIf removes every element of the scope satisfying pred,
	// subtree included, and returns the removed element count.
	RemoveIf(pred func(v T) bool) int64
	// CopyTo shallow-copies the scope's top-level elements before the
	// position at and returns a cursor to the first copy.
	CopyTo(at *Cursor[T]) (*Cursor[T], error)
}

// Forest is an ordered sequence of multi-child, multi-level trees
// sharing one container. All structural edits splice links without
// reallocating unrelated nodes; a running subtree-size count is
// maintained on every ancestor.
type Forest[T comparable] interface {
	// Size returns the total number of elements in the forest.
	Size() int64
	// ChildCount returns the number of top-level trees.
	ChildCount() int64
	Empty() bool
	// Clear removes every element of the forest.
	Clear()
	// Flat returns the view over the top-level trees in sibling order.
	Flat() View[T]
	// Preorder returns the view over every element in depth-first order.
	Preorder() View[T]
	// Insert inserts v immediately before the position at and returns
	// a cursor to the new element.
	Insert(at *Cursor[T], v T) (*Cursor[T], error)
	// InsertValues inserts vs in order immediately before the
	// position at and returns a cursor to the first new element.
	InsertValues(at *Cursor[T], vs ...T) (*Cursor[T], error)
	// Emplace constructs a value in place via construct, invoked once
	// after the destination has been validated.
	Emplace(at *Cursor[T], construct func() T) (*Cursor[T], error)
	// Copy inserts a copy of src's value (subtree excluded) before at.
	Copy(at, src *Cursor[T]) (*Cursor[T], error)
	// CopyRange shallow-copies the elements of [begin, end) before at.
	CopyRange(at, begin, end *Cursor[T]) (*Cursor[T], error)
	// DeepCopy inserts a copy of src's whole subtree before at.
	DeepCopy(at, src *Cursor[T]) (*Cursor[T], error)
	// DeepCopyRange deep-copies the subtrees of the flat range
	// [begin, end) before at.
	DeepCopyRange(at, begin, end *Cursor[T]) (*Cursor[T], error)
	// Move relocates src's subtree before at. Fails with
	// ErrForestCircularDependency if at lies inside src's subtree.
	Move(at, src *Cursor[T]) (*Cursor[T], error)
	// MoveRange relocates the subtrees of the flat range [begin, end)
	// before at, preserving their order.
	MoveRange(at, begin, end *Cursor[T]) (*Cursor[T], error)
	// Join moves every top-level tree of other before at, leaving
	// other empty.
	Join(at *Cursor[T], other Forest[T]) (*Cursor[T], error)
	// Unjoin detaches src's subtree into a brand-new standalone forest.
	Unjoin(src *Cursor[T]) (Forest[T], error)
	// Append joins each subtree, in order, as children of the last
	// element in preorder (or as top-level trees if the forest is
	// empty) and returns the receiver for chaining.
	Append(subtrees ...Forest[T]) Forest[T]
	// Remove removes src's subtree and returns a cursor to the
	// element that followed it.
	Remove(src *Cursor[T]) (*Cursor[T], error)
	// RemoveValue removes every element of [begin, end) whose value
	// equals v, subtree included, and returns the removed element count.
	RemoveValue(begin, end *Cursor[T], v T) (int64, error)
	// RemoveIf removes every element of [begin, end) satisfying pred,
	// subtree included, and returns the removed element count.
	RemoveIf(begin, end *Cursor[T], pred func(v T) bool) (int64, error)
	// Compare compares only the two elements' values.
	// If eqFn is not provided, values are compared with ==.
	Compare(first, second *Cursor[T], eqFn ...func(a, b T) bool) (bool, error)
	// CompareRange compares two ranges element-wise, values only.
	CompareRange(firstBegin, firstEnd, secondBegin, secondEnd *Cursor[T], eqFn ...func(a, b T) bool) (bool, error)
	// DeepCompare compares the two elements' whole subtrees in
	// lock-step preorder, requiring equal subtree size and child
	// count at every visited pair; a shape mismatch is conclusive.
	DeepCompare(first, second *Cursor[T], eqFn ...func(a, b T) bool) (bool, error)
	// DeepCompareRange deep-compares two flat ranges pair-wise.
	DeepCompareRange(firstBegin, firstEnd, secondBegin, secondEnd *Cursor[T], eqFn ...func(a, b T) bool) (bool, error)
	// Swap exchanges the positions of two elements in their (possibly
	// different) sibling chains without touching their subtrees.
	Swap(first, second *Cursor[T]) error
	// Equal deep-compares two whole forests.
	Equal(other Forest[T]) bool
	// Clone returns a deep copy of the whole forest.
	Clone() Forest[T]
	fmt.Stringer
}
