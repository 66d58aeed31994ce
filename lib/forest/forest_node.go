package forest

// refKind discriminates what a ref points at. Anchors are the
// positions just before the first child (head anchor, i.e. rend) and
// just past the last child (tail anchor, i.e. end) of one parent;
// they stay valid while the parent lives, whatever happens to the
// child list.
type refKind uint8

const (
	refNil refKind = iota
	refNode
	refHeadAnchor
	refTailAnchor
)

// ref is a tagged position inside an arena: nothing, an element, or
// one of the two boundary anchors of an element's child list.
type ref struct {
	node nodeID
	kind refKind
}

var nilRef = ref{}

func nodeRef(id nodeID) ref {
	return ref{node: id, kind: refNode}
}

func headAnchor(id nodeID) ref {
	return ref{node: id, kind: refHeadAnchor}
}

func tailAnchor(id nodeID) ref {
	return ref{node: id, kind: refTailAnchor}
}

func (r ref) isNil() bool {
	return r.kind == refNil
}

func (r ref) isBoundary() bool {
	return r.kind == refHeadAnchor || r.kind == refTailAnchor
}

func (r ref) isEnd() bool {
	return r.kind == refTailAnchor
}

func (r ref) isREnd() bool {
	return r.kind == refHeadAnchor
}

// resolvable reports whether r still denotes a live position.
func (a *arena[T]) resolvable(r ref) bool {
	return r.kind != refNil && a.alive(r.node)
}

// begin returns the position of p's first child, or end(p) when p has
// no children.
func (a *arena[T]) begin(p nodeID) ref {
	s := a.at(p)
	if s == nil || s.children == 0 {
		return tailAnchor(p)
	}
	return nodeRef(s.head)
}

func (a *arena[T]) end(p nodeID) ref {
	return tailAnchor(p)
}

// rbegin returns the position of p's last child, or rend(p) when p
// has no children.
func (a *arena[T]) rbegin(p nodeID) ref {
	s := a.at(p)
	if s == nil || s.children == 0 {
		return headAnchor(p)
	}
	return nodeRef(s.tail)
}

func (a *arena[T]) rend(p nodeID) ref {
	return headAnchor(p)
}

func (a *arena[T]) hasChildren(p nodeID) bool {
	s := a.at(p)
	return s != nil && s.children > 0
}

func (a *arena[T]) childCountOf(p nodeID) int64 {
	if s := a.at(p); s != nil {
		return s.children
	}
	return 0
}

func (a *arena[T]) sizeOf(p nodeID) int64 {
	if s := a.at(p); s != nil {
		return s.size
	}
	return 0
}

func (a *arena[T]) isRoot(id nodeID) bool {
	s := a.at(id)
	return s != nil && s.parent.isNil()
}

// isDetached reports whether id is allocated but not linked anywhere.
func (a *arena[T]) isDetached(id nodeID) bool {
	s := a.at(id)
	return s != nil && s.parent == nodeRef(id)
}

// isFirstChild reports whether r denotes the first element of its
// parent's child list.
func (a *arena[T]) isFirstChild(r ref) bool {
	if r.kind != refNode {
		return false
	}
	s := a.at(r.node)
	return s != nil && s.prev.kind == refHeadAnchor
}

// parentID returns id's parent, or the nil id for roots and detached
// or stale elements.
func (a *arena[T]) parentID(id nodeID) nodeID {
	s := a.at(id)
	if s == nil || s.parent.kind != refNode || s.parent.node == id {
		return nilID
	}
	return s.parent.node
}

// ownerOf returns the parent whose child list contains the position
// r: the anchor's owner for boundaries, the element's parent for
// elements.
func (a *arena[T]) ownerOf(r ref) nodeID {
	switch r.kind {
	case refHeadAnchor, refTailAnchor:
		return r.node
	case refNode:
		return a.parentID(r.node)
	default:
		return nilID
	}
}

// deepestRightmost descends along last children, returning id itself
// when it has none. This is the final element of id's subtree in
// preorder.
func (a *arena[T]) deepestRightmost(id nodeID) nodeID {
	for s := a.at(id); s != nil && s.children > 0; s = a.at(id) {
		id = s.tail
	}
	return id
}

// isDescendant reports whether id lies inside ancestor's subtree,
// ancestor itself included.
func (a *arena[T]) isDescendant(id, ancestor nodeID) bool {
	for cur := id; !cur.isNil(); cur = a.parentID(cur) {
		if cur == ancestor {
			return true
		}
	}
	return false
}
