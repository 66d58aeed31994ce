package forest

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/benz9527/xforest/lib/infra"
)

const (
	dumpIndentUnit  = "        "
	dumpBranchMark  = "|------ "
	dumpEmpty       = "<empty>"
	dumpUnprintable = "<unprintable>"
)

// dumpSubtree renders owner's subtree in preorder, owner excluded,
// one element per line. Depth shows as indent units plus a branch
// mark; top-level elements print flush left.
func dumpSubtree[T comparable](a *arena[T], owner nodeID) string {
	if !a.hasChildren(owner) {
		return dumpEmpty + "\n"
	}
	var sb strings.Builder
	end := a.end(owner)
	depth := 0
	it := a.begin(owner)
	for it != end {
		if depth > 0 {
			sb.WriteString(strings.Repeat(dumpIndentUnit, depth-1))
			sb.WriteString(dumpBranchMark)
		}
		sb.WriteString(renderValue(a.at(it.node).value))
		sb.WriteByte('\n')
		if a.hasChildren(it.node) {
			it = a.begin(it.node)
			depth++
			continue
		}
		n := it.node
		for a.end(n) != end && a.at(n).next.kind != refNode {
			n = a.parentID(n)
			depth--
		}
		if a.end(n) != end {
			it = a.at(n).next
		} else {
			it = end
		}
	}
	return sb.String()
}

func renderValue(v any) string {
	switch reflect.ValueOf(v).Kind() {
	case reflect.Chan, reflect.Func, reflect.UnsafePointer:
		return dumpUnprintable
	default:
		return fmt.Sprintf("%v", v)
	}
}

// SizeViolationValidate checks that every element's cached subtree
// size and child count agree with its actual child list. Exposed for
// tests and debugging.
func SizeViolationValidate[T comparable](f Forest[T]) error {
	fo, ok := f.(*forest[T])
	if !ok {
		return infra.NewErrorStack("[forest] unknown forest implementation")
	}
	a := fo.arena
	check := func(id nodeID) bool {
		sum, cnt := int64(1), int64(0)
		for it := a.begin(id); it != a.end(id); it = a.at(it.node).next {
			sum += a.sizeOf(it.node)
			cnt++
		}
		return sum == a.sizeOf(id) && cnt == a.childCountOf(id)
	}
	if !check(fo.root) {
		return infra.NewErrorStack("[forest] root size violation")
	}
	ok = a.forEach(Preorder, a.begin(fo.root), a.end(fo.root), func(r ref) bool {
		return check(r.node)
	})
	if !ok {
		return infra.NewErrorStack("[forest] subtree size violation")
	}
	return nil
}

// LinkViolationValidate checks that every child list reads the same
// forward and backward and that every child points back at its
// parent. Exposed for tests and debugging.
func LinkViolationValidate[T comparable](f Forest[T]) error {
	fo, ok := f.(*forest[T])
	if !ok {
		return infra.NewErrorStack("[forest] unknown forest implementation")
	}
	a := fo.arena
	check := func(id nodeID) bool {
		fwd := make([]nodeID, 0, a.childCountOf(id))
		for it := a.begin(id); it != a.end(id); it = a.at(it.node).next {
			s := a.at(it.node)
			if s == nil || s.parent != nodeRef(id) {
				return false
			}
			fwd = append(fwd, it.node)
			if s.next.kind != refNode && a.at(id).tail != it.node {
				return false
			}
		}
		bwd := make([]nodeID, 0, len(fwd))
		for it := a.rbegin(id); it != a.rend(id); it = a.at(it.node).prev {
			bwd = append(bwd, it.node)
		}
		if len(fwd) != len(bwd) || int64(len(fwd)) != a.childCountOf(id) {
			return false
		}
		for i := range fwd {
			if fwd[i] != bwd[len(bwd)-1-i] {
				return false
			}
		}
		return true
	}
	if !check(fo.root) {
		return infra.NewErrorStack("[forest] root link violation")
	}
	ok = a.forEach(Preorder, a.begin(fo.root), a.end(fo.root), func(r ref) bool {
		return check(r.node)
	})
	if !ok {
		return infra.NewErrorStack("[forest] sibling link violation")
	}
	return nil
}
