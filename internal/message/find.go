package message

// Location points at a node inside its parent container.
type Location struct {
	Parent *Node
	Index  int
}

// Node returns the node the location points at.
func (l Location) Node() *Node {
	children := l.Parent.children()
	if l.Index < 0 || l.Index >= len(children) {
		return nil
	}
	return children[l.Index]
}

// Siblings returns the nodes that follow the located node in its parent,
// in order.
func (l Location) Siblings() []*Node {
	children := l.Parent.children()
	if l.Index+1 >= len(children) {
		return nil
	}
	return children[l.Index+1:]
}

// FindString searches root depth-first, in document order, for the first
// string leaf equal to value. Dictionary keys are not matched. The root
// itself has no parent and is never reported.
func FindString(root *Node, value string) (Location, bool) {
	for i, child := range root.children() {
		if s, ok := child.StringValue(); ok && s == value {
			return Location{Parent: root, Index: i}, true
		}
		if loc, ok := FindString(child, value); ok {
			return loc, true
		}
	}
	return Location{}, false
}

// Contains reports whether root holds a string leaf equal to value
// anywhere in its tree, including root itself.
func Contains(root *Node, value string) bool {
	if s, ok := root.StringValue(); ok {
		return s == value
	}
	_, ok := FindString(root, value)
	return ok
}
