package tree

// FindPath returns the root-to-node inclusive chain for id over the
// frozen tree, nil when the id is absent. The walk is depth-first
// pre-order; if duplicate ids ever occur despite the uniqueness
// invariant, the first one encountered wins.
func (m *Model) FindPath(id int) []Node {
	return findPath(m.frozen, id, nil)
}

// FindNode returns the frozen node for id, or false when absent.
func (m *Model) FindNode(id int) (Node, bool) {
	path := m.FindPath(id)
	if len(path) == 0 {
		return Node{}, false
	}
	return path[len(path)-1], true
}

func findPath(nodes []Node, id int, trail []Node) []Node {
	for _, n := range nodes {
		chain := append(trail, n)
		if n.ID == id {
			out := make([]Node, len(chain))
			copy(out, chain)
			return out
		}
		if found := findPath(n.Children, id, chain); found != nil {
			return found
		}
	}
	return nil
}
