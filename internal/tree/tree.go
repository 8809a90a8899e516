// Package tree holds the canonical document hierarchy, its fold
// state, and the pure lookups (visibility, highlighting, path
// resolution) the rest of the UI is built on.
package tree

// NodeType discriminates folders from files.
type NodeType string

const (
	Folder NodeType = "folder"
	File   NodeType = "file"
)

// Node is one entry of the document tree as served by the backend.
// Ids are unique across the whole tree; only folders carry children.
type Node struct {
	ID       int      `json:"id"`
	Name     string   `json:"name"`
	Type     NodeType `json:"type"`
	FileType string   `json:"file_type,omitempty"`
	Children []Node   `json:"children,omitempty"`
}

// IsFolder reports whether the node is a folder.
func (n Node) IsFolder() bool { return n.Type == Folder }

// FoldState is the set of folder ids currently collapsed. Absence
// from the set means expanded.
type FoldState map[int]struct{}

// Collapsed reports whether id is in the set.
func (f FoldState) Collapsed(id int) bool {
	_, ok := f[id]
	return ok
}

// Model owns the canonical tree, a frozen deep copy used for path and
// search lookups, and the fold state. Keeping lookups on the frozen
// copy means fold mutations can never corrupt an in-flight search
// computation.
type Model struct {
	roots  []Node
	frozen []Node
	kinds  map[int]NodeType
	fold   FoldState
}

// New returns an empty model. Replace installs the first real tree.
func New() *Model {
	return &Model{
		kinds: map[int]NodeType{},
		fold:  FoldState{},
	}
}

// Replace swaps in a freshly loaded tree and resets fold state; the
// new hierarchy may share no ids with the old one. Callers keep the
// previous tree by simply not calling Replace on a failed load.
func (m *Model) Replace(roots []Node) {
	m.roots = roots
	m.frozen = cloneNodes(roots)
	m.kinds = map[int]NodeType{}
	indexKinds(roots, m.kinds)
	m.fold = FoldState{}
}

// Empty reports whether a tree has been loaded.
func (m *Model) Empty() bool { return len(m.roots) == 0 }

// Roots returns the canonical tree.
func (m *Model) Roots() []Node { return m.roots }

// Frozen returns the lookup snapshot taken at load time.
func (m *Model) Frozen() []Node { return m.frozen }

// Fold returns the live fold state.
func (m *Model) Fold() FoldState { return m.fold }

// Collapsed reports whether the folder id is currently collapsed.
func (m *Model) Collapsed(id int) bool { return m.fold.Collapsed(id) }

// Toggle flips the fold state of a folder. Ids that are unknown or
// name a file are ignored.
func (m *Model) Toggle(id int) {
	if m.kinds[id] != Folder {
		return
	}
	if _, ok := m.fold[id]; ok {
		delete(m.fold, id)
	} else {
		m.fold[id] = struct{}{}
	}
}

// Expand forces a folder open. Non-folder ids are ignored.
func (m *Model) Expand(id int) {
	if m.kinds[id] == Folder {
		delete(m.fold, id)
	}
}

// Contains reports whether id names any node in the tree.
func (m *Model) Contains(id int) bool {
	_, ok := m.kinds[id]
	return ok
}

// Files returns every file node of the frozen tree in depth-first
// pre-order.
func (m *Model) Files() []Node {
	var files []Node
	var walk func(nodes []Node)
	walk = func(nodes []Node) {
		for _, n := range nodes {
			if n.Type == File {
				files = append(files, n)
			}
			walk(n.Children)
		}
	}
	walk(m.frozen)
	return files
}

func cloneNodes(nodes []Node) []Node {
	if nodes == nil {
		return nil
	}
	out := make([]Node, len(nodes))
	for i, n := range nodes {
		out[i] = n
		out[i].Children = cloneNodes(n.Children)
	}
	return out
}

func indexKinds(nodes []Node, kinds map[int]NodeType) {
	for _, n := range nodes {
		kinds[n.ID] = n.Type
		indexKinds(n.Children, kinds)
	}
}
