package legalrights

// SectionID identifies a node within a SectionTree.
type SectionID int

// NoSection is the parent of root sections.
const NoSection SectionID = -1

// SectionNode is one titled, nested content block of a document.
type SectionNode struct {
	Title    string      `json:"title"`
	Level    int         `json:"level"`
	Content  string      `json:"content"`
	Children []SectionID `json:"children,omitempty"`
}

// SectionTree is an arena of section nodes. Children are referenced by
// index into Nodes, and Roots lists the top-level sections in order.
type SectionTree struct {
	Nodes []SectionNode `json:"nodes"`
	Roots []SectionID   `json:"roots"`
}

// NewSectionTree returns an empty tree.
func NewSectionTree() *SectionTree {
	return &SectionTree{}
}

// Add appends a section under parent and returns its id.
// Pass NoSection to add a root section.
func (t *SectionTree) Add(parent SectionID, title string, level int, content string) SectionID {
	id := SectionID(len(t.Nodes))
	t.Nodes = append(t.Nodes, SectionNode{Title: title, Level: level, Content: content})
	if parent == NoSection {
		t.Roots = append(t.Roots, id)
	} else if t.valid(parent) {
		t.Nodes[parent].Children = append(t.Nodes[parent].Children, id)
	}
	return id
}

// Node returns the section with the given id, or nil if it does not exist.
func (t *SectionTree) Node(id SectionID) *SectionNode {
	if !t.valid(id) {
		return nil
	}
	return &t.Nodes[id]
}

// Len returns the number of sections in the tree.
func (t *SectionTree) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Nodes)
}

func (t *SectionTree) valid(id SectionID) bool {
	return t != nil && id >= 0 && int(id) < len(t.Nodes)
}

// SectionVisit is passed to a WalkFunc for each visited section.
type SectionVisit struct {
	ID   SectionID
	Node *SectionNode
	// Path holds the titles from the walk's starting section down to and
	// including this one.
	Path []string
}

// WalkFunc is called for each section visited by Walk.
type WalkFunc func(v SectionVisit)

// Walk visits the subtree rooted at id in depth-first pre-order: each
// section before its children, children in order. A section is visited at
// most once, so shared or cyclic child references cannot loop. Invalid ids
// are skipped.
func (t *SectionTree) Walk(id SectionID, fn WalkFunc) {
	t.walk([]SectionID{id}, nil, make(map[SectionID]bool), fn)
}

// WalkAll visits every root subtree in order, as Walk does. A section
// reachable from two roots is only visited under the first.
func (t *SectionTree) WalkAll(fn WalkFunc) {
	if t == nil {
		return
	}
	visited := make(map[SectionID]bool)
	for _, root := range t.Roots {
		t.walk([]SectionID{root}, nil, visited, fn)
	}
}

type walkFrame struct {
	id   SectionID
	path []string
}

func (t *SectionTree) walk(start []SectionID, base []string, visited map[SectionID]bool, fn WalkFunc) {
	stack := make([]walkFrame, 0, len(start))
	for i := len(start) - 1; i >= 0; i-- {
		stack = append(stack, walkFrame{id: start[i], path: base})
	}

	for len(stack) > 0 {
		frame := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if !t.valid(frame.id) || visited[frame.id] {
			continue
		}
		visited[frame.id] = true

		node := &t.Nodes[frame.id]
		path := make([]string, len(frame.path), len(frame.path)+1)
		copy(path, frame.path)
		path = append(path, node.Title)

		fn(SectionVisit{ID: frame.id, Node: node, Path: path})

		for i := len(node.Children) - 1; i >= 0; i-- {
			stack = append(stack, walkFrame{id: node.Children[i], path: path})
		}
	}
}
