// Package example generates example GraphQL queries and example responses
// from expand/select directives.
package example

// TypenameField is the meta field that may be requested in a select list
// even though no type declares it.
const TypenameField = "__typename"

// Select restricts which fields of an expanded object are included.
// A nil *Select selects every field.
type Select struct {
	Entries []SelectEntry
	// ByType narrows a union or interface selection per concrete type.
	ByType map[string]*Select
}

// SelectEntry is either a plain field name or, when Nested is set, a field
// with its own nested selection.
type SelectEntry struct {
	Name   string
	Nested bool
	Select *Select
}

// Pick selects the named fields.
func Pick(names ...string) *Select {
	s := &Select{}
	for _, n := range names {
		s.Entries = append(s.Entries, SelectEntry{Name: n})
	}
	return s
}

// With returns a copy of s with a nested selection for field appended.
func (s *Select) With(field string, sub *Select) *Select {
	out := &Select{}
	if s != nil {
		out.Entries = append(out.Entries, s.Entries...)
		out.ByType = s.ByType
	}
	out.Entries = append(out.Entries, SelectEntry{Name: field, Nested: true, Select: sub})
	return out
}

// ByTypes builds a selection keyed by concrete type name.
func ByTypes(types map[string]*Select) *Select {
	return &Select{ByType: types}
}

// forType narrows s to one concrete type. The result is nil (select all)
// unless s carries an entry for that type.
func (s *Select) forType(name string) *Select {
	if s == nil || s.ByType == nil {
		return nil
	}
	return s.ByType[name]
}

// split separates plain field names from nested selections. Nested
// selections are promoted to depth-1 nodes. all is true when nothing
// restricts the parent: no select at all, or a select holding only nested
// entries.
func (s *Select) split() (plain []string, nested []Node, all bool) {
	if s == nil {
		return nil, nil, true
	}
	for _, e := range s.Entries {
		if e.Nested {
			nested = append(nested, ExpandDepth(e.Name, e.Select, 1))
			continue
		}
		plain = append(plain, e.Name)
	}
	return plain, nested, len(plain) == 0
}

// Node names a field to expand.
type Node struct {
	Field  string
	Select *Select

	depth   int
	bounded bool
}

// Expand creates a node that stays active at every depth.
func Expand(field string, sel *Select) Node {
	return Node{Field: field, Select: sel}
}

// ExpandDepth creates a node that survives depth further recursive steps.
func ExpandDepth(field string, sel *Select, depth int) Node {
	return Node{Field: field, Select: sel, depth: depth, bounded: true}
}

// WithSelect returns a copy of the node with sel as its selection. The
// remaining depth is kept.
func (n Node) WithSelect(sel *Select) Node {
	n.Select = sel
	return n
}

// Depth returns the remaining depth and whether the node is bounded.
func (n Node) Depth() (int, bool) {
	return n.depth, n.bounded
}

// Graph is the active list of expand nodes at one traversal point.
// It is immutable: every method returns a new Graph and never shares its
// backing array with the receiver.
type Graph struct {
	nodes []Node
}

// NewGraph creates a graph from nodes.
func NewGraph(nodes ...Node) Graph {
	return Graph{nodes: append([]Node(nil), nodes...)}
}

// Len returns the number of active nodes.
func (g Graph) Len() int {
	return len(g.nodes)
}

// Nodes returns a copy of the active nodes.
func (g Graph) Nodes() []Node {
	return append([]Node(nil), g.nodes...)
}

// Step moves one level down: bounded nodes lose one unit of depth and are
// dropped once it turns negative.
func (g Graph) Step() Graph {
	out := make([]Node, 0, len(g.nodes))
	for _, n := range g.nodes {
		if n.bounded {
			n.depth--
			if n.depth < 0 {
				continue
			}
		}
		out = append(out, n)
	}
	return Graph{nodes: out}
}

// Find returns the index and value of the first node naming field.
func (g Graph) Find(field string) (int, Node, bool) {
	for i, n := range g.nodes {
		if n.Field == field {
			return i, n, true
		}
	}
	return -1, Node{}, false
}

// Has reports whether any node names field.
func (g Graph) Has(field string) bool {
	_, _, ok := g.Find(field)
	return ok
}

// With returns a graph with nodes appended.
func (g Graph) With(nodes ...Node) Graph {
	out := make([]Node, 0, len(g.nodes)+len(nodes))
	out = append(out, g.nodes...)
	out = append(out, nodes...)
	return Graph{nodes: out}
}

// Replace returns a graph with the node at i replaced.
func (g Graph) Replace(i int, n Node) Graph {
	out := g.Nodes()
	out[i] = n
	return Graph{nodes: out}
}

// Without returns a graph with the node at i removed.
func (g Graph) Without(i int) Graph {
	out := make([]Node, 0, len(g.nodes))
	out = append(out, g.nodes[:i]...)
	out = append(out, g.nodes[i+1:]...)
	return Graph{nodes: out}
}
