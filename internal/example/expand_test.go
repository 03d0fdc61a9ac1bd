package example

import (
	"testing"

	"github.com/sanixdarker/gqldoc/internal/gqltype"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGraph_StepDropsExhaustedNodes(t *testing.T) {
	g := NewGraph(Expand("a", nil), ExpandDepth("b", nil, 1))

	once := g.Step()
	require.Equal(t, 2, once.Len())
	_, b, ok := once.Find("b")
	require.True(t, ok)
	depth, bounded := b.Depth()
	assert.True(t, bounded)
	assert.Equal(t, 0, depth)

	twice := once.Step()
	assert.Equal(t, 1, twice.Len())
	assert.True(t, twice.Has("a"))
	assert.False(t, twice.Has("b"))

	// the original graph is untouched
	_, b, _ = g.Find("b")
	depth, _ = b.Depth()
	assert.Equal(t, 1, depth)
}

func TestGraph_SiblingsDoNotAlias(t *testing.T) {
	base := NewGraph(Expand("a", nil))
	left := base.With(Expand("left", nil))
	right := base.With(Expand("right", nil))

	assert.True(t, left.Has("left"))
	assert.False(t, left.Has("right"))
	assert.True(t, right.Has("right"))
	assert.False(t, right.Has("left"))
	assert.Equal(t, 1, base.Len())
}

func TestGraph_ReplaceAndWithout(t *testing.T) {
	g := NewGraph(Expand("a", nil), Expand("b", nil), Expand("a", Pick("id")))

	i, n, ok := g.Find("a")
	require.True(t, ok)
	assert.Equal(t, 0, i)
	assert.Nil(t, n.Select, "first match wins")

	replaced := g.Replace(0, Expand("a", Pick("name")))
	_, n, _ = replaced.Find("a")
	assert.Equal(t, Pick("name"), n.Select)
	_, n, _ = g.Find("a")
	assert.Nil(t, n.Select)

	without := g.Without(0)
	_, n, _ = without.Find("a")
	assert.Equal(t, Pick("id"), n.Select)
	assert.Equal(t, 3, g.Len())
}

func TestLedger_PerPath(t *testing.T) {
	root := Ledger{}.Record("friends", "User")
	left := root.Record("posts", "Post")
	right := root.Record("author", "User")

	assert.True(t, left.Contains("friends", "User"))
	assert.True(t, left.Contains("posts", "Post"))
	assert.False(t, right.Contains("posts", "Post"))
	assert.False(t, root.Contains("author", "User"))
	assert.Equal(t, 1, root.Len())
	assert.Equal(t, 2, right.Len())
}

func TestSelect_Split(t *testing.T) {
	tests := []struct {
		name      string
		sel       *Select
		wantPlain []string
		wantNest  []string
		wantAll   bool
	}{
		{name: "nil selects all", sel: nil, wantAll: true},
		{name: "plain names", sel: Pick("id", "name"), wantPlain: []string{"id", "name"}},
		{name: "mixed", sel: Pick("id").With("friends", nil), wantPlain: []string{"id"}, wantNest: []string{"friends"}},
		{name: "nested only selects all", sel: (&Select{}).With("friends", Pick("id")), wantNest: []string{"friends"}, wantAll: true},
		{name: "type keyed selects all", sel: ByTypes(map[string]*Select{"User": Pick("id")}), wantAll: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			plain, nested, all := tt.sel.split()
			assert.Equal(t, tt.wantPlain, plain)
			assert.Equal(t, tt.wantAll, all)
			var names []string
			for _, n := range nested {
				names = append(names, n.Field)
				depth, bounded := n.Depth()
				assert.True(t, bounded)
				assert.Equal(t, 1, depth)
			}
			assert.Equal(t, tt.wantNest, names)
		})
	}
}

func TestSelect_ForType(t *testing.T) {
	var none *Select
	assert.Nil(t, none.forType("User"))
	assert.Nil(t, Pick("id").forType("User"))

	sel := ByTypes(map[string]*Select{"User": Pick("id")})
	assert.Equal(t, Pick("id"), sel.forType("User"))
	assert.Nil(t, sel.forType("Post"))
}

func TestParseSelect(t *testing.T) {
	sel, err := ParseSelect([]any{"id", map[any]any{"friends": []any{"id"}}})
	require.NoError(t, err)
	assert.Equal(t, Pick("id").With("friends", Pick("id")), sel)

	sel, err = ParseSelect(map[string]any{"User": []any{"id"}, "Post": nil})
	require.NoError(t, err)
	assert.Equal(t, ByTypes(map[string]*Select{"User": Pick("id"), "Post": nil}), sel)

	sel, err = ParseSelect(nil)
	require.NoError(t, err)
	assert.Nil(t, sel)

	sel, err = ParseSelect("id")
	require.NoError(t, err)
	assert.Equal(t, Pick("id"), sel)

	_, err = ParseSelect(42)
	assert.Error(t, err)

	_, err = ParseSelect([]any{true})
	assert.Error(t, err)
}

func TestParseExpand(t *testing.T) {
	nodes, err := ParseExpand(map[string]any{"posts": nil, "friends": []any{"id"}})
	require.NoError(t, err)
	require.Len(t, nodes, 2)
	assert.Equal(t, Expand("friends", Pick("id")), nodes[0])
	assert.Equal(t, Expand("posts", nil), nodes[1])

	nodes, err = ParseExpand([]any{"posts", map[any]any{"friends": []any{"id"}}})
	require.NoError(t, err)
	assert.Equal(t, []Node{Expand("posts", nil), Expand("friends", Pick("id"))}, nodes)

	_, err = ParseExpand("friends")
	assert.Error(t, err)
}

func TestResponse_DepthCap(t *testing.T) {
	user := gqltype.NewObject("User", &gqltype.Field{Name: "id", Type: &gqltype.Scalar{Name: "ID"}})

	s := typeResponse("user", user, NewGraph(Expand("user", nil)), MaxResponseDepth+1)

	require.NotNil(t, s)
	assert.Equal(t, "object", s.Type)
	assert.Nil(t, s.Properties)
}

func TestResponse_ListOfUnmatchedObjectIsOmitted(t *testing.T) {
	user := gqltype.NewObject("User", &gqltype.Field{Name: "id", Type: &gqltype.Scalar{Name: "ID"}})

	s := typeResponse("users", &gqltype.List{Of: user}, NewGraph(), 1)

	assert.Nil(t, s)
}
