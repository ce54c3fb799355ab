package category

import (
	"fmt"
	"sort"
	"strings"

	"studio-admin/internal/models"
)

// Node is one node of the category forest as served by the tree endpoint.
type Node struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Children []Node `json:"children"`
}

// Option is one row of the flattened single-selection list. Label carries
// the depth as a repeated indent glyph so hierarchy survives in a plain
// dropdown.
type Option struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	Depth int    `json:"depth"`
}

const indentGlyph = "‣ "

// MaxDepth caps flatten recursion. Well-formed forests never come close;
// the cap turns malformed (cyclic) input into an error instead of a hang.
const MaxDepth = 32

// StructuralError reports input that violates the tree precondition.
type StructuralError struct {
	Msg string
}

func (e *StructuralError) Error() string { return e.Msg }

// Flatten produces a pre-order traversal of the forest: each node is
// emitted before its children, children before the next sibling's
// subtree. Roots have depth 0. An empty forest yields an empty list.
func Flatten(roots []Node) ([]Option, error) {
	opts := []Option{}
	for _, root := range roots {
		var err error
		opts, err = flattenInto(opts, root, 0)
		if err != nil {
			return nil, err
		}
	}
	return opts, nil
}

func flattenInto(opts []Option, n Node, depth int) ([]Option, error) {
	if depth >= MaxDepth {
		return nil, &StructuralError{Msg: fmt.Sprintf("category tree deeper than %d levels", MaxDepth)}
	}
	opts = append(opts, Option{
		ID:    n.ID,
		Label: strings.Repeat(indentGlyph, depth) + n.Name,
		Depth: depth,
	})
	for _, child := range n.Children {
		var err error
		opts, err = flattenInto(opts, child, depth+1)
		if err != nil {
			return nil, err
		}
	}
	return opts, nil
}

// BuildForest assembles the forest from adjacency rows. Rows whose parent
// chain never reaches a root (dangling or cyclic parent ids) are left out
// rather than failing the whole tree. Siblings are ordered by name for a
// stable traversal.
func BuildForest(rows []models.Category) []Node {
	children := make(map[string][]models.Category)
	ids := make(map[string]bool, len(rows))
	for _, row := range rows {
		ids[row.ID] = true
	}
	var rootRows []models.Category
	for _, row := range rows {
		if row.ParentID == "" || !ids[row.ParentID] {
			rootRows = append(rootRows, row)
			continue
		}
		children[row.ParentID] = append(children[row.ParentID], row)
	}

	var build func(row models.Category, depth int) Node
	build = func(row models.Category, depth int) Node {
		n := Node{ID: row.ID, Name: row.Name, Children: []Node{}}
		// Children are cut at depth MaxDepth-1 so the forest always stays
		// within Flatten's cap.
		if depth+1 >= MaxDepth {
			return n
		}
		for _, child := range sorted(children[row.ID]) {
			n.Children = append(n.Children, build(child, depth+1))
		}
		return n
	}

	forest := []Node{}
	for _, row := range sorted(rootRows) {
		forest = append(forest, build(row, 0))
	}
	return forest
}

func sorted(rows []models.Category) []models.Category {
	out := make([]models.Category, len(rows))
	copy(out, rows)
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}
