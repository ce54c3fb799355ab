package category_test

import (
	"fmt"
	"testing"

	"studio-admin/internal/category"
	"studio-admin/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestFlattenEmptyForest(t *testing.T) {
	opts, err := category.Flatten(nil)
	assert.NoError(t, err)
	assert.Empty(t, opts)
}

func TestFlattenParentBeforeChild(t *testing.T) {
	roots := []category.Node{
		{ID: "A", Name: "A", Children: []category.Node{
			{ID: "B", Name: "B", Children: []category.Node{}},
		}},
	}

	opts, err := category.Flatten(roots)
	assert.NoError(t, err)
	assert.Len(t, opts, 2)
	assert.Equal(t, "A", opts[0].ID)
	assert.Equal(t, 0, opts[0].Depth)
	assert.Equal(t, "A", opts[0].Label)
	assert.Equal(t, "B", opts[1].ID)
	assert.Equal(t, 1, opts[1].Depth)
	assert.Equal(t, "‣ B", opts[1].Label)
}

func TestFlattenPreOrderAcrossSiblings(t *testing.T) {
	roots := []category.Node{
		{ID: "weddings", Name: "Weddings", Children: []category.Node{
			{ID: "outdoor", Name: "Outdoor", Children: []category.Node{
				{ID: "beach", Name: "Beach", Children: []category.Node{}},
			}},
			{ID: "studio", Name: "Studio", Children: []category.Node{}},
		}},
		{ID: "portraits", Name: "Portraits", Children: []category.Node{}},
	}

	opts, err := category.Flatten(roots)
	assert.NoError(t, err)

	var order []string
	for _, o := range opts {
		order = append(order, o.ID)
	}
	// A node's whole subtree before the next sibling, roots in input order
	assert.Equal(t, []string{"weddings", "outdoor", "beach", "studio", "portraits"}, order)
	assert.Equal(t, "‣ ‣ Beach", opts[2].Label)
	assert.Equal(t, 2, opts[2].Depth)
}

func TestFlattenEntryCountMatchesNodeCount(t *testing.T) {
	// 1 root + 3 children + 2 grandchildren = 6 nodes
	roots := []category.Node{
		{ID: "r", Name: "r", Children: []category.Node{
			{ID: "a", Name: "a", Children: []category.Node{
				{ID: "a1", Name: "a1"},
				{ID: "a2", Name: "a2"},
			}},
			{ID: "b", Name: "b"},
			{ID: "c", Name: "c"},
		}},
	}
	opts, err := category.Flatten(roots)
	assert.NoError(t, err)
	assert.Len(t, opts, 6)
}

func TestFlattenDepthCap(t *testing.T) {
	// Chain deeper than the cap must fail with a StructuralError, not hang
	leaf := category.Node{ID: "leaf", Name: "leaf"}
	node := leaf
	for i := 0; i < category.MaxDepth+5; i++ {
		node = category.Node{ID: "n", Name: "n", Children: []category.Node{node}}
	}

	_, err := category.Flatten([]category.Node{node})
	assert.Error(t, err)
	var structural *category.StructuralError
	assert.ErrorAs(t, err, &structural)
}

func TestBuildForestFromAdjacencyRows(t *testing.T) {
	rows := []models.Category{
		{ID: "1", Name: "Weddings"},
		{ID: "2", Name: "Outdoor", ParentID: "1"},
		{ID: "3", Name: "Portraits"},
		{ID: "4", Name: "Beach", ParentID: "2"},
	}

	forest := category.BuildForest(rows)
	assert.Len(t, forest, 2)
	assert.Equal(t, "Portraits", forest[0].Name)
	assert.Equal(t, "Weddings", forest[1].Name)
	assert.Len(t, forest[1].Children, 1)
	assert.Equal(t, "Outdoor", forest[1].Children[0].Name)
	assert.Equal(t, "Beach", forest[1].Children[0].Children[0].Name)
}

func TestBuildForestDanglingParentBecomesRoot(t *testing.T) {
	rows := []models.Category{
		{ID: "1", Name: "Orphan", ParentID: "missing"},
	}
	forest := category.BuildForest(rows)
	assert.Len(t, forest, 1)
	assert.Equal(t, "Orphan", forest[0].Name)
}

func TestBuildForestOutputAlwaysFlattens(t *testing.T) {
	// A chain deeper than the cap: the forest is truncated rather than
	// producing nodes Flatten would reject.
	rows := make([]models.Category, category.MaxDepth+1)
	for i := range rows {
		rows[i] = models.Category{ID: fmt.Sprintf("n%02d", i), Name: fmt.Sprintf("n%02d", i)}
		if i > 0 {
			rows[i].ParentID = fmt.Sprintf("n%02d", i-1)
		}
	}

	forest := category.BuildForest(rows)
	opts, err := category.Flatten(forest)
	assert.NoError(t, err)
	assert.NotEmpty(t, opts)
	assert.Equal(t, category.MaxDepth-1, opts[len(opts)-1].Depth)
}

func TestBuildForestCycleDoesNotHang(t *testing.T) {
	rows := []models.Category{
		{ID: "1", Name: "A", ParentID: "2"},
		{ID: "2", Name: "B", ParentID: "1"},
	}
	// Neither node reaches a root, so the forest is empty; the point is
	// that the build terminates.
	forest := category.BuildForest(rows)
	assert.Empty(t, forest)
}
