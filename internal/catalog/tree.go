// Package catalog transforms raw catalog rows into flat training records:
// category tree construction, price aggregation, lifecycle status
// resolution, and product feature extraction.
package catalog

import (
	"recsys-export-lab/internal/domain"
)

// BuildTree constructs a category tree from a flat list. Nodes whose
// ParentID matches parentID become siblings at the given level; their
// children are built recursively at level+1. Root construction passes
// parentID == nil. The input list is never aliased or mutated.
func BuildTree(flat []*domain.FlatCategory, parentID *string, level int) []*domain.CategoryNode {
	var nodes []*domain.CategoryNode
	for _, item := range flat {
		if !parentIDEqual(item.ParentID, parentID) {
			continue
		}
		node := &domain.CategoryNode{
			ID:       item.ID,
			Name:     item.Name,
			ParentID: copyID(item.ParentID),
			Level:    level,
		}
		node.Children = BuildTree(flat, &item.ID, level+1)
		nodes = append(nodes, node)
	}
	return nodes
}

// FlattenTree converts a category tree back to a flat, level-annotated list
// in depth-first order, parents before children.
func FlattenTree(tree []*domain.CategoryNode) []*domain.FlatCategory {
	var flat []*domain.FlatCategory
	flattenInto(tree, 1, nil, &flat)
	return flat
}

func flattenInto(nodes []*domain.CategoryNode, level int, parentID *string, out *[]*domain.FlatCategory) {
	for _, node := range nodes {
		*out = append(*out, &domain.FlatCategory{
			ID:       node.ID,
			Name:     node.Name,
			ParentID: copyID(parentID),
			Level:    level,
		})
		if len(node.Children) > 0 {
			flattenInto(node.Children, level+1, &node.ID, out)
		}
	}
}

// Index provides O(1) category lookup by ID over a flattened taxonomy.
// Built once per pipeline run and shared read-only.
type Index struct {
	byID map[string]*domain.FlatCategory
}

// NewIndex builds an index over a flat category list.
func NewIndex(flat []*domain.FlatCategory) *Index {
	byID := make(map[string]*domain.FlatCategory, len(flat))
	for _, cat := range flat {
		byID[cat.ID] = cat
	}
	return &Index{byID: byID}
}

// NameByID returns the category name for an ID, or Unknown when absent.
func (ix *Index) NameByID(id string) string {
	if cat, ok := ix.byID[id]; ok {
		return cat.Name
	}
	return domain.Unknown
}

func parentIDEqual(a, b *string) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

func copyID(id *string) *string {
	if id == nil {
		return nil
	}
	v := *id
	return &v
}
