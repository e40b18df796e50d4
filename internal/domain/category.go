package domain

// FlatCategory is one row of the flat category taxonomy.
// ParentID is nil for root categories. Level is 0 until assigned by
// tree construction or flattening.
type FlatCategory struct {
	ID       string
	Name     string
	ParentID *string
	Level    int
}

// CategoryNode is one node of the hierarchical category tree.
// Roots have ParentID == nil and Level == 1; Level increases by one per
// depth step. The flat source list is assumed to be acyclic.
type CategoryNode struct {
	ID       string
	Name     string
	ParentID *string
	Level    int
	Children []*CategoryNode
}
