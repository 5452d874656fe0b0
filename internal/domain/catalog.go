package domain

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// Service bookable service or a parent menu node grouping sub-services
type Service struct {
	ID              int64
	Name            string
	Slug            string
	Description     *string
	DurationMinutes int
	Price           *decimal.Decimal // nil means "price on request"
	ImageURL        *string
	CategoryID      *int64
	ParentServiceID *int64
	IsActive        bool
	DisplayOrder    int
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// IsSubService returns true if the service hangs under a parent
func (s *Service) IsSubService() bool {
	return s.ParentServiceID != nil
}

// ServiceCategory groups services for display
type ServiceCategory struct {
	ID           int64
	Name         string
	Slug         string
	Description  *string
	DisplayOrder int
	CreatedAt    time.Time
}

// ServiceOrder one entry of a drag-and-drop reorder request
type ServiceOrder struct {
	ID              int64
	DisplayOrder    int
	ParentServiceID *int64
}

// ServiceTree two-level view over a flat list of services.
// Services are stored by id; children are referenced by id from the parent index.
type ServiceTree struct {
	nodes    map[int64]*Service
	children map[int64][]int64
	roots    []int64
}

// NewServiceTree builds the tree. Children whose parent is absent from the list are treated as roots.
func NewServiceTree(services []*Service) *ServiceTree {
	tree := &ServiceTree{
		nodes:    make(map[int64]*Service, len(services)),
		children: make(map[int64][]int64),
	}
	for _, s := range services {
		tree.nodes[s.ID] = s
	}
	for _, s := range services {
		if s.ParentServiceID != nil {
			if _, ok := tree.nodes[*s.ParentServiceID]; ok {
				tree.children[*s.ParentServiceID] = append(tree.children[*s.ParentServiceID], s.ID)
				continue
			}
		}
		tree.roots = append(tree.roots, s.ID)
	}

	tree.sortIDs(tree.roots)
	for parentID := range tree.children {
		tree.sortIDs(tree.children[parentID])
	}
	return tree
}

// Get returns a service by id
func (t *ServiceTree) Get(id int64) (*Service, bool) {
	s, ok := t.nodes[id]
	return s, ok
}

// Roots returns top-level services ordered by displayOrder
func (t *ServiceTree) Roots() []*Service {
	return t.collect(t.roots)
}

// Children returns direct sub-services ordered by displayOrder
func (t *ServiceTree) Children(id int64) []*Service {
	return t.collect(t.children[id])
}

// HasChildren returns true if at least one service references id as its parent
func (t *ServiceTree) HasChildren(id int64) bool {
	return len(t.children[id]) > 0
}

// ValidateParent checks that serviceID (0 for a new service) may be placed under parentID
func (t *ServiceTree) ValidateParent(serviceID, parentID int64) error {
	if serviceID != 0 && serviceID == parentID {
		return ErrSelfParent
	}
	parent, ok := t.nodes[parentID]
	if !ok {
		return ErrParentNotFound
	}
	if parent.ParentServiceID != nil {
		return ErrParentIsChild
	}
	if serviceID != 0 && t.HasChildren(serviceID) {
		return ErrHasChildren
	}
	return nil
}

func (t *ServiceTree) collect(ids []int64) []*Service {
	result := make([]*Service, 0, len(ids))
	for _, id := range ids {
		result = append(result, t.nodes[id])
	}
	return result
}

func (t *ServiceTree) sortIDs(ids []int64) {
	sort.SliceStable(ids, func(i, j int) bool {
		a, b := t.nodes[ids[i]], t.nodes[ids[j]]
		if a.DisplayOrder != b.DisplayOrder {
			return a.DisplayOrder < b.DisplayOrder
		}
		return a.ID < b.ID
	})
}
