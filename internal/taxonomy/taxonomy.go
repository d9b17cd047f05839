// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package taxonomy builds an in-memory tree over the flat category table
// and answers hierarchy queries without further database access. One
// List() query feeds a Tree; descendant and ancestor walks are pure.
package taxonomy

import (
	"fmt"
	"sort"

	"github.com/google/uuid"

	"gogevgelija/internal/models"
)

// Tree is an immutable snapshot of the category hierarchy.
type Tree struct {
	byID     map[uuid.UUID]*models.Category
	children map[uuid.UUID][]uuid.UUID
	roots    []uuid.UUID
}

// Build constructs a Tree from a flat category list. It fails on
// duplicate IDs and on parent cycles, both of which indicate corrupted
// data that must not be served.
func Build(categories []models.Category) (*Tree, error) {
	t := &Tree{
		byID:     make(map[uuid.UUID]*models.Category, len(categories)),
		children: make(map[uuid.UUID][]uuid.UUID),
	}
	for i := range categories {
		c := &categories[i]
		if _, dup := t.byID[c.ID]; dup {
			return nil, fmt.Errorf("duplicate category id %s", c.ID)
		}
		t.byID[c.ID] = c
	}
	for _, c := range t.byID {
		if c.ParentID == nil {
			t.roots = append(t.roots, c.ID)
			continue
		}
		if _, ok := t.byID[*c.ParentID]; !ok {
			// Orphaned parent pointer; treat as a root rather than
			// dropping the subtree.
			t.roots = append(t.roots, c.ID)
			continue
		}
		t.children[*c.ParentID] = append(t.children[*c.ParentID], c.ID)
	}
	if err := t.validate(); err != nil {
		return nil, err
	}
	t.sortSiblings()
	return t, nil
}

// validate walks every parent chain and rejects self-references and
// deeper cycles.
func (t *Tree) validate() error {
	for id, c := range t.byID {
		if c.ParentID != nil && *c.ParentID == id {
			return fmt.Errorf("category %s is its own parent", id)
		}
		visited := map[uuid.UUID]struct{}{id: {}}
		cur := c
		for cur.ParentID != nil {
			next, ok := t.byID[*cur.ParentID]
			if !ok {
				break
			}
			if _, seen := visited[next.ID]; seen {
				return fmt.Errorf("category parent cycle through %s", next.ID)
			}
			visited[next.ID] = struct{}{}
			cur = next
		}
	}
	return nil
}

// sortSiblings orders every sibling group by (sort_order, name) so that
// traversal output is deterministic. Combined with level-ordered listing
// this yields the canonical (level, sort_order, name) display order.
func (t *Tree) sortSiblings() {
	order := func(ids []uuid.UUID) {
		sort.SliceStable(ids, func(i, j int) bool {
			a, b := t.byID[ids[i]], t.byID[ids[j]]
			if a.SortOrder != b.SortOrder {
				return a.SortOrder < b.SortOrder
			}
			return a.Name < b.Name
		})
	}
	order(t.roots)
	for _, ids := range t.children {
		order(ids)
	}
}

// Get returns the category with the given id, or nil.
func (t *Tree) Get(id uuid.UUID) *models.Category {
	return t.byID[id]
}

// Roots returns the top-level categories in display order.
func (t *Tree) Roots() []*models.Category {
	out := make([]*models.Category, 0, len(t.roots))
	for _, id := range t.roots {
		out = append(out, t.byID[id])
	}
	return out
}

// Children returns the direct children of id in display order.
func (t *Tree) Children(id uuid.UUID) []*models.Category {
	ids := t.children[id]
	out := make([]*models.Category, 0, len(ids))
	for _, cid := range ids {
		out = append(out, t.byID[cid])
	}
	return out
}

// DescendantIDs collects the ids of every category below id via
// breadth-first traversal. The visited set guards against cycles that
// slipped past validation. includeSelf prepends id itself, which is what
// item filtering wants: a category's items include its own.
func (t *Tree) DescendantIDs(id uuid.UUID, includeSelf bool) []uuid.UUID {
	if _, ok := t.byID[id]; !ok {
		return nil
	}
	var out []uuid.UUID
	if includeSelf {
		out = append(out, id)
	}
	visited := map[uuid.UUID]struct{}{id: {}}
	queue := append([]uuid.UUID(nil), t.children[id]...)
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		if _, seen := visited[cur]; seen {
			continue
		}
		visited[cur] = struct{}{}
		out = append(out, cur)
		queue = append(queue, t.children[cur]...)
	}
	return out
}

// Ancestors returns the parent chain of id ordered root-first, excluding
// id itself.
func (t *Tree) Ancestors(id uuid.UUID) []*models.Category {
	c, ok := t.byID[id]
	if !ok {
		return nil
	}
	visited := map[uuid.UUID]struct{}{id: {}}
	var chain []*models.Category
	for c.ParentID != nil {
		parent, ok := t.byID[*c.ParentID]
		if !ok {
			break
		}
		if _, seen := visited[parent.ID]; seen {
			break
		}
		visited[parent.ID] = struct{}{}
		chain = append(chain, parent)
		c = parent
	}
	// Reverse to root-first order.
	for i, j := 0, len(chain)-1; i < j; i, j = i+1, j-1 {
		chain[i], chain[j] = chain[j], chain[i]
	}
	return chain
}

// Level returns the depth of id derived from its parent chain, 0 for
// roots. This is the authoritative value; the stored column is a cache.
func (t *Tree) Level(id uuid.UUID) int {
	return len(t.Ancestors(id))
}

// Nested returns the full hierarchy with Children populated, suitable
// for the public categories payload. Copies are returned; the snapshot
// itself is not mutated.
func (t *Tree) Nested() []models.Category {
	var build func(id uuid.UUID) models.Category
	build = func(id uuid.UUID) models.Category {
		c := *t.byID[id]
		kids := t.children[id]
		if len(kids) > 0 {
			c.Children = make([]models.Category, 0, len(kids))
			for _, kid := range kids {
				c.Children = append(c.Children, build(kid))
			}
		}
		return c
	}
	out := make([]models.Category, 0, len(t.roots))
	for _, id := range t.roots {
		out = append(out, build(id))
	}
	return out
}
