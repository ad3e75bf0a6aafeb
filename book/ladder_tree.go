package book

import (
	rbt "github.com/emirpasic/gods/v2/trees/redblacktree"

	"limitbook/domain"
)

// TreeLadder keeps price levels in a red-black tree keyed by price. The
// comparator is side-specific (bids descending, asks ascending) so the
// leftmost node is always the best level.
type TreeLadder struct {
	tree *rbt.Tree[float64, *Level]
}

var _ Ladder = (*TreeLadder)(nil)

// NewTreeLadder creates a red-black-tree ladder for one side.
func NewTreeLadder(side domain.Side) *TreeLadder {
	var cmp func(a, b float64) int
	if side == domain.SideBuy {
		// Bids: higher price is better, sorts first.
		cmp = func(a, b float64) int {
			switch {
			case a > b:
				return -1
			case a < b:
				return 1
			}
			return 0
		}
	} else {
		cmp = func(a, b float64) int {
			switch {
			case a < b:
				return -1
			case a > b:
				return 1
			}
			return 0
		}
	}
	return &TreeLadder{tree: rbt.NewWith[float64, *Level](cmp)}
}

func (t *TreeLadder) Push(o *domain.Order) {
	level, found := t.tree.Get(o.Price)
	if !found {
		level = newLevel(o.Price)
		t.tree.Put(o.Price, level)
	}
	level.Orders.PushBack(o)
}

func (t *TreeLadder) Remove(o *domain.Order) {
	level, found := t.tree.Get(o.Price)
	if !found {
		return
	}
	if level.remove(o.ID) && level.Orders.Len() == 0 {
		t.tree.Remove(o.Price)
	}
}

func (t *TreeLadder) Best() *Level {
	if t.tree.Empty() {
		return nil
	}
	return t.tree.Left().Value
}

func (t *TreeLadder) BestPrice() (float64, bool) {
	if t.tree.Empty() {
		return 0, false
	}
	return t.tree.Left().Key, true
}

func (t *TreeLadder) Depth(max int) []LevelSnapshot {
	if max <= 0 {
		max = t.tree.Size()
	}
	depth := make([]LevelSnapshot, 0, max)
	it := t.tree.Iterator()
	for it.Next() && len(depth) < max {
		depth = append(depth, snapshotLevel(it.Value()))
	}
	return depth
}

func (t *TreeLadder) Levels() int {
	return t.tree.Size()
}

func (t *TreeLadder) Empty() bool {
	return t.tree.Empty()
}
