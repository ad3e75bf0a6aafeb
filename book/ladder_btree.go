package book

import (
	"github.com/google/btree"

	"limitbook/domain"
)

// btreeDegree trades node size against tree height; books rarely carry more
// than a few hundred live levels.
const btreeDegree = 16

// BTreeLadder keeps price levels in a B-tree. The less function is
// side-specific so Min is always the best level.
type BTreeLadder struct {
	tree *btree.BTreeG[*Level]
}

var _ Ladder = (*BTreeLadder)(nil)

// NewBTreeLadder creates a B-tree ladder for one side.
func NewBTreeLadder(side domain.Side) *BTreeLadder {
	var less btree.LessFunc[*Level]
	if side == domain.SideBuy {
		less = func(a, b *Level) bool { return a.Price > b.Price }
	} else {
		less = func(a, b *Level) bool { return a.Price < b.Price }
	}
	return &BTreeLadder{tree: btree.NewG(btreeDegree, less)}
}

func (t *BTreeLadder) Push(o *domain.Order) {
	level, found := t.tree.Get(&Level{Price: o.Price})
	if !found {
		level = newLevel(o.Price)
		t.tree.ReplaceOrInsert(level)
	}
	level.Orders.PushBack(o)
}

func (t *BTreeLadder) Remove(o *domain.Order) {
	level, found := t.tree.Get(&Level{Price: o.Price})
	if !found {
		return
	}
	if level.remove(o.ID) && level.Orders.Len() == 0 {
		t.tree.Delete(level)
	}
}

func (t *BTreeLadder) Best() *Level {
	level, found := t.tree.Min()
	if !found {
		return nil
	}
	return level
}

func (t *BTreeLadder) BestPrice() (float64, bool) {
	level, found := t.tree.Min()
	if !found {
		return 0, false
	}
	return level.Price, true
}

func (t *BTreeLadder) Depth(max int) []LevelSnapshot {
	if max <= 0 {
		max = t.tree.Len()
	}
	depth := make([]LevelSnapshot, 0, max)
	t.tree.Ascend(func(l *Level) bool {
		depth = append(depth, snapshotLevel(l))
		return len(depth) < max
	})
	return depth
}

func (t *BTreeLadder) Levels() int {
	return t.tree.Len()
}

func (t *BTreeLadder) Empty() bool {
	return t.tree.Len() == 0
}
