package book

import (
	"testing"

	"limitbook/domain"
)

var ladderKinds = map[string]LadderKind{
	"tree":  TreeLadderKind,
	"btree": BTreeLadderKind,
}

func TestLadderBestPriceAsks(t *testing.T) {
	for name, kind := range ladderKinds {
		t.Run(name, func(t *testing.T) {
			l := NewLadder(kind, domain.SideSell)

			if _, ok := l.BestPrice(); ok {
				t.Fatal("expected no best price on empty ladder")
			}

			l.Push(&domain.Order{ID: 1, Side: domain.SideSell, Price: 101.0, Remaining: 5})
			l.Push(&domain.Order{ID: 2, Side: domain.SideSell, Price: 100.0, Remaining: 5})
			l.Push(&domain.Order{ID: 3, Side: domain.SideSell, Price: 102.0, Remaining: 5})

			best, ok := l.BestPrice()
			if !ok || best != 100.0 {
				t.Errorf("expected best ask 100.0, got %v (ok=%v)", best, ok)
			}
		})
	}
}

func TestLadderBestPriceBids(t *testing.T) {
	for name, kind := range ladderKinds {
		t.Run(name, func(t *testing.T) {
			l := NewLadder(kind, domain.SideBuy)

			l.Push(&domain.Order{ID: 1, Side: domain.SideBuy, Price: 99.0, Remaining: 5})
			l.Push(&domain.Order{ID: 2, Side: domain.SideBuy, Price: 100.0, Remaining: 5})
			l.Push(&domain.Order{ID: 3, Side: domain.SideBuy, Price: 98.0, Remaining: 5})

			best, ok := l.BestPrice()
			if !ok || best != 100.0 {
				t.Errorf("expected best bid 100.0, got %v (ok=%v)", best, ok)
			}
		})
	}
}

func TestLadderFIFOWithinLevel(t *testing.T) {
	for name, kind := range ladderKinds {
		t.Run(name, func(t *testing.T) {
			l := NewLadder(kind, domain.SideSell)

			first := &domain.Order{ID: 1, Side: domain.SideSell, Price: 100.0, Remaining: 5}
			second := &domain.Order{ID: 2, Side: domain.SideSell, Price: 100.0, Remaining: 5}
			third := &domain.Order{ID: 3, Side: domain.SideSell, Price: 100.0, Remaining: 5}
			l.Push(first)
			l.Push(second)
			l.Push(third)

			level := l.Best()
			if level == nil {
				t.Fatal("expected best level")
			}
			if level.Orders.Len() != 3 {
				t.Fatalf("expected 3 queued orders, got %d", level.Orders.Len())
			}
			if got := level.Front(); got.ID != 1 {
				t.Errorf("front should be the oldest order, got id %d", got.ID)
			}

			l.Remove(first)
			if got := l.Best().Front(); got.ID != 2 {
				t.Errorf("after removing the front, next oldest should lead, got id %d", got.ID)
			}
		})
	}
}

func TestLadderRemoveDropsEmptyLevel(t *testing.T) {
	for name, kind := range ladderKinds {
		t.Run(name, func(t *testing.T) {
			l := NewLadder(kind, domain.SideBuy)

			only := &domain.Order{ID: 1, Side: domain.SideBuy, Price: 100.0, Remaining: 5}
			l.Push(only)
			l.Push(&domain.Order{ID: 2, Side: domain.SideBuy, Price: 99.0, Remaining: 5})

			l.Remove(only)

			if l.Levels() != 1 {
				t.Fatalf("expected 1 level after removal, got %d", l.Levels())
			}
			best, _ := l.BestPrice()
			if best != 99.0 {
				t.Errorf("expected best bid to fall back to 99.0, got %v", best)
			}

			// Removing an order the ladder never held is a no-op.
			l.Remove(&domain.Order{ID: 42, Side: domain.SideBuy, Price: 99.0})
			if l.Levels() != 1 {
				t.Errorf("unknown-order removal must not change the ladder")
			}
		})
	}
}

func TestLadderDepthOrder(t *testing.T) {
	for name, kind := range ladderKinds {
		t.Run(name, func(t *testing.T) {
			l := NewLadder(kind, domain.SideSell)

			l.Push(&domain.Order{ID: 1, Side: domain.SideSell, Price: 102.0, Remaining: 7})
			l.Push(&domain.Order{ID: 2, Side: domain.SideSell, Price: 100.0, Remaining: 5})
			l.Push(&domain.Order{ID: 3, Side: domain.SideSell, Price: 100.0, Remaining: 3})
			l.Push(&domain.Order{ID: 4, Side: domain.SideSell, Price: 101.0, Remaining: 2})

			depth := l.Depth(2)
			if len(depth) != 2 {
				t.Fatalf("expected 2 levels, got %d", len(depth))
			}
			if depth[0].Price != 100.0 || depth[0].Quantity != 8 || depth[0].Orders != 2 {
				t.Errorf("unexpected first level: %+v", depth[0])
			}
			if depth[1].Price != 101.0 || depth[1].Quantity != 2 {
				t.Errorf("unexpected second level: %+v", depth[1])
			}

			all := l.Depth(0)
			if len(all) != 3 {
				t.Errorf("expected all 3 levels with max<=0, got %d", len(all))
			}
		})
	}
}

func TestLevelFrontPanicsWhenEmpty(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic on empty level")
		}
	}()
	lvl := newLevel(100.0)
	lvl.Front()
}
