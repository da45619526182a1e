package scheduler

import (
	"sync"
	"testing"
)

func TestNewPartitionsWholeImageWithNoOverlap(t *testing.T) {
	s := New(100, 57, 16, 16)
	covered := make([][]bool, 57)
	for y := range covered {
		covered[y] = make([]bool, 100)
	}

	for i := 0; i < s.TileCount(); i++ {
		tile := s.TileAt(i)
		for y := tile.MinY; y < tile.MaxY; y++ {
			for x := tile.MinX; x < tile.MaxX; x++ {
				if covered[y][x] {
					t.Fatalf("pixel (%d,%d) covered by more than one tile", x, y)
				}
				covered[y][x] = true
			}
		}
	}

	for y := 0; y < 57; y++ {
		for x := 0; x < 100; x++ {
			if !covered[y][x] {
				t.Fatalf("pixel (%d,%d) not covered by any tile", x, y)
			}
		}
	}
}

func TestEachTileClaimedExactlyOnce(t *testing.T) {
	s := New(64, 64, 8, 8)
	total := s.TileCount()
	seen := map[int]bool{}
	for {
		tile, ok := s.NextTile()
		if !ok {
			break
		}
		if seen[tile.Index] {
			t.Fatalf("tile %d claimed more than once", tile.Index)
		}
		seen[tile.Index] = true
	}
	if len(seen) != total {
		t.Fatalf("claimed %d of %d tiles", len(seen), total)
	}
}

func TestNextTileConcurrentClaimsAreDisjoint(t *testing.T) {
	s := New(256, 256, 8, 8)
	total := s.TileCount()

	results := make(chan int, total)
	var wg sync.WaitGroup
	workers := 8

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				tile, ok := s.NextTile()
				if !ok {
					break
				}
				results <- tile.Index
			}
		}()
	}
	wg.Wait()
	close(results)

	claimed := map[int]bool{}
	for i := 0; i < total; i++ {
		idx := <-results
		if claimed[idx] {
			t.Fatalf("tile %d claimed twice across workers", idx)
		}
		claimed[idx] = true
	}
	if len(claimed) != total {
		t.Fatalf("claimed %d of %d tiles", len(claimed), total)
	}
}

func TestMarkCompleteUpdatesStatus(t *testing.T) {
	s := New(32, 32, 16, 16)
	tile, ok := s.NextTile()
	if !ok {
		t.Fatal("expected a tile")
	}
	s.MarkComplete(tile.Index)
	if got := s.TileAt(tile.Index).Status; got != TileComplete {
		t.Errorf("status = %v, want TileComplete", got)
	}
	if s.CompletedCount() != 1 {
		t.Errorf("CompletedCount() = %d, want 1", s.CompletedCount())
	}
}

func TestTileDimensionsShrinkAtImageEdge(t *testing.T) {
	s := New(20, 20, 16, 16)
	var maxX, maxY int
	for i := 0; i < s.TileCount(); i++ {
		tile := s.TileAt(i)
		if tile.MaxX > maxX {
			maxX = tile.MaxX
		}
		if tile.MaxY > maxY {
			maxY = tile.MaxY
		}
		if tile.Width() <= 0 || tile.Height() <= 0 {
			t.Errorf("tile %d has non-positive dimensions: %dx%d", i, tile.Width(), tile.Height())
		}
	}
	if maxX != 20 || maxY != 20 {
		t.Errorf("tiles do not reach image edge: maxX=%d maxY=%d", maxX, maxY)
	}
}

func TestNewSupportsRectangularTiles(t *testing.T) {
	s := New(100, 50, 25, 10)
	for i := 0; i < s.TileCount(); i++ {
		tile := s.TileAt(i)
		if w := tile.Width(); w > 25 {
			t.Errorf("tile %d width = %d, want <= 25", i, w)
		}
		if h := tile.Height(); h > 10 {
			t.Errorf("tile %d height = %d, want <= 10", i, h)
		}
	}
	if got, want := s.TileCount(), 4*5; got != want {
		t.Errorf("TileCount() = %d, want %d", got, want)
	}
}
