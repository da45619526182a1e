// Package scheduler splits an image into fixed-size tiles and hands
// them out to worker goroutines on a pull basis: a worker asks for the
// next tile instead of being assigned a fixed range up front, so a
// slow tile on one worker doesn't stall the others.
package scheduler

import "sync"

// TileStatus is the lifecycle of a single tile.
type TileStatus int

const (
	TileQueued TileStatus = iota
	TileRunning
	TileComplete
)

// Tile is a rectangular, half-open pixel region [MinX,MaxX) x
// [MinY,MaxY).
type Tile struct {
	Index      int
	MinX, MinY int
	MaxX, MaxY int
	Status     TileStatus
}

// Width and Height report the tile's pixel dimensions.
func (t Tile) Width() int  { return t.MaxX - t.MinX }
func (t Tile) Height() int { return t.MaxY - t.MinY }

// Scheduler partitions a width x height image into tileWidth x
// tileHeight tiles (the final row/column of tiles may be smaller) and
// serves them out one at a time under a mutex. Every exported method
// is safe for concurrent use by multiple worker goroutines.
type Scheduler struct {
	mu    sync.Mutex
	tiles []Tile
	next  int
}

// New builds a scheduler covering width x height pixels in tiles of
// tileWidth x tileHeight, scanning tiles in row-major order (top row
// first, left to right within a row). A non-positive tileWidth or
// tileHeight falls back to a single tile spanning the whole image on
// that axis.
func New(width, height, tileWidth, tileHeight int) *Scheduler {
	if tileWidth <= 0 {
		tileWidth = width
		if tileWidth <= 0 {
			tileWidth = 1
		}
	}
	if tileHeight <= 0 {
		tileHeight = height
		if tileHeight <= 0 {
			tileHeight = 1
		}
	}

	var tiles []Tile
	idx := 0
	for y := 0; y < height; y += tileHeight {
		maxY := y + tileHeight
		if maxY > height {
			maxY = height
		}
		for x := 0; x < width; x += tileWidth {
			maxX := x + tileWidth
			if maxX > width {
				maxX = width
			}
			tiles = append(tiles, Tile{Index: idx, MinX: x, MinY: y, MaxX: maxX, MaxY: maxY, Status: TileQueued})
			idx++
		}
	}
	return &Scheduler{tiles: tiles}
}

// TileCount reports the total number of tiles.
func (s *Scheduler) TileCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.tiles)
}

// NextTile atomically claims the next queued tile, marking it Running,
// and returns it together with true. It returns ok=false once every
// tile has been claimed.
func (s *Scheduler) NextTile() (Tile, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for s.next < len(s.tiles) {
		i := s.next
		s.next++
		if s.tiles[i].Status == TileQueued {
			s.tiles[i].Status = TileRunning
			return s.tiles[i], true
		}
	}
	return Tile{}, false
}

// MarkComplete records that tileIndex has finished rendering.
func (s *Scheduler) MarkComplete(tileIndex int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tiles[tileIndex].Status = TileComplete
}

// TileAt returns a snapshot of the tile at index i.
func (s *Scheduler) TileAt(i int) Tile {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tiles[i]
}

// CompletedCount reports how many tiles have finished.
func (s *Scheduler) CompletedCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, t := range s.tiles {
		if t.Status == TileComplete {
			n++
		}
	}
	return n
}
