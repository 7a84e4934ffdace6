package game

import (
	"errors"
	"fmt"
)

// ErrInvalidConfig is returned when board dimensions and mine count cannot
// produce a valid board.
var ErrInvalidConfig = errors.New("invalid board configuration")

type CellKind string

const (
	KindEmpty  CellKind = "empty"
	KindMine   CellKind = "mine"
	KindNumber CellKind = "number"
)

type CellState string

const (
	StateHidden   CellState = "hidden"
	StateRevealed CellState = "revealed"
	StateFlagged  CellState = "flagged"
)

type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

type Cell struct {
	Kind          CellKind
	State         CellState
	AdjacentCount int // 0 for empty and mine cells, 1-8 for numbers
	X, Y          int
}

type Board struct {
	Width         int
	Height        int
	Cells         [][]Cell // indexed [y][x]
	MineCount     int
	RevealedCount int
	FlaggedCount  int
}

// InBounds reports whether (x, y) is on the board.
func (b *Board) InBounds(x, y int) bool {
	return x >= 0 && x < b.Width && y >= 0 && y < b.Height
}

// At returns the cell at (x, y). Callers must bounds-check first.
func (b *Board) At(x, y int) *Cell {
	return &b.Cells[y][x]
}

// Generate builds a width×height board with exactly mineCount mines placed
// deterministically from seed. When firstClick is non-nil, the clicked cell
// and its 8-neighborhood are excluded from mine placement before any mine
// goes down, so the opening move always lands on a safe cell.
func Generate(width, height, mineCount int, seed int64, firstClick *Point) (*Board, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d board", ErrInvalidConfig, width, height)
	}
	if mineCount < 0 || mineCount >= width*height {
		return nil, fmt.Errorf("%w: %d mines on %d cells", ErrInvalidConfig, mineCount, width*height)
	}

	cells := make([][]Cell, height)
	for y := 0; y < height; y++ {
		cells[y] = make([]Cell, width)
		for x := 0; x < width; x++ {
			cells[y][x] = Cell{Kind: KindEmpty, State: StateHidden, X: x, Y: y}
		}
	}

	candidates := make([]Point, 0, width*height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if firstClick != nil && abs(x-firstClick.X) <= 1 && abs(y-firstClick.Y) <= 1 {
				continue
			}
			candidates = append(candidates, Point{X: x, Y: y})
		}
	}
	if mineCount > len(candidates) {
		return nil, fmt.Errorf("%w: %d mines but only %d placeable cells", ErrInvalidConfig, mineCount, len(candidates))
	}

	rng := NewRNG(seed)
	Shuffle(rng, candidates)
	for _, p := range candidates[:mineCount] {
		cells[p.Y][p.X].Kind = KindMine
	}

	b := &Board{
		Width:     width,
		Height:    height,
		Cells:     cells,
		MineCount: mineCount,
	}
	b.updateCounts()
	return b, nil
}

// updateCounts recomputes AdjacentCount and Kind for every non-mine cell.
func (b *Board) updateCounts() {
	for y := 0; y < b.Height; y++ {
		for x := 0; x < b.Width; x++ {
			if b.Cells[y][x].Kind == KindMine {
				continue
			}
			count := b.countAdjacentMines(x, y)
			b.Cells[y][x].AdjacentCount = count
			if count > 0 {
				b.Cells[y][x].Kind = KindNumber
			} else {
				b.Cells[y][x].Kind = KindEmpty
			}
		}
	}
}

func (b *Board) countAdjacentMines(x, y int) int {
	count := 0
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			if dx == 0 && dy == 0 {
				continue
			}
			nx, ny := x+dx, y+dy
			if b.InBounds(nx, ny) && b.Cells[ny][nx].Kind == KindMine {
				count++
			}
		}
	}
	return count
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
