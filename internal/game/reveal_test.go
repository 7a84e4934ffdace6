package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testBoard builds a board with mines at fixed positions.
func testBoard(w, h int, mines ...Point) *Board {
	cells := make([][]Cell, h)
	for y := 0; y < h; y++ {
		cells[y] = make([]Cell, w)
		for x := 0; x < w; x++ {
			cells[y][x] = Cell{Kind: KindEmpty, State: StateHidden, X: x, Y: y}
		}
	}
	for _, m := range mines {
		cells[m.Y][m.X].Kind = KindMine
	}
	b := &Board{Width: w, Height: h, Cells: cells, MineCount: len(mines)}
	b.updateCounts()
	return b
}

func TestRevealFloodsEmptyBoard(t *testing.T) {
	// 3x3 with no mines: one reveal opens everything
	b := testBoard(3, 3)

	revealed := Reveal(b, 1, 1)

	assert.Len(t, revealed, 9)
	assert.Equal(t, 9, b.RevealedCount)
	for y := 0; y < 3; y++ {
		for x := 0; x < 3; x++ {
			assert.Equal(t, StateRevealed, b.Cells[y][x].State, "cell (%d,%d)", x, y)
		}
	}
}

func TestRevealIncludesNumberedBorder(t *testing.T) {
	// synthetic 3x3: a lone number cell at (2,0), everything else empty
	b := testBoard(3, 3)
	b.Cells[0][2].Kind = KindNumber
	b.Cells[0][2].AdjacentCount = 1

	revealed := Reveal(b, 0, 0)

	assert.Len(t, revealed, 9)
	assert.Equal(t, StateRevealed, b.Cells[0][2].State, "numbered cell on the border stayed hidden")
}

func TestRevealStopsAtNumbers(t *testing.T) {
	// 5x1 strip with a mine at the far end: (3,0) is the numbered border
	b := testBoard(5, 1, Point{X: 4, Y: 0})

	revealed := Reveal(b, 0, 0)

	assert.Len(t, revealed, 4)
	assert.Equal(t, StateHidden, b.Cells[0][4].State, "cascade crossed a numbered cell into a mine")
	assert.Equal(t, StateRevealed, b.Cells[0][3].State)
}

func TestRevealMineOnlyRevealsItself(t *testing.T) {
	b := testBoard(3, 3, Point{X: 1, Y: 1})

	revealed := Reveal(b, 1, 1)

	require.Equal(t, []Point{{X: 1, Y: 1}}, revealed)
	assert.Equal(t, 1, b.RevealedCount)
	for y := 0; y < 3; y++ {
		for x := 0; x < 3; x++ {
			if x == 1 && y == 1 {
				continue
			}
			assert.Equal(t, StateHidden, b.Cells[y][x].State, "cell (%d,%d)", x, y)
		}
	}
}

func TestRevealSkipsFlaggedCells(t *testing.T) {
	b := testBoard(3, 3)
	require.True(t, ToggleFlag(b, 2, 2))

	revealed := Reveal(b, 0, 0)

	assert.Len(t, revealed, 8)
	assert.Equal(t, StateFlagged, b.Cells[2][2].State)
	assert.Equal(t, 8, b.RevealedCount)
}

func TestRevealNoOps(t *testing.T) {
	b := testBoard(3, 3, Point{X: 0, Y: 0})

	assert.Nil(t, Reveal(b, -1, 0))
	assert.Nil(t, Reveal(b, 0, -1))
	assert.Nil(t, Reveal(b, 3, 0))
	assert.Nil(t, Reveal(b, 0, 3))
	assert.Zero(t, b.RevealedCount)

	Reveal(b, 2, 2)
	assert.Nil(t, Reveal(b, 2, 2), "re-revealing a revealed cell must no-op")

	ToggleFlag(b, 0, 0)
	assert.Nil(t, Reveal(b, 0, 0), "revealing a flagged cell must no-op")
}

func TestRevealIdempotentCount(t *testing.T) {
	b := testBoard(4, 4, Point{X: 3, Y: 3})

	first := Reveal(b, 0, 0)
	count := b.RevealedCount
	assert.Equal(t, len(first), count)

	again := Reveal(b, 0, 0)
	assert.Nil(t, again)
	assert.Equal(t, count, b.RevealedCount)
}

func TestToggleFlag(t *testing.T) {
	b := testBoard(2, 2, Point{X: 0, Y: 0})

	assert.True(t, ToggleFlag(b, 1, 1))
	assert.Equal(t, StateFlagged, b.Cells[1][1].State)
	assert.Equal(t, 1, b.FlaggedCount)

	assert.True(t, ToggleFlag(b, 1, 1))
	assert.Equal(t, StateHidden, b.Cells[1][1].State)
	assert.Zero(t, b.FlaggedCount)

	assert.False(t, ToggleFlag(b, -1, 0), "out of range flag must no-op")

	Reveal(b, 1, 1)
	assert.False(t, ToggleFlag(b, 1, 1), "flagging a revealed cell must no-op")
	assert.Zero(t, b.FlaggedCount)
}
