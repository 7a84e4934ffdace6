package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func countMines(b *Board) int {
	n := 0
	for y := 0; y < b.Height; y++ {
		for x := 0; x < b.Width; x++ {
			if b.Cells[y][x].Kind == KindMine {
				n++
			}
		}
	}
	return n
}

func TestGeneratePlacesExactMineCount(t *testing.T) {
	cases := []struct {
		w, h, mines int
	}{
		{10, 8, 10},
		{18, 16, 40},
		{24, 20, 90},
		{3, 3, 8},
		{5, 5, 0},
	}

	for _, tc := range cases {
		b, err := Generate(tc.w, tc.h, tc.mines, 777, nil)
		require.NoError(t, err)
		assert.Equal(t, tc.mines, countMines(b), "%dx%d/%d", tc.w, tc.h, tc.mines)
		assert.Equal(t, tc.mines, b.MineCount)
	}
}

func TestGenerateAdjacencyCounts(t *testing.T) {
	b, err := Generate(18, 16, 40, 2024, nil)
	require.NoError(t, err)

	for y := 0; y < b.Height; y++ {
		for x := 0; x < b.Width; x++ {
			cell := b.Cells[y][x]
			if cell.Kind == KindMine {
				assert.Zero(t, cell.AdjacentCount, "mine at (%d,%d) carries a count", x, y)
				continue
			}

			want := 0
			for dy := -1; dy <= 1; dy++ {
				for dx := -1; dx <= 1; dx++ {
					if dx == 0 && dy == 0 {
						continue
					}
					nx, ny := x+dx, y+dy
					if b.InBounds(nx, ny) && b.Cells[ny][nx].Kind == KindMine {
						want++
					}
				}
			}
			assert.Equal(t, want, cell.AdjacentCount, "cell (%d,%d)", x, y)

			if want > 0 {
				assert.Equal(t, KindNumber, cell.Kind, "cell (%d,%d)", x, y)
			} else {
				assert.Equal(t, KindEmpty, cell.Kind, "cell (%d,%d)", x, y)
			}
		}
	}
}

func TestGenerateDeterministic(t *testing.T) {
	b1, err := Generate(18, 16, 40, 555, nil)
	require.NoError(t, err)
	b2, err := Generate(18, 16, 40, 555, nil)
	require.NoError(t, err)

	assert.Equal(t, b1.Cells, b2.Cells)
}

func TestGenerateFirstClickSafety(t *testing.T) {
	// 10 mines on a 10x8 board, opening move at (5,4)
	first := &Point{X: 5, Y: 4}
	b, err := Generate(10, 8, 10, 123, first)
	require.NoError(t, err)

	assert.Equal(t, 10, countMines(b))
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			x, y := first.X+dx, first.Y+dy
			require.True(t, b.InBounds(x, y))
			assert.NotEqual(t, KindMine, b.Cells[y][x].Kind, "mine inside the safe zone at (%d,%d)", x, y)
		}
	}
}

func TestGenerateRejectsInvalidConfig(t *testing.T) {
	cases := []struct {
		name        string
		w, h, mines int
		first       *Point
	}{
		{"mines equal cells", 4, 4, 16, nil},
		{"mines exceed cells", 4, 4, 20, nil},
		{"negative mines", 4, 4, -1, nil},
		{"zero width", 0, 4, 1, nil},
		{"zero height", 4, 0, 1, nil},
		{"no room after exclusion", 3, 3, 1, &Point{X: 1, Y: 1}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			b, err := Generate(tc.w, tc.h, tc.mines, 1, tc.first)
			require.ErrorIs(t, err, ErrInvalidConfig)
			assert.Nil(t, b, "partial board returned on invalid input")
		})
	}
}

func TestGenerateFreshBoardCounters(t *testing.T) {
	b, err := Generate(10, 8, 10, 9, nil)
	require.NoError(t, err)
	assert.Zero(t, b.RevealedCount)
	assert.Zero(t, b.FlaggedCount)

	for y := 0; y < b.Height; y++ {
		for x := 0; x < b.Width; x++ {
			assert.Equal(t, StateHidden, b.Cells[y][x].State)
		}
	}
}
