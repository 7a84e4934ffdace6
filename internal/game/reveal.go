package game

// Reveal opens the cell at (x, y) and returns the set of coordinates that
// became revealed, mutating the board in place.
//
// Out-of-range targets and cells that are already revealed or flagged are
// no-ops. A mine target is revealed by itself and never cascades; it can
// only become revealed by being the direct target. Any other target starts
// a breadth-first flood: zero-count cells expand into all 8 neighbors,
// numbered cells form the border (revealed, not expanded), flagged cells
// are left untouched.
func Reveal(b *Board, x, y int) []Point {
	if !b.InBounds(x, y) {
		return nil
	}

	target := b.At(x, y)
	if target.State == StateRevealed || target.State == StateFlagged {
		return nil
	}

	if target.Kind == KindMine {
		target.State = StateRevealed
		b.RevealedCount++
		return []Point{{X: x, Y: y}}
	}

	var revealed []Point
	seen := make(map[Point]bool)
	queue := []Point{{X: x, Y: y}}

	for len(queue) > 0 {
		p := queue[0]
		queue = queue[1:]

		if seen[p] {
			continue
		}
		seen[p] = true

		cell := b.At(p.X, p.Y)
		if cell.State == StateRevealed || cell.State == StateFlagged || cell.Kind == KindMine {
			continue
		}

		cell.State = StateRevealed
		b.RevealedCount++
		revealed = append(revealed, p)

		if cell.AdjacentCount != 0 {
			continue
		}
		for dy := -1; dy <= 1; dy++ {
			for dx := -1; dx <= 1; dx++ {
				np := Point{X: p.X + dx, Y: p.Y + dy}
				if b.InBounds(np.X, np.Y) && !seen[np] {
					queue = append(queue, np)
				}
			}
		}
	}

	return revealed
}

// ToggleFlag flips the cell at (x, y) between hidden and flagged and keeps
// FlaggedCount in sync. Revealed cells and out-of-range targets are no-ops.
// It reports whether the board changed.
func ToggleFlag(b *Board, x, y int) bool {
	if !b.InBounds(x, y) {
		return false
	}

	cell := b.At(x, y)
	switch cell.State {
	case StateHidden:
		cell.State = StateFlagged
		b.FlaggedCount++
		return true
	case StateFlagged:
		cell.State = StateHidden
		b.FlaggedCount--
		return true
	default:
		return false
	}
}
