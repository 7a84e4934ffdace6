package game

// HasWon reports whether every non-mine cell is revealed. Flags play no
// part in the win condition.
func HasWon(b *Board) bool {
	return b.RevealedCount >= b.Width*b.Height-b.MineCount
}

// HasLost reports whether any mine has been revealed.
func HasLost(b *Board) bool {
	for y := 0; y < b.Height; y++ {
		for x := 0; x < b.Width; x++ {
			cell := &b.Cells[y][x]
			if cell.State == StateRevealed && cell.Kind == KindMine {
				return true
			}
		}
	}
	return false
}
