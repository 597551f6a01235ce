package game

// Pattern is the result of a verification: which win shape is complete,
// or PatternNone.
type Pattern string

const (
	PatternNone     Pattern = ""
	PatternRow      Pattern = "row"
	PatternColumn   Pattern = "column"
	PatternDiagonal Pattern = "diagonal"
	PatternCorners  Pattern = "corners"
	PatternCoverall Pattern = "coverall"
)

// targetShapes are the named subsets of grid coordinates the pattern
// variant can designate as the round's target. The free center is implied.
var targetShapes = map[string][][2]int{
	"x": {
		{0, 0}, {1, 1}, {3, 3}, {4, 4},
		{0, 4}, {1, 3}, {3, 1}, {4, 0},
	},
	"frame": {
		{0, 0}, {0, 1}, {0, 2}, {0, 3}, {0, 4},
		{4, 0}, {4, 1}, {4, 2}, {4, 3}, {4, 4},
		{1, 0}, {2, 0}, {3, 0},
		{1, 4}, {2, 4}, {3, 4},
	},
	"stamp": {
		{0, 3}, {0, 4}, {1, 3}, {1, 4},
	},
	"diamond": {
		{1, 2}, {2, 1}, {2, 3}, {3, 2},
	},
}

// Verify checks the marked set against the board's win rules and returns
// the first complete pattern in precedence order, or PatternNone. For the
// pattern variant only the server-designated target shape counts; an
// unknown target never matches. Pure function of layout plus marks.
func Verify(b *Board, marked map[int]bool, target string) Pattern {
	if b == nil {
		return PatternNone
	}

	isMarked := func(cell Cell) bool {
		if cell.Free {
			return true
		}
		if cell.Blank {
			return false
		}
		return marked[cell.Number]
	}

	if b.Variant == VariantPattern {
		shape, ok := targetShapes[target]
		if !ok {
			return PatternNone
		}
		for _, rc := range shape {
			if !isMarked(b.Cells[rc[0]][rc[1]]) {
				return PatternNone
			}
		}
		return Pattern(target)
	}

	cfg := variants[b.Variant]
	for _, rule := range cfg.WinRules {
		switch rule {
		case RuleRow:
			for r := 0; r < b.Rows; r++ {
				if lineMarked(b.Cells[r], isMarked) {
					return PatternRow
				}
			}
		case RuleColumn:
			for c := 0; c < b.Cols; c++ {
				col := make([]Cell, b.Rows)
				for r := 0; r < b.Rows; r++ {
					col[r] = b.Cells[r][c]
				}
				if lineMarked(col, isMarked) {
					return PatternColumn
				}
			}
		case RuleDiagonal:
			main, anti := true, true
			for i := 0; i < b.Rows; i++ {
				if !isMarked(b.Cells[i][i]) {
					main = false
				}
				if !isMarked(b.Cells[i][b.Cols-1-i]) {
					anti = false
				}
			}
			if main || anti {
				return PatternDiagonal
			}
		case RuleCorners:
			corners := []Cell{
				b.Cells[0][0], b.Cells[0][b.Cols-1],
				b.Cells[b.Rows-1][0], b.Cells[b.Rows-1][b.Cols-1],
			}
			if lineMarked(corners, isMarked) {
				return PatternCorners
			}
		case RuleCoverall:
			covered := true
			for r := range b.Cells {
				for _, cell := range b.Cells[r] {
					if cell.Blank || cell.Free {
						continue
					}
					if !marked[cell.Number] {
						covered = false
					}
				}
			}
			if covered {
				return PatternCoverall
			}
		}
	}
	return PatternNone
}

func lineMarked(cells []Cell, isMarked func(Cell) bool) bool {
	for _, cell := range cells {
		if !isMarked(cell) {
			return false
		}
	}
	return true
}
