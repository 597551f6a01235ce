package game

import (
	"fmt"
	"math/rand"
	"sort"
)

// Cell is one slot of a board layout. A cell is playable (Number > 0),
// a free slot that counts as pre-marked, or a structural blank that holds
// no number and can never be marked.
type Cell struct {
	Row    int  `json:"row"`
	Col    int  `json:"col"`
	Number int  `json:"number,omitempty"`
	Free   bool `json:"free,omitempty"`
	Blank  bool `json:"blank,omitempty"`
}

// Board is an immutable layout for one game. Marks live with the player,
// not here, so regenerating or re-verifying never touches the grid.
type Board struct {
	Variant Variant  `json:"variant"`
	Rows    int      `json:"rows"`
	Cols    int      `json:"cols"`
	Cells   [][]Cell `json:"cells"`

	numbers map[int]bool
}

// Generate produces a fresh layout for the variant from the supplied
// randomness source. Every call is independent; within one board no two
// playable cells hold the same number.
func Generate(v Variant, rng *rand.Rand) (*Board, error) {
	cfg, ok := variants[v]
	if !ok {
		return nil, fmt.Errorf("unknown game type %q", v)
	}

	b := &Board{
		Variant: v,
		Rows:    cfg.Rows,
		Cols:    cfg.Cols,
		Cells:   make([][]Cell, cfg.Rows),
		numbers: make(map[int]bool),
	}
	for r := 0; r < cfg.Rows; r++ {
		b.Cells[r] = make([]Cell, cfg.Cols)
		for c := 0; c < cfg.Cols; c++ {
			b.Cells[r][c] = Cell{Row: r, Col: c}
		}
	}

	switch {
	case cfg.MaxPerColumn > 0:
		fillSparseColumns(b, cfg, rng)
	case cfg.ColumnWidth > 0:
		fillColumns(b, cfg, rng)
	default:
		fillFromPool(b, cfg, rng)
	}

	if cfg.FreeRow >= 0 {
		free := &b.Cells[cfg.FreeRow][cfg.FreeCol]
		free.Number = 0
		free.Free = true
	}

	for r := range b.Cells {
		for _, cell := range b.Cells[r] {
			if cell.Number > 0 {
				b.numbers[cell.Number] = true
			}
		}
	}
	return b, nil
}

// fillColumns draws Rows unique numbers per column from that column's
// fixed sub-range, sorted ascending top to bottom (square variants).
func fillColumns(b *Board, cfg variantConfig, rng *rand.Rand) {
	for c := 0; c < cfg.Cols; c++ {
		lo := c*cfg.ColumnWidth + 1
		nums := drawUnique(rng, lo, lo+cfg.ColumnWidth-1, cfg.Rows)
		sort.Ints(nums)
		for r := 0; r < cfg.Rows; r++ {
			b.Cells[r][c].Number = nums[r]
		}
	}
}

// fillSparseColumns places 1..MaxPerColumn numbers per column at random
// distinct rows; cells left without a number become permanent blanks
// (90-ball layout).
func fillSparseColumns(b *Board, cfg variantConfig, rng *rand.Rand) {
	for c := 0; c < cfg.Cols; c++ {
		count := cfg.MinPerColumn + rng.Intn(cfg.MaxPerColumn-cfg.MinPerColumn+1)
		lo := c*cfg.ColumnWidth + 1
		nums := drawUnique(rng, lo, lo+cfg.ColumnWidth-1, count)
		sort.Ints(nums)

		rows := rng.Perm(cfg.Rows)[:count]
		sort.Ints(rows)
		used := make(map[int]bool, count)
		for i, r := range rows {
			b.Cells[r][c].Number = nums[i]
			used[r] = true
		}
		for r := 0; r < cfg.Rows; r++ {
			if !used[r] {
				b.Cells[r][c].Blank = true
			}
		}
	}
}

// fillFromPool draws Rows*Cols unique numbers from the whole pool, placed
// row-major (30-ball and coverall layouts).
func fillFromPool(b *Board, cfg variantConfig, rng *rand.Rand) {
	nums := drawUnique(rng, 1, cfg.PoolMax, cfg.Rows*cfg.Cols)
	i := 0
	for r := 0; r < cfg.Rows; r++ {
		for c := 0; c < cfg.Cols; c++ {
			b.Cells[r][c].Number = nums[i]
			i++
		}
	}
}

// drawUnique rejection-samples count distinct numbers in [lo, hi].
func drawUnique(rng *rand.Rand, lo, hi, count int) []int {
	seen := make(map[int]bool, count)
	out := make([]int, 0, count)
	for len(out) < count {
		n := lo + rng.Intn(hi-lo+1)
		if seen[n] {
			continue
		}
		seen[n] = true
		out = append(out, n)
	}
	return out
}

// Contains reports whether n appears on a playable cell.
func (b *Board) Contains(n int) bool {
	return b.numbers[n]
}

// Numbers returns all playable numbers on the board.
func (b *Board) Numbers() []int {
	out := make([]int, 0, len(b.numbers))
	for r := range b.Cells {
		for _, cell := range b.Cells[r] {
			if cell.Number > 0 {
				out = append(out, cell.Number)
			}
		}
	}
	return out
}

// PlayableCount returns how many cells hold a number.
func (b *Board) PlayableCount() int {
	return len(b.numbers)
}
