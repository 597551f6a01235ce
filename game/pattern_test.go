package game

import (
	"testing"
)

func markCells(b *Board, marked map[int]bool, coords [][2]int) {
	for _, rc := range coords {
		cell := b.Cells[rc[0]][rc[1]]
		if cell.Number > 0 {
			marked[cell.Number] = true
		}
	}
}

func TestVerifyRow(t *testing.T) {
	b, err := Generate(Variant75, newRng(1))
	if err != nil {
		t.Fatal(err)
	}
	marked := make(map[int]bool)
	for c := 0; c < 5; c++ {
		marked[b.Cells[0][c].Number] = true
	}
	if got := Verify(b, marked, ""); got != PatternRow {
		t.Fatalf("expected row, got %q", got)
	}
}

func TestVerifyColumn(t *testing.T) {
	b, err := Generate(Variant50, newRng(2))
	if err != nil {
		t.Fatal(err)
	}
	marked := make(map[int]bool)
	for r := 0; r < 5; r++ {
		marked[b.Cells[r][0].Number] = true
	}
	if got := Verify(b, marked, ""); got != PatternColumn {
		t.Fatalf("expected column, got %q", got)
	}
}

func TestVerifyDiagonalCountsFreeCenter(t *testing.T) {
	b, err := Generate(Variant75, newRng(3))
	if err != nil {
		t.Fatal(err)
	}
	marked := make(map[int]bool)
	markCells(b, marked, [][2]int{{0, 0}, {1, 1}, {3, 3}, {4, 4}})
	if got := Verify(b, marked, ""); got != PatternDiagonal {
		t.Fatalf("expected diagonal, got %q", got)
	}
}

func TestVerifyCorners(t *testing.T) {
	b, err := Generate(Variant75, newRng(4))
	if err != nil {
		t.Fatal(err)
	}
	marked := make(map[int]bool)
	markCells(b, marked, [][2]int{{0, 0}, {0, 4}, {4, 0}, {4, 4}})
	if got := Verify(b, marked, ""); got != PatternCorners {
		t.Fatalf("expected corners, got %q", got)
	}
}

func TestVerifyNone(t *testing.T) {
	b, err := Generate(Variant75, newRng(5))
	if err != nil {
		t.Fatal(err)
	}
	if got := Verify(b, map[int]bool{}, ""); got != PatternNone {
		t.Fatalf("expected no pattern, got %q", got)
	}
}

func TestVerifyCoverallVariant(t *testing.T) {
	b, err := Generate(Variant30, newRng(6))
	if err != nil {
		t.Fatal(err)
	}
	marked := make(map[int]bool)
	nums := b.Numbers()
	for _, n := range nums[:len(nums)-1] {
		marked[n] = true
	}
	// one short of full coverage, and lines never count for this variant
	if got := Verify(b, marked, ""); got != PatternNone {
		t.Fatalf("expected no pattern, got %q", got)
	}
	marked[nums[len(nums)-1]] = true
	if got := Verify(b, marked, ""); got != PatternCoverall {
		t.Fatalf("expected coverall, got %q", got)
	}
}

func TestVerify90BallSingleColumnIsNotAWin(t *testing.T) {
	b, err := Generate(Variant90, newRng(7))
	if err != nil {
		t.Fatal(err)
	}
	marked := make(map[int]bool)
	for r := 0; r < b.Rows; r++ {
		if n := b.Cells[r][0].Number; n > 0 {
			marked[n] = true
		}
	}
	if got := Verify(b, marked, ""); got != PatternNone {
		t.Fatalf("expected no pattern, got %q", got)
	}
}

func TestVerify90BallBlanksNeverBlockCoverall(t *testing.T) {
	b, err := Generate(Variant90, newRng(8))
	if err != nil {
		t.Fatal(err)
	}
	marked := make(map[int]bool)
	for _, n := range b.Numbers() {
		marked[n] = true
	}
	if got := Verify(b, marked, ""); got != PatternCoverall {
		t.Fatalf("expected coverall, got %q", got)
	}
}

func TestVerifyPatternVariantTarget(t *testing.T) {
	b, err := Generate(VariantPattern, newRng(9))
	if err != nil {
		t.Fatal(err)
	}

	// a complete row does not match when the target is an X
	marked := make(map[int]bool)
	for c := 0; c < 5; c++ {
		marked[b.Cells[0][c].Number] = true
	}
	if got := Verify(b, marked, "x"); got != PatternNone {
		t.Fatalf("row should not match target x, got %q", got)
	}

	// both diagonals complete the X (free center included)
	marked = make(map[int]bool)
	for i := 0; i < 5; i++ {
		markCells(b, marked, [][2]int{{i, i}, {i, 4 - i}})
	}
	if got := Verify(b, marked, "x"); got != Pattern("x") {
		t.Fatalf("expected x, got %q", got)
	}
}

func TestVerifyPatternVariantStamp(t *testing.T) {
	b, err := Generate(VariantPattern, newRng(10))
	if err != nil {
		t.Fatal(err)
	}
	marked := make(map[int]bool)
	markCells(b, marked, [][2]int{{0, 3}, {0, 4}, {1, 3}, {1, 4}})
	if got := Verify(b, marked, "stamp"); got != Pattern("stamp") {
		t.Fatalf("expected stamp, got %q", got)
	}
}

func TestVerifyPatternVariantUnknownTarget(t *testing.T) {
	b, err := Generate(VariantPattern, newRng(11))
	if err != nil {
		t.Fatal(err)
	}
	marked := make(map[int]bool)
	for _, n := range b.Numbers() {
		marked[n] = true
	}
	if got := Verify(b, marked, "zigzag"); got != PatternNone {
		t.Fatalf("unknown target must never match, got %q", got)
	}
}

func TestVerifyDeterministicAndSideEffectFree(t *testing.T) {
	b, err := Generate(Variant75, newRng(12))
	if err != nil {
		t.Fatal(err)
	}
	marked := make(map[int]bool)
	for c := 0; c < 5; c++ {
		marked[b.Cells[2][c].Number] = true
	}
	before := len(marked)

	first := Verify(b, marked, "")
	second := Verify(b, marked, "")
	if first != second {
		t.Fatalf("verify is not deterministic: %q vs %q", first, second)
	}
	if len(marked) != before {
		t.Fatal("verify mutated the marked set")
	}
}

func TestVerifyNilBoard(t *testing.T) {
	if got := Verify(nil, map[int]bool{1: true}, ""); got != PatternNone {
		t.Fatalf("expected no pattern for nil board, got %q", got)
	}
}
