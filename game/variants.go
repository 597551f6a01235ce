package game

// Variant identifies one of the supported board/rule configurations.
type Variant string

const (
	Variant75       Variant = "75ball"
	Variant90       Variant = "90ball"
	Variant30       Variant = "30ball"
	Variant50       Variant = "50ball"
	VariantPattern  Variant = "pattern"
	VariantCoverall Variant = "coverall"
)

// Rule is one win condition a variant recognizes, checked in slice order.
type Rule string

const (
	RuleRow      Rule = "row"
	RuleColumn   Rule = "column"
	RuleDiagonal Rule = "diagonal"
	RuleCorners  Rule = "corners"
	RuleCoverall Rule = "coverall"
)

type variantConfig struct {
	Rows, Cols       int
	FreeRow, FreeCol int // -1 when the variant has no free cell
	ColumnWidth      int // per-column sub-range width; 0 draws from the global pool
	PoolMax          int
	MinPerColumn     int // sparse column fill (90-ball); 0 fills every row
	MaxPerColumn     int
	WinRules         []Rule
}

var lineRules = []Rule{RuleRow, RuleColumn, RuleDiagonal, RuleCorners, RuleCoverall}

// variants is the single source of geometry and win rules. Non-square
// variants currently recognize coverall only; extending them is a config
// change, not a code path.
var variants = map[Variant]variantConfig{
	Variant75: {
		Rows: 5, Cols: 5, FreeRow: 2, FreeCol: 2,
		ColumnWidth: 15, PoolMax: 75,
		WinRules: lineRules,
	},
	Variant50: {
		Rows: 5, Cols: 5, FreeRow: 2, FreeCol: 2,
		ColumnWidth: 10, PoolMax: 50,
		WinRules: lineRules,
	},
	// Same geometry as 75-ball; the win check is restricted to the
	// server-designated target shape instead of the generic rules.
	VariantPattern: {
		Rows: 5, Cols: 5, FreeRow: 2, FreeCol: 2,
		ColumnWidth: 15, PoolMax: 75,
	},
	Variant90: {
		Rows: 3, Cols: 9, FreeRow: -1, FreeCol: -1,
		ColumnWidth: 10, PoolMax: 90,
		MinPerColumn: 1, MaxPerColumn: 3,
		WinRules: []Rule{RuleCoverall},
	},
	Variant30: {
		Rows: 3, Cols: 3, FreeRow: -1, FreeCol: -1,
		PoolMax: 30,
		WinRules: []Rule{RuleCoverall},
	},
	VariantCoverall: {
		Rows: 9, Cols: 5, FreeRow: -1, FreeCol: -1,
		PoolMax: 90,
		WinRules: []Rule{RuleCoverall},
	},
}

// Valid reports whether v names a known variant.
func (v Variant) Valid() bool {
	_, ok := variants[v]
	return ok
}
