package entity

// Column is one named column of a decoded table. Values keep the decoder's
// row order; nil marks an absent cell.
type Column struct {
	Name   string
	Values []any
}

// Table is a decoded tabular file. Column order is preserved from the
// source file and carried through to the analysis output.
type Table struct {
	Columns []Column
}
