package keys

// Help-screen geometry. Columns sit ColumnWidth cells apart and fill
// downward from FirstRow.
const (
	Columns     = 4
	ColumnWidth = 20
	FirstRow    = 2

	// notesColumn carries the bookmark notes below its last label.
	notesColumn = 2
)

// Position is a screen cell, row first like the terminal API.
type Position struct {
	Row int
	Col int
}

// Label is one "glyph label" string placed on the help screen.
type Label struct {
	Position
	Text string
}

// Layout is where everything on the base help screen goes.
type Layout struct {
	Labels []Label
	// Notes is where the bookmark notes start.
	Notes Position
	// Debug is the top-left of the region used for non-query results in
	// debug mode.
	Debug Position
}

// Place returns the position of the index-th labeled entry of column.
func Place(column, index int) Position {
	return Position{Row: FirstRow + index, Col: column * ColumnWidth}
}

func computeLayout(entries []Entry) Layout {
	var counts [Columns]int
	var l Layout
	for _, e := range entries {
		if e.Label == "" {
			continue
		}
		pos := Place(e.Column, counts[e.Column])
		counts[e.Column]++
		l.Labels = append(l.Labels, Label{Position: pos, Text: e.displayGlyph() + " " + e.Label})
	}

	tallest := 0
	for _, n := range counts {
		if n > tallest {
			tallest = n
		}
	}
	l.Notes = Position{Row: FirstRow + counts[notesColumn] + 2, Col: notesColumn * ColumnWidth}
	l.Debug = Position{Row: FirstRow + tallest + 1, Col: 4}
	return l
}
