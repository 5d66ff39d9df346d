package ui

import (
	"slices"
	"strings"
)

// Theme is the palette and glyph set the printers draw with.
type Theme struct {
	Name  string
	Plain bool // no escape codes, whatever the flags say

	Title, Muted, Accent, Info             string
	Success, Error, Pending                string
	BoxUnchecked, BoxChecked               string
	CornerTL, CornerTR, CornerBL, CornerBR string
	H, V                                   string
	SymDone, SymFail, SymPending           string
}

var rounded = Theme{
	CornerTL: "╭", CornerTR: "╮", CornerBL: "╰", CornerBR: "╯",
	H: "─", V: "│",
	SymDone: "✔", SymFail: "✖", SymPending: "•",
}

var themes = map[string]func() Theme{
	"classic": func() Theme {
		t := rounded
		t.Title, t.Muted, t.Accent, t.Info = bold, fgGray, fgBlue, fgBlue
		t.Success, t.Error, t.Pending = fgGreen, fgRed, fgYellow
		t.BoxUnchecked, t.BoxChecked = "☐", "☑"
		t.CornerTL, t.CornerTR, t.CornerBL, t.CornerBR = "┌", "┐", "└", "┘"
		return t
	},
	"neon": func() Theme {
		t := rounded
		t.Title, t.Muted, t.Accent, t.Info = "\033[95m", fgGray, "\033[96m", "\033[94m"
		t.Success, t.Error, t.Pending = "\033[92m", "\033[91m", "\033[93m"
		t.BoxUnchecked, t.BoxChecked = "◻", "◼"
		return t
	},
	"mono": func() Theme {
		return Theme{
			Plain:        true,
			BoxUnchecked: "[ ]", BoxChecked: "[x]",
			CornerTL: "+", CornerTR: "+", CornerBL: "+", CornerBR: "+",
			H: "-", V: "|",
			SymDone: "x", SymFail: "!", SymPending: "-",
		}
	},
}

// Themes lists the names SetTheme knows.
var Themes = []string{"classic", "neon", "mono"}

var current Theme

func init() { SetTheme("classic") }

// SetTheme switches the palette; unknown names fall back to classic.
func SetTheme(name string) {
	name = strings.ToLower(strings.TrimSpace(name))
	if !slices.Contains(Themes, name) {
		name = "classic"
	}
	current = themes[name]()
	current.Name = name
}

func Current() Theme { return current }
