package style

// All cmd styling related code should be placed in this file.

import (
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

var (
	TableStyle    = table.StyleLight
	PositiveColor = text.Colors{text.FgGreen}
	NegativeColor = text.Colors{text.FgRed}
	WarningColor  = text.Colors{text.FgYellow}
	DisabledColor = text.Colors{text.FgHiBlack}
)

// BoolStr returns a colored yes/no, or the given true/false strings.
func BoolStr(b bool, s ...string) string {
	yes, no := "yes", "no"
	if len(s) == 2 {
		yes, no = s[0], s[1]
	}
	if b {
		return PositiveColor.Sprint(yes)
	}
	return NegativeColor.Sprint(no)
}
