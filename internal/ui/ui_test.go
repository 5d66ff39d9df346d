package ui

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Makepad-fr/orderup/internal/model"
)

func capture(t *testing.T) (out, errOut *bytes.Buffer) {
	t.Helper()
	out, errOut = &bytes.Buffer{}, &bytes.Buffer{}
	oldOut, oldErr := Stdout, Stderr
	Stdout, Stderr = out, errOut
	t.Cleanup(func() {
		Stdout, Stderr = oldOut, oldErr
		SetColorForcing(false, false)
		SetTheme("classic")
	})
	return out, errOut
}

func TestOKAndFailWriters(t *testing.T) {
	out, errOut := capture(t)
	OK("logged in")
	Fail("boom")
	assert.Equal(t, "✔ logged in\n", out.String(), "no colour when not a terminal")
	assert.Equal(t, "✖ boom\n", errOut.String())
}

func TestForcedColour(t *testing.T) {
	out, _ := capture(t)
	SetColorForcing(true, false)
	OK("x")
	assert.Equal(t, fgGreen+"✔ x"+reset+"\n", out.String())
}

func TestPanelAlignsColouredLines(t *testing.T) {
	out, _ := capture(t)
	SetColorForcing(true, false)
	Panel([]string{C(fgRed, "ab"), "abcd"})
	lines := strings.Split(strings.TrimRight(out.String(), "\n"), "\n")
	require.Len(t, lines, 4)
	for _, ln := range lines {
		assert.Equal(t, 8, Width(ln), ln)
	}
}

func TestMonoTheme(t *testing.T) {
	out, _ := capture(t)
	SetTheme("mono")
	Panel([]string{"x"})
	assert.Equal(t, "+---+\n| x |\n+---+\n", out.String())
}

func TestProgressBar(t *testing.T) {
	assert.Equal(t, "█████░░░░░  50%", ProgressBar(1, 2, 10))
	assert.Equal(t, "░░░░░   0%", ProgressBar(0, 0, 1))
}

func TestTruncateAndTable(t *testing.T) {
	assert.Equal(t, "abc", Truncate("abc", 5))
	assert.Equal(t, "ab...", Truncate("abcdef", 5))

	lines := Table([][]string{{"ID", "NAME"}, {"1001", "Jane"}})
	assert.Equal(t, []string{"ID    NAME", "1001  Jane"}, lines)
}

func TestBadge(t *testing.T) {
	SetColorForcing(true, false)
	defer SetColorForcing(false, false)

	assert.Equal(t, "In Progress", StatusLabel("in_progress"))
	assert.Equal(t, "Ready", StatusLabel("ready"))
	assert.Equal(t, current.Info, StatusColor("new"))
	assert.Equal(t, current.Success, StatusColor("open"))
	assert.Equal(t, current.Success, StatusColor("Ready"))
	assert.Equal(t, current.Pending, StatusColor("in_progress"))
	assert.Equal(t, current.Muted, StatusColor("completed"))
	assert.Equal(t, current.Muted, StatusColor("whatever"))
	assert.Equal(t, fgBlue+"[New]"+reset, Badge("new"))
}

func TestOrderMarkdown(t *testing.T) {
	o := model.Order{
		OrderNumber:  "#1001",
		CustomerName: "Jane Cooper",
		Status:       model.OrderNew,
		Source:       "shopify",
		Items:        []model.OrderItem{{Name: "Coffee Beans", SKU: "CB-1", Quantity: 2, UnitPrice: 12.5}},
		Financials:   &model.Financials{Subtotal: 25, Tax: 2, Total: 27},
		Processing:   &model.Processing{Store: "Main", Employee: "John", Register: "R1"},
	}
	md := OrderMarkdown(o)
	assert.Contains(t, md, "# Order #1001")
	assert.Contains(t, md, "| Coffee Beans | CB-1 | 2 | $12.50 |")
	assert.Contains(t, md, "**Total: $27.00**")
	assert.Contains(t, md, "- Register: R1")

	out, err := RenderMarkdown(md, 60)
	require.NoError(t, err)
	assert.Contains(t, out, "Coffee Beans")
}

func TestThemeSwitchKeepsColourFlags(t *testing.T) {
	out, _ := capture(t)

	SetColorForcing(true, false)
	SetTheme("mono")
	assert.False(t, Colorful())
	assert.Equal(t, "notty", markdownStyle())

	SetTheme("classic")
	assert.True(t, Colorful(), "leaving mono restores forced colour")
	assert.Equal(t, "dark", markdownStyle())
	OK("x")
	assert.Equal(t, fgGreen+"✔ x"+reset+"\n", out.String())

	SetColorForcing(false, true)
	SetTheme("neon")
	assert.False(t, Colorful(), "a theme switch does not undo --no-color")
	assert.Equal(t, "notty", markdownStyle())
}

func TestUnknownThemeFallsBackToClassic(t *testing.T) {
	capture(t)
	SetTheme(" NEON ")
	assert.Equal(t, "neon", Current().Name)
	SetTheme("sepia")
	assert.Equal(t, "classic", Current().Name)
	assert.Equal(t, "┌", Current().CornerTL)
}
