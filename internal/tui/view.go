package tui

import (
	"strconv"
	"strings"

	"budgetable/internal/cli"
	"budgetable/internal/model"
	"budgetable/internal/tui/components"
	"budgetable/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

var colWidths = [numCols]int{26, 12, 20, 24, 10}

var colNames = [numCols]string{"Title", "Price", "Link", "Note", "Status"}

// trimFloat renders a price for editing, without separators.
func trimFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// View implements tea.Model.
func (a App) View() string {
	if a.width == 0 {
		return ""
	}
	if !a.loaded {
		return a.viewLoading()
	}
	if a.confirm != nil {
		return a.confirm.View()
	}

	t := theme.Active
	var b strings.Builder

	title := lipgloss.NewStyle().Foreground(t.Accent).Bold(true).Render("  Budgetable")
	lock := "locked"
	if a.unlocked {
		lock = "unlocked"
	}
	lockLabel := lipgloss.NewStyle().Foreground(t.TextDim).Render("  editing " + lock)
	b.WriteString("\n" + title + lockLabel + "\n\n")

	b.WriteString(a.renderHeader() + "\n")
	for i, row := range a.ctrl.Rows() {
		b.WriteString(a.renderRow(row, i) + "\n")
	}
	if a.unlocked {
		b.WriteString(a.renderDraftRow() + "\n")
	}

	totalLabel := lipgloss.NewStyle().Foreground(t.TextMuted).Render("Total: ")
	totalValue := lipgloss.NewStyle().Foreground(t.TextPrimary).Bold(true).
		Render(cli.FormatPrice(a.ctrl.Total()))
	b.WriteString("\n  " + totalLabel + totalValue + "\n\n")

	hints := "[e]dit lock  [enter]edit cell  [p]aid toggle  [a]dd  [d]elete  [r]eload  [q]uit"
	if !a.unlocked {
		hints = "[e]dit unlock  [p]aid toggle  [r]eload  [q]uit"
	}
	b.WriteString(components.RenderStatusBar(a.width, hints, a.toast))

	return b.String()
}

func (a App) viewLoading() string {
	t := theme.Active
	msg := lipgloss.NewStyle().Foreground(t.TextMuted).
		Render("Loading budgetable rows...")
	return "\n\n  " + a.spinner.View() + " " + msg + "\n"
}

func (a App) renderHeader() string {
	t := theme.Active
	style := lipgloss.NewStyle().Foreground(t.TextMuted).Bold(true)

	var cells []string
	for c := 0; c < numCols; c++ {
		cells = append(cells, pad(colNames[c], colWidths[c]))
	}
	return "  " + style.Render(strings.Join(cells, " "))
}

func (a App) renderRow(row model.Row, idx int) string {
	t := theme.Active
	selected := idx == a.cursor

	base := lipgloss.NewStyle().Foreground(t.TextPrimary)
	if a.ctrl.Marked(row.ID) {
		base = base.Foreground(t.Accent)
	}

	var cells []string
	for c := 0; c < numCols; c++ {
		cells = append(cells, a.renderCell(row, idx, c, base))
	}

	prefix := "  "
	if selected {
		prefix = lipgloss.NewStyle().Foreground(t.Accent).Render("> ")
	}
	return prefix + strings.Join(cells, " ")
}

func (a App) renderCell(row model.Row, idx, col int, base lipgloss.Style) string {
	t := theme.Active
	w := colWidths[col]
	focused := idx == a.cursor && col == a.col

	if a.editing && focused && !a.onDraft() {
		return pad(a.input.View(), w)
	}

	var text string
	style := base
	switch col {
	case colTitle:
		text = row.Title
	case colPrice:
		text = cli.FormatPrice(row.Price)
	case colLink:
		if row.Link == "" {
			text = "No link"
			style = lipgloss.NewStyle().Foreground(t.TextDim).Italic(true)
		} else {
			text = row.Link
			style = lipgloss.NewStyle().Foreground(t.Blue).Underline(true)
		}
	case colNote:
		if row.Note == "" {
			text = "-"
			style = lipgloss.NewStyle().Foreground(t.TextDim)
		} else {
			text = row.Note
		}
	case colStatus:
		badge := lipgloss.NewStyle().Foreground(t.Yellow)
		if row.Status == model.StatusPaid {
			badge = lipgloss.NewStyle().Foreground(t.Green)
		}
		text = string(row.Status)
		style = badge
	}

	if focused && !a.editing {
		style = style.Background(t.SurfaceHover)
	}
	return style.Render(pad(truncate(text, w), w))
}

// renderDraftRow renders the always-editable new-row form at the bottom.
func (a App) renderDraftRow() string {
	t := theme.Active
	draft := a.ctrl.Draft()
	onDraft := a.onDraft()

	dim := lipgloss.NewStyle().Foreground(t.TextDim).Italic(true)
	val := lipgloss.NewStyle().Foreground(t.TextPrimary)

	cell := func(col int, value, placeholder string) string {
		w := colWidths[col]
		focused := onDraft && col == a.col
		if a.editing && focused {
			return pad(a.input.View(), w)
		}
		style := dim
		text := placeholder
		if value != "" {
			style = val
			text = value
		}
		if focused {
			style = style.Background(t.SurfaceHover)
		}
		return style.Render(pad(truncate(text, w), w))
	}

	price := ""
	if draft.Price != 0 {
		price = trimFloat(draft.Price)
	}

	cells := []string{
		cell(colTitle, draft.Title, "New title"),
		cell(colPrice, price, "New price"),
		cell(colLink, draft.Link, "New link"),
		cell(colNote, draft.Note, "New note"),
		dim.Render(pad("[a]dd", colWidths[colStatus])),
	}

	prefix := "  "
	if onDraft {
		prefix = lipgloss.NewStyle().Foreground(t.Accent).Render("+ ")
	}
	return prefix + strings.Join(cells, " ")
}

func pad(s string, w int) string {
	if n := w - lipgloss.Width(s); n > 0 {
		return s + strings.Repeat(" ", n)
	}
	return s
}

func truncate(s string, w int) string {
	if lipgloss.Width(s) <= w {
		return s
	}
	r := []rune(s)
	if len(r) <= w {
		return s
	}
	if w <= 1 {
		return string(r[:w])
	}
	return string(r[:w-1]) + "…"
}
