package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/yungbote/giftwizard-backend/internal/wizard"
)

const appTitle = "🎁 Ruby's Gifts"

func (m *Model) View() string {
	v := m.store.View()
	var b strings.Builder
	b.WriteString(titleStyle.Render(appTitle))
	b.WriteString("\n\n")

	switch v.Phase {
	case wizard.PhaseLanding:
		b.WriteString("Answer a few questions about someone special and get gift ideas they will actually love.\n\n")
		b.WriteString(helpStyle.Render(helpLine(keys.Start, keys.Quit)))
	case wizard.PhaseQuestionnaire:
		b.WriteString(m.questionView(v))
	case wizard.PhaseLoading:
		b.WriteString(m.spin.View() + " Finding the perfect gifts...")
	case wizard.PhaseResults:
		b.WriteString(resultsView(v))
	case wizard.PhaseError:
		b.WriteString(noticeStyle.Render(v.Error))
		b.WriteString("\n\n")
		b.WriteString(helpStyle.Render(helpLine(keys.Retry, keys.Quit)))
	}
	if m.status != "" {
		b.WriteString("\n")
		b.WriteString(helpStyle.Render(m.status))
	}
	return b.String() + "\n"
}

func (m *Model) questionView(v wizard.View) string {
	q := v.Question
	if q == nil {
		return ""
	}
	var b strings.Builder
	b.WriteString(progressStyle.Render(fmt.Sprintf("Question %d of %d  %s", q.Number, q.Total, progressBar(v.Progress, 20))))
	b.WriteString("\n")
	title := q.Title
	if !q.Required {
		title += " (optional)"
	}
	b.WriteString(questionStyle.Render(title))
	b.WriteString("\n")
	b.WriteString(chipGrid(q.Chips, m.width))
	b.WriteString("\n")
	b.WriteString(m.input.View())
	b.WriteString("\n")
	if v.Notice != "" {
		b.WriteString(noticeStyle.Render("⚠ " + v.Notice))
		b.WriteString("\n")
	}

	var help string
	switch {
	case v.Editing:
		help = helpLine(keys.EndEdit, keys.ForceQuit)
	case v.Nav.ShowSubmit:
		help = helpLine(keys.ChipKeys, keys.ToggleChip, keys.Edit, keys.Prev, keys.Submit, keys.Quit)
	default:
		help = helpLine(keys.ChipKeys, keys.ToggleChip, keys.Edit, keys.Prev, keys.Next, keys.Quit)
	}
	b.WriteString(helpStyle.Render(help))
	return b.String()
}

func chipGrid(chips []wizard.ChipView, width int) string {
	if len(chips) == 0 {
		return ""
	}
	var rows []string
	var row []string
	rowWidth := 0
	for _, c := range chips {
		style := chipStyle
		switch {
		case c.Focused:
			style = chipFocusedStyle
		case c.Selected:
			style = chipSelectedStyle
		}
		label := c.Label
		if c.Selected {
			label = "✓ " + label
		}
		rendered := style.Render(label)
		w := lipgloss.Width(rendered)
		if rowWidth > 0 && rowWidth+w > width {
			rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, row...))
			row, rowWidth = nil, 0
		}
		row = append(row, rendered)
		rowWidth += w
	}
	if len(row) > 0 {
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, row...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func resultsView(v wizard.View) string {
	var b strings.Builder
	if v.UsedFallback {
		b.WriteString(helpStyle.Render("We couldn't reach the gift service, so here are some crowd favourites."))
		b.WriteString("\n\n")
	}
	for _, c := range v.Cards {
		if !c.Revealed {
			b.WriteString(cardHiddenStyle.Render(fmt.Sprintf("🎁 Gift %d  (press %d to reveal)", c.Index+1, c.Index+1)))
			b.WriteString("\n")
			continue
		}
		lines := []string{titleStyle.Render(c.Title), c.Description}
		if c.PriceRange != "" {
			lines = append(lines, "Price: "+c.PriceRange)
		}
		if c.Starter != "" {
			lines = append(lines, "💬 "+c.Starter)
		}
		if c.Reaction != "" {
			lines = append(lines, "😊 "+c.Reaction)
		}
		if c.ShopURL != "" {
			lines = append(lines, helpStyle.Render(c.ShopURL))
		}
		b.WriteString(cardStyle.Render(strings.Join(lines, "\n")))
		b.WriteString("\n")
	}
	if v.ResultID != "" {
		b.WriteString(helpStyle.Render("Result id: " + v.ResultID))
		b.WriteString("\n")
	}
	if v.AllRevealed {
		b.WriteString(helpStyle.Render(helpLine(keys.Reset, keys.Quit)))
	} else {
		b.WriteString(helpStyle.Render(helpLine(keys.Reveal, keys.RevealAll, keys.Reset, keys.Quit)))
	}
	return b.String()
}

func progressBar(pct, width int) string {
	if pct < 0 {
		pct = 0
	}
	if pct > 100 {
		pct = 100
	}
	filled := pct * width / 100
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled) + fmt.Sprintf(" %d%%", pct)
}
