package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/JaimeStill/octo/internal/dashboard"
	"github.com/JaimeStill/octo/internal/pricing"
)

func (m Model) View() string {
	var b strings.Builder

	switch m.screen {
	case screenCreate:
		m.viewCreate(&b)
	case screenPrices:
		m.viewPrices(&b)
	default:
		m.viewAgents(&b)
	}

	if m.notice != nil {
		b.WriteString("\n")
		b.WriteString(noticeLine(*m.notice))
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) rowWidth() int {
	if m.width > 0 {
		return m.width
	}
	return 80
}

func (m Model) viewAgents(b *strings.Builder) {
	view := m.list.View()

	b.WriteString(titleStyle.Render("Agents"))
	if m.cfg.Plan != "" {
		b.WriteString(dimStyle.Render("  plan: " + string(m.cfg.Plan)))
	}
	b.WriteString("\n")
	b.WriteString(m.search.View())
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("?" + view.Location))
	b.WriteString("\n\n")

	switch {
	case view.Loading:
		for range view.List.Skeleton {
			b.WriteString(skeletonStyle.Render(strings.Repeat("░", 24)))
			b.WriteString("\n")
			b.WriteString(skeletonStyle.Render(strings.Repeat("░", 48)))
			b.WriteString("\n\n")
		}
	case view.Err != nil:
		b.WriteString(errorStyle.Render("Failed to load agents: " + view.Err.Error()))
		b.WriteString("\n")
	case view.List.Empty:
		b.WriteString(nameStyle.Render(dashboard.EmptyTitle))
		b.WriteString("\n")
		b.WriteString(dimStyle.Render(dashboard.EmptyHint))
		b.WriteString("\n")
	default:
		width := m.rowWidth()
		for _, row := range view.List.Rows {
			b.WriteString(nameStyle.Render(ansi.Truncate(row.Name, width, "…")))
			b.WriteString(dimStyle.Render("  " + row.CreatedAt.Local().Format("Jan 2, 2006")))
			b.WriteString("\n")
			b.WriteString(ansi.Truncate(row.Instructions, width, "…"))
			b.WriteString("\n\n")
		}
	}

	if !view.Loading && view.Err == nil {
		b.WriteString(pagerLine(view.List.Pager))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(dimStyle.Render("/ search • ←/→ page • n new agent • r refresh • p prices • q quit"))
	b.WriteString("\n")
}

func pagerLine(p dashboard.Pager) string {
	prev := "‹ Prev"
	if p.PrevDisabled {
		prev = dimStyle.Render(prev)
	}
	next := "Next ›"
	if p.NextDisabled {
		next = dimStyle.Render(next)
	}
	return prev + "  " + p.Label + "  " + next
}

func (m Model) viewCreate(b *strings.Builder) {
	b.WriteString(titleStyle.Render("New Agent"))
	b.WriteString("\n\n")

	b.WriteString(labelStyle.Render("Name"))
	b.WriteString("\n")
	b.WriteString(m.name.View())
	b.WriteString("\n")
	if msg := m.fields["name"]; msg != "" {
		b.WriteString(errorStyle.Render(msg))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	b.WriteString(labelStyle.Render("Instructions"))
	b.WriteString("\n")
	b.WriteString(m.instructions.View())
	b.WriteString("\n")
	if msg := m.fields["instructions"]; msg != "" {
		b.WriteString(errorStyle.Render(msg))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	if m.submitting {
		b.WriteString(dimStyle.Render("Creating..."))
	} else {
		b.WriteString(dimStyle.Render("enter/ctrl+s Create Agent • tab switch field • esc Cancel"))
	}
	b.WriteString("\n")
}

func (m Model) viewPrices(b *strings.Builder) {
	b.WriteString(titleStyle.Render("Our Pricing Plan"))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("Choose the perfect plan for your needs."))
	b.WriteString("\n\n")

	cards := make([]string, 0, 3)
	for _, p := range pricing.Plans() {
		var c strings.Builder
		fmt.Fprintf(&c, "%s\n%s / %s\n%s\n\n", nameStyle.Render(p.Name), p.Price, p.Period, dimStyle.Render(p.Description))
		for _, f := range p.Features {
			c.WriteString("✓ " + f + "\n")
		}
		style := planStyle
		if p.Highlighted {
			style = highlightedPlanStyle
		}
		cards = append(cards, style.Render(strings.TrimRight(c.String(), "\n")))
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, cards...))
	b.WriteString("\n\n")
	b.WriteString(dimStyle.Render("esc back • q quit"))
	b.WriteString("\n")
}

func noticeLine(n dashboard.Notice) string {
	switch n.Kind {
	case dashboard.NoticeSuccess:
		return successStyle.Render(n.Message)
	case dashboard.NoticeInfo:
		return infoStyle.Render(n.Message)
	default:
		return errorStyle.Render(n.Message)
	}
}
