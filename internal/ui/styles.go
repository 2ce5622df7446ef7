package ui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/palemoky/old-maid/internal/game/card"
)

// 图标
const (
	TurnIcon   = "▶"
	TargetIcon = "🎯"
	CardBack   = "🂠"
)

var (
	DocStyle       = lipgloss.NewStyle().Margin(1, 2)
	TitleStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("228")).Bold(true)
	BoxStyle       = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	RedStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("#CD0000")).Background(lipgloss.Color("#FFFFFF")).Bold(true)
	BlackStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("0")).Background(lipgloss.Color("#FFFFFF")).Bold(true)
	JokerStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("201")).Background(lipgloss.Color("#FFFFFF")).Bold(true)
	BackStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("33"))
	CursorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("228")).Background(lipgloss.Color("33")).Bold(true)
	HighlightStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true)
	DimStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	PromptStyle    = lipgloss.NewStyle().MarginTop(1)
	ErrorStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
)

// renderCard 按花色着色
func renderCard(c card.Card) string {
	text := " " + c.String() + " "
	switch {
	case c.IsJoker():
		return JokerStyle.Render(text)
	case c.Suit == card.Heart || c.Suit == card.Diamond:
		return RedStyle.Render(text)
	default:
		return BlackStyle.Render(text)
	}
}
