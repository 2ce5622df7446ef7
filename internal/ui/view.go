package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// View renders the model.
func (m *Model) View() string {
	var sb strings.Builder

	sb.WriteString(m.headerView())
	sb.WriteString("\n\n")

	switch m.phase {
	case PhaseConnecting:
		sb.WriteString("正在连接服务器...\n")
	case PhaseDisconnected:
		sb.WriteString(ErrorStyle.Render(m.err))
		sb.WriteString("\n\n")
		sb.WriteString(DimStyle.Render("按 q 退出"))
		return DocStyle.Render(sb.String())
	default:
		sb.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, m.rosterView(), "  ", m.logView()))
		sb.WriteString("\n")
		if m.phase == PhasePlaying {
			sb.WriteString(m.targetView())
			sb.WriteString("\n")
		}
		sb.WriteString(m.handView())
	}

	if m.editingName {
		sb.WriteString(PromptStyle.Render("昵称: " + m.input.View()))
		sb.WriteString("\n")
	}
	if m.err != "" {
		sb.WriteString(ErrorStyle.Render("⚠ " + m.err))
		sb.WriteString("\n")
	}
	sb.WriteString(PromptStyle.Render(m.helpView()))

	return DocStyle.Render(sb.String())
}

func (m *Model) headerView() string {
	title := TitleStyle.Render("🃏 抽鬼牌")
	status := "等待开局"
	if m.phase == PhasePlaying {
		status = "对局中"
		if name, over := m.Loser(); over {
			status = fmt.Sprintf("对局结束，%s 手握鬼牌", name)
		}
	}
	info := DimStyle.Render(fmt.Sprintf("  %s | 延迟 %dms", status, m.conn.Latency().Milliseconds()))
	return title + info
}

func (m *Model) rosterView() string {
	var sb strings.Builder
	sb.WriteString(TitleStyle.Render("玩家"))
	sb.WriteString("\n")
	if len(m.players) == 0 {
		sb.WriteString(DimStyle.Render("（暂无玩家）"))
	}
	for i, p := range m.players {
		marker := "  "
		if p.ID == m.currentTurn {
			marker = TurnIcon + " "
		}
		line := fmt.Sprintf("%s%s  %d 张", marker, p.Name, p.CardCount)
		if p.ID == m.playerID {
			line += " (你)"
		}
		if p.ID == m.target && m.phase == PhasePlaying {
			line += " " + TargetIcon
		}
		if p.ID == m.currentTurn {
			line = HighlightStyle.Render(line)
		}
		sb.WriteString(line)
		if i < len(m.players)-1 {
			sb.WriteString("\n")
		}
	}
	return BoxStyle.Render(sb.String())
}

func (m *Model) logView() string {
	var sb strings.Builder
	sb.WriteString(TitleStyle.Render("弃牌"))
	sb.WriteString("\n")
	if len(m.log) == 0 {
		sb.WriteString(DimStyle.Render("（暂无）"))
	}
	sb.WriteString(strings.Join(m.log, "\n"))
	return BoxStyle.Render(sb.String())
}

func (m *Model) targetView() string {
	i := m.indexOf(m.target)
	if i < 0 {
		return DimStyle.Render("用 ↑/↓ 选择抽牌对象")
	}
	p := m.players[i]

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("从 %s 抽牌: ", p.Name))
	for j := 0; j < p.CardCount; j++ {
		if j == m.cursor && m.IsMyTurn() {
			sb.WriteString(CursorStyle.Render(CardBack))
		} else {
			sb.WriteString(BackStyle.Render(CardBack))
		}
		sb.WriteString(" ")
	}
	if p.CardCount == 0 {
		sb.WriteString(DimStyle.Render("没有手牌"))
	}
	return sb.String()
}

func (m *Model) handView() string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%s 的手牌 (%d): ", m.playerName, len(m.hand)))
	for _, c := range m.hand {
		sb.WriteString(renderCard(c))
		sb.WriteString(" ")
	}
	sb.WriteString("\n")
	return sb.String()
}

func (m *Model) helpView() string {
	if m.editingName {
		return DimStyle.Render("Enter 确认 · Esc 取消")
	}
	if m.IsMyTurn() {
		return HighlightStyle.Render("轮到你了！") + DimStyle.Render(" ↑/↓ 选对象 · ←/→ 选牌 · Enter 抽牌 · o 刷新 · q 退出")
	}
	return DimStyle.Render("s 开局 · n 改名 · o 刷新对手牌 · q 退出")
}
