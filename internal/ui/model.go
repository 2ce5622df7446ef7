package ui

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/palemoky/old-maid/internal/game/card"
	"github.com/palemoky/old-maid/internal/protocol"
	"github.com/palemoky/old-maid/internal/protocol/codec"
	"github.com/palemoky/old-maid/internal/protocol/convert"
)

// Model 抽鬼牌终端客户端
type Model struct {
	conn  Conn
	phase Phase
	err   string

	playerID   string
	playerName string

	players     []protocol.PlayerInfo
	hand        []card.Card
	currentTurn string
	log         []string

	// 抽牌选择
	target string
	cursor int

	// 昵称输入
	input       textinput.Model
	editingName bool

	width  int
	height int
}

// NewModel 创建客户端模型，initialName 非空时连接后自动设置昵称
func NewModel(conn Conn, initialName string) *Model {
	ti := textinput.New()
	ti.Placeholder = "输入昵称后回车"
	ti.CharLimit = 20
	ti.Width = 24
	ti.SetValue(initialName)

	return &Model{
		conn:  conn,
		phase: PhaseConnecting,
		input: ti,
	}
}

func (m *Model) Init() tea.Cmd {
	return m.connect()
}

func (m *Model) connect() tea.Cmd {
	return func() tea.Msg {
		if err := m.conn.Connect(); err != nil {
			return ConnectionErrorMsg{Err: err}
		}
		return ConnectedMsg{}
	}
}

func (m *Model) listen() tea.Cmd {
	return func() tea.Msg {
		msg, ok := <-m.conn.Receive()
		if !ok {
			return DisconnectedMsg{}
		}
		return ServerMessage{Msg: msg}
	}
}

// --- 状态访问 ---

func (m *Model) Phase() Phase                   { return m.phase }
func (m *Model) Error() string                  { return m.err }
func (m *Model) PlayerID() string               { return m.playerID }
func (m *Model) PlayerName() string             { return m.playerName }
func (m *Model) Players() []protocol.PlayerInfo { return m.players }
func (m *Model) Hand() []card.Card              { return m.hand }
func (m *Model) CurrentTurn() string            { return m.currentTurn }
func (m *Model) Target() string                 { return m.target }
func (m *Model) Cursor() int                    { return m.cursor }
func (m *Model) Log() []string                  { return m.log }
func (m *Model) EditingName() bool              { return m.editingName }

// IsMyTurn 是否轮到自己抽牌
func (m *Model) IsMyTurn() bool {
	return m.phase == PhasePlaying && m.playerID != "" && m.currentTurn == m.playerID
}

// Loser 只剩一名玩家持牌时返回其昵称
func (m *Model) Loser() (string, bool) {
	if m.phase != PhasePlaying {
		return "", false
	}
	holding := 0
	var name string
	for _, p := range m.players {
		if p.CardCount > 0 {
			holding++
			name = p.Name
		}
	}
	return name, holding == 1
}

// Update handles tea messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return m, nil

	case ConnectedMsg:
		m.phase = PhaseWaiting
		m.err = ""
		return m, m.listen()

	case ConnectionErrorMsg:
		m.phase = PhaseDisconnected
		m.err = fmt.Sprintf("连接失败: %v", msg.Err)
		return m, nil

	case DisconnectedMsg:
		m.phase = PhaseDisconnected
		m.err = "与服务器的连接已断开"
		return m, nil

	case ServerMessage:
		m.handleServerMessage(msg.Msg)
		return m, m.listen()

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	if m.editingName {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		m.conn.Close()
		return m, tea.Quit
	}

	if m.editingName {
		switch msg.Type {
		case tea.KeyEnter:
			name := strings.TrimSpace(m.input.Value())
			m.editingName = false
			m.input.Blur()
			if name != "" {
				m.send(m.conn.SetName(name))
			}
			return m, nil
		case tea.KeyEsc:
			m.editingName = false
			m.input.Blur()
			return m, nil
		}
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}

	switch msg.String() {
	case "q", "esc":
		m.conn.Close()
		return m, tea.Quit
	case "n":
		if m.phase == PhaseDisconnected {
			return m, nil
		}
		m.editingName = true
		m.input.SetValue(m.playerName)
		m.input.CursorEnd()
		return m, m.input.Focus()
	case "s":
		m.err = ""
		m.send(m.conn.StartGame())
	case "o":
		m.send(m.conn.RequestOpponentsHand())
	case "up", "k":
		m.cycleTarget(-1)
	case "down", "j":
		m.cycleTarget(1)
	case "left", "h":
		m.moveCursor(-1)
	case "right", "l":
		m.moveCursor(1)
	case "enter", " ":
		if m.IsMyTurn() && m.target != "" {
			m.err = ""
			m.send(m.conn.DrawCard(m.target, m.cursor))
		}
	}
	return m, nil
}

func (m *Model) send(err error) {
	if err != nil {
		m.err = fmt.Sprintf("发送失败: %v", err)
	}
}

func (m *Model) handleServerMessage(msg *protocol.Message) {
	switch msg.Type {
	case protocol.MsgJoined:
		if p, err := codec.ParsePayload[protocol.JoinedPayload](msg); err == nil {
			m.playerID, m.playerName = p.ID, p.Name
			if name := strings.TrimSpace(m.input.Value()); name != "" && name != p.Name {
				m.send(m.conn.SetName(name))
			}
		}

	case protocol.MsgNameSet:
		if p, err := codec.ParsePayload[protocol.NameSetPayload](msg); err == nil && p.Success {
			m.playerName = p.Name
		}

	case protocol.MsgRoomUpdate:
		if p, err := codec.ParsePayload[protocol.RoomUpdatePayload](msg); err == nil {
			m.setPlayers(p.Players)
			if m.phase == PhasePlaying && m.roomReset() {
				m.phase = PhaseWaiting
				m.currentTurn = ""
				m.target = ""
			}
		}

	case protocol.MsgOpponentsSummary:
		var players []protocol.PlayerInfo
		if err := json.Unmarshal(msg.Payload, &players); err == nil {
			m.setPlayers(players)
		}

	case protocol.MsgGameStarted:
		if p, err := codec.ParsePayload[protocol.GameStartedPayload](msg); err == nil {
			m.phase = PhasePlaying
			m.log = nil
			m.err = ""
			m.setPlayers(p.Players)
			for _, s := range p.PairRemovalSummary {
				if len(s.Discarded) > 0 {
					m.appendLog(fmt.Sprintf("%s 发牌后弃掉 %s", s.Name, formatCards(s.Discarded)))
				}
			}
		}

	case protocol.MsgYourHand:
		if p, err := codec.ParsePayload[protocol.YourHandPayload](msg); err == nil {
			m.hand = convert.InfosToCards(p.Hand)
		}

	case protocol.MsgYourOpponentsHand:
		if p, err := codec.ParsePayload[protocol.YourOpponentsHandPayload](msg); err == nil {
			for _, o := range p.OpponentsHands {
				m.setCardCount(o.ID, o.CardCount)
			}
			m.clampCursor()
		}

	case protocol.MsgTurnUpdate:
		if p, err := codec.ParsePayload[protocol.TurnUpdatePayload](msg); err == nil {
			if m.phase != PhasePlaying {
				m.phase = PhasePlaying
			}
			m.currentTurn = p.CurrentTurn
			m.setPlayers(p.Players)
			if p.TargetID != "" {
				m.target = p.TargetID
			}
			m.cursor = 0
			m.clampCursor()
		}

	case protocol.MsgPairsDiscarded:
		if p, err := codec.ParsePayload[protocol.PairsDiscardedPayload](msg); err == nil {
			m.appendLog(fmt.Sprintf("%s 弃掉 %s", p.Name, formatCards(p.Discarded)))
		}

	case protocol.MsgErrorMsg:
		var text string
		if err := json.Unmarshal(msg.Payload, &text); err == nil {
			m.err = text
		}
	}
}

func (m *Model) setPlayers(players []protocol.PlayerInfo) {
	if players == nil {
		return
	}
	m.players = players
	if m.target != "" && m.indexOf(m.target) < 0 {
		m.target = ""
	}
	m.clampCursor()
}

// roomReset 对局中鬼牌总在某人手里，所有人都没有牌说明服务器已中止对局
func (m *Model) roomReset() bool {
	for _, p := range m.players {
		if p.CardCount > 0 {
			return false
		}
	}
	return true
}

func (m *Model) setCardCount(id string, count int) {
	if i := m.indexOf(id); i >= 0 {
		m.players[i].CardCount = count
	}
}

func (m *Model) indexOf(id string) int {
	for i, p := range m.players {
		if p.ID == id {
			return i
		}
	}
	return -1
}

// cycleTarget 在其他玩家之间切换抽牌对象
func (m *Model) cycleTarget(step int) {
	var others []string
	for _, p := range m.players {
		if p.ID != m.playerID {
			others = append(others, p.ID)
		}
	}
	if len(others) == 0 {
		return
	}

	pos := -1
	for i, id := range others {
		if id == m.target {
			pos = i
		}
	}
	if pos < 0 {
		m.target = others[0]
	} else {
		m.target = others[(pos+step+len(others))%len(others)]
	}
	m.cursor = 0
	m.clampCursor()
}

func (m *Model) moveCursor(step int) {
	m.cursor += step
	m.clampCursor()
}

// clampCursor 保证光标落在目标玩家的手牌范围内
func (m *Model) clampCursor() {
	count := 0
	if i := m.indexOf(m.target); i >= 0 {
		count = m.players[i].CardCount
	}
	if m.cursor >= count {
		m.cursor = count - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m *Model) appendLog(line string) {
	m.log = append(m.log, line)
	if len(m.log) > maxLogLines {
		m.log = m.log[len(m.log)-maxLogLines:]
	}
}

func formatCards(infos []protocol.CardInfo) string {
	parts := make([]string, 0, len(infos))
	for _, c := range convert.InfosToCards(infos) {
		parts = append(parts, c.String())
	}
	return strings.Join(parts, " ")
}
