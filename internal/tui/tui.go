// Package tui implements the interactive scorekeeper as a Bubble Tea
// program. It is strictly a rendering and input surface: every rule lives
// in the game package, and the TUI just rebuilds its widgets from the
// current Selection after each input event.
package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/lox/barbu/internal/commentary"
	"github.com/lox/barbu/internal/contract"
	"github.com/lox/barbu/internal/game"
	"github.com/lox/barbu/internal/store"
)

// Options configures the TUI program.
type Options struct {
	Session     *game.Session // nil starts at the setup screen
	Store       *store.Store
	Logger      *log.Logger
	Commentary  bool
	LeadMargins []int
}

// Run starts the interactive scorekeeper and blocks until it exits.
func Run(opts Options) error {
	m := newModel(opts)
	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err := p.Run()
	return err
}

type screen int

const (
	screenSetup screen = iota
	screenRound
	screenPodium
)

// entryRow is one focusable control on the round entry form. For Barbu
// rounds each player has one row per enabled sub-contract.
type entryRow struct {
	player game.PlayerID
	sub    contract.Contract // set only inside a Barbu round
}

type model struct {
	opts    Options
	logger  *log.Logger
	session *game.Session
	tracker *game.Tracker

	screen screen

	// Setup screen state.
	nameInputs []textinput.Model
	toggles    []bool
	setupFocus int
	setupErr   string

	// Round entry state.
	contracts   []contract.Contract
	contractIdx int
	sel         *game.Selection
	rows        []entryRow
	rowIdx      int
	remark      string
	status      string

	// Edit prompt state.
	editPrompt textinput.Model
	editing    bool

	width  int
	height int
}

func newModel(opts Options) *model {
	m := &model{
		opts:   opts,
		logger: opts.Logger.WithPrefix("tui"),
	}

	m.nameInputs = make([]textinput.Model, game.MaxPlayers)
	for i := range m.nameInputs {
		ti := textinput.New()
		ti.Placeholder = fmt.Sprintf("Player %d name", i+1)
		ti.CharLimit = 24
		ti.Width = 24
		m.nameInputs[i] = ti
	}
	m.nameInputs[0].Focus()

	m.toggles = make([]bool, len(contract.All))
	for i := range m.toggles {
		m.toggles[i] = true
	}

	ep := textinput.New()
	ep.Placeholder = "round #"
	ep.CharLimit = 3
	ep.Width = 8
	m.editPrompt = ep

	if opts.Session != nil {
		m.attachSession(opts.Session)
		if m.session.Complete() {
			m.screen = screenPodium
		} else {
			m.screen = screenRound
			m.nextRound()
		}
	}
	return m
}

// attachSession binds the model (and the trigger tracker) to a session.
func (m *model) attachSession(sess *game.Session) {
	m.session = sess
	cfg := game.DefaultTrackerConfig()
	if len(m.opts.LeadMargins) > 0 {
		cfg.LeadMargins = m.opts.LeadMargins
	}
	m.tracker = game.NewTracker(sess, cfg, m.opts.Logger, func(ev game.TriggerEvent) {
		if m.opts.Commentary {
			m.remark = commentary.Line(ev)
		}
	})
}

// nextRound rebuilds the entry form for the current dealer's available
// contracts.
func (m *model) nextRound() {
	m.contracts = m.session.AvailableContracts()
	m.contractIdx = 0
	m.editing = false
	if len(m.contracts) == 0 {
		// Dealer has dealt everything they can; with the modulo rotation
		// this only happens once the game is complete.
		m.screen = screenPodium
		return
	}
	m.buildSelection()
}

// buildSelection resets the selection and rows for the chosen contract.
func (m *model) buildSelection() {
	m.sel = m.session.NewRoundSelection(m.contracts[m.contractIdx])
	m.buildRows()
}

// buildRows flattens the selection into focusable rows.
func (m *model) buildRows() {
	m.rows = m.rows[:0]
	m.rowIdx = 0
	for _, p := range m.sel.Players() {
		if m.sel.Contract == contract.Barbu {
			for _, sub := range contract.BarbuSubContracts {
				if m.subSelectionExists(sub) {
					m.rows = append(m.rows, entryRow{player: p, sub: sub})
				}
			}
		} else {
			m.rows = append(m.rows, entryRow{player: p})
		}
	}
}

func (m *model) subSelectionExists(sub contract.Contract) bool {
	switch {
	case contract.IsNumericPool(sub):
		return m.sel.SubPools[sub] != nil
	case sub == contract.KingOfSpades:
		return m.sel.SubKing != nil
	case sub == contract.LastTwoTricks:
		return m.sel.SubLastTwo != nil
	}
	return false
}

func (m *model) Init() tea.Cmd {
	return textinput.Blink
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		switch m.screen {
		case screenSetup:
			return m.updateSetup(msg)
		case screenRound:
			return m.updateRound(msg)
		case screenPodium:
			return m.updatePodium(msg)
		}
	}
	return m, nil
}

// --- Setup screen ---

func (m *model) updateSetup(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	nameCount := len(m.nameInputs)
	totalFocus := nameCount + len(m.toggles)

	switch msg.String() {
	case "up", "shift+tab":
		m.setFocus((m.setupFocus + totalFocus - 1) % totalFocus)
		return m, nil
	case "down", "tab":
		m.setFocus((m.setupFocus + 1) % totalFocus)
		return m, nil
	case " ":
		if m.setupFocus >= nameCount {
			i := m.setupFocus - nameCount
			m.toggles[i] = !m.toggles[i]
			return m, nil
		}
	case "enter":
		return m.startGame()
	}

	if m.setupFocus < nameCount {
		var cmd tea.Cmd
		m.nameInputs[m.setupFocus], cmd = m.nameInputs[m.setupFocus].Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *model) setFocus(idx int) {
	m.setupFocus = idx
	for i := range m.nameInputs {
		if i == idx {
			m.nameInputs[i].Focus()
		} else {
			m.nameInputs[i].Blur()
		}
	}
}

func (m *model) startGame() (tea.Model, tea.Cmd) {
	var names []string
	for i := range m.nameInputs {
		if name := strings.TrimSpace(m.nameInputs[i].Value()); name != "" {
			names = append(names, name)
		}
	}
	var enabled []contract.Contract
	for i, on := range m.toggles {
		if on {
			enabled = append(enabled, contract.All[i])
		}
	}

	sess, err := game.NewSession(names, enabled, m.opts.Logger)
	if err != nil {
		m.setupErr = err.Error()
		return m, nil
	}
	m.setupErr = ""
	m.attachSession(sess)
	m.save()
	m.screen = screenRound
	m.nextRound()
	return m, nil
}

// --- Round entry screen ---

func (m *model) updateRound(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.editing && m.editPrompt.Focused() {
		return m.updateEditPrompt(msg)
	}

	switch msg.String() {
	case "q":
		return m, tea.Quit

	case "up", "k":
		if m.rowIdx > 0 {
			m.rowIdx--
		}
	case "down", "j":
		if m.rowIdx < len(m.rows)-1 {
			m.rowIdx++
		}

	case "left", "h":
		m.adjust(-1)
	case "right", "l":
		m.adjust(1)

	case " ":
		m.choose()
	case "1":
		m.dominoRole(true)
	case "2":
		m.dominoRole(false)
	case "f":
		m.fillRemainder()

	case "tab":
		if !m.editing && len(m.contracts) > 1 {
			m.contractIdx = (m.contractIdx + 1) % len(m.contracts)
			m.buildSelection()
		}

	case "e":
		if !m.editing && len(m.session.Rounds()) > 0 {
			m.editing = true
			m.editPrompt.SetValue("")
			m.editPrompt.Focus()
			return m, textinput.Blink
		}

	case "esc":
		if m.editing {
			m.session.CancelEdit()
			m.nextRound()
		}

	case "enter":
		return m.submit()
	}
	return m, nil
}

func (m *model) updateEditPrompt(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.editing = false
		m.editPrompt.Blur()
		return m, nil
	case "enter":
		n, err := strconv.Atoi(strings.TrimSpace(m.editPrompt.Value()))
		if err != nil || n < 1 || n > len(m.session.Rounds()) {
			m.status = "no such round"
			m.editing = false
			m.editPrompt.Blur()
			return m, nil
		}
		sel, err := m.session.StartEdit(n - 1)
		if err != nil {
			m.status = err.Error()
			m.editing = false
			m.editPrompt.Blur()
			return m, nil
		}
		m.status = ""
		m.editPrompt.Blur()
		m.sel = sel
		m.contracts = []contract.Contract{sel.Contract}
		m.contractIdx = 0
		m.buildRows()
		return m, nil
	}
	var cmd tea.Cmd
	m.editPrompt, cmd = m.editPrompt.Update(msg)
	return m, cmd
}

// effectiveContract resolves the contract governing the focused row.
func (m *model) effectiveContract(row entryRow) contract.Contract {
	if m.sel.Contract == contract.Barbu {
		return row.sub
	}
	return m.sel.Contract
}

// pool returns the pool selection for the focused row, standalone or
// nested in Barbu.
func (m *model) pool(row entryRow) *game.PoolSelection {
	if m.sel.Contract == contract.Barbu {
		return m.sel.SubPools[row.sub]
	}
	return m.sel.Pool
}

func (m *model) outcomes(row entryRow) *game.OutcomeSelection {
	if m.sel.Contract == contract.Barbu {
		return m.sel.SubLastTwo
	}
	return m.sel.LastTwo
}

func (m *model) king(row entryRow) *game.KingSelection {
	if m.sel.Contract == contract.Barbu {
		return m.sel.SubKing
	}
	return m.sel.King
}

func (m *model) adjust(delta int) {
	if len(m.rows) == 0 {
		return
	}
	row := m.rows[m.rowIdx]
	switch ec := m.effectiveContract(row); {
	case contract.IsNumericPool(ec):
		pool := m.pool(row)
		pool.Set(row.player, pool.Get(row.player)+delta)

	case ec == contract.LastTwoTricks:
		sel := m.outcomes(row)
		opts := sel.Options(row.player)
		cur := 0
		for i, o := range opts {
			if o == sel.Get(row.player) {
				cur = i
			}
		}
		sel.Set(row.player, opts[(cur+len(opts)+delta)%len(opts)])

	case ec == contract.Domino:
		d := m.sel.Domino
		if row.player != d.First && row.player != d.Second {
			d.SetCardsLeft(row.player, d.CardsLeft[row.player]+delta)
		}
	}
}

func (m *model) choose() {
	if len(m.rows) == 0 {
		return
	}
	row := m.rows[m.rowIdx]
	if m.effectiveContract(row) == contract.KingOfSpades {
		m.king(row).Choose(row.player)
	}
}

func (m *model) dominoRole(first bool) {
	if len(m.rows) == 0 || m.sel.Contract != contract.Domino {
		return
	}
	row := m.rows[m.rowIdx]
	if first {
		m.sel.Domino.SetFirst(row.player)
	} else {
		m.sel.Domino.SetSecond(row.player)
	}
}

func (m *model) fillRemainder() {
	if len(m.rows) == 0 {
		return
	}
	row := m.rows[m.rowIdx]
	switch ec := m.effectiveContract(row); {
	case contract.IsNumericPool(ec):
		m.pool(row).FillRemainder(row.player)
	case ec == contract.LastTwoTricks:
		m.outcomes(row).FillRemainder(row.player)
	}
}

func (m *model) submit() (tea.Model, tea.Cmd) {
	m.remark = ""
	if _, err := m.session.Submit(m.sel); err != nil {
		m.status = "round incomplete"
		return m, nil
	}
	m.status = ""
	m.save()

	if m.session.Complete() {
		m.screen = screenPodium
		return m, nil
	}
	m.nextRound()
	return m, nil
}

func (m *model) save() {
	if m.opts.Store == nil {
		return
	}
	if err := m.opts.Store.Save(m.session, m.opts.Commentary); err != nil {
		m.logger.Error("Failed to save game", "error", err)
		m.status = "save failed: " + err.Error()
	}
}

// --- Podium screen ---

func (m *model) updatePodium(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "enter", "esc":
		return m, tea.Quit
	}
	return m, nil
}

// --- Views ---

func (m *model) View() string {
	switch m.screen {
	case screenSetup:
		return m.viewSetup()
	case screenRound:
		return m.viewRound()
	case screenPodium:
		return m.viewPodium()
	}
	return ""
}

func (m *model) viewSetup() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Barbu — new game"))
	b.WriteString("\n\n")
	b.WriteString(headerStyle.Render("Players (3-6)"))
	b.WriteString("\n")
	for i := range m.nameInputs {
		b.WriteString("  " + m.nameInputs[i].View() + "\n")
	}
	b.WriteString("\n" + headerStyle.Render("Contracts") + "\n")
	for i, c := range contract.All {
		mark := "[ ]"
		if m.toggles[i] {
			mark = "[x]"
		}
		line := fmt.Sprintf("  %s %s", mark, c)
		if m.setupFocus == len(m.nameInputs)+i {
			line = cursorStyle.Render("> " + line[2:])
		}
		b.WriteString(line + "\n")
	}
	if m.setupErr != "" {
		b.WriteString("\n" + errorStyle.Render(m.setupErr) + "\n")
	}
	b.WriteString("\n" + dimStyle.Render("tab/↑↓ move · space toggle · enter start · ctrl+c quit"))
	return b.String()
}

func (m *model) viewRound() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Barbu"))
	b.WriteString("  " + m.viewStandingsBar() + "\n\n")

	if idx, ok := m.session.EditingIndex(); ok {
		b.WriteString(headerStyle.Render(fmt.Sprintf("Editing round %d — %s", idx+1, m.sel.Contract)))
	} else {
		dealer := m.session.CurrentDealer()
		b.WriteString(headerStyle.Render(fmt.Sprintf("Dealer: %s — %s", dealer.Name, m.sel.Contract)))
		if len(m.contracts) > 1 {
			b.WriteString(dimStyle.Render("  (tab to change contract)"))
		}
	}
	b.WriteString("\n\n")

	b.WriteString(m.viewEntryForm())
	b.WriteString("\n")

	if m.sel.Submittable() {
		b.WriteString(readyStyle.Render("ready — enter to record") + "\n")
	} else {
		b.WriteString(dimStyle.Render("incomplete") + "\n")
	}
	if m.status != "" {
		b.WriteString(errorStyle.Render(m.status) + "\n")
	}
	if m.remark != "" {
		b.WriteString(remarkStyle.Render(m.remark) + "\n")
	}

	b.WriteString("\n" + m.viewHistory())
	b.WriteString("\n" + m.viewProgress())

	if m.editing && m.editPrompt.Focused() {
		b.WriteString("\nEdit which round? " + m.editPrompt.View())
	}
	b.WriteString("\n" + dimStyle.Render("↑↓ player · ←→ adjust · space pick · 1/2 domino out · f rest · e edit · q quit"))
	return b.String()
}

// viewStandingsBar renders the tie-aware ranking strip.
func (m *model) viewStandingsBar() string {
	parts := make([]string, 0, game.MaxPlayers)
	for _, s := range m.session.Standings() {
		text := fmt.Sprintf("%d. %s: %d", s.Rank, s.Player.Name, s.Total)
		if s.Rank == 1 && hasColor() {
			text = leaderStyle.Render(text)
		}
		parts = append(parts, text)
	}
	return strings.Join(parts, "  ")
}

func (m *model) viewEntryForm() string {
	var lines []string
	for i, row := range m.rows {
		player, _ := m.session.PlayerByID(row.player)
		label := player.Name
		if row.sub != "" {
			label = fmt.Sprintf("%s · %s", player.Name, row.sub)
		}

		cursor := "  "
		if i == m.rowIdx {
			cursor = cursorStyle.Render("> ")
		}
		lines = append(lines, fmt.Sprintf("%s%-32s %s", cursor, label, m.rowValue(row)))
	}
	return boxStyle.Render(strings.Join(lines, "\n"))
}

// rowValue renders the focused control's current value and bounds.
func (m *model) rowValue(row entryRow) string {
	switch ec := m.effectiveContract(row); {
	case contract.IsNumericPool(ec):
		pool := m.pool(row)
		return fmt.Sprintf("%2d  %s", pool.Get(row.player),
			dimStyle.Render(fmt.Sprintf("(max %d)", pool.MaxFor(row.player))))

	case ec == contract.KingOfSpades:
		if m.king(row).Chosen == row.player {
			return "(♠) took the king"
		}
		return dimStyle.Render("( )")

	case ec == contract.LastTwoTricks:
		return string(m.outcomes(row).Get(row.player))

	case ec == contract.Domino:
		d := m.sel.Domino
		switch row.player {
		case d.First:
			return "1st out"
		case d.Second:
			return "2nd out"
		default:
			return fmt.Sprintf("%d cards left", d.CardsLeft[row.player])
		}
	}
	return ""
}

// viewHistory renders the tail of the round log with the dealer marker:
// a star for a dealer who kept the round's sole best score, a frown for
// the sole worst.
func (m *model) viewHistory() string {
	rounds := m.session.Rounds()
	if len(rounds) == 0 {
		return dimStyle.Render("no rounds yet")
	}
	players := m.session.Players()

	var b strings.Builder
	b.WriteString(headerStyle.Render("Rounds") + "\n")
	start := 0
	if len(rounds) > 8 {
		start = len(rounds) - 8
		b.WriteString(dimStyle.Render(fmt.Sprintf("  … %d earlier rounds\n", start)))
	}
	for i := start; i < len(rounds); i++ {
		r := rounds[i]
		dealer, _ := m.session.PlayerByID(r.Dealer)
		var cells []string
		for _, p := range players {
			cells = append(cells, fmt.Sprintf("%s %d", p.Name, r.Scores[p.ID]))
		}
		b.WriteString(fmt.Sprintf("  %2d. %-10s %s%-16s %s\n",
			i+1, dealer.Name, dealerMark(r, players), r.Contract, strings.Join(cells, "  ")))
	}
	return b.String()
}

// dealerMark flags rounds where the dealer did notably well or badly.
func dealerMark(r game.Round, players []game.Player) string {
	dealerScore := r.Scores[r.Dealer]
	min, max := dealerScore, dealerScore
	countMin, countMax := 0, 0
	for _, p := range players {
		s := r.Scores[p.ID]
		if s < min {
			min = s
		}
		if s > max {
			max = s
		}
	}
	for _, p := range players {
		s := r.Scores[p.ID]
		if s == min {
			countMin++
		}
		if s == max {
			countMax++
		}
	}
	if (dealerScore == min && countMin == 1) || (dealerScore == 0 && dealerScore == min) {
		return "★ "
	}
	if dealerScore == max && countMax == 1 {
		return "✗ "
	}
	return "  "
}

// viewProgress renders the per-player-per-contract completion grid.
func (m *model) viewProgress() string {
	enabled := m.session.EnabledContracts()
	var b strings.Builder
	b.WriteString(headerStyle.Render("Progress") + "\n")
	for _, p := range m.session.Players() {
		var cells []string
		for _, c := range enabled {
			if m.session.Done(p.ID, c) {
				cells = append(cells, "✓")
			} else {
				cells = append(cells, dimStyle.Render("·"))
			}
		}
		b.WriteString(fmt.Sprintf("  %-12s %s\n", p.Name, strings.Join(cells, " ")))
	}
	return b.String()
}

func (m *model) viewPodium() string {
	standings := m.session.Standings()
	var b strings.Builder
	b.WriteString(titleStyle.Render("Game over"))
	b.WriteString("\n\n")
	medals := []string{"🥇", "🥈", "🥉"}
	for i, s := range standings {
		line := fmt.Sprintf("%d. %s — %d", s.Rank, s.Player.Name, s.Total)
		if i < len(medals) {
			line = medals[i] + " " + line
		} else {
			line = "   " + line
		}
		if i == 0 {
			line = leaderStyle.Render(line)
		}
		b.WriteString(line + "\n")
	}
	b.WriteString("\n" + headerStyle.Render(fmt.Sprintf("🏆 %s wins!", standings[0].Player.Name)))
	b.WriteString("\n\n" + dimStyle.Render("q to exit"))
	return lipgloss.NewStyle().Padding(1, 2).Render(b.String())
}
