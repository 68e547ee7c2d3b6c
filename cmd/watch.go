// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2026 Voltlab

package cmd

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/voltlab/psuwatch/pkg/cmpsu"
)

var watchInterval int

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Live sensor table in a terminal UI",
	Long: `Show all sensor channels in a live-updating table.

Channels that have not reported yet show "no data"; the unit pushes each
value periodically, so the table fills in over the first few seconds of a
session.`,
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
	watchCmd.Flags().IntVar(&watchInterval, "interval", 500, "Refresh interval (milliseconds)")
}

var (
	watchTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("86"))
	watchBaseStyle  = lipgloss.NewStyle().BorderStyle(lipgloss.NormalBorder()).BorderForeground(lipgloss.Color("240"))
	watchFootStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	watchNoData     = "no data"
)

type watchTickMsg time.Time

type watchModel struct {
	session  *cmpsu.Session
	connInfo string
	interval time.Duration
	tbl      table.Model
	quitting bool
}

func newWatchModel(session *cmpsu.Session, connInfo string, interval time.Duration) watchModel {
	columns := []table.Column{
		{Title: "Sensor", Width: 14},
		{Title: "Label", Width: 10},
		{Title: "Value", Width: 14},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithRows(sensorRows(session.Table())),
		table.WithHeight(totalChannels()+1),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57"))
	t.SetStyles(s)

	return watchModel{
		session:  session,
		connInfo: connInfo,
		interval: interval,
		tbl:      t,
	}
}

// totalChannels counts the visible slots across all categories.
func totalChannels() int {
	n := 0
	for _, cat := range cmpsu.Categories() {
		n += cat.Channels()
	}
	return n
}

// sensorRows renders one row per visible slot from the current table state.
func sensorRows(t *cmpsu.Table) []table.Row {
	rows := make([]table.Row, 0, totalChannels())
	for _, cat := range cmpsu.Categories() {
		for ch := 0; ch < cat.Channels(); ch++ {
			label, _ := t.Label(cat, ch)
			value := watchNoData
			if v, ok := t.Value(cat, ch); ok {
				value = formatValue(cat, v)
			}
			rows = append(rows, table.Row{
				fmt.Sprintf("%s[%d]", cat, ch),
				label,
				value,
			})
		}
	}
	return rows
}

func (m watchModel) tick() tea.Cmd {
	return tea.Tick(m.interval, func(t time.Time) tea.Msg {
		return watchTickMsg(t)
	})
}

func (m watchModel) Init() tea.Cmd {
	return m.tick()
}

func (m watchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			m.quitting = true
			return m, tea.Quit
		}

	case watchTickMsg:
		m.tbl.SetRows(sensorRows(m.session.Table()))
		return m, m.tick()
	}

	var cmd tea.Cmd
	m.tbl, cmd = m.tbl.Update(msg)
	return m, cmd
}

func (m watchModel) View() string {
	if m.quitting {
		return ""
	}

	stats := m.session.Stats()
	footer := fmt.Sprintf("%s | packets: %d valid, %d rejected | %.1f pkts/sec | q to quit",
		m.connInfo,
		stats.ValidPackets.Load(),
		stats.Rejected(),
		stats.PacketRate())

	return watchTitleStyle.Render("Psuwatch - PSU Sensors") + "\n" +
		watchBaseStyle.Render(m.tbl.View()) + "\n" +
		watchFootStyle.Render(footer) + "\n"
}

func runWatch(cmd *cobra.Command, args []string) error {
	conn, connInfo, err := OpenConnection()
	if err != nil {
		return err
	}
	defer conn.Close()

	session := newSession()

	// The transport goroutine is the table's single writer; the TUI
	// only reads it on each tick.
	go pumpFrames(conn, session.OnMessage)

	m := newWatchModel(session, connInfo, time.Duration(watchInterval)*time.Millisecond)
	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI error: %v", err)
	}
	return nil
}
