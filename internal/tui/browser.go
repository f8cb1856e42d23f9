// Package tui implements the interactive browser for past run logs.
package tui

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/runlog-io/runlog/internal/config"
	"github.com/runlog-io/runlog/internal/models"
)

// Browser displays past run logs with list and detail views.
type Browser struct {
	sessions      []*models.Session
	selectedIndex int
	viewing       bool // true = showing transcript, false = showing list
	viewport      viewport.Model
	current       *models.Session
	width         int
	height        int
	err           error
}

// Run launches the log browser over all recorded sessions.
func Run() error {
	sessions, err := config.ListSessions()
	if err != nil {
		return fmt.Errorf("failed to list sessions: %w", err)
	}
	if len(sessions) == 0 {
		return fmt.Errorf("no runs recorded yet")
	}

	p := tea.NewProgram(newBrowser(sessions), tea.WithAltScreen())
	_, err = p.Run()
	return err
}

func newBrowser(sessions []*models.Session) *Browser {
	return &Browser{
		sessions: sessions,
		viewport: viewport.New(80, 24),
	}
}

// Init implements tea.Model.
func (b *Browser) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (b *Browser) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		b.width = msg.Width
		b.height = msg.Height
		b.viewport.Width = msg.Width
		b.viewport.Height = msg.Height - 2 // header + hint line
		return b, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			if b.viewing {
				b.goBack()
				return b, nil
			}
			return b, tea.Quit

		case "esc":
			if b.viewing {
				b.goBack()
			}
			return b, nil

		case "up", "k":
			b.moveUp()
			return b, nil

		case "down", "j":
			b.moveDown()
			return b, nil

		case "pgup", "ctrl+u":
			if b.viewing {
				b.viewport.HalfViewUp()
			}
			return b, nil

		case "pgdown", "ctrl+d":
			if b.viewing {
				b.viewport.HalfViewDown()
			}
			return b, nil

		case "g":
			if b.viewing {
				b.viewport.GotoTop()
			}
			return b, nil

		case "G":
			if b.viewing {
				b.viewport.GotoBottom()
			}
			return b, nil

		case "enter":
			if !b.viewing {
				b.openSelected()
			}
			return b, nil
		}
	}

	var cmd tea.Cmd
	b.viewport, cmd = b.viewport.Update(msg)
	return b, cmd
}

func (b *Browser) moveUp() {
	if b.viewing {
		b.viewport.LineUp(1)
		return
	}
	if b.selectedIndex > 0 {
		b.selectedIndex--
	}
}

func (b *Browser) moveDown() {
	if b.viewing {
		b.viewport.LineDown(1)
		return
	}
	if b.selectedIndex < len(b.sessions)-1 {
		b.selectedIndex++
	}
}

func (b *Browser) openSelected() {
	if b.selectedIndex < 0 || b.selectedIndex >= len(b.sessions) {
		return
	}
	s := b.sessions[b.selectedIndex]

	content, err := config.ReadTranscript(s)
	if err != nil {
		b.err = err
		return
	}

	b.err = nil
	b.current = s
	b.viewing = true
	b.viewport.SetContent(content)
	b.viewport.GotoTop()
}

func (b *Browser) goBack() {
	b.viewing = false
	b.current = nil
	b.viewport.SetContent("")
}

// View implements tea.Model.
func (b *Browser) View() string {
	if b.viewing {
		return b.detailView()
	}
	return b.listView()
}

func (b *Browser) listView() string {
	var sb strings.Builder

	sb.WriteString(headerStyle.Render("Run logs"))
	sb.WriteString("\n\n")

	for i, s := range b.sessions {
		line := fmt.Sprintf("  %s  %s  %s",
			s.StartedAt.Local().Format("2006-01-02 15:04:05"),
			statusBadge(s),
			filepath.Base(s.LogPath),
		)
		if i == b.selectedIndex {
			line = selectedItemStyle.Render("▸" + line[1:])
		}
		sb.WriteString(line)
		sb.WriteString("\n")
	}

	if b.err != nil {
		sb.WriteString("\n")
		sb.WriteString(badgeFailed.Render(b.err.Error()))
		sb.WriteString("\n")
	}

	sb.WriteString("\n")
	sb.WriteString(hintStyle.Render("↑/↓ select · enter view · q quit"))
	return sb.String()
}

func (b *Browser) detailView() string {
	var sb strings.Builder

	title := filepath.Base(b.current.LogPath)
	sb.WriteString(headerStyle.Render(title))
	sb.WriteString("  ")
	sb.WriteString(statusBadge(b.current))
	sb.WriteString("\n")
	sb.WriteString(b.viewport.View())
	sb.WriteString("\n")
	sb.WriteString(hintStyle.Render("↑/↓ scroll · g/G top/bottom · esc back"))
	return sb.String()
}

func statusBadge(s *models.Session) string {
	switch s.Status {
	case models.StatusRunning:
		return badgeRunning.Render("running")
	case models.StatusCompleted:
		return badgeCompleted.Render("exit 0")
	case models.StatusFailed:
		return badgeFailed.Render(fmt.Sprintf("exit %d", s.ExitCode))
	default:
		return badgeDim.Render(s.Status)
	}
}
