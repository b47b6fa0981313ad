package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/ahertel/kintrace/pkg/family"
	"github.com/ahertel/kintrace/pkg/kin"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// =============================================================================
// PersonListModel - Interactive root person selection
// =============================================================================

// personEntry is one row of the picker: a person plus their relation counts.
type personEntry struct {
	Name     string
	Parents  int
	Children int
	Degree   int
}

// PersonListModel is the bubbletea model for interactive root selection.
// It shows every person in the dataset with their relation counts so the
// user can pick a well-connected root.
type PersonListModel struct {
	People   []personEntry
	Cursor   int
	Selected string
	Height   int
	Offset   int
}

// NewPersonListModel creates a picker over the dataset's records.
// People are listed in dataset order, matching graph construction.
func NewPersonListModel(records []family.Record) PersonListModel {
	g := kin.Build(records)
	people := make([]personEntry, 0, len(records))
	for _, r := range records {
		parents := 0
		if r.HasFather() {
			parents++
		}
		if r.HasMother() {
			parents++
		}
		people = append(people, personEntry{
			Name:     r.Name,
			Parents:  parents,
			Children: len(r.Children),
			Degree:   g.Degree(r.Name),
		})
	}
	return PersonListModel{
		People: people,
		Height: 15,
	}
}

func (m PersonListModel) Init() tea.Cmd {
	return nil
}

func (m PersonListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.People)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "enter":
			if len(m.People) > 0 {
				m.Selected = m.People[m.Cursor].Name
			}
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.Height = msg.Height - 6
		if m.Height < 5 {
			m.Height = 5
		}
	}
	return m, nil
}

func (m PersonListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Select Root Person"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ select  q quit"))
	b.WriteString("\n\n")

	end := m.Offset + m.Height
	if end > len(m.People) {
		end = len(m.People)
	}

	for i := m.Offset; i < end; i++ {
		p := m.People[i]

		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}

		detail := fmt.Sprintf("%d parents · %d children · %d relations",
			p.Parents, p.Children, p.Degree)
		line := fmt.Sprintf("%s%-20s  %s", cursor, p.Name, listDimStyle.Render(detail))

		if i == m.Cursor {
			b.WriteString(listSelectedStyle.Render(line))
		} else {
			b.WriteString(listNormalStyle.Render(line))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.People))))

	return b.String()
}

// pickRoot runs the interactive picker and returns the chosen person.
// It returns an empty string when the user quits without selecting.
func pickRoot(records []family.Record) (string, error) {
	model := NewPersonListModel(records)
	prog := tea.NewProgram(model)
	final, err := prog.Run()
	if err != nil {
		return "", fmt.Errorf("root picker: %w", err)
	}
	if m, ok := final.(PersonListModel); ok {
		return m.Selected, nil
	}
	return "", nil
}
