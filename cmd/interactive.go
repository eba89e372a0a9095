package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mvellis/cryptit/pkg/envelope"
	"github.com/spf13/cobra"
)

// Styles
var (
	cursorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))
	checkedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42")) // Green
	tokenStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("63"))
	docStyle     = lipgloss.NewStyle().Margin(1, 2)
)

type fileItem struct {
	path     string
	name     string
	isDir    bool
	selected bool
}

type model struct {
	path       string
	files      []fileItem
	cursor     int
	status     string
	tokenInput textinput.Model
	typing     bool
	tokens     []string
	quitting   bool
}

func initialModel() model {
	cwd, _ := os.Getwd()

	ti := textinput.New()
	ti.Placeholder = "paste share token"
	ti.CharLimit = 0
	ti.Width = 60

	m := model{
		path:       cwd,
		tokenInput: ti,
		status:     "Navigate: ↑/↓ | Enter: Open Dir | Space: Select | 't': Type Token | 'd': Decrypt",
	}
	m.loadFiles()
	return m
}

func (m *model) loadFiles() {
	entries, err := os.ReadDir(m.path)
	if err != nil {
		m.status = "Error reading directory"
		return
	}

	m.files = []fileItem{}
	// Parent directory
	m.files = append(m.files, fileItem{name: "..", isDir: true, path: filepath.Dir(m.path)})

	for _, e := range entries {
		name := e.Name()
		lower := strings.ToLower(name)
		isRel := e.IsDir() ||
			strings.HasSuffix(lower, ContainerExt) ||
			strings.HasSuffix(lower, FragmentExt) ||
			strings.HasSuffix(lower, ".txt")
		if isRel {
			m.files = append(m.files, fileItem{
				name:  name,
				isDir: e.IsDir(),
				path:  filepath.Join(m.path, name),
			})
		}
	}
	m.cursor = 0
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.typing {
		return m.updateTokenInput(msg)
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			m.quitting = true
			return m, tea.Quit

		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}

		case "down", "j":
			if m.cursor < len(m.files)-1 {
				m.cursor++
			}

		case "enter":
			selected := m.files[m.cursor]
			if selected.isDir {
				m.path = selected.path
				m.loadFiles()
			}

		case " ":
			if !m.files[m.cursor].isDir {
				m.files[m.cursor].selected = !m.files[m.cursor].selected
			}

		case "t":
			m.typing = true
			m.tokenInput.Focus()
			return m, textinput.Blink

		case "d":
			return m, m.decryptSelected()
		}

	case statusMsg:
		m.status = string(msg)
		if strings.HasPrefix(m.status, "Success") {
			for i := range m.files {
				m.files[i].selected = false
			}
			m.tokens = nil
		}
	}

	return m, nil
}

func (m model) updateTokenInput(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "enter":
			token := strings.TrimSpace(m.tokenInput.Value())
			if token != "" {
				m.tokens = append(m.tokens, token)
			}
			m.tokenInput.SetValue("")
			m.tokenInput.Blur()
			m.typing = false
			return m, nil
		case "esc", "ctrl+c":
			m.tokenInput.SetValue("")
			m.tokenInput.Blur()
			m.typing = false
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.tokenInput, cmd = m.tokenInput.Update(msg)
	return m, cmd
}

type statusMsg string

func (m model) decryptSelected() tea.Cmd {
	var selectedPaths []string
	for _, f := range m.files {
		if f.selected {
			selectedPaths = append(selectedPaths, f.path)
		}
	}
	tokens := append([]string{}, m.tokens...)

	return func() tea.Msg {
		if len(selectedPaths) == 0 {
			return statusMsg("Select the encrypted file (and share files) first!")
		}

		outPath, err := runInteractiveDecrypt(selectedPaths, tokens)
		if err != nil {
			return statusMsg(fmt.Sprintf("Error: %v", err))
		}

		return statusMsg(fmt.Sprintf("Success! Recovered %s", outPath))
	}
}

func (m model) View() string {
	if m.quitting {
		return "Bye!\n"
	}

	s := fmt.Sprintf("Directory: %s\n\n", m.path)

	for i, file := range m.files {
		cursor := " "
		if m.cursor == i {
			cursor = ">"
			s += cursorStyle.Render(cursor)
		} else {
			s += cursor
		}

		checked := " "
		if file.selected {
			checked = "x"
		}

		line := ""
		if file.isDir {
			line = fmt.Sprintf("[DIR] %s", file.name)
		} else {
			line = fmt.Sprintf("[%s] %s", checked, file.name)
		}

		if file.selected {
			line = checkedStyle.Render(line)
		}

		s += " " + line + "\n"
	}

	if len(m.tokens) > 0 {
		s += tokenStyle.Render(fmt.Sprintf("\n%d token(s) entered", len(m.tokens))) + "\n"
	}

	if m.typing {
		s += "\n" + m.tokenInput.View() + "\n"
	}

	s += fmt.Sprintf("\n%s\n", m.status)
	return docStyle.Render(s)
}

// runInteractiveDecrypt resolves the selection into a container plus share
// tokens and decrypts into the current working directory.
func runInteractiveDecrypt(paths []string, tokens []string) (string, error) {
	var containerPath string
	var shareFiles []string

	for _, path := range paths {
		switch strings.ToLower(filepath.Ext(path)) {
		case ContainerExt, FragmentExt:
			if containerPath != "" && !strings.EqualFold(filepath.Ext(containerPath), FragmentExt) {
				return "", fmt.Errorf("select exactly one encrypted file")
			}
			containerPath = path
		default:
			shareFiles = append(shareFiles, path)
		}
	}

	if containerPath == "" {
		return "", fmt.Errorf("no %s or %s file selected", ContainerExt, FragmentExt)
	}

	container, suggestedName, err := loadContainer(containerPath)
	if err != nil {
		return "", err
	}

	for _, path := range shareFiles {
		token, err := readTokenFile(path)
		if err != nil {
			return "", err
		}
		tokens = append(tokens, token)
	}

	if len(tokens) == 0 {
		return "", fmt.Errorf("no shares selected or typed")
	}

	plaintext, err := envelope.Decrypt(container, tokens)
	if err != nil {
		return "", err
	}

	cwd, _ := os.Getwd()
	outPath := filepath.Join(cwd, suggestedName)
	if _, err := os.Stat(outPath); err == nil {
		return "", fmt.Errorf("%s already exists", suggestedName)
	}

	if err := os.WriteFile(outPath, plaintext, 0644); err != nil {
		return "", err
	}

	return suggestedName, nil
}

// Cobra command setup
var interactiveCmd = &cobra.Command{
	Use:   "interactive",
	Short: "Interactive terminal UI for decrypting",
	RunE: func(cmd *cobra.Command, args []string) error {
		p := tea.NewProgram(initialModel())
		if _, err := p.Run(); err != nil {
			return err
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(interactiveCmd)
}
