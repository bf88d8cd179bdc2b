package ui

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/nconklindev/zempic/internal/slimmer"
	"github.com/nconklindev/zempic/internal/types"

	"github.com/charmbracelet/bubbles/filepicker"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type state int

const (
	stateFilePicker state = iota
	stateFilterChoice
	stateFilterPicker
	stateColumnSelection
	stateExport
	stateError
)

// Options configures a new Model.
type Options struct {
	// StartDir is where both file pickers open. Empty means the working directory.
	StartDir string
	// ExportDir receives saved files.
	ExportDir     string
	DefaultName   string
	DefaultFormat slimmer.Format
	PreviewRows   int
	Logger        *slog.Logger
}

type Model struct {
	opts         Options
	state        state
	filepicker   filepicker.Model
	filterPicker filepicker.Model
	selectedFile string
	table        *types.Table

	// filterFile is set once a filter list was loaded; it then takes
	// precedence over selected.
	filterFile string
	filterData []byte
	selected   []string
	cursor     int

	nameInput textinput.Model
	format    slimmer.Format
	saved     []string
	saveErr   error

	err       error
	errReturn state
	width     int
	height    int
	logger    *slog.Logger
}

type fileLoadedMsg struct {
	data *types.Table
	err  error
}

type filterLoadedMsg struct {
	name string
	data []byte
	err  error
}

type savedMsg struct {
	path string
	err  error
}

func newFilePicker(dir string, allowed []string) filepicker.Model {
	fp := filepicker.New()
	fp.AllowedTypes = allowed
	fp.CurrentDirectory = dir

	// Set filepicker colors to match theme
	fp.Styles.Cursor = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF8C42"))
	fp.Styles.Symlink = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFB84D"))
	fp.Styles.Directory = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFB84D"))
	fp.Styles.File = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFFFFF"))
	fp.Styles.Permission = lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280"))
	fp.Styles.Selected = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF8C42")).Bold(true)
	fp.Styles.FileSize = lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280"))

	return fp
}

func InitialModel(opts Options) Model {
	if opts.StartDir == "" {
		opts.StartDir, _ = os.Getwd()
	}
	if opts.ExportDir == "" {
		opts.ExportDir = "."
	}
	if opts.DefaultFormat == "" {
		opts.DefaultFormat = slimmer.FormatCSV
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	ti := textinput.New()
	ti.Prompt = "Export name: "
	ti.Placeholder = slimmer.DefaultBaseName
	ti.CharLimit = 128
	ti.SetValue(opts.DefaultName)

	return Model{
		opts:         opts,
		state:        stateFilePicker,
		filepicker:   newFilePicker(opts.StartDir, slimmer.AllowedDataTypes),
		filterPicker: newFilePicker(opts.StartDir, []string{".txt"}),
		nameInput:    ti,
		format:       opts.DefaultFormat,
		logger:       logger,
	}
}

func (m Model) Init() tea.Cmd {
	return m.filepicker.Init()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		// Leave room for title, subtitle and help text
		height := msg.Height - 14
		if height < 5 {
			height = 5
		}

		m.filepicker.SetHeight(height)
		m.filterPicker.SetHeight(height)

		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}

		switch m.state {
		case stateFilePicker, stateFilterPicker:
			switch msg.String() {
			case "q":
				return m, tea.Quit
			case "esc":
				if m.state == stateFilterPicker {
					m.state = stateFilterChoice
					return m, nil
				}
			}

		case stateFilterChoice:
			switch msg.String() {
			case "q":
				return m, tea.Quit
			case "f":
				m.state = stateFilterPicker
				return m, m.filterPicker.Init()
			case "c":
				m.clearFilter()
				m.state = stateColumnSelection
				return m, nil
			case "esc":
				m.state = stateFilePicker
				return m, nil
			}

		case stateColumnSelection:
			switch msg.String() {
			case "q":
				return m, tea.Quit
			case "up", "k":
				if m.cursor > 0 {
					m.cursor--
				}
			case "down", "j":
				if m.cursor < len(m.table.Headers)-1 {
					m.cursor++
				}
			case " ":
				if len(m.table.Headers) > 0 {
					m.toggle(m.table.Headers[m.cursor])
				}
			case "a":
				for _, h := range m.table.Headers {
					if !m.isSelected(h) {
						m.selected = append(m.selected, h)
					}
				}
			case "n":
				m.selected = nil
			case "enter":
				return m.enterExport()
			case "esc":
				m.state = stateFilterChoice
			}
			return m, nil

		case stateExport:
			switch msg.String() {
			case "tab", "shift+tab":
				if m.format == slimmer.FormatCSV {
					m.format = slimmer.FormatExcel
				} else {
					m.format = slimmer.FormatCSV
				}
				return m, nil
			case "enter":
				return m.save(func(b *types.ExportBundle) types.Payload { return b.Data })
			case "ctrl+f":
				return m.save(func(b *types.ExportBundle) types.Payload { return b.Filter })
			case "esc":
				m.nameInput.Blur()
				if m.filterFile != "" {
					m.state = stateFilterChoice
				} else {
					m.state = stateColumnSelection
				}
				return m, nil
			}

			var cmd tea.Cmd
			m.nameInput, cmd = m.nameInput.Update(msg)
			return m, cmd

		case stateError:
			switch msg.String() {
			case "esc":
				m.err = nil
				m.state = m.errReturn
				return m, nil
			case "q", "enter":
				return m, tea.Quit
			}
		}

	case fileLoadedMsg:
		if msg.err != nil {
			m.logger.Warn("could not load data file", "file", m.selectedFile, "error", msg.err)
			return m.fail(msg.err, stateFilePicker), nil
		}

		m.table = msg.data
		m.selected = nil
		m.cursor = 0
		m.clearFilter()
		m.logger.Info("data file loaded",
			"file", m.selectedFile,
			"columns", len(m.table.Headers),
			"rows", len(m.table.Rows),
		)

		m.state = stateFilterChoice
		return m, nil

	case filterLoadedMsg:
		if msg.err != nil {
			return m.fail(msg.err, stateFilterChoice), nil
		}

		m.filterFile = msg.name
		m.filterData = msg.data
		return m.enterExport()

	case savedMsg:
		if msg.err != nil {
			m.logger.Error("save failed", "path", msg.path, "error", msg.err)
			m.saveErr = msg.err
			return m, nil
		}

		m.saveErr = nil
		m.saved = append(m.saved, msg.path)
		return m, nil
	}

	// Handle filepicker updates
	switch m.state {
	case stateFilePicker:
		var cmd tea.Cmd
		m.filepicker, cmd = m.filepicker.Update(msg)

		if didSelect, path := m.filepicker.DidSelectFile(msg); didSelect {
			m.selectedFile = path
			return m, loadFile(path)
		}

		return m, cmd

	case stateFilterPicker:
		var cmd tea.Cmd
		m.filterPicker, cmd = m.filterPicker.Update(msg)

		if didSelect, path := m.filterPicker.DidSelectFile(msg); didSelect {
			return m, loadFilter(path)
		}

		return m, cmd
	}

	return m, nil
}

func loadFile(path string) tea.Cmd {
	return func() tea.Msg {
		data, err := slimmer.LoadFile(path)
		return fileLoadedMsg{data: data, err: err}
	}
}

func loadFilter(path string) tea.Cmd {
	return func() tea.Msg {
		data, err := os.ReadFile(path)
		return filterLoadedMsg{name: filepath.Base(path), data: data, err: err}
	}
}

func saveFile(dir string, p types.Payload) tea.Cmd {
	return func() tea.Msg {
		path := filepath.Join(dir, filepath.Base(p.Filename))
		err := os.WriteFile(path, p.Data, 0o644)
		return savedMsg{path: path, err: err}
	}
}

func (m *Model) clearFilter() {
	m.filterFile = ""
	m.filterData = nil
}

func (m Model) source() slimmer.FilterSource {
	if m.filterFile != "" {
		return slimmer.FromText(m.filterFile, m.filterData)
	}
	return slimmer.FromSelection(m.selected)
}

func (m Model) isSelected(name string) bool {
	for _, s := range m.selected {
		if s == name {
			return true
		}
	}
	return false
}

// toggle adds name to the end of the selection or removes it.
func (m *Model) toggle(name string) {
	for i, s := range m.selected {
		if s == name {
			m.selected = append(m.selected[:i:i], m.selected[i+1:]...)
			return
		}
	}
	m.selected = append(m.selected, name)
}

func (m Model) fail(err error, back state) Model {
	m.err = err
	m.errReturn = back
	m.state = stateError
	return m
}

// enterExport validates the current filter and moves to the export screen.
func (m Model) enterExport() (Model, tea.Cmd) {
	filter, err := slimmer.ResolveFilter(m.source())
	if err == nil {
		err = slimmer.Validate(m.table, filter)
	}
	if err != nil {
		var valErr *slimmer.ValidationError
		if errors.As(err, &valErr) {
			m.logger.Warn("filter rejected", "filter", m.filterFile, "missing", valErr.Missing)
		}
		return m.fail(err, stateFilterChoice), nil
	}

	m.saved = nil
	m.saveErr = nil
	m.state = stateExport
	return m, tea.Batch(m.nameInput.Focus(), textinput.Blink)
}

// save re-runs the pipeline with the current export options and writes the
// payload pick chooses.
func (m Model) save(pick func(*types.ExportBundle) types.Payload) (Model, tea.Cmd) {
	bundle, err := slimmer.Run(m.table, m.source(), slimmer.ExportOptions{
		BaseName: m.nameInput.Value(),
		Format:   m.format,
	})
	if err != nil {
		m.logger.Error("export failed", "error", err)
		return m.fail(err, stateExport), nil
	}

	payload := pick(bundle)
	m.logger.Info("saving export",
		"run_id", bundle.ID,
		"file", payload.Filename,
		"columns", len(bundle.Table.Headers),
		"rows", len(bundle.Table.Rows),
	)

	return m, saveFile(m.opts.ExportDir, payload)
}

func (m Model) View() string {
	switch m.state {
	case stateFilePicker:
		return m.viewFilePicker()
	case stateFilterChoice:
		return m.viewFilterChoice()
	case stateFilterPicker:
		return m.viewFilterPicker()
	case stateColumnSelection:
		return m.viewColumnSelection()
	case stateExport:
		return m.viewExport()
	case stateError:
		return m.viewError()
	}
	return ""
}

func (m Model) viewFilePicker() string {
	var s strings.Builder

	title := TitleStyle.Render("zempic")
	byLine := lipgloss.JoinHorizontal(lipgloss.Top,
		SubtitleStyle.Render("... for files that need to lose a little weight • "),
		LinkStyle.Render("https://github.com/nconklindev/zempic"),
	)

	s.WriteString(lipgloss.JoinVertical(lipgloss.Left, title, byLine))
	s.WriteString("\n")
	s.WriteString(SubtitleStyle.Render("Select the CSV or Excel file to slim"))
	s.WriteString("\n\n")
	s.WriteString(m.filepicker.View())
	s.WriteString("\n\n")
	s.WriteString(HelpStyle.Render("Press q to quit"))

	return s.String()
}

func (m Model) viewFilterChoice() string {
	var s strings.Builder

	s.WriteString(TitleStyle.Render("Choose a Filter"))
	s.WriteString("\n")
	s.WriteString(SubtitleStyle.Render(fmt.Sprintf("File: %s • %d columns • %d rows",
		filepath.Base(m.selectedFile), len(m.table.Headers), len(m.table.Rows))))
	s.WriteString("\n\n")
	s.WriteString("f  load a filter list (.txt, one column name per line)\n")
	s.WriteString("c  choose the columns to retain\n")
	s.WriteString(HelpStyle.Render("esc: pick another file • q: quit"))

	return BoxStyle.Render(s.String())
}

func (m Model) viewFilterPicker() string {
	var s strings.Builder

	s.WriteString(TitleStyle.Render("Select a Filter List"))
	s.WriteString("\n")
	s.WriteString(SubtitleStyle.Render(fmt.Sprintf("Filtering: %s", filepath.Base(m.selectedFile))))
	s.WriteString("\n\n")
	s.WriteString(m.filterPicker.View())
	s.WriteString("\n\n")
	s.WriteString(HelpStyle.Render("esc: back • q: quit"))

	return s.String()
}

func (m Model) viewColumnSelection() string {
	var s strings.Builder

	s.WriteString(TitleStyle.Render("Select the Columns to Retain"))
	s.WriteString("\n")
	s.WriteString(SubtitleStyle.Render(fmt.Sprintf("File: %s", filepath.Base(m.selectedFile))))
	s.WriteString("\n\n")

	start, end := m.visibleRange()
	for i := start; i < end; i++ {
		header := m.table.Headers[i]

		cursor := " "
		if m.cursor == i {
			cursor = ">"
		}

		checked := " "
		if pos := m.position(header); pos > 0 {
			checked = fmt.Sprintf("%d", pos)
		}

		line := fmt.Sprintf("%s [%s] %s", cursor, checked, header)

		if m.cursor == i {
			line = SelectedStyle.Render(line)
		} else if checked != " " {
			line = CheckedStyle.Render(line)
		} else {
			line = UnselectedStyle.Render(line)
		}

		s.WriteString(line)
		s.WriteString("\n")
	}

	if end-start < len(m.table.Headers) {
		s.WriteString(SubtitleStyle.Render(fmt.Sprintf("(%d-%d of %d)", start+1, end, len(m.table.Headers))))
		s.WriteString("\n")
	}

	s.WriteString("\n")
	s.WriteString(fmt.Sprintf("Keeping %d of %d columns\n", len(m.selected), len(m.table.Headers)))
	s.WriteString(HelpStyle.Render("↑/↓: navigate • space: toggle • a: all • n: none • enter: continue • esc: back • q: quit"))

	return BoxStyle.Render(s.String())
}

// position is the 1-based place of name in the selection, or 0.
func (m Model) position(name string) int {
	for i, s := range m.selected {
		if s == name {
			return i + 1
		}
	}
	return 0
}

// visibleRange keeps the cursor on screen when there are more columns than rows.
func (m Model) visibleRange() (int, int) {
	total := len(m.table.Headers)
	if m.height == 0 {
		return 0, total
	}

	visible := m.height - 14
	if visible < 5 {
		visible = 5
	}
	if total <= visible {
		return 0, total
	}

	start := m.cursor - visible/2
	if start < 0 {
		start = 0
	}
	if start+visible > total {
		start = total - visible
	}
	return start, start + visible
}

func (m Model) viewExport() string {
	var s strings.Builder

	s.WriteString(TitleStyle.Render("Export"))
	s.WriteString("\n")

	source := "picked columns"
	if m.filterFile != "" {
		source = "filter list " + m.filterFile
	}
	s.WriteString(SubtitleStyle.Render(fmt.Sprintf("File: %s • using %s", filepath.Base(m.selectedFile), source)))
	s.WriteString("\n\n")

	filter, err := slimmer.ResolveFilter(m.source())
	if err == nil {
		head := slimmer.Head(slimmer.Project(m.table, filter), m.opts.PreviewRows)
		s.WriteString(renderPreview(head, len(m.table.Rows)))
		s.WriteString("\n\n")
	}

	s.WriteString(m.nameInput.View())
	s.WriteString("\n")

	csvMark, excelMark := "(•)", "( )"
	if m.format == slimmer.FormatExcel {
		csvMark, excelMark = "( )", "(•)"
	}
	s.WriteString(fmt.Sprintf("Format: %s CSV  %s Excel\n", csvMark, excelMark))

	for _, path := range m.saved {
		s.WriteString("\n")
		s.WriteString(SuccessStyle.Render(fmt.Sprintf("✓ Saved %s", path)))
	}
	if m.saveErr != nil {
		s.WriteString("\n")
		s.WriteString(ErrorStyle.Render(fmt.Sprintf("✗ %v", m.saveErr)))
	}

	s.WriteString("\n")
	s.WriteString(HelpStyle.Render("tab: CSV/Excel • enter: save file • ctrl+f: save filter list • esc: back • ctrl+c: quit"))

	return BoxStyle.Render(s.String())
}

func (m Model) viewError() string {
	var s strings.Builder

	var valErr *slimmer.ValidationError
	if errors.As(m.err, &valErr) {
		s.WriteString(ErrorStyle.Render("✗ Filter Does Not Match"))
		s.WriteString("\n\n")
		s.WriteString("Your filter is asking for columns not present in the file:\n")
		for _, name := range valErr.Missing {
			s.WriteString(fmt.Sprintf("  • %q\n", name))
		}
	} else {
		s.WriteString(ErrorStyle.Render("✗ Error"))
		s.WriteString("\n\n")
		s.WriteString(m.err.Error())
		s.WriteString("\n")
	}

	s.WriteString(HelpStyle.Render("esc: back • q: quit"))

	return BoxStyle.Render(s.String())
}
