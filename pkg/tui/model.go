// Copyright 2025 cons0leweb
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package tui is the interactive five-panel interface: text processing,
// file operations, batch rename, checksum and log viewer.
package tui

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/cons0leweb/fsutils/pkg/config"
	"github.com/cons0leweb/fsutils/pkg/inject"
	"github.com/cons0leweb/fsutils/pkg/oplog"
)

// 🗂️ Panel identifies one of the five tabs
type Panel int

const (
	PanelText Panel = iota
	PanelFiles
	PanelRename
	PanelChecksum
	PanelLog

	panelCount = 5
)

var panelTitles = [panelCount]string{
	"Text Processing",
	"File Operations",
	"Batch Rename",
	"Checksum",
	"Log Viewer",
}

// Input field indexes per panel.
const (
	textFieldFolder = iota
	textFieldText
	textFieldExtensions
	textFieldMaxSize
)

const (
	filesFieldFolder = iota
	filesFieldCount
	filesFieldExtension
)

const (
	renameFieldFolder = iota
	renameFieldTemplate
	renameFieldExtensions
)

const (
	checksumFieldFolder = iota
)

var positionNames = []string{"start", "end", "random"}
var namingNames = []string{"random", "sequential"}
var algorithmNames = []string{"md5", "sha1", "sha256", "sha512"}

// 🖥️ Model is the bubbletea model for the whole interface
type Model struct {
	ctx context.Context
	cfg *config.Config
	log *oplog.Sink

	panel   Panel
	width   int
	height  int
	ready   bool
	running bool
	err     error

	inputs [panelCount][]textinput.Model
	focus  int

	viewport viewport.Model
	spinner  spinner.Model
	output   string

	// Text panel options
	position  int
	backup    bool
	recursive bool

	// Files panel options
	naming int

	// Checksum panel options
	algorithm  int
	duplicates bool
}

// 🏭 NewModel builds the interface. The context carries the zerolog logger
// used by the underlying engines; the sink receives operation records.
func NewModel(ctx context.Context, cfg *config.Config, sink *oplog.Sink) Model {
	m := Model{
		ctx:     ctx,
		cfg:     cfg,
		log:     sink,
		backup:  true,
		naming:  0,
		focus:   0,
		spinner: spinner.New(),
	}
	m.spinner.Spinner = spinner.Dot
	m.spinner.Style = lipgloss.NewStyle().Foreground(colorPrimary)

	newInput := func(placeholder string, value string) textinput.Model {
		ti := textinput.New()
		ti.Placeholder = placeholder
		ti.CharLimit = 512
		ti.Width = 60
		if value != "" {
			ti.SetValue(value)
		}
		return ti
	}

	recent := ""
	if len(cfg.RecentFolders) > 0 {
		recent = cfg.RecentFolders[0]
	}
	exts := strings.Join(cfg.DefaultExtensions, ",")
	maxSize := strconv.FormatInt(cfg.MaxFileSizeMB, 10)

	m.inputs[PanelText] = []textinput.Model{
		newInput("folder to process", recent),
		newInput("text to insert", ""),
		newInput("extensions, comma separated", exts),
		newInput("max file size (MB)", maxSize),
	}
	m.inputs[PanelFiles] = []textinput.Model{
		newInput("target folder", recent),
		newInput("number of files", "10"),
		newInput("extension", "txt"),
	}
	m.inputs[PanelRename] = []textinput.Model{
		newInput("folder to rename in", recent),
		newInput("pattern, e.g. {n}_{d}_{r}", "{n}_{d}_{r}"),
		newInput("extensions, comma separated", exts),
	}
	m.inputs[PanelChecksum] = []textinput.Model{
		newInput("folder to hash", recent),
	}
	m.inputs[PanelLog] = nil

	m.inputs[PanelText][0].Focus()
	return m
}

// Init starts the spinner and loads the log tail.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.spinner.Tick, m.tailLogCmd())
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit

		case "tab", "shift+tab":
			if msg.String() == "tab" {
				m.panel = (m.panel + 1) % panelCount
			} else {
				m.panel = (m.panel + panelCount - 1) % panelCount
			}
			m.focus = 0
			m.err = nil
			m.refocus()
			if m.panel == PanelLog {
				return m, m.tailLogCmd()
			}
			return m, nil

		case "up", "down":
			fields := len(m.inputs[m.panel])
			if fields > 0 {
				if msg.String() == "down" {
					m.focus = (m.focus + 1) % fields
				} else {
					m.focus = (m.focus + fields - 1) % fields
				}
				m.refocus()
			}
			return m, nil

		case "enter":
			if !m.running {
				return m.runPrimary()
			}
			return m, nil

		case "ctrl+p":
			if m.panel == PanelText {
				m.position = (m.position + 1) % len(positionNames)
			}
			return m, nil

		case "ctrl+b":
			if m.panel == PanelText {
				m.backup = !m.backup
			}
			return m, nil

		case "ctrl+r":
			switch m.panel {
			case PanelText, PanelFiles, PanelRename, PanelChecksum:
				m.recursive = !m.recursive
			case PanelLog:
				return m, m.tailLogCmd()
			}
			return m, nil

		case "ctrl+n":
			if m.panel == PanelFiles {
				m.naming = (m.naming + 1) % len(namingNames)
			}
			return m, nil

		case "ctrl+a":
			if m.panel == PanelChecksum {
				m.algorithm = (m.algorithm + 1) % len(algorithmNames)
			}
			return m, nil

		case "ctrl+d":
			if m.panel == PanelChecksum {
				m.duplicates = !m.duplicates
			}
			return m, nil

		case "ctrl+e":
			if m.panel == PanelFiles && !m.running {
				m.running = true
				return m, m.deleteEmptyCmd()
			}
			return m, nil

		case "ctrl+x":
			if m.running {
				return m, nil
			}
			switch m.panel {
			case PanelText:
				m.running = true
				return m, m.restoreCmd()
			case PanelRename:
				m.running = true
				return m, m.renameCmd(true)
			case PanelLog:
				return m, m.clearLogCmd()
			}
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		contentHeight := msg.Height - 14
		if contentHeight < 3 {
			contentHeight = 3
		}
		if !m.ready {
			m.viewport = viewport.New(msg.Width-2, contentHeight)
			m.ready = true
		} else {
			m.viewport.Width = msg.Width - 2
			m.viewport.Height = contentHeight
		}
		m.viewport.SetContent(m.output)

	case batchDoneMsg:
		m.running = false
		m.err = msg.err
		if msg.err == nil {
			m.output = successStyle.Render(msg.summary) + "\n" +
				statusBarStyle.Render(fmt.Sprintf("processed %d of %d files (%d errors)",
					msg.progress.Processed, msg.progress.Total, msg.progress.Errors))
			m.viewport.SetContent(m.output)
		}

	case renameDoneMsg:
		m.running = false
		m.err = msg.err
		if msg.err == nil {
			if msg.applied >= 0 {
				m.output = successStyle.Render(fmt.Sprintf("renamed %d files", msg.applied))
			} else if len(msg.preview) == 0 {
				m.output = statusBarStyle.Render("no files to rename")
			} else {
				m.output = resultStyle.Render(strings.Join(msg.preview, "\n"))
			}
			m.viewport.SetContent(m.output)
		}

	case checksumDoneMsg:
		m.running = false
		m.err = msg.err
		if msg.err == nil {
			var b strings.Builder
			b.WriteString(resultStyle.Render(strings.Join(msg.lines, "\n")))
			if len(msg.duplicates) > 0 {
				b.WriteString("\n\n")
				b.WriteString(errorStyle.Render("Duplicate files:"))
				b.WriteString("\n")
				b.WriteString(resultStyle.Render(strings.Join(msg.duplicates, "\n")))
			}
			m.output = b.String()
			m.viewport.SetContent(m.output)
		}

	case logTailMsg:
		m.running = false
		m.err = msg.err
		if msg.err == nil {
			if len(msg.lines) == 0 {
				m.output = statusBarStyle.Render("log is empty")
			} else {
				m.output = resultStyle.Render(strings.Join(msg.lines, "\n"))
			}
			m.viewport.SetContent(m.output)
			m.viewport.GotoBottom()
		}

	case spinner.TickMsg:
		if m.running {
			m.spinner, cmd = m.spinner.Update(msg)
			cmds = append(cmds, cmd)
		}
	}

	// Forward remaining input to the focused field.
	if fields := m.inputs[m.panel]; len(fields) > 0 && m.focus < len(fields) {
		m.inputs[m.panel][m.focus], cmd = m.inputs[m.panel][m.focus].Update(msg)
		cmds = append(cmds, cmd)
	}
	if m.ready {
		m.viewport, cmd = m.viewport.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

func (m *Model) refocus() {
	for p := Panel(0); p < panelCount; p++ {
		for i := range m.inputs[p] {
			if p == m.panel && i == m.focus {
				m.inputs[p][i].Focus()
			} else {
				m.inputs[p][i].Blur()
			}
		}
	}
}

// runPrimary dispatches the enter key to the active panel's main action.
func (m Model) runPrimary() (tea.Model, tea.Cmd) {
	switch m.panel {
	case PanelText:
		m.running = true
		return m, tea.Batch(m.spinner.Tick, m.injectCmd())
	case PanelFiles:
		m.running = true
		return m, tea.Batch(m.spinner.Tick, m.generateCmd())
	case PanelRename:
		m.running = true
		return m, tea.Batch(m.spinner.Tick, m.renameCmd(false))
	case PanelChecksum:
		m.running = true
		return m, tea.Batch(m.spinner.Tick, m.checksumCmd())
	case PanelLog:
		return m, m.tailLogCmd()
	}
	return m, nil
}

func (m Model) value(panel Panel, field int) string {
	return strings.TrimSpace(m.inputs[panel][field].Value())
}

// View renders the UI.
func (m Model) View() string {
	if !m.ready {
		return "loading..."
	}

	var s strings.Builder
	s.WriteString(m.renderHeader())
	s.WriteString("\n\n")
	s.WriteString(m.renderForm())
	s.WriteString("\n")
	s.WriteString(m.viewport.View())
	s.WriteString("\n")
	s.WriteString(m.renderFooter())
	return s.String()
}

func (m Model) renderHeader() string {
	var tabs []string
	for i, title := range panelTitles {
		if Panel(i) == m.panel {
			tabs = append(tabs, activeTabStyle.Render(title))
		} else {
			tabs = append(tabs, tabStyle.Render(title))
		}
	}
	title := titleStyle.Render("fsutils")
	tabLine := lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
	return lipgloss.JoinVertical(lipgloss.Left, title, tabLine)
}

func (m Model) renderForm() string {
	var s strings.Builder

	labels := map[Panel][]string{
		PanelText:     {"Folder", "Text", "Extensions", "Max size (MB)"},
		PanelFiles:    {"Folder", "Count", "Extension"},
		PanelRename:   {"Folder", "Pattern", "Extensions"},
		PanelChecksum: {"Folder"},
		PanelLog:      nil,
	}

	for i, in := range m.inputs[m.panel] {
		style := labelStyle
		if i == m.focus {
			style = focusedLabelStyle
		}
		s.WriteString(style.Render(labels[m.panel][i]))
		s.WriteString(in.View())
		s.WriteString("\n")
	}

	s.WriteString(m.renderOptions())
	return s.String()
}

func (m Model) renderOptions() string {
	onOff := func(b bool) string {
		if b {
			return successStyle.Render("on")
		}
		return statusBarStyle.Render("off")
	}

	switch m.panel {
	case PanelText:
		return statusBarStyle.Render("position: ") + resultStyle.Render(positionNames[m.position]) +
			statusBarStyle.Render("  backup: ") + onOff(m.backup) +
			statusBarStyle.Render("  recursive: ") + onOff(m.recursive) + "\n"
	case PanelFiles:
		return statusBarStyle.Render("naming: ") + resultStyle.Render(namingNames[m.naming]) +
			statusBarStyle.Render("  recursive: ") + onOff(m.recursive) + "\n"
	case PanelRename:
		return statusBarStyle.Render("placeholders: {n}=name {d}=date {t}=time {r}=random  recursive: ") +
			onOff(m.recursive) + "\n"
	case PanelChecksum:
		return statusBarStyle.Render("algorithm: ") + resultStyle.Render(algorithmNames[m.algorithm]) +
			statusBarStyle.Render("  duplicates: ") + onOff(m.duplicates) +
			statusBarStyle.Render("  recursive: ") + onOff(m.recursive) + "\n"
	default:
		return ""
	}
}

func (m Model) renderFooter() string {
	var status string
	switch {
	case m.running:
		status = m.spinner.View() + statusBarStyle.Render(" working...")
	case m.err != nil:
		status = errorStyle.Render("error: " + m.err.Error())
	default:
		status = statusBarStyle.Render("ready")
	}

	var help string
	switch m.panel {
	case PanelText:
		help = "enter run · ctrl+x restore backups · ctrl+p position · ctrl+b backup · ctrl+r recursive"
	case PanelFiles:
		help = "enter create files · ctrl+e delete empty · ctrl+n naming · ctrl+r recursive"
	case PanelRename:
		help = "enter preview · ctrl+x execute · ctrl+r recursive"
	case PanelChecksum:
		help = "enter calculate · ctrl+a algorithm · ctrl+d duplicates · ctrl+r recursive"
	case PanelLog:
		help = "ctrl+r refresh · ctrl+x clear"
	}
	help += " · tab switch panel · esc quit"

	return status + "\n" + helpStyle.Render(help)
}

// positionValue maps the cycled option to the engine's Position.
func (m Model) positionValue() inject.Position {
	switch m.position {
	case 1:
		return inject.End
	case 2:
		return inject.RandomLine
	default:
		return inject.Start
	}
}
