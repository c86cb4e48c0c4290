package ui

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/vietdv277/cirrus/pkg/types"
)

const (
	listHeight       = 8
	detailLabelWidth = 13
	minWidth         = 60
	maxWidth         = 120
	// Fixed column widths
	colWidthID    = 36
	colWidthState = 12
)

// item is one selectable row
type item struct {
	id      string
	name    string
	state   string
	details [][2]string
}

func imageItem(img types.Image) item {
	size := "-"
	if img.Size != nil {
		size = FormatBytes(*img.Size)
	}
	return item{
		id:    img.GetID(),
		name:  img.GetName(),
		state: img.GetState(),
		details: [][2]string{
			{"ID:", img.GetID()},
			{"Name:", img.GetName()},
			{"State:", img.GetState()},
			{"Size:", size},
			{"Replication:", formatOptional(img.GetReplicationType())},
			{"Progress:", formatOptional(img.GetReplicationProgress())},
			{"Seeding:", formatOptional(img.GetSeedingProgress())},
			{"Settings:", strconv.Itoa(len(img.Settings))},
		},
	}
}

func clusterItem(c types.Cluster) item {
	workers := "-"
	if c.WorkerCount != nil {
		workers = strconv.Itoa(*c.WorkerCount)
	}
	return item{
		id:    c.GetID(),
		name:  c.GetName(),
		state: c.GetState(),
		details: [][2]string{
			{"ID:", c.GetID()},
			{"Name:", c.GetName()},
			{"State:", c.GetState()},
			{"Type:", formatOptional(c.GetType())},
			{"Workers:", workers},
			{"Master IP:", formatOptional(c.GetProperty(types.PropertyMasterIP))},
			{"DNS:", formatOptional(c.GetProperty(types.PropertyDNS))},
			{"Gateway:", formatOptional(c.GetProperty(types.PropertyGateway))},
		},
	}
}

// Model represents the bubbletea model for resource selection
type Model struct {
	noun         string
	items        []item
	filtered     []int // indexes into items
	cursor       int
	offset       int // for scrolling
	search       string
	selected     int
	quitting     bool
	cancelled    bool
	termWidth    int
	contentWidth int   // width inside the box (excluding borders)
	colWidths    []int // [ID, State, Name]
}

func newModel(noun string, items []item) Model {
	m := Model{
		noun:      noun,
		items:     items,
		selected:  -1,
		termWidth: 80, // default
	}
	m.filter()
	m.calculateWidths()
	return m
}

// calculateWidths computes responsive column widths based on terminal size
func (m *Model) calculateWidths() {
	m.contentWidth = m.termWidth - 2
	if m.contentWidth < minWidth {
		m.contentWidth = minWidth
	}
	if m.contentWidth > maxWidth {
		m.contentWidth = maxWidth
	}

	// cursor(3) + ID + spacing(2) + State + spacing(2) + Name
	fixedWidth := 3 + colWidthID + 2 + colWidthState + 2
	nameWidth := m.contentWidth - fixedWidth
	if nameWidth < 10 {
		nameWidth = 10
	}
	m.colWidths = []int{colWidthID, colWidthState, nameWidth}
}

// Init implements tea.Model
func (m Model) Init() tea.Cmd {
	return tea.WindowSize()
}

// Update implements tea.Model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.termWidth = msg.Width
		m.calculateWidths()
		return m, nil

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			m.quitting = true
			m.cancelled = true
			return m, tea.Quit

		case tea.KeyEnter:
			if len(m.filtered) > 0 {
				m.selected = m.filtered[m.cursor]
				m.quitting = true
				return m, tea.Quit
			}

		case tea.KeyUp:
			if m.cursor > 0 {
				m.cursor--
				if m.cursor < m.offset {
					m.offset = m.cursor
				}
			}

		case tea.KeyDown:
			if m.cursor < len(m.filtered)-1 {
				m.cursor++
				if m.cursor >= m.offset+listHeight {
					m.offset = m.cursor - listHeight + 1
				}
			}

		case tea.KeyBackspace:
			if len(m.search) > 0 {
				m.search = m.search[:len(m.search)-1]
				m.filter()
			}

		case tea.KeyRunes:
			m.search += string(msg.Runes)
			m.filter()
		}
	}

	return m, nil
}

// filter applies the search query to the items
func (m *Model) filter() {
	query := strings.ToLower(m.search)
	m.filtered = m.filtered[:0]
	for i, it := range m.items {
		if query == "" ||
			strings.Contains(strings.ToLower(it.name), query) ||
			strings.Contains(strings.ToLower(it.id), query) ||
			strings.Contains(strings.ToLower(it.state), query) {
			m.filtered = append(m.filtered, i)
		}
	}
	if m.cursor >= len(m.filtered) {
		if len(m.filtered) > 0 {
			m.cursor = len(m.filtered) - 1
		} else {
			m.cursor = 0
		}
	}
	m.offset = 0
}

func (m Model) blankLine(sb *strings.Builder) {
	sb.WriteString(BorderStyle.Render(Vertical))
	sb.WriteString(strings.Repeat(" ", m.contentWidth))
	sb.WriteString(BorderStyle.Render(Vertical))
	sb.WriteString("\n")
}

// View implements tea.Model
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var sb strings.Builder
	w := m.contentWidth

	sb.WriteString(BorderStyle.Render(TopLeft + strings.Repeat(Horizontal, w) + TopRight))
	sb.WriteString("\n")

	sb.WriteString(BorderStyle.Render(Vertical))
	sb.WriteString(NameStyle.Render(padRight(" > "+m.search, w)))
	sb.WriteString(BorderStyle.Render(Vertical))
	sb.WriteString("\n")
	m.blankLine(&sb)

	visibleEnd := m.offset + listHeight
	if visibleEnd > len(m.filtered) {
		visibleEnd = len(m.filtered)
	}
	for i := m.offset; i < visibleEnd; i++ {
		sb.WriteString(m.renderRow(i))
	}
	for i := len(m.filtered); i < m.offset+listHeight; i++ {
		m.blankLine(&sb)
	}
	m.blankLine(&sb)

	sb.WriteString(BorderStyle.Render(LeftT + strings.Repeat(Horizontal, w) + RightT))
	sb.WriteString("\n")

	sb.WriteString(m.renderDetailsPanel())

	sb.WriteString(BorderStyle.Render(BottomLeft + strings.Repeat(Horizontal, w) + BottomRight))
	sb.WriteString("\n")

	sb.WriteString(m.renderStatusBar())
	return sb.String()
}

func (m Model) renderRow(idx int) string {
	var sb strings.Builder
	it := m.items[m.filtered[idx]]
	w := m.contentWidth

	sb.WriteString(BorderStyle.Render(Vertical))

	var line strings.Builder
	if idx == m.cursor {
		line.WriteString(" > ")
	} else {
		line.WriteString("   ")
	}
	plainWidth := 3

	line.WriteString(IDStyle.Render(padRight(it.id, m.colWidths[0])))
	line.WriteString("  ")
	plainWidth += m.colWidths[0] + 2

	indicator, style := stateStyle(it.state)
	line.WriteString(style.Render(padRight(indicator+" "+formatOptional(it.state), m.colWidths[1])))
	line.WriteString("  ")
	plainWidth += m.colWidths[1] + 2

	line.WriteString(NameStyle.Render(padRight(it.name, m.colWidths[2])))
	plainWidth += m.colWidths[2]

	if plainWidth < w {
		line.WriteString(strings.Repeat(" ", w-plainWidth))
	}

	sb.WriteString(line.String())
	sb.WriteString(BorderStyle.Render(Vertical))
	sb.WriteString("\n")
	return sb.String()
}

func (m Model) renderDetailsPanel() string {
	var sb strings.Builder
	w := m.contentWidth

	title := " " + strings.ToUpper(m.noun[:1]) + m.noun[1:] + " Details"
	sb.WriteString(BorderStyle.Render(Vertical))
	sb.WriteString(HeaderStyle.Render(padRight(title, w)))
	sb.WriteString(BorderStyle.Render(Vertical))
	sb.WriteString("\n")

	sb.WriteString(BorderStyle.Render(Vertical))
	sb.WriteString(MutedStyle.Render(padRight(" "+strings.Repeat(Horizontal, 20), w)))
	sb.WriteString(BorderStyle.Render(Vertical))
	sb.WriteString("\n")

	if len(m.filtered) == 0 {
		sb.WriteString(BorderStyle.Render(Vertical))
		sb.WriteString(MutedStyle.Render(padRight(fmt.Sprintf(" No %ss found", m.noun), w)))
		sb.WriteString(BorderStyle.Render(Vertical))
		sb.WriteString("\n")
		for i := 0; i < 8; i++ {
			m.blankLine(&sb)
		}
	} else {
		it := m.items[m.filtered[m.cursor]]
		for _, d := range it.details {
			sb.WriteString(BorderStyle.Render(Vertical))

			labelText := padRight(d[0], detailLabelWidth)
			valueText := d[1]
			maxValueWidth := w - 1 - detailLabelWidth
			if runewidth.StringWidth(valueText) > maxValueWidth {
				valueText = runewidth.Truncate(valueText, maxValueWidth, "...")
			}
			plainWidth := 1 + detailLabelWidth + runewidth.StringWidth(valueText)

			var style lipgloss.Style = ValueStyle
			if d[0] == "State:" {
				_, style = stateStyle(d[1])
			}
			line := MutedStyle.Render(" "+labelText) + style.Render(valueText)
			if plainWidth < w {
				line += strings.Repeat(" ", w-plainWidth)
			}

			sb.WriteString(line)
			sb.WriteString(BorderStyle.Render(Vertical))
			sb.WriteString("\n")
		}
	}

	m.blankLine(&sb)
	return sb.String()
}

func (m Model) renderStatusBar() string {
	var sb strings.Builder
	w := m.contentWidth + 2

	countInfo := fmt.Sprintf("  %d/%d %ss", len(m.filtered), len(m.items), m.noun)
	hintsPlain := "[Enter:select] [Esc:cancel]"

	padding := w - runewidth.StringWidth(countInfo) - runewidth.StringWidth(hintsPlain)

	sb.WriteString(countInfo)
	if padding > 0 {
		sb.WriteString(strings.Repeat(" ", padding))
	}
	sb.WriteString(HintStyle.Render(hintsPlain))
	sb.WriteString("\n")
	return sb.String()
}

func run(noun string, items []item) (int, error) {
	if len(items) == 0 {
		return -1, fmt.Errorf("no %ss available", noun)
	}

	p := tea.NewProgram(newModel(noun, items))
	finalModel, err := p.Run()
	if err != nil {
		return -1, fmt.Errorf("error running selector: %w", err)
	}

	result := finalModel.(Model)
	if result.cancelled || result.selected < 0 {
		return -1, fmt.Errorf("selection cancelled")
	}
	return result.selected, nil
}

// SelectImage displays an interactive selector and returns the chosen image
func SelectImage(images []types.Image) (*types.Image, error) {
	items := make([]item, len(images))
	for i, img := range images {
		items[i] = imageItem(img)
	}
	idx, err := run("image", items)
	if err != nil {
		return nil, err
	}
	return &images[idx], nil
}

// SelectCluster displays an interactive selector and returns the chosen
// cluster
func SelectCluster(clusters []types.Cluster) (*types.Cluster, error) {
	items := make([]item, len(clusters))
	for i, c := range clusters {
		items[i] = clusterItem(c)
	}
	idx, err := run("cluster", items)
	if err != nil {
		return nil, err
	}
	return &clusters[idx], nil
}
