package ui

import (
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vietdv277/cirrus/pkg/types"
)

type column struct {
	header string
	width  int
	style  lipgloss.Style
	state  bool // rendered with a state indicator
}

// table renders rows in a styled box
type table struct {
	columns []column
	rows    [][]string
}

func (t *table) border(sb *strings.Builder, left, mid, right string) {
	sb.WriteString(BorderStyle.Render(left))
	for i, c := range t.columns {
		sb.WriteString(BorderStyle.Render(strings.Repeat(Horizontal, c.width+2)))
		if i < len(t.columns)-1 {
			sb.WriteString(BorderStyle.Render(mid))
		}
	}
	sb.WriteString(BorderStyle.Render(right))
	sb.WriteString("\n")
}

func (t *table) render(w io.Writer) {
	var sb strings.Builder

	t.border(&sb, TopLeft, TopT, TopRight)

	sb.WriteString(BorderStyle.Render(Vertical))
	for _, c := range t.columns {
		sb.WriteString(HeaderStyle.Render(" " + padRight(c.header, c.width) + " "))
		sb.WriteString(BorderStyle.Render(Vertical))
	}
	sb.WriteString("\n")

	t.border(&sb, LeftT, Cross, RightT)

	for _, row := range t.rows {
		sb.WriteString(BorderStyle.Render(Vertical))
		for i, c := range t.columns {
			var cell string
			if i < len(row) {
				cell = row[i]
			}
			if c.state {
				sb.WriteString(formatState(cell, c.width))
			} else {
				sb.WriteString(c.style.Render(" " + padRight(formatOptional(cell), c.width) + " "))
			}
			sb.WriteString(BorderStyle.Render(Vertical))
		}
		sb.WriteString("\n")
	}

	t.border(&sb, BottomLeft, BottomT, BottomRight)

	_, _ = fmt.Fprint(w, sb.String())
}

func formatState(state string, width int) string {
	indicator, style := stateStyle(state)
	return style.Render(" " + padRight(indicator+" "+formatOptional(state), width) + " ")
}

func formatOptional(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

// RenderClusters prints clusters in a box table followed by a summary
func RenderClusters(w io.Writer, clusters []types.Cluster) {
	t := &table{columns: []column{
		{header: "ID", width: 36, style: IDStyle},
		{header: "Name", width: 24, style: NameStyle},
		{header: "State", width: 12, state: true},
		{header: "Type", width: 12, style: ValueStyle},
		{header: "Workers", width: 7, style: ValueStyle},
	}}
	for _, c := range clusters {
		workers := ""
		if c.WorkerCount != nil {
			workers = strconv.Itoa(*c.WorkerCount)
		}
		t.rows = append(t.rows, []string{c.GetID(), c.GetName(), c.GetState(), c.GetType(), workers})
	}
	t.render(w)
	printSummary(w, len(clusters), "clusters", func(i int) string { return clusters[i].GetState() })
}

// RenderImages prints images in a box table followed by a summary
func RenderImages(w io.Writer, images []types.Image) {
	t := &table{columns: []column{
		{header: "ID", width: 36, style: IDStyle},
		{header: "Name", width: 28, style: NameStyle},
		{header: "State", width: 12, state: true},
		{header: "Size", width: 10, style: ValueStyle},
		{header: "Replication", width: 16, style: ValueStyle},
		{header: "Progress", width: 8, style: ValueStyle},
	}}
	for _, img := range images {
		size := ""
		if img.Size != nil {
			size = FormatBytes(*img.Size)
		}
		t.rows = append(t.rows, []string{img.GetID(), img.GetName(), img.GetState(), size, img.GetReplicationType(), img.GetReplicationProgress()})
	}
	t.render(w)
	printSummary(w, len(images), "images", func(i int) string { return images[i].GetState() })
}

// RenderVMs prints cluster VMs in a box table
func RenderVMs(w io.Writer, vms []types.VM) {
	t := &table{columns: []column{
		{header: "ID", width: 36, style: IDStyle},
		{header: "Name", width: 32, style: NameStyle},
		{header: "State", width: 12, state: true},
	}}
	for _, vm := range vms {
		t.rows = append(t.rows, []string{vm.GetID(), vm.GetName(), vm.GetState()})
	}
	t.render(w)
	printSummary(w, len(vms), "vms", func(i int) string { return vms[i].GetState() })
}

// RenderTasks prints API tasks in a box table
func RenderTasks(w io.Writer, tasks []types.Task) {
	t := &table{columns: []column{
		{header: "ID", width: 36, style: IDStyle},
		{header: "Operation", width: 24, style: NameStyle},
		{header: "State", width: 12, state: true},
		{header: "Entity", width: 36, style: ValueStyle},
	}}
	for _, task := range tasks {
		t.rows = append(t.rows, []string{task.ID, task.Operation, task.State, task.EntityID})
	}
	t.render(w)
	printSummary(w, len(tasks), "tasks", func(i int) string { return tasks[i].State })
}

// RenderCluster prints the details of one cluster
func RenderCluster(w io.Writer, c *types.Cluster) {
	workers := ""
	if c.WorkerCount != nil {
		workers = strconv.Itoa(*c.WorkerCount)
	}
	rows := [][2]string{
		{"ID:", c.GetID()},
		{"Name:", c.GetName()},
		{"State:", c.GetState()},
		{"Type:", c.GetType()},
		{"Workers:", workers},
	}
	keys := make([]string, 0, len(c.ExtendedProperties))
	for k := range c.ExtendedProperties {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		rows = append(rows, [2]string{k + ":", c.ExtendedProperties[k]})
	}
	renderDetails(w, "Cluster", rows)
}

// RenderImage prints the details of one image
func RenderImage(w io.Writer, img *types.Image) {
	size := ""
	if img.Size != nil {
		size = FormatBytes(*img.Size)
	}
	rows := [][2]string{
		{"ID:", img.GetID()},
		{"Name:", img.GetName()},
		{"State:", img.GetState()},
		{"Size:", size},
		{"Replication:", img.GetReplicationType()},
		{"Progress:", img.GetReplicationProgress()},
		{"Seeding:", img.GetSeedingProgress()},
	}
	for _, s := range img.Settings {
		rows = append(rows, [2]string{s.GetName() + ":", s.GetDefaultValue()})
	}
	renderDetails(w, "Image", rows)
}

func renderDetails(w io.Writer, title string, rows [][2]string) {
	var sb strings.Builder
	sb.WriteString(HeaderStyle.Render(" " + title + " Details"))
	sb.WriteString("\n")
	sb.WriteString(MutedStyle.Render(" " + strings.Repeat(Horizontal, 20)))
	sb.WriteString("\n")
	for _, r := range rows {
		style := ValueStyle
		if r[0] == "State:" {
			_, style = stateStyle(r[1])
		}
		sb.WriteString(MutedStyle.Render(" " + padRight(r[0], detailLabelWidth)))
		sb.WriteString(style.Render(formatOptional(r[1])))
		sb.WriteString("\n")
	}
	_, _ = fmt.Fprint(w, sb.String())
}

func printSummary(w io.Writer, total int, noun string, state func(int) string) {
	counts := make(map[string]int)
	var order []string
	for i := 0; i < total; i++ {
		s := state(i)
		if s == "" {
			continue
		}
		if counts[s] == 0 {
			order = append(order, s)
		}
		counts[s]++
	}

	var parts []string
	for _, s := range order {
		_, style := stateStyle(s)
		parts = append(parts, style.Render(fmt.Sprintf("%d %s", counts[s], strings.ToLower(s))))
	}

	summary := fmt.Sprintf("  %d %s", total, noun)
	if len(parts) > 0 {
		summary += " (" + strings.Join(parts, ", ") + ")"
	}
	_, _ = fmt.Fprintln(w, summary)
}

// FormatBytes renders a byte count with a binary unit
func FormatBytes(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}
