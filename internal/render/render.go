// Package render prints derivation results for people and for scripts.
package render

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/jmcampanini/branchr/internal/issue"
	"github.com/jmcampanini/branchr/internal/links"
)

// Result is everything derived for one branch.
type Result struct {
	Issue   *issue.Info  `json:"issue,omitempty"`
	Branch  string       `json:"branch"`
	Command string       `json:"command"`
	Links   []links.Link `json:"links"`
}

// TextOptions tunes the human-readable output.
type TextOptions struct {
	HideCommand bool
	// Hyperlinks renders each link as an OSC 8 "<label>: Link" anchor. Only
	// enable it when writing to a terminal.
	Hyperlinks bool
}

var (
	purple = lipgloss.Color("99")
	gray   = lipgloss.Color("245")
)

// Text writes r as labelled lines.
func Text(w io.Writer, r Result, opts TextOptions) error {
	lr := lipgloss.NewRenderer(w)
	keyStyle := lr.NewStyle().Foreground(purple).Bold(true)
	fieldStyle := lr.NewStyle().Foreground(gray)
	valueStyle := lr.NewStyle().Bold(true)

	var sb strings.Builder

	if r.Issue != nil {
		sb.WriteString(keyStyle.Render(r.Issue.IssueKey))
		sb.WriteString("  ")
		sb.WriteString(r.Issue.StoryName)
		sb.WriteString("\n")
		if r.Issue.URL != "" {
			sb.WriteString(fieldStyle.Render(r.Issue.URL))
			sb.WriteString("\n")
		}
		sb.WriteString("\n")
	}

	sb.WriteString(fieldStyle.Render(fmt.Sprintf("%-8s", "Branch")))
	sb.WriteString(" ")
	sb.WriteString(valueStyle.Render(r.Branch))
	sb.WriteString("\n")

	if !opts.HideCommand {
		sb.WriteString(fieldStyle.Render(fmt.Sprintf("%-8s", "Command")))
		sb.WriteString(" ")
		sb.WriteString(r.Command)
		sb.WriteString("\n")
	}

	if len(r.Links) > 0 {
		sb.WriteString("\n")
		for _, link := range r.Links {
			sb.WriteString(LinkLine(link, opts.Hyperlinks))
			sb.WriteString("\n")
		}
	}

	_, err := fmt.Fprint(w, sb.String())
	return err
}

// LinkLine formats one link as "<label>: Link <url>". With hyperlinks the
// "<label>: Link" part is a clickable terminal anchor.
func LinkLine(link links.Link, hyperlinks bool) string {
	anchor := link.Label + ": Link"
	if hyperlinks {
		anchor = Hyperlink(link.URL, anchor)
	}
	return anchor + "  " + link.URL
}

// Hyperlink wraps text in an OSC 8 hyperlink escape sequence.
func Hyperlink(url, text string) string {
	return "\x1b]8;;" + url + "\x1b\\" + text + "\x1b]8;;\x1b\\"
}

// JSON writes r as indented JSON.
func JSON(w io.Writer, r Result) error {
	if r.Links == nil {
		r.Links = []links.Link{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(r); err != nil {
		return fmt.Errorf("failed to encode result: %w", err)
	}
	return nil
}

// LinksTable writes resolved links as a bordered table.
func LinksTable(w io.Writer, resolved []links.Link) error {
	if len(resolved) == 0 {
		_, err := fmt.Fprintln(w, "No quick links configured.")
		return err
	}

	lr := lipgloss.NewRenderer(w)
	headerStyle := lr.NewStyle().Foreground(purple).Bold(true).Align(lipgloss.Center)
	cellStyle := lr.NewStyle().Padding(0, 1)

	rows := make([][]string, len(resolved))
	for i, link := range resolved {
		rows[i] = []string{link.Label, link.URL}
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lr.NewStyle().Foreground(purple)).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		}).
		Headers("Label", "URL").
		Rows(rows...)

	_, err := fmt.Fprintln(w, t)
	return err
}
