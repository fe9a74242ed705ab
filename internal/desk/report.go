package desk

import (
	"fmt"
	"strings"

	"github.com/aretw0/storedesk/pkg/domain"
)

// table renders a Markdown table for Console.Render.
type table struct {
	title  string
	header []string
	rows   [][]string
}

func newTable(title string, header ...string) *table {
	return &table{title: title, header: header}
}

func (t *table) add(cells ...any) {
	row := make([]string, len(cells))
	for i, c := range cells {
		row[i] = cell(fmt.Sprint(c))
	}
	t.rows = append(t.rows, row)
}

func (t *table) String() string {
	var sb strings.Builder
	if t.title != "" {
		fmt.Fprintf(&sb, "### %s\n\n", t.title)
	}
	sb.WriteString("| " + strings.Join(t.header, " | ") + " |\n")
	sb.WriteString("|" + strings.Repeat("---|", len(t.header)) + "\n")
	for _, r := range t.rows {
		sb.WriteString("| " + strings.Join(r, " | ") + " |\n")
	}
	return sb.String()
}

func cell(s string) string {
	s = strings.ReplaceAll(s, "|", "\\|")
	return strings.ReplaceAll(s, "\n", " ")
}

// details renders "Key : value" lines as a Markdown list.
func details(title string, pairs ...string) string {
	var sb strings.Builder
	if title != "" {
		fmt.Fprintf(&sb, "### %s\n\n", title)
	}
	for i := 0; i+1 < len(pairs); i += 2 {
		fmt.Fprintf(&sb, "- **%s**: %s\n", pairs[i], cell(pairs[i+1]))
	}
	return sb.String()
}

func clientSummary(c *domain.Client) string {
	return fmt.Sprintf("%d %s %s %s", c.ID, c.LastName, c.FirstName, c.Email)
}

func productSummary(p *domain.Product) string {
	return fmt.Sprintf("%d %s %s", p.ID, p.Name, p.Price.StringFixed(2))
}

func categorySummary(c *domain.Category) string {
	return fmt.Sprintf("%d %s", c.ID, c.Name)
}

func (d *Desk) orderSummary(o *domain.Order) string {
	return fmt.Sprintf("%d %s %s %s", o.ID, d.formatTime(o), o.ClientName(), o.Total().StringFixed(2))
}

func (d *Desk) formatTime(o *domain.Order) string {
	return o.IssuedAt.Format(d.ui.DateLayout + " 15:04")
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
