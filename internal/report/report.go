// Package report renders console output for the CLI commands.
package report

import (
	"fmt"
	"io"
	"strings"
	"time"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/querygen/internal/catalog"
	"github.com/abhisek/querygen/internal/dataset"
	"github.com/abhisek/querygen/internal/store"
)

// Row is one line of a per-template breakdown.
type Row struct {
	Template string
	Category string
	Count    int
}

// Summary describes a finished generate run.
type Summary struct {
	RunID    string
	Output   string
	Format   string
	Total    int
	Seed     int64
	Duration time.Duration
	Rows     []Row
}

// Print writes s to w, downsampling colors to what w supports.
func Print(w io.Writer, s string) {
	lipgloss.Fprintln(w, s)
}

// Progress is the line printed before generation starts.
func Progress(n int) string {
	return fmt.Sprintf("Generating %d training examples...", n)
}

// RenderSummary renders the output path, total and per-template counts.
func RenderSummary(s Summary) string {
	var b strings.Builder
	b.WriteString(ok.Render("Dataset saved to "+s.Output) + "\n")
	b.WriteString(fmt.Sprintf("Total examples: %d", s.Total) + "\n\n")
	b.WriteString(field("Format", s.Format))
	b.WriteString(field("Seed", fmt.Sprintf("%d", s.Seed)))
	b.WriteString(field("Elapsed", s.Duration.Round(time.Millisecond).String()))
	if s.RunID != "" {
		b.WriteString(field("Run", s.RunID))
	}
	if len(s.Rows) > 0 {
		b.WriteString("\n" + breakdown(s.Rows, s.Total))
	}
	return strings.TrimRight(b.String(), "\n")
}

// RenderCatalog lists every template with its phrasings and query.
func RenderCatalog(c *catalog.Catalog) string {
	var b strings.Builder
	b.WriteString(title.Render(fmt.Sprintf("Catalog: %s (%d templates)", c.Source, len(c.Templates))) + "\n")
	b.WriteString(dim.Render("Instruction: "+c.Instruction) + "\n")

	for _, t := range c.Templates {
		var body strings.Builder
		body.WriteString(header.Render(t.Name))
		if t.Category != "" {
			body.WriteString(dim.Render("  [" + t.Category + "]"))
		}
		body.WriteString("\n")
		for _, q := range t.Questions {
			body.WriteString("  " + q.String() + "\n")
		}
		body.WriteString(value.Render("→ " + t.Query.String()))
		b.WriteString(card.Render(body.String()) + "\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

// RenderRuns renders a table of past runs, most recent first.
func RenderRuns(runs []store.Run) string {
	if len(runs) == 0 {
		return "No runs recorded yet."
	}

	var b strings.Builder
	b.WriteString(header.Render(fmt.Sprintf("%-8s  %-19s  %8s  %-7s  %-20s  %s",
		"ID", "Started", "Examples", "Format", "Seed", "Output")) + "\n")
	b.WriteString(dim.Render(strings.Repeat("─", 90)) + "\n")
	for _, r := range runs {
		id := r.ID
		if len(id) > 8 {
			id = id[:8]
		}
		fmt.Fprintf(&b, "%-8s  %-19s  %8d  %-7s  %-20d  %s\n",
			id,
			r.StartedAt.Local().Format("2006-01-02 15:04:05"),
			r.NumExamples,
			r.Format,
			r.Seed,
			r.Output,
		)
	}
	return strings.TrimRight(b.String(), "\n")
}

// RenderRun renders one run with its template breakdown.
func RenderRun(r *store.Run) string {
	var b strings.Builder
	b.WriteString(title.Render("Run "+r.ID) + "\n")
	b.WriteString(field("Started", r.StartedAt.Local().Format("2006-01-02 15:04:05")))
	b.WriteString(field("Elapsed", r.Duration().String()))
	b.WriteString(field("Examples", fmt.Sprintf("%d", r.NumExamples)))
	b.WriteString(field("Output", r.Output))
	b.WriteString(field("Format", r.Format))
	b.WriteString(field("Seed", fmt.Sprintf("%d", r.Seed)))
	b.WriteString(field("Catalog", r.Catalog))

	rows := make([]Row, 0, len(r.Templates))
	for _, tc := range r.Templates {
		rows = append(rows, Row{Template: tc.Template, Count: tc.Count})
	}
	if len(rows) > 0 {
		b.WriteString("\n" + breakdown(rows, r.NumExamples))
	}
	return strings.TrimRight(b.String(), "\n")
}

// RenderStats renders the inspection summary of a dataset file.
func RenderStats(path string, st dataset.Stats) string {
	var b strings.Builder
	b.WriteString(title.Render("Dataset "+path) + "\n")
	b.WriteString(field("Records", fmt.Sprintf("%d", st.Total)))
	b.WriteString(field("Inputs", fmt.Sprintf("%d distinct", st.DistinctInputs)))
	if len(st.InvalidOutputs) == 0 {
		b.WriteString(field("Outputs", ok.Render("all valid JSON objects")))
	} else {
		b.WriteString(field("Outputs", fmt.Sprintf("%d invalid (records %s)",
			len(st.InvalidOutputs), joinInts(st.InvalidOutputs, 10))))
	}

	if len(st.Instructions) > 0 {
		b.WriteString("\n" + header.Render("Instructions") + "\n")
		for _, vc := range st.Instructions {
			fmt.Fprintf(&b, "%6d  %s\n", vc.Count, vc.Value)
		}
	}
	if len(st.Fields) > 0 {
		b.WriteString("\n" + header.Render("Query fields") + "\n")
		for _, vc := range st.Fields {
			fmt.Fprintf(&b, "%6d  %s\n", vc.Count, vc.Value)
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

// joinInts joins at most limit values, eliding the rest.
func joinInts(vs []int, limit int) string {
	parts := make([]string, 0, min(len(vs), limit)+1)
	for i, v := range vs {
		if i == limit {
			parts = append(parts, "...")
			break
		}
		parts = append(parts, fmt.Sprintf("%d", v))
	}
	return strings.Join(parts, ", ")
}

func field(name, v string) string {
	return label.Render(name) + " " + value.Render(v) + "\n"
}

func breakdown(rows []Row, total int) string {
	var b strings.Builder
	b.WriteString(header.Render(fmt.Sprintf("%-20s  %-16s  %6s  %6s", "Template", "Category", "Count", "Share")) + "\n")
	b.WriteString(dim.Render(strings.Repeat("─", 56)) + "\n")
	for _, r := range rows {
		share := 0.0
		if total > 0 {
			share = 100 * float64(r.Count) / float64(total)
		}
		fmt.Fprintf(&b, "%-20s  %-16s  %6d  %5.1f%%\n", r.Template, r.Category, r.Count, share)
	}
	return b.String()
}
