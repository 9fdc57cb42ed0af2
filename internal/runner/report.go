package runner

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/lunarepo/lunar/internal/graph"
	"github.com/lunarepo/lunar/internal/util"
)

const (
	reportWidth     = 100
	stderrTailLines = 5
)

var (
	passedStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	failedStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	invalidStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("13"))
	cancelledStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	mutedStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	targetStyle    = lipgloss.NewStyle().Bold(true)
)

// Report is the final outcome of a run: every node's result, in node order.
type Report struct {
	graph *graph.Graph
	nodes []int

	Passed    int
	Failed    int
	Invalid   int
	Cancelled int
}

// NewReport builds a report from the graph's recorded results.
func NewReport(g *graph.Graph) *Report {
	results := g.Results()
	nodes := make([]int, 0, len(results))
	for node := range results {
		nodes = append(nodes, node)
	}
	sort.Ints(nodes)

	r := &Report{graph: g, nodes: nodes}
	for _, node := range nodes {
		switch results[node].Status {
		case graph.StatusPassed:
			r.Passed++
		case graph.StatusFailed:
			r.Failed++
		case graph.StatusInvalid:
			r.Invalid++
		case graph.StatusCancelled:
			r.Cancelled++
		}
	}
	return r
}

// Success reports whether every executed task passed.
func (r *Report) Success() bool {
	return r.Failed == 0 && r.Invalid == 0 && r.Cancelled == 0
}

// Duration returns the wall time spanned by the earliest start and the
// latest end across all results.
func (r *Report) Duration() time.Duration {
	var earliest time.Time
	var latest time.Time
	for _, node := range r.nodes {
		result := r.graph.Result(node)
		if earliest.IsZero() || result.StartTime.Before(earliest) {
			earliest = result.StartTime
		}
		if result.EndTime != nil && result.EndTime.After(latest) {
			latest = *result.EndTime
		}
	}
	if earliest.IsZero() || latest.IsZero() {
		return 0
	}
	return latest.Sub(earliest)
}

// Render formats the report for terminal display: one line per task, stderr
// tails for failures, and a summary footer.
func (r *Report) Render() string {
	var b strings.Builder

	for _, node := range r.nodes {
		result := r.graph.Result(node)
		target := r.graph.Target(node)

		line := fmt.Sprintf("%s %s %s",
			statusGlyph(result.Status),
			targetStyle.Render(target.String()),
			mutedStyle.Render(result.Duration().Round(time.Millisecond).String()),
		)
		b.WriteString(util.TruncateANSI(line, reportWidth))
		b.WriteByte('\n')

		if result.Status == graph.StatusFailed {
			for _, tail := range util.LastLines(result.Stderr, stderrTailLines) {
				b.WriteString("  ")
				b.WriteString(util.TruncateANSI(mutedStyle.Render(tail), reportWidth-2))
				b.WriteByte('\n')
			}
		}
		if result.Status == graph.StatusInvalid && result.Err != nil {
			b.WriteString("  ")
			b.WriteString(util.TruncateANSI(invalidStyle.Render(result.Err.Error()), reportWidth-2))
			b.WriteByte('\n')
		}
	}

	b.WriteByte('\n')
	b.WriteString(r.summaryLine())
	b.WriteByte('\n')
	return b.String()
}

func (r *Report) summaryLine() string {
	parts := []string{passedStyle.Render(fmt.Sprintf("%d passed", r.Passed))}
	if r.Failed > 0 {
		parts = append(parts, failedStyle.Render(fmt.Sprintf("%d failed", r.Failed)))
	}
	if r.Invalid > 0 {
		parts = append(parts, invalidStyle.Render(fmt.Sprintf("%d invalid", r.Invalid)))
	}
	if r.Cancelled > 0 {
		parts = append(parts, cancelledStyle.Render(fmt.Sprintf("%d cancelled", r.Cancelled)))
	}
	parts = append(parts, mutedStyle.Render(fmt.Sprintf("in %s", r.Duration().Round(time.Millisecond))))
	return strings.Join(parts, ", ")
}

func statusGlyph(status graph.Status) string {
	switch status {
	case graph.StatusPassed:
		return passedStyle.Render("✓")
	case graph.StatusFailed:
		return failedStyle.Render("✗")
	case graph.StatusInvalid:
		return invalidStyle.Render("!")
	case graph.StatusCancelled:
		return cancelledStyle.Render("−")
	}
	return "?"
}
