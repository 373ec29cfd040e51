package report

import (
	"fmt"
	"math"
	"strings"

	"github.com/bnema/abstats/internal/application"
	"github.com/bnema/abstats/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

const (
	defaultBarWidth    = 20
	branchColumnWidth  = 14
	numericColumnWidth = 10
)

type RenderOptions struct {
	BarWidth int
}

func renderView(report application.Report, opts RenderOptions, s styles) string {
	lines := []string{
		s.title.Render(reportTitle(report.Kind)),
		s.header.Render(fmt.Sprintf("metric: %s  branches: %d", report.Metric, len(report.Individual))),
	}

	if len(report.Individual) == 0 {
		lines = append(lines, s.empty.Render("No branches to report."))
		return lipgloss.JoinVertical(lipgloss.Left, lines...)
	}

	lines = append(lines, s.section.Render(renderIndividual(report.Individual, s)))
	if len(report.Comparative) > 0 {
		lines = append(lines, s.section.Render(renderComparative(report.Comparative, opts, s)))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func reportTitle(kind application.ReportKind) string {
	switch kind {
	case application.ReportKindTwoBranch:
		return "Conversion rate: treatment vs control"
	case application.ReportKindMultiBranch:
		return "Conversion rate: each branch vs best of rest"
	default:
		return "Conversion rate posteriors"
	}
}

func renderIndividual(rows []application.IndividualRow, s styles) string {
	headings := []string{"mean"}
	for _, p := range domain.SummaryProbabilities {
		headings = append(headings, probabilityLabel(p))
	}

	lines := []string{s.heading.Render(padRight("branch", branchColumnWidth) + tableRow(headings))}
	for _, row := range rows {
		cells := []string{string(row.Branch), formatRate(row.Mean)}
		for _, p := range domain.SummaryProbabilities {
			cells = append(cells, quantileCell(row.Quantiles, p, formatRate))
		}
		lines = append(lines, renderCells(cells, s))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func renderComparative(rows []application.ComparativeRow, opts RenderOptions, s styles) string {
	width := opts.BarWidth
	if width <= 0 {
		width = defaultBarWidth
	}

	lines := []string{s.heading.Render("relative uplift")}
	for _, row := range rows {
		uplift := row.Stats.RelativeUplift
		median, _ := uplift.Quantiles.At(0.5)
		title := s.branch.Render(fmt.Sprintf("%s vs %s", row.Branch, row.Baseline))

		medianStyle := s.positive
		if median < 0 {
			medianStyle = s.negative
		}

		summary := lipgloss.JoinHorizontal(
			lipgloss.Top,
			s.cell.Render("median "),
			medianStyle.Render(formatUplift(median)),
			s.cell.Render(fmt.Sprintf("  90%% CI [%s, %s]",
				quantileCell(uplift.Quantiles, 0.05, formatUplift),
				quantileCell(uplift.Quantiles, 0.95, formatUplift))),
			s.cell.Render(fmt.Sprintf("  99%% CI [%s, %s]",
				quantileCell(uplift.Quantiles, 0.005, formatUplift),
				quantileCell(uplift.Quantiles, 0.995, formatUplift))),
		)

		win := lipgloss.JoinHorizontal(
			lipgloss.Top,
			s.cell.Render("P(win) "),
			renderProbabilityBar(row.Stats.ProbWin, width, s),
			" ",
			lipgloss.NewStyle().Foreground(interpolateColor(row.Stats.ProbWin, 0, 1)).Render(fmt.Sprintf("%5.1f%%", 100*row.Stats.ProbWin)),
			s.cell.Render(fmt.Sprintf("  expected loss %s", formatRate(row.Stats.ExpectedLoss))),
		)

		lines = append(lines, title, summary, win)
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func renderCells(cells []string, s styles) string {
	first := s.branch.Render(padRight(cells[0], branchColumnWidth))
	return first + s.cell.Render(tableRow(cells[1:]))
}

func tableRow(cells []string) string {
	var b strings.Builder
	for _, cell := range cells {
		b.WriteString(padLeft(cell, numericColumnWidth))
	}
	return b.String()
}

func quantileCell(q domain.Quantiles, p float64, format func(float64) string) string {
	v, ok := q.At(p)
	if !ok {
		return "n/a"
	}
	return format(v)
}

func probabilityLabel(p float64) string {
	return fmt.Sprintf("%g%%", math.Round(1000*p)/10)
}

func formatRate(v float64) string {
	return fmt.Sprintf("%.4f", v)
}

func formatUplift(v float64) string {
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return fmt.Sprintf("%v", v)
	}
	return fmt.Sprintf("%+.1f%%", 100*v)
}

func renderProbabilityBar(probability float64, width int, s styles) string {
	if width <= 0 {
		return ""
	}

	filled := int(math.Round(float64(width) * clampUnit(probability)))
	empty := width - filled

	return lipgloss.JoinHorizontal(
		lipgloss.Top,
		s.barBracket.Render("["),
		s.barFill.Render(strings.Repeat("=", filled)),
		s.barEmpty.Render(strings.Repeat("-", empty)),
		s.barBracket.Render("]"),
	)
}

func clampUnit(v float64) float64 {
	if v < 0 || math.IsNaN(v) {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func padRight(s string, width int) string {
	if len(s) >= width {
		return s + " "
	}
	return s + strings.Repeat(" ", width-len(s))
}

func padLeft(s string, width int) string {
	if len(s) >= width {
		return " " + s
	}
	return strings.Repeat(" ", width-len(s)) + s
}

// interpolateColor maps value onto the 240..255 greyscale ramp.
func interpolateColor(value, min, max float64) lipgloss.Color {
	if max == min {
		return lipgloss.Color("255")
	}

	normalized := (value - min) / (max - min)
	if normalized < 0 {
		normalized = 0
	}
	if normalized > 1 {
		normalized = 1
	}

	baseColor := 240.0
	targetColor := 255.0
	colorCode := int(baseColor + (targetColor-baseColor)*normalized)

	return lipgloss.Color(fmt.Sprintf("%d", colorCode))
}
