package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/archlint/archlint/internal/domain"
)

// ── Claude-inspired warm palette ──
var (
	accent  = lipgloss.Color("#D97706") // amber
	fg      = lipgloss.Color("#E8E6E3") // warm light gray
	dim     = lipgloss.Color("#6B7280") // muted gray
	faint   = lipgloss.Color("#3F3F46") // very dim
	success = lipgloss.Color("#22C55E") // green
	danger  = lipgloss.Color("#EF4444") // red
	warning = lipgloss.Color("#F59E0B") // amber-yellow
	info    = lipgloss.Color("#8B949E") // soft blue-gray
)

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(accent).
			Align(lipgloss.Center)

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(accent).
			Padding(1, 4).
			Align(lipgloss.Center).
			Width(68)

	dimStyle      = lipgloss.NewStyle().Foreground(dim)
	faintStyle    = lipgloss.NewStyle().Foreground(faint)
	passStyle     = lipgloss.NewStyle().Foreground(success)
	failStyle     = lipgloss.NewStyle().Foreground(danger)
	warnStyle     = lipgloss.NewStyle().Foreground(warning)
	errorTagStyle = lipgloss.NewStyle().Foreground(danger).Bold(true)
	warnTagStyle  = lipgloss.NewStyle().Foreground(warning).Bold(true)
	infoTagStyle  = lipgloss.NewStyle().Foreground(info)
	fileStyle     = lipgloss.NewStyle().Foreground(dim)
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(fg)
	separatorLine = faintStyle.Render(strings.Repeat("─", 64))
)

// RenderScanReport renders a full scan result for terminal output.
func RenderScanReport(report *domain.ScanReport) string {
	var b strings.Builder

	title := headerStyle.Render("archlint")
	subtitle := dimStyle.Render("Architecture Scan")
	counts := fmt.Sprintf("%d modules  %d imports", report.ModuleCount, report.EdgeCount)
	b.WriteString(boxStyle.Render(title + "\n" + subtitle + "\n\n" + titleStyle.Render(counts)))
	b.WriteString("\n\n")

	b.WriteString("  " + dimStyle.Render("index "+shortChecksum(report.IndexChecksum)) + "\n")
	if len(report.Degraded) > 0 {
		b.WriteString("  " + warnStyle.Render(fmt.Sprintf("%d degraded modules", len(report.Degraded))) +
			"  " + faintStyle.Render(strings.Join(report.Degraded, ", ")) + "\n")
	}
	if report.Impact != nil {
		renderImpact(&b, report.Impact)
	}
	b.WriteString("\n")

	renderViolations(&b, report.Violations)
	renderDiagnostics(&b, report.Diagnostics)
	renderCycles(&b, report.Cycles)

	b.WriteString("\n")
	return b.String()
}

func renderViolations(b *strings.Builder, violations []domain.Violation) {
	if len(violations) == 0 {
		b.WriteString("  " + passStyle.Render("No violations found.") + "\n")
		return
	}

	errors, warnings, infos := countSeverities(violations)
	b.WriteString("  ")
	b.WriteString(titleStyle.Render("Violations"))
	b.WriteString("  ")
	if errors > 0 {
		b.WriteString(errorTagStyle.Render(fmt.Sprintf("%d errors", errors)) + "  ")
	}
	if warnings > 0 {
		b.WriteString(warnTagStyle.Render(fmt.Sprintf("%d warnings", warnings)) + "  ")
	}
	if infos > 0 {
		b.WriteString(infoTagStyle.Render(fmt.Sprintf("%d info", infos)))
	}
	b.WriteString("\n\n")

	for _, v := range violations {
		renderViolation(b, v)
	}
}

func renderViolation(b *strings.Builder, v domain.Violation) {
	location := v.Module
	if v.Line > 0 {
		location = fmt.Sprintf("%s:%d", v.Module, v.Line)
	}
	fmt.Fprintf(b, "    %s %s  %s\n", severityTag(v.Severity), fileStyle.Render(location), faintStyle.Render(v.RuleID))
	fmt.Fprintf(b, "         %s\n", dimStyle.Render(v.Message))
}

func renderDiagnostics(b *strings.Builder, diagnostics []domain.Diagnostic) {
	if len(diagnostics) == 0 {
		return
	}
	b.WriteString("\n  " + titleStyle.Render("Diagnostics") + "\n\n")
	for _, d := range diagnostics {
		subject := d.File
		if subject == "" {
			subject = d.RuleID
		}
		fmt.Fprintf(b, "    %s %s  %s\n", warnTagStyle.Render(d.Kind), fileStyle.Render(subject), dimStyle.Render(d.Message))
	}
}

func renderCycles(b *strings.Builder, cycles [][]string) {
	if len(cycles) == 0 {
		return
	}
	b.WriteString("\n  " + titleStyle.Render(fmt.Sprintf("Import Cycles (%d)", len(cycles))) + "\n\n")
	for _, cycle := range cycles {
		fmt.Fprintf(b, "    %s %s\n", failStyle.Render("↻"), strings.Join(cycle, dimStyle.Render(" → ")))
	}
}

func renderImpact(b *strings.Builder, impact *domain.ImpactSet) {
	depth := "unbounded"
	if impact.Depth >= 0 {
		depth = fmt.Sprintf("%d", impact.Depth)
	}
	fmt.Fprintf(b, "  %s\n", dimStyle.Render(fmt.Sprintf(
		"impact: %d changed → %d affected (depth %s)",
		len(impact.Changed), len(impact.Expanded), depth)))
}

// RenderImpactSet lists the affected modules of an impact analysis.
func RenderImpactSet(impact *domain.ImpactSet) string {
	var b strings.Builder
	b.WriteString("\n  " + titleStyle.Render("Impact Set") + "\n")
	b.WriteString("  " + separatorLine + "\n\n")

	changed := make(map[string]bool, len(impact.Changed))
	for _, m := range impact.Changed {
		changed[m] = true
	}
	for _, m := range impact.Expanded {
		marker := infoTagStyle.Render("↳")
		if changed[m] {
			marker = warnStyle.Render("●")
		}
		fmt.Fprintf(&b, "    %s %s\n", marker, m)
	}
	if len(impact.Expanded) == 0 {
		b.WriteString("    " + dimStyle.Render("no modules affected") + "\n")
	}
	return b.String()
}

func severityTag(severity domain.Severity) string {
	switch severity {
	case domain.SeverityError:
		return errorTagStyle.Render("error")
	case domain.SeverityWarning:
		return warnTagStyle.Render("warn ")
	default:
		return infoTagStyle.Render("info ")
	}
}

func countSeverities(violations []domain.Violation) (errors, warnings, infos int) {
	for _, v := range violations {
		switch v.Severity {
		case domain.SeverityError:
			errors++
		case domain.SeverityWarning:
			warnings++
		default:
			infos++
		}
	}
	return
}

func shortChecksum(sum string) string {
	if len(sum) > 12 {
		return sum[:12]
	}
	return sum
}
