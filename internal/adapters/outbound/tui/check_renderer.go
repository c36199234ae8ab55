package tui

import (
	"fmt"
	"strings"

	"github.com/archlint/archlint/internal/domain"
)

// RenderCheckReport renders a baseline-judged run: new violations first,
// then accepted ones, then what got fixed.
func RenderCheckReport(report *domain.CheckReport) string {
	var b strings.Builder

	title := headerStyle.Render("archlint")
	subtitle := dimStyle.Render("Baseline Check")
	var verdict string
	if report.Failed() {
		verdict = failStyle.Bold(true).Render("FAIL")
	} else {
		verdict = passStyle.Bold(true).Render("PASS")
	}
	b.WriteString(boxStyle.Render(title + "\n" + subtitle + "\n\n" + verdict))
	b.WriteString("\n\n")

	if !report.BaselinePresent {
		b.WriteString("  " + dimStyle.Render("no baseline; every violation is new") + "\n")
	}
	if report.ChecksumMismatch {
		b.WriteString("  " + warnStyle.Render("baseline was saved against a different project state") + "\n")
	}
	b.WriteString("\n")

	if len(report.Diff.New) > 0 {
		b.WriteString("  " + titleStyle.Render(fmt.Sprintf("New (%d)", len(report.Diff.New))) + "\n\n")
		for _, v := range report.Diff.New {
			renderViolation(&b, v)
		}
		b.WriteString("\n")
	}
	if len(report.Diff.Existing) > 0 {
		b.WriteString("  " + titleStyle.Render(fmt.Sprintf("Accepted (%d)", len(report.Diff.Existing))) + "\n\n")
		for _, v := range report.Diff.Existing {
			fmt.Fprintf(&b, "    %s %s  %s\n",
				infoTagStyle.Render("·"), fileStyle.Render(v.Module), dimStyle.Render(v.Message))
		}
		b.WriteString("\n")
	}
	if len(report.Diff.Resolved) > 0 {
		b.WriteString("  " + titleStyle.Render(fmt.Sprintf("Resolved (%d)", len(report.Diff.Resolved))) + "\n\n")
		for _, r := range report.Diff.Resolved {
			fmt.Fprintf(&b, "    %s %s  %s\n",
				passStyle.Render("✓"), r.RuleID, faintStyle.Render(shortChecksum(string(r.Signature))))
		}
		b.WriteString("\n")
	}
	if len(report.Diff.New) == 0 && len(report.Diff.Existing) == 0 && len(report.Diff.Resolved) == 0 {
		b.WriteString("  " + passStyle.Render("No violations found.") + "\n")
	}

	return b.String()
}

// RenderSnapshotDiff renders the structural difference between the stored
// snapshot and the current tree.
func RenderSnapshotDiff(diff domain.SnapshotDiff) string {
	var b strings.Builder
	b.WriteString("\n  " + titleStyle.Render("Snapshot Diff") + "\n")
	b.WriteString("  " + separatorLine + "\n\n")

	if diff.IsEmpty() {
		b.WriteString("  " + passStyle.Render("No structural changes.") + "\n")
		return b.String()
	}

	for _, m := range diff.ModulesAdded {
		fmt.Fprintf(&b, "    %s %s\n", passStyle.Render("+"), m)
	}
	for _, m := range diff.ModulesRemoved {
		fmt.Fprintf(&b, "    %s %s\n", failStyle.Render("-"), m)
	}
	fmt.Fprintf(&b, "\n  %s\n", dimStyle.Render(fmt.Sprintf(
		"imports: %d added, %d removed", diff.EdgesAdded, diff.EdgesRemoved)))
	return b.String()
}

// RenderRules renders rules as explain sentences.
func RenderRules(rules []domain.Rule) string {
	if len(rules) == 0 {
		return "  " + dimStyle.Render("No rules configured.") + "\n"
	}
	var b strings.Builder
	b.WriteString("\n  " + titleStyle.Render(fmt.Sprintf("Rules (%d)", len(rules))) + "\n")
	b.WriteString("  " + separatorLine + "\n\n")
	for _, r := range rules {
		fmt.Fprintf(&b, "    %s %s\n", severityTag(r.Severity), titleStyle.Render(r.ID))
		fmt.Fprintf(&b, "         %s\n", dimStyle.Render(r.Describe()))
	}
	return b.String()
}
