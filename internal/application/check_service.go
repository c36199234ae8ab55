package application

import (
	"context"

	"github.com/archlint/archlint/internal/domain"
)

// CheckService runs a scan and judges it against the stored baseline.
type CheckService struct {
	scans     *ScanService
	baselines domain.BaselineStore
}

func NewCheckService(scans *ScanService, baselines domain.BaselineStore) *CheckService {
	return &CheckService{scans: scans, baselines: baselines}
}

// Check evaluates the project and partitions the violations against the
// baseline. Without a baseline every violation counts as new.
func (s *CheckService) Check(ctx context.Context, projectPath string) (*domain.CheckReport, error) {
	out, err := s.scans.Scan(ctx, projectPath)
	if err != nil {
		return nil, err
	}

	report := &domain.CheckReport{ScanReport: *out.Report}

	baseline, err := s.baselines.Load(projectPath)
	if err != nil {
		return nil, err
	}
	if baseline == nil {
		report.Diff.New = out.Report.Violations
		return report, nil
	}

	report.BaselinePresent = true
	if !baseline.MatchesChecksum(out.Index.Checksum) {
		// Stale baselines still apply; signatures are line-independent. The
		// mismatch is surfaced so the user knows a refresh is due.
		report.ChecksumMismatch = true
	}
	report.Diff = domain.Diff(out.Report.Violations, *baseline)
	return report, nil
}
