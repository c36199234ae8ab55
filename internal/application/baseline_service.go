package application

import (
	"context"
	"time"

	"github.com/archlint/archlint/internal/domain"
)

// BaselineService creates baselines from full scans. Impact-restricted runs
// never feed a baseline; a partial violation set would silently accept
// whatever the excluded rules would have found.
type BaselineService struct {
	scans *ScanService
	store domain.BaselineStore
	now   func() time.Time
}

func NewBaselineService(scans *ScanService, store domain.BaselineStore) *BaselineService {
	return &BaselineService{scans: scans, store: store, now: time.Now}
}

// Save runs a full scan and accepts its violations as the new baseline.
func (s *BaselineService) Save(ctx context.Context, projectPath string) (domain.Baseline, *domain.ScanReport, error) {
	out, err := s.scans.Scan(ctx, projectPath)
	if err != nil {
		return domain.Baseline{}, nil, err
	}

	baseline := domain.NewBaseline(out.Index.Checksum, out.Report.Violations, s.now())
	if err := s.store.Save(projectPath, baseline); err != nil {
		return domain.Baseline{}, nil, err
	}
	return baseline, out.Report, nil
}
