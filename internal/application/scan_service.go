package application

import (
	"context"
	"fmt"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/archlint/archlint/internal/domain"
)

// ScanService orchestrates the scan pipeline:
// load config -> walk sources -> extract modules -> build index -> evaluate.
type ScanService struct {
	walker    domain.SourceWalker
	extractor domain.ModuleExtractor
	loader    domain.ConfigLoader
}

func NewScanService(
	walker domain.SourceWalker,
	extractor domain.ModuleExtractor,
	loader domain.ConfigLoader,
) *ScanService {
	return &ScanService{
		walker:    walker,
		extractor: extractor,
		loader:    loader,
	}
}

// ScanOutput bundles the report with the index and config that produced it,
// for callers that keep working with them (baseline save, snapshots, impact).
type ScanOutput struct {
	Report *domain.ScanReport
	Index  *domain.ProjectIndex
	Config domain.Config
	Rules  []domain.Rule
}

// Scan runs a full evaluation of the project.
func (s *ScanService) Scan(ctx context.Context, projectPath string) (*ScanOutput, error) {
	return s.scan(ctx, projectPath, nil)
}

// Impact computes the impact set of the changed files and evaluates only the
// rules whose verdict can depend on it. Violations of unselected rules are
// unchanged from the previous run by construction.
func (s *ScanService) Impact(ctx context.Context, projectPath string, changedFiles []string, depth int) (*ScanOutput, error) {
	return s.scan(ctx, projectPath, &impactRequest{files: changedFiles, depth: depth})
}

type impactRequest struct {
	files []string
	depth int
}

func (s *ScanService) scan(ctx context.Context, projectPath string, impact *impactRequest) (*ScanOutput, error) {
	cfg, err := s.loader.Load(projectPath)
	if err != nil {
		return nil, err
	}
	rules, err := cfg.CompiledRules()
	if err != nil {
		return nil, err
	}

	files, err := s.walker.Walk(filepath.Join(projectPath, cfg.SourceRoot), cfg.Exclude)
	if err != nil {
		return nil, fmt.Errorf("walking sources: %w", err)
	}

	descriptors, diagnostics, degraded, err := s.extractAll(ctx, files)
	if err != nil {
		return nil, err
	}

	idx, err := domain.BuildIndex(descriptors, cfg.LayerMapping())
	if err != nil {
		return nil, err
	}

	report := &domain.ScanReport{
		ProjectPath:   projectPath,
		IndexChecksum: idx.Checksum,
		ModuleCount:   len(idx.Modules),
		EdgeCount:     len(idx.Edges),
		Degraded:      degraded,
		Diagnostics:   diagnostics,
		Cycles:        domain.NewGraph(idx).Cycles(),
	}

	evalRules := rules
	if impact != nil {
		set := domain.Propagate(idx, changedModules(idx, cfg.SourceRoot, impact.files), impact.depth)
		report.Impact = &set
		evalRules = domain.SelectRules(idx, rules, set)
	}

	res := domain.Evaluate(idx, evalRules, domain.EvalOptions{
		MatchExternalGlob: cfg.MatchExternalGlob(),
		Parallel:          cfg.Options.Parallel,
	})
	report.Violations = res.Violations
	for _, perr := range res.Errors {
		report.Diagnostics = append(report.Diagnostics, domain.DiagnosticFor(perr))
	}

	return &ScanOutput{Report: report, Index: idx, Config: cfg, Rules: rules}, nil
}

// extractAll parses every file concurrently. Parse failures degrade the file
// into a stub descriptor and a diagnostic; only I/O failures abort the scan.
func (s *ScanService) extractAll(ctx context.Context, files []domain.SourceFile) ([]*domain.ModuleDescriptor, []domain.Diagnostic, []string, error) {
	descriptors := make([]*domain.ModuleDescriptor, len(files))
	errs := make([]error, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())
	for i, f := range files {
		g.Go(func() error {
			desc, err := s.extractor.Extract(gctx, f)
			if desc == nil && err != nil {
				return fmt.Errorf("extracting %s: %w", f.RelPath, err)
			}
			descriptors[i] = desc
			errs[i] = err
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, nil, nil, err
	}

	var (
		diagnostics []domain.Diagnostic
		degraded    []string
	)
	for i, err := range errs {
		if err != nil {
			diagnostics = append(diagnostics, domain.DiagnosticFor(err))
		}
		if descriptors[i].Degraded {
			degraded = append(degraded, descriptors[i].Path)
		}
	}
	sort.Strings(degraded)
	return descriptors, diagnostics, degraded, nil
}

// changedModules maps changed file paths onto canonical module paths,
// dropping files outside the index. Paths may be given relative to the
// project root or to the source root.
func changedModules(idx *domain.ProjectIndex, sourceRoot string, changedFiles []string) []string {
	var modules []string
	for _, f := range changedFiles {
		rel := filepath.ToSlash(f)
		if m := idx.ModuleForFile(rel); m != "" {
			modules = append(modules, m)
			continue
		}
		if sourceRoot != "" && sourceRoot != "." {
			if trimmed, ok := strings.CutPrefix(rel, filepath.ToSlash(sourceRoot)+"/"); ok {
				if m := idx.ModuleForFile(trimmed); m != "" {
					modules = append(modules, m)
				}
			}
		}
	}
	return modules
}
