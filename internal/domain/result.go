package domain

// ScanReport is the outcome of one full or impact-restricted evaluation.
type ScanReport struct {
	ProjectPath   string       `json:"project_path"`
	IndexChecksum string       `json:"index_checksum"`
	ModuleCount   int          `json:"module_count"`
	EdgeCount     int          `json:"edge_count"`
	Degraded      []string     `json:"degraded,omitempty"`
	Violations    []Violation  `json:"violations"`
	Diagnostics   []Diagnostic `json:"diagnostics,omitempty"`
	Cycles        [][]string   `json:"cycles,omitempty"`
	Impact        *ImpactSet   `json:"impact,omitempty"`
}

// BlockingCount counts violations whose severity fails a run.
func (r ScanReport) BlockingCount() int {
	n := 0
	for _, v := range r.Violations {
		if v.Severity.IsBlocking() {
			n++
		}
	}
	return n
}

// CheckReport is a scan judged against the stored baseline.
type CheckReport struct {
	ScanReport
	Diff             DiffResult `json:"diff"`
	BaselinePresent  bool       `json:"baseline_present"`
	ChecksumMismatch bool       `json:"checksum_mismatch,omitempty"`
}

// Failed reports the run decision: without a baseline any blocking violation
// fails; with one, only new blocking violations do.
func (r CheckReport) Failed() bool {
	if !r.BaselinePresent {
		return r.BlockingCount() > 0
	}
	return r.Diff.Failed()
}
