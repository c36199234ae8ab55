package cli

import (
	"encoding/json"

	"github.com/spf13/cobra"

	appconfig "github.com/archlint/archlint/internal/adapters/outbound/config"
	"github.com/archlint/archlint/internal/adapters/outbound/extractor"
	"github.com/archlint/archlint/internal/adapters/outbound/gitinfo"
	"github.com/archlint/archlint/internal/adapters/outbound/store"
	"github.com/archlint/archlint/internal/adapters/outbound/walker"
	"github.com/archlint/archlint/internal/application"
)

// newScanService wires the default scan pipeline.
func newScanService() *application.ScanService {
	return application.NewScanService(walker.New(), extractor.New(), appconfig.New())
}

func newCheckService() *application.CheckService {
	return application.NewCheckService(newScanService(), store.NewBaselineStore())
}

func newBaselineService() *application.BaselineService {
	return application.NewBaselineService(newScanService(), store.NewBaselineStore())
}

func newSnapshotService() *application.SnapshotService {
	return application.NewSnapshotService(newScanService(), store.NewSnapshotStore(), gitinfo.New(), version)
}

func renderJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
