// Package cli implements the docbase command-line interface using cobra.
// Commands talk to the core through the driving service interfaces; the
// real adapters are wired up in initServices when the binary starts.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/docbase/internal/adapters/driven/config/file"
	"github.com/custodia-labs/docbase/internal/adapters/driven/storage/blob"
	"github.com/custodia-labs/docbase/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/docbase/internal/chunker"
	"github.com/custodia-labs/docbase/internal/core/ports/driven"
	"github.com/custodia-labs/docbase/internal/core/ports/driving"
	"github.com/custodia-labs/docbase/internal/core/services"
	"github.com/custodia-labs/docbase/internal/logger"
	"github.com/custodia-labs/docbase/internal/parsers/pdf"
)

// version is set by Execute from the build.
var version = "dev"

// Persistent flags.
var (
	verbose bool
	dataDir string
)

// Services used by the commands. Wired by initServices in production and
// replaced with mocks in tests; commands guard against nil.
var (
	ingestService       driving.IngestService
	organizationService driving.OrganizationService
	documentService     driving.DocumentService
	configStore         driven.ConfigStore
)

// autoInit is enabled by Execute so tests driving rootCmd directly keep
// full control over the service variables.
var autoInit bool

var rootCmd = &cobra.Command{
	Use:   "docbase",
	Short: "Multi-tenant PDF knowledge base",
	Long: `Docbase ingests PDF documents into per-organization knowledge bases.

Uploads are validated, parsed with pdftotext, deduplicated by content hash
and split into overlapping text chunks ready for downstream indexing.`,
	SilenceUsage: true,
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		logger.SetVerbose(verbose)
		if autoInit && ingestService == nil {
			return initServices()
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", "", "Data directory (default ~/.docbase/data)")
}

// Execute runs the CLI with the real adapters wired in.
func Execute(v string) error {
	version = v
	autoInit = true
	return rootCmd.Execute()
}

// SetServices injects service implementations. Used by tests.
func SetServices(
	ingest driving.IngestService,
	orgs driving.OrganizationService,
	docs driving.DocumentService,
	cfg driven.ConfigStore,
) {
	ingestService = ingest
	organizationService = orgs
	documentService = docs
	configStore = cfg
}

// initServices builds the production adapter stack: TOML config, SQLite
// metadata store, filesystem blob store, pdftotext parser and the chunker.
func initServices() error {
	cfg, err := file.NewConfigStore("")
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	configStore = cfg

	settings := file.ResolveSettings(cfg)
	if dataDir == "" {
		dataDir = settings.DataDir
	}

	store, err := sqlite.NewStore(dataDir)
	if err != nil {
		return fmt.Errorf("opening metadata store: %w", err)
	}

	blobs, err := blob.NewStore(dataDir)
	if err != nil {
		return fmt.Errorf("opening blob store: %w", err)
	}

	ch, err := chunker.New(settings.ChunkerOptions()...)
	if err != nil {
		return fmt.Errorf("invalid chunking settings: %w", err)
	}

	organizationService = services.NewOrganizationService(store.OrganizationStore(), blobs)
	documentService = services.NewDocumentService(store.DocumentStore(), store.ChunkStore(), blobs)
	ingestService = services.NewIngestService(
		store.OrganizationStore(),
		store.DocumentStore(),
		store,
		blobs,
		pdf.New(),
		ch,
		settings.MaxUploadBytes,
	)

	return nil
}
