package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/docbase/internal/adapters/driving/watch"
	"github.com/custodia-labs/docbase/internal/core/domain"
)

var ingestCmd = &cobra.Command{
	Use:   "ingest [file.pdf ...]",
	Short: "Ingest PDF files into an organization",
	Long: `Ingest one or more PDF files into an organization's knowledge base.

Each file is validated, parsed, deduplicated by content hash and split into
overlapping text chunks. With --watch, a directory is monitored instead and
PDF files dropped into it are ingested as they arrive.`,
	RunE: runIngest,
}

// Flags for the ingest command.
var (
	ingestOrg string
	watchDir  string
)

func init() {
	ingestCmd.Flags().StringVarP(&ingestOrg, "org", "o", "", "Organization ID or name (required)")
	ingestCmd.Flags().StringVarP(&watchDir, "watch", "w", "", "Watch a directory and ingest PDFs dropped into it")
	rootCmd.AddCommand(ingestCmd)
}

func runIngest(cmd *cobra.Command, args []string) error {
	if ingestService == nil || organizationService == nil {
		return errors.New("ingest service not configured")
	}
	if ingestOrg == "" {
		return errors.New("--org is required")
	}
	if watchDir == "" && len(args) == 0 {
		return errors.New("provide at least one file, or --watch a directory")
	}

	ctx := context.Background()
	org, err := resolveOrganization(ctx, ingestOrg)
	if err != nil {
		return fmt.Errorf("failed to get organization: %w", err)
	}

	if watchDir != "" {
		return runIngestWatch(cmd, org)
	}
	return runIngestFiles(cmd, org, args)
}

// runIngestFiles ingests the given files one by one. A failing file is
// reported and does not stop the rest of the batch.
func runIngestFiles(cmd *cobra.Command, org *domain.Organization, paths []string) error {
	ctx := context.Background()
	var ingested, skipped, failed int

	for _, path := range paths {
		content, err := os.ReadFile(path)
		if err != nil {
			cmd.Printf("FAILED  %s: %v\n", path, err)
			failed++
			continue
		}

		result, err := ingestService.Ingest(ctx, org.ID, content, filepath.Base(path))
		switch {
		case err == nil:
			cmd.Printf("OK      %s: document %s, %d chunks\n", path, result.DocumentID, result.ChunkCount)
			ingested++
		case errors.Is(err, domain.ErrDocumentExists):
			cmd.Printf("SKIPPED %s: already ingested\n", path)
			skipped++
		default:
			cmd.Printf("FAILED  %s: %v\n", path, err)
			failed++
		}
	}

	cmd.Printf("\nIngested %d, skipped %d, failed %d.\n", ingested, skipped, failed)
	if failed > 0 {
		return fmt.Errorf("%d of %d files failed", failed, len(paths))
	}
	return nil
}

// runIngestWatch monitors a drop folder until interrupted.
func runIngestWatch(cmd *cobra.Command, org *domain.Organization) error {
	watcher, err := watch.New(ingestService, org.ID, watchDir,
		watch.WithResultFunc(func(path string, result *domain.IngestResult, err error) {
			switch {
			case err == nil:
				cmd.Printf("OK      %s: document %s, %d chunks\n", path, result.DocumentID, result.ChunkCount)
			case errors.Is(err, domain.ErrDocumentExists):
				cmd.Printf("SKIPPED %s: already ingested\n", path)
			default:
				cmd.Printf("FAILED  %s: %v\n", path, err)
			}
		}))
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cmd.Printf("Watching %s for organization %q. Press Ctrl+C to stop.\n", watchDir, org.Name)
	return watcher.Run(ctx)
}
