package cli

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func resetIngestFlags() {
	ingestOrg = ""
	watchDir = ""
}

// writeTestPDF drops a fake PDF into a temp dir and returns its path.
func writeTestPDF(t *testing.T, name string, content []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, content, 0600))
	return path
}

func TestIngestCmd_Use(t *testing.T) {
	assert.Equal(t, "ingest [file.pdf ...]", ingestCmd.Use)
}

func TestIngestCmd_RequiresOrg(t *testing.T) {
	_, cleanup := setupTestServices(t)
	defer cleanup()
	defer resetIngestFlags()

	path := writeTestPDF(t, "report.pdf", []byte("%PDF-1.7 bytes"))
	_, err := executeCommand("ingest", path)

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "--org is required")
}

func TestIngestCmd_RequiresFilesOrWatch(t *testing.T) {
	_, cleanup := setupTestServices(t)
	defer cleanup()
	defer resetIngestFlags()

	_, err := executeCommand("ingest", "--org", "Acme Corp")

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "at least one file")
}

func TestIngestCmd_IngestsFile(t *testing.T) {
	env, cleanup := setupTestServices(t)
	defer cleanup()
	defer resetIngestFlags()

	path := writeTestPDF(t, "report.pdf", []byte("%PDF-1.7 bytes"))
	output, err := executeCommand("ingest", path, "--org", "Acme Corp")

	assert.NoError(t, err)
	assert.Contains(t, output, "OK")
	assert.Contains(t, output, "5 chunks")
	assert.Contains(t, output, "Ingested 1, skipped 0, failed 0.")

	docs, err := env.store.DocumentStore().ListByOrganization(context.Background(), env.org.ID)
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, "report.pdf", docs[0].Title)
}

func TestIngestCmd_SkipsDuplicate(t *testing.T) {
	_, cleanup := setupTestServices(t)
	defer cleanup()
	defer resetIngestFlags()

	path := writeTestPDF(t, "report.pdf", []byte("%PDF-1.7 bytes"))
	_, err := executeCommand("ingest", path, "--org", "Acme Corp")
	require.NoError(t, err)

	// Second run with identical bytes is a skip, not an error
	output, err := executeCommand("ingest", path, "--org", "Acme Corp")

	assert.NoError(t, err)
	assert.Contains(t, output, "SKIPPED")
	assert.Contains(t, output, "already ingested")
	assert.Contains(t, output, "Ingested 0, skipped 1, failed 0.")
}

func TestIngestCmd_ReportsFailures(t *testing.T) {
	_, cleanup := setupTestServices(t)
	defer cleanup()
	defer resetIngestFlags()

	good := writeTestPDF(t, "good.pdf", []byte("%PDF-1.7 bytes"))
	bad := writeTestPDF(t, "bad.pdf", []byte("not a pdf"))
	missing := filepath.Join(t.TempDir(), "missing.pdf")

	output, err := executeCommand("ingest", good, bad, missing, "--org", "Acme Corp")

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "2 of 3 files failed")
	assert.Contains(t, output, "OK")
	assert.Contains(t, output, "FAILED")
	assert.Contains(t, output, "Ingested 1, skipped 0, failed 2.")
}

func TestIngestCmd_UnknownOrganization(t *testing.T) {
	_, cleanup := setupTestServices(t)
	defer cleanup()
	defer resetIngestFlags()

	path := writeTestPDF(t, "report.pdf", []byte("%PDF-1.7 bytes"))
	_, err := executeCommand("ingest", path, "--org", "No Such Corp")

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to get organization")
}

func TestIngestCmd_ServiceNotConfigured(t *testing.T) {
	oldService := ingestService
	ingestService = nil
	defer func() {
		ingestService = oldService
		resetIngestFlags()
	}()

	_, err := executeCommand("ingest", "file.pdf", "--org", "Acme Corp")

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "not configured")
}
