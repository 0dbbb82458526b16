// Package pdf extracts plain text from PDF uploads using the pdftotext
// command-line tool from poppler-utils.
package pdf

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/custodia-labs/docbase/internal/core/domain"
	"github.com/custodia-labs/docbase/internal/core/ports/driven"
)

// ErrPDFToolNotFound indicates pdftotext is not installed.
var ErrPDFToolNotFound = errors.New("pdftotext not found in PATH")

// CommandRunner abstracts command execution for testing.
type CommandRunner interface {
	Run(ctx context.Context, name string, args ...string) ([]byte, error)
}

// execRunner runs commands using os/exec.
type execRunner struct{}

func (execRunner) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).Output()
}

// Parser extracts text from PDF bytes by shelling out to pdftotext.
type Parser struct {
	runner CommandRunner
}

var _ driven.Parser = (*Parser)(nil)

// New creates a parser using the real pdftotext binary.
func New() *Parser {
	return &Parser{runner: execRunner{}}
}

// NewWithRunner creates a parser with a custom command runner.
// Used in tests to avoid requiring pdftotext.
func NewWithRunner(runner CommandRunner) *Parser {
	return &Parser{runner: runner}
}

// CheckAvailable returns an error if pdftotext is not installed.
func CheckAvailable() error {
	if _, err := exec.LookPath("pdftotext"); err != nil {
		return ErrPDFToolNotFound
	}
	return nil
}

// InstallInstructions returns help text for installing pdftotext.
func InstallInstructions() string {
	return `pdftotext is required for PDF ingestion.

Install it via your package manager:
  macOS:         brew install poppler
  Debian/Ubuntu: apt install poppler-utils
  Fedora:        dnf install poppler-utils`
}

// Parse extracts the text content from PDF bytes. pdftotext only reads from
// files, so the upload is spooled to a temp file for the duration of the
// call. Failures are reported as domain.ErrParse.
func (p *Parser) Parse(ctx context.Context, content []byte) (string, error) {
	tmpDir, err := os.MkdirTemp("", "docbase-pdf-*")
	if err != nil {
		return "", fmt.Errorf("%w: creating temp directory: %w", domain.ErrParse, err)
	}
	defer os.RemoveAll(tmpDir)

	tmpFile := filepath.Join(tmpDir, "upload.pdf")
	if err := os.WriteFile(tmpFile, content, 0600); err != nil {
		return "", fmt.Errorf("%w: writing temp file: %w", domain.ErrParse, err)
	}

	// "-" sends the extracted text to stdout
	output, err := p.runner.Run(ctx, "pdftotext", "-enc", "UTF-8", "-nopgbrk", tmpFile, "-")
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) && len(exitErr.Stderr) > 0 {
			return "", fmt.Errorf("%w: pdftotext failed: %s", domain.ErrParse, exitErr.Stderr)
		}
		return "", fmt.Errorf("%w: pdftotext failed: %w", domain.ErrParse, err)
	}

	return string(output), nil
}
