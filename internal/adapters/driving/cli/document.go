package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var documentCmd = &cobra.Command{
	Use:   "document",
	Short: "Manage ingested documents",
	Long:  `List, view or delete documents ingested into an organization.`,
}

var documentListCmd = &cobra.Command{
	Use:   "list",
	Short: "List documents for an organization",
	RunE:  runDocumentList,
}

var documentGetCmd = &cobra.Command{
	Use:   "get [doc-id]",
	Short: "Show document info",
	Args:  cobra.ExactArgs(1),
	RunE:  runDocumentGet,
}

var documentContentCmd = &cobra.Command{
	Use:   "content [doc-id]",
	Short: "Print extracted document text",
	Args:  cobra.ExactArgs(1),
	RunE:  runDocumentContent,
}

var documentChunksCmd = &cobra.Command{
	Use:   "chunks [doc-id]",
	Short: "Show document chunks",
	Args:  cobra.ExactArgs(1),
	RunE:  runDocumentChunks,
}

var documentRawCmd = &cobra.Command{
	Use:   "raw [doc-id]",
	Short: "Write the original PDF bytes to a file",
	Args:  cobra.ExactArgs(1),
	RunE:  runDocumentRaw,
}

var documentDeleteCmd = &cobra.Command{
	Use:   "delete [doc-id]",
	Short: "Delete a document, its chunks and its original file",
	Args:  cobra.ExactArgs(1),
	RunE:  runDocumentDelete,
}

// Flags for the document commands.
var (
	documentOrg string
	rawOutput   string
)

func init() {
	documentCmd.PersistentFlags().StringVarP(&documentOrg, "org", "o", "", "Organization ID or name (required)")
	documentRawCmd.Flags().StringVar(&rawOutput, "output", "", "Output file (defaults to the document title)")

	documentCmd.AddCommand(documentListCmd)
	documentCmd.AddCommand(documentGetCmd)
	documentCmd.AddCommand(documentContentCmd)
	documentCmd.AddCommand(documentChunksCmd)
	documentCmd.AddCommand(documentRawCmd)
	documentCmd.AddCommand(documentDeleteCmd)
	rootCmd.AddCommand(documentCmd)
}

// documentContext resolves the --org flag and parses the doc-id argument.
func documentContext(ctx context.Context, args []string) (orgID, docID uuid.UUID, err error) {
	if documentOrg == "" {
		return uuid.Nil, uuid.Nil, errors.New("--org is required")
	}
	org, err := resolveOrganization(ctx, documentOrg)
	if err != nil {
		return uuid.Nil, uuid.Nil, fmt.Errorf("failed to get organization: %w", err)
	}
	if len(args) == 0 {
		return org.ID, uuid.Nil, nil
	}
	docID, err = uuid.Parse(args[0])
	if err != nil {
		return uuid.Nil, uuid.Nil, fmt.Errorf("invalid document ID %q: %w", args[0], err)
	}
	return org.ID, docID, nil
}

func runDocumentList(cmd *cobra.Command, _ []string) error {
	if documentService == nil || organizationService == nil {
		return errors.New("document service not configured")
	}

	ctx := context.Background()
	orgID, _, err := documentContext(ctx, nil)
	if err != nil {
		return err
	}

	docs, err := documentService.ListByOrganization(ctx, orgID)
	if err != nil {
		return fmt.Errorf("failed to list documents: %w", err)
	}

	if len(docs) == 0 {
		cmd.Printf("No documents found for organization: %s\n", documentOrg)
		return nil
	}

	cmd.Printf("Documents for organization %s:\n\n", documentOrg)
	for i := range docs {
		cmd.Printf("  %s\n", docs[i].ID)
		cmd.Printf("    Title:   %s\n", docs[i].Title)
		cmd.Printf("    Created: %s\n", docs[i].CreatedAt.Format("2006-01-02 15:04:05"))
		cmd.Println()
	}

	cmd.Printf("Total: %d documents\n", len(docs))
	return nil
}

func runDocumentGet(cmd *cobra.Command, args []string) error {
	if documentService == nil || organizationService == nil {
		return errors.New("document service not configured")
	}

	ctx := context.Background()
	orgID, docID, err := documentContext(ctx, args)
	if err != nil {
		return err
	}

	doc, err := documentService.Get(ctx, orgID, docID)
	if err != nil {
		return fmt.Errorf("failed to get document: %w", err)
	}

	chunks, err := documentService.Chunks(ctx, orgID, docID)
	if err != nil {
		return fmt.Errorf("failed to get document chunks: %w", err)
	}

	cmd.Printf("Document: %s\n\n", doc.ID)
	cmd.Printf("  Title:   %s\n", doc.Title)
	cmd.Printf("  Type:    %s\n", doc.SourceType)
	cmd.Printf("  Hash:    %s\n", doc.Hash)
	cmd.Printf("  Chunks:  %d\n", len(chunks))
	cmd.Printf("  Created: %s\n", doc.CreatedAt.Format("2006-01-02 15:04:05"))
	return nil
}

func runDocumentContent(cmd *cobra.Command, args []string) error {
	if documentService == nil || organizationService == nil {
		return errors.New("document service not configured")
	}

	ctx := context.Background()
	orgID, docID, err := documentContext(ctx, args)
	if err != nil {
		return err
	}

	doc, err := documentService.Get(ctx, orgID, docID)
	if err != nil {
		return fmt.Errorf("failed to get document: %w", err)
	}

	cmd.Println(doc.Content)
	return nil
}

func runDocumentChunks(cmd *cobra.Command, args []string) error {
	if documentService == nil || organizationService == nil {
		return errors.New("document service not configured")
	}

	ctx := context.Background()
	orgID, docID, err := documentContext(ctx, args)
	if err != nil {
		return err
	}

	chunks, err := documentService.Chunks(ctx, orgID, docID)
	if err != nil {
		return fmt.Errorf("failed to get document chunks: %w", err)
	}

	if len(chunks) == 0 {
		cmd.Println("No chunks found.")
		return nil
	}

	for i := range chunks {
		cmd.Printf("--- Chunk %d [%d:%d] ---\n", chunks[i].Index, chunks[i].StartChar, chunks[i].EndChar)
		cmd.Println(chunks[i].Content)
		cmd.Println()
	}

	cmd.Printf("Total: %d chunks\n", len(chunks))
	return nil
}

func runDocumentRaw(cmd *cobra.Command, args []string) error {
	if documentService == nil || organizationService == nil {
		return errors.New("document service not configured")
	}

	ctx := context.Background()
	orgID, docID, err := documentContext(ctx, args)
	if err != nil {
		return err
	}

	content, err := documentService.Raw(ctx, orgID, docID)
	if err != nil {
		return fmt.Errorf("failed to get original file: %w", err)
	}

	output := rawOutput
	if output == "" {
		doc, err := documentService.Get(ctx, orgID, docID)
		if err != nil {
			return fmt.Errorf("failed to get document: %w", err)
		}
		output = doc.Title
	}

	if err := os.WriteFile(output, content, 0600); err != nil {
		return fmt.Errorf("failed to write %s: %w", output, err)
	}

	cmd.Printf("Wrote %d bytes to %s\n", len(content), output)
	return nil
}

func runDocumentDelete(cmd *cobra.Command, args []string) error {
	if documentService == nil || organizationService == nil {
		return errors.New("document service not configured")
	}

	ctx := context.Background()
	orgID, docID, err := documentContext(ctx, args)
	if err != nil {
		return err
	}

	if err := documentService.Delete(ctx, orgID, docID); err != nil {
		return fmt.Errorf("failed to delete document: %w", err)
	}

	cmd.Printf("Deleted document %s.\n", docID)
	return nil
}
