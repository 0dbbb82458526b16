package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/custodia-labs/docbase/internal/core/domain"
)

var orgCmd = &cobra.Command{
	Use:   "org",
	Short: "Manage organizations",
	Long:  `Create, list, inspect or delete the organizations (tenants) documents are ingested into.`,
}

var orgCreateCmd = &cobra.Command{
	Use:   "create [name]",
	Short: "Create an organization",
	Args:  cobra.ExactArgs(1),
	RunE:  runOrgCreate,
}

var orgListCmd = &cobra.Command{
	Use:   "list",
	Short: "List organizations",
	RunE:  runOrgList,
}

var orgGetCmd = &cobra.Command{
	Use:   "get [id-or-name]",
	Short: "Show organization info",
	Args:  cobra.ExactArgs(1),
	RunE:  runOrgGet,
}

var orgDeleteCmd = &cobra.Command{
	Use:   "delete [id-or-name]",
	Short: "Delete an organization and all its documents",
	Args:  cobra.ExactArgs(1),
	RunE:  runOrgDelete,
}

func init() {
	orgCmd.AddCommand(orgCreateCmd)
	orgCmd.AddCommand(orgListCmd)
	orgCmd.AddCommand(orgGetCmd)
	orgCmd.AddCommand(orgDeleteCmd)
	rootCmd.AddCommand(orgCmd)
}

// resolveOrganization accepts either an organization UUID or an exact name.
func resolveOrganization(ctx context.Context, ref string) (*domain.Organization, error) {
	if id, err := uuid.Parse(ref); err == nil {
		return organizationService.Get(ctx, id)
	}
	return organizationService.GetByName(ctx, ref)
}

func runOrgCreate(cmd *cobra.Command, args []string) error {
	if organizationService == nil {
		return errors.New("organization service not configured")
	}

	ctx := context.Background()
	org, err := organizationService.Create(ctx, args[0])
	if err != nil {
		return fmt.Errorf("failed to create organization: %w", err)
	}

	cmd.Printf("Created organization %q\n", org.Name)
	cmd.Printf("  ID: %s\n", org.ID)
	return nil
}

func runOrgList(cmd *cobra.Command, _ []string) error {
	if organizationService == nil {
		return errors.New("organization service not configured")
	}

	ctx := context.Background()
	orgs, err := organizationService.List(ctx)
	if err != nil {
		return fmt.Errorf("failed to list organizations: %w", err)
	}

	if len(orgs) == 0 {
		cmd.Println("No organizations found. Create one with 'docbase org create <name>'.")
		return nil
	}

	cmd.Println("Organizations:")
	cmd.Println()
	for i := range orgs {
		cmd.Printf("  %s\n", orgs[i].ID)
		cmd.Printf("    Name:    %s\n", orgs[i].Name)
		cmd.Printf("    Created: %s\n", orgs[i].CreatedAt.Format("2006-01-02 15:04:05"))
		cmd.Println()
	}

	cmd.Printf("Total: %d organizations\n", len(orgs))
	return nil
}

func runOrgGet(cmd *cobra.Command, args []string) error {
	if organizationService == nil {
		return errors.New("organization service not configured")
	}

	ctx := context.Background()
	org, err := resolveOrganization(ctx, args[0])
	if err != nil {
		return fmt.Errorf("failed to get organization: %w", err)
	}

	cmd.Printf("Organization: %s\n\n", org.ID)
	cmd.Printf("  Name:    %s\n", org.Name)
	cmd.Printf("  Created: %s\n", org.CreatedAt.Format("2006-01-02 15:04:05"))

	if documentService != nil {
		docs, err := documentService.ListByOrganization(ctx, org.ID)
		if err == nil {
			cmd.Printf("  Documents: %d\n", len(docs))
		}
	}

	return nil
}

func runOrgDelete(cmd *cobra.Command, args []string) error {
	if organizationService == nil {
		return errors.New("organization service not configured")
	}

	ctx := context.Background()
	org, err := resolveOrganization(ctx, args[0])
	if err != nil {
		return fmt.Errorf("failed to get organization: %w", err)
	}

	if err := organizationService.Delete(ctx, org.ID); err != nil {
		return fmt.Errorf("failed to delete organization: %w", err)
	}

	cmd.Printf("Deleted organization %q and all its documents.\n", org.Name)
	return nil
}
