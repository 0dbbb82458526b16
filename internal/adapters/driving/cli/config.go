package cli

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/docbase/internal/adapters/driven/config/file"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage docbase configuration",
	Long: `View and change configuration.

Keys:
  storage.data_dir         Data directory for the database and blobs
  chunking.size            Characters per chunk (default 1000)
  chunking.overlap         Characters shared by consecutive chunks (default 200)
  chunking.strip           Trim surrounding whitespace before chunking (default true)
  ingest.max_upload_bytes  Upload size limit in bytes (default 32 MiB)`,
	RunE: runConfigShow,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	RunE:  runConfigShow,
}

var configGetCmd = &cobra.Command{
	Use:   "get [key]",
	Short: "Print one configuration value",
	Args:  cobra.ExactArgs(1),
	RunE:  runConfigGet,
}

var configSetCmd = &cobra.Command{
	Use:   "set [key] [value]",
	Short: "Set a configuration value",
	Args:  cobra.ExactArgs(2),
	RunE:  runConfigSet,
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configSetCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigShow(cmd *cobra.Command, _ []string) error {
	if configStore == nil {
		return errors.New("config store not configured")
	}

	settings := file.ResolveSettings(configStore)

	cmd.Printf("Configuration file: %s\n\n", configStore.Path())
	cmd.Println("[storage]")
	if settings.DataDir != "" {
		cmd.Printf("  data_dir = %s\n", settings.DataDir)
	} else {
		cmd.Printf("  data_dir = (default ~/.docbase/data)\n")
	}
	cmd.Println()
	cmd.Println("[chunking]")
	cmd.Printf("  size    = %d\n", settings.ChunkSize)
	cmd.Printf("  overlap = %d\n", settings.ChunkOverlap)
	cmd.Printf("  strip   = %t\n", settings.ChunkStrip)
	cmd.Println()
	cmd.Println("[ingest]")
	if settings.MaxUploadBytes > 0 {
		cmd.Printf("  max_upload_bytes = %d\n", settings.MaxUploadBytes)
	} else {
		cmd.Printf("  max_upload_bytes = (default 32 MiB)\n")
	}

	return nil
}

func runConfigGet(cmd *cobra.Command, args []string) error {
	if configStore == nil {
		return errors.New("config store not configured")
	}

	val, ok := configStore.Get(args[0])
	if !ok {
		return fmt.Errorf("key %q is not set", args[0])
	}

	cmd.Printf("%v\n", val)
	return nil
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	if configStore == nil {
		return errors.New("config store not configured")
	}

	key, raw := args[0], args[1]
	if err := configStore.Set(key, parseConfigValue(raw)); err != nil {
		return fmt.Errorf("failed to set %s: %w", key, err)
	}

	cmd.Printf("Set %s = %s\n", key, raw)
	return nil
}

// parseConfigValue stores booleans and integers typed, everything else as
// a string, matching what TOML would parse from the file.
func parseConfigValue(raw string) any {
	if b, err := strconv.ParseBool(raw); err == nil && (raw == "true" || raw == "false") {
		return b
	}
	if n, err := strconv.ParseInt(raw, 10, 64); err == nil {
		return n
	}
	return raw
}
