package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigCmd_Use(t *testing.T) {
	assert.Equal(t, "config", configCmd.Use)
}

func TestConfigCmd_HasSubcommands(t *testing.T) {
	commands := configCmd.Commands()
	commandNames := make([]string, 0, len(commands))
	for _, cmd := range commands {
		commandNames = append(commandNames, cmd.Name())
	}

	assert.Contains(t, commandNames, "show")
	assert.Contains(t, commandNames, "get")
	assert.Contains(t, commandNames, "set")
}

func TestConfigShowCmd_Defaults(t *testing.T) {
	_, cleanup := setupTestServices(t)
	defer cleanup()

	output, err := executeCommand("config", "show")

	assert.NoError(t, err)
	assert.Contains(t, output, "[chunking]")
	assert.Contains(t, output, "size    = 1000")
	assert.Contains(t, output, "overlap = 200")
	assert.Contains(t, output, "strip   = true")
	assert.Contains(t, output, "default 32 MiB")
}

func TestConfigSetAndGet(t *testing.T) {
	_, cleanup := setupTestServices(t)
	defer cleanup()

	output, err := executeCommand("config", "set", "chunking.size", "500")
	assert.NoError(t, err)
	assert.Contains(t, output, "Set chunking.size = 500")

	output, err = executeCommand("config", "get", "chunking.size")
	assert.NoError(t, err)
	assert.Contains(t, output, "500")

	// The resolved settings pick the new value up
	output, err = executeCommand("config", "show")
	require.NoError(t, err)
	assert.Contains(t, output, "size    = 500")
}

func TestConfigSetCmd_StoresTypedValues(t *testing.T) {
	_, cleanup := setupTestServices(t)
	defer cleanup()

	_, err := executeCommand("config", "set", "chunking.strip", "false")
	require.NoError(t, err)

	val, ok := configStore.Get("chunking.strip")
	require.True(t, ok)
	assert.Equal(t, false, val)

	_, err = executeCommand("config", "set", "storage.data_dir", "/var/lib/docbase")
	require.NoError(t, err)

	val, ok = configStore.Get("storage.data_dir")
	require.True(t, ok)
	assert.Equal(t, "/var/lib/docbase", val)
}

func TestConfigGetCmd_MissingKey(t *testing.T) {
	_, cleanup := setupTestServices(t)
	defer cleanup()

	_, err := executeCommand("config", "get", "no.such.key")

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "not set")
}

func TestConfigCmd_StoreNotConfigured(t *testing.T) {
	oldStore := configStore
	configStore = nil
	defer func() {
		configStore = oldStore
	}()

	_, err := executeCommand("config", "show")

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "not configured")
}
