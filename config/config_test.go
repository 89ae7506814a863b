package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultIsValid(t *testing.T) {
	t.Parallel()

	assert.NoError(t, Default().Validate())
}

func TestLogPath(t *testing.T) {
	t.Parallel()

	l := LogsConfig{
		Dir:      "/eq/Logs",
		Template: "eqlog_<NAME>_P1999Teal.txt",
	}
	assert.Equal(t, filepath.Join("/eq/Logs", "eqlog_Mule_P1999Teal.txt"), l.LogPath("Mule"))
}

func TestLoadFromFileYAML(t *testing.T) {
	t.Parallel()

	yaml := `
logs:
  dir: /eq/Logs
  template: eqlog_<NAME>_P1999Teal.txt
  sources: [Mule, Freeport]
inventory:
  items:
    path: ./items.csv
    name_column: 1
    count_column: 2
  words:
    path: ./words.csv
    name_column: 2
    count_column: 3
checkpoint: ./history.json
logging:
  level: debug
`
	path := filepath.Join(t.TempDir(), "eqinv.yaml")
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o644))

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, "/eq/Logs", cfg.Logs.Dir)
	assert.Equal(t, []string{"Mule", "Freeport"}, cfg.Logs.Sources)
	assert.Equal(t, 2, cfg.Inventory.Words.NameColumn)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Empty(t, cfg.Journal.DBPath)
}

func TestValidateRejectsBadTemplate(t *testing.T) {
	t.Parallel()

	cfg := Default()
	cfg.Logs.Template = "eqlog_Mule.txt"
	assert.Error(t, cfg.Validate())
}

func TestValidateRejectsSameColumns(t *testing.T) {
	t.Parallel()

	cfg := Default()
	cfg.Inventory.Items.CountColumn = cfg.Inventory.Items.NameColumn
	assert.Error(t, cfg.Validate())
}

func TestValidateRejectsBadLevel(t *testing.T) {
	t.Parallel()

	cfg := Default()
	cfg.Logging.Level = "verbose"
	assert.Error(t, cfg.Validate())
}

func TestSaveLoadRoundTrip(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "eqinv.yaml")
	cfg := Default()
	require.NoError(t, cfg.SaveToFile(path))

	got, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, got)
}
