package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadCLI_Defaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	c, err := LoadCLI("")
	require.NoError(t, err)
	assert.False(t, c.Strict)
	assert.Equal(t, "json", c.Output)
	assert.Equal(t, "warn", c.LogLevel)
	assert.Equal(t, int64(1<<30), c.MaxFileSize)
}

func TestLoadCLI_FileAndEnv(t *testing.T) {
	path := writeFile(t, "settings.yaml", "strict: true\noutput: yaml\nlog_level: debug\n")
	t.Setenv("GRAPHTOOL_LOG_LEVEL", "error")

	c, err := LoadCLI(path)
	require.NoError(t, err)
	assert.True(t, c.Strict)
	assert.Equal(t, "yaml", c.Output)
	assert.Equal(t, "error", c.LogLevel, "env overrides file")
}

func TestLoadCLI_HomeFile(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	require.NoError(t, os.MkdirAll(filepath.Join(home, ".graphtool"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(home, ".graphtool", "config.yaml"), []byte("max_file_size: 2048\n"), 0o644))

	c, err := LoadCLI("")
	require.NoError(t, err)
	assert.Equal(t, int64(2048), c.MaxFileSize)
}

func TestLoadCLI_Errors(t *testing.T) {
	_, err := LoadCLI(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	path := writeFile(t, "settings.yaml", "output: xml\n")
	_, err = LoadCLI(path)
	assert.ErrorContains(t, err, "output")
}

func TestReadOptionFile(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
	}{
		{"yaml", "chart.yaml", "graph_type: scatter\nx_column: day\ny_columns: [temp, rain]\n"},
		{"json", "chart.json", `{"graph_type":"scatter","x_column":"day","y_columns":["temp","rain"]}`},
		{"toml", "chart.toml", "graph_type = \"scatter\"\nx_column = \"day\"\ny_columns = [\"temp\", \"rain\"]\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw, err := ReadOptionFile(writeFile(t, tt.file, tt.content))
			require.NoError(t, err)
			assert.Equal(t, "scatter", raw["graph_type"])
			assert.Equal(t, "day", raw["x_column"])
			assert.Len(t, raw["y_columns"], 2)
		})
	}
}
