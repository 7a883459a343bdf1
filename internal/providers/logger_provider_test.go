package providers

import (
	"os"
	"path/filepath"
	"testing"

	"blogd/internal/structures"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetLogTypeByRequestPath_Backup(t *testing.T) {
	assert.Equal(t, TypeBackup, GetLogTypeByRequestPath("/api/admin/backup"))
	assert.Equal(t, TypeBackup, GetLogTypeByRequestPath("/api/admin/backup/restore"))
}

func TestGetLogTypeByRequestPath_Other(t *testing.T) {
	assert.Equal(t, TypeAPI, GetLogTypeByRequestPath("/api/posts"))
	assert.Equal(t, TypeAPI, GetLogTypeByRequestPath("/api/admin/posts/1"))
}

func TestTypeEnum_String(t *testing.T) {
	assert.Equal(t, "app", TypeApp.String())
	assert.Equal(t, "store", TypeStore.String())
	assert.Equal(t, "backup", TypeBackup.String())
	assert.Equal(t, "api", TypeAPI.String())
}

func TestNewLogProvider_CreatesLogFiles(t *testing.T) {
	dir := t.TempDir()
	conf := &structures.Config{
		Logger: structures.LoggerConfig{
			Level: "debug",
			Mode:  0644,
			Dir:   dir,
		},
	}

	logger, err := NewLogProvider(conf)
	require.NoError(t, err)
	defer logger.Close()

	logger.Infof(TypeApp, "test message")
	logger.Debugf(TypeStore, "store message")
	logger.Warnf(TypeBackup, "backup message")
	logger.Errorf(TypeAPI, "api message %d", 42)

	for _, name := range []string{"app.log", "store.log", "backup.log", "api.log"} {
		_, err := os.Stat(filepath.Join(dir, name))
		assert.NoError(t, err, name)
	}

	data, err := os.ReadFile(filepath.Join(dir, "api.log"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "api message 42")
	assert.Contains(t, string(data), `"type":"api"`)
}

func TestNewLogProvider_LevelFilters(t *testing.T) {
	dir := t.TempDir()
	conf := &structures.Config{
		Logger: structures.LoggerConfig{Level: "warn", Mode: 0644, Dir: dir},
	}

	logger, err := NewLogProvider(conf)
	require.NoError(t, err)
	logger.Infof(TypeStore, "hidden")
	logger.Warnf(TypeStore, "shown")
	logger.Close()

	data, err := os.ReadFile(filepath.Join(dir, "store.log"))
	require.NoError(t, err)
	assert.NotContains(t, string(data), "hidden")
	assert.Contains(t, string(data), "shown")
}

func TestNewLogProvider_InvalidDir(t *testing.T) {
	conf := &structures.Config{
		Logger: structures.LoggerConfig{
			Level: "info",
			Mode:  0644,
			Dir:   "/nonexistent/directory/path",
		},
	}

	_, err := NewLogProvider(conf)
	assert.Error(t, err)
}

func TestNewLogProvider_InvalidLevel(t *testing.T) {
	conf := &structures.Config{
		Logger: structures.LoggerConfig{Level: "verbose", Mode: 0644, Dir: t.TempDir()},
	}

	_, err := NewLogProvider(conf)
	assert.Error(t, err)
}
