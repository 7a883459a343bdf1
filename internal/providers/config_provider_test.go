package providers

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"blogd/internal/structures"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testConfigYaml = `
webServer:
  host: 127.0.0.1
  port: 8081
storage:
  dataDir: /tmp/blogd-test/data
  publicDir: /tmp/blogd-test/public
backup:
  maxBackups: 12
  compress: true
logger:
  level: debug
  mode: 0644
  dir: /tmp/blogd-test/logs
cache:
  enabled: true
  size: 4
  ttl: 10s
admin:
  username: admin
  password: secret
`

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestNewConfigProvider_LoadsFile(t *testing.T) {
	path := writeConfig(t, testConfigYaml)

	conf, err := NewConfigProvider(&structures.CliFlags{ConfigPath: path, DebugMode: true})
	require.NoError(t, err)

	assert.Equal(t, "blogd", conf.AppName)
	assert.True(t, conf.Debug)
	assert.Equal(t, path, conf.Path)
	assert.Equal(t, 8081, conf.WebServer.Port)
	assert.Equal(t, "/tmp/blogd-test/data", conf.Storage.DataDir)
	assert.Equal(t, 12, conf.Backup.MaxBackups)
	assert.True(t, conf.Backup.Compress)
	assert.Equal(t, 10*time.Second, conf.Cache.TTL)
	assert.Equal(t, "admin", conf.Admin.Username)
}

func TestNewConfigProvider_Defaults(t *testing.T) {
	path := writeConfig(t, "logger:\n  dir: /tmp\n")

	conf, err := NewConfigProvider(&structures.CliFlags{ConfigPath: path})
	require.NoError(t, err)

	assert.Equal(t, "data", conf.Storage.DataDir)
	assert.Equal(t, 30, conf.Backup.MaxBackups)
	assert.True(t, conf.Backup.Schedule)
	assert.Equal(t, "info", conf.Logger.Level)
}

func TestNewConfigProvider_EnvOverride(t *testing.T) {
	path := writeConfig(t, testConfigYaml)
	t.Setenv("BLOG_BACKUP_MAX", "5")
	t.Setenv("BLOG_ADMIN_PASSWORD", "from-env")

	conf, err := NewConfigProvider(&structures.CliFlags{ConfigPath: path})
	require.NoError(t, err)

	assert.Equal(t, 5, conf.Backup.MaxBackups)
	assert.Equal(t, "from-env", conf.Admin.Password)
}

func TestNewConfigProvider_MissingFile(t *testing.T) {
	_, err := NewConfigProvider(&structures.CliFlags{ConfigPath: filepath.Join(t.TempDir(), "absent.yaml")})
	assert.Error(t, err)
}

func TestNewConfigProvider_InvalidValues(t *testing.T) {
	path := writeConfig(t, "logger:\n  level: verbose\n  dir: /tmp\n")

	_, err := NewConfigProvider(&structures.CliFlags{ConfigPath: path})
	assert.Error(t, err)
}
