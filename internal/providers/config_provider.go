package providers

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"blogd/internal/structures"
)

func setConfigDefaults(v *viper.Viper) {
	v.SetDefault("webServer.host", "0.0.0.0")
	v.SetDefault("webServer.port", 3000)
	v.SetDefault("storage.dataDir", "data")
	v.SetDefault("storage.publicDir", "public")
	v.SetDefault("backup.maxBackups", 30)
	v.SetDefault("backup.compress", false)
	v.SetDefault("backup.schedule", true)
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.mode", 0644)
	v.SetDefault("logger.dir", "logs")
	v.SetDefault("cache.enabled", false)
	v.SetDefault("cache.size", 8)
	v.SetDefault("cache.ttl", 30*time.Second)
	v.SetDefault("metrics.enabled", false)
}

func NewConfigProvider(flags *structures.CliFlags) (*structures.Config, error) {
	var conf structures.Config

	v := viper.New()
	filename := filepath.Base(flags.ConfigPath)
	v.AddConfigPath(filepath.Dir(flags.ConfigPath))
	v.SetConfigName(strings.TrimSuffix(filename, filepath.Ext(filename)))
	v.SetConfigType("yaml")
	setConfigDefaults(v)

	v.BindEnv("logger.level", "BLOG_LOG_LEVEL")
	v.BindEnv("storage.dataDir", "BLOG_DATA_DIR")
	v.BindEnv("backup.maxBackups", "BLOG_BACKUP_MAX")
	v.BindEnv("admin.username", "BLOG_ADMIN_USERNAME")
	v.BindEnv("admin.password", "BLOG_ADMIN_PASSWORD")
	v.BindEnv("cache.enabled", "BLOG_CACHE_ENABLED")

	err := v.ReadInConfig()
	if err != nil {
		return nil, err
	}

	err = v.Unmarshal(&conf)
	if err != nil {
		return nil, fmt.Errorf("unable to decode into config struct: %w", err)
	}

	cnfValidator := NewCnfValidator(&conf)
	err = cnfValidator.Validate()
	if err != nil {
		return nil, err
	}

	conf.AppName = "blogd"
	conf.Path = flags.ConfigPath
	conf.Debug = flags.DebugMode

	return &conf, nil
}
