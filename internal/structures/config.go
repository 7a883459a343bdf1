package structures

import "time"

type Server struct {
	Host string `yaml:"host" validate:"required"`
	Port int    `yaml:"port" validate:"required|uint|min:1"`
}

type StorageConfig struct {
	DataDir   string `yaml:"dataDir" validate:"required"`
	PublicDir string `yaml:"publicDir" validate:"required"`
}

type BackupConfig struct {
	MaxBackups int  `yaml:"maxBackups" validate:"required|int|min:1"`
	Compress   bool `yaml:"compress"`
	Schedule   bool `yaml:"schedule"`
}

type LoggerConfig struct {
	Level string `yaml:"level" validate:"required|in:trace,debug,info,warn,error,fatal,panic"`
	Mode  uint32 `yaml:"mode" validate:"required|uint"`
	Dir   string `yaml:"dir" validate:"required"`
}

type CacheConfig struct {
	Enabled bool          `yaml:"enabled"`
	Size    int           `yaml:"size"`
	TTL     time.Duration `yaml:"ttl"`
}

type MetricsConfig struct {
	Enabled bool `yaml:"enabled"`
}

type AdminConfig struct {
	Username string `yaml:"username"`
	Password string `yaml:"password"`
}

type SiteConfig struct {
	Name   string `yaml:"name"`
	Author string `yaml:"author"`
}

type Config struct {
	AppName   string
	Debug     bool
	Path      string
	WebServer Server        `yaml:"webServer"`
	Storage   StorageConfig `yaml:"storage"`
	Backup    BackupConfig  `yaml:"backup"`
	Logger    LoggerConfig  `yaml:"logger"`
	Cache     CacheConfig   `yaml:"cache"`
	Metrics   MetricsConfig `yaml:"metrics"`
	Admin     AdminConfig   `yaml:"admin"`
	Site      SiteConfig    `yaml:"site"`
}
