package config

import (
	"fmt"
	"os"
	"path"
	"strings"

	"github.com/spf13/cast"
	"gopkg.in/yaml.v3"
)

const (
	StorageBolt     = "bolt"
	StoragePostgres = "postgres"
	StorageSqlite   = "sqlite"
)

// DBConfig Database config
type DBConfig struct {
	Host   string `yaml:"host"`
	Port   int    `yaml:"port"`
	Name   string `yaml:"name"`
	User   string `yaml:"user"`
	Passwd string `yaml:"passwd"`
	Debug  bool   `yaml:"debug"`
}

// SysConfig System config
type SysConfig struct {
	Appid    string `yaml:"appid"`
	Location string `yaml:"location"`
	Workdir  string `yaml:"workdir"`
	Debug    bool   `yaml:"debug"`
}

// WebConfig Web server config
type WebConfig struct {
	Host   string `yaml:"host"`
	Port   int    `yaml:"port"`
	Secret string `yaml:"secret"`
}

// StorageConfig selects where the catalog payload lives.
// The whole catalog is kept under a single key.
type StorageConfig struct {
	Type   string `yaml:"type"`
	Path   string `yaml:"path"`
	Bucket string `yaml:"bucket"`
	Key    string `yaml:"key"`
}

type LogConfig struct {
	Mode       string `yaml:"mode"`
	FileEnable bool   `yaml:"file_enable"`
	Filename   string `yaml:"filename"`
}

type BackupConfig struct {
	Enabled bool   `yaml:"enabled"`
	Cron    string `yaml:"cron"`
	Keep    int    `yaml:"keep"`
}

type AppConfig struct {
	System   SysConfig     `yaml:"system"`
	Web      WebConfig     `yaml:"web"`
	Storage  StorageConfig `yaml:"storage"`
	Database DBConfig      `yaml:"database"`
	Logger   LogConfig     `yaml:"logger"`
	Backup   BackupConfig  `yaml:"backup"`
}

func (c *AppConfig) GetLogDir() string {
	return path.Join(c.System.Workdir, "logs")
}

func (c *AppConfig) GetDataDir() string {
	return path.Join(c.System.Workdir, "data")
}

func (c *AppConfig) GetBackupDir() string {
	return path.Join(c.System.Workdir, "backup")
}

// StoragePath returns the bolt/sqlite file, relative paths resolve against the data dir.
func (c *AppConfig) StoragePath() string {
	if path.IsAbs(c.Storage.Path) {
		return c.Storage.Path
	}
	return path.Join(c.GetDataDir(), c.Storage.Path)
}

func (c *AppConfig) InitDirs() error {
	for _, dir := range []string{c.GetLogDir(), c.GetDataDir(), c.GetBackupDir()} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create %s: %w", dir, err)
		}
	}
	return nil
}

// Validate checks values that would otherwise fail late at startup.
func (c *AppConfig) Validate() error {
	switch c.Storage.Type {
	case StorageBolt, StorageSqlite, StoragePostgres:
	default:
		return fmt.Errorf("unsupported storage type %q", c.Storage.Type)
	}
	if strings.TrimSpace(c.Storage.Key) == "" {
		return fmt.Errorf("storage key is required")
	}
	if c.Web.Port <= 0 || c.Web.Port > 65535 {
		return fmt.Errorf("invalid web port %d", c.Web.Port)
	}
	if c.Backup.Keep < 0 {
		return fmt.Errorf("backup keep must be >= 0")
	}
	return nil
}

var DefaultAppConfig = &AppConfig{
	System: SysConfig{
		Appid:    "Vitrine",
		Location: "America/Sao_Paulo",
		Workdir:  "/var/vitrine",
		Debug:    false,
	},
	Web: WebConfig{
		Host:   "0.0.0.0",
		Port:   1818,
		Secret: "",
	},
	Storage: StorageConfig{
		Type:   StorageBolt,
		Path:   "catalog.db",
		Bucket: "catalog",
		Key:    "products",
	},
	Database: DBConfig{
		Host:   "127.0.0.1",
		Port:   5432,
		Name:   "vitrine",
		User:   "postgres",
		Passwd: "postgres",
		Debug:  false,
	},
	Logger: LogConfig{
		Mode:       "development",
		FileEnable: false,
		Filename:   "/var/vitrine/logs/vitrine.log",
	},
	Backup: BackupConfig{
		Enabled: true,
		Cron:    "@daily",
		Keep:    7,
	},
}

// LoadConfig reads cfile when it exists, falls back to the defaults otherwise,
// then applies VITRINE_* environment overrides.
func LoadConfig(cfile string) (*AppConfig, error) {
	cfg := *DefaultAppConfig
	if cfile != "" {
		data, err := os.ReadFile(cfile)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return nil, fmt.Errorf("parse config %s: %w", cfile, err)
			}
		case os.IsNotExist(err):
		default:
			return nil, fmt.Errorf("read config %s: %w", cfile, err)
		}
	}

	setEnvValue("VITRINE_SYSTEM_WORKER_DIR", &cfg.System.Workdir)
	setEnvValue("VITRINE_SYSTEM_LOCATION", &cfg.System.Location)
	setEnvBoolValue("VITRINE_SYSTEM_DEBUG", &cfg.System.Debug)

	setEnvValue("VITRINE_WEB_HOST", &cfg.Web.Host)
	setEnvIntValue("VITRINE_WEB_PORT", &cfg.Web.Port)
	setEnvValue("VITRINE_WEB_SECRET", &cfg.Web.Secret)

	setEnvValue("VITRINE_STORAGE_TYPE", &cfg.Storage.Type)
	setEnvValue("VITRINE_STORAGE_PATH", &cfg.Storage.Path)
	setEnvValue("VITRINE_STORAGE_KEY", &cfg.Storage.Key)

	setEnvValue("VITRINE_DB_HOST", &cfg.Database.Host)
	setEnvIntValue("VITRINE_DB_PORT", &cfg.Database.Port)
	setEnvValue("VITRINE_DB_NAME", &cfg.Database.Name)
	setEnvValue("VITRINE_DB_USER", &cfg.Database.User)
	setEnvValue("VITRINE_DB_PWD", &cfg.Database.Passwd)
	setEnvBoolValue("VITRINE_DB_DEBUG", &cfg.Database.Debug)

	setEnvValue("VITRINE_LOGGER_MODE", &cfg.Logger.Mode)
	setEnvBoolValue("VITRINE_LOGGER_FILE_ENABLE", &cfg.Logger.FileEnable)

	setEnvBoolValue("VITRINE_BACKUP_ENABLED", &cfg.Backup.Enabled)
	setEnvValue("VITRINE_BACKUP_CRON", &cfg.Backup.Cron)
	setEnvIntValue("VITRINE_BACKUP_KEEP", &cfg.Backup.Keep)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Dump renders the config as YAML, used by the -x flag.
func (c *AppConfig) Dump() ([]byte, error) {
	return yaml.Marshal(c)
}

func setEnvValue(name string, val *string) {
	if v := os.Getenv(name); v != "" {
		*val = v
	}
}

func setEnvBoolValue(name string, val *bool) {
	if v := os.Getenv(name); v != "" {
		if b, err := cast.ToBoolE(v); err == nil {
			*val = b
		}
	}
}

func setEnvIntValue(name string, val *int) {
	if v := os.Getenv(name); v != "" {
		if i, err := cast.ToIntE(v); err == nil {
			*val = i
		}
	}
}
