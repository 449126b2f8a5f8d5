package app

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/bnema/zerowrap"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/bnema/snapdb/internal/adapters/out/telemetry"
	"github.com/bnema/snapdb/internal/domain"
	"github.com/bnema/snapdb/pkg/duration"
)

// Config mirrors the environment keys. Nested keys map to underscored variables,
// so db.wait_timeout is read from DB_WAIT_TIMEOUT.
type Config struct {
	DB struct {
		Type         string `mapstructure:"type"`
		Host         string `mapstructure:"host"`
		Port         int    `mapstructure:"port"`
		User         string `mapstructure:"user"`
		Password     string `mapstructure:"password"`
		Name         string `mapstructure:"name"`
		URI          string `mapstructure:"uri"`
		AllDatabases bool   `mapstructure:"all_databases"`
		AuthDatabase string `mapstructure:"auth_database"`
		WaitTimeout  string `mapstructure:"wait_timeout"`
	} `mapstructure:"db"`

	Restic struct {
		Repository   string `mapstructure:"repository"`
		Password     string `mapstructure:"password"`
		PasswordFile string `mapstructure:"password_file"`
		Tags         string `mapstructure:"tags"`
	} `mapstructure:"restic"`

	Keep struct {
		Daily   int `mapstructure:"daily"`
		Weekly  int `mapstructure:"weekly"`
		Monthly int `mapstructure:"monthly"`
		Yearly  int `mapstructure:"yearly"`
	} `mapstructure:"keep"`

	PruneOnSuccess bool `mapstructure:"prune_on_success"`

	Backup struct {
		Interval string `mapstructure:"interval"`
		Cron     string `mapstructure:"cron"`
	} `mapstructure:"backup"`

	TZ string `mapstructure:"tz"`

	Webhook struct {
		URL        string `mapstructure:"url"`
		Method     string `mapstructure:"method"`
		AuthHeader string `mapstructure:"auth_header"`
		Headers    string `mapstructure:"headers"`
		Timeout    string `mapstructure:"timeout"`
	} `mapstructure:"webhook"`

	RunAsUser string `mapstructure:"run_as_user"`

	SnapDB struct {
		WorkDir  string `mapstructure:"work_dir"`
		StateDir string `mapstructure:"state_dir"`
	} `mapstructure:"snapdb"`

	Log struct {
		Level  string `mapstructure:"level"`
		Format string `mapstructure:"format"`
		File   struct {
			MaxSize    int `mapstructure:"max_size"`
			MaxBackups int `mapstructure:"max_backups"`
			MaxAge     int `mapstructure:"max_age"`
		} `mapstructure:"file"`
	} `mapstructure:"log"`

	OTel telemetry.Config `mapstructure:"otel"`
}

// initConfig loads the optional env file, then reads the environment through viper.
func initConfig(envFile string) (*viper.Viper, Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			return nil, Config{}, fmt.Errorf("%w: load env file %s: %v", domain.ErrConfiguration, envFile, err)
		}
	}

	v := viper.New()
	loadConfig(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, Config{}, fmt.Errorf("%w: %v", domain.ErrConfiguration, err)
	}
	return v, cfg, nil
}

// loadConfig registers defaults for every key so AutomaticEnv can resolve them on Unmarshal.
func loadConfig(v *viper.Viper) {
	v.SetDefault("db.type", "")
	v.SetDefault("db.host", "")
	v.SetDefault("db.port", 0)
	v.SetDefault("db.user", "")
	v.SetDefault("db.password", "")
	v.SetDefault("db.name", "")
	v.SetDefault("db.uri", "")
	v.SetDefault("db.all_databases", false)
	v.SetDefault("db.auth_database", "")
	v.SetDefault("db.wait_timeout", "0")
	v.SetDefault("restic.repository", "")
	v.SetDefault("restic.password", "")
	v.SetDefault("restic.password_file", "")
	v.SetDefault("restic.tags", "")
	v.SetDefault("keep.daily", 7)
	v.SetDefault("keep.weekly", 4)
	v.SetDefault("keep.monthly", 12)
	v.SetDefault("keep.yearly", 1)
	v.SetDefault("prune_on_success", false)
	v.SetDefault("backup.interval", "0")
	v.SetDefault("backup.cron", "")
	v.SetDefault("tz", "")
	v.SetDefault("webhook.url", "")
	v.SetDefault("webhook.method", "POST")
	v.SetDefault("webhook.auth_header", "")
	v.SetDefault("webhook.headers", "")
	v.SetDefault("webhook.timeout", "10")
	v.SetDefault("run_as_user", "")
	v.SetDefault("snapdb.work_dir", DefaultWorkDir)
	v.SetDefault("snapdb.state_dir", DefaultStateDir)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
	v.SetDefault("log.file.max_size", 10)
	v.SetDefault("log.file.max_backups", 3)
	v.SetDefault("log.file.max_age", 28)
	v.SetDefault("otel.enabled", false)
	v.SetDefault("otel.endpoint", "")
	v.SetDefault("otel.auth_token", "")

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
}

// RunConfig translates the raw configuration into the immutable run configuration.
// The engine is left empty when DB_TYPE is unset so store-only commands still work;
// ValidateEngine reports that case for commands that dump.
func (c Config) RunConfig() (domain.RunConfig, error) {
	var rc domain.RunConfig

	if strings.TrimSpace(c.DB.Type) != "" {
		engine, err := domain.ParseEngine(c.DB.Type)
		if err != nil {
			return rc, err
		}
		rc.Database.Engine = engine
	}

	waitTimeout, err := duration.Seconds(c.DB.WaitTimeout, 0)
	if err != nil {
		return rc, fmt.Errorf("%w: DB_WAIT_TIMEOUT: %v", domain.ErrConfiguration, err)
	}
	interval, err := duration.Seconds(c.Backup.Interval, 0)
	if err != nil {
		return rc, fmt.Errorf("%w: BACKUP_INTERVAL: %v", domain.ErrConfiguration, err)
	}
	webhookTimeout, err := duration.Seconds(c.Webhook.Timeout, 10*time.Second)
	if err != nil {
		return rc, fmt.Errorf("%w: WEBHOOK_TIMEOUT: %v", domain.ErrConfiguration, err)
	}
	loc, err := loadLocation(c.TZ)
	if err != nil {
		return rc, err
	}

	rc.Database.Host = strings.TrimSpace(c.DB.Host)
	rc.Database.Port = c.DB.Port
	rc.Database.User = c.DB.User
	rc.Database.Password = c.DB.Password
	rc.Database.Name = strings.TrimSpace(c.DB.Name)
	rc.Database.URI = strings.TrimSpace(c.DB.URI)
	rc.Database.AuthDatabase = strings.TrimSpace(c.DB.AuthDatabase)
	rc.Database.AllDatabases = c.DB.AllDatabases
	rc.Database.WaitTimeout = waitTimeout

	rc.Repository = domain.RepositoryConfig{
		Location:     strings.TrimSpace(c.Restic.Repository),
		Password:     c.Restic.Password,
		PasswordFile: strings.TrimSpace(c.Restic.PasswordFile),
		CacheDir:     filepath.Join(c.SnapDB.StateDir, "cache"),
	}
	rc.Tags = domain.ParseList(c.Restic.Tags)
	rc.Retention = domain.RetentionPolicy{
		Daily:   c.Keep.Daily,
		Weekly:  c.Keep.Weekly,
		Monthly: c.Keep.Monthly,
		Yearly:  c.Keep.Yearly,
	}
	rc.PruneOnSuccess = c.PruneOnSuccess
	rc.Notify = domain.NotifyConfig{
		URL:        strings.TrimSpace(c.Webhook.URL),
		Method:     c.Webhook.Method,
		AuthHeader: c.Webhook.AuthHeader,
		Headers:    domain.ParseHeaders(c.Webhook.Headers),
		Timeout:    webhookTimeout,
	}
	rc.Schedule = domain.NewSchedule(interval, strings.TrimSpace(c.Backup.Cron), loc)
	rc.WorkDir = c.SnapDB.WorkDir
	rc.StateDir = c.SnapDB.StateDir
	rc.RunAsUser = strings.TrimSpace(c.RunAsUser)

	return rc, nil
}

// ValidateEngine reports a configuration error when no engine is selected.
func ValidateEngine(rc domain.RunConfig) error {
	if rc.Database.Engine == "" {
		_, err := domain.ParseEngine("")
		return err
	}
	return nil
}

func loadLocation(name string) (*time.Location, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return time.UTC, nil
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("%w: TZ %q: %v", domain.ErrConfiguration, name, err)
	}
	return loc, nil
}

// initLogger builds the console logger, or a rotated file logger when logFile is set.
func initLogger(cfg Config, logFile string) (zerowrap.Logger, func(), error) {
	logConfig := zerowrap.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
	}

	if logFile != "" {
		log, cleanup, err := zerowrap.NewWithFile(logConfig, zerowrap.FileConfig{
			Enabled:    true,
			Path:       logFile,
			MaxSize:    cfg.Log.File.MaxSize,
			MaxBackups: cfg.Log.File.MaxBackups,
			MaxAge:     cfg.Log.File.MaxAge,
			Compress:   true,
		})
		if err != nil {
			return zerowrap.Default(), nil, fmt.Errorf("failed to create logger with file: %w", err)
		}
		return log, cleanup, nil
	}

	return zerowrap.New(logConfig), nil, nil
}
