package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/url"
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/go-viper/mapstructure/v2"
	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	configFileEnvName = "INVENTORY_CONFIG_FILE"
	envPrefix         = "INVENTORY"
)

type logFile struct {
	Path       string `mapstructure:"path"`
	MaxSizeMB  int    `mapstructure:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAgeDays int    `mapstructure:"max_age_days"`
}

type sqlDB struct {
	Driver          string `mapstructure:"driver"`
	DSN             string `mapstructure:"dsn"`
	AutoMigrate     bool   `mapstructure:"auto_migrate"`
	ConnectAttempts int    `mapstructure:"connect_attempts"`
}

type topics struct {
	SaleEvents string `mapstructure:"sale_events"`
}

type tlsFiles struct {
	CA   string `mapstructure:"ca"`
	Cert string `mapstructure:"cert"`
	Key  string `mapstructure:"key"`
}

type broker struct {
	SeedBrokers        []string `mapstructure:"seed_brokers"`
	SchemaRegistryURLs []string `mapstructure:"schema_registry_urls"`
	Topics             topics   `mapstructure:"topics"`
	TLS                tlsFiles `mapstructure:"tls"`
}

// Enabled reports whether sale events are published.
func (b broker) Enabled() bool {
	return len(b.SeedBrokers) != 0
}

type Config struct {
	LogLevel           slog.Level    `mapstructure:"log_level"`
	LogFile            logFile       `mapstructure:"log_file"`
	HTTPServerAddr     string        `mapstructure:"http_server_addr"`
	HTTPHandlerTimeout time.Duration `mapstructure:"http_handler_timeout"`
	SQLDB              sqlDB         `mapstructure:"sql_db"`
	Broker             broker        `mapstructure:"broker"`
}

var defaults = map[string]any{
	"log_level":                   "info",
	"log_file.path":               "",
	"log_file.max_size_mb":        100,
	"log_file.max_backups":        3,
	"log_file.max_age_days":       28,
	"http_server_addr":            ":8000",
	"http_handler_timeout":        "5s",
	"sql_db.driver":               "sqlite",
	"sql_db.dsn":                  "inventory.db",
	"sql_db.auto_migrate":         true,
	"sql_db.connect_attempts":     5,
	"broker.seed_brokers":         []string{},
	"broker.schema_registry_urls": []string{},
	"broker.topics.sale_events":   "sale-events",
	"broker.tls.ca":               "",
	"broker.tls.cert":             "",
	"broker.tls.key":              "",
}

// Load reads .env, the config file and INVENTORY_* environment variables.
// It exits the process when the config is invalid.
func Load() Config {
	_ = godotenv.Load()

	cfg, err := LoadFile(getConfigFilepath())
	if err != nil {
		die(err)
	}
	return cfg
}

// LoadFile is like [Load] without .env and flags. A missing file is
// not an error.
func LoadFile(path string) (Config, error) {
	v := viper.New()
	for k, val := range defaults {
		v.SetDefault(k, val)
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil && !isNotFound(err) {
			return Config{}, err
		}
	}

	var cfg Config
	err := v.UnmarshalExact(&cfg, viper.DecodeHook(
		mapstructure.ComposeDecodeHookFunc(
			mapstructure.TextUnmarshallerHookFunc(),
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	))
	if err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func isNotFound(err error) bool {
	var notFound viper.ConfigFileNotFoundError
	return errors.Is(err, fs.ErrNotExist) || errors.As(err, &notFound)
}

func getConfigFilepath() string {
	cmdLine := pflag.NewFlagSet(os.Args[0], pflag.ExitOnError)
	arg := cmdLine.String("config", "config.yaml", "config file")
	_ = cmdLine.Parse(os.Args[1:])
	env, ok := os.LookupEnv(configFileEnvName)
	if ok {
		return env
	}
	return *arg
}

func die(err error) {
	fmt.Printf("failed to load config file: %v\n", err)
	os.Exit(2)
}

var dsnPassword = regexp.MustCompile(`password=\S+`)

// maskDSN hides the password in URL and key=value DSNs.
func maskDSN(dsn string) string {
	if u, err := url.Parse(dsn); err == nil && u.User != nil {
		return u.Redacted()
	}
	return dsnPassword.ReplaceAllString(dsn, "password=xxxxx")
}

func (c Config) Print() {
	tamplate := `
	General:
	LogLevel=%q
	LogFile=%q
	HTTPServerAddr=%q
	HTTPHandlerTimeout=%q

	SQLDB:
	Driver=%q
	DSN=%q
	AutoMigrate=%t

	BrokerConfig:
	SeedBrokers=%q
	SchemaRegistryURLs=%q
	Topics:
		SaleEvents=%q

`
	fmt.Println("Loaded config:")
	fmt.Printf(
		strings.TrimLeft(tamplate, "\n"),
		c.LogLevel,
		c.LogFile.Path,
		c.HTTPServerAddr,
		c.HTTPHandlerTimeout,
		c.SQLDB.Driver,
		maskDSN(c.SQLDB.DSN),
		c.SQLDB.AutoMigrate,
		c.Broker.SeedBrokers,
		c.Broker.SchemaRegistryURLs,
		c.Broker.Topics.SaleEvents,
	)
}
