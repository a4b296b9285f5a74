package config

import (
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	Server struct {
		Address  string `mapstructure:"address"`
		HTTPPort string `mapstructure:"http_port"`
	} `mapstructure:"server"`

	Database struct {
		// "postgres" | "mysql" | "sqlite" | "" (память, без БД)
		Driver string `mapstructure:"driver"`
		DSN    string `mapstructure:"dsn"`
		Seed   bool   `mapstructure:"seed"`
	} `mapstructure:"database"`

	Logging struct {
		Level  string `mapstructure:"level"`
		Format string `mapstructure:"format"`
		File   string `mapstructure:"file"`
	} `mapstructure:"logging"`

	Admin struct {
		// shared code required on mutating admin routes; empty disables the check
		Code string `mapstructure:"code"`
	} `mapstructure:"admin"`

	Probe struct {
		// "icmp" | "tcp" | "off"
		Mode        string `mapstructure:"mode"`
		IntervalSec int    `mapstructure:"interval_sec"`
		TimeoutSec  int    `mapstructure:"timeout_sec"`
		TCPPort     int    `mapstructure:"tcp_port"`
	} `mapstructure:"probe"`
}

// Load reads labrack.yaml (если есть) и env LABRACK_* поверх него.
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName("labrack")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("/etc/labrack")

	v.SetDefault("server.address", "0.0.0.0")
	v.SetDefault("server.http_port", "5001")
	v.SetDefault("database.driver", "")
	v.SetDefault("database.dsn", "")
	v.SetDefault("database.seed", false)
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "text")
	v.SetDefault("logging.file", "")
	v.SetDefault("admin.code", "")
	v.SetDefault("probe.mode", "icmp")
	v.SetDefault("probe.interval_sec", 60)
	v.SetDefault("probe.timeout_sec", 2)
	v.SetDefault("probe.tcp_port", 23)

	v.SetEnvPrefix("LABRACK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		// конфиг-файл необязателен
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
