package config

import (
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App struct {
		Env      string
		Timezone string
	} `mapstructure:"app"`

	Telegram struct {
		Token          string
		PollTimeoutSec int `mapstructure:"poll_timeout_sec"`
	} `mapstructure:"telegram"`

	HTTP struct {
		Addr string
	} `mapstructure:"http"`

	Postgres struct {
		DSN string
	} `mapstructure:"postgres"`

	Metrics struct {
		Enabled bool
	} `mapstructure:"metrics"`

	Invites Invites `mapstructure:"invites"`

	Cache struct {
		TTL time.Duration `mapstructure:"ttl"`
	} `mapstructure:"cache"`

	// Owners получают роль owner при первом запуске (insert do-nothing).
	Owners []InitialAdmin `mapstructure:"owners"`
}

type Invites struct {
	CodeLength   int           `mapstructure:"code_length"`
	CodePrefix   string        `mapstructure:"code_prefix"`
	MaxAttempts  int           `mapstructure:"max_attempts"`
	AttemptReset time.Duration `mapstructure:"attempt_reset"`
	BlockTime    time.Duration `mapstructure:"block_time"`
	AttemptsTTL  time.Duration `mapstructure:"attempts_ttl"`
}

type InitialAdmin struct {
	UserID    int64  `mapstructure:"user_id"`
	FirstName string `mapstructure:"first_name"`
	LastName  string `mapstructure:"last_name"`
	Username  string `mapstructure:"username"`
}

func Load(path string) (Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetEnvPrefix("APP")
	v.AutomaticEnv()

	v.SetDefault("telegram.poll_timeout_sec", 60)
	v.SetDefault("invites.code_length", 16)
	v.SetDefault("invites.code_prefix", "AD_")
	v.SetDefault("invites.max_attempts", 5)
	v.SetDefault("invites.attempt_reset", 5*time.Minute)
	v.SetDefault("invites.block_time", time.Hour)
	v.SetDefault("invites.attempts_ttl", time.Hour)
	v.SetDefault("cache.ttl", 10*time.Minute)

	var c Config
	if err := v.ReadInConfig(); err != nil {
		return c, err
	}
	if err := v.Unmarshal(&c); err != nil {
		return c, err
	}
	return c, nil
}
