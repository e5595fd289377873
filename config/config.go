package config

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

type Config struct {
	ServerPort    string        `mapstructure:"SERVER_PORT"`
	BasePath      string        `mapstructure:"BASE_PATH"`
	DbDriver      string        `mapstructure:"DB_DRIVER"`
	DbHost        string        `mapstructure:"DB_HOST"`
	DbPort        string        `mapstructure:"DB_PORT"`
	DbName        string        `mapstructure:"DB_NAME"`
	DbUser        string        `mapstructure:"DB_USER"`
	DbPassword    string        `mapstructure:"DB_PASSWORD"`
	DbSSLMode     string        `mapstructure:"DB_SSL_MODE"`
	SqlitePath    string        `mapstructure:"SQLITE_PATH"`
	JWTSecret     string        `mapstructure:"JWT_SECRET"`
	TokenTTL      time.Duration `mapstructure:"TOKEN_TTL"`
	RedisAddr     string        `mapstructure:"REDIS_ADDR"`
	RedisPassword string        `mapstructure:"REDIS_PASSWORD"`
	OTPEnabled    bool          `mapstructure:"OTP_ENABLED"`
	OTPTTL        time.Duration `mapstructure:"OTP_TTL"`
	UPIPayeeID    string        `mapstructure:"UPI_PAYEE_ID"`
	WebhookSecret string        `mapstructure:"CHECKOUT_WEBHOOK_SECRET"`
	TraceStdout   bool          `mapstructure:"TRACE_STDOUT"`
	LogLevel      string        `mapstructure:"LOG_LEVEL"`
}

var (
	current *Config
	mu      sync.RWMutex
)

func setDefaults(v *viper.Viper) {
	v.SetDefault("SERVER_PORT", "8000")
	v.SetDefault("BASE_PATH", "/api")
	v.SetDefault("DB_DRIVER", "postgres")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_NAME", "nursery")
	v.SetDefault("DB_USER", "local")
	v.SetDefault("DB_PASSWORD", "local")
	v.SetDefault("DB_SSL_MODE", "disable")
	v.SetDefault("SQLITE_PATH", "nursery.db")
	v.SetDefault("TOKEN_TTL", 24*time.Hour)
	v.SetDefault("OTP_ENABLED", false)
	v.SetDefault("OTP_TTL", 10*time.Minute)
	v.SetDefault("UPI_PAYEE_ID", "greenleaf@upi")
	v.SetDefault("LOG_LEVEL", "info")
	// keys without a default are invisible to AutomaticEnv during Unmarshal
	v.SetDefault("JWT_SECRET", "")
	v.SetDefault("REDIS_ADDR", "")
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("CHECKOUT_WEBHOOK_SECRET", "")
	v.SetDefault("TRACE_STDOUT", false)
}

// Load reads the config file at path (any format viper understands, .env included)
// with environment variables taking precedence. An empty path reads env only.
// onReload hooks run with the new config every time the file changes.
func Load(path string, onReload ...func(*Config)) (*Config, error) {
	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}
	cf, err := decode(v)
	if err != nil {
		return nil, err
	}

	mu.Lock()
	current = cf
	mu.Unlock()

	if path != "" {
		v.OnConfigChange(func(e fsnotify.Event) {
			reloaded, err := decode(v)
			if err != nil {
				logrus.Errorf("config: failed to reload %s err = %v", e.Name, err)
				return
			}
			mu.Lock()
			current = reloaded
			mu.Unlock()
			logrus.Infof("config: reloaded after %s", e.Op)
			for _, hook := range onReload {
				hook(reloaded)
			}
		})
		v.WatchConfig()
	}
	return cf, nil
}

func decode(v *viper.Viper) (*Config, error) {
	cf := &Config{}
	if err := v.Unmarshal(cf); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if cf.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}
	cf.BasePath = "/" + strings.Trim(cf.BasePath, "/")
	return cf, nil
}

// Get returns the latest loaded config.
func Get() *Config {
	mu.RLock()
	defer mu.RUnlock()
	return current
}

func (c *Config) PostgresDSN() string {
	return fmt.Sprintf("host=%s port=%s dbname=%s user=%s password=%s sslmode=%s",
		c.DbHost, c.DbPort, c.DbName, c.DbUser, c.DbPassword, c.DbSSLMode)
}
