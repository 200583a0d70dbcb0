package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/gookit/color"
	"github.com/knadh/koanf/parsers/dotenv"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/wattwise/wattwise/pkg/libs"
)

// Config wraps koanf with dotenv + environment providers.
type Config struct {
	k *koanf.Koanf
}

// New initializes a new config instance. Values from the environment
// override the .env file.
func New(envPath string, watchEnv bool, callback func()) *Config {
	k := koanf.New(".")
	app := &Config{k: k}
	f := file.Provider(envPath)
	if _, err := os.Stat(envPath); err == nil {
		if err := app.k.Load(f, dotenv.Parser()); err != nil {
			color.Red.Println("Error loading .env file: " + err.Error())
			os.Exit(0)
		}
	} else {
		color.Yellow.Println("No .env file found at " + envPath)
	}

	if err := app.k.Load(env.Provider("", ".", nil), nil); err != nil {
		color.Red.Println("Error loading environment variables: " + err.Error())
		os.Exit(0)
	}
	if watchEnv {
		f.Watch(func(event interface{}, err error) {
			if err != nil {
				log.Printf("watch error: %v", err)
				return
			}
			if callback != nil {
				callback()
			}
		})
	}
	return app
}

// GetString retrieves a string value with an optional default.
func (app *Config) GetString(path string, defaultValue ...string) string {
	v := app.k.Get(path)
	if v == nil {
		if len(defaultValue) > 0 {
			return defaultValue[0]
		}
		return ""
	}
	return fmt.Sprintf("%v", v)
}

// GetInt retrieves an integer value with an optional default.
func (app *Config) GetInt(path string, defaultValue ...int) int {
	v := app.GetString(path)
	if v == "" {
		if len(defaultValue) > 0 {
			return defaultValue[0]
		}
		return 0
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		if len(defaultValue) > 0 {
			return defaultValue[0]
		}
		return 0
	}
	return n
}

// GetBool retrieves a boolean value with an optional default.
func (app *Config) GetBool(path string, defaultValue ...bool) bool {
	v := app.GetString(path)
	if v == "" {
		if len(defaultValue) > 0 {
			return defaultValue[0]
		}
		return false
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		if len(defaultValue) > 0 {
			return defaultValue[0]
		}
		return false
	}
	return b
}

// GetDuration retrieves a duration value with a default expressed as a
// duration string ("15m", "24h").
func (app *Config) GetDuration(path string, defaultValue string) time.Duration {
	def, _ := time.ParseDuration(defaultValue)
	v := app.GetString(path)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		log.Printf("invalid duration for %s, defaulting to %s", path, defaultValue)
		return def
	}
	return d
}

// App is the resolved service configuration.
type App struct {
	Addr           string
	Environment    string
	EnableHTTPS    bool
	DBDriver       string
	DBPath         string
	DBHost         string
	DBPort         int
	DBUser         string
	DBPassword     string
	DBName         string
	SessionName    string
	SessionTimeout time.Duration
	Issuer         string
	RatePolicies   map[string]libs.RatePolicy
}

// Load resolves the typed application config from the environment.
func Load(c *Config) *App {
	policies := libs.DefaultRatePolicies()
	policies[libs.BucketLogin] = libs.RatePolicy{
		MaxRequests: c.GetInt("AUTH_LOGIN_MAX_REQUESTS", 10),
		Window:      c.GetDuration("AUTH_LOGIN_WINDOW", "15m"),
	}
	policies[libs.BucketEnable2FA] = libs.RatePolicy{
		MaxRequests: c.GetInt("AUTH_ENABLE_2FA_MAX_REQUESTS", 5),
		Window:      c.GetDuration("AUTH_ENABLE_2FA_WINDOW", "15m"),
	}
	policies[libs.BucketVerify2FA] = libs.RatePolicy{
		MaxRequests: c.GetInt("AUTH_VERIFY_2FA_MAX_REQUESTS", 5),
		Window:      c.GetDuration("AUTH_VERIFY_2FA_WINDOW", "15m"),
	}

	return &App{
		Addr:           c.GetString("LISTEN_ADDR", ":8080"),
		Environment:    c.GetString("ENVIRONMENT", "development"),
		EnableHTTPS:    c.GetBool("ENABLE_HTTPS", false),
		DBDriver:       c.GetString("DB_DRIVER", "sqlite"),
		DBPath:         c.GetString("DB_PATH", "wattwise.db"),
		DBHost:         c.GetString("DB_HOST", "localhost"),
		DBPort:         c.GetInt("DB_PORT", 5432),
		DBUser:         c.GetString("DB_USER", "postgres"),
		DBPassword:     c.GetString("DB_PASSWORD", "postgres"),
		DBName:         c.GetString("DB_NAME", "wattwise"),
		SessionName:    c.GetString("AUTH_SESSION_NAME", "session_token"),
		SessionTimeout: c.GetDuration("AUTH_SESSION_TIMEOUT", "24h"),
		Issuer:         c.GetString("AUTH_TOTP_ISSUER", "WattWise"),
		RatePolicies:   policies,
	}
}
