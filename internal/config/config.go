package config

import (
	"fmt"
	"os"
	"regexp"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/sirupsen/logrus"
)

const (
	defaultBaseURL      = "http://forum1.hkgolden.com"
	defaultChannel      = "BW"
	defaultTitle        = "高登"
	defaultCacheDir     = "data/html"
	defaultCacheDB      = "data/cache.db"
	defaultFetchTimeout = 10 * time.Second
	defaultLogFile      = "hkg.log"
	defaultLogLevel     = "info"

	BackendFile   = "file"
	BackendSQLite = "sqlite"
)

var channelPattern = regexp.MustCompile(`^[A-Za-z]{1,8}$`)

// Config holds runtime settings for the CLI app.
type Config struct {
	BaseURL      string
	Channel      string
	Title        string
	CacheBackend string
	CacheDir     string
	CacheDB      string
	FetchTimeout time.Duration
	LogFile      string
	LogLevel     string
}

func LoadFromEnv() (Config, error) {
	cfg := Config{
		BaseURL:      os.Getenv("HKG_BASE_URL"),
		Channel:      os.Getenv("HKG_CHANNEL"),
		Title:        os.Getenv("HKG_TITLE"),
		CacheBackend: os.Getenv("HKG_CACHE_BACKEND"),
		CacheDir:     os.Getenv("HKG_CACHE_DIR"),
		CacheDB:      os.Getenv("HKG_CACHE_DB"),
		LogFile:      os.Getenv("HKG_LOG_FILE"),
		LogLevel:     os.Getenv("HKG_LOG_LEVEL"),
	}

	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	if cfg.Channel == "" {
		cfg.Channel = defaultChannel
	}
	if cfg.Title == "" {
		cfg.Title = defaultTitle
	}
	if cfg.CacheBackend == "" {
		cfg.CacheBackend = BackendFile
	}
	if cfg.CacheDir == "" {
		cfg.CacheDir = defaultCacheDir
	}
	if cfg.CacheDB == "" {
		cfg.CacheDB = defaultCacheDB
	}
	if cfg.LogFile == "" {
		cfg.LogFile = defaultLogFile
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = defaultLogLevel
	}

	cfg.FetchTimeout = defaultFetchTimeout
	if raw := strings.TrimSpace(os.Getenv("HKG_FETCH_TIMEOUT")); raw != "" {
		d, err := time.ParseDuration(raw)
		if err != nil {
			return Config{}, fmt.Errorf("HKG_FETCH_TIMEOUT: %w", err)
		}
		cfg.FetchTimeout = d
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func (c Config) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.BaseURL, validation.Required, is.URL, validation.By(noTrailingSlash)),
		validation.Field(&c.Channel, validation.Required, validation.Match(channelPattern)),
		validation.Field(&c.CacheBackend, validation.Required, validation.In(BackendFile, BackendSQLite)),
		validation.Field(&c.CacheDir, validation.When(c.CacheBackend == BackendFile, validation.Required)),
		validation.Field(&c.CacheDB, validation.When(c.CacheBackend == BackendSQLite, validation.Required)),
		validation.Field(&c.FetchTimeout, validation.Required, validation.Min(time.Second)),
		validation.Field(&c.LogLevel, validation.By(logLevel)),
	)
}

func noTrailingSlash(value interface{}) error {
	s, _ := value.(string)
	if strings.HasSuffix(s, "/") {
		return fmt.Errorf("must not end with '/'")
	}
	return nil
}

func logLevel(value interface{}) error {
	s, _ := value.(string)
	if _, err := logrus.ParseLevel(s); err != nil {
		return fmt.Errorf("unknown log level %q", s)
	}
	return nil
}
