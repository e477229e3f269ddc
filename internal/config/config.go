package config

import (
	"encoding/base64"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"weeklog/internal/jira"
)

// AppConfig holds the complete application configuration.
type AppConfig struct {
	// Jira carries env-provided credentials. BaseURL/EncodedKey are empty
	// when the saved account from the session store should be used instead.
	Jira jira.Config

	DataPath    string
	LogDir      string
	SessionPath string

	// WorkingHoursPerDay is the fallback when the instance configuration
	// cannot be read.
	WorkingHoursPerDay float64

	// Debounce is the settle delay for week navigation.
	Debounce time.Duration
}

// Load reads configuration from .env files and environment variables. The
// binary's directory takes priority over the working directory, matching how
// the tracker is usually installed.
func Load() (*AppConfig, error) {
	exePath, err := os.Executable()
	exeDir := ""
	if err == nil {
		exeDir = filepath.Dir(exePath)
		envPath := filepath.Join(exeDir, ".env")
		if err := godotenv.Load(envPath); err == nil {
			log.Debug().Str("path", envPath).Msg("Loaded configuration from binary directory")
		}
	}

	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("No .env file in working directory, relying on environment variables")
	}

	dataPath := os.Getenv("WEEKLOG_DATA_PATH")
	if dataPath == "" {
		if home, err := os.UserHomeDir(); err == nil {
			dataPath = filepath.Join(home, ".weeklog")
		} else if exeDir != "" {
			dataPath = exeDir
		} else {
			dataPath = "."
		}
	}

	logDir := filepath.Join(dataPath, "logs")
	if err := os.MkdirAll(logDir, 0755); err != nil {
		log.Warn().Err(err).Str("path", logDir).Msg("Failed to create log directory")
	}

	timeoutSecs, _ := strconv.Atoi(getEnv("JIRA_REQUEST_TIMEOUT_SECONDS", "90"))
	debounceMillis, _ := strconv.Atoi(getEnv("WEEKLOG_DEBOUNCE_MS", "300"))
	workingHours, err := strconv.ParseFloat(getEnv("WEEKLOG_WORKING_HOURS_PER_DAY", "8"), 64)
	if err != nil || workingHours <= 0 {
		workingHours = 8
	}

	cfg := &AppConfig{
		Jira: jira.Config{
			BaseURL:    getEnv("JIRA_URL", ""),
			EncodedKey: encodedKeyFromEnv(),
			Timeout:    time.Duration(timeoutSecs) * time.Second,
		},
		DataPath:           dataPath,
		LogDir:             logDir,
		SessionPath:        filepath.Join(dataPath, "session.db"),
		WorkingHoursPerDay: workingHours,
		Debounce:           time.Duration(debounceMillis) * time.Millisecond,
	}

	return cfg, nil
}

// encodedKeyFromEnv builds the basic-auth pair from JIRA_EMAIL and
// JIRA_API_TOKEN, for headless use without a saved account.
func encodedKeyFromEnv() string {
	email := os.Getenv("JIRA_EMAIL")
	token := os.Getenv("JIRA_API_TOKEN")
	if email == "" || token == "" {
		return ""
	}
	return base64.StdEncoding.EncodeToString([]byte(email + ":" + token))
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}
