package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/maccabipedia/clubstats/internal/platform/logging"
	"github.com/maccabipedia/clubstats/internal/platform/resilience"
)

const (
	EnvDev  = "dev"
	EnvProd = "prod"
)

// Config stores runtime configuration for the analytics service.
type Config struct {
	AppEnv         string
	ServiceName    string
	ServiceVersion string
	LogLevel       logging.Level

	// ClubNameVariants are every name the club has carried; orientation of
	// each match is resolved against this list.
	ClubNameVariants []string
	DataDir          string
	IngestWorkers    int
	ScanWorkers      int

	CacheEnabled bool
	CacheTTL     time.Duration

	HTTPEnabled  bool
	HTTPAddr     string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration

	ExportEnabled bool
	DBURL         string

	CargoEnabled    bool
	CargoBaseURL    string
	CargoTimeout    time.Duration
	CargoMaxRetries int
	CargoCircuit    resilience.CircuitBreakerConfig

	UptraceEnabled bool
	UptraceDSN     string

	PyroscopeEnabled       bool
	PyroscopeServerAddress string
	PyroscopeAppName       string
	PyroscopeAuthToken     string
	PyroscopeUploadRate    time.Duration
}

func Load() (Config, error) {
	appEnv, err := parseAppEnv(getEnv("APP_ENV", EnvDev))
	if err != nil {
		return Config{}, err
	}

	clubVariants := splitCSV(getEnv("CLUB_NAME_VARIANTS", "Maccabi Tel Aviv,Maccabi Tel-Aviv"))
	if len(clubVariants) == 0 {
		return Config{}, fmt.Errorf("CLUB_NAME_VARIANTS must list at least one name")
	}

	ingestWorkers, err := getEnvAsInt("INGEST_WORKERS", 4)
	if err != nil {
		return Config{}, fmt.Errorf("parse INGEST_WORKERS: %w", err)
	}
	if ingestWorkers < 1 {
		return Config{}, fmt.Errorf("INGEST_WORKERS must be >= 1")
	}

	scanWorkers, err := getEnvAsInt("SCAN_WORKERS", 4)
	if err != nil {
		return Config{}, fmt.Errorf("parse SCAN_WORKERS: %w", err)
	}
	if scanWorkers < 1 {
		return Config{}, fmt.Errorf("SCAN_WORKERS must be >= 1")
	}

	cacheEnabled, err := strconv.ParseBool(getEnv("CACHE_ENABLED", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse CACHE_ENABLED: %w", err)
	}
	cacheTTL, err := time.ParseDuration(getEnv("CACHE_TTL", "10m"))
	if err != nil {
		return Config{}, fmt.Errorf("parse CACHE_TTL: %w", err)
	}
	if cacheTTL <= 0 {
		return Config{}, fmt.Errorf("CACHE_TTL must be > 0")
	}

	httpEnabled, err := strconv.ParseBool(getEnv("HTTP_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse HTTP_ENABLED: %w", err)
	}
	httpAddr := strings.TrimSpace(getEnv("HTTP_ADDR", ":8080"))
	if httpEnabled && httpAddr == "" {
		return Config{}, fmt.Errorf("HTTP_ADDR is required when HTTP_ENABLED=true")
	}
	readTimeout, err := time.ParseDuration(getEnv("HTTP_READ_TIMEOUT", "10s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse HTTP_READ_TIMEOUT: %w", err)
	}
	writeTimeout, err := time.ParseDuration(getEnv("HTTP_WRITE_TIMEOUT", "30s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse HTTP_WRITE_TIMEOUT: %w", err)
	}

	exportEnabled, err := strconv.ParseBool(getEnv("EXPORT_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse EXPORT_ENABLED: %w", err)
	}
	dbURL := strings.TrimSpace(getEnv("DB_URL", ""))
	if exportEnabled && dbURL == "" {
		return Config{}, fmt.Errorf("DB_URL is required when EXPORT_ENABLED=true")
	}

	cargoEnabled, err := strconv.ParseBool(getEnv("CARGO_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse CARGO_ENABLED: %w", err)
	}
	cargoBaseURL := strings.TrimSpace(getEnv("CARGO_BASE_URL", ""))
	if cargoEnabled && cargoBaseURL == "" {
		return Config{}, fmt.Errorf("CARGO_BASE_URL is required when CARGO_ENABLED=true")
	}
	cargoTimeout, err := time.ParseDuration(getEnv("CARGO_TIMEOUT", "20s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse CARGO_TIMEOUT: %w", err)
	}
	if cargoTimeout <= 0 {
		return Config{}, fmt.Errorf("CARGO_TIMEOUT must be > 0")
	}
	cargoMaxRetries, err := getEnvAsInt("CARGO_MAX_RETRIES", 3)
	if err != nil {
		return Config{}, fmt.Errorf("parse CARGO_MAX_RETRIES: %w", err)
	}
	if cargoMaxRetries < 0 {
		return Config{}, fmt.Errorf("CARGO_MAX_RETRIES must be >= 0")
	}

	cargoCircuitEnabled, err := strconv.ParseBool(getEnv("CARGO_CIRCUIT_ENABLED", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse CARGO_CIRCUIT_ENABLED: %w", err)
	}
	cargoCircuitFailures, err := getEnvAsInt("CARGO_CIRCUIT_FAILURE_COUNT", 5)
	if err != nil {
		return Config{}, fmt.Errorf("parse CARGO_CIRCUIT_FAILURE_COUNT: %w", err)
	}
	cargoCircuitOpenTimeout, err := time.ParseDuration(getEnv("CARGO_CIRCUIT_OPEN_TIMEOUT", "15s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse CARGO_CIRCUIT_OPEN_TIMEOUT: %w", err)
	}
	cargoCircuitHalfOpen, err := getEnvAsInt("CARGO_CIRCUIT_HALF_OPEN_MAX_REQ", 2)
	if err != nil {
		return Config{}, fmt.Errorf("parse CARGO_CIRCUIT_HALF_OPEN_MAX_REQ: %w", err)
	}

	uptraceEnabled, err := strconv.ParseBool(getEnv("UPTRACE_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse UPTRACE_ENABLED: %w", err)
	}
	uptraceDSN := strings.TrimSpace(getEnv("UPTRACE_DSN", ""))
	if uptraceEnabled && uptraceDSN == "" {
		return Config{}, fmt.Errorf("UPTRACE_DSN is required when UPTRACE_ENABLED=true")
	}

	pyroscopeEnabled, err := strconv.ParseBool(getEnv("PYROSCOPE_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PYROSCOPE_ENABLED: %w", err)
	}
	pyroscopeServerAddress := strings.TrimSpace(getEnv("PYROSCOPE_SERVER_ADDRESS", ""))
	if pyroscopeEnabled && pyroscopeServerAddress == "" {
		return Config{}, fmt.Errorf("PYROSCOPE_SERVER_ADDRESS is required when PYROSCOPE_ENABLED=true")
	}
	pyroscopeUploadRate, err := time.ParseDuration(getEnv("PYROSCOPE_UPLOAD_RATE", "15s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PYROSCOPE_UPLOAD_RATE: %w", err)
	}
	if pyroscopeUploadRate <= 0 {
		return Config{}, fmt.Errorf("PYROSCOPE_UPLOAD_RATE must be > 0")
	}

	return Config{
		AppEnv:           appEnv,
		ServiceName:      getEnv("SERVICE_NAME", "clubstats"),
		ServiceVersion:   getEnv("SERVICE_VERSION", "dev"),
		LogLevel:         parseLogLevel(getEnv("LOG_LEVEL", "info")),
		ClubNameVariants: clubVariants,
		DataDir:          strings.TrimSpace(getEnv("DATA_DIR", "./data")),
		IngestWorkers:    ingestWorkers,
		ScanWorkers:      scanWorkers,
		CacheEnabled:     cacheEnabled,
		CacheTTL:         cacheTTL,
		HTTPEnabled:      httpEnabled,
		HTTPAddr:         httpAddr,
		ReadTimeout:      readTimeout,
		WriteTimeout:     writeTimeout,
		ExportEnabled:    exportEnabled,
		DBURL:            dbURL,
		CargoEnabled:     cargoEnabled,
		CargoBaseURL:     cargoBaseURL,
		CargoTimeout:     cargoTimeout,
		CargoMaxRetries:  cargoMaxRetries,
		CargoCircuit: resilience.NormalizeCircuitBreakerConfig(resilience.CircuitBreakerConfig{
			Enabled:          cargoCircuitEnabled,
			FailureThreshold: cargoCircuitFailures,
			OpenTimeout:      cargoCircuitOpenTimeout,
			HalfOpenMaxReq:   cargoCircuitHalfOpen,
		}),
		UptraceEnabled:         uptraceEnabled,
		UptraceDSN:             uptraceDSN,
		PyroscopeEnabled:       pyroscopeEnabled,
		PyroscopeServerAddress: pyroscopeServerAddress,
		PyroscopeAppName:       getEnv("PYROSCOPE_APP_NAME", "clubstats"),
		PyroscopeAuthToken:     getEnv("PYROSCOPE_AUTH_TOKEN", ""),
		PyroscopeUploadRate:    pyroscopeUploadRate,
	}, nil
}

func parseAppEnv(v string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case EnvDev:
		return EnvDev, nil
	case EnvProd:
		return EnvProd, nil
	default:
		return "", fmt.Errorf("unknown APP_ENV %q", v)
	}
}

func parseLogLevel(v string) logging.Level {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "debug":
		return logging.LevelDebug
	case "warn", "warning":
		return logging.LevelWarn
	case "error":
		return logging.LevelError
	default:
		return logging.LevelInfo
	}
}

func getEnv(key, fallback string) string {
	value := os.Getenv(key)
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	return value
}

func getEnvAsInt(key string, fallback int) (int, error) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback, nil
	}

	out, err := strconv.Atoi(value)
	if err != nil {
		return 0, err
	}
	return out, nil
}

func splitCSV(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}
