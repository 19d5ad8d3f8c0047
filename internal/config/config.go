// internal/config/config.go
//
// Runtime configuration for the server and the CLI.
//
// Sources, lowest precedence first:
//   - built-in defaults
//   - the YAML file named by SOLVER_CONFIG (optional)
//   - environment variables, after .env has been loaded by godotenv
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/fxh90/WordleSolver/internal/feedback"
	"github.com/fxh90/WordleSolver/internal/solver"
)

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("invalid config")

type Config struct {
	Port            string  `yaml:"port"`
	LogLevel        string  `yaml:"log_level"`
	DBPath          string  `yaml:"db_path"`
	JWTSecret       string  `yaml:"jwt_secret"`
	JWTExpiresHours int     `yaml:"jwt_expires_hours"`
	DailySalt       string  `yaml:"daily_salt"`
	ClientOrigin    string  `yaml:"client_origin"`
	AnswersFile     string  `yaml:"answers_file"`
	AllowedFile     string  `yaml:"allowed_file"`
	WordLength      int     `yaml:"word_length"`
	MaxAttempts     int     `yaml:"max_attempts"`
	Strategy        string  `yaml:"strategy"`
	ScoreK          float64 `yaml:"score_k"`
	Workers         int     `yaml:"workers"`
	CacheSize       int     `yaml:"cache_size"`
	Boards          int     `yaml:"boards"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Port:            "5175",
		LogLevel:        "info",
		DBPath:          "data/solver.db",
		JWTSecret:       "dev_secret_change_me",
		JWTExpiresHours: 24,
		DailySalt:       "local_dev_salt",
		ClientOrigin:    "http://localhost:5173",
		WordLength:      feedback.DefaultLength,
		MaxAttempts:     solver.DefaultMaxAttempts,
		Strategy:        solver.StrategyEntropy,
		ScoreK:          solver.DefaultK,
		CacheSize:       256,
		Boards:          4,
	}
}

// Load reads .env, then SOLVER_CONFIG, then the process environment.
func Load() (Config, error) {
	_ = godotenv.Load()
	return LoadFrom(os.Getenv("SOLVER_CONFIG"), os.Getenv)
}

// LoadFrom builds a Config from an optional YAML file and an environment
// lookup. A missing file is an error only when path is non-empty.
func LoadFrom(path string, getenv func(string) string) (Config, error) {
	c := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &c); err != nil {
			return Config{}, fmt.Errorf("failed to parse YAML config: %w", err)
		}
	}
	if err := c.applyEnv(getenv); err != nil {
		return Config{}, err
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

func (c *Config) applyEnv(getenv func(string) string) error {
	strs := map[string]*string{
		"PORT":               &c.Port,
		"LOG_LEVEL":          &c.LogLevel,
		"DB_PATH":            &c.DBPath,
		"JWT_SECRET":         &c.JWTSecret,
		"DAILY_SALT":         &c.DailySalt,
		"CLIENT_ORIGIN":      &c.ClientOrigin,
		"WORDS_ANSWERS_FILE": &c.AnswersFile,
		"WORDS_ALLOWED_FILE": &c.AllowedFile,
		"STRATEGY":           &c.Strategy,
	}
	for k, p := range strs {
		if v := getenv(k); v != "" {
			*p = v
		}
	}
	ints := map[string]*int{
		"JWT_EXPIRES_HOURS": &c.JWTExpiresHours,
		"WORD_LENGTH":       &c.WordLength,
		"MAX_ATTEMPTS":      &c.MaxAttempts,
		"WORKERS":           &c.Workers,
		"CACHE_SIZE":        &c.CacheSize,
		"BOARDS":            &c.Boards,
	}
	for k, p := range ints {
		v := getenv(k)
		if v == "" {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%w: %s=%q is not an integer", ErrInvalid, k, v)
		}
		*p = n
	}
	if v := getenv("SCORE_K"); v != "" {
		k, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("%w: SCORE_K=%q is not a number", ErrInvalid, v)
		}
		c.ScoreK = k
	}
	return nil
}

// Validate checks ranges and that the strategy resolves.
func (c Config) Validate() error {
	if c.Port == "" {
		return fmt.Errorf("%w: port is empty", ErrInvalid)
	}
	if !feedback.ValidLength(c.WordLength) {
		return fmt.Errorf("%w: word_length %d: %w", ErrInvalid, c.WordLength, feedback.ErrInvalidLength)
	}
	if c.MaxAttempts < 1 {
		return fmt.Errorf("%w: max_attempts must be positive", ErrInvalid)
	}
	if c.Boards < 1 {
		return fmt.Errorf("%w: boards must be positive", ErrInvalid)
	}
	if c.Workers < 0 || c.CacheSize < 0 {
		return fmt.Errorf("%w: workers and cache_size must not be negative", ErrInvalid)
	}
	if c.JWTExpiresHours < 1 {
		return fmt.Errorf("%w: jwt_expires_hours must be positive", ErrInvalid)
	}
	if _, err := solver.LookupStrategy(c.Strategy, c.ScoreK); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	return nil
}
