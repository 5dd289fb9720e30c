// Package config assembles runtime settings from .env, the environment and an
// optional YAML file.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/soaringjerry/Sondage/internal/kv"
	"github.com/soaringjerry/Sondage/internal/services"
	"github.com/soaringjerry/Sondage/internal/utils"
)

const (
	defaultAddr       = ":8080"
	defaultSQLitePath = "sondage.db"
	defaultTimezone   = "Europe/Paris"
	defaultTokenTTL   = 12 * time.Hour
	defaultJWTSecret  = "dev-secret-change-me"
)

// Config holds everything the server and CLI need.
type Config struct {
	Addr           string
	Store          kv.Options
	JWTSecret      []byte
	TokenTTL       time.Duration
	Location       *time.Location
	StaticDir      string
	DevFrontendURL string
	Debug          bool
	Commit         string
	BuildTime      string

	Admins services.AllowList
	// Seed is nil unless the YAML file carries one.
	Seed []services.Section
}

// File is the YAML layout read from SONDAGE_CONFIG.
type File struct {
	Admins []AdminEntry  `yaml:"admins"`
	Seed   []SeedSection `yaml:"seed"`
}

type AdminEntry struct {
	Name      string `yaml:"name"`
	Phone     string `yaml:"phone"`
	PhoneHash string `yaml:"phone_hash"`
}

type SeedSection struct {
	Title       string         `yaml:"title"`
	Description string         `yaml:"description"`
	Questions   []SeedQuestion `yaml:"questions"`
}

type SeedQuestion struct {
	Text          string   `yaml:"text"`
	Options       []string `yaml:"options"`
	AllowMultiple bool     `yaml:"allow_multiple"`
	HasOther      bool     `yaml:"has_other"`
}

// Load reads .env (if present), then the environment, then the YAML file
// named by SONDAGE_CONFIG.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}
	return FromEnv()
}

// FromEnv builds the config from the current environment only.
func FromEnv() (*Config, error) {
	cfg := &Config{
		Addr: utils.SafeEnv("SONDAGE_ADDR", defaultAddr),
		Store: kv.Options{
			Driver:        utils.SafeEnv("SONDAGE_STORE", kv.DriverSQLite),
			SQLitePath:    utils.SafeEnv("SONDAGE_SQLITE_PATH", defaultSQLitePath),
			MigrationsDir: os.Getenv("SONDAGE_MIGRATIONS_DIR"),
			Redis: kv.RedisOptions{
				Addr:     utils.SafeEnv("SONDAGE_REDIS_ADDR", "localhost:6379"),
				Password: os.Getenv("SONDAGE_REDIS_PASSWORD"),
				DB:       utils.SafeEnvInt("SONDAGE_REDIS_DB", 0),
				Prefix:   utils.SafeEnv("SONDAGE_REDIS_PREFIX", "sondage:"),
			},
		},
		JWTSecret:      []byte(utils.SafeEnv("SONDAGE_JWT_SECRET", defaultJWTSecret)),
		TokenTTL:       utils.SafeEnvDuration("SONDAGE_TOKEN_TTL", defaultTokenTTL),
		StaticDir:      os.Getenv("SONDAGE_STATIC_DIR"),
		DevFrontendURL: os.Getenv("SONDAGE_DEV_FRONTEND_URL"),
		Debug:          utils.SafeEnvBool("SONDAGE_DEBUG", false),
		Commit:         os.Getenv("SONDAGE_COMMIT"),
		BuildTime:      os.Getenv("SONDAGE_BUILD_TIME"),
		Admins:         services.DefaultAdmins,
	}

	tz := utils.SafeEnv("SONDAGE_TIMEZONE", defaultTimezone)
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return nil, fmt.Errorf("invalid SONDAGE_TIMEZONE %q: %w", tz, err)
	}
	cfg.Location = loc

	if path := os.Getenv("SONDAGE_CONFIG"); path != "" {
		f, err := ReadFile(path)
		if err != nil {
			return nil, err
		}
		if err := cfg.apply(f); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

// ReadFile parses a YAML config file.
func ReadFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return &f, nil
}

func (c *Config) apply(f *File) error {
	if len(f.Admins) > 0 {
		admins := make(services.AllowList, 0, len(f.Admins))
		for i, a := range f.Admins {
			if strings.TrimSpace(a.Name) == "" || (a.Phone == "" && a.PhoneHash == "") {
				return fmt.Errorf("admins[%d]: name and phone or phone_hash required", i)
			}
			entry := services.Admin{Name: a.Name, Phone: a.Phone}
			if a.PhoneHash != "" {
				entry.PhoneHash = []byte(a.PhoneHash)
			}
			admins = append(admins, entry)
		}
		c.Admins = admins
	}
	if len(f.Seed) > 0 {
		seed, err := buildSeed(f.Seed)
		if err != nil {
			return err
		}
		c.Seed = seed
	}
	return nil
}

// buildSeed numbers sections and questions from 1 in file order.
func buildSeed(in []SeedSection) ([]services.Section, error) {
	out := make([]services.Section, 0, len(in))
	for i, s := range in {
		sec := services.Section{ID: i + 1, Title: s.Title, Description: s.Description, Questions: []services.Question{}}
		for j, q := range s.Questions {
			norm, err := services.NormalizeQuestion(services.QuestionInput{
				Text: q.Text, Options: q.Options, AllowMultiple: q.AllowMultiple, HasOther: q.HasOther,
			})
			if err != nil {
				return nil, fmt.Errorf("seed[%d].questions[%d]: %w", i, j, err)
			}
			sec.Questions = append(sec.Questions, services.Question{
				ID:            j + 1,
				Text:          norm.Text,
				Options:       norm.Options,
				AllowMultiple: norm.AllowMultiple,
				HasOther:      norm.HasOther,
			})
		}
		out = append(out, sec)
	}
	return out, nil
}
