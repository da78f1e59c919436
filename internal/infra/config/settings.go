package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"

	"github.com/YoshitsuguKoike/potionlab/internal/app"
	"github.com/YoshitsuguKoike/potionlab/internal/app/config"
	"github.com/YoshitsuguKoike/potionlab/internal/domain/service/projection"
)

// EnvPrefix prefixes every environment override
const EnvPrefix = "POTIONLAB_"

// RawSettings represents the structure of setting.json file.
// JSON tags are used for marshaling/unmarshaling.
type RawSettings struct {
	// Core settings
	Home        *string `json:"home"`
	CatalogPath *string `json:"catalog_path"`

	// Persistence
	Store     *string `json:"store"`
	StatePath *string `json:"state_path"`
	DBPath    *string `json:"db_path"`
	BadgerDir *string `json:"badger_dir"`

	// Backup
	Backup    *string `json:"backup"`
	BackupDir *string `json:"backup_dir"`
	S3Bucket  *string `json:"s3_bucket"`
	S3Prefix  *string `json:"s3_prefix"`
	S3Region  *string `json:"s3_region"`

	// Presentation and hosting
	Output     *string `json:"output"`
	ListenAddr *string `json:"listen_addr"`

	// Research behaviour
	MatrixPrecedence     *[]string `json:"matrix_precedence"`
	RecommendSkipPending *bool     `json:"recommend_skip_pending"`

	// Logging
	StderrLevel *string `json:"stderr_level"`
}

// LoadSettings loads configuration for baseDir.
// Priority: setting.json > ENV (POTIONLAB_*) > defaults
func LoadSettings(fs afero.Fs, baseDir string) (*config.AppConfig, error) {
	settings := &RawSettings{}
	configSource := "default"
	settingPath := ""

	// Try to load setting.json
	jsonPath := filepath.Join(baseDir, "setting.json")
	if data, err := afero.ReadFile(fs, jsonPath); err == nil {
		if err := json.Unmarshal(data, settings); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", jsonPath, err)
		}
		configSource = "json"
		settingPath = jsonPath
	}

	if applyEnv(settings) && configSource == "default" {
		configSource = "env"
	}

	applyDefaults(settings, baseDir)

	if err := validate(settings); err != nil {
		return nil, err
	}

	return buildAppConfig(settings, configSource, settingPath), nil
}

// applyEnv fills fields left unset by setting.json from the environment.
// It reports whether any variable was used.
func applyEnv(settings *RawSettings) bool {
	used := false
	str := func(dst **string, key string) {
		if *dst != nil {
			return
		}
		if v, ok := os.LookupEnv(EnvPrefix + key); ok && v != "" {
			*dst = &v
			used = true
		}
	}
	str(&settings.CatalogPath, "CATALOG_PATH")
	str(&settings.Store, "STORE")
	str(&settings.StatePath, "STATE_PATH")
	str(&settings.DBPath, "DB_PATH")
	str(&settings.BadgerDir, "BADGER_DIR")
	str(&settings.Backup, "BACKUP")
	str(&settings.BackupDir, "BACKUP_DIR")
	str(&settings.S3Bucket, "S3_BUCKET")
	str(&settings.S3Prefix, "S3_PREFIX")
	str(&settings.S3Region, "S3_REGION")
	str(&settings.Output, "OUTPUT")
	str(&settings.ListenAddr, "LISTEN_ADDR")
	str(&settings.StderrLevel, "STDERR_LEVEL")

	if settings.MatrixPrecedence == nil {
		if v := os.Getenv(EnvPrefix + "MATRIX_PRECEDENCE"); v != "" {
			list := splitList(v)
			settings.MatrixPrecedence = &list
			used = true
		}
	}
	if settings.RecommendSkipPending == nil {
		if v := os.Getenv(EnvPrefix + "RECOMMEND_SKIP_PENDING"); v != "" {
			b := toBool(v)
			settings.RecommendSkipPending = &b
			used = true
		}
	}
	return used
}

// applyDefaults fills in default values for any nil fields
func applyDefaults(settings *RawSettings, baseDir string) {
	paths := app.PathsFor(baseDir)
	def := func(dst **string, v string) {
		if *dst == nil {
			*dst = &v
		}
	}

	def(&settings.Home, baseDir)
	def(&settings.CatalogPath, "")

	def(&settings.Store, "file")
	def(&settings.StatePath, paths.State)
	def(&settings.DBPath, paths.DB)
	def(&settings.BadgerDir, paths.Badger)

	def(&settings.Backup, "file")
	def(&settings.BackupDir, paths.Backups)
	def(&settings.S3Bucket, "")
	def(&settings.S3Prefix, "potionlab")
	def(&settings.S3Region, "")

	def(&settings.Output, "text")
	def(&settings.ListenAddr, "127.0.0.1:8080")

	if settings.MatrixPrecedence == nil {
		var v []string
		for _, st := range projection.DefaultPolicy().Precedence {
			v = append(v, string(st))
		}
		settings.MatrixPrecedence = &v
	}
	if settings.RecommendSkipPending == nil {
		v := false
		settings.RecommendSkipPending = &v
	}

	def(&settings.StderrLevel, "warn") // Default to WARN level
}

// validate rejects enumerated settings with unknown values
func validate(settings *RawSettings) error {
	oneOf := func(name, v string, allowed ...string) error {
		for _, a := range allowed {
			if v == a {
				return nil
			}
		}
		return fmt.Errorf("invalid %s %q (want one of %s)", name, v, strings.Join(allowed, ", "))
	}
	if err := oneOf("store", *settings.Store, "file", "sqlite", "badger"); err != nil {
		return err
	}
	if err := oneOf("backup", *settings.Backup, "clipboard", "file", "s3"); err != nil {
		return err
	}
	if err := oneOf("output", *settings.Output, "text", "json"); err != nil {
		return err
	}
	if err := oneOf("stderr_level", strings.ToLower(*settings.StderrLevel), "debug", "info", "warn", "error", "off"); err != nil {
		return err
	}
	for _, s := range *settings.MatrixPrecedence {
		if _, err := projection.ParseCellState(s); err != nil {
			return fmt.Errorf("invalid matrix_precedence: %w", err)
		}
	}
	return nil
}

// buildAppConfig converts RawSettings to AppConfig
func buildAppConfig(settings *RawSettings, configSource, settingPath string) *config.AppConfig {
	return config.NewAppConfig(config.Values{
		Home:                 *settings.Home,
		CatalogPath:          *settings.CatalogPath,
		Store:                *settings.Store,
		StatePath:            *settings.StatePath,
		DBPath:               *settings.DBPath,
		BadgerDir:            *settings.BadgerDir,
		Backup:               *settings.Backup,
		BackupDir:            *settings.BackupDir,
		S3Bucket:             *settings.S3Bucket,
		S3Prefix:             *settings.S3Prefix,
		S3Region:             *settings.S3Region,
		Output:               *settings.Output,
		ListenAddr:           *settings.ListenAddr,
		MatrixPrecedence:     *settings.MatrixPrecedence,
		RecommendSkipPending: *settings.RecommendSkipPending,
		StderrLevel:          *settings.StderrLevel,
	}, configSource, settingPath)
}

// toBool converts various string representations to boolean
func toBool(s string) bool {
	s = strings.ToLower(strings.TrimSpace(s))
	return s == "1" || s == "true" || s == "yes" || s == "on"
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// CreateDefaultSettings creates a default setting.json content
func CreateDefaultSettings(baseDir string) []byte {
	settings := &RawSettings{}
	applyDefaults(settings, baseDir)

	data, _ := json.MarshalIndent(settings, "", "  ")
	return data
}
