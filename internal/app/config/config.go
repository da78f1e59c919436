package config

// Config provides read-only access to application configuration.
// This interface abstracts the configuration source (JSON, ENV, defaults)
// and ensures the app layer doesn't depend on infrastructure details.
type Config interface {
	// Core settings
	Home() string        // Base directory (POTIONLAB_HOME)
	CatalogPath() string // Catalog YAML; empty selects the built-in catalog

	// Persistence
	Store() string     // State store backend: file, sqlite or badger
	StatePath() string // JSON state file for the file store
	DBPath() string    // Database file for the sqlite store
	BadgerDir() string // Directory for the badger store

	// Backup
	Backup() string    // Default backup medium: clipboard, file or s3
	BackupDir() string // Directory for file backups
	S3Bucket() string
	S3Prefix() string
	S3Region() string

	// Presentation and hosting
	Output() string     // Output format: text or json
	ListenAddr() string // Address of the HTTP host

	// Research behaviour
	MatrixPrecedence() []string // Cell states in precedence order
	RecommendSkipPending() bool // Hide queued values from recommendations

	// Logging
	StderrLevel() string // Stderr log level (POTIONLAB_STDERR_LEVEL)

	// Metadata
	ConfigSource() string // Source of configuration: "json", "env", or "default"
	SettingPath() string  // Path to setting.json if loaded from file
}

// Values carries resolved settings into NewAppConfig
type Values struct {
	Home                 string
	CatalogPath          string
	Store                string
	StatePath            string
	DBPath               string
	BadgerDir            string
	Backup               string
	BackupDir            string
	S3Bucket             string
	S3Prefix             string
	S3Region             string
	Output               string
	ListenAddr           string
	MatrixPrecedence     []string
	RecommendSkipPending bool
	StderrLevel          string
}

// AppConfig is the concrete implementation of Config interface.
// It holds all configuration values loaded from various sources.
type AppConfig struct {
	v Values

	configSource string
	settingPath  string
}

// NewAppConfig creates a new AppConfig instance
func NewAppConfig(v Values, configSource, settingPath string) *AppConfig {
	v.MatrixPrecedence = append([]string(nil), v.MatrixPrecedence...)
	return &AppConfig{v: v, configSource: configSource, settingPath: settingPath}
}

// Home returns the base directory
func (c *AppConfig) Home() string {
	return c.v.Home
}

// CatalogPath returns the catalog file path
func (c *AppConfig) CatalogPath() string {
	return c.v.CatalogPath
}

// Store returns the state store backend name
func (c *AppConfig) Store() string {
	return c.v.Store
}

// StatePath returns the JSON state file path
func (c *AppConfig) StatePath() string {
	return c.v.StatePath
}

// DBPath returns the sqlite database path
func (c *AppConfig) DBPath() string {
	return c.v.DBPath
}

// BadgerDir returns the badger directory
func (c *AppConfig) BadgerDir() string {
	return c.v.BadgerDir
}

// Backup returns the default backup medium
func (c *AppConfig) Backup() string {
	return c.v.Backup
}

// BackupDir returns the file backup directory
func (c *AppConfig) BackupDir() string {
	return c.v.BackupDir
}

func (c *AppConfig) S3Bucket() string { return c.v.S3Bucket }
func (c *AppConfig) S3Prefix() string { return c.v.S3Prefix }
func (c *AppConfig) S3Region() string { return c.v.S3Region }

// Output returns the output format
func (c *AppConfig) Output() string {
	return c.v.Output
}

// ListenAddr returns the HTTP listen address
func (c *AppConfig) ListenAddr() string {
	return c.v.ListenAddr
}

// MatrixPrecedence returns a copy of the cell precedence list
func (c *AppConfig) MatrixPrecedence() []string {
	return append([]string(nil), c.v.MatrixPrecedence...)
}

// RecommendSkipPending reports whether queued values are hidden
func (c *AppConfig) RecommendSkipPending() bool {
	return c.v.RecommendSkipPending
}

// StderrLevel returns the stderr log level
func (c *AppConfig) StderrLevel() string {
	return c.v.StderrLevel
}

// ConfigSource returns the source of configuration
func (c *AppConfig) ConfigSource() string {
	return c.configSource
}

// SettingPath returns the path to setting.json if loaded from file
func (c *AppConfig) SettingPath() string {
	return c.settingPath
}
