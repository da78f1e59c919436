package cli

import (
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	clicontroller "github.com/YoshitsuguKoike/potionlab/internal/adapter/controller/cli"
	"github.com/YoshitsuguKoike/potionlab/internal/app/config"
	"github.com/YoshitsuguKoike/potionlab/internal/buildinfo"
	infraConfig "github.com/YoshitsuguKoike/potionlab/internal/infra/config"
)

// EffectiveConfig represents the final applied configuration for serialization
type EffectiveConfig struct {
	Meta     EffectiveConfigMeta     `json:"meta" yaml:"meta"`
	Paths    EffectiveConfigPaths    `json:"paths" yaml:"paths"`
	Backup   EffectiveConfigBackup   `json:"backup" yaml:"backup"`
	Research EffectiveConfigResearch `json:"research" yaml:"research"`
	Output   string                  `json:"output" yaml:"output"`
	Listen   string                  `json:"listen_addr" yaml:"listen_addr"`
	Logging  string                  `json:"stderr_level" yaml:"stderr_level"`
}

// EffectiveConfigMeta contains metadata about the configuration
type EffectiveConfigMeta struct {
	Source      string `json:"source" yaml:"source"`
	SettingPath string `json:"setting_path,omitempty" yaml:"setting_path,omitempty"`
	Version     string `json:"version" yaml:"version"`
}

// EffectiveConfigPaths lists where state lives
type EffectiveConfigPaths struct {
	Home      string `json:"home" yaml:"home"`
	Catalog   string `json:"catalog,omitempty" yaml:"catalog,omitempty"`
	Store     string `json:"store" yaml:"store"`
	StatePath string `json:"state_path" yaml:"state_path"`
	DBPath    string `json:"db_path" yaml:"db_path"`
	BadgerDir string `json:"badger_dir" yaml:"badger_dir"`
}

// EffectiveConfigBackup describes the default backup medium
type EffectiveConfigBackup struct {
	Medium   string `json:"medium" yaml:"medium"`
	Dir      string `json:"dir" yaml:"dir"`
	S3Bucket string `json:"s3_bucket,omitempty" yaml:"s3_bucket,omitempty"`
	S3Prefix string `json:"s3_prefix,omitempty" yaml:"s3_prefix,omitempty"`
	S3Region string `json:"s3_region,omitempty" yaml:"s3_region,omitempty"`
}

// EffectiveConfigResearch holds the research behaviour switches
type EffectiveConfigResearch struct {
	MatrixPrecedence     []string `json:"matrix_precedence" yaml:"matrix_precedence"`
	RecommendSkipPending bool     `json:"recommend_skip_pending" yaml:"recommend_skip_pending"`
}

// BuildEffectiveConfig flattens cfg for display
func BuildEffectiveConfig(cfg config.Config) EffectiveConfig {
	return EffectiveConfig{
		Meta: EffectiveConfigMeta{
			Source:      cfg.ConfigSource(),
			SettingPath: cfg.SettingPath(),
			Version:     buildinfo.GetVersion(),
		},
		Paths: EffectiveConfigPaths{
			Home:      cfg.Home(),
			Catalog:   cfg.CatalogPath(),
			Store:     cfg.Store(),
			StatePath: cfg.StatePath(),
			DBPath:    cfg.DBPath(),
			BadgerDir: cfg.BadgerDir(),
		},
		Backup: EffectiveConfigBackup{
			Medium:   cfg.Backup(),
			Dir:      cfg.BackupDir(),
			S3Bucket: cfg.S3Bucket(),
			S3Prefix: cfg.S3Prefix(),
			S3Region: cfg.S3Region(),
		},
		Research: EffectiveConfigResearch{
			MatrixPrecedence:     cfg.MatrixPrecedence(),
			RecommendSkipPending: cfg.RecommendSkipPending(),
		},
		Output:  cfg.Output(),
		Listen:  cfg.ListenAddr(),
		Logging: cfg.StderrLevel(),
	}
}

func newConfigCmd(r *runtime) *cobra.Command {
	cmd := &cobra.Command{
		Use:         "config",
		Short:       "Inspect or create settings",
		Annotations: map[string]string{clicontroller.NoSessionAnnotation: "true"},
	}
	cmd.AddCommand(newConfigShowCmd(r), newConfigInitCmd(r))
	return cmd
}

func newConfigShowCmd(r *runtime) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:         "show",
		Short:       "Print the effective configuration",
		Args:        cobra.NoArgs,
		Annotations: map[string]string{clicontroller.NoSessionAnnotation: "true"},
		RunE: func(cmd *cobra.Command, _ []string) error {
			eff := BuildEffectiveConfig(r.cfg)
			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(eff)
			}
			enc := yaml.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent(2)
			if err := enc.Encode(eff); err != nil {
				return err
			}
			return enc.Close()
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print as JSON instead of YAML")
	return cmd
}

func newConfigInitCmd(r *runtime) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:         "init",
		Short:       "Write a setting.json with every default spelled out",
		Args:        cobra.NoArgs,
		Annotations: map[string]string{clicontroller.NoSessionAnnotation: "true"},
		RunE: func(cmd *cobra.Command, _ []string) error {
			home := r.cfg.Home()
			path := filepath.Join(home, "setting.json")
			exists, err := afero.Exists(r.fs, path)
			if err != nil {
				return err
			}
			if exists && !force {
				return fmt.Errorf("%s already exists (use --force to overwrite)", path)
			}
			if err := r.fs.MkdirAll(home, 0o755); err != nil {
				return fmt.Errorf("failed to create %s: %w", home, err)
			}
			if err := afero.WriteFile(r.fs, path, infraConfig.CreateDefaultSettings(home), 0o644); err != nil {
				return fmt.Errorf("failed to write %s: %w", path, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing setting.json")
	return cmd
}
