package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NoSessionAnnotation marks commands that run without opening the session
const NoSessionAnnotation = "potionlab/no-session"

// RootBuilder builds the root CLI command with all research subcommands
type RootBuilder struct {
	session Session

	// Version info
	version   string
	buildInfo string
}

// NewRootBuilder creates a new root command builder
func NewRootBuilder(session Session, version string, buildInfo string) *RootBuilder {
	return &RootBuilder{
		session:   session,
		version:   version,
		buildInfo: buildInfo,
	}
}

// Build creates the root command with all subcommands
func (b *RootBuilder) Build() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "potionlab",
		Short: "PotionLab - potion recipe research assistant",
		Long: `PotionLab tracks brewing trials over metal, organ and herb combinations.
It narrows the remaining candidates after every outcome and suggests what
to brew next.`,
		Version:       b.version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddGroup(
		&cobra.Group{ID: "trials", Title: "Trial log:"},
		&cobra.Group{ID: "queries", Title: "Research:"},
		&cobra.Group{ID: "backup", Title: "Backup:"},
	)

	add := func(group string, cmds ...*cobra.Command) {
		for _, cmd := range cmds {
			cmd.GroupID = group
			rootCmd.AddCommand(cmd)
		}
	}
	add("trials", NewTrialController(b.session).Commands()...)
	add("queries", NewQueryController(b.session).Commands()...)
	add("backup", NewBackupController(b.session).Commands()...)

	rootCmd.AddCommand(b.versionCommand())
	return rootCmd
}

// versionCommand creates the 'version' command
func (b *RootBuilder) versionCommand() *cobra.Command {
	return &cobra.Command{
		Use:         "version",
		Short:       "Print version information",
		Annotations: map[string]string{NoSessionAnnotation: "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "potionlab %s (%s)\n", b.version, b.buildInfo)
			return err
		},
	}
}
