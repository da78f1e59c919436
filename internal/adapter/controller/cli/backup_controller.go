package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// BackupController handles export and import of the trial log
type BackupController struct {
	session Session
}

// NewBackupController creates a new backup controller
func NewBackupController(session Session) *BackupController {
	return &BackupController{session: session}
}

// ExportCommand creates the 'export' command
func (c *BackupController) ExportCommand() *cobra.Command {
	var medium string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Back up the trial log",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p := c.session.Presenter()
			gw, err := c.session.BackupGateway(cmd.Context(), medium)
			if err != nil {
				return reportError(p, err)
			}
			ref, err := c.session.UseCase().ExportTo(cmd.Context(), gw)
			if err != nil {
				return reportError(p, err)
			}
			return p.PresentSuccess(fmt.Sprintf("Exported to %s", gw.Name()), ref)
		},
	}

	cmd.Flags().StringVar(&medium, "to", "", "Backup medium: clipboard, file or s3 (default from settings)")
	return cmd
}

// ImportCommand creates the 'import' command
func (c *BackupController) ImportCommand() *cobra.Command {
	var medium, ref string

	cmd := &cobra.Command{
		Use:   "import",
		Short: "Replace the trial log with a backup",
		Long: `Replace the whole trial log with a backup. Nothing changes unless the
backup parses and every trial fits the catalog. Backups in the older
potions/closeHints/nothingTried/inFlask layout are accepted.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p := c.session.Presenter()
			gw, err := c.session.BackupGateway(cmd.Context(), medium)
			if err != nil {
				return reportError(p, err)
			}
			n, err := c.session.UseCase().ImportFrom(cmd.Context(), gw, ref)
			if err != nil {
				return reportError(p, err)
			}
			return p.PresentSuccess(fmt.Sprintf("Imported %d trials from %s", n, gw.Name()), nil)
		},
	}

	cmd.Flags().StringVar(&medium, "from", "", "Backup medium: clipboard, file or s3 (default from settings)")
	cmd.Flags().StringVar(&ref, "ref", "", "Backup to read: path, file name, s3:// URL or key (default newest)")
	return cmd
}

// Commands returns every backup command
func (c *BackupController) Commands() []*cobra.Command {
	return []*cobra.Command{c.ExportCommand(), c.ImportCommand()}
}
