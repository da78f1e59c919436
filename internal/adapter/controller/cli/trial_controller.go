package cli

import (
	"github.com/spf13/cobra"

	"github.com/YoshitsuguKoike/potionlab/internal/application/dto"
	"github.com/YoshitsuguKoike/potionlab/internal/domain/model/trial"
)

// TrialController handles commands that change the trial log
type TrialController struct {
	session Session
}

// NewTrialController creates a new trial controller
func NewTrialController(session Session) *TrialController {
	return &TrialController{session: session}
}

// CommitCommand creates the 'commit' command
func (c *TrialController) CommitCommand() *cobra.Command {
	var label string

	cmd := &cobra.Command{
		Use:   "commit <success|hint|failure|pending> <metal> <organ> <herb>",
		Short: "Record the outcome of a brew",
		Long: `Record one trial outcome. Success and hint need a potion name (--label).
A failure rules out every combination sharing two ingredients with it.`,
		Example: `  potionlab commit success Iron Heart Sage --label "Elixir of Vigor"
  potionlab commit failure copper liver mint`,
		Args: cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := dto.CommitRequest{
				Kind:  args[0],
				Metal: args[1],
				Organ: args[2],
				Herb:  args[3],
				Label: label,
			}
			return c.commit(cmd, req)
		},
	}

	cmd.Flags().StringVarP(&label, "label", "l", "", "Potion name (success and hint)")
	return cmd
}

// PendingCommand creates the 'pending' command, a shortcut for queuing a brew
func (c *TrialController) PendingCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "pending <metal> <organ> <herb>",
		Short: "Queue a brew whose outcome is not known yet",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := dto.CommitRequest{
				Kind:  string(trial.KindPending),
				Metal: args[0],
				Organ: args[1],
				Herb:  args[2],
			}
			return c.commit(cmd, req)
		},
	}
}

func (c *TrialController) commit(cmd *cobra.Command, req dto.CommitRequest) error {
	p := c.session.Presenter()
	view, err := c.session.UseCase().Commit(cmd.Context(), req)
	if err != nil {
		return reportError(p, err)
	}
	return p.PresentTrial("committed", view)
}

// ResolveCommand creates the 'resolve' command
func (c *TrialController) ResolveCommand() *cobra.Command {
	var label string

	cmd := &cobra.Command{
		Use:   "resolve <pending-id> <success|hint|failure>",
		Short: "Record the outcome of a queued brew",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			p := c.session.Presenter()
			view, err := c.session.UseCase().Resolve(cmd.Context(), args[0], dto.ResolveRequest{
				Kind:  args[1],
				Label: label,
			})
			if err != nil {
				return reportError(p, err)
			}
			return p.PresentTrial("resolved", view)
		},
	}

	cmd.Flags().StringVarP(&label, "label", "l", "", "Potion name (success and hint)")
	return cmd
}

// RemoveCommand creates the 'remove' command
func (c *TrialController) RemoveCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "remove <trial-id>",
		Aliases: []string{"rm"},
		Short:   "Delete a trial and recompute the candidates",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p := c.session.Presenter()
			view, err := c.session.UseCase().Remove(cmd.Context(), args[0])
			if err != nil {
				return reportError(p, err)
			}
			return p.PresentTrial("removed", view)
		},
	}
}

// ListCommand creates the 'list' command
func (c *TrialController) ListCommand() *cobra.Command {
	var kind string

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List recorded trials",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p := c.session.Presenter()
			trials, err := c.session.UseCase().Trials(kind)
			if err != nil {
				return reportError(p, err)
			}
			return p.PresentTrials(trials)
		},
	}

	cmd.Flags().StringVarP(&kind, "kind", "k", "", "Only list one kind (success, hint, failure, pending)")
	return cmd
}

// Commands returns every trial command
func (c *TrialController) Commands() []*cobra.Command {
	return []*cobra.Command{
		c.CommitCommand(),
		c.PendingCommand(),
		c.ResolveCommand(),
		c.RemoveCommand(),
		c.ListCommand(),
	}
}
