package cli

import (
	"github.com/spf13/cobra"

	"github.com/YoshitsuguKoike/potionlab/internal/application/dto"
)

// DefaultCandidateLimit is how many candidates 'candidates' shows by default
const DefaultCandidateLimit = 50

// QueryController handles read-only research commands
type QueryController struct {
	session Session
}

// NewQueryController creates a new query controller
func NewQueryController(session Session) *QueryController {
	return &QueryController{session: session}
}

func selectionFlags(cmd *cobra.Command, req *dto.SelectionRequest) {
	cmd.Flags().StringVarP(&req.Metal, "metal", "m", "", "Pinned metal")
	cmd.Flags().StringVarP(&req.Organ, "organ", "g", "", "Pinned organ")
	cmd.Flags().StringVarP(&req.Herb, "herb", "b", "", "Pinned herb")
}

// CandidatesCommand creates the 'candidates' command
func (c *QueryController) CandidatesCommand() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "candidates",
		Short: "List combinations that could still be a potion",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.session.Presenter().PresentCandidates(c.session.UseCase().Candidates(limit))
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", DefaultCandidateLimit, "Maximum combinations to show (0 for all)")
	return cmd
}

// RecommendCommand creates the 'recommend' command
func (c *QueryController) RecommendCommand() *cobra.Command {
	var req dto.SelectionRequest

	cmd := &cobra.Command{
		Use:   "recommend",
		Short: "Suggest values worth trying for a partial selection",
		Long: `Pin one or two ingredients and list the values of the others that are
still worth brewing. Values already ruled out next to the pinned ones are skipped.`,
		Example: "  potionlab recommend --metal Iron --organ Heart",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p := c.session.Presenter()
			rec, err := c.session.UseCase().Recommend(req)
			if err != nil {
				return reportError(p, err)
			}
			return p.PresentRecommendation(rec)
		},
	}

	selectionFlags(cmd, &req)
	return cmd
}

// OptionsCommand creates the 'options' command
func (c *QueryController) OptionsCommand() *cobra.Command {
	var req dto.SelectionRequest

	cmd := &cobra.Command{
		Use:       "options <metal|organ|herb>",
		Short:     "Annotate every value of one ingredient for the current selection",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"metal", "organ", "herb"},
		RunE: func(cmd *cobra.Command, args []string) error {
			p := c.session.Presenter()
			view, err := c.session.UseCase().Options(req, args[0])
			if err != nil {
				return reportError(p, err)
			}
			return p.PresentOptions(view)
		},
	}

	selectionFlags(cmd, &req)
	return cmd
}

// MatrixCommand creates the 'matrix' command
func (c *QueryController) MatrixCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "matrix <organ>",
		Short: "Show the metal x herb grid for one organ",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p := c.session.Presenter()
			m, err := c.session.UseCase().Matrix(args[0])
			if err != nil {
				return reportError(p, err)
			}
			return p.PresentMatrix(m)
		},
	}
}

// UntestedCommand creates the 'untested' command
func (c *QueryController) UntestedCommand() *cobra.Command {
	var organ string

	cmd := &cobra.Command{
		Use:   "untested",
		Short: "List metal + herb pairs no trial has touched",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p := c.session.Presenter()
			report, err := c.session.UseCase().Untested(organ)
			if err != nil {
				return reportError(p, err)
			}
			return p.PresentUntested(report)
		},
	}

	cmd.Flags().StringVarP(&organ, "organ", "g", "", "Only count trials on this organ")
	return cmd
}

// SeasonsCommand creates the 'seasons' command
func (c *QueryController) SeasonsCommand() *cobra.Command {
	var herb, season string

	cmd := &cobra.Command{
		Use:   "seasons",
		Short: "Show when each herb can be picked",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p := c.session.Presenter()
			groups, err := c.session.UseCase().Seasons(herb, season)
			if err != nil {
				return reportError(p, err)
			}
			return p.PresentSeasons(groups)
		},
	}

	cmd.Flags().StringVarP(&herb, "herb", "b", "", "Show the seasons of one herb")
	cmd.Flags().StringVarP(&season, "season", "s", "", "Show the herbs of one season")
	cmd.MarkFlagsMutuallyExclusive("herb", "season")
	return cmd
}

// StatsCommand creates the 'stats' command
func (c *QueryController) StatsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Summarise the research session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.session.Presenter().PresentStats(c.session.UseCase().Stats())
		},
	}
}

// Commands returns every query command
func (c *QueryController) Commands() []*cobra.Command {
	return []*cobra.Command{
		c.CandidatesCommand(),
		c.RecommendCommand(),
		c.OptionsCommand(),
		c.MatrixCommand(),
		c.UntestedCommand(),
		c.SeasonsCommand(),
		c.StatsCommand(),
	}
}
