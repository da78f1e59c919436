package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	clicontroller "github.com/YoshitsuguKoike/potionlab/internal/adapter/controller/cli"
	"github.com/YoshitsuguKoike/potionlab/internal/app"
	"github.com/YoshitsuguKoike/potionlab/internal/app/config"
	"github.com/YoshitsuguKoike/potionlab/internal/application/port/input"
	"github.com/YoshitsuguKoike/potionlab/internal/application/port/output"
	"github.com/YoshitsuguKoike/potionlab/internal/buildinfo"
	infraConfig "github.com/YoshitsuguKoike/potionlab/internal/infra/config"
	"github.com/YoshitsuguKoike/potionlab/internal/infrastructure/di"
)

// errNoSession is returned when a command needs the session before it is open
var errNoSession = errors.New("research session is not open")

// runtime carries what PersistentPreRunE resolves for the running command.
// It implements the controllers' Session.
type runtime struct {
	fs     afero.Fs
	home   string
	output string

	cfg       config.Config
	logger    *Logger
	container *di.Container
}

func newRuntime(fs afero.Fs) *runtime {
	return &runtime{fs: fs}
}

// open loads configuration, installs the logger and, unless the command
// opts out, builds the container
func (r *runtime) open(cmd *cobra.Command) error {
	home := r.home
	if home == "" {
		home = app.ResolvePaths().Home
	}

	// Priority: setting.json > ENV > defaults
	cfg, err := infraConfig.LoadSettings(r.fs, home)
	if err != nil {
		return err
	}
	r.cfg = cfg

	r.logger = InitGlobalLogger(cfg.StderrLevel(), cmd.ErrOrStderr())
	appLogger := InitializeLoggers(r.logger)
	appLogger.Debug("configuration loaded from %s (home %s)", cfg.ConfigSource(), home)

	if !needsSession(cmd) {
		return nil
	}

	container, err := di.NewContainer(cmd.Context(), di.Config{
		App:          cfg,
		Fs:           r.fs,
		OutputFormat: r.output,
		OutputWriter: cmd.OutOrStdout(),
		Logger:       appLogger,
	})
	if err != nil {
		return err
	}
	r.container = container
	return nil
}

// needsSession reports whether cmd or any parent opts out of the session.
// Cobra's own help and completion commands never need one.
func needsSession(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations[clicontroller.NoSessionAnnotation] != "" {
			return false
		}
		switch c.Name() {
		case "help", "completion", cobra.ShellCompRequestCmd, cobra.ShellCompNoDescRequestCmd:
			return false
		}
	}
	return true
}

// close releases the container and flushes the logger
func (r *runtime) close() error {
	var err error
	if r.container != nil {
		err = r.container.Close()
		r.container = nil
	}
	if r.logger != nil {
		_ = r.logger.Sync()
	}
	return err
}

func (r *runtime) UseCase() input.ResearchUseCase {
	if r.container == nil {
		return nil
	}
	return r.container.UseCase()
}

func (r *runtime) Presenter() output.ResearchPresenter {
	if r.container == nil {
		return nil
	}
	return r.container.Presenter()
}

func (r *runtime) BackupGateway(ctx context.Context, name string) (output.BackupGateway, error) {
	if r.container == nil {
		return nil, errNoSession
	}
	return r.container.BackupGateway(ctx, name)
}

func newRoot(r *runtime) (*cobra.Command, *runtime) {
	cmd := clicontroller.NewRootBuilder(r, buildinfo.GetVersion(), buildinfo.GetCommit()).Build()

	cmd.PersistentFlags().StringVar(&r.home, "home", "", "Base directory (default $"+app.HomeEnv+" or "+app.DefaultHome+")")
	cmd.PersistentFlags().StringVarP(&r.output, "output", "o", "", "Output format: text or json (default from settings)")

	cmd.PersistentPreRunE = func(c *cobra.Command, _ []string) error {
		return r.open(c)
	}

	cmd.AddCommand(newServeCmd(r))
	cmd.AddCommand(newConfigCmd(r))
	return cmd, r
}

// Execute runs the command line and always releases the session
func Execute(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	cmd, r := newRoot(newRuntime(afero.NewOsFs()))
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	err := cmd.ExecuteContext(ctx)
	if closeErr := r.close(); closeErr != nil && err == nil {
		err = fmt.Errorf("failed to close session: %w", closeErr)
	}
	if err != nil && !clicontroller.IsReported(err) {
		fmt.Fprintf(stderr, "Error: %v\n", err)
	}
	return err
}
