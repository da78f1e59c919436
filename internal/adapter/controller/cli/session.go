package cli

import (
	"context"

	"github.com/YoshitsuguKoike/potionlab/internal/application/port/input"
	"github.com/YoshitsuguKoike/potionlab/internal/application/port/output"
)

// Session supplies what the commands act on. It is resolved when a
// command runs, after configuration has been loaded.
type Session interface {
	UseCase() input.ResearchUseCase
	Presenter() output.ResearchPresenter
	BackupGateway(ctx context.Context, name string) (output.BackupGateway, error)
}
