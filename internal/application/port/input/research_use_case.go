package input

import (
	"context"

	"github.com/YoshitsuguKoike/potionlab/internal/application/dto"
	"github.com/YoshitsuguKoike/potionlab/internal/application/port/output"
	"github.com/YoshitsuguKoike/potionlab/internal/catalog"
	"github.com/YoshitsuguKoike/potionlab/internal/domain/service/projection"
	"github.com/YoshitsuguKoike/potionlab/internal/domain/service/recommend"
)

// ResearchUseCase is the surface the CLI and HTTP host drive
type ResearchUseCase interface {
	// Commit records one trial outcome
	Commit(ctx context.Context, req dto.CommitRequest) (dto.TrialView, error)

	// Resolve turns a pending trial into a definitive outcome
	Resolve(ctx context.Context, pendingID string, req dto.ResolveRequest) (dto.TrialView, error)

	// Remove deletes a trial by ID
	Remove(ctx context.Context, id string) (dto.TrialView, error)

	// Import replaces the whole log with a backup payload
	Import(ctx context.Context, data []byte) (int, error)

	// Export serialises the log
	Export() ([]byte, error)

	// ExportTo writes a backup to a medium and returns where it went
	ExportTo(ctx context.Context, gw output.BackupGateway) (string, error)

	// ImportFrom restores a backup from a medium; an empty ref picks the newest
	ImportFrom(ctx context.Context, gw output.BackupGateway, ref string) (int, error)

	// Trials lists trials, optionally restricted to one kind
	Trials(kind string) ([]dto.TrialView, error)

	// Candidates lists the remaining candidates; limit <= 0 lists all
	Candidates(limit int) dto.CandidateList

	// Recommend suggests values for a partial selection
	Recommend(req dto.SelectionRequest) (recommend.Recommendation, error)

	// Options annotates every value of one dimension
	Options(req dto.SelectionRequest, dimension string) (dto.OptionsView, error)

	// Matrix builds the cross-section for an organ
	Matrix(organ string) (projection.Matrix, error)

	// Untested lists metal/herb pairs no trial has touched
	Untested(focusOrgan string) (dto.UntestedReport, error)

	// Seasons lists herb picking seasons, optionally for one herb or season
	Seasons(herb, season string) ([]catalog.SeasonGroup, error)

	// Stats summarises the session
	Stats() dto.Stats
}
