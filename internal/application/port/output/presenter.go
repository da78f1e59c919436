package output

import (
	"github.com/YoshitsuguKoike/potionlab/internal/application/dto"
	"github.com/YoshitsuguKoike/potionlab/internal/catalog"
	"github.com/YoshitsuguKoike/potionlab/internal/domain/service/projection"
	"github.com/YoshitsuguKoike/potionlab/internal/domain/service/recommend"
)

// Presenter defines the interface for presenting output to users
// Different implementations can format output for a terminal or as JSON
type Presenter interface {
	// PresentSuccess presents a successful result
	PresentSuccess(message string, data interface{}) error

	// PresentError presents an error
	PresentError(err error) error
}

// ResearchPresenter renders the views of a research session
type ResearchPresenter interface {
	Presenter

	// PresentTrial presents a single trial after action (committed, removed, ...)
	PresentTrial(action string, t dto.TrialView) error

	// PresentTrials presents a trial listing
	PresentTrials(trials []dto.TrialView) error

	// PresentCandidates presents the candidate set
	PresentCandidates(list dto.CandidateList) error

	// PresentRecommendation presents the suggested values for a selection
	PresentRecommendation(rec recommend.Recommendation) error

	// PresentOptions presents the annotated values of one dimension
	PresentOptions(view dto.OptionsView) error

	// PresentMatrix presents an organ cross-section
	PresentMatrix(m projection.Matrix) error

	// PresentUntested presents untouched metal/herb pairs
	PresentUntested(report dto.UntestedReport) error

	// PresentSeasons presents herb picking seasons
	PresentSeasons(groups []catalog.SeasonGroup) error

	// PresentStats presents the session summary
	PresentStats(stats dto.Stats) error
}
