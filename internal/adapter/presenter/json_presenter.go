package presenter

import (
	"encoding/json"
	"io"

	"github.com/YoshitsuguKoike/potionlab/internal/application/dto"
	"github.com/YoshitsuguKoike/potionlab/internal/application/port/output"
	"github.com/YoshitsuguKoike/potionlab/internal/catalog"
	"github.com/YoshitsuguKoike/potionlab/internal/domain/service/projection"
	"github.com/YoshitsuguKoike/potionlab/internal/domain/service/recommend"
)

// JSONPresenter implements output.ResearchPresenter for JSON output
// Formats all output as JSON for programmatic consumption
type JSONPresenter struct {
	output io.Writer
}

var _ output.ResearchPresenter = (*JSONPresenter)(nil)

// NewJSONPresenter creates a new JSON presenter
func NewJSONPresenter(output io.Writer) *JSONPresenter {
	return &JSONPresenter{output: output}
}

// PresentSuccess presents a successful result as JSON
func (p *JSONPresenter) PresentSuccess(message string, data interface{}) error {
	result := map[string]interface{}{
		"success": true,
		"message": message,
		"data":    data,
	}
	return json.NewEncoder(p.output).Encode(result)
}

// PresentError presents an error as JSON
func (p *JSONPresenter) PresentError(err error) error {
	result := map[string]interface{}{
		"success": false,
		"error":   err.Error(),
	}
	return json.NewEncoder(p.output).Encode(result)
}

func (p *JSONPresenter) PresentTrial(action string, t dto.TrialView) error {
	return p.PresentSuccess(action, t)
}

func (p *JSONPresenter) PresentTrials(trials []dto.TrialView) error {
	return p.PresentSuccess("trials", trials)
}

func (p *JSONPresenter) PresentCandidates(list dto.CandidateList) error {
	return p.PresentSuccess("candidates", list)
}

func (p *JSONPresenter) PresentRecommendation(rec recommend.Recommendation) error {
	return p.PresentSuccess("recommendation", rec)
}

func (p *JSONPresenter) PresentOptions(view dto.OptionsView) error {
	return p.PresentSuccess("options", view)
}

func (p *JSONPresenter) PresentMatrix(m projection.Matrix) error {
	return p.PresentSuccess("matrix", m)
}

func (p *JSONPresenter) PresentUntested(report dto.UntestedReport) error {
	return p.PresentSuccess("untested", report)
}

func (p *JSONPresenter) PresentSeasons(groups []catalog.SeasonGroup) error {
	return p.PresentSuccess("seasons", groups)
}

func (p *JSONPresenter) PresentStats(stats dto.Stats) error {
	return p.PresentSuccess("stats", stats)
}
