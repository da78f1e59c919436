package presenter_test

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/YoshitsuguKoike/potionlab/internal/adapter/presenter"
	"github.com/YoshitsuguKoike/potionlab/internal/application/dto"
	"github.com/YoshitsuguKoike/potionlab/internal/catalog"
	"github.com/YoshitsuguKoike/potionlab/internal/domain/model/combo"
	"github.com/YoshitsuguKoike/potionlab/internal/domain/service/projection"
	"github.com/YoshitsuguKoike/potionlab/internal/domain/service/recommend"
	"github.com/YoshitsuguKoike/potionlab/internal/domain/service/reducer"
)

func newText(t *testing.T) (*presenter.TextPresenter, *bytes.Buffer) {
	t.Helper()
	buf := &bytes.Buffer{}
	d := combo.MustDomain([]string{"Iron", "Copper"}, []string{"Heart"}, []string{"Sage", "Mint"})
	return presenter.NewTextPresenter(buf, presenter.NewPalette(d)), buf
}

func TestTextPresenter_PresentError(t *testing.T) {
	p, buf := newText(t)
	testErr := errors.New("boom")

	err := p.PresentError(testErr)
	assert.ErrorIs(t, err, testErr)
	assert.Contains(t, buf.String(), "✗ Error: boom")
}

func TestTextPresenter_PresentTrials(t *testing.T) {
	p, buf := newText(t)

	require.NoError(t, p.PresentTrials([]dto.TrialView{
		{ID: "01A", Kind: "success", Combo: combo.New("Iron", "Heart", "Sage"), Label: "Vigor"},
		{ID: "01B", Kind: "failure", Combo: combo.New("Copper", "Heart", "Mint")},
	}))

	out := buf.String()
	assert.Contains(t, out, "01A")
	assert.Contains(t, out, "Iron + Heart + Sage")
	assert.Contains(t, out, "Vigor")
	assert.Contains(t, out, "2 trial(s)")
}

func TestTextPresenter_PresentTrials_Empty(t *testing.T) {
	p, buf := newText(t)
	require.NoError(t, p.PresentTrials(nil))
	assert.Contains(t, buf.String(), "No trials recorded")
}

func TestTextPresenter_PresentCandidates_Truncated(t *testing.T) {
	p, buf := newText(t)

	require.NoError(t, p.PresentCandidates(dto.CandidateList{
		Total: 4, Universe: 4, Truncated: true,
		Combos: []combo.Combo{combo.New("Iron", "Heart", "Sage")},
	}))

	out := buf.String()
	assert.Contains(t, out, "Candidates: 4 of 4")
	assert.Contains(t, out, "... 3 more")
}

func TestTextPresenter_PresentRecommendation(t *testing.T) {
	p, buf := newText(t)

	rec := recommend.Recommendation{
		Selection: reducer.Selection{Metal: "Iron"},
		Metal:     []string{},
		Organ:     []string{"Heart"},
		Herb:      []string{},
	}
	require.NoError(t, p.PresentRecommendation(rec))

	out := buf.String()
	assert.Contains(t, out, "Iron + * + *")
	assert.Contains(t, out, "organ: Heart")
	assert.Contains(t, out, "herb:  (none)")
	assert.NotContains(t, out, "metal:")
}

func TestTextPresenter_PresentOptions(t *testing.T) {
	p, buf := newText(t)

	require.NoError(t, p.PresentOptions(dto.OptionsView{
		Dimension: "herb",
		Selection: reducer.Selection{Metal: "Iron", Organ: "Heart"},
		Values: []recommend.ValueStatus{
			{Value: "Sage", Index: 0, Status: recommend.StatusForbidden, Near: true},
			{Value: "Mint", Index: 1, Status: recommend.StatusRecommended},
		},
	}))

	out := buf.String()
	assert.Contains(t, out, "forbidden (near)")
	assert.Contains(t, out, "recommended")
}

func TestTextPresenter_PresentOptions_BadDimension(t *testing.T) {
	p, _ := newText(t)
	assert.Error(t, p.PresentOptions(dto.OptionsView{Dimension: "colour"}))
}

func TestTextPresenter_PresentMatrix(t *testing.T) {
	p, buf := newText(t)

	m := projection.Matrix{
		Organ:  "Heart",
		Metals: []string{"Iron", "Copper"},
		Herbs:  []string{"Sage", "Mint"},
		Cells: [][]projection.Cell{
			{
				{Metal: "Iron", Herb: "Sage", State: projection.CellSuccess, Label: "Vigor"},
				{Metal: "Iron", Herb: "Mint", State: projection.CellGlobalFailure, FromOrgan: "Liver"},
			},
			{
				{Metal: "Copper", Herb: "Sage", State: projection.CellPending},
				{Metal: "Copper", Herb: "Mint", State: projection.CellEmpty},
			},
		},
	}
	require.NoError(t, p.PresentMatrix(m))

	lines := strings.Split(buf.String(), "\n")
	require.GreaterOrEqual(t, len(lines), 5)
	assert.Equal(t, "Matrix for organ: Heart", lines[0])
	assert.Equal(t, "Metal  Sage Mint", lines[1])
	assert.Equal(t, "Iron   S    -   ", lines[2])
	assert.Equal(t, "Copper ?    .   ", lines[3])
	assert.Contains(t, buf.String(), "Iron + Sage: Vigor (success)")
}

func TestTextPresenter_PresentUntested(t *testing.T) {
	p, buf := newText(t)

	require.NoError(t, p.PresentUntested(dto.UntestedReport{FocusOrgan: "Heart"}))
	assert.Contains(t, buf.String(), "Every pair has been tested")

	buf.Reset()
	require.NoError(t, p.PresentUntested(dto.UntestedReport{Pairs: []projection.Pair{{Metal: "Copper", Herb: "Mint"}}}))
	assert.Contains(t, buf.String(), "Copper + Mint")
}

func TestTextPresenter_PresentSeasons(t *testing.T) {
	p, buf := newText(t)

	require.NoError(t, p.PresentSeasons([]catalog.SeasonGroup{
		{Season: "spring", Herbs: []string{"Sage"}},
		{Season: "winter", Herbs: []string{}},
	}))

	out := buf.String()
	assert.Contains(t, out, "Spring\n  Sage")
	assert.Contains(t, out, "Winter\n  (none)")
}

func TestTextPresenter_PresentStats(t *testing.T) {
	p, buf := newText(t)

	require.NoError(t, p.PresentStats(dto.Stats{Successes: 1, Candidates: 3, Universe: 4}))
	assert.Contains(t, buf.String(), "Candidates: 3 / 4")
}
