package recommend

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/YoshitsuguKoike/potionlab/internal/domain/model/combo"
	"github.com/YoshitsuguKoike/potionlab/internal/domain/model/trial"
	"github.com/YoshitsuguKoike/potionlab/internal/domain/service/reducer"
)

func smallDomain() *combo.Domain {
	return combo.MustDomain([]string{"x1", "x2"}, []string{"y1", "y2"}, []string{"z1", "z2"})
}

func tr(id string, kind trial.Kind, m, o, h, label string) trial.Trial {
	return trial.Trial{ID: id, Kind: kind, Combo: combo.New(m, o, h), Label: label}
}

func recommendFor(d *combo.Domain, trials []trial.Trial, sel reducer.Selection, opts Options) Recommendation {
	return Recommend(d, reducer.Reduce(d, trials), trials, sel, opts)
}

func TestRecommendWorkedExample(t *testing.T) {
	d := smallDomain()
	trials := []trial.Trial{
		tr("f", trial.KindFailure, "x1", "y1", "z1", ""),
		tr("s", trial.KindSuccess, "x2", "y2", "z2", "Elixir"),
	}

	rec := recommendFor(d, trials, reducer.Selection{Metal: "x2"}, Options{})
	assert.Empty(t, rec.Metal)
	assert.Equal(t, []string{"y1", "y2"}, rec.Organ)
	assert.Equal(t, []string{"z1", "z2"}, rec.Herb)
}

func TestRecommendEmptyWithoutPinsOrWithAllPins(t *testing.T) {
	d := smallDomain()
	trials := []trial.Trial{tr("f", trial.KindFailure, "x1", "y1", "z1", "")}

	for _, sel := range []reducer.Selection{
		{},
		{Metal: "x2", Organ: "y2", Herb: "z2"},
	} {
		rec := recommendFor(d, trials, sel, Options{})
		for _, dim := range combo.Dimensions {
			assert.Empty(t, rec.For(dim), "selection %+v dimension %s", sel, dim)
		}
	}
}

func TestRecommendHintForbidsValuesInScope(t *testing.T) {
	d := smallDomain()
	trials := []trial.Trial{tr("h", trial.KindHint, "x1", "y1", "z1", "Tonic")}

	rec := recommendFor(d, trials, reducer.Selection{Metal: "x1"}, Options{})
	assert.Equal(t, []string{"y2"}, rec.Organ)
	assert.Equal(t, []string{"z2"}, rec.Herb)

	// the hint does not match organ y2, so nothing is forbidden for herbs
	rec = recommendFor(d, trials, reducer.Selection{Metal: "x1", Organ: "y2"}, Options{})
	assert.Equal(t, []string{"z1", "z2"}, rec.Herb)
	assert.Empty(t, rec.Metal)
	assert.Empty(t, rec.Organ)
}

func TestRecommendSkipPending(t *testing.T) {
	d := smallDomain()
	trials := []trial.Trial{tr("p", trial.KindPending, "x1", "y2", "z1", "")}
	sel := reducer.Selection{Metal: "x1", Organ: "y2"}

	assert.Equal(t, []string{"z1", "z2"}, recommendFor(d, trials, sel, Options{}).Herb)
	assert.Equal(t, []string{"z2"}, recommendFor(d, trials, sel, Options{SkipPending: true}).Herb)

	// with a single pin the queued combo is not yet implied
	assert.Equal(t, []string{"z1", "z2"},
		recommendFor(d, trials, reducer.Selection{Metal: "x1"}, Options{SkipPending: true}).Herb)
}

func TestRecommendNeverReturnsForbidden(t *testing.T) {
	d := combo.MustDomain(
		[]string{"m1", "m2", "m3"},
		[]string{"o1", "o2", "o3"},
		[]string{"h1", "h2", "h3", "h4"},
	)
	trials := []trial.Trial{
		tr("1", trial.KindFailure, "m1", "o1", "h1", ""),
		tr("2", trial.KindHint, "m2", "o1", "h3", "Tonic"),
		tr("3", trial.KindHint, "m1", "o3", "h4", "Draught"),
		tr("4", trial.KindSuccess, "m3", "o2", "h2", "Elixir"),
	}
	set := reducer.Reduce(d, trials)

	var sels []reducer.Selection
	for _, m := range append(d.Values(combo.Metal), "") {
		for _, o := range append(d.Values(combo.Organ), "") {
			for _, h := range append(d.Values(combo.Herb), "") {
				sels = append(sels, reducer.Selection{Metal: m, Organ: o, Herb: h})
			}
		}
	}
	for _, sel := range sels {
		rec := Recommend(d, set, trials, sel, Options{})
		for _, dim := range combo.Dimensions {
			forbidden := Forbidden(trials, sel, dim)
			for _, v := range rec.For(dim) {
				_, bad := forbidden[v]
				assert.False(t, bad, "selection %+v recommends forbidden %s=%s", sel, dim, v)
				assert.True(t, set.Any(sel.With(dim, v)), "recommended value without candidate")
			}
			if sel.Pinned(dim) {
				assert.Empty(t, rec.For(dim))
			}
		}
	}
}

func TestForbiddenFailureOutranksHint(t *testing.T) {
	trials := []trial.Trial{
		tr("h", trial.KindHint, "x1", "y1", "z1", "Tonic"),
		tr("f", trial.KindFailure, "x1", "y2", "z1", ""),
	}
	got := Forbidden(trials, reducer.Selection{Metal: "x1"}, combo.Herb)
	assert.Equal(t, map[string]trial.Kind{"z1": trial.KindFailure}, got)

	assert.Empty(t, Forbidden(trials, reducer.Selection{}, combo.Herb))
}

func TestAnnotate(t *testing.T) {
	d := smallDomain()
	trials := []trial.Trial{
		tr("f", trial.KindFailure, "x1", "y1", "z1", ""),
		tr("h", trial.KindHint, "x2", "y2", "z2", "Tonic"),
	}
	set := reducer.Reduce(d, trials)

	got := Annotate(d, set, trials, reducer.Selection{Organ: "y1"}, combo.Metal, Options{})
	assert.Equal(t, []ValueStatus{
		{Value: "x1", Index: 0, Status: StatusForbidden},
		{Value: "x2", Index: 1, Status: StatusRecommended},
	}, got)

	got = Annotate(d, set, trials, reducer.Selection{Organ: "y2", Metal: "x2"}, combo.Metal, Options{})
	assert.Equal(t, []ValueStatus{
		{Value: "x1", Index: 0, Status: StatusRecommended},
		{Value: "x2", Index: 1, Status: StatusForbidden, Near: true},
	}, got)

	got = Annotate(d, set, trials, reducer.Selection{Organ: "y1", Herb: "z1"}, combo.Metal, Options{})
	assert.Equal(t, StatusEliminated, got[1].Status)
}
