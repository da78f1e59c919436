package engine

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/YoshitsuguKoike/potionlab/internal/domain/model/combo"
	"github.com/YoshitsuguKoike/potionlab/internal/domain/model/trial"
	"github.com/YoshitsuguKoike/potionlab/internal/domain/service/projection"
	"github.com/YoshitsuguKoike/potionlab/internal/domain/service/recommend"
	"github.com/YoshitsuguKoike/potionlab/internal/domain/service/reducer"
)

func newTestEngine() *Engine {
	d := combo.MustDomain([]string{"x1", "x2"}, []string{"y1", "y2"}, []string{"z1", "z2"})
	return New(d, &trial.SequenceGenerator{Prefix: "t"})
}

func TestEngineWorkedExample(t *testing.T) {
	e := newTestEngine()
	assert.Equal(t, 8, e.Candidates().Len())

	failure, err := e.Commit(trial.KindFailure, combo.New("x1", "y1", "z1"), "")
	require.NoError(t, err)
	assert.Equal(t, "t1", failure.ID)
	assert.Equal(t, 4, e.Candidates().Len())

	_, err = e.Commit(trial.KindSuccess, combo.New("x2", "y2", "z2"), "Elixir")
	require.NoError(t, err)
	assert.Equal(t, 3, e.Candidates().Len())

	rec := e.Recommend(reducer.Selection{Metal: "x2"}, recommend.Options{})
	assert.Equal(t, []string{"y1", "y2"}, rec.Organ)
	assert.Equal(t, []string{"z1", "z2"}, rec.Herb)

	_, err = e.Remove(failure.ID)
	require.NoError(t, err)
	assert.Equal(t, 7, e.Candidates().Len())
	assert.False(t, e.Candidates().Contains(combo.New("x2", "y2", "z2")))
}

func TestEngineRemoveFailureMatchesFreshReduce(t *testing.T) {
	d := combo.MustDomain([]string{"a", "b", "c"}, []string{"o1", "o2"}, []string{"h1", "h2", "h3"})
	e := New(d, &trial.SequenceGenerator{Prefix: "t"})

	f1, err := e.Commit(trial.KindFailure, combo.New("a", "o1", "h1"), "")
	require.NoError(t, err)
	_, err = e.Commit(trial.KindFailure, combo.New("a", "o1", "h2"), "")
	require.NoError(t, err)
	_, err = e.Commit(trial.KindHint, combo.New("c", "o2", "h3"), "Tonic")
	require.NoError(t, err)

	_, err = e.Remove(f1.ID)
	require.NoError(t, err)

	fresh := reducer.Reduce(d, e.Trials())
	assert.True(t, fresh.Equal(e.Candidates()))
	// still excluded by the surviving failure
	assert.False(t, e.Candidates().Contains(combo.New("a", "o1", "h3")))
}

func TestEngineCommitValidation(t *testing.T) {
	e := newTestEngine()
	_, err := e.Commit(trial.KindFailure, combo.New("x1", "y1", "z1"), "")
	require.NoError(t, err)
	before := e.Trials()

	tests := []struct {
		name  string
		kind  trial.Kind
		combo combo.Combo
		label string
	}{
		{"missing component", trial.KindFailure, combo.New("x1", "", "z1"), ""},
		{"missing label", trial.KindSuccess, combo.New("x2", "y2", "z2"), ""},
		{"duplicate definitive", trial.KindHint, combo.New("x1", "y1", "z1"), "Tonic"},
		{"unknown value", trial.KindFailure, combo.New("x9", "y1", "z1"), ""},
		{"pending on resolved", trial.KindPending, combo.New("x1", "y1", "z1"), ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := e.Commit(tt.kind, tt.combo, tt.label)
			assert.True(t, trial.IsValidation(err), "got %v", err)
			assert.Equal(t, before, e.Trials())
			assert.Equal(t, 4, e.Candidates().Len())
		})
	}
}

func TestEngineResolvePending(t *testing.T) {
	e := newTestEngine()
	p, err := e.Commit(trial.KindPending, combo.New("x1", "y2", "z1"), "")
	require.NoError(t, err)
	assert.Equal(t, 8, e.Candidates().Len())

	_, err = e.Resolve(p.ID, trial.KindPending, "")
	assert.True(t, trial.IsValidation(err))

	_, err = e.Resolve("missing", trial.KindFailure, "")
	assert.True(t, errors.Is(err, trial.ErrNotFound))

	got, err := e.Resolve(p.ID, trial.KindHint, "Tonic")
	require.NoError(t, err)
	assert.Equal(t, trial.KindHint, got.Kind)
	assert.Empty(t, e.TrialsOf(trial.KindPending))
	assert.Len(t, e.TrialsOf(trial.KindHint), 1)
	assert.Equal(t, 7, e.Candidates().Len())

	_, err = e.Resolve(got.ID, trial.KindFailure, "")
	assert.True(t, trial.IsValidation(err), "resolving a non-pending trial")
}

func TestEngineCommitOverPendingRemovesIt(t *testing.T) {
	e := newTestEngine()
	_, err := e.Commit(trial.KindPending, combo.New("x1", "y2", "z1"), "")
	require.NoError(t, err)
	_, err = e.Commit(trial.KindFailure, combo.New("x1", "y2", "z1"), "")
	require.NoError(t, err)
	assert.Empty(t, e.TrialsOf(trial.KindPending))
	assert.Len(t, e.Trials(), 1)
}

func TestEngineReplaceIsAtomic(t *testing.T) {
	e := newTestEngine()
	_, err := e.Commit(trial.KindFailure, combo.New("x1", "y1", "z1"), "")
	require.NoError(t, err)
	before := e.Trials()

	bad := []trial.Trial{
		{ID: "a", Kind: trial.KindFailure, Combo: combo.New("x2", "y2", "z2")},
		{ID: "b", Kind: trial.KindSuccess, Combo: combo.New("x2", "y2", "z2"), Label: "Elixir"},
	}
	assert.Error(t, e.Replace(bad))
	assert.Equal(t, before, e.Trials())
	assert.Equal(t, 4, e.Candidates().Len())

	foreign := []trial.Trial{{ID: "a", Kind: trial.KindFailure, Combo: combo.New("q", "y2", "z2")}}
	assert.True(t, trial.IsValidation(e.Replace(foreign)))
	assert.Equal(t, before, e.Trials())

	good := []trial.Trial{{ID: "a", Kind: trial.KindSuccess, Combo: combo.New("x2", "y2", "z2"), Label: "Elixir"}}
	require.NoError(t, e.Replace(good))
	assert.Equal(t, good, e.Trials())
	assert.Equal(t, 7, e.Candidates().Len())
}

func TestEngineRemoveUnknown(t *testing.T) {
	e := newTestEngine()
	_, err := e.Remove("nope")
	assert.True(t, errors.Is(err, trial.ErrNotFound))
}

func TestEngineProjections(t *testing.T) {
	e := newTestEngine()
	_, err := e.Commit(trial.KindSuccess, combo.New("x1", "y1", "z1"), "Elixir")
	require.NoError(t, err)

	m, err := e.Matrix("y1", projection.DefaultPolicy())
	require.NoError(t, err)
	cell, _ := m.At("x1", "z1")
	assert.Equal(t, projection.CellSuccess, cell.State)

	assert.Len(t, e.Untested(""), 3)
	assert.Len(t, e.Annotate(reducer.Selection{Organ: "y1"}, combo.Metal, recommend.Options{}), 2)
}
