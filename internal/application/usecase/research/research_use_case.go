// Package research hosts a research session: it serialises access to the
// engine and persists the trial log after every mutation.
package research

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/YoshitsuguKoike/potionlab/internal/app"
	"github.com/YoshitsuguKoike/potionlab/internal/application/dto"
	"github.com/YoshitsuguKoike/potionlab/internal/application/port/input"
	"github.com/YoshitsuguKoike/potionlab/internal/application/port/output"
	"github.com/YoshitsuguKoike/potionlab/internal/catalog"
	"github.com/YoshitsuguKoike/potionlab/internal/domain/engine"
	"github.com/YoshitsuguKoike/potionlab/internal/domain/model/combo"
	"github.com/YoshitsuguKoike/potionlab/internal/domain/model/trial"
	"github.com/YoshitsuguKoike/potionlab/internal/domain/service/projection"
	"github.com/YoshitsuguKoike/potionlab/internal/domain/service/recommend"
	"github.com/YoshitsuguKoike/potionlab/internal/domain/service/reducer"
)

// Options configures a Service
type Options struct {
	Policy    projection.Policy
	Recommend recommend.Options
	IDs       trial.IDGenerator
	Logger    app.Logger
}

// Service implements input.ResearchUseCase
type Service struct {
	mu      sync.RWMutex
	engine  *engine.Engine
	catalog *catalog.Catalog
	store   output.StateStore
	logger  app.Logger
	policy  projection.Policy
	recOpts recommend.Options
}

var _ input.ResearchUseCase = (*Service)(nil)

// NewService creates a session over cat. store may be nil for a session
// that is never persisted.
func NewService(cat *catalog.Catalog, store output.StateStore, opts Options) *Service {
	logger := opts.Logger
	if logger == nil {
		logger = app.GetLogger()
	}
	policy := opts.Policy
	if len(policy.Precedence) == 0 {
		policy = projection.DefaultPolicy()
	}
	return &Service{
		engine:  engine.New(cat.Domain(), opts.IDs),
		catalog: cat,
		store:   store,
		logger:  logger,
		policy:  policy,
		recOpts: opts.Recommend,
	}
}

// Catalog returns the catalog the session was built from
func (s *Service) Catalog() *catalog.Catalog {
	return s.catalog
}

// Load restores the last saved log. A missing state leaves the session
// empty; a stored log that no longer fits the catalog is an error.
func (s *Service) Load(ctx context.Context) error {
	if s.store == nil {
		return nil
	}
	snap, err := s.store.Load(ctx)
	if errors.Is(err, output.ErrNoState) {
		s.logger.Debug("no saved state, starting empty")
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to load state: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.engine.Replace(snap.Trials()); err != nil {
		return fmt.Errorf("saved state does not match the catalog: %w", err)
	}
	s.logger.Info("loaded %d trials, %d candidates remain", snap.Len(), s.engine.Candidates().Len())
	return nil
}

// Commit records one trial outcome
func (s *Service) Commit(ctx context.Context, req dto.CommitRequest) (dto.TrialView, error) {
	if err := req.Validate(); err != nil {
		return dto.TrialView{}, err
	}
	kind, err := trial.ParseKind(req.Kind)
	if err != nil {
		return dto.TrialView{}, err
	}
	c := s.catalog.CanonicalCombo(req.Combo())

	var committed trial.Trial
	err = s.mutate(ctx, func(e *engine.Engine) error {
		var err error
		committed, err = e.Commit(kind, c, req.Label)
		return err
	})
	if err != nil {
		return dto.TrialView{}, err
	}
	s.logger.Info("committed %s", committed)
	return dto.NewTrialView(committed), nil
}

// Resolve turns a pending trial into a definitive outcome
func (s *Service) Resolve(ctx context.Context, pendingID string, req dto.ResolveRequest) (dto.TrialView, error) {
	if err := req.Validate(); err != nil {
		return dto.TrialView{}, err
	}
	kind, err := trial.ParseKind(req.Kind)
	if err != nil {
		return dto.TrialView{}, err
	}

	var resolved trial.Trial
	err = s.mutate(ctx, func(e *engine.Engine) error {
		var err error
		resolved, err = e.Resolve(pendingID, kind, req.Label)
		return err
	})
	if err != nil {
		return dto.TrialView{}, err
	}
	s.logger.Info("resolved %s as %s", pendingID, resolved)
	return dto.NewTrialView(resolved), nil
}

// Remove deletes a trial by ID
func (s *Service) Remove(ctx context.Context, id string) (dto.TrialView, error) {
	var removed trial.Trial
	err := s.mutate(ctx, func(e *engine.Engine) error {
		var err error
		removed, err = e.Remove(id)
		return err
	})
	if err != nil {
		return dto.TrialView{}, err
	}
	s.logger.Info("removed %s", removed)
	return dto.NewTrialView(removed), nil
}

// Import replaces the whole log with data. Nothing changes unless the
// payload parses and every trial is valid; both failures are ImportErrors.
func (s *Service) Import(ctx context.Context, data []byte) (int, error) {
	snap, err := dto.DecodeSnapshot(data)
	if err != nil {
		return 0, err
	}
	trials := snap.Trials()
	for i := range trials {
		trials[i].Combo = s.catalog.CanonicalCombo(trials[i].Combo)
	}

	err = s.mutate(ctx, func(e *engine.Engine) error {
		if err := e.Replace(trials); err != nil {
			return &dto.ImportError{Cause: err}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	s.logger.Info("imported %d trials", len(trials))
	return len(trials), nil
}

// Export serialises the current log
func (s *Service) Export() ([]byte, error) {
	return s.Snapshot().Encode()
}

// ExportTo writes the current log to a backup medium
func (s *Service) ExportTo(ctx context.Context, gw output.BackupGateway) (string, error) {
	data, err := s.Export()
	if err != nil {
		return "", err
	}
	ref, err := gw.Export(ctx, data)
	if err != nil {
		return "", fmt.Errorf("failed to export to %s: %w", gw.Name(), err)
	}
	s.logger.Info("exported %d bytes to %s (%s)", len(data), gw.Name(), ref)
	return ref, nil
}

// ImportFrom reads a backup from a medium and imports it. An empty ref
// selects the most recent backup.
func (s *Service) ImportFrom(ctx context.Context, gw output.BackupGateway, ref string) (int, error) {
	data, err := gw.Import(ctx, ref)
	if err != nil {
		return 0, fmt.Errorf("failed to import from %s: %w", gw.Name(), err)
	}
	return s.Import(ctx, data)
}

// Snapshot returns the persistable form of the log
func (s *Service) Snapshot() *dto.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return dto.NewSnapshot(s.engine.Trials())
}

// Trials lists trials; an empty kind lists all of them
func (s *Service) Trials(kind string) ([]dto.TrialView, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if kind == "" {
		return dto.NewTrialViews(s.engine.Trials()), nil
	}
	k, err := trial.ParseKind(kind)
	if err != nil {
		return nil, err
	}
	return dto.NewTrialViews(s.engine.TrialsOf(k)), nil
}

// Candidates lists the remaining candidates in domain order
func (s *Service) Candidates(limit int) dto.CandidateList {
	s.mu.RLock()
	defer s.mu.RUnlock()
	set := s.engine.Candidates()
	combos := set.Combos()
	if combos == nil {
		combos = []combo.Combo{}
	}
	list := dto.CandidateList{
		Total:    set.Len(),
		Universe: s.engine.Domain().Size(),
	}
	if limit > 0 && len(combos) > limit {
		combos = combos[:limit]
		list.Truncated = true
	}
	list.Combos = combos
	return list
}

// Recommend suggests values for a partial selection
func (s *Service) Recommend(req dto.SelectionRequest) (recommend.Recommendation, error) {
	sel, err := s.selection(req)
	if err != nil {
		return recommend.Recommendation{}, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.engine.Recommend(sel, s.recOpts), nil
}

// Options annotates every value of dimension for a picker
func (s *Service) Options(req dto.SelectionRequest, dimension string) (dto.OptionsView, error) {
	d, err := combo.ParseDimension(dimension)
	if err != nil {
		return dto.OptionsView{}, &trial.ValidationError{Field: "dimension", Reason: err.Error()}
	}
	sel, err := s.selection(req)
	if err != nil {
		return dto.OptionsView{}, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return dto.OptionsView{
		Dimension: d.String(),
		Selection: sel,
		Values:    s.engine.Annotate(sel, d, s.recOpts),
	}, nil
}

// Matrix builds the cross-section for organ
func (s *Service) Matrix(organ string) (projection.Matrix, error) {
	organ = s.catalog.Canonical(combo.Organ, organ)
	s.mu.RLock()
	defer s.mu.RUnlock()
	m, err := s.engine.Matrix(organ, s.policy)
	if errors.Is(err, projection.ErrUnknownOrgan) {
		return projection.Matrix{}, &trial.ValidationError{Field: "organ", Reason: err.Error()}
	}
	return m, err
}

// Untested lists metal/herb pairs no trial has touched. A non-empty
// focusOrgan must name a catalog organ.
func (s *Service) Untested(focusOrgan string) (dto.UntestedReport, error) {
	focus := s.catalog.Canonical(combo.Organ, focusOrgan)
	if focus != "" && !s.catalog.Domain().Contains(combo.Organ, focus) {
		return dto.UntestedReport{}, &trial.ValidationError{
			Field:  "organ",
			Reason: fmt.Sprintf("unknown organ %q", focusOrgan),
		}
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return dto.UntestedReport{FocusOrgan: focus, Pairs: s.engine.Untested(focus)}, nil
}

// Seasons lists herb seasons. With herb set, only that herb's seasons are
// listed; with season set, only that season.
func (s *Service) Seasons(herb, season string) ([]catalog.SeasonGroup, error) {
	switch {
	case herb != "" && season != "":
		return nil, &trial.ValidationError{Field: "season", Reason: "choose a herb or a season, not both"}
	case herb != "":
		h, err := s.catalog.HerbInfo(herb)
		if err != nil {
			return nil, &trial.ValidationError{Field: "herb", Reason: err.Error()}
		}
		groups := []catalog.SeasonGroup{}
		for _, sn := range []string{h.Season1, h.Season2} {
			if sn != "" && (len(groups) == 0 || groups[0].Season != sn) {
				groups = append(groups, catalog.SeasonGroup{Season: sn, Herbs: []string{h.Name}})
			}
		}
		return groups, nil
	case season != "":
		herbs, err := s.catalog.HerbsIn(season)
		if err != nil {
			return nil, &trial.ValidationError{Field: "season", Reason: err.Error()}
		}
		return []catalog.SeasonGroup{{Season: strings.ToLower(catalog.Normalize(season)), Herbs: herbs}}, nil
	default:
		return s.catalog.SeasonGroups(), nil
	}
}

// Stats summarises the session
func (s *Service) Stats() dto.Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return dto.Stats{
		Successes:  len(s.engine.TrialsOf(trial.KindSuccess)),
		Hints:      len(s.engine.TrialsOf(trial.KindHint)),
		Failures:   len(s.engine.TrialsOf(trial.KindFailure)),
		Pending:    len(s.engine.TrialsOf(trial.KindPending)),
		Candidates: s.engine.Candidates().Len(),
		Universe:   s.engine.Domain().Size(),
	}
}

// mutate applies fn under the write lock and persists the result. When the
// store rejects the write the previous log is restored.
func (s *Service) mutate(ctx context.Context, fn func(*engine.Engine) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	previous := s.engine.Trials()
	if err := fn(s.engine); err != nil {
		return err
	}
	if s.store == nil {
		return nil
	}
	if err := s.store.Save(ctx, dto.NewSnapshot(s.engine.Trials())); err != nil {
		if rerr := s.engine.Replace(previous); rerr != nil {
			s.logger.Error("failed to restore log after save error: %v", rerr)
		}
		return fmt.Errorf("failed to save state: %w", err)
	}
	return nil
}

// selection canonicalises a request and rejects values outside the catalog
func (s *Service) selection(req dto.SelectionRequest) (reducer.Selection, error) {
	if err := req.Validate(); err != nil {
		return reducer.Selection{}, err
	}
	sel := reducer.Selection{}
	raw := reducer.Selection{Metal: req.Metal, Organ: req.Organ, Herb: req.Herb}
	for _, d := range combo.Dimensions {
		v := s.catalog.Canonical(d, raw.Get(d))
		if v == "" {
			continue
		}
		if !s.catalog.Domain().Contains(d, v) {
			return reducer.Selection{}, &trial.ValidationError{
				Field:  d.String(),
				Reason: fmt.Sprintf("unknown %s %q", d, raw.Get(d)),
			}
		}
		sel = sel.With(d, v)
	}
	return sel, nil
}
