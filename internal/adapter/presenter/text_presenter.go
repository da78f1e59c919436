package presenter

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/YoshitsuguKoike/potionlab/internal/application/dto"
	"github.com/YoshitsuguKoike/potionlab/internal/application/port/output"
	"github.com/YoshitsuguKoike/potionlab/internal/catalog"
	"github.com/YoshitsuguKoike/potionlab/internal/domain/model/combo"
	"github.com/YoshitsuguKoike/potionlab/internal/domain/service/projection"
	"github.com/YoshitsuguKoike/potionlab/internal/domain/service/recommend"
)

// Semantic colours
var (
	colorSuccess = lipgloss.Color("#2CD7C7")
	colorWarning = lipgloss.Color("#F4D03F")
	colorError   = lipgloss.Color("#E74C3C")
	colorMuted   = lipgloss.Color("#7F8C8D")
)

// cellSymbols keeps every matrix cell one column wide
var cellSymbols = map[projection.CellState]string{
	projection.CellSuccess:       "S",
	projection.CellHint:          "~",
	projection.CellLocalFailure:  "x",
	projection.CellGlobalFailure: "-",
	projection.CellPending:       "?",
	projection.CellEmpty:         ".",
}

type textStyles struct {
	title   lipgloss.Style
	success lipgloss.Style
	warning lipgloss.Style
	err     lipgloss.Style
	muted   lipgloss.Style
}

// TextPresenter implements output.ResearchPresenter for terminals.
// Colour is only emitted when the writer is a terminal.
type TextPresenter struct {
	output   io.Writer
	renderer *lipgloss.Renderer
	styles   textStyles
	palette  *Palette
}

var _ output.ResearchPresenter = (*TextPresenter)(nil)

// NewTextPresenter creates a text presenter; palette may be nil
func NewTextPresenter(w io.Writer, palette *Palette) *TextPresenter {
	r := lipgloss.NewRenderer(w)
	return &TextPresenter{
		output:   w,
		renderer: r,
		palette:  palette,
		styles: textStyles{
			title:   r.NewStyle().Bold(true),
			success: r.NewStyle().Foreground(colorSuccess),
			warning: r.NewStyle().Foreground(colorWarning),
			err:     r.NewStyle().Foreground(colorError).Bold(true),
			muted:   r.NewStyle().Foreground(colorMuted),
		},
	}
}

// PresentSuccess presents a successful result
func (p *TextPresenter) PresentSuccess(message string, data interface{}) error {
	fmt.Fprintln(p.output, p.styles.success.Render("✓ "+message))
	switch v := data.(type) {
	case nil:
	case string:
		fmt.Fprintln(p.output, v)
	default:
		fmt.Fprintf(p.output, "%+v\n", v)
	}
	return nil
}

// PresentError presents an error
func (p *TextPresenter) PresentError(err error) error {
	fmt.Fprintln(p.output, p.styles.err.Render("✗ Error: "+err.Error()))
	return err
}

// PresentTrial presents a single trial
func (p *TextPresenter) PresentTrial(action string, t dto.TrialView) error {
	fmt.Fprintf(p.output, "%s %s\n", p.styles.success.Render("✓ "+action), p.trialLine(t))
	return nil
}

// PresentTrials presents a trial listing, one line per trial
func (p *TextPresenter) PresentTrials(trials []dto.TrialView) error {
	if len(trials) == 0 {
		fmt.Fprintln(p.output, p.styles.muted.Render("No trials recorded"))
		return nil
	}
	for _, t := range trials {
		fmt.Fprintln(p.output, p.trialLine(t))
	}
	fmt.Fprintln(p.output, p.styles.muted.Render(fmt.Sprintf("%d trial(s)", len(trials))))
	return nil
}

func (p *TextPresenter) PresentCandidates(list dto.CandidateList) error {
	fmt.Fprintln(p.output, p.styles.title.Render(fmt.Sprintf("Candidates: %d of %d", list.Total, list.Universe)))
	for _, c := range list.Combos {
		fmt.Fprintf(p.output, "  %s\n", p.comboText(c))
	}
	if list.Truncated {
		fmt.Fprintln(p.output, p.styles.muted.Render(fmt.Sprintf("  ... %d more", list.Total-len(list.Combos))))
	}
	return nil
}

func (p *TextPresenter) PresentRecommendation(rec recommend.Recommendation) error {
	fmt.Fprintln(p.output, p.styles.title.Render("Recommended for "+selectionText(rec.Selection.Metal, rec.Selection.Organ, rec.Selection.Herb)))
	for _, d := range combo.Dimensions {
		if rec.Selection.Pinned(d) {
			continue
		}
		values := rec.For(d)
		if len(values) == 0 {
			fmt.Fprintf(p.output, "  %-6s %s\n", d.String()+":", p.styles.muted.Render("(none)"))
			continue
		}
		colored := make([]string, len(values))
		for i, v := range values {
			colored[i] = p.value(d, v)
		}
		fmt.Fprintf(p.output, "  %-6s %s\n", d.String()+":", strings.Join(colored, ", "))
	}
	return nil
}

func (p *TextPresenter) PresentOptions(view dto.OptionsView) error {
	dim, err := combo.ParseDimension(view.Dimension)
	if err != nil {
		return err
	}
	fmt.Fprintln(p.output, p.styles.title.Render(fmt.Sprintf("%s options for %s", view.Dimension,
		selectionText(view.Selection.Metal, view.Selection.Organ, view.Selection.Herb))))
	for _, vs := range view.Values {
		status := string(vs.Status)
		style := p.styles.muted
		switch vs.Status {
		case recommend.StatusRecommended:
			style = p.styles.success
		case recommend.StatusForbidden:
			style = p.styles.err
			if vs.Near {
				style = p.styles.warning
				status += " (near)"
			}
		case recommend.StatusQueued:
			style = p.styles.warning
		}
		fmt.Fprintf(p.output, "  %s %s\n", p.pad(dim, vs.Value, 12), style.Render(status))
	}
	return nil
}

// PresentMatrix renders the metal x herb grid with one symbol per cell,
// followed by the labels of successful and near-miss cells.
func (p *TextPresenter) PresentMatrix(m projection.Matrix) error {
	fmt.Fprintln(p.output, p.styles.title.Render("Matrix for organ: "+m.Organ))

	rowHead := len("Metal")
	for _, metal := range m.Metals {
		if len(metal) > rowHead {
			rowHead = len(metal)
		}
	}
	widths := make([]int, len(m.Herbs))
	header := fmt.Sprintf("%-*s", rowHead, "Metal")
	for j, h := range m.Herbs {
		widths[j] = len(h)
		header += " " + p.pad(combo.Herb, h, widths[j])
	}
	fmt.Fprintln(p.output, header)

	var notes []string
	for i, metal := range m.Metals {
		line := p.pad(combo.Metal, metal, rowHead)
		for j, cell := range m.Cells[i] {
			line += " " + p.cellStyle(cell.State).Render(fmt.Sprintf("%-*s", widths[j], cellSymbols[cell.State]))
			if cell.Label != "" {
				notes = append(notes, fmt.Sprintf("%s + %s: %s (%s)", cell.Metal, cell.Herb, cell.Label, cell.State))
			}
		}
		fmt.Fprintln(p.output, line)
	}

	fmt.Fprintln(p.output, p.styles.muted.Render("S success  ~ hint  x failure  - failure elsewhere  ? pending  . untried"))
	for _, n := range notes {
		fmt.Fprintln(p.output, "  "+n)
	}
	return nil
}

func (p *TextPresenter) PresentUntested(report dto.UntestedReport) error {
	title := "Untested metal + herb pairs"
	if report.FocusOrgan != "" {
		title += " (" + report.FocusOrgan + ")"
	}
	fmt.Fprintln(p.output, p.styles.title.Render(title))
	if len(report.Pairs) == 0 {
		fmt.Fprintln(p.output, p.styles.success.Render("  Every pair has been tested"))
		return nil
	}
	for _, pair := range report.Pairs {
		fmt.Fprintf(p.output, "  %s + %s\n", p.value(combo.Metal, pair.Metal), p.value(combo.Herb, pair.Herb))
	}
	return nil
}

func (p *TextPresenter) PresentSeasons(groups []catalog.SeasonGroup) error {
	for _, g := range groups {
		fmt.Fprintln(p.output, p.styles.title.Render(strings.ToUpper(g.Season[:1])+g.Season[1:]))
		if len(g.Herbs) == 0 {
			fmt.Fprintln(p.output, p.styles.muted.Render("  (none)"))
			continue
		}
		for _, h := range g.Herbs {
			fmt.Fprintln(p.output, "  "+p.value(combo.Herb, h))
		}
	}
	return nil
}

func (p *TextPresenter) PresentStats(s dto.Stats) error {
	fmt.Fprintln(p.output, p.styles.title.Render("Research summary"))
	fmt.Fprintf(p.output, "  Successes:  %d\n", s.Successes)
	fmt.Fprintf(p.output, "  Hints:      %d\n", s.Hints)
	fmt.Fprintf(p.output, "  Failures:   %d\n", s.Failures)
	fmt.Fprintf(p.output, "  Pending:    %d\n", s.Pending)
	fmt.Fprintf(p.output, "  Candidates: %d / %d\n", s.Candidates, s.Universe)
	return nil
}

func (p *TextPresenter) trialLine(t dto.TrialView) string {
	line := fmt.Sprintf("%s  %-8s %s", t.ID, t.Kind, p.comboText(t.Combo))
	if t.Label != "" {
		line += "  " + p.styles.title.Render(t.Label)
	}
	return line
}

func (p *TextPresenter) comboText(c combo.Combo) string {
	return p.value(combo.Metal, c.Metal) + " + " + p.value(combo.Organ, c.Organ) + " + " + p.value(combo.Herb, c.Herb)
}

// value renders v in its palette colour
func (p *TextPresenter) value(d combo.Dimension, v string) string {
	if p.palette == nil {
		return v
	}
	hex := p.palette.Color(d, v)
	if hex == "" {
		return v
	}
	return p.renderer.NewStyle().Foreground(lipgloss.Color(hex)).Render(v)
}

// pad left-aligns v in width columns before colouring it
func (p *TextPresenter) pad(d combo.Dimension, v string, width int) string {
	padding := ""
	if n := width - lipgloss.Width(v); n > 0 {
		padding = strings.Repeat(" ", n)
	}
	return p.value(d, v) + padding
}

func (p *TextPresenter) cellStyle(st projection.CellState) lipgloss.Style {
	switch st {
	case projection.CellSuccess:
		return p.styles.success
	case projection.CellHint, projection.CellPending:
		return p.styles.warning
	case projection.CellLocalFailure:
		return p.styles.err
	default:
		return p.styles.muted
	}
}

func selectionText(metal, organ, herb string) string {
	parts := []string{orAny(metal), orAny(organ), orAny(herb)}
	return strings.Join(parts, " + ")
}

func orAny(v string) string {
	if v == "" {
		return "*"
	}
	return v
}
