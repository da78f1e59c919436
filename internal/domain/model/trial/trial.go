package trial

import (
	"fmt"
	"strings"

	"github.com/YoshitsuguKoike/potionlab/internal/domain/model/combo"
)

// Kind is the tag of the Trial variant
type Kind string

const (
	KindSuccess Kind = "success"
	KindHint    Kind = "hint"
	KindFailure Kind = "failure"
	KindPending Kind = "pending"
)

// Kinds lists every kind in serialisation order
var Kinds = [4]Kind{KindSuccess, KindHint, KindFailure, KindPending}

// String returns the string representation
func (k Kind) String() string {
	return string(k)
}

// IsValid validates the kind
func (k Kind) IsValid() bool {
	switch k {
	case KindSuccess, KindHint, KindFailure, KindPending:
		return true
	default:
		return false
	}
}

// IsDefinitive reports whether the kind is a resolved outcome
func (k Kind) IsDefinitive() bool {
	return k == KindSuccess || k == KindHint || k == KindFailure
}

// NeedsLabel reports whether the kind carries a potion name
func (k Kind) NeedsLabel() bool {
	return k == KindSuccess || k == KindHint
}

// ParseKind converts user input into a Kind. The labels of the original
// browser tool (potion, close, nothing, flask) are accepted as aliases.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "success", "potion":
		return KindSuccess, nil
	case "hint", "close":
		return KindHint, nil
	case "failure", "nothing":
		return KindFailure, nil
	case "pending", "flask":
		return KindPending, nil
	default:
		return "", &ValidationError{Field: "kind", Reason: fmt.Sprintf("unknown trial kind %q", s)}
	}
}

// Trial is one recorded observation about a combo.
// Label is set for Success and Hint only.
type Trial struct {
	ID    string
	Kind  Kind
	Combo combo.Combo
	Label string
}

// NewSuccess records that combo produces the named potion
func NewSuccess(id string, c combo.Combo, label string) (Trial, error) {
	return newTrial(id, KindSuccess, c, label)
}

// NewHint records that combo is close to the named potion
func NewHint(id string, c combo.Combo, label string) (Trial, error) {
	return newTrial(id, KindHint, c, label)
}

// NewFailure records that combo produces nothing
func NewFailure(id string, c combo.Combo) (Trial, error) {
	return newTrial(id, KindFailure, c, "")
}

// NewPending queues combo for testing
func NewPending(id string, c combo.Combo) (Trial, error) {
	return newTrial(id, KindPending, c, "")
}

// New dispatches to the constructor for kind
func New(id string, kind Kind, c combo.Combo, label string) (Trial, error) {
	if !kind.IsValid() {
		return Trial{}, &ValidationError{Field: "kind", Reason: fmt.Sprintf("unknown trial kind %q", kind)}
	}
	return newTrial(id, kind, c, label)
}

func newTrial(id string, kind Kind, c combo.Combo, label string) (Trial, error) {
	if id == "" {
		return Trial{}, &ValidationError{Field: "id", Reason: "trial ID cannot be empty"}
	}
	if err := validateCombo(c); err != nil {
		return Trial{}, err
	}
	label = strings.TrimSpace(label)
	if kind.NeedsLabel() {
		if label == "" {
			return Trial{}, &ValidationError{Field: "label", Reason: fmt.Sprintf("%s requires a potion name", kind)}
		}
	} else {
		label = ""
	}
	return Trial{ID: id, Kind: kind, Combo: c, Label: label}, nil
}

func validateCombo(c combo.Combo) error {
	var missing []string
	for _, d := range combo.Dimensions {
		if strings.TrimSpace(c.Get(d)) == "" {
			missing = append(missing, d.String())
		}
	}
	if len(missing) > 0 {
		return &ValidationError{Field: "combo", Reason: "missing " + strings.Join(missing, ", ")}
	}
	return nil
}

func (t Trial) String() string {
	if t.Kind.NeedsLabel() {
		return fmt.Sprintf("%s %s -> %s", t.Kind, t.Combo, t.Label)
	}
	return fmt.Sprintf("%s %s", t.Kind, t.Combo)
}
