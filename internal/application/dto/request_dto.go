package dto

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/YoshitsuguKoike/potionlab/internal/domain/model/combo"
	"github.com/YoshitsuguKoike/potionlab/internal/domain/model/trial"
)

var requestValidate = validator.New()

// CommitRequest is the inbound shape of a commit from the CLI or HTTP host
type CommitRequest struct {
	Kind  string `json:"kind" validate:"required,max=32"`
	Metal string `json:"metal" validate:"required,max=128"`
	Organ string `json:"organ" validate:"required,max=128"`
	Herb  string `json:"herb" validate:"required,max=128"`
	Label string `json:"label,omitempty" validate:"max=256"`
}

// Combo returns the combination named by the request
func (r CommitRequest) Combo() combo.Combo {
	return combo.New(r.Metal, r.Organ, r.Herb)
}

// Validate checks the request shape. Domain rules (kind, labels, duplicates)
// are checked by the engine.
func (r CommitRequest) Validate() error {
	return validateStruct(r)
}

// ResolveRequest turns a pending trial into a definitive outcome
type ResolveRequest struct {
	Kind  string `json:"kind" validate:"required,max=32"`
	Label string `json:"label,omitempty" validate:"max=256"`
}

// Validate checks the request shape
func (r ResolveRequest) Validate() error {
	return validateStruct(r)
}

// SelectionRequest is a partial selection for recommendations and options
type SelectionRequest struct {
	Metal string `json:"metal,omitempty" form:"metal" validate:"max=128"`
	Organ string `json:"organ,omitempty" form:"organ" validate:"max=128"`
	Herb  string `json:"herb,omitempty" form:"herb" validate:"max=128"`
}

// Validate checks the request shape
func (r SelectionRequest) Validate() error {
	return validateStruct(r)
}

// validateStruct runs the shared validator and reports the first failing
// field as a trial.ValidationError
func validateStruct(v interface{}) error {
	err := requestValidate.Struct(v)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		return &trial.ValidationError{
			Field:  strings.ToLower(fe.Field()),
			Reason: describeTag(fe),
		}
	}
	return err
}

func describeTag(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "max":
		return "must be at most " + fe.Param() + " characters"
	default:
		return "failed " + fe.Tag() + " check"
	}
}
