package service

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/rehabfolio/portfolio-api/internal/modules/model"
)

var validate = validator.New()

// ProjectInput is the editable, non-image part of a project.
type ProjectInput struct {
	Title            string   `json:"title" validate:"required"`
	Status           string   `json:"status" validate:"oneof=draft published archived"`
	Location         string   `json:"location" validate:"required_if=Status published"`
	ShortDescription string   `json:"shortDescription" validate:"required_if=Status published"`
	FullDescription  string   `json:"fullDescription"`
	ScopeOfWork      string   `json:"scopeOfWork"`
	Challenges       string   `json:"challenges"`
	Outcomes         string   `json:"outcomes"`
	PurchaseDate     string   `json:"purchaseDate"`
	CompletionDate   string   `json:"completionDate"`
	Budget           *float64 `json:"budget" validate:"omitempty,gte=0"`
	FinalCost        *float64 `json:"finalCost" validate:"omitempty,gte=0"`
	SquareFootage    *int     `json:"squareFootage" validate:"omitempty,gte=0"`
}

// Normalize trims text fields and lowercases the status. It does not fill in
// a missing status; only Create defaults that to draft.
func (in *ProjectInput) Normalize() {
	in.Title = strings.TrimSpace(in.Title)
	in.Status = strings.ToLower(strings.TrimSpace(in.Status))
	in.Location = strings.TrimSpace(in.Location)
	in.ShortDescription = strings.TrimSpace(in.ShortDescription)
}

// Validate returns every failed rule. Location and short description are
// only required for published projects; numbers must never be negative.
func Validate(in ProjectInput) []string {
	return validationDetails(validate.Struct(in))
}

var statusMessage = "Status must be one of: " + strings.Join(model.Statuses, ", ")

// fieldMessages maps "<StructField>.<tag>" onto the message shown to clients.
var fieldMessages = map[string]string{
	"Title.required":               "Title is required",
	"Status.oneof":                 statusMessage,
	"Location.required_if":         "Location is required when publishing",
	"ShortDescription.required_if": "Short description is required when publishing",
	"Budget.gte":                   "Budget must be a positive number",
	"FinalCost.gte":                "Final cost must be a positive number",
	"SquareFootage.gte":            "Square footage must be a positive number",
	"FileName.required":            "File name is required",
	"ContentType.required":         "Content type must be an image type",
	"ContentType.startswith":       "Content type must be an image type",
	"ContentType.gt":               "Content type must be an image type",
	"Group.oneof":                  "Image group must be before or after",
	"URL.required":                 "Image URL is required",
}

func validationDetails(err error) []string {
	var fes validator.ValidationErrors
	if !errors.As(err, &fes) {
		return nil
	}
	details := make([]string, 0, len(fes))
	for _, fe := range fes {
		msg, ok := fieldMessages[fe.StructField()+"."+fe.Tag()]
		if !ok {
			msg = fe.Field() + " is invalid"
		}
		details = append(details, msg)
	}
	return details
}

// AsValidationError converts struct-tag failures, such as those returned by
// gin binding, into a ValidationError.
func AsValidationError(err error) (*ValidationError, bool) {
	details := validationDetails(err)
	if len(details) == 0 {
		return nil, false
	}
	return &ValidationError{Details: details}, true
}

// applyTo copies every non-image field onto p.
func (in ProjectInput) applyTo(p *model.Project) {
	p.Title = in.Title
	p.Status = in.Status
	p.Location = in.Location
	p.ShortDescription = in.ShortDescription
	p.FullDescription = in.FullDescription
	p.ScopeOfWork = in.ScopeOfWork
	p.Challenges = in.Challenges
	p.Outcomes = in.Outcomes
	p.PurchaseDate = in.PurchaseDate
	p.CompletionDate = in.CompletionDate
	p.Budget = in.Budget
	p.FinalCost = in.FinalCost
	p.SquareFootage = in.SquareFootage
}
