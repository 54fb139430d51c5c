package usecase

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"go-autofiller-backend/internal/domain"
	"go-autofiller-backend/pkg/apperror"
	"go-autofiller-backend/pkg/logger"

	"github.com/go-playground/validator/v10"
)

type profileUsecase struct {
	repo     domain.ProfileRepository
	validate *validator.Validate
}

func NewProfileUsecase(repo domain.ProfileRepository, validate *validator.Validate) domain.ProfileUsecase {
	return &profileUsecase{
		repo:     repo,
		validate: validate,
	}
}

// SaveProfile is the upsert: create when no stored profile carries the
// submission's email (an absent email never matches anything), overwrite
// otherwise. All scalars are replaced unconditionally and the child
// collections are rebuilt from the submission on both paths.
func (u *profileUsecase) SaveProfile(ctx context.Context, sub *domain.ProfileSubmission) (*domain.SaveResult, error) {
	if err := u.validate.Struct(sub); err != nil {
		return nil, apperror.BadRequest(validationDetail(err))
	}

	if logger.Log != nil {
		logger.Log.Debug("Profile data received",
			"email", strValue(sub.Personal.Email),
			"experience_count", len(sub.Experience),
			"references_count", len(sub.References),
		)
	}

	var existing *domain.Profile
	if email := strValue(sub.Personal.Email); email != "" {
		var err error
		existing, err = u.repo.FindByEmail(ctx, email)
		if err != nil {
			return nil, saveFailure(err)
		}
	}

	profile := mapSubmission(sub)
	action := domain.ActionCreated
	if existing != nil {
		// Identity and creation time survive the overwrite
		action = domain.ActionUpdated
		profile.ID = existing.ID
		profile.CreatedAt = existing.CreatedAt
	}
	profile.LastUpdated = resolveLastUpdated(sub.LastUpdated, action == domain.ActionUpdated)

	if err := u.repo.Save(ctx, profile); err != nil {
		return nil, saveFailure(err)
	}

	return &domain.SaveResult{
		ProfileID:    profile.ID,
		Action:       action,
		DataReceived: summarize(sub),
	}, nil
}

// mapSubmission translates wire field names into column-shaped entity
// fields. Scalars copy 1:1; list fields default to empty, never nil.
func mapSubmission(sub *domain.ProfileSubmission) *domain.Profile {
	p := &domain.Profile{
		FirstName: sub.Personal.FirstName,
		LastName:  sub.Personal.LastName,
		Email:     sub.Personal.Email,
		Phone:     sub.Personal.Phone,
		Address:   sub.Personal.Address,
		City:      sub.Personal.City,
		State:     sub.Personal.State,
		ZipCode:   sub.Personal.ZipCode,
		Country:   sub.Personal.Country,
		Linkedin:  sub.Personal.Linkedin,
		Portfolio: sub.Personal.Portfolio,

		CurrentTitle:   sub.Professional.CurrentTitle,
		CurrentCompany: sub.Professional.CurrentCompany,
		Summary:        sub.Professional.Summary,
		Skills:         orEmpty(sub.Professional.Skills),

		Degree:         sub.Education.Degree,
		FieldOfStudy:   sub.Education.FieldOfStudy,
		University:     sub.Education.University,
		GraduationYear: sub.Education.GraduationYear,
		GPA:            sub.Education.GPA,

		ResumeURL:      sub.Documents.ResumeURL,
		ResumeFileName: sub.Documents.ResumeFileName,
		CoverLetter:    sub.Documents.CoverLetter,

		Availability:      sub.Additional.Availability,
		SalaryExpectation: sub.Additional.SalaryExpectation,
		WorkAuthorization: sub.Additional.WorkAuthorization,
		Languages:         orEmpty(sub.Additional.Languages),

		Experiences: make([]domain.Experience, 0, len(sub.Experience)),
		References:  make([]domain.Reference, 0, len(sub.References)),
	}

	for _, e := range sub.Experience {
		p.Experiences = append(p.Experiences, domain.Experience{
			Title:       e.Title,
			Company:     e.Company,
			StartDate:   e.StartDate,
			EndDate:     e.EndDate,
			Current:     e.Current,
			Description: e.Description,
		})
	}
	for _, ref := range sub.References {
		p.References = append(p.References, domain.Reference{
			Name:    ref.Name,
			Title:   ref.Title,
			Company: ref.Company,
			Email:   ref.Email,
			Phone:   ref.Phone,
		})
	}
	return p
}

// isoLayouts accepted for the client-declared lastUpdated value. RFC3339
// covers the trailing-Z and offset forms; the bare forms cover clients
// that omit the zone.
var isoLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

func parseISOTimestamp(value *string) *time.Time {
	if value == nil || *value == "" {
		return nil
	}
	for _, layout := range isoLayouts {
		if t, err := time.Parse(layout, *value); err == nil {
			t = t.UTC()
			return &t
		}
	}
	return nil
}

// resolveLastUpdated keeps a parseable client value; otherwise an update
// falls back to the server clock while a create stays NULL.
func resolveLastUpdated(raw *string, isUpdate bool) *time.Time {
	if t := parseISOTimestamp(raw); t != nil {
		return t
	}
	if isUpdate {
		now := time.Now().UTC()
		return &now
	}
	return nil
}

func summarize(sub *domain.ProfileSubmission) domain.DataReceived {
	return domain.DataReceived{
		PersonalInfo:     strValue(sub.Personal.Email) != "",
		ProfessionalInfo: strValue(sub.Professional.CurrentTitle) != "",
		EducationInfo:    strValue(sub.Education.Degree) != "",
		ExperienceCount:  len(sub.Experience),
		ReferencesCount:  len(sub.References),
		HasResume:        strValue(sub.Documents.ResumeURL) != "",
		ResumeURL:        sub.Documents.ResumeURL,
		HasCoverLetter:   strValue(sub.Documents.CoverLetter) != "",
	}
}

// saveFailure keeps coded errors (conflict) intact and wraps everything
// else so the whole operation reports as a single save failure.
func saveFailure(err error) error {
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		return err
	}
	return apperror.New(http.StatusInternalServerError, "Error saving profile: "+err.Error(), err)
}

// validationDetail flattens validator errors into field-path-scoped
// messages, e.g. "Personal.Email: max".
func validationDetail(err error) string {
	var vErrs validator.ValidationErrors
	if !errors.As(err, &vErrs) {
		return err.Error()
	}
	parts := make([]string, 0, len(vErrs))
	for _, e := range vErrs {
		path := strings.TrimPrefix(e.Namespace(), "ProfileSubmission.")
		parts = append(parts, path+": "+e.Tag())
	}
	return "Invalid submission: " + strings.Join(parts, "; ")
}

func strValue(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func orEmpty(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
