package domain

import (
	"context"
	"time"
)

// Profile is the persisted applicant aggregate: one row in profiles plus
// its experience and reference children. Scalar fields are pointers
// because every field is optional on the wire and stored as NULL when
// absent.
type Profile struct {
	ID          int64      `json:"id"`
	CreatedAt   time.Time  `json:"created_at"`
	LastUpdated *time.Time `json:"last_updated"`

	// Personal info
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	Email     *string `json:"email"`
	Phone     *string `json:"phone"`
	Address   *string `json:"address"`
	City      *string `json:"city"`
	State     *string `json:"state"`
	ZipCode   *string `json:"zip_code"`
	Country   *string `json:"country"`
	Linkedin  *string `json:"linkedin"`
	Portfolio *string `json:"portfolio"`

	// Professional info
	CurrentTitle   *string  `json:"current_title"`
	CurrentCompany *string  `json:"current_company"`
	Summary        *string  `json:"summary"`
	Skills         []string `json:"skills"`

	// Education
	Degree         *string `json:"degree"`
	FieldOfStudy   *string `json:"field_of_study"`
	University     *string `json:"university"`
	GraduationYear *string `json:"graduation_year"`
	GPA            *string `json:"gpa"`

	// Documents
	ResumeURL      *string `json:"resume_url"`
	ResumeFileName *string `json:"resume_file_name"`
	CoverLetter    *string `json:"cover_letter"`

	// Additional info
	Availability      *string  `json:"availability"`
	SalaryExpectation *string  `json:"salary_expectation"`
	WorkAuthorization *string  `json:"work_authorization"`
	Languages         []string `json:"languages"`

	Experiences []Experience `json:"experiences"`
	References  []Reference  `json:"references"`
}

// Experience is owned by exactly one Profile and is replaced wholesale on
// every save. Dates are free text as submitted by the extension.
type Experience struct {
	ID          int64   `json:"id"`
	ProfileID   int64   `json:"profile_id"`
	Title       *string `json:"title"`
	Company     *string `json:"company"`
	StartDate   *string `json:"start_date"`
	EndDate     *string `json:"end_date"`
	Current     bool    `json:"current"`
	Description *string `json:"description"`
}

// Reference is owned by exactly one Profile, same lifecycle as Experience.
type Reference struct {
	ID        int64   `json:"id"`
	ProfileID int64   `json:"profile_id"`
	Name      *string `json:"name"`
	Title     *string `json:"title"`
	Company   *string `json:"company"`
	Email     *string `json:"email"`
	Phone     *string `json:"phone"`
}

// ProfileSubmission mirrors the JSON payload posted by the extension.
// Every leaf is optional; list fields default to empty. Field names match
// the wire contract, not the column names.
type ProfileSubmission struct {
	Personal     PersonalInfo      `json:"personal"`
	Professional ProfessionalInfo  `json:"professional"`
	Education    EducationInfo     `json:"education"`
	Experience   []ExperienceEntry `json:"experience" validate:"dive"`
	References   []ReferenceEntry  `json:"references" validate:"dive"`
	Documents    Documents         `json:"documents"`
	Additional   AdditionalInfo    `json:"additional"`
	LastUpdated  *string           `json:"lastUpdated"`
}

type PersonalInfo struct {
	FirstName *string `json:"firstName" validate:"omitempty,max=100"`
	LastName  *string `json:"lastName" validate:"omitempty,max=100"`
	Email     *string `json:"email" validate:"omitempty,max=255"`
	Phone     *string `json:"phone" validate:"omitempty,max=50"`
	Address   *string `json:"address"`
	City      *string `json:"city" validate:"omitempty,max=100"`
	State     *string `json:"state" validate:"omitempty,max=100"`
	ZipCode   *string `json:"zipCode" validate:"omitempty,max=20"`
	Country   *string `json:"country" validate:"omitempty,max=100"`
	Linkedin  *string `json:"linkedin" validate:"omitempty,max=255"`
	Portfolio *string `json:"portfolio" validate:"omitempty,max=255"`
}

type ProfessionalInfo struct {
	CurrentTitle   *string  `json:"currentTitle" validate:"omitempty,max=255"`
	CurrentCompany *string  `json:"currentCompany" validate:"omitempty,max=255"`
	Summary        *string  `json:"summary"`
	Skills         []string `json:"skills"`
}

type EducationInfo struct {
	Degree         *string `json:"degree" validate:"omitempty,max=255"`
	FieldOfStudy   *string `json:"fieldOfStudy" validate:"omitempty,max=255"`
	University     *string `json:"university" validate:"omitempty,max=255"`
	GraduationYear *string `json:"graduationYear" validate:"omitempty,max=20"`
	GPA            *string `json:"gpa" validate:"omitempty,max=20"`
}

type ExperienceEntry struct {
	Title       *string `json:"title" validate:"omitempty,max=255"`
	Company     *string `json:"company" validate:"omitempty,max=255"`
	StartDate   *string `json:"startDate" validate:"omitempty,max=50"`
	EndDate     *string `json:"endDate" validate:"omitempty,max=50"`
	Current     bool    `json:"current"`
	Description *string `json:"description"`
}

type ReferenceEntry struct {
	Name    *string `json:"name" validate:"omitempty,max=255"`
	Title   *string `json:"title" validate:"omitempty,max=255"`
	Company *string `json:"company" validate:"omitempty,max=255"`
	Email   *string `json:"email" validate:"omitempty,max=255"`
	Phone   *string `json:"phone" validate:"omitempty,max=50"`
}

type Documents struct {
	ResumeURL      *string `json:"resumeUrl"`
	ResumeFileName *string `json:"resumeFileName" validate:"omitempty,max=255"`
	CoverLetter    *string `json:"coverLetter"`
}

type AdditionalInfo struct {
	Availability      *string  `json:"availability" validate:"omitempty,max=100"`
	SalaryExpectation *string  `json:"salaryExpectation" validate:"omitempty,max=100"`
	WorkAuthorization *string  `json:"workAuthorization" validate:"omitempty,max=100"`
	Languages         []string `json:"languages"`
}

// Save actions reported back to the client.
const (
	ActionCreated = "created"
	ActionUpdated = "updated"
)

// SaveResult is what a successful save reports back to the extension.
type SaveResult struct {
	ProfileID    int64        `json:"profile_id"`
	Action       string       `json:"action"`
	DataReceived DataReceived `json:"data_received"`
}

// DataReceived summarizes which payload sections were non-empty. Purely a
// client-side confirmation aid.
type DataReceived struct {
	PersonalInfo     bool    `json:"personal_info"`
	ProfessionalInfo bool    `json:"professional_info"`
	EducationInfo    bool    `json:"education_info"`
	ExperienceCount  int     `json:"experience_count"`
	ReferencesCount  int     `json:"references_count"`
	HasResume        bool    `json:"has_resume"`
	ResumeURL        *string `json:"resume_url"`
	HasCoverLetter   bool    `json:"has_cover_letter"`
}

type ProfileRepository interface {
	// FindByEmail returns the profile whose email exactly equals the given
	// string, or nil when no row matches. Never called with an empty email.
	FindByEmail(ctx context.Context, email string) (*Profile, error)
	// Save persists the aggregate in one transaction. A zero ID inserts and
	// assigns ID/CreatedAt on the way out; a non-zero ID overwrites the row
	// and replaces its child collections.
	Save(ctx context.Context, profile *Profile) error
	EnsureSchema(ctx context.Context) error
}

type ProfileUsecase interface {
	SaveProfile(ctx context.Context, submission *ProfileSubmission) (*SaveResult, error)
}
