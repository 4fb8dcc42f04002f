package validators

import (
	"context"
	"fmt"
	"net/url"
	"regexp"

	"github.com/MKhiriev/go-exam-admin/models"
)

// Field name constants used to restrict validation to a subset of fields.
const (
	// FieldID targets the server-assigned identifier. It is not part of the
	// default set because new resources have none yet.
	FieldID = "id"

	FieldPhoneNumber = "phone_number"
	FieldCode        = "code"
	FieldName        = "name"
	FieldFullName    = "full_name"
	FieldRole        = "role"
	FieldImageURL    = "image_url"

	// FieldSubjectID targets the owning subject of a question.
	FieldSubjectID     = "subject_id"
	FieldQuestionType  = "question_type"
	FieldQuestionText  = "question_text"
	FieldYoutubeURL    = "youtube_url"
	FieldPosition      = "position"
	FieldOptions       = "options"
	FieldWrittenAnswer = "written_answer"

	FieldTitle    = "title"
	FieldDuration = "duration"
	FieldPrice    = "price"
	FieldSubjects = "subjects"

	FieldUserID     = "user_id"
	FieldTemplateID = "template_id"
)

var (
	phoneRe = regexp.MustCompile(`^\+?[0-9]{9,15}$`)
	otpRe   = regexp.MustCompile(`^[0-9]{4,8}$`)
)

// ExamValidator implements [Validator] for every DTO the mock backend
// accepts: subjects, questions, templates, users, access requests and the
// auth requests.
type ExamValidator struct{}

// NewExamValidator returns an [ExamValidator] as a [Validator].
func NewExamValidator() Validator {
	return &ExamValidator{}
}

// Validate dispatches on the dynamic type of obj. Both value and pointer
// forms are accepted. Returns ErrUnsupportedType for anything else.
func (v *ExamValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.Subject:
		return v.validateSubject(value, fields...)
	case *models.Subject:
		return v.validateSubject(*value, fields...)

	case models.Question:
		return v.validateQuestion(value, fields...)
	case *models.Question:
		return v.validateQuestion(*value, fields...)

	case models.TestTemplate:
		return v.validateTemplate(value, fields...)
	case *models.TestTemplate:
		return v.validateTemplate(*value, fields...)

	case models.UserProfile:
		return v.validateUser(value, fields...)
	case *models.UserProfile:
		return v.validateUser(*value, fields...)

	case models.AccessRequest:
		return v.validateAccess(value, fields...)
	case *models.AccessRequest:
		return v.validateAccess(*value, fields...)

	case models.LoginRequest:
		return v.validateLogin(value.PhoneNumber, "", fields...)
	case *models.LoginRequest:
		return v.validateLogin(value.PhoneNumber, "", fields...)

	case models.VerifyRequest:
		return v.validateLogin(value.PhoneNumber, value.Code, orDefault(fields, FieldPhoneNumber, FieldCode)...)
	case *models.VerifyRequest:
		return v.validateLogin(value.PhoneNumber, value.Code, orDefault(fields, FieldPhoneNumber, FieldCode)...)

	default:
		return ErrUnsupportedType
	}
}

func orDefault(fields []string, defaults ...string) []string {
	if len(fields) == 0 {
		return defaults
	}
	return fields
}

func (v *ExamValidator) validateSubject(s models.Subject, fields ...string) error {
	for _, f := range orDefault(fields, FieldName, FieldImageURL) {
		switch f {
		case FieldID:
			if s.ID <= 0 {
				return ErrInvalidID
			}
		case FieldName:
			if s.Name == "" {
				return ErrEmptyName
			}
		case FieldImageURL:
			if !isOptionalURL(s.ImageURL) {
				return fmt.Errorf("%w: image url", ErrInvalidURL)
			}
		default:
			return ErrUnknownField
		}
	}
	return nil
}

// validateQuestion checks a question. The options rule depends on the type:
// single choice needs exactly one correct option, multiple choice at least
// one, written questions carry no options and need a written answer.
func (v *ExamValidator) validateQuestion(q models.Question, fields ...string) error {
	defaults := []string{
		FieldSubjectID, FieldQuestionType, FieldQuestionText, FieldImageURL,
		FieldYoutubeURL, FieldPosition, FieldOptions, FieldWrittenAnswer,
	}

	for _, f := range orDefault(fields, defaults...) {
		switch f {
		case FieldID:
			if q.ID <= 0 {
				return ErrInvalidID
			}
		case FieldSubjectID:
			if q.TestSubjectID <= 0 {
				return fmt.Errorf("%w: subject", ErrInvalidID)
			}
		case FieldQuestionType:
			if !q.QuestionType.IsValid() {
				return ErrInvalidQuestionType
			}
		case FieldQuestionText:
			if q.QuestionText == "" {
				return ErrEmptyQuestionText
			}
		case FieldImageURL:
			if !isOptionalURL(q.ImageURL) {
				return fmt.Errorf("%w: image url", ErrInvalidURL)
			}
		case FieldYoutubeURL:
			if !isOptionalURL(q.YoutubeURL) {
				return fmt.Errorf("%w: youtube url", ErrInvalidURL)
			}
		case FieldPosition:
			if q.Position < 0 {
				return ErrInvalidPosition
			}
		case FieldOptions:
			if err := validateOptions(q); err != nil {
				return err
			}
		case FieldWrittenAnswer:
			if q.QuestionType == models.QuestionTypeWritten && q.WrittenAnswer == "" {
				return ErrEmptyWrittenAnswer
			}
		default:
			return ErrUnknownField
		}
	}
	return nil
}

func validateOptions(q models.Question) error {
	if q.QuestionType == models.QuestionTypeWritten {
		if len(q.Options) != 0 {
			return fmt.Errorf("%w: written question has options", ErrInvalidOptions)
		}
		return nil
	}

	if len(q.Options) < 2 {
		return fmt.Errorf("%w: at least two options required", ErrInvalidOptions)
	}

	correct := 0
	for i, o := range q.Options {
		if o.OptionText == "" {
			return fmt.Errorf("%w: option %d has no text", ErrInvalidOptions, i)
		}
		if o.Position < 0 {
			return ErrInvalidPosition
		}
		if o.IsCorrect {
			correct++
		}
	}

	switch {
	case correct == 0:
		return fmt.Errorf("%w: no correct option", ErrInvalidOptions)
	case q.QuestionType == models.QuestionTypeSingleChoice && correct > 1:
		return fmt.Errorf("%w: single choice question has %d correct options", ErrInvalidOptions, correct)
	}
	return nil
}

func (v *ExamValidator) validateTemplate(t models.TestTemplate, fields ...string) error {
	for _, f := range orDefault(fields, FieldTitle, FieldDuration, FieldPrice, FieldSubjects) {
		switch f {
		case FieldID:
			if t.ID <= 0 {
				return ErrInvalidID
			}
		case FieldTitle:
			if t.Title == "" {
				return ErrEmptyTitle
			}
		case FieldDuration:
			if t.Duration < 0 {
				return ErrInvalidDuration
			}
		case FieldPrice:
			if t.Price < 0 {
				return ErrInvalidPrice
			}
		case FieldSubjects:
			if err := validateTemplateSubjects(t.Subjects); err != nil {
				return err
			}
		default:
			return ErrUnknownField
		}
	}
	return nil
}

func validateTemplateSubjects(subjects []models.TemplateSubject) error {
	seen := make(map[int64]struct{}, len(subjects))
	main := 0

	for _, s := range subjects {
		if s.Subject.ID <= 0 {
			return fmt.Errorf("%w: subject", ErrInvalidID)
		}
		if _, dup := seen[s.Subject.ID]; dup {
			return ErrDuplicateSubject
		}
		seen[s.Subject.ID] = struct{}{}

		switch s.Role {
		case models.SubjectRoleMain:
			main++
		case models.SubjectRoleAdditional:
		default:
			return fmt.Errorf("%w: %q", ErrInvalidRole, s.Role)
		}
	}

	if main != 1 {
		return ErrInvalidSubjects
	}
	return nil
}

func (v *ExamValidator) validateUser(u models.UserProfile, fields ...string) error {
	for _, f := range orDefault(fields, FieldFullName, FieldPhoneNumber, FieldRole) {
		switch f {
		case FieldID:
			if u.ID <= 0 {
				return ErrInvalidID
			}
		case FieldFullName:
			if u.FullName == "" {
				return ErrEmptyFullName
			}
		case FieldPhoneNumber:
			if !phoneRe.MatchString(u.PhoneNumber) {
				return ErrInvalidPhoneNumber
			}
		case FieldRole:
			switch u.Role {
			case "", models.RoleAdmin, models.RoleStudent:
			default:
				return fmt.Errorf("%w: %q", ErrInvalidRole, u.Role)
			}
		default:
			return ErrUnknownField
		}
	}
	return nil
}

func (v *ExamValidator) validateAccess(r models.AccessRequest, fields ...string) error {
	for _, f := range orDefault(fields, FieldUserID, FieldTemplateID) {
		switch f {
		case FieldUserID:
			if r.UserID <= 0 {
				return fmt.Errorf("%w: user", ErrInvalidID)
			}
		case FieldTemplateID:
			if r.TemplateID <= 0 {
				return fmt.Errorf("%w: template", ErrInvalidID)
			}
		default:
			return ErrUnknownField
		}
	}
	return nil
}

func (v *ExamValidator) validateLogin(phone, code string, fields ...string) error {
	for _, f := range orDefault(fields, FieldPhoneNumber) {
		switch f {
		case FieldPhoneNumber:
			if !phoneRe.MatchString(phone) {
				return ErrInvalidPhoneNumber
			}
		case FieldCode:
			if !otpRe.MatchString(code) {
				return ErrInvalidOTPCode
			}
		default:
			return ErrUnknownField
		}
	}
	return nil
}

// isOptionalURL accepts the empty string, absolute http(s) URLs and
// server-relative paths such as "/files/x.png" returned by the upload
// endpoint.
func isOptionalURL(raw string) bool {
	if raw == "" {
		return true
	}

	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	if u.Scheme == "" {
		return u.Host == "" && len(u.Path) > 0 && u.Path[0] == '/'
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
