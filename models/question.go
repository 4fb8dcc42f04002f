package models

// QuestionType defines how a question is answered.
type QuestionType string

const (
	// QuestionTypeSingleChoice has exactly one correct option.
	QuestionTypeSingleChoice QuestionType = "SINGLE_CHOICE"
	// QuestionTypeMultipleChoice may have several correct options.
	QuestionTypeMultipleChoice QuestionType = "MULTIPLE_CHOICE"
	// QuestionTypeWritten is answered with free text compared against
	// WrittenAnswer.
	QuestionTypeWritten QuestionType = "WRITTEN"
)

// IsValid reports whether t is one of the supported question types.
func (t QuestionType) IsValid() bool {
	switch t {
	case QuestionTypeSingleChoice, QuestionTypeMultipleChoice, QuestionTypeWritten:
		return true
	}
	return false
}

// Question is a single exam question belonging to a subject.
type Question struct {
	ID            int64            `json:"id"`
	TestSubjectID int64            `json:"testSubjectId"`
	QuestionType  QuestionType     `json:"questionType"`
	QuestionText  string           `json:"questionText"`
	WrittenAnswer string           `json:"writtenAnswer,omitempty"`
	ImageURL      string           `json:"imageUrl,omitempty"`
	YoutubeURL    string           `json:"youtubeUrl,omitempty"`
	Position      int              `json:"position"`
	Options       []QuestionOption `json:"options"`
}

// QuestionOption is one answer option of a choice question.
type QuestionOption struct {
	ID         int64  `json:"id,omitempty"`
	OptionText string `json:"optionText"`
	IsCorrect  bool   `json:"isCorrect"`
	Position   int    `json:"position"`
}
