package model

// QuestionType defines how a question is answered
type QuestionType string

const (
	QuestionTypeSingle   QuestionType = "single"   // One option value
	QuestionTypeMultiple QuestionType = "multiple" // Ordered set of option values
	QuestionTypeText     QuestionType = "text"     // Free text, no options
)

// Option is one selectable choice of a single/multiple question
type Option struct {
	QuestionID int    `json:"question_id" bson:"questionId"`
	Value      string `json:"value" bson:"value"`
	Label      string `json:"label" bson:"label"`
	LabelEn    string `json:"label_en,omitempty" bson:"labelEn,omitempty"`
	SortOrder  int    `json:"sort_order" bson:"sortOrder"`
}

// Question is one catalog entry. IDs are stable and 1-based; answer sets
// reference them by their decimal string form.
type Question struct {
	ID        int          `json:"id" bson:"_id"`
	Section   string       `json:"section" bson:"section"`
	SectionEn string       `json:"section_en,omitempty" bson:"sectionEn,omitempty"`
	Text      string       `json:"question" bson:"question"`
	TextEn    string       `json:"question_en,omitempty" bson:"questionEn,omitempty"`
	Type      QuestionType `json:"type" bson:"type"`
	Required  bool         `json:"required" bson:"required"`
	SortOrder int          `json:"sort_order" bson:"sortOrder"`
	Options   []Option     `json:"options,omitempty" bson:"-"`

	// VisibleIf gates the question on earlier answers. Nil means always
	// visible. Evaluated by the flow controller on every answer change;
	// never persisted.
	VisibleIf func(AnswerSet) bool `json:"-" bson:"-"`
}

// HasOptions reports whether this question type carries options
func (q Question) HasOptions() bool {
	return q.Type == QuestionTypeSingle || q.Type == QuestionTypeMultiple
}

// IsVisible evaluates the visibility rule against the in-progress answers
func (q Question) IsVisible(answers AnswerSet) bool {
	if q.VisibleIf == nil {
		return true
	}
	return q.VisibleIf(answers)
}

// OptionValue reports whether value is one of the declared option values
func (q Question) OptionValue(value string) bool {
	for _, opt := range q.Options {
		if opt.Value == value {
			return true
		}
	}
	return false
}
