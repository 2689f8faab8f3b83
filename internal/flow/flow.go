// Package flow implements the respondent-facing state machine: one question
// at a time over the visible subset of the catalog, with required-answer
// gating, conditional visibility, and a single terminal submit.
package flow

import (
	"context"
	"errors"
	"fmt"

	"github.com/andy00614/sury-questions/internal/model"
)

// State of one respondent session
type State int

const (
	StateAnswering State = iota // at some visible question index
	StateSubmitting
	StateSubmitted
)

var (
	ErrAnswerRequired   = errors.New("current question requires an answer")
	ErrIncomplete       = errors.New("a visible required question is unanswered")
	ErrAlreadySubmitted = errors.New("survey already submitted")
	ErrNoQuestions      = errors.New("no questions to walk")
)

// Saver persists the finished answer set. Implemented by the survey service.
type Saver interface {
	SaveResponse(ctx context.Context, answers model.AnswerSet, meta model.SubmissionMeta) (string, error)
}

// Flow walks one respondent through the questionnaire. Single-threaded by
// contract: one session, driven by user interaction events.
type Flow struct {
	questions []model.Question
	answers   model.AnswerSet
	index     int
	state     State
	saver     Saver
	meta      model.SubmissionMeta
}

// New builds a session over the catalog in display order
func New(questions []model.Question, saver Saver, meta model.SubmissionMeta) (*Flow, error) {
	if len(questions) == 0 {
		return nil, ErrNoQuestions
	}
	return &Flow{
		questions: questions,
		answers:   model.AnswerSet{},
		saver:     saver,
		meta:      meta,
	}, nil
}

// Visible recomputes the questions currently relevant to this respondent.
// Re-evaluated on every answer change: an earlier answer can change later
// visibility.
func (f *Flow) Visible() []model.Question {
	visible := make([]model.Question, 0, len(f.questions))
	for _, q := range f.questions {
		if q.IsVisible(f.answers) {
			visible = append(visible, q)
		}
	}
	return visible
}

// Current returns the question the respondent is at
func (f *Flow) Current() model.Question {
	return f.Visible()[f.index]
}

// Index returns the current position within the visible subset
func (f *Flow) Index() int { return f.index }

// State returns the session state
func (f *Flow) State() State { return f.state }

// Answers returns a copy of the in-progress answer set
func (f *Flow) Answers() model.AnswerSet { return f.answers.Clone() }

// Answer records a value for a question, purges answers whose visibility
// rule no longer holds, and re-clamps the index if the visible subset
// shrank under it.
func (f *Flow) Answer(questionID int, value model.AnswerValue) error {
	if f.state == StateSubmitted {
		return ErrAlreadySubmitted
	}
	f.answers.Set(questionID, value)
	f.answers.PruneHidden(f.questions)
	f.clamp()
	return nil
}

// ClearAnswer removes a recorded value
func (f *Flow) ClearAnswer(questionID int) {
	f.answers.Delete(questionID)
	f.answers.PruneHidden(f.questions)
	f.clamp()
}

func (f *Flow) clamp() {
	if last := len(f.Visible()) - 1; f.index > last {
		f.index = last
	}
}

// answered evaluates the required-answered predicate for one question
func (f *Flow) answered(q model.Question) bool {
	if !q.Required {
		return true
	}
	v, ok := f.answers.Get(q.ID)
	return ok && !v.IsEmpty()
}

// CanAdvance reports whether the current question lets the respondent move on
func (f *Flow) CanAdvance() bool {
	return f.answered(f.Current())
}

// Next moves to the following visible question
func (f *Flow) Next() error {
	if f.state == StateSubmitted {
		return ErrAlreadySubmitted
	}
	if !f.CanAdvance() {
		return ErrAnswerRequired
	}
	if f.index < len(f.Visible())-1 {
		f.index++
	}
	return nil
}

// Previous moves back one visible question; always permitted above zero
func (f *Flow) Previous() {
	if f.index > 0 {
		f.index--
	}
}

// AtLast reports whether the respondent is on the final visible question
func (f *Flow) AtLast() bool {
	return f.index == len(f.Visible())-1
}

// Submit checks every visible required question at once, then hands the
// answer set to the store. On store failure the session reverts to the last
// question with a retryable error; answers are never dropped.
func (f *Flow) Submit(ctx context.Context) (string, error) {
	if f.state == StateSubmitted {
		return "", ErrAlreadySubmitted
	}
	for _, q := range f.Visible() {
		if !f.answered(q) {
			return "", fmt.Errorf("%w: question %d", ErrIncomplete, q.ID)
		}
	}

	f.state = StateSubmitting
	id, err := f.saver.SaveResponse(ctx, f.answers.Clone(), f.meta)
	if err != nil {
		f.state = StateAnswering
		f.index = len(f.Visible()) - 1
		return "", fmt.Errorf("submit failed, please retry: %w", err)
	}

	f.state = StateSubmitted
	return id, nil
}
