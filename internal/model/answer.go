package model

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
)

// Validation errors surfaced at the submission boundary
var (
	ErrUnknownQuestion = errors.New("answer references unknown question")
	ErrInvalidOption   = errors.New("answer value is not a declared option")
	ErrWrongShape      = errors.New("answer value shape does not match question type")
)

// AnswerValue is the tagged union of submittable values: a single option
// value, an ordered list of option values, or free text. Selection order of
// multiple values is preserved end to end.
type AnswerValue struct {
	multiple bool
	value    string
	values   []string
}

// Single builds a scalar value (single-choice or text answers)
func Single(v string) AnswerValue {
	return AnswerValue{value: v}
}

// Multiple builds an ordered multi-choice value
func Multiple(vs ...string) AnswerValue {
	return AnswerValue{multiple: true, values: vs}
}

// IsMultiple reports whether the value carries a list
func (v AnswerValue) IsMultiple() bool { return v.multiple }

// Value returns the scalar payload; empty for multiple values
func (v AnswerValue) Value() string { return v.value }

// Values returns the list payload in selection order; nil for scalars
func (v AnswerValue) Values() []string { return v.values }

// IsEmpty reports whether the value satisfies no required-answered predicate
func (v AnswerValue) IsEmpty() bool {
	if v.multiple {
		return len(v.values) == 0
	}
	return v.value == ""
}

// MarshalJSON emits scalars as strings and multiples as arrays, matching
// the wire and storage layout
func (v AnswerValue) MarshalJSON() ([]byte, error) {
	if v.multiple {
		return json.Marshal(v.values)
	}
	return json.Marshal(v.value)
}

// UnmarshalJSON accepts a string, an array of strings, or a bare number
// (older clients submitted numeric answers unquoted)
func (v *AnswerValue) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*v = Single(s)
		return nil
	}
	var list []string
	if err := json.Unmarshal(data, &list); err == nil {
		*v = Multiple(list...)
		return nil
	}
	var n float64
	if err := json.Unmarshal(data, &n); err == nil {
		*v = Single(strconv.FormatFloat(n, 'f', -1, 64))
		return nil
	}
	return fmt.Errorf("unsupported answer value %s", data)
}

// AnswerSet maps a question id (decimal string) to its submitted value
type AnswerSet map[string]AnswerValue

// Clone returns an independent copy
func (a AnswerSet) Clone() AnswerSet {
	out := make(AnswerSet, len(a))
	for k, v := range a {
		out[k] = v
	}
	return out
}

// Get looks up the value for a numeric question id
func (a AnswerSet) Get(questionID int) (AnswerValue, bool) {
	v, ok := a[strconv.Itoa(questionID)]
	return v, ok
}

// Set stores the value for a numeric question id
func (a AnswerSet) Set(questionID int, v AnswerValue) {
	a[strconv.Itoa(questionID)] = v
}

// Delete removes the value for a numeric question id
func (a AnswerSet) Delete(questionID int) {
	delete(a, strconv.Itoa(questionID))
}

// ToDocument converts the set to the plain map shape stored in the answers
// document column: strings for scalars, string arrays for multiples
func (a AnswerSet) ToDocument() map[string]interface{} {
	doc := make(map[string]interface{}, len(a))
	for k, v := range a {
		if v.IsMultiple() {
			vals := make([]interface{}, len(v.Values()))
			for i, s := range v.Values() {
				vals[i] = s
			}
			doc[k] = vals
			continue
		}
		doc[k] = v.Value()
	}
	return doc
}

// AnswerSetFromDocument rebuilds an AnswerSet from a stored document. Values
// of unsupported shape make the document malformed; the caller decides
// whether to fall back to the raw payload.
func AnswerSetFromDocument(doc map[string]interface{}) (AnswerSet, error) {
	set := make(AnswerSet, len(doc))
	for k, raw := range doc {
		switch v := raw.(type) {
		case string:
			set[k] = Single(v)
		case float64:
			set[k] = Single(strconv.FormatFloat(v, 'f', -1, 64))
		case int32:
			set[k] = Single(strconv.Itoa(int(v)))
		case int64:
			set[k] = Single(strconv.FormatInt(v, 10))
		case []interface{}:
			vals := make([]string, 0, len(v))
			for _, item := range v {
				s, ok := item.(string)
				if !ok {
					return nil, fmt.Errorf("answer %s: non-string list element %T", k, item)
				}
				vals = append(vals, s)
			}
			set[k] = Multiple(vals...)
		default:
			return nil, fmt.Errorf("answer %s: unsupported stored value %T", k, raw)
		}
	}
	return set, nil
}

// Validate checks every key against the catalog: the id must exist, the
// value shape must match the question type, and choice values must be among
// the declared options. Fails fast with a named error.
func (a AnswerSet) Validate(questions []Question) error {
	byID := make(map[int]Question, len(questions))
	for _, q := range questions {
		byID[q.ID] = q
	}

	for key, value := range a {
		id, err := strconv.Atoi(key)
		if err != nil {
			return fmt.Errorf("%w: key %q", ErrUnknownQuestion, key)
		}
		q, ok := byID[id]
		if !ok {
			return fmt.Errorf("%w: id %d", ErrUnknownQuestion, id)
		}

		switch q.Type {
		case QuestionTypeMultiple:
			if !value.IsMultiple() {
				return fmt.Errorf("%w: question %d expects a list", ErrWrongShape, id)
			}
			for _, v := range value.Values() {
				if !q.OptionValue(v) {
					return fmt.Errorf("%w: question %d value %q", ErrInvalidOption, id, v)
				}
			}
		case QuestionTypeSingle:
			if value.IsMultiple() {
				return fmt.Errorf("%w: question %d expects a single value", ErrWrongShape, id)
			}
			if !q.OptionValue(value.Value()) {
				return fmt.Errorf("%w: question %d value %q", ErrInvalidOption, id, value.Value())
			}
		case QuestionTypeText:
			if value.IsMultiple() {
				return fmt.Errorf("%w: question %d expects text", ErrWrongShape, id)
			}
		}
	}
	return nil
}

// PruneHidden removes answers for questions whose visibility rule no longer
// holds, so cross-question state stays consistent. Returns the ids purged.
func (a AnswerSet) PruneHidden(questions []Question) []int {
	var purged []int
	for _, q := range questions {
		if q.IsVisible(a) {
			continue
		}
		if _, ok := a.Get(q.ID); ok {
			a.Delete(q.ID)
			purged = append(purged, q.ID)
		}
	}
	return purged
}
