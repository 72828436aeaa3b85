package form

import "github.com/dmitrymomot/familyspace/pkg/validator"

// FieldResult is the outcome for one field instance.
type FieldResult struct {
	// Field identifies the instance: the field name, or "name.index" for
	// repeated fields.
	Field  string
	Name   string
	Label  string
	State  State
	Result validator.Result

	summary Message
}

// Message is the text shown next to the field, empty unless invalid.
func (fr FieldResult) Message() Message {
	first, ok := fr.Result.First()
	if !ok {
		return Message{}
	}
	return Message{Key: first.TranslationKey, Args: first.TranslationValues, Text: first.Message}
}

// Outcome aggregates every field of one submission in document order.
type Outcome struct {
	Form   string
	Valid  bool
	Fields []FieldResult
}

func (o Outcome) Result(field string) (validator.Result, bool) {
	for _, fr := range o.Fields {
		if fr.Field == field {
			return fr.Result, true
		}
	}
	return validator.Result{}, false
}

func (o Outcome) Failed() []FieldResult {
	var out []FieldResult
	for _, fr := range o.Fields {
		if fr.State == Invalid {
			out = append(out, fr)
		}
	}
	return out
}

func (o Outcome) FirstInvalid() (FieldResult, bool) {
	for _, fr := range o.Fields {
		if fr.State == Invalid {
			return fr, true
		}
	}
	return FieldResult{}, false
}

// Err returns the failures as validator.ValidationErrors, or nil.
func (o Outcome) Err() error {
	if o.Valid {
		return nil
	}
	failed := o.Failed()
	results := make([]validator.FieldResult, len(failed))
	for i, fr := range failed {
		results[i] = validator.On(fr.Field, fr.Result)
	}
	return validator.Collect(results...)
}

// summaries returns the distinct failure labels in order.
func (o Outcome) summaries() []Message {
	var out []Message
	seen := make(map[string]bool)
	for _, fr := range o.Failed() {
		key := fr.summary.Key + "|" + fr.summary.Text
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, fr.summary)
	}
	return out
}
