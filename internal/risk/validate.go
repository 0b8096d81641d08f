package risk

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

const (
	FieldLikelihood = "likelihood"
	FieldImpact     = "impact"
	FieldSeverity   = "severity"
	FieldFrequency  = "frequency"
)

// Fields lists the rating fields in weight order.
func Fields() []string {
	return []string{FieldLikelihood, FieldImpact, FieldSeverity, FieldFrequency}
}

type Kind int

const (
	NonIntegerInput Kind = iota + 1
	OutOfRange
	MissingField
)

func (k Kind) String() string {
	switch k {
	case NonIntegerInput:
		return "non_integer"
	case OutOfRange:
		return "out_of_range"
	case MissingField:
		return "missing_field"
	default:
		return "unknown"
	}
}

var (
	ErrNonIntegerInput = errors.New("rating is not an integer")
	ErrOutOfRange      = errors.New("rating is out of range")
	ErrMissingField    = errors.New("rating is missing")
)

// ValidationError reports the first rating that failed validation.
// errors.Is matches it against ErrNonIntegerInput, ErrOutOfRange or ErrMissingField.
type ValidationError struct {
	Field string
	Kind  Kind
	Value string
}

func (e *ValidationError) Error() string {
	switch e.Kind {
	case MissingField:
		return fmt.Sprintf("%s: %s", e.Field, ErrMissingField)
	case OutOfRange:
		return fmt.Sprintf("%s: %s [%d, %d]: %s", e.Field, ErrOutOfRange, MinRating, MaxRating, e.Value)
	default:
		return fmt.Sprintf("%s: %s: %q", e.Field, ErrNonIntegerInput, e.Value)
	}
}

func (e *ValidationError) Unwrap() error {
	switch e.Kind {
	case NonIntegerInput:
		return ErrNonIntegerInput
	case OutOfRange:
		return ErrOutOfRange
	case MissingField:
		return ErrMissingField
	}
	return nil
}

// KindOf returns the validation kind carried by err, or 0 when err is not a ValidationError.
func KindOf(err error) Kind {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve.Kind
	}
	return 0
}

// FieldSource yields raw form values. *gin.Context satisfies it.
type FieldSource interface {
	GetPostForm(key string) (string, bool)
}

// Values is a FieldSource backed by a map; absent keys are missing fields.
type Values map[string]string

func (v Values) GetPostForm(key string) (string, bool) {
	s, ok := v[key]
	return s, ok
}

// Validate parses the four ratings. Every field is parsed before any range
// check, so a non-integer is reported ahead of an out-of-range value.
func Validate(src FieldSource) (Ratings, error) {
	fields := Fields()
	parsed := make([]int, len(fields))
	texts := make([]string, len(fields))

	for i, name := range fields {
		raw, ok := src.GetPostForm(name)
		if !ok {
			return Ratings{}, &ValidationError{Field: name, Kind: MissingField}
		}
		texts[i] = strings.TrimSpace(raw)
		n, err := strconv.Atoi(texts[i])
		// an integer too large for int is still an integer; Atoi clamps it,
		// which the range check below rejects
		if err != nil && !errors.Is(err, strconv.ErrRange) {
			return Ratings{}, &ValidationError{Field: name, Kind: NonIntegerInput, Value: raw}
		}
		parsed[i] = n
	}

	for i, n := range parsed {
		if n < MinRating || n > MaxRating {
			return Ratings{}, &ValidationError{Field: fields[i], Kind: OutOfRange, Value: texts[i]}
		}
	}

	return Ratings{
		Likelihood: parsed[0],
		Impact:     parsed[1],
		Severity:   parsed[2],
		Frequency:  parsed[3],
	}, nil
}
