package utils

import (
	"emogo-service/internal/models"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// report json names, not Go field names
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// ValidationError represents a single validation error
type ValidationError struct {
	Field   string `json:"field"`
	Tag     string `json:"tag"`
	Value   string `json:"value,omitempty"`
	Message string `json:"message,omitempty"`
}

// PayloadError carries the field errors of a rejected request body.
type PayloadError struct {
	Details []ValidationError
}

func (e *PayloadError) Error() string {
	parts := make([]string, 0, len(e.Details))
	for _, d := range e.Details {
		parts = append(parts, d.Message)
	}
	return "invalid payload: " + strings.Join(parts, "; ")
}

func (e *PayloadError) Unwrap() error { return ErrInvalidPayload }

// Number accepts a JSON number or a string holding a finite decimal number.
type Number float64

var floatType = reflect.TypeOf(float64(0))

func (n *Number) UnmarshalJSON(data []byte) error {
	var f float64
	if err := json.Unmarshal(data, &f); err == nil {
		*n = Number(f)
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return &json.UnmarshalTypeError{Value: jsonKind(data), Type: floatType}
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsInf(f, 0) || math.IsNaN(f) {
		return &json.UnmarshalTypeError{Value: "string " + strconv.Quote(s), Type: floatType}
	}
	*n = Number(f)
	return nil
}

func jsonKind(data []byte) string {
	switch data[0] {
	case '{':
		return "object"
	case '[':
		return "array"
	case 't', 'f':
		return "bool"
	}
	return "value"
}

// Pointer fields so that a missing key differs from a zero value.
type sentimentBody struct {
	UserID         *string `json:"user_id" validate:"required"`
	SentimentScore *Number `json:"sentiment_score" validate:"required"`
}

type gpsBody struct {
	UserID    *string `json:"user_id" validate:"required"`
	Latitude  *Number `json:"latitude" validate:"required"`
	Longitude *Number `json:"longitude" validate:"required"`
}

// ParseSentiment decodes and validates a sentiment submission.
func ParseSentiment(body []byte) (models.Sentiment, error) {
	var b sentimentBody
	if err := decodeAndValidate(body, &b); err != nil {
		return models.Sentiment{}, err
	}
	return models.Sentiment{UserID: *b.UserID, SentimentScore: float64(*b.SentimentScore)}, nil
}

// ParseGPS decodes and validates a GPS submission.
func ParseGPS(body []byte) (models.GPS, error) {
	var b gpsBody
	if err := decodeAndValidate(body, &b); err != nil {
		return models.GPS{}, err
	}
	return models.GPS{UserID: *b.UserID, Latitude: float64(*b.Latitude), Longitude: float64(*b.Longitude)}, nil
}

func decodeAndValidate(body []byte, dst any) error {
	if err := json.Unmarshal(body, dst); err != nil {
		return &PayloadError{Details: []ValidationError{decodeError(err)}}
	}
	if err := validate.Struct(dst); err != nil {
		return &PayloadError{Details: FormatValidationErrors(err)}
	}
	return nil
}

func decodeError(err error) ValidationError {
	var te *json.UnmarshalTypeError
	if errors.As(err, &te) {
		field := te.Field
		if field == "" {
			field = "body"
		}
		return ValidationError{
			Field:   field,
			Tag:     "type",
			Value:   te.Value,
			Message: fmt.Sprintf("%s must be a %s", field, te.Type.Kind()),
		}
	}
	return ValidationError{Field: "body", Tag: "json", Message: "body must be a valid JSON object"}
}

// RequiredError builds the payload error for a missing request parameter.
func RequiredError(field string) *PayloadError {
	return &PayloadError{Details: []ValidationError{{
		Field:   field,
		Tag:     "required",
		Message: fmt.Sprintf("%s is required", field),
	}}}
}

// FormatValidationErrors converts validator.ValidationErrors into a slice of ValidationError
func FormatValidationErrors(err error) []ValidationError {
	if err == nil {
		return nil
	}

	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		out := make([]ValidationError, len(ve))
		for i, fe := range ve {
			field := fe.Field()
			out[i] = ValidationError{
				Field: field,
				Tag:   fe.Tag(),
			}
			switch fe.Tag() {
			case "required":
				out[i].Message = fmt.Sprintf("%s is required", field)
			default:
				out[i].Message = fmt.Sprintf("validation failed on field '%s' for tag '%s'", field, fe.Tag())
			}
		}
		return out
	}
	return []ValidationError{{Field: "body", Tag: "invalid", Message: err.Error()}}
}
