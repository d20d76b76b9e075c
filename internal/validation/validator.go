// AirBuddy Online - Air Quality Sensor Network Telemetry and Dashboard
// Copyright 2026 Russ M. (russs95)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/russs95/airbuddy-online

// Package validation provides struct validation using go-playground/validator v10.
// It provides a thread-safe singleton validator instance with custom validators
// for telemetry-specific validation rules.
//
// Custom validators:
//   - unixsec: unix timestamp in seconds within a plausible window
//   - deviceid: lowercase slug usable as a device identifier
//   - rangekey: a chart range key (1h, 6h, 24h, 72h, 7d, 30d)
//   - metricname: a known metric column name
//
// Example usage:
//
//	type IngestRequest struct {
//	    RecordedAt int64    `validate:"required,unixsec"`
//	    TempC      *float64 `validate:"omitempty,gte=-90,lte=90"`
//	}
//
//	if verr := validation.ValidateStruct(&req); verr != nil {
//	    apiErr := verr.ToAPIError()
//	    respondError(w, http.StatusBadRequest, apiErr.Code, apiErr.Message, nil)
//	    return
//	}
package validation

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
)

// singleton validator instance
var (
	validate     *validator.Validate
	validateOnce sync.Once
)

// unixsec bounds. Sensor clocks drift but a reading claiming to be from
// before 2020 or more than a day in the future is junk, not drift.
const (
	minPlausibleUnix = 1577836800 // 2020-01-01T00:00:00Z
	maxFutureSkew    = 24 * time.Hour
	deviceIDPattern  = `^[a-z0-9][a-z0-9_-]*$`
)

var deviceIDRegexp = regexp.MustCompile(deviceIDPattern)

// knownRangeKeys mirrors the chart package's range table.
var knownRangeKeys = map[string]bool{
	"1h": true, "6h": true, "24h": true, "72h": true, "7d": true, "30d": true,
}

// knownMetricNames mirrors models.MetricNames; kept local to avoid an
// import cycle with packages that validate models types.
var knownMetricNames = map[string]bool{
	"temp_c": true, "rh": true, "eco2_ppm": true, "tvoc_ppb": true, "pm25_ugm3": true,
}

// ValidationError represents a single field validation error.
type ValidationError struct {
	field   string
	tag     string
	param   string
	value   interface{}
	message string
}

// Field returns the struct field name that failed validation.
func (e *ValidationError) Field() string { return e.field }

// Tag returns the validation tag that failed.
func (e *ValidationError) Tag() string { return e.tag }

// Param returns the parameter for the validation tag (e.g., "90" for "lte=90").
func (e *ValidationError) Param() string { return e.param }

// Value returns the actual value that failed validation.
func (e *ValidationError) Value() interface{} { return e.value }

// Error returns a human-readable error message.
func (e *ValidationError) Error() string { return e.message }

// RequestValidationError represents a collection of validation errors.
type RequestValidationError struct {
	errors []ValidationError
}

// Errors returns the slice of validation errors.
func (ve *RequestValidationError) Errors() []ValidationError {
	return ve.errors
}

// Error implements the error interface, returning a combined message.
func (ve *RequestValidationError) Error() string {
	if len(ve.errors) == 0 {
		return "validation failed"
	}
	var messages []string
	for _, err := range ve.errors {
		messages = append(messages, err.Error())
	}
	return strings.Join(messages, "; ")
}

// APIError mirrors the models.APIError structure to avoid import cycles.
type APIError struct {
	Code    string
	Message string
	Details map[string]interface{}
}

// ToAPIError converts validation errors to the application's APIError format.
func (ve *RequestValidationError) ToAPIError() *APIError {
	if len(ve.errors) == 0 {
		return &APIError{
			Code:    "VALIDATION_ERROR",
			Message: "Validation failed",
		}
	}

	if len(ve.errors) == 1 {
		err := ve.errors[0]
		return &APIError{
			Code:    "VALIDATION_ERROR",
			Message: err.message,
			Details: map[string]interface{}{
				"field": err.field,
				"tag":   err.tag,
				"value": err.value,
			},
		}
	}

	fields := make([]map[string]interface{}, len(ve.errors))
	var messages []string
	for i, err := range ve.errors {
		fields[i] = map[string]interface{}{
			"field":   err.field,
			"tag":     err.tag,
			"message": err.message,
		}
		messages = append(messages, fmt.Sprintf("%s: %s", err.field, err.message))
	}

	return &APIError{
		Code:    "VALIDATION_ERROR",
		Message: strings.Join(messages, "; "),
		Details: map[string]interface{}{
			"fields": fields,
		},
	}
}

// GetValidator returns the singleton validator instance, initialized once
// with the custom telemetry validators. Thread-safe.
func GetValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())

		// Registration only fails for empty tags or nil funcs, which
		// would be a programming error caught by any test run.
		_ = validate.RegisterValidation("unixsec", validateUnixSec)
		_ = validate.RegisterValidation("deviceid", validateDeviceID)
		_ = validate.RegisterValidation("rangekey", validateRangeKey)
		_ = validate.RegisterValidation("metricname", validateMetricName)
	})
	return validate
}

func validateUnixSec(fl validator.FieldLevel) bool {
	ts := fl.Field().Int()
	if ts < minPlausibleUnix {
		return false
	}
	return ts <= time.Now().Add(maxFutureSkew).Unix()
}

func validateDeviceID(fl validator.FieldLevel) bool {
	return deviceIDRegexp.MatchString(fl.Field().String())
}

func validateRangeKey(fl validator.FieldLevel) bool {
	return knownRangeKeys[fl.Field().String()]
}

func validateMetricName(fl validator.FieldLevel) bool {
	return knownMetricNames[fl.Field().String()]
}

// ValidateStruct validates a struct using the singleton validator.
// Returns nil if validation passes, or *RequestValidationError on failure.
func ValidateStruct(s interface{}) *RequestValidationError {
	v := GetValidator()

	err := v.Struct(s)
	if err == nil {
		return nil
	}

	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return &RequestValidationError{
			errors: []ValidationError{
				{
					field:   "unknown",
					tag:     "unknown",
					message: err.Error(),
				},
			},
		}
	}

	fieldErrors := make([]ValidationError, len(validationErrs))
	for i, fieldErr := range validationErrs {
		fieldErrors[i] = ValidationError{
			field:   fieldErr.Field(),
			tag:     fieldErr.Tag(),
			param:   fieldErr.Param(),
			value:   fieldErr.Value(),
			message: translateError(fieldErr),
		}
	}

	return &RequestValidationError{errors: fieldErrors}
}

// errorMessageTemplates maps validation tags to message templates.
var errorMessageTemplates = map[string]string{
	"required":   "%s is required",
	"unixsec":    "%s must be a plausible unix timestamp in seconds",
	"deviceid":   "%s must be a lowercase slug (letters, digits, - and _)",
	"rangekey":   "%s must be one of: 1h, 6h, 24h, 72h, 7d, 30d",
	"metricname": "%s must be a known metric name",
}

// errorMessageWithParam maps validation tags to templates that include param.
var errorMessageWithParam = map[string]string{
	"oneof": "%s must be one of: %s",
	"gte":   "%s must be greater than or equal to %s",
	"lte":   "%s must be less than or equal to %s",
	"gt":    "%s must be greater than %s",
	"lt":    "%s must be less than %s",
	"min":   "%s must be at least %s",
	"max":   "%s must be at most %s",
}

// translateError converts a validator.FieldError to a human-readable message.
func translateError(fe validator.FieldError) string {
	field := fe.Field()
	tag := fe.Tag()
	param := fe.Param()

	if template, ok := errorMessageTemplates[tag]; ok {
		return fmt.Sprintf(template, field)
	}
	if template, ok := errorMessageWithParam[tag]; ok {
		return fmt.Sprintf(template, field, param)
	}
	return fmt.Sprintf("%s failed validation (%s)", field, tag)
}
