package validation

import (
	"fmt"
	"math"

	gferrors "github.com/vnykmshr/rainbow/pkg/common/errors"
)

// ValidatePositive validates that an integer value is positive (> 0).
func ValidatePositive(module, field string, value int) error {
	if value <= 0 {
		return gferrors.NewValidationError(module, field, value, "must be positive").
			WithHint("value must be greater than 0")
	}
	return nil
}

// ValidateNonNegative validates that a numeric value is finite and non-negative (>= 0).
func ValidateNonNegative(module, field string, value float64) error {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return gferrors.NewValidationError(module, field, fmt.Sprint(value), "must be a finite number").
			WithHint("NaN and infinite values are not allowed")
	}
	if value < 0 {
		return gferrors.NewValidationError(module, field, value, "cannot be negative").
			WithHint("use 0 or a positive value")
	}
	return nil
}

// ValidateNonNegativeInt is ValidateNonNegative for counts.
func ValidateNonNegativeInt(module, field string, value int) error {
	if value < 0 {
		return gferrors.NewValidationError(module, field, value, "cannot be negative").
			WithHint("use 0 or a positive value")
	}
	return nil
}

// ValidateNotEmpty validates that a string value is not empty.
func ValidateNotEmpty(module, field string, value string) error {
	if value == "" {
		return gferrors.NewValidationError(module, field, value, "cannot be empty").
			WithHint("provide a non-empty " + field)
	}
	return nil
}

// ValidateBounds validates a half-open interval [lo, hi) with lo < hi whose
// width hi-lo fits in an int.
func ValidateBounds(module, field string, lo, hi int) error {
	if lo >= hi {
		return gferrors.NewValidationError(module, field, fmt.Sprintf("[%d, %d)", lo, hi), "is empty").
			WithHint("lower bound must be less than upper bound")
	}
	if hi-lo <= 0 {
		return gferrors.NewValidationError(module, field, fmt.Sprintf("[%d, %d)", lo, hi), "is too wide").
			WithHint("hi-lo must not exceed math.MaxInt")
	}
	return nil
}
