package validation

import (
	"math"
	"testing"

	"github.com/vnykmshr/rainbow/pkg/common/errors"
)

func TestValidatePositive(t *testing.T) {
	tests := []struct {
		name      string
		value     int
		wantError bool
	}{
		{"positive value", 10, false},
		{"positive value 1", 1, false},
		{"zero value", 0, true},
		{"negative value", -1, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePositive("test", "count", tt.value)
			checkResult(t, err, tt.wantError)
		})
	}
}

func TestValidateNonNegative(t *testing.T) {
	tests := []struct {
		name      string
		value     float64
		wantError bool
	}{
		{"positive value", 10.5, false},
		{"zero value", 0.0, false},
		{"negative value", -1.5, true},
		{"small negative", -0.001, true},
		{"NaN", math.NaN(), true},
		{"positive infinity", math.Inf(1), true},
		{"negative infinity", math.Inf(-1), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateNonNegative("test", "price", tt.value)
			checkResult(t, err, tt.wantError)
		})
	}
}

func TestValidateNonNegativeInt(t *testing.T) {
	checkResult(t, ValidateNonNegativeInt("test", "quantity", 0), false)
	checkResult(t, ValidateNonNegativeInt("test", "quantity", 3), false)
	checkResult(t, ValidateNonNegativeInt("test", "quantity", -2), true)
}

func TestValidateNotEmpty(t *testing.T) {
	checkResult(t, ValidateNotEmpty("test", "name", "drone"), false)
	checkResult(t, ValidateNotEmpty("test", "name", ""), true)
}

func TestValidateBounds(t *testing.T) {
	tests := []struct {
		name      string
		lo, hi    int
		wantError bool
	}{
		{"normal range", 0, 100, false},
		{"single value", 5, 6, false},
		{"empty range", 3, 3, true},
		{"inverted range", 10, 1, true},
		{"widest valid range", 0, math.MaxInt, false},
		{"width overflows int", math.MinInt, math.MaxInt, true},
		{"width overflows by one", -1, math.MaxInt, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			checkResult(t, ValidateBounds("test", "bounds", tt.lo, tt.hi), tt.wantError)
		})
	}
}

func checkResult(t *testing.T, err error, wantError bool) {
	t.Helper()
	if wantError {
		if err == nil {
			t.Fatal("expected error, got nil")
		}
		if !errors.IsValidationError(err) {
			t.Errorf("expected ValidationError, got %T", err)
		}
		return
	}
	if err != nil {
		t.Errorf("expected no error, got %v", err)
	}
}
