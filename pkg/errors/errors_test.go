package errors

import (
	"errors"
	"fmt"
	"testing"
)

// TestNew tests creating a new AppError
func TestNew(t *testing.T) {
	err := New(ErrCodeValidation, "validation failed")

	if err == nil {
		t.Fatal("New() returned nil")
	}

	if err.Code != ErrCodeValidation {
		t.Errorf("Code = %s, want %s", err.Code, ErrCodeValidation)
	}

	if err.Message != "validation failed" {
		t.Errorf("Message = %s, want 'validation failed'", err.Message)
	}

	if err.Err != nil {
		t.Error("Err should be nil for New()")
	}
}

// TestWrap tests wrapping an existing error
func TestWrap(t *testing.T) {
	inner := errors.New("disk full")
	err := Wrap(ErrCodeWriteFailed, "failed to write report", inner)

	if err.Code != ErrCodeWriteFailed {
		t.Errorf("Code = %s, want %s", err.Code, ErrCodeWriteFailed)
	}

	if !errors.Is(err, inner) {
		t.Error("wrapped error should match errors.Is")
	}

	if err.Unwrap() != inner {
		t.Error("Unwrap() should return the inner error")
	}
}

// TestErrorString tests the Error() formatting
func TestErrorString(t *testing.T) {
	tests := []struct {
		name string
		err  *AppError
		want string
	}{
		{
			name: "without inner error",
			err:  New(ErrCodeSectionOwned, "section owned"),
			want: "[E2001] section owned",
		},
		{
			name: "with inner error",
			err:  Wrap(ErrCodeWriteFailed, "write failed", errors.New("permission denied")),
			want: "[E4001] write failed: permission denied",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

// TestErrorCategories tests the category predicates used by callers to
// route build-time misuse vs output failures
func TestErrorCategories(t *testing.T) {
	tests := []struct {
		code       ErrorCode
		structural bool
		serial     bool
		persist    bool
	}{
		{ErrCodeSectionOwned, true, false, false},
		{ErrCodeRowWidth, true, false, false},
		{ErrCodeDuplicateColumn, true, false, false},
		{ErrCodeNoColumns, true, false, false},
		{ErrCodeChartSpec, false, true, false},
		{ErrCodeMarkupInvalid, false, true, false},
		{ErrCodeWriteFailed, false, false, true},
		{ErrCodeUnsupportedFormat, false, false, true},
		{ErrCodeInternal, false, false, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.code), func(t *testing.T) {
			err := New(tt.code, "x")
			if got := err.IsStructuralMisuse(); got != tt.structural {
				t.Errorf("IsStructuralMisuse() = %v, want %v", got, tt.structural)
			}
			if got := err.IsSerialization(); got != tt.serial {
				t.Errorf("IsSerialization() = %v, want %v", got, tt.serial)
			}
			if got := err.IsPersistence(); got != tt.persist {
				t.Errorf("IsPersistence() = %v, want %v", got, tt.persist)
			}
		})
	}
}

// TestConstructors tests the convenience constructors
func TestConstructors(t *testing.T) {
	if err := ErrSectionOwned("Results"); err.Code != ErrCodeSectionOwned {
		t.Errorf("ErrSectionOwned code = %s", err.Code)
	}

	err := ErrRowWidth(3, 5)
	if err.Code != ErrCodeRowWidth {
		t.Errorf("ErrRowWidth code = %s", err.Code)
	}
	want := "row has 5 cells, table has 3 columns"
	if err.Message != want {
		t.Errorf("ErrRowWidth message = %q, want %q", err.Message, want)
	}

	if err := ErrDuplicateColumn("id"); err.Code != ErrCodeDuplicateColumn {
		t.Errorf("ErrDuplicateColumn code = %s", err.Code)
	}

	if err := ErrChartSpec("bad spec"); err.Code != ErrCodeChartSpec {
		t.Errorf("ErrChartSpec code = %s", err.Code)
	}

	if err := ErrWriteFailed("/tmp/x.html", errors.New("boom")); err.Code != ErrCodeWriteFailed {
		t.Errorf("ErrWriteFailed code = %s", err.Code)
	}
}

// TestWithDetails tests attaching details
func TestWithDetails(t *testing.T) {
	err := ErrValidation("bad table").WithDetails(map[string]int{"row": 4})

	details, ok := err.Details.(map[string]int)
	if !ok {
		t.Fatalf("Details type = %T, want map[string]int", err.Details)
	}
	if details["row"] != 4 {
		t.Errorf("Details[row] = %d, want 4", details["row"])
	}
}

// TestIsAppError tests AppError detection, including through wrapping
func TestIsAppError(t *testing.T) {
	appErr := New(ErrCodeValidation, "invalid")
	if !IsAppError(appErr) {
		t.Error("IsAppError() = false for AppError")
	}

	wrapped := fmt.Errorf("outer: %w", appErr)
	if !IsAppError(wrapped) {
		t.Error("IsAppError() = false for wrapped AppError")
	}

	if IsAppError(errors.New("plain")) {
		t.Error("IsAppError() = true for plain error")
	}

	got, ok := AsAppError(wrapped)
	if !ok {
		t.Fatal("AsAppError() failed for wrapped AppError")
	}
	if got.Code != ErrCodeValidation {
		t.Errorf("AsAppError().Code = %s, want %s", got.Code, ErrCodeValidation)
	}

	if _, ok := AsAppError(nil); ok {
		t.Error("AsAppError(nil) = true, want false")
	}
}
