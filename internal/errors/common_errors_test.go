package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorType_Constants(t *testing.T) {
	tests := []struct {
		name     string
		errType  ErrorType
		expected string
	}{
		{name: "format mismatch", errType: ErrTypeFormatMismatch, expected: "FORMAT_MISMATCH"},
		{name: "deserialization", errType: ErrTypeDeserialization, expected: "DESERIALIZATION"},
		{name: "missing replicate", errType: ErrTypeMissingReplicate, expected: "MISSING_REPLICATE"},
		{name: "not found", errType: ErrTypeNotFound, expected: "NOT_FOUND"},
		{name: "missing field", errType: ErrTypeMissingField, expected: "MISSING_FIELD"},
		{name: "malformed field", errType: ErrTypeMalformedField, expected: "MALFORMED_FIELD"},
		{name: "validation", errType: ErrTypeValidation, expected: "VALIDATION"},
		{name: "storage", errType: ErrTypeStorage, expected: "STORAGE"},
		{name: "config", errType: ErrTypeConfig, expected: "CONFIG"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, string(tt.errType))
		})
	}
}

func TestAppError_Error(t *testing.T) {
	tests := []struct {
		name        string
		appError    *AppError
		wantMessage string
	}{
		{
			name:        "error without cause",
			appError:    &AppError{Type: ErrTypeNotFound, Message: `table "foo" is not found`},
			wantMessage: `[NOT_FOUND] table "foo" is not found`,
		},
		{
			name: "error with cause",
			appError: &AppError{
				Type:    ErrTypeDeserialization,
				Message: "cannot decode dump",
				Cause:   fmt.Errorf("unexpected opcode 0x00"),
			},
			wantMessage: "[DESERIALIZATION] cannot decode dump: unexpected opcode 0x00",
		},
		{
			name:        "error with empty message",
			appError:    &AppError{Type: ErrTypeValidation},
			wantMessage: "[VALIDATION] ",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantMessage, tt.appError.Error())
		})
	}
}

func TestAppError_Unwrap(t *testing.T) {
	cause := errors.New("read failed")
	err := NewStorageError("cannot read dump", cause)

	assert.Same(t, cause, errors.Unwrap(err))
	assert.ErrorIs(t, err, cause)
	assert.Nil(t, NewAppValidationError("bad name").Unwrap())
}

func TestAppError_WithContext(t *testing.T) {
	t.Run("initializes nil context", func(t *testing.T) {
		appError := &AppError{Type: ErrTypeMissingField, Message: "missing"}

		result := appError.WithContext("field", "Probe[0].ProbeName")

		assert.Same(t, appError, result)
		require.NotNil(t, result.Context)
		assert.Equal(t, "Probe[0].ProbeName", result.Context["field"])
	})

	t.Run("keeps existing context", func(t *testing.T) {
		appError := NewAppError(ErrTypeValidation, "invalid", nil).WithContext("a", 1)

		appError.WithContext("b", 2)

		assert.Equal(t, map[string]interface{}{"a": 1, "b": 2}, appError.Context)
	})
}

func TestIsType(t *testing.T) {
	tests := []struct {
		name string
		err  error
		typ  ErrorType
		want bool
	}{
		{name: "direct match", err: NewNotFoundError("table"), typ: ErrTypeNotFound, want: true},
		{name: "wrapped match", err: fmt.Errorf("lookup: %w", NewMissingFieldError("Filename")), typ: ErrTypeMissingField, want: true},
		{name: "other type", err: NewNotFoundError("table"), typ: ErrTypeMissingField, want: false},
		{name: "plain error", err: errors.New("boom"), typ: ErrTypeNotFound, want: false},
		{name: "nil error", err: nil, typ: ErrTypeNotFound, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsType(tt.err, tt.typ))
		})
	}
}

func TestTypeOf_OutermostWins(t *testing.T) {
	inner := NewNotFoundError("parser table")
	outer := NewAppError(ErrTypeStorage, "cannot open", inner)

	got, ok := TypeOf(outer)

	require.True(t, ok)
	assert.Equal(t, ErrTypeStorage, got)
}

func TestConstructors(t *testing.T) {
	tests := []struct {
		name        string
		err         *AppError
		wantType    ErrorType
		wantMessage string
		wantContext map[string]interface{}
	}{
		{
			name:        "format mismatch",
			err:         NewFormatMismatchError("dump.json", ".pkl"),
			wantType:    ErrTypeFormatMismatch,
			wantMessage: `"dump.json" is not a .pkl file`,
			wantContext: map[string]interface{}{"path": "dump.json", "extension": ".pkl"},
		},
		{
			name:        "missing replicate",
			err:         NewMissingReplicateError("P7", 6),
			wantType:    ErrTypeMissingReplicate,
			wantMessage: `probe "P7" has no parallel measurements`,
			wantContext: map[string]interface{}{"probe_name": "P7", "probe_position": 6},
		},
		{
			name:        "missing field",
			err:         NewMissingFieldError("Columns[0].Column"),
			wantType:    ErrTypeMissingField,
			wantMessage: "field Columns[0].Column is missing",
			wantContext: map[string]interface{}{"field": "Columns[0].Column"},
		},
		{
			name:        "malformed field",
			err:         NewMalformedFieldError("Probe", "list", "text"),
			wantType:    ErrTypeMalformedField,
			wantMessage: "field Probe: want list, got string",
			wantContext: map[string]interface{}{"field": "Probe"},
		},
		{
			name:        "not found",
			err:         NewNotFoundError(`table "spectrum"`),
			wantType:    ErrTypeNotFound,
			wantMessage: `table "spectrum" is not found`,
			wantContext: map[string]interface{}{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantType, tt.err.Type)
			assert.Equal(t, tt.wantMessage, tt.err.Message)
			assert.Equal(t, tt.wantContext, tt.err.Context)
			assert.Nil(t, tt.err.Cause)
		})
	}
}

func TestCauseCarryingConstructors(t *testing.T) {
	cause := errors.New("underlying")

	tests := []struct {
		name     string
		err      *AppError
		wantType ErrorType
	}{
		{name: "deserialization", err: NewDeserializationError("bad pickle", cause), wantType: ErrTypeDeserialization},
		{name: "storage", err: NewStorageError("read failed", cause), wantType: ErrTypeStorage},
		{name: "config", err: NewConfigError("invalid config", cause), wantType: ErrTypeConfig},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantType, tt.err.Type)
			assert.Same(t, cause, tt.err.Cause)
			assert.NotNil(t, tt.err.Context)
		})
	}
}
