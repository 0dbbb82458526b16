package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestErrors_Existence tests that all error variables exist and are not nil
func TestErrors_Existence(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{"ErrValidation", ErrValidation},
		{"ErrParse", ErrParse},
		{"ErrPersistence", ErrPersistence},
		{"ErrStorage", ErrStorage},
		{"ErrOrganizationNotFound", ErrOrganizationNotFound},
		{"ErrInvalidFileType", ErrInvalidFileType},
		{"ErrEmptyFile", ErrEmptyFile},
		{"ErrFileTooLarge", ErrFileTooLarge},
		{"ErrEmptyContent", ErrEmptyContent},
		{"ErrDocumentExists", ErrDocumentExists},
		{"ErrNotFound", ErrNotFound},
		{"ErrInvalidInput", ErrInvalidInput},
		{"ErrChunkConfig", ErrChunkConfig},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotNil(t, tt.err)
			assert.NotEmpty(t, tt.err.Error())
		})
	}
}

// TestValidationErrors_MatchClass tests that specific failures match their class
func TestValidationErrors_MatchClass(t *testing.T) {
	specific := []error{
		ErrOrganizationNotFound,
		ErrInvalidFileType,
		ErrEmptyFile,
		ErrFileTooLarge,
		ErrEmptyContent,
		ErrDocumentExists,
	}

	for _, err := range specific {
		assert.True(t, errors.Is(err, ErrValidation), "%v should match ErrValidation", err)
		assert.False(t, errors.Is(err, ErrParse))
		assert.False(t, errors.Is(err, ErrPersistence))
		assert.False(t, errors.Is(err, ErrStorage))
	}
}

// TestErrorClasses_Distinct tests that the four classes never match each other
func TestErrorClasses_Distinct(t *testing.T) {
	classes := []error{ErrValidation, ErrParse, ErrPersistence, ErrStorage}

	for i, a := range classes {
		for j, b := range classes {
			if i == j {
				assert.True(t, errors.Is(a, b))
			} else {
				assert.False(t, errors.Is(a, b))
			}
		}
	}
}

// TestErrors_SurviveWrapping tests class matching through fmt.Errorf wrapping
func TestErrors_SurviveWrapping(t *testing.T) {
	wrapped := fmt.Errorf("ingesting report.pdf: %w", ErrDocumentExists)

	assert.True(t, errors.Is(wrapped, ErrDocumentExists))
	assert.True(t, errors.Is(wrapped, ErrValidation))
	assert.False(t, errors.Is(wrapped, ErrPersistence))
}
