package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		err        error
		kind       string
		validation bool
	}{
		{"nil", nil, "", false},
		{"missing file", ErrMissingFile, KindMissingFile, true},
		{"empty filename", ErrEmptyFilename, KindEmptyFilename, true},
		{"too large wrapped", fmt.Errorf("%w: 11 bytes", ErrImageTooLarge), KindImageTooLarge, true},
		{"no formula", ErrNoFormulaFound, KindNoFormulaFound, true},
		{"collaborator", fmt.Errorf("%w: gemini: %w", ErrCollaborator, errors.New("boom")), KindInternal, false},
		{"unknown", errors.New("boom"), KindInternal, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.kind, KindOf(tt.err))
			assert.Equal(t, tt.validation, IsValidation(tt.err))
		})
	}
}
