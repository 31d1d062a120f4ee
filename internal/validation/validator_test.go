package validation_test

import (
	"net/http"
	"testing"

	apperrors "github.com/optionshub/mediavault-server/internal/errors"
	"github.com/optionshub/mediavault-server/internal/validation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testRequest struct {
	Username string `json:"username" validate:"required,min=3,max=100"`
	URL      string `json:"url" validate:"omitempty,url"`
	Rating   int    `json:"rating" validate:"omitempty,gte=1,lte=5"`
}

func TestValidator_ValidateSuccess(t *testing.T) {
	v := validation.New()

	err := v.Validate(testRequest{
		Username: "catalog_bot",
		URL:      "https://example.com/app",
		Rating:   4,
	})
	assert.NoError(t, err)
}

func TestValidator_ValidateErrors(t *testing.T) {
	v := validation.New()

	tests := []struct {
		name      string
		req       testRequest
		wantField string
	}{
		{
			name:      "missing required field",
			req:       testRequest{Username: ""},
			wantField: "username",
		},
		{
			name:      "too short",
			req:       testRequest{Username: "ab"},
			wantField: "username",
		},
		{
			name:      "invalid url",
			req:       testRequest{Username: "catalog_bot", URL: "not a url"},
			wantField: "url",
		},
		{
			name:      "rating out of range",
			req:       testRequest{Username: "catalog_bot", Rating: 9},
			wantField: "rating",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(tt.req)
			require.Error(t, err)

			var domainErr *apperrors.Error
			require.ErrorAs(t, err, &domainErr)
			assert.Equal(t, apperrors.CodeValidation, domainErr.Code)
			assert.Equal(t, http.StatusBadRequest, domainErr.HTTPStatus())

			// Details carry per-field messages keyed by JSON name.
			fields, ok := domainErr.Details.(map[string]string)
			require.True(t, ok)
			assert.Contains(t, fields, tt.wantField)
		})
	}
}
