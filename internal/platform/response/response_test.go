package response

import (
	"errors"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatValidation(t *testing.T) {
	v := validator.New()

	tests := []struct {
		name  string
		input interface{}
		want  string
	}{
		{"required", struct {
			Name string `validate:"required"`
		}{}, "field name is required"},
		{"email", struct {
			Email string `validate:"email"`
		}{Email: "nope"}, "field email must be a valid email address"},
		{"oneof", struct {
			Kind string `validate:"oneof=a b"`
		}{Kind: "c"}, "field kind must be one of [a b]"},
		{"min", struct {
			Password string `validate:"min=8"`
		}{Password: "short"}, "field password must be at least 8"},
		{"gt", struct {
			Amount int64 `validate:"gt=0"`
		}{Amount: 0}, "field amount must be greater than 0"},
		{"max", struct {
			Phone string `validate:"max=3"`
		}{Phone: "12345"}, "field phone must be at most 3"},
		{"lt", struct {
			Age int `validate:"lt=10"`
		}{Age: 10}, "field age must be less than 10"},
		{"other tag", struct {
			Site string `validate:"url"`
		}{Site: "not a url"}, "field site is invalid"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Struct(tt.input)
			var verrs validator.ValidationErrors
			require.True(t, errors.As(err, &verrs))
			assert.Equal(t, tt.want, FormatValidation(verrs))
		})
	}
}
