package validationx

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPasswordFormat(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		password string
		wantErr  bool
	}{
		{name: "valid", password: "Sup3r$ecret", wantErr: false},
		{name: "too short", password: "Ab1$", wantErr: true},
		{name: "no uppercase", password: "sup3r$ecret", wantErr: true},
		{name: "no lowercase", password: "SUP3R$ECRET", wantErr: true},
		{name: "no digit", password: "Super$ecret", wantErr: true},
		{name: "no special", password: "Sup3rSecret", wantErr: true},
		{name: "disallowed character", password: "Sup3r$ecret ", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := PasswordFormat.Validate(tt.password)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidPasswordFormat)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestPasswordFormat_NonString(t *testing.T) {
	t.Parallel()

	assert.Error(t, PasswordFormat.Validate(12345678))
}

func TestIsPersonName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		value   string
		wantErr bool
	}{
		{name: "plain", value: "Astrid", wantErr: false},
		{name: "hyphenated", value: "Anna-Karin", wantErr: false},
		{name: "apostrophe", value: "O'Brien", wantErr: false},
		{name: "accented", value: "Åsa Lindqvist", wantErr: false},
		{name: "empty passes through", value: "", wantErr: false},
		{name: "digits rejected", value: "Astrid99", wantErr: true},
		{name: "symbols rejected", value: "Astrid<script>", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := IsPersonName.Validate(tt.value)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestIsPhoneNumber(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		value   string
		wantErr bool
	}{
		{name: "international", value: "+46701234567", wantErr: false},
		{name: "with separators", value: "+46 70 123 4567", wantErr: false},
		{name: "national", value: "0701234567", wantErr: false},
		{name: "empty passes through", value: "", wantErr: false},
		{name: "letters rejected", value: "phone", wantErr: true},
		{name: "too short", value: "+461", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := IsPhoneNumber.Validate(tt.value)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestIsPostalCode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		value   string
		wantErr bool
	}{
		{name: "numeric", value: "11455", wantErr: false},
		{name: "with space", value: "114 55", wantErr: false},
		{name: "alphanumeric", value: "SW1A 1AA", wantErr: false},
		{name: "empty passes through", value: "", wantErr: false},
		{name: "too short", value: "12", wantErr: true},
		{name: "punctuation rejected", value: "114@55", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := IsPostalCode.Validate(tt.value)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
