package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidatePassword(t *testing.T) {
	tests := []struct {
		name     string
		password string
		wantErr  bool
	}{
		{"valid password", "CorrectHorse42!", false},
		{"too short", "Ab1!", true},
		{"too long", string(make([]byte, 129)), true},
		{"no uppercase", "correcthorse42!", true},
		{"no lowercase", "CORRECTHORSE42!", true},
		{"no digit", "CorrectHorseBattery!", true},
		{"no special character", "CorrectHorse42s", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePassword(tt.password)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateUsername(t *testing.T) {
	tests := []struct {
		name     string
		username string
		wantErr  bool
	}{
		{"valid username", "photo_fan-99", false},
		{"too short", "ab", true},
		{"too long", "abcdefghijklmnopqrstuvwxyz01234", true},
		{"invalid characters", "photo fan", true},
		{"leading underscore", "_photofan", true},
		{"trailing hyphen", "photofan-", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateUsername(tt.username)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateEmail(t *testing.T) {
	assert.NoError(t, ValidateEmail("ada@example.com"))
	assert.Error(t, ValidateEmail("not-an-email"))
	assert.Error(t, ValidateEmail("missing@tld"))
}
