package middleware

import "testing"

func TestValidateUsername(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{"valid", "saud_dev", "saud_dev", false},
		{"uppercase normalized", "SaudDev", "sauddev", false},
		{"trims whitespace", "  cinephile  ", "cinephile", false},
		{"empty", "", "", true},
		{"too short", "ab", "", true},
		{"exactly 3", "abc", "abc", false},
		{"too long", "a23456789012345678901", "", true},
		{"exactly 20", "a2345678901234567890", "a2345678901234567890", false},
		{"spaces inside", "bad name", "", true},
		{"sql injection", "a'; DROP--", "", true},
		{"unicode", "café", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, errMsg := ValidateUsername(tt.input)
			if tt.wantErr && errMsg == "" {
				t.Errorf("expected error, got none")
			}
			if !tt.wantErr && errMsg != "" {
				t.Errorf("unexpected error: %s", errMsg)
			}
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestValidateEmail(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{"valid", "saud@example.com", "saud@example.com", false},
		{"uppercase normalized", "Saud@Example.COM", "saud@example.com", false},
		{"trims whitespace", "  a@b.co  ", "a@b.co", false},
		{"empty", "", "", true},
		{"no at", "saudexample.com", "", true},
		{"no domain dot", "saud@example", "", true},
		{"embedded space", "sa ud@example.com", "", true},
		{"double at", "a@b@c.com", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, errMsg := ValidateEmail(tt.input)
			if tt.wantErr && errMsg == "" {
				t.Errorf("expected error, got none")
			}
			if !tt.wantErr && errMsg != "" {
				t.Errorf("unexpected error: %s", errMsg)
			}
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestValidatePassword(t *testing.T) {
	if errMsg := ValidatePassword("12345"); errMsg == "" {
		t.Error("5 chars should be rejected")
	}
	if errMsg := ValidatePassword("123456"); errMsg != "" {
		t.Errorf("6 chars should pass, got %s", errMsg)
	}
}

func TestValidateTmdbID(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    int
		wantErr bool
	}{
		{"valid", "550", 550, false},
		{"trims whitespace", " 27205 ", 27205, false},
		{"zero", "0", 0, true},
		{"negative", "-5", 0, true},
		{"empty", "", 0, true},
		{"not a number", "fight-club", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, errMsg := ValidateTmdbID(tt.input)
			if tt.wantErr && errMsg == "" {
				t.Errorf("expected error, got none")
			}
			if !tt.wantErr && errMsg != "" {
				t.Errorf("unexpected error: %s", errMsg)
			}
			if got != tt.want {
				t.Errorf("got %d, want %d", got, tt.want)
			}
		})
	}
}

func TestValidateRating(t *testing.T) {
	for _, bad := range []float64{-0.5, 5.5, 100} {
		if errMsg := ValidateRating(bad); errMsg == "" {
			t.Errorf("rating %v should be rejected", bad)
		}
	}
	for _, ok := range []float64{0, 0.5, 3.5, 5} {
		if errMsg := ValidateRating(ok); errMsg != "" {
			t.Errorf("rating %v should pass, got %s", ok, errMsg)
		}
	}
}
