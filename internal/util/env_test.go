package util

import (
	"testing"
	"time"
)

func TestParseBoolEnv(t *testing.T) {
	tests := []struct {
		name         string
		value        string
		defaultValue bool
		want         bool
	}{
		{"true", "true", false, true},
		{"one", "1", false, true},
		{"yes uppercase", "YES", false, true},
		{"on with spaces", " on ", false, true},
		{"false", "false", true, false},
		{"zero", "0", true, false},
		{"off", "off", true, false},
		{"empty uses default", "", true, true},
		{"invalid uses default", "maybe", true, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.value != "" {
				t.Setenv("TEST_BOOL", tt.value)
			}
			if got := ParseBoolEnv("TEST_BOOL", tt.defaultValue); got != tt.want {
				t.Errorf("ParseBoolEnv(%q, %v) = %v, want %v", tt.value, tt.defaultValue, got, tt.want)
			}
		})
	}
}

func TestParseDurationEnv(t *testing.T) {
	tests := []struct {
		name         string
		value        string
		defaultValue time.Duration
		want         time.Duration
	}{
		{"hours", "6h", time.Minute, 6 * time.Hour},
		{"zero disables", "0s", time.Hour, 0},
		{"empty uses default", "", 6 * time.Hour, 6 * time.Hour},
		{"invalid uses default", "soon", time.Hour, time.Hour},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.value != "" {
				t.Setenv("TEST_DURATION", tt.value)
			}
			if got := ParseDurationEnv("TEST_DURATION", tt.defaultValue); got != tt.want {
				t.Errorf("ParseDurationEnv(%q, %v) = %v, want %v", tt.value, tt.defaultValue, got, tt.want)
			}
		})
	}
}

func TestParseFloatEnv(t *testing.T) {
	tests := []struct {
		name         string
		value        string
		defaultValue float64
		want         float64
	}{
		{"positive", "53.727", 0, 53.727},
		{"negative", "-7.798", 0, -7.798},
		{"empty uses default", "", 1.5, 1.5},
		{"invalid uses default", "west", 2.5, 2.5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.value != "" {
				t.Setenv("TEST_FLOAT", tt.value)
			}
			if got := ParseFloatEnv("TEST_FLOAT", tt.defaultValue); got != tt.want {
				t.Errorf("ParseFloatEnv(%q, %v) = %v, want %v", tt.value, tt.defaultValue, got, tt.want)
			}
		})
	}
}

func TestParseInt64Env(t *testing.T) {
	tests := []struct {
		name         string
		value        string
		defaultValue int64
		want         int64
	}{
		{"chat id", "123456789", 0, 123456789},
		{"negative group id", "-1001234567890", 0, -1001234567890},
		{"empty uses default", "", 7, 7},
		{"invalid uses default", "abc", 7, 7},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.value != "" {
				t.Setenv("TEST_INT64", tt.value)
			}
			if got := ParseInt64Env("TEST_INT64", tt.defaultValue); got != tt.want {
				t.Errorf("ParseInt64Env(%q, %v) = %v, want %v", tt.value, tt.defaultValue, got, tt.want)
			}
		})
	}
}
