package config

import (
	"strings"
	"testing"
)

func TestApplyDefaults(t *testing.T) {
	cfg := &Config{}
	cfg.ApplyDefaults()

	if cfg.APIBaseURL != "http://localhost:8080" {
		t.Fatalf("unexpected API base: %s", cfg.APIBaseURL)
	}
	if cfg.UploadBaseURL != cfg.APIBaseURL {
		t.Fatalf("uploads base should default to API base, got %s", cfg.UploadBaseURL)
	}
	if cfg.TokenFile == "" || cfg.SessionFile == "" {
		t.Fatalf("state paths not defaulted: %q %q", cfg.TokenFile, cfg.SessionFile)
	}
}

func TestApplyDefaults_InvalidURLFallsBack(t *testing.T) {
	cfg := &Config{APIBaseURL: "not a url"}
	cfg.ApplyDefaults()
	if cfg.APIBaseURL != "http://localhost:8080" {
		t.Fatalf("invalid base URL should fall back, got %s", cfg.APIBaseURL)
	}
}

func TestApplyDefaults_TrimsTrailingSlash(t *testing.T) {
	cfg := &Config{APIBaseURL: "https://api.example.uz/"}
	cfg.ApplyDefaults()
	if strings.HasSuffix(cfg.APIBaseURL, "/") {
		t.Fatalf("trailing slash kept: %s", cfg.APIBaseURL)
	}
}

func TestUploadURL(t *testing.T) {
	cfg := &Config{APIBaseURL: "https://api.example.uz", UploadBaseURL: "https://cdn.example.uz"}
	cfg.ApplyDefaults()

	if got := cfg.UploadURL("uploads/a.png"); got != "https://cdn.example.uz/uploads/a.png" {
		t.Fatalf("relative path: %s", got)
	}
	if got := cfg.UploadURL("/uploads/a.png"); got != "https://cdn.example.uz/uploads/a.png" {
		t.Fatalf("leading slash: %s", got)
	}
	if got := cfg.UploadURL("https://elsewhere.uz/a.png"); got != "https://elsewhere.uz/a.png" {
		t.Fatalf("absolute URL should pass through: %s", got)
	}
	if got := cfg.UploadURL(""); got != "" {
		t.Fatalf("empty path: %q", got)
	}
}
