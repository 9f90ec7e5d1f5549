package logger

import (
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestNew_Modes(t *testing.T) {
	for _, mode := range []string{"dev", "prod"} {
		l, err := New(mode, "debug")
		if err != nil {
			t.Fatalf("New(%q): %v", mode, err)
		}
		if l.SugaredLogger == nil {
			t.Fatalf("New(%q) returned nil sugared logger", mode)
		}
	}
}

func TestNew_InvalidLevel(t *testing.T) {
	if _, err := New("dev", "loud"); err == nil {
		t.Error("expected error for unknown level")
	}
}

func TestWith_AddsFields(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	l := FromZap(zap.New(core)).With("repo", "CompanyRepository")

	l.Info("loaded company", "id", 3)

	entries := logs.All()
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	fields := entries[0].ContextMap()
	if fields["repo"] != "CompanyRepository" {
		t.Errorf("missing repo field: %v", fields)
	}
	if fields["id"] != int64(3) {
		t.Errorf("missing id field: %v", fields)
	}
}
