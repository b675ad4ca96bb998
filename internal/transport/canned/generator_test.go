package canned

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/careerlens/careerlens/internal/domain"
)

func TestComplete_KeyedByIntent(t *testing.T) {
	g := New()
	ctx := context.Background()

	extract, err := g.Complete(ctx, domain.GenerationRequest{Intent: domain.IntentExtract})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(extract, "Skills:") || !strings.Contains(extract, "Experience Level:") {
		t.Errorf("extract reply missing structure: %q", extract)
	}

	insights, err := g.Complete(ctx, domain.GenerationRequest{Intent: domain.IntentInsights})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(insights, "Career progression") {
		t.Errorf("insights reply missing content: %q", insights)
	}

	chat, err := g.Complete(ctx, domain.GenerationRequest{Intent: domain.IntentChat})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if chat == extract || chat == insights {
		t.Error("expected distinct replies per intent")
	}
}

func TestComplete_IgnoresPromptContent(t *testing.T) {
	g := New()
	ctx := context.Background()

	a, _ := g.Complete(ctx, domain.GenerationRequest{Intent: domain.IntentChat, Prompt: "first"})
	b, _ := g.Complete(ctx, domain.GenerationRequest{Intent: domain.IntentChat, Prompt: "completely different"})
	if a != b {
		t.Error("canned replies must not depend on prompt content")
	}
}

func TestComplete_UnknownIntent(t *testing.T) {
	g := New()

	_, err := g.Complete(context.Background(), domain.GenerationRequest{Intent: "summarize"})
	if !errors.Is(err, domain.ErrGenerationService) {
		t.Fatalf("expected ErrGenerationService, got %v", err)
	}
}

func TestHealthCheck(t *testing.T) {
	if err := New().HealthCheck(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
