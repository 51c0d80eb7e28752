package i18n

import (
	"context"
	"testing"
)

func initLang(t *testing.T, lang string) context.Context {
	t.Helper()
	if err := Init(lang); err != nil {
		t.Fatalf("Init(%q): %v", lang, err)
	}
	loc := NewLocalizer(lang)
	return WithLocalizer(context.Background(), loc)
}

func TestTranslateEnglish(t *testing.T) {
	ctx := initLang(t, "en")

	got := T(ctx, "AppTitle")
	if got != "PersonaLearn" {
		t.Errorf("T(AppTitle) = %q, want 'PersonaLearn'", got)
	}

	got = T(ctx, "error.flashcards")
	if got != "Failed to generate flashcards." {
		t.Errorf("T(error.flashcards) = %q", got)
	}
}

func TestTranslateHindi(t *testing.T) {
	ctx := initLang(t, "hi")

	got := T(ctx, "error.chat")
	if got != "चैट सेवा उपलब्ध नहीं है।" {
		t.Errorf("T(error.chat) = %q", got)
	}
}

func TestMissingKeyFallsBackToID(t *testing.T) {
	ctx := initLang(t, "en")

	got := T(ctx, "NonExistentKey")
	if got != "NonExistentKey" {
		t.Errorf("T(NonExistentKey) = %q, want 'NonExistentKey'", got)
	}
}

func TestNoLocalizerInContext(t *testing.T) {
	if err := Init("en"); err != nil {
		t.Fatalf("Init: %v", err)
	}
	got := T(context.Background(), "error.internal")
	if got != "Something went wrong. Please try again." {
		t.Errorf("T without localizer = %q", got)
	}
}
