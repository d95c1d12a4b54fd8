package session

import (
	"context"
	"errors"
	"strings"
	"testing"

	"newsie/internal/ai"
	"newsie/internal/model"
)

type stubGen struct {
	out   string
	err   error
	calls int
}

func (g *stubGen) Generate(_ context.Context, _, _ string) (string, error) {
	g.calls++
	return g.out, g.err
}

func defaultBrand() model.BrandConfig {
	return model.BrandConfig{
		OrgName:      "Community Hero PA",
		PrimaryColor: "#2C3E50",
		AccentColor:  "#F7C548",
		TextColor:    "#2C3E50",
		MutedColor:   "#7C7C7C",
		SectionNames: [model.NumSections]string{"Health", "Wealth", "Civic Engagement"},
	}
}

func validInput() model.FormInput {
	return model.FormInput{
		Theme:   "Spring drive",
		Notes:   "• excited",
		CTAText: "Donate",
		CTALink: "https://x.org/give",
	}
}

const goodResponse = "SUBJECT_LINE_1: Spring Is Here\nOPENING_HOOK: Spring means new beginnings.\nCTA_BUTTON: Give Today\n"

func newTestController(gen *stubGen) *Controller {
	return NewController(gen, nil, NewMemoryStore(), defaultBrand(), "")
}

func TestCreateStartsCollecting(t *testing.T) {
	c := newTestController(&stubGen{})
	s, err := c.Create(context.Background())
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if s.Phase != PhaseCollecting {
		t.Errorf("phase = %s, want collecting", s.Phase)
	}
	if s.Brand.OrgName != "Community Hero PA" {
		t.Errorf("brand not seeded from defaults: %+v", s.Brand)
	}
	if s.ID == "" {
		t.Error("expected a non-empty session ID")
	}
}

func TestGenerateTransitionsToReviewing(t *testing.T) {
	gen := &stubGen{out: goodResponse}
	c := newTestController(gen)
	s, _ := c.Create(context.Background())

	s, err := c.Generate(context.Background(), s.ID, "sk-test", validInput(), defaultBrand())
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if s.Phase != PhaseReviewing {
		t.Errorf("phase = %s, want reviewing", s.Phase)
	}
	if s.Fields[model.SubjectLine1] != "Spring Is Here" {
		t.Errorf("fields not parsed: %+v", s.Fields)
	}
	if gen.calls != 1 {
		t.Errorf("generator called %d times, want 1", gen.calls)
	}
}

func TestGenerateValidation(t *testing.T) {
	cases := []struct {
		name  string
		in    model.FormInput
		brand model.BrandConfig
		key   string
		field string
	}{
		{"empty theme", model.FormInput{}, defaultBrand(), "sk-test", "theme"},
		{"empty org", validInput(), model.BrandConfig{}, "sk-test", "org_name"},
		{"empty key", validInput(), defaultBrand(), "", "api_key"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			gen := &stubGen{out: goodResponse}
			c := newTestController(gen)
			s, _ := c.Create(context.Background())
			_, err := c.Generate(context.Background(), s.ID, tc.key, tc.in, tc.brand)
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
			if verr.Field != tc.field {
				t.Errorf("field = %s, want %s", verr.Field, tc.field)
			}
			if gen.calls != 0 {
				t.Error("no generation call may be attempted when validation fails")
			}
		})
	}
}

func TestGenerateAuthFailureLeavesCollecting(t *testing.T) {
	gen := &stubGen{err: ai.ErrAuthFailed}
	c := newTestController(gen)
	s, _ := c.Create(context.Background())

	_, err := c.Generate(context.Background(), s.ID, "sk-bad", validInput(), defaultBrand())
	if !errors.Is(err, ai.ErrAuthFailed) {
		t.Fatalf("expected ErrAuthFailed, got %v", err)
	}
	s, err = c.Get(context.Background(), s.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if s.Phase != PhaseCollecting {
		t.Errorf("phase = %s, want collecting after auth failure", s.Phase)
	}
	if len(s.Fields) != 0 {
		t.Errorf("no fields may be stored after a failed generation: %+v", s.Fields)
	}
}

func TestGenerateTransportFailureLeavesCollecting(t *testing.T) {
	gen := &stubGen{err: errors.New("connection reset")}
	c := newTestController(gen)
	s, _ := c.Create(context.Background())

	if _, err := c.Generate(context.Background(), s.ID, "sk-test", validInput(), defaultBrand()); err == nil {
		t.Fatal("expected an error")
	}
	s, _ = c.Get(context.Background(), s.ID)
	if s.Phase != PhaseCollecting {
		t.Errorf("phase = %s, want collecting", s.Phase)
	}
}

func TestEditFieldRequiresReviewing(t *testing.T) {
	c := newTestController(&stubGen{out: goodResponse})
	s, _ := c.Create(context.Background())

	if _, err := c.EditField(context.Background(), s.ID, model.OpeningHook, "edited"); !errors.Is(err, ErrWrongPhase) {
		t.Fatalf("expected ErrWrongPhase, got %v", err)
	}

	s, _ = c.Generate(context.Background(), s.ID, "sk-test", validInput(), defaultBrand())
	s, err := c.EditField(context.Background(), s.ID, model.OpeningHook, "edited")
	if err != nil {
		t.Fatalf("EditField: %v", err)
	}
	if s.Fields[model.OpeningHook] != "edited" {
		t.Errorf("edit not applied: %+v", s.Fields)
	}
}

func TestResetClearsEverything(t *testing.T) {
	c := newTestController(&stubGen{out: goodResponse})
	s, _ := c.Create(context.Background())
	s, _ = c.Generate(context.Background(), s.ID, "sk-test", validInput(), defaultBrand())

	edited := defaultBrand()
	edited.OrgName = "Another Org"
	if _, err := c.EditBrand(context.Background(), s.ID, edited); err != nil {
		t.Fatalf("EditBrand: %v", err)
	}

	s, err := c.Reset(context.Background(), s.ID)
	if err != nil {
		t.Fatalf("Reset: %v", err)
	}
	if s.Phase != PhaseCollecting {
		t.Errorf("phase = %s, want collecting", s.Phase)
	}
	if len(s.Fields) != 0 || s.Raw != "" || s.Input.Theme != "" {
		t.Error("reset must clear fields, raw response and input")
	}
	if s.Brand.OrgName != "Community Hero PA" {
		t.Errorf("reset must restore default branding, got %q", s.Brand.OrgName)
	}
}

func TestRenderFromSession(t *testing.T) {
	c := newTestController(&stubGen{out: goodResponse})
	s, _ := c.Create(context.Background())
	if _, err := c.Generate(context.Background(), s.ID, "sk-test", validInput(), defaultBrand()); err != nil {
		t.Fatalf("Generate: %v", err)
	}
	html, text, err := c.Render(context.Background(), s.ID)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	for _, want := range []string{"Spring means new beginnings.", "Give Today", `href="https://x.org/give"`} {
		if !strings.Contains(html, want) {
			t.Errorf("html missing %q", want)
		}
	}
	if !strings.Contains(text, "Spring means new beginnings.") {
		t.Error("text missing hook")
	}
}

func TestMemoryStoreIsolation(t *testing.T) {
	store := NewMemoryStore()
	s := &Session{ID: "a", Phase: PhaseReviewing, Fields: model.Fields{model.CTAButton: "Go"}}
	if err := store.Put(context.Background(), s); err != nil {
		t.Fatalf("Put: %v", err)
	}
	got, err := store.Get(context.Background(), "a")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	got.Fields[model.CTAButton] = "mutated"
	again, _ := store.Get(context.Background(), "a")
	if again.Fields[model.CTAButton] != "Go" {
		t.Error("store must not share Fields maps with callers")
	}
	if _, err := store.Get(context.Background(), "missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}
