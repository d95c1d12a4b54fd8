package session

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"newsie/internal/ai"
	"newsie/internal/model"
	"newsie/internal/newsletter"
)

// Phase is the two-step flow state: collecting inputs, or reviewing a
// generated draft.
type Phase string

const (
	PhaseCollecting Phase = "collecting"
	PhaseReviewing  Phase = "reviewing"
)

// Session holds one operator's working state for the duration of an
// interactive session. The API credential is deliberately not part of it.
type Session struct {
	ID        string                               `json:"id"`
	Phase     Phase                                `json:"phase"`
	Input     model.FormInput                      `json:"input"`
	Fields    model.Fields                         `json:"fields,omitempty"`
	Brand     model.BrandConfig                    `json:"brand"`
	Images    [model.NumSections]model.ImageSource `json:"images"`
	Raw       string                               `json:"raw,omitempty"`
	CreatedAt time.Time                            `json:"created_at"`
	UpdatedAt time.Time                            `json:"updated_at"`
}

// ValidationError reports a required field that was empty. No generation call
// is attempted when validation fails.
type ValidationError struct {
	Field string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("required field is empty: %s", e.Field)
}

// ErrNotFound is returned for unknown session IDs.
var ErrNotFound = errors.New("session: not found")

// ErrWrongPhase is returned when an edit is attempted before a draft exists.
var ErrWrongPhase = errors.New("session: no generated draft to edit")

// Searcher is the optional web-search augmenter.
type Searcher interface {
	Augment(ctx context.Context, in model.FormInput, brand model.BrandConfig) []model.SectionContext
}

// Controller drives the collect -> generate -> review flow. All operations
// for one session run serially (the UI issues one request at a time), so the
// controller itself takes no locks beyond what the store provides.
type Controller struct {
	gen          ai.Generator
	search       Searcher // nil when the augmenter is disabled
	store        Store
	defaultBrand model.BrandConfig
	fallbackKey  string
}

func NewController(gen ai.Generator, search Searcher, store Store, defaultBrand model.BrandConfig, fallbackKey string) *Controller {
	return &Controller{
		gen:          gen,
		search:       search,
		store:        store,
		defaultBrand: defaultBrand,
		fallbackKey:  fallbackKey,
	}
}

// Create starts a new session in the collecting phase, seeded with the
// default branding.
func (c *Controller) Create(ctx context.Context) (*Session, error) {
	now := time.Now().UTC()
	s := &Session{
		ID:        newID(),
		Phase:     PhaseCollecting,
		Brand:     c.defaultBrand,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := c.store.Put(ctx, s); err != nil {
		return nil, err
	}
	return s, nil
}

// Get loads a session by ID.
func (c *Controller) Get(ctx context.Context, id string) (*Session, error) {
	return c.store.Get(ctx, id)
}

// Generate validates the inputs, calls the generation service, parses the
// response and moves the session to reviewing. On any failure the session
// stays in collecting with no fields stored.
func (c *Controller) Generate(ctx context.Context, id, apiKey string, in model.FormInput, brand model.BrandConfig) (*Session, error) {
	s, err := c.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	key := strings.TrimSpace(apiKey)
	if key == "" {
		key = c.fallbackKey
	}
	if err := validate(in, brand, key); err != nil {
		return nil, err
	}

	var contexts []model.SectionContext
	if c.search != nil {
		contexts = c.search.Augment(ctx, in, brand)
	}

	prompt := newsletter.BuildPrompt(in, brand, contexts)
	slog.Info("session: generating newsletter", "session", id, "prompt_bytes", len(prompt))
	raw, err := c.gen.Generate(ctx, key, prompt)
	if err != nil {
		if errors.Is(err, ai.ErrAuthFailed) {
			slog.Warn("session: generation rejected credential", "session", id)
		} else {
			slog.Warn("session: generation failed", "session", id, "err", err)
		}
		return nil, err
	}

	s.Input = in
	s.Brand = brand
	s.Fields = newsletter.Parse(raw)
	s.Raw = raw
	s.Phase = PhaseReviewing
	s.UpdatedAt = time.Now().UTC()
	if err := c.store.Put(ctx, s); err != nil {
		return nil, err
	}
	slog.Info("session: draft ready", "session", id, "fields", len(s.Fields))
	return s, nil
}

// EditField overwrites one parsed field. Allowed only while reviewing; edits
// are not re-validated.
func (c *Controller) EditField(ctx context.Context, id string, label model.Label, value string) (*Session, error) {
	s, err := c.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if s.Phase != PhaseReviewing {
		return nil, ErrWrongPhase
	}
	if s.Fields == nil {
		s.Fields = make(model.Fields)
	}
	s.Fields[label] = value
	s.UpdatedAt = time.Now().UTC()
	if err := c.store.Put(ctx, s); err != nil {
		return nil, err
	}
	return s, nil
}

// EditBrand replaces the session's branding. Allowed only while reviewing.
func (c *Controller) EditBrand(ctx context.Context, id string, brand model.BrandConfig) (*Session, error) {
	s, err := c.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if s.Phase != PhaseReviewing {
		return nil, ErrWrongPhase
	}
	s.Brand = brand
	s.UpdatedAt = time.Now().UTC()
	if err := c.store.Put(ctx, s); err != nil {
		return nil, err
	}
	return s, nil
}

// SetImage attaches an image source to a section. Unlike field edits this is
// allowed in either phase, since uploads happen while collecting too.
func (c *Controller) SetImage(ctx context.Context, id string, section int, img model.ImageSource) (*Session, error) {
	if section < 0 || section >= model.NumSections {
		return nil, fmt.Errorf("session: section index %d out of range", section)
	}
	s, err := c.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	s.Images[section] = img
	s.UpdatedAt = time.Now().UTC()
	if err := c.store.Put(ctx, s); err != nil {
		return nil, err
	}
	return s, nil
}

// Reset clears all stored fields and returns the session to collecting, with
// branding back at the defaults.
func (c *Controller) Reset(ctx context.Context, id string) (*Session, error) {
	s, err := c.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	s.Phase = PhaseCollecting
	s.Input = model.FormInput{}
	s.Fields = nil
	s.Raw = ""
	s.Images = [model.NumSections]model.ImageSource{}
	s.Brand = c.defaultBrand
	s.UpdatedAt = time.Now().UTC()
	if err := c.store.Put(ctx, s); err != nil {
		return nil, err
	}
	return s, nil
}

// Delete discards a session entirely.
func (c *Controller) Delete(ctx context.Context, id string) error {
	return c.store.Delete(ctx, id)
}

// Render produces the current artifacts from the stored fields and branding.
func (c *Controller) Render(ctx context.Context, id string) (html, text string, err error) {
	s, err := c.store.Get(ctx, id)
	if err != nil {
		return "", "", err
	}
	d := newsletter.Data{
		Fields:  s.Fields,
		Brand:   s.Brand,
		Images:  s.Images,
		CTALink: s.Input.CTALink,
	}
	html, err = newsletter.RenderHTML(d)
	if err != nil {
		return "", "", err
	}
	text, err = newsletter.RenderText(d)
	if err != nil {
		return "", "", err
	}
	return html, text, nil
}

func validate(in model.FormInput, brand model.BrandConfig, apiKey string) error {
	if strings.TrimSpace(in.Theme) == "" {
		return &ValidationError{Field: "theme"}
	}
	if strings.TrimSpace(brand.OrgName) == "" {
		return &ValidationError{Field: "org_name"}
	}
	if apiKey == "" {
		return &ValidationError{Field: "api_key"}
	}
	return nil
}

func newID() string {
	b := make([]byte, 12)
	if _, err := rand.Read(b); err != nil {
		// crypto/rand failing is unrecoverable for ID generation
		panic(err)
	}
	return hex.EncodeToString(b)
}
