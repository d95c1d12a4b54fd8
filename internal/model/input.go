package model

// SectionInput is the operator-supplied seed for one content section.
type SectionInput struct {
	Name  string `json:"name" yaml:"name"`   // display name, e.g. "Health"
	Focus string `json:"focus" yaml:"focus"` // free-text insight or news to feature
}

// FormInput is the set of user-entered content fields for one generation
// turn. It is treated as immutable once handed to the prompt builder.
type FormInput struct {
	Theme          string                    `json:"theme" yaml:"theme"`
	Notes          string                    `json:"notes" yaml:"notes"`
	Sections       [NumSections]SectionInput `json:"sections" yaml:"sections"`
	CTAText        string                    `json:"cta_text" yaml:"cta_text"`
	CTALink        string                    `json:"cta_link" yaml:"cta_link"`
	PostscriptSeed string                    `json:"postscript_seed" yaml:"postscript_seed"`
}

// BrandConfig carries organization identity and theming, independent of
// generation. Lifetime is the session.
type BrandConfig struct {
	OrgName      string              `json:"org_name" yaml:"org_name"`
	Tagline      string              `json:"tagline" yaml:"tagline"`
	Website      string              `json:"website" yaml:"website"`
	LogoURL      string              `json:"logo_url" yaml:"logo_url"`
	PrimaryColor string              `json:"primary_color" yaml:"primary_color"`
	AccentColor  string              `json:"accent_color" yaml:"accent_color"`
	TextColor    string              `json:"text_color" yaml:"text_color"`
	MutedColor   string              `json:"muted_color" yaml:"muted_color"`
	SectionNames [NumSections]string `json:"section_names" yaml:"section_names"`
}

// ImageSource resolves to what the renderer puts in a section's image slot:
// a data URI built from an upload, a plain URL, or nothing (placeholder).
type ImageSource struct {
	URI string `json:"uri" yaml:"uri"` // data: URI or http(s) URL; empty means none
	Alt string `json:"alt" yaml:"alt"`
}

// IsZero reports whether no image was provided for the section.
func (s ImageSource) IsZero() bool { return s.URI == "" }

// SearchResult is one record returned by the web-search collaborator.
type SearchResult struct {
	Title   string `json:"title"`
	URL     string `json:"url"`
	Snippet string `json:"snippet"`
}

// SectionContext carries retrieved search results for one section, folded
// into the prompt so the generator can ground content and cite a URL.
type SectionContext struct {
	SectionName string
	Results     []SearchResult
}
