package markdown

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"newsie/internal/model"
)

// Draft is a newsletter draft saved to disk: YAML frontmatter carrying the
// structured fields and branding, above a human-readable markdown preview.
// The CLI writes one per generation so a draft can be edited and re-rendered
// later without another generation call.
type Draft struct {
	Date    string            `yaml:"date"`
	CTALink string            `yaml:"cta_link"`
	Brand   model.BrandConfig `yaml:"brand"`
	Fields  model.Fields      `yaml:"fields"`
	Body    string            `yaml:"-"`
}

// WriteFile saves the draft as frontmatter + body.
func (d Draft) WriteFile(path string) error {
	fm, err := yaml.Marshal(struct {
		Date    string            `yaml:"date"`
		CTALink string            `yaml:"cta_link"`
		Brand   model.BrandConfig `yaml:"brand"`
		Fields  model.Fields      `yaml:"fields"`
	}{d.Date, d.CTALink, d.Brand, d.Fields})
	if err != nil {
		return err
	}
	var sb strings.Builder
	sb.WriteString("---\n")
	sb.Write(fm)
	sb.WriteString("---\n\n")
	sb.WriteString(d.Body)
	return os.WriteFile(path, []byte(sb.String()), 0o644)
}

// ParseFile reads a draft file and extracts YAML frontmatter and body.
// Frontmatter is expected at the top of the file between two lines containing
// only "---".
func ParseFile(path string) (Draft, error) {
	f, err := os.Open(path)
	if err != nil {
		return Draft{}, err
	}
	defer f.Close()

	br := bufio.NewReader(f)
	peek, err := br.Peek(3)
	if err != nil && !errors.Is(err, io.EOF) {
		return Draft{}, err
	}
	if string(peek) != "---" {
		return Draft{}, fmt.Errorf("markdown: %s has no frontmatter", path)
	}
	// Consume first line '---' fully
	if _, err := br.ReadString('\n'); err != nil && !errors.Is(err, io.EOF) {
		return Draft{}, err
	}
	var fmBuf strings.Builder
	for {
		l, err := br.ReadString('\n')
		if strings.TrimSpace(l) == "---" {
			break
		}
		fmBuf.WriteString(l)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return Draft{}, err
		}
	}
	var bodyBuf strings.Builder
	for {
		l, err := br.ReadString('\n')
		bodyBuf.WriteString(l)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return Draft{}, err
		}
	}

	var d Draft
	if err := yaml.Unmarshal([]byte(fmBuf.String()), &d); err != nil {
		return Draft{}, err
	}
	d.Body = strings.TrimLeft(bodyBuf.String(), "\n")
	if d.Fields == nil {
		d.Fields = make(model.Fields)
	}
	return d, nil
}

// Preview builds the markdown body for a draft from its fields, so the saved
// file reads well on its own.
func Preview(fields model.Fields, brand model.BrandConfig) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "# %s\n\n", brand.OrgName)
	sb.WriteString("## Subject line options\n\n")
	for _, label := range []model.Label{model.SubjectLine1, model.SubjectLine2, model.SubjectLine3} {
		if v := fields.Get(label, ""); v != "" {
			fmt.Fprintf(&sb, "- %s\n", v)
		}
	}
	if v := fields.Get(model.OpeningHook, ""); v != "" {
		fmt.Fprintf(&sb, "\n%s\n", v)
	}
	if v := fields.Get(model.OneMainThing, ""); v != "" {
		fmt.Fprintf(&sb, "\n**The one thing:** %s\n", v)
	}
	if v := fields.Get(model.CEONote, ""); v != "" {
		fmt.Fprintf(&sb, "\n> %s\n", v)
	}
	for i := 0; i < model.NumSections; i++ {
		titleLabel, contentLabel := model.SectionLabels(i)
		name := brand.SectionNames[i]
		title := fields.Get(titleLabel, name)
		if body := fields.Get(contentLabel, ""); body != "" {
			fmt.Fprintf(&sb, "\n## %s\n\n%s\n", title, body)
		}
	}
	if v := fields.Get(model.PSText, ""); v != "" {
		fmt.Fprintf(&sb, "\nP.S. %s\n", v)
	}
	return sb.String()
}
