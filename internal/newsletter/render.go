package newsletter

import (
	"bytes"
	_ "embed"
	"fmt"
	htmltemplate "html/template"
	"strings"
	texttemplate "text/template"

	"newsie/internal/model"
)

//go:embed email.tmpl
var emailTpl string

//go:embed text.tmpl
var textTpl string

var (
	compiledEmail = htmltemplate.Must(htmltemplate.New("email").Parse(emailTpl))
	compiledText  = texttemplate.Must(texttemplate.New("text").Parse(textTpl))
)

// Data is everything the renderer needs for one output. Rendering is
// recomputed from scratch on every call; outputs are never mutated in place.
type Data struct {
	Fields  model.Fields
	Brand   model.BrandConfig
	Images  [model.NumSections]model.ImageSource
	CTALink string
}

type sectionView struct {
	Name     string
	Title    string
	Body     string
	ImageURL htmltemplate.URL
	ImageAlt string
	Color    string
}

type view struct {
	Brand        model.BrandConfig
	LogoURL      htmltemplate.URL
	SubjectLines []string
	Hook         string
	MainThing    string
	CEONote      string
	Sections     []sectionView
	CTAText      string
	CTALink      htmltemplate.URL
	PSText       string
}

// RenderHTML produces the self-contained HTML email document. All text fields
// are escaped by the template engine; URLs pass through a scheme allowlist.
func RenderHTML(d Data) (string, error) {
	var buf bytes.Buffer
	if err := compiledEmail.Execute(&buf, buildView(d)); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// RenderText produces the plain-text companion document.
func RenderText(d Data) (string, error) {
	var buf bytes.Buffer
	if err := compiledText.Execute(&buf, buildView(d)); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func buildView(d Data) view {
	v := view{
		Brand: d.Brand,
		SubjectLines: []string{
			d.Fields.Get(model.SubjectLine1, ""),
			d.Fields.Get(model.SubjectLine2, ""),
			d.Fields.Get(model.SubjectLine3, ""),
		},
		Hook:      d.Fields.Get(model.OpeningHook, ""),
		MainThing: d.Fields.Get(model.OneMainThing, ""),
		CEONote:   d.Fields.Get(model.CEONote, ""),
		CTAText:   d.Fields.Get(model.CTAButton, "Take Action"),
		CTALink:   safeURL(d.CTALink, "#"),
		PSText:    d.Fields.Get(model.PSText, ""),
	}
	if d.Brand.LogoURL != "" {
		v.LogoURL = safeURL(d.Brand.LogoURL, "")
	}
	// Section underline colors alternate between accent and primary.
	colors := []string{d.Brand.AccentColor, d.Brand.PrimaryColor}
	for i := 0; i < model.NumSections; i++ {
		titleLabel, contentLabel := model.SectionLabels(i)
		name := strings.TrimSpace(d.Brand.SectionNames[i])
		if name == "" {
			name = fmt.Sprintf("Section %d", i+1)
		}
		sv := sectionView{
			Name:  name,
			Title: d.Fields.Get(titleLabel, name+" Update"),
			Body:  d.Fields.Get(contentLabel, ""),
			Color: colors[i%len(colors)],
		}
		if !d.Images[i].IsZero() {
			sv.ImageURL = safeURL(d.Images[i].URI, "")
			sv.ImageAlt = d.Images[i].Alt
			if sv.ImageAlt == "" {
				sv.ImageAlt = name
			}
		}
		v.Sections = append(v.Sections, sv)
	}
	return v
}

// safeURL admits http(s), mailto and image data URIs; anything else falls
// back to def. Marking the result as a template URL bypasses html/template's
// filter, so the allowlist here is the only gate.
func safeURL(raw, def string) htmltemplate.URL {
	u := strings.TrimSpace(raw)
	switch {
	case strings.HasPrefix(u, "http://"),
		strings.HasPrefix(u, "https://"),
		strings.HasPrefix(u, "mailto:"),
		strings.HasPrefix(u, "data:image/"):
		return htmltemplate.URL(u)
	default:
		return htmltemplate.URL(def)
	}
}
