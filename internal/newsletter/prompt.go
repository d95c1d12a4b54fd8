package newsletter

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"newsie/internal/model"
)

const snippetMaxRunes = 200

// BuildPrompt assembles the single instruction string sent to the generation
// service: persona/org context, the supplied content, and the exact label
// protocol the model must follow. Empty inputs are passed through as empty
// strings; the model is told to produce reasonable filler for them. Pure
// string construction, cannot fail.
func BuildPrompt(in model.FormInput, brand model.BrandConfig, contexts []model.SectionContext) string {
	var sb strings.Builder

	org := strings.TrimSpace(brand.OrgName)
	if org == "" {
		org = "a community nonprofit"
	}
	fmt.Fprintf(&sb, "You are writing an email newsletter for %s", org)
	if t := strings.TrimSpace(brand.Tagline); t != "" {
		fmt.Fprintf(&sb, " (%s)", t)
	}
	sb.WriteString(".\n\n")

	fmt.Fprintf(&sb, "THEME: %s\n\n", in.Theme)
	fmt.Fprintf(&sb, "NOTES FROM THE ORGANIZATION'S LEAD: %s\n\n", in.Notes)

	sb.WriteString("CONTENT TO INCLUDE:\n")
	for i := 0; i < model.NumSections; i++ {
		name := sectionName(in, brand, i)
		fmt.Fprintf(&sb, "- %s: %s\n", name, in.Sections[i].Focus)
	}
	fmt.Fprintf(&sb, "- Call to Action: %s (Link: %s)\n", in.CTAText, in.CTALink)
	fmt.Fprintf(&sb, "- Postscript teaser: %s\n", in.PostscriptSeed)

	if ctx := formatContexts(contexts); ctx != "" {
		sb.WriteString("\nCURRENT NEWS CONTEXT (use to ground section content; cite a source link when relevant):\n")
		sb.WriteString(ctx)
	}

	sb.WriteString("\nGenerate the newsletter with this EXACT structure. Return ONLY the content for each section, one per line as LABEL: value, no HTML tags:\n\n")
	sb.WriteString("SUBJECT_LINE_1: [Curiosity-driven, 5-8 words]\n")
	sb.WriteString("SUBJECT_LINE_2: [Different angle, 5-8 words]\n")
	sb.WriteString("SUBJECT_LINE_3: [Third option, 5-8 words]\n")
	sb.WriteString("OPENING_HOOK: [2-3 sentences - a story, question, or bold statement that grabs attention]\n")
	sb.WriteString("ONE_MAIN_THING: [Single key takeaway, 2-3 sentences]\n")
	sb.WriteString("CEO_NOTE: [Personal, warm, 3-4 sentences in first person using the notes provided]\n")
	for i := 0; i < model.NumSections; i++ {
		title, content := model.SectionLabels(i)
		name := sectionName(in, brand, i)
		fmt.Fprintf(&sb, "%s: [Short catchy title for the %s section]\n", title, name)
		fmt.Fprintf(&sb, "%s: [2-3 sentences about the %s topic]\n", content, name)
	}
	sb.WriteString("CTA_BUTTON: [3-5 words for the button]\n")
	sb.WriteString("PS_TEXT: [One-line postscript teaser]\n")
	sb.WriteString("\nTONE: Warm, direct, empowering. Like a smart friend sharing what matters.\n")

	return sb.String()
}

// formatContexts folds retrieved search results into prompt text, one block
// per section, with snippets truncated for token economy.
func formatContexts(contexts []model.SectionContext) string {
	var sb strings.Builder
	for _, c := range contexts {
		if len(c.Results) == 0 {
			continue
		}
		fmt.Fprintf(&sb, "%s:\n", c.SectionName)
		for _, r := range c.Results {
			fmt.Fprintf(&sb, "  - %s: %s (source: %s)\n", r.Title, truncateRunes(r.Snippet, snippetMaxRunes), r.URL)
		}
	}
	return sb.String()
}

func sectionName(in model.FormInput, brand model.BrandConfig, i int) string {
	if n := strings.TrimSpace(in.Sections[i].Name); n != "" {
		return n
	}
	if n := strings.TrimSpace(brand.SectionNames[i]); n != "" {
		return n
	}
	return fmt.Sprintf("Section %d", i+1)
}

func truncateRunes(s string, max int) string {
	if max <= 0 {
		return ""
	}
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	runes := []rune(s)
	return string(runes[:max-3]) + "..."
}
