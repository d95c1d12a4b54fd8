package newsletter

import (
	"strings"
	"testing"

	"newsie/internal/model"
)

func testInput() model.FormInput {
	return model.FormInput{
		Theme:   "Spring fundraising drive",
		Notes:   "• excited about the gala\n• grateful for volunteers",
		CTAText: "Donate",
		CTALink: "https://x.org/give",
		Sections: [model.NumSections]model.SectionInput{
			{Name: "Health", Focus: "new clinic opening"},
			{Name: "Wealth", Focus: "free tax prep"},
			{Name: "Civic", Focus: "voter registration deadline"},
		},
		PostscriptSeed: "stress management episode",
	}
}

func TestBuildPromptListsEveryLabel(t *testing.T) {
	prompt := BuildPrompt(testInput(), testBrand(), nil)
	for _, label := range model.AllLabels {
		if !strings.Contains(prompt, string(label)+":") {
			t.Errorf("prompt missing label %s", label)
		}
	}
}

func TestBuildPromptIncludesContent(t *testing.T) {
	prompt := BuildPrompt(testInput(), testBrand(), nil)
	for _, want := range []string{
		"Spring fundraising drive",
		"new clinic opening",
		"free tax prep",
		"voter registration deadline",
		"Donate",
		"https://x.org/give",
		"stress management episode",
		"Community Hero PA",
	} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q", want)
		}
	}
}

func TestBuildPromptEmptyInputsPassThrough(t *testing.T) {
	// Empty fields must still be enumerated; the generator is told to fill
	// gaps gracefully rather than the builder dropping lines.
	prompt := BuildPrompt(model.FormInput{}, testBrand(), nil)
	if !strings.Contains(prompt, "THEME:") {
		t.Error("prompt must keep the THEME line even when empty")
	}
	for _, label := range model.AllLabels {
		if !strings.Contains(prompt, string(label)+":") {
			t.Errorf("prompt missing label %s", label)
		}
	}
}

func TestBuildPromptFoldsSearchContext(t *testing.T) {
	long := strings.Repeat("news ", 100) // > 200 runes, must be truncated
	ctxs := []model.SectionContext{
		{
			SectionName: "Health",
			Results: []model.SearchResult{
				{Title: "Clinic opens", URL: "https://news.example.org/clinic", Snippet: long},
			},
		},
		{SectionName: "Wealth"}, // no results, omitted
	}
	prompt := BuildPrompt(testInput(), testBrand(), ctxs)
	if !strings.Contains(prompt, "Clinic opens") {
		t.Error("prompt missing search result title")
	}
	if !strings.Contains(prompt, "https://news.example.org/clinic") {
		t.Error("prompt missing search result link")
	}
	if strings.Contains(prompt, long) {
		t.Error("snippet should be truncated")
	}
	if strings.Contains(prompt, "Wealth:\n") {
		t.Error("sections without results must not emit a context block")
	}
}
