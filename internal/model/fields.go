package model

import "sort"

// Label identifies one field of structured output within the generator's
// free-text response. The set is closed: unknown labels are dropped by the
// parser rather than surfacing as dynamic string keys.
type Label string

const (
	SubjectLine1    Label = "SUBJECT_LINE_1"
	SubjectLine2    Label = "SUBJECT_LINE_2"
	SubjectLine3    Label = "SUBJECT_LINE_3"
	OpeningHook     Label = "OPENING_HOOK"
	OneMainThing    Label = "ONE_MAIN_THING"
	CEONote         Label = "CEO_NOTE"
	Section1Title   Label = "SECTION_1_TITLE"
	Section1Content Label = "SECTION_1_CONTENT"
	Section2Title   Label = "SECTION_2_TITLE"
	Section2Content Label = "SECTION_2_CONTENT"
	Section3Title   Label = "SECTION_3_TITLE"
	Section3Content Label = "SECTION_3_CONTENT"
	CTAButton       Label = "CTA_BUTTON"
	PSText          Label = "PS_TEXT"
)

// AllLabels lists every known label in the order the generator is asked to
// emit them.
var AllLabels = []Label{
	SubjectLine1,
	SubjectLine2,
	SubjectLine3,
	OpeningHook,
	OneMainThing,
	CEONote,
	Section1Title,
	Section1Content,
	Section2Title,
	Section2Content,
	Section3Title,
	Section3Content,
	CTAButton,
	PSText,
}

// labelsByLength holds AllLabels sorted longest-first so that a label whose
// name is a prefix of another (e.g. CTA_BUTTON vs a hypothetical
// CTA_BUTTON_TEXT) can never swallow the longer one during matching.
var labelsByLength = func() []Label {
	ls := make([]Label, len(AllLabels))
	copy(ls, AllLabels)
	sort.SliceStable(ls, func(i, j int) bool { return len(ls[i]) > len(ls[j]) })
	return ls
}()

// LabelsByLength returns the known labels ordered longest-first for
// prefix-safe matching.
func LabelsByLength() []Label {
	return labelsByLength
}

// ParseLabel maps a string onto a known label. Unknown names are rejected so
// free-form keys never enter a Fields map.
func ParseLabel(s string) (Label, bool) {
	for _, l := range AllLabels {
		if string(l) == s {
			return l, true
		}
	}
	return "", false
}

// SectionLabels returns the title/content label pair for a section index
// (0-based). Panics on an out-of-range index; callers iterate NumSections.
func SectionLabels(i int) (title, content Label) {
	switch i {
	case 0:
		return Section1Title, Section1Content
	case 1:
		return Section2Title, Section2Content
	case 2:
		return Section3Title, Section3Content
	}
	panic("model: section index out of range")
}

// NumSections is the fixed number of content sections in a newsletter.
const NumSections = 3

// Fields maps labels to their parsed text values. Keys absent from the map
// were not produced by the generator; callers supply a default at render time.
type Fields map[Label]string

// Get returns the value for label, or def when the label is absent.
func (f Fields) Get(label Label, def string) string {
	if v, ok := f[label]; ok {
		return v
	}
	return def
}

// Clone returns a shallow copy so edits never alias a stored session.
func (f Fields) Clone() Fields {
	out := make(Fields, len(f))
	for k, v := range f {
		out[k] = v
	}
	return out
}
