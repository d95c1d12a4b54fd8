package newsletter

import (
	"strings"

	"newsie/internal/model"
)

// Parse splits raw generation output into labeled fields. The scan is
// line-ordered and tolerant: lines before the first recognized label are
// dropped, unlabeled lines continue the active label's value, and a label
// appearing twice overwrites its earlier value. Parse never fails; malformed
// text just yields fewer populated keys.
func Parse(raw string) model.Fields {
	fields := make(model.Fields)
	var current model.Label
	var active bool
	var frags []string

	commit := func() {
		if active {
			fields[current] = strings.Join(frags, " ")
		}
	}

	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if label, rest, ok := matchLabel(line); ok {
			commit()
			current = label
			active = true
			frags = frags[:0]
			if rest != "" {
				frags = append(frags, rest)
			}
			continue
		}
		if active && line != "" {
			frags = append(frags, line)
		}
	}
	commit()
	return fields
}

// matchLabel tests a trimmed line against the known labels, longest first so
// a label that is a prefix of another never captures the longer one. Matching
// is case-sensitive and the colon must immediately follow the label.
func matchLabel(line string) (model.Label, string, bool) {
	for _, label := range model.LabelsByLength() {
		prefix := string(label) + ":"
		if strings.HasPrefix(line, prefix) {
			return label, strings.TrimSpace(line[len(prefix):]), true
		}
	}
	return "", "", false
}
