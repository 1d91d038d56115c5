package gemini

import (
	"fmt"
	"strings"
)

// extractSections splits a model reply into the pieces between the given
// labels. Each label is located by its first occurrence; all labels must be
// present and in the given order, and the last section runs to the end of
// the text. Sections are trimmed, so a label followed immediately by the
// next label yields an empty string.
//
// This is the one place that trusts the model's formatting. A violation
// fails the whole exchange; nothing is retried or repaired.
func extractSections(text string, labels []string) ([]string, error) {
	starts := make([]int, len(labels))
	for i, label := range labels {
		idx := strings.Index(text, label)
		if idx == -1 {
			return nil, fmt.Errorf("label %q not found", label)
		}
		if i > 0 && idx <= starts[i-1] {
			return nil, fmt.Errorf("label %q out of order", label)
		}
		starts[i] = idx
	}

	sections := make([]string, len(labels))
	for i, label := range labels {
		begin := starts[i] + len(label)
		end := len(text)
		if i+1 < len(labels) {
			end = starts[i+1]
		}
		sections[i] = strings.TrimSpace(text[begin:end])
	}
	return sections, nil
}
