package app

import (
	"strings"
	"unicode"
)

const maxTopicChars = 50

// outputFileName picks the output file name: the caller's choice with
// the right extension enforced, or one derived from the topic.
func outputFileName(topic, custom, format string) string {
	ext := "." + format
	if custom != "" {
		if !strings.HasSuffix(custom, ext) {
			custom += ext
		}
		return custom
	}

	var b strings.Builder
	for _, r := range topic {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		} else {
			b.WriteRune('_')
		}
	}
	safe := b.String()
	if len(safe) > maxTopicChars {
		safe = safe[:maxTopicChars]
	}
	if safe == "" {
		safe = "untitled"
	}
	return safe + "_presentation" + ext
}
