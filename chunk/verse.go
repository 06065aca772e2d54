package chunk

import (
	"regexp"
	"strconv"

	"github.com/poiesic/versebase/core"
)

// Verse marker patterns, tried in order. These match the citation styles
// found in common English renderings of the source text:
//
//	Surah 2, Verse 255 / Surah 2:255
//	[2:255]
//	Al-Baqarah 2:255
//	2:255
var versePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)Surah\s+(\d+)[,:]?\s*(?:Verse\s+)?(\d+)`),
	regexp.MustCompile(`\[(\d+):(\d+)\]`),
	regexp.MustCompile(`(?:Al-)?[A-Z][a-z-]+\s+(\d+):(\d+)`),
	regexp.MustCompile(`\b(\d+):(\d+)\b`),
}

// FindVerseRef extracts the first verse marker from text, or nil when no
// marker is present. When a passage contains several markers only the first
// match of the highest-priority pattern is returned; attributing a chunk to
// its first reference is the documented policy for passages that span
// multiple verses.
func FindVerseRef(text string) *core.VerseRef {
	for _, pattern := range versePatterns {
		match := pattern.FindStringSubmatch(text)
		if match == nil {
			continue
		}

		surah, err := strconv.Atoi(match[1])
		if err != nil {
			continue
		}
		ayah, err := strconv.Atoi(match[2])
		if err != nil {
			continue
		}

		return &core.VerseRef{Surah: surah, Ayah: ayah}
	}
	return nil
}
