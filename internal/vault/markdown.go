package vault

import (
	"regexp"
	"strings"
)

var (
	tagPattern      = regexp.MustCompile(`(?:^|\s)(#[\p{L}\p{N}_\-/]*[\p{L}_\-/][\p{L}\p{N}_\-/]*)`)
	wikilinkPattern = regexp.MustCompile(`\[\[([^\[\]|#^]+)(?:[#^][^\[\]|]*)?(?:\|[^\[\]]*)?\]\]`)
	clozePattern    = regexp.MustCompile(`==([^=\n]+)==`)
	srCommentRegexp = regexp.MustCompile(`\s*<!--SR:[^>]*-->`)
)

// isFence reports whether a line opens or closes a fenced code block.
func isFence(line string) bool {
	t := strings.TrimSpace(line)
	return strings.HasPrefix(t, "```") || strings.HasPrefix(t, "~~~")
}

// proseLines returns the lines outside fenced code blocks; code lines are
// replaced by empty strings so line numbers stay aligned.
func proseLines(lines []string) []string {
	out := make([]string, len(lines))
	inFence := false
	for i, line := range lines {
		if isFence(line) {
			inFence = !inFence
			continue
		}
		if !inFence {
			out[i] = line
		}
	}
	return out
}

// inlineTags returns the #tags in the lines in order of first appearance.
func inlineTags(lines []string) []string {
	var tags []string
	seen := make(map[string]bool)
	for _, line := range lines {
		for _, m := range tagPattern.FindAllStringSubmatch(line, -1) {
			tag := strings.TrimRight(m[1], "/")
			if !seen[tag] {
				seen[tag] = true
				tags = append(tags, tag)
			}
		}
	}
	return tags
}

// wikilinks counts [[links]] by target name. Aliases, headings and block
// references are dropped from the target.
func wikilinks(lines []string) map[string]int {
	links := make(map[string]int)
	for _, line := range lines {
		for _, m := range wikilinkPattern.FindAllStringSubmatch(line, -1) {
			target := strings.TrimSpace(m[1])
			if target != "" {
				links[target]++
			}
		}
	}
	return links
}

// stripSRComment removes an inline schedule comment and the whitespace
// before it.
func stripSRComment(s string) string {
	return srCommentRegexp.ReplaceAllString(s, "")
}

// findSRComment returns the first schedule comment in s.
func findSRComment(s string) string {
	loc := srCommentRegexp.FindStringIndex(s)
	if loc == nil {
		return ""
	}
	return strings.TrimSpace(s[loc[0]:loc[1]])
}

func mergeTags(lists ...[]string) []string {
	var out []string
	seen := make(map[string]bool)
	for _, list := range lists {
		for _, t := range list {
			if !seen[t] {
				seen[t] = true
				out = append(out, t)
			}
		}
	}
	return out
}
