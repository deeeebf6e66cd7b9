package provider

import (
	"regexp"
	"strings"
)

// The chat provider guarantees plain-text output: no markdown control
// characters survive, only text and bullet dashes. Replacement order is
// load-bearing — fences before inline code, images before links, bold before
// italic — because the longer markers contain the shorter ones.
var (
	reCodeFence   = regexp.MustCompile("(?s)```[a-zA-Z0-9]*\n?(.*?)```")
	reInlineCode  = regexp.MustCompile("`([^`]*)`")
	reImage       = regexp.MustCompile(`!\[([^\]]*)\]\([^)]*\)`)
	reLink        = regexp.MustCompile(`\[([^\]]+)\]\([^)]*\)`)
	reHeading     = regexp.MustCompile(`(?m)^#{1,6}\s*`)
	reBoldStars   = regexp.MustCompile(`\*\*([^*]+)\*\*`)
	reBoldUnder   = regexp.MustCompile(`__([^_]+)__`)
	reItalicStars = regexp.MustCompile(`\*([^*\n]+)\*`)
	reItalicUnder = regexp.MustCompile(`\b_([^_\n]+)_\b`)
	reBlockquote  = regexp.MustCompile(`(?m)^>\s?`)
	reBulletStar  = regexp.MustCompile(`(?m)^(\s*)[*+]\s+`)
	reRule        = regexp.MustCompile(`(?m)^(-{3,}|\*{3,}|_{3,})\s*$`)
	reBlankRuns   = regexp.MustCompile(`\n{3,}`)
)

// StripMarkdown reduces a markdown chat reply to plain text. Dash bullets are
// kept; starred bullets are rewritten to dashes.
func StripMarkdown(in string) string {
	if strings.TrimSpace(in) == "" {
		return ""
	}
	out := reCodeFence.ReplaceAllString(in, "$1")
	out = reInlineCode.ReplaceAllString(out, "$1")
	out = reImage.ReplaceAllString(out, "$1")
	out = reLink.ReplaceAllString(out, "$1")
	out = reHeading.ReplaceAllString(out, "")
	out = reRule.ReplaceAllString(out, "")
	out = reBoldStars.ReplaceAllString(out, "$1")
	out = reBoldUnder.ReplaceAllString(out, "$1")
	out = reBulletStar.ReplaceAllString(out, "$1- ")
	out = reItalicStars.ReplaceAllString(out, "$1")
	out = reItalicUnder.ReplaceAllString(out, "$1")
	out = reBlockquote.ReplaceAllString(out, "")
	out = reBlankRuns.ReplaceAllString(out, "\n\n")
	return strings.TrimSpace(out)
}
