package telegram

import (
	"strings"
	"unicode/utf8"
)

// SplitMessage breaks text into chunks of at most maxLen runes. Splits
// prefer a blank line, then a newline in the second half of the chunk, then
// a space, so translation blocks and their headers stay together.
func SplitMessage(text string, maxLen int) []string {
	if utf8.RuneCountInString(text) <= maxLen {
		return []string{text}
	}

	var parts []string
	runes := []rune(text)
	for len(runes) > maxLen {
		window := string(runes[:maxLen])
		splitAt := len(window)

		if i := strings.LastIndex(window, "\n\n"); i > maxLen/2 {
			splitAt = i + 2
		} else if i := strings.LastIndex(window, "\n"); i > maxLen/2 {
			splitAt = i + 1
		} else if i := strings.LastIndex(window, " "); i > maxLen/2 {
			splitAt = i + 1
		}

		// splitAt is a byte offset into window; convert back to runes.
		splitRunes := utf8.RuneCountInString(window[:splitAt])
		parts = append(parts, string(runes[:splitRunes]))
		runes = runes[splitRunes:]
	}
	if len(runes) > 0 {
		parts = append(parts, string(runes))
	}

	return parts
}

// FixMarkdown closes dangling code fences and inline code spans so the
// whole message still parses when a model reply stops mid-format.
func FixMarkdown(text string) string {
	if strings.Count(text, "```")%2 != 0 {
		text += "\n```"
	}
	return closeInlineCode(text)
}

func closeInlineCode(text string) string {
	var out strings.Builder
	inFence := false
	inlineOpen := false

	runes := []rune(text)
	for i := 0; i < len(runes); i++ {
		if i+2 < len(runes) && runes[i] == '`' && runes[i+1] == '`' && runes[i+2] == '`' {
			if inlineOpen {
				out.WriteRune('`')
				inlineOpen = false
			}
			inFence = !inFence
			out.WriteString("```")
			i += 2
			continue
		}
		if !inFence && runes[i] == '`' {
			inlineOpen = !inlineOpen
		}
		out.WriteRune(runes[i])
	}

	if inlineOpen {
		out.WriteRune('`')
	}
	return out.String()
}
