package chat

import (
	"fmt"
	"strings"

	"github.com/chikoo0907/Legal-Aid-sub000/internal/language"
)

const (
	minAnswerLines = 7
	maxAnswerLines = 10

	// Lines shorter than this are never bisected when padding the answer.
	minSplittableRunes = 80

	// Width of the greedy word wrap used for the context-derived fallback.
	fallbackWrapRunes = 110
)

// buildAnswerPrompt embeds the retrieved context and the question with the
// output constraints the post-processor expects.
func buildAnswerPrompt(ragContext, question, lang string) string {
	return fmt.Sprintf(`Use ONLY this legal context:
%s

Question:
%s

Answer in simple %s language within 7-10 lines.
Rules:
- Answer only: no greeting, no introduction, no headings, no disclaimers
- Keep it concise and user-friendly
- Plain sentences, one point per line`, ragContext, question, language.ShortLabel(lang))
}

// postProcess shapes raw model output into a deterministic 7-10 line answer.
// Short source material yields fewer lines rather than padding with filler.
func postProcess(raw string) string {
	text := stripFences(raw)
	text = stripLeadingGreeting(text)

	lines := nonEmptyLines(text)

	if len(lines) < minAnswerLines {
		// Model answers often arrive as one or two paragraphs. Re-segment on
		// sentence boundaries, covering the Devanagari-family full stop.
		lines = nonEmptyLines(strings.Join(splitSentences(strings.Join(lines, " ")), "\n"))
	}

	for len(lines) < minAnswerLines {
		index, ok := longestSplittableLine(lines)
		if !ok {
			break
		}
		first, second := bisectAtSpace(lines[index])
		if second == "" {
			break
		}
		lines = append(lines[:index], append([]string{first, second}, lines[index+1:]...)...)
	}

	if len(lines) > maxAnswerLines {
		lines = lines[:maxAnswerLines]
	}
	return strings.Join(lines, "\n")
}

func stripFences(text string) string {
	text = strings.ReplaceAll(text, "```json", "")
	text = strings.ReplaceAll(text, "```", "")
	return strings.TrimSpace(text)
}

var greetingOpeners = []string{
	"hello", "hi ", "hi,", "hi!", "hey", "namaste", "namaskar",
	"sure", "certainly", "of course",
}

// stripLeadingGreeting drops an opening sentence like "Hello! ..." or
// "Sure, here is ..." that models add despite the answer-only instruction.
func stripLeadingGreeting(text string) string {
	trimmed := strings.TrimSpace(text)
	lower := strings.ToLower(trimmed)
	for _, opener := range greetingOpeners {
		if !strings.HasPrefix(lower, opener) {
			continue
		}
		sentences := splitSentences(trimmed)
		if len(sentences) > 1 {
			return strings.TrimSpace(strings.Join(sentences[1:], " "))
		}
		return trimmed
	}
	return trimmed
}

func nonEmptyLines(text string) []string {
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		lines = append(lines, line)
	}
	return lines
}

// splitSentences splits text after Latin terminators (. ? !) and the
// Devanagari danda (।), keeping the terminator with its sentence.
func splitSentences(text string) []string {
	var sentences []string
	var current strings.Builder
	for _, r := range text {
		current.WriteRune(r)
		switch r {
		case '.', '?', '!', '।':
			sentence := strings.TrimSpace(current.String())
			if sentence != "" {
				sentences = append(sentences, sentence)
			}
			current.Reset()
		}
	}
	if tail := strings.TrimSpace(current.String()); tail != "" {
		sentences = append(sentences, tail)
	}
	return sentences
}

// longestSplittableLine returns the index of the longest line that is long
// enough to bisect, or ok=false when no line qualifies.
func longestSplittableLine(lines []string) (int, bool) {
	best := -1
	bestLen := 0
	for i, line := range lines {
		length := len([]rune(line))
		if length >= minSplittableRunes && length > bestLen {
			best = i
			bestLen = length
		}
	}
	return best, best >= 0
}

// bisectAtSpace splits a line at the nearest space preceding its midpoint.
func bisectAtSpace(line string) (string, string) {
	runes := []rune(line)
	mid := len(runes) / 2
	split := -1
	for i := mid; i > 0; i-- {
		if runes[i] == ' ' {
			split = i
			break
		}
	}
	if split <= 0 {
		return line, ""
	}
	return strings.TrimSpace(string(runes[:split])), strings.TrimSpace(string(runes[split:]))
}

// fallbackAnswer derives an answer directly from the retrieved context when
// the generation backend is unavailable: whitespace collapsed, greedily
// wrapped into at most ten lines of whole words.
func fallbackAnswer(ragContext string) string {
	words := strings.Fields(ragContext)
	if len(words) == 0 {
		return ""
	}

	var lines []string
	var current strings.Builder
	for _, word := range words {
		if current.Len() > 0 && len([]rune(current.String()))+1+len([]rune(word)) > fallbackWrapRunes {
			lines = append(lines, current.String())
			current.Reset()
			if len(lines) == maxAnswerLines {
				break
			}
		}
		if current.Len() > 0 {
			current.WriteByte(' ')
		}
		current.WriteString(word)
	}
	if current.Len() > 0 && len(lines) < maxAnswerLines {
		lines = append(lines, current.String())
	}
	return strings.Join(lines, "\n")
}
