package chat

import "strings"

var greetings = []string{"hi", "hello", "hey", "namaste", "namaskar", "hii", "hiii"}

var basicQuestions = []string{"what is this", "what is", "who are you", "what can you do"}

var nonLegalKeywords = []string{"weather", "recipe", "joke", "story", "movie", "music", "sport", "game"}

// isGreeting reports whether the prompt is a bare greeting or a basic
// "who are you" style question that deserves the canned introduction.
func isGreeting(prompt string) bool {
	lower := strings.ToLower(strings.TrimSpace(prompt))
	for _, greeting := range greetings {
		if lower == greeting || strings.HasPrefix(lower, greeting+" ") {
			return true
		}
	}
	for _, question := range basicQuestions {
		if strings.Contains(lower, question) {
			return true
		}
	}
	return false
}

// isNonLegal reports whether the prompt is clearly outside the legal domain.
// Retrieved context always wins: if the corpus matched something, the
// question is treated as legal regardless of keywords.
func isNonLegal(prompt, ragContext string) bool {
	if strings.TrimSpace(ragContext) != "" {
		return false
	}
	lower := strings.ToLower(prompt)
	for _, keyword := range nonLegalKeywords {
		if strings.Contains(lower, keyword) {
			return true
		}
	}
	return false
}
