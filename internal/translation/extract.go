package translation

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// skipKeys are object keys whose values are never translated: identifiers,
// URLs, contact fields, timestamps, and enumerated technical fields from the
// legal-guide data model.
var skipKeys = map[string]struct{}{
	"id": {}, "_id": {}, "userId": {}, "documentId": {}, "situation_id": {},
	"category": {}, "url": {}, "href": {}, "src": {}, "path": {},
	"email": {}, "phone": {}, "createdAt": {}, "updatedAt": {},
	"official_references": {}, "step": {}, "mandatory": {},
	"can_be_done_without_lawyer": {},
}

var (
	urlPattern      = regexp.MustCompile(`^https?://`)
	emailPattern    = regexp.MustCompile(`(?i)^[\w.-]+@[\w.-]+\.[a-z]{2,}$`)
	filePathPattern = regexp.MustCompile(`(?i)^[\w/\\]+\.[a-z]{2,4}$`)
	numericPattern  = regexp.MustCompile(`^[\d_-]+$`)
	indexPattern    = regexp.MustCompile(`\[(\d+)\]`)
	numberedPrefix  = regexp.MustCompile(`^\d+\.\s*`)
)

// skipKey reports whether a key signals "do not translate"; such keys are not
// descended into at all, so nested leaves under them are skipped too.
func skipKey(key string) bool {
	if _, ok := skipKeys[key]; ok {
		return true
	}
	return strings.HasSuffix(key, "Id") ||
		strings.HasSuffix(key, "_id") ||
		strings.HasSuffix(key, "Url") ||
		strings.HasSuffix(key, "_url") ||
		strings.HasPrefix(key, "http")
}

// skipValue reports whether a string leaf carries no human-readable text:
// blank, URL, email, file path, or pure digits/underscores/hyphens.
func skipValue(value string) bool {
	if strings.TrimSpace(value) == "" {
		return true
	}
	return urlPattern.MatchString(value) ||
		emailPattern.MatchString(value) ||
		filePathPattern.MatchString(value) ||
		numericPattern.MatchString(value)
}

// Extraction holds the translatable leaf strings of a JSON value and the path
// expression addressing each one, index-aligned.
type Extraction struct {
	Strings []string
	Paths   []string
}

// Extract walks a decoded JSON value and collects every translatable leaf
// string with its path (e.g. "steps[2].description"). Numbers, booleans, and
// nulls are never extracted.
func Extract(value any) Extraction {
	var out Extraction
	extractInto(value, "", &out)
	return out
}

func extractInto(current any, path string, out *Extraction) {
	switch v := current.(type) {
	case []any:
		for i, item := range v {
			extractInto(item, path+"["+strconv.Itoa(i)+"]", out)
		}
	case map[string]any:
		// Sorted keys keep extraction order, and therefore batch chunking,
		// deterministic across runs.
		keys := make([]string, 0, len(v))
		for key := range v {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		for _, key := range keys {
			if skipKey(key) {
				continue
			}
			childPath := key
			if path != "" {
				childPath = path + "." + key
			}
			extractInto(v[key], childPath, out)
		}
	case string:
		if skipValue(v) {
			return
		}
		out.Strings = append(out.Strings, v)
		out.Paths = append(out.Paths, path)
	}
}

// Rebuild returns a deep copy of original with the string at each path
// replaced by the corresponding translated string. The input value is never
// mutated, so callers may keep reusing it.
func Rebuild(original any, paths []string, translated []string) any {
	result := deepCopy(original)
	for i, path := range paths {
		if i >= len(translated) {
			break
		}
		if path == "" {
			// The whole value was a single translatable string.
			result = translated[i]
			continue
		}
		setAtPath(result, path, translated[i])
	}
	return result
}

func deepCopy(value any) any {
	switch v := value.(type) {
	case []any:
		copied := make([]any, len(v))
		for i, item := range v {
			copied[i] = deepCopy(item)
		}
		return copied
	case map[string]any:
		copied := make(map[string]any, len(v))
		for key, item := range v {
			copied[key] = deepCopy(item)
		}
		return copied
	default:
		return v
	}
}

// setAtPath writes value at a path like "a.b[0].c". Bracket-index segments
// and dot-key segments are parsed uniformly by rewriting "[n]" to ".n".
func setAtPath(root any, path string, value any) {
	normalized := indexPattern.ReplaceAllString(path, ".$1")
	parts := strings.Split(normalized, ".")
	if parts[0] == "" {
		// Paths rooted at a top-level array ("[0].title") normalize to
		// ".0.title" and split with an empty leading segment.
		parts = parts[1:]
	}

	current := root
	for _, part := range parts[:len(parts)-1] {
		switch node := current.(type) {
		case map[string]any:
			current = node[part]
		case []any:
			index, err := strconv.Atoi(part)
			if err != nil || index < 0 || index >= len(node) {
				return
			}
			current = node[index]
		default:
			return
		}
	}

	last := parts[len(parts)-1]
	switch node := current.(type) {
	case map[string]any:
		node[last] = value
	case []any:
		index, err := strconv.Atoi(last)
		if err != nil || index < 0 || index >= len(node) {
			return
		}
		node[index] = value
	}
}
