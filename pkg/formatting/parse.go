package formatting

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// ErrParseFailed is returned when no parse strategy yields content that
// unmarshals into the target type.
var ErrParseFailed = errors.New("failed to parse response")

var (
	jsonBlockRegex  = regexp.MustCompile(`(?s)` + "```" + `(?:json)?\s*\n?(.*?)\n?` + "```")
	jsonArrayRegex  = regexp.MustCompile(`(?s)\[\s*\{.*\}\s*\]`)
	jsonObjectRegex = regexp.MustCompile(`(?s)\{.*\}`)
)

// Strategy derives a JSON candidate from raw model output.
// It reports false when it has nothing to offer for the content.
type Strategy func(content string) (string, bool)

// Direct offers the content unchanged.
func Direct(content string) (string, bool) {
	return content, content != ""
}

// FencedBlock offers the body of the first markdown code fence.
func FencedBlock(content string) (string, bool) {
	matches := jsonBlockRegex.FindStringSubmatch(content)
	if len(matches) < 2 {
		return "", false
	}
	return strings.TrimSpace(matches[1]), true
}

// ArraySubstring offers the outermost substring shaped like an array of objects.
func ArraySubstring(content string) (string, bool) {
	match := jsonArrayRegex.FindString(content)
	return match, match != ""
}

// ObjectSubstring offers the outermost substring shaped like an object.
func ObjectSubstring(content string) (string, bool) {
	match := jsonObjectRegex.FindString(content)
	return match, match != ""
}

// StripFences removes every markdown code fence marker and offers what remains.
func StripFences(content string) (string, bool) {
	if !strings.Contains(content, "```") {
		return "", false
	}
	return strings.TrimSpace(jsonBlockRegex.ReplaceAllString(content, "$1")), true
}

// Parse attempts to unmarshal content as JSON into T.
// If direct parsing fails, it extracts JSON from a markdown code fence
// and retries. Returns ErrParseFailed if both attempts fail.
func Parse[T any](content string) (T, error) {
	return ParseFirst[T](content, Direct, FencedBlock)
}

// ParseFirst tries each strategy in order and returns the first candidate
// that unmarshals into T. Returns ErrParseFailed when all strategies fail.
func ParseFirst[T any](content string, strategies ...Strategy) (T, error) {
	var zero T
	content = strings.TrimSpace(content)

	for _, strategy := range strategies {
		candidate, ok := strategy(content)
		if !ok {
			continue
		}

		var result T
		if err := json.Unmarshal([]byte(candidate), &result); err == nil {
			return result, nil
		}
	}

	return zero, fmt.Errorf("%w: %s", ErrParseFailed, content)
}
