package events

import (
	"regexp"
	"strings"
)

var (
	examPattern       = regexp.MustCompile(`(?i)\b(exam|test|quiz|final)`)
	assignmentPattern = regexp.MustCompile(`(?i)\b(assignment|due|submit|submission|paper|essay)`)
	duePattern        = regexp.MustCompile(`(?i)\bdue\b`)
	discussPattern    = regexp.MustCompile(`(?i)discuss`)
	pageRefPattern    = regexp.MustCompile(`(?i)(\bpp?\.\s*\d|\bchapters?\b|\bpages?\b)`)
)

// Classify infers an event type from its title and description.
// Rules are checked in order and the first match wins:
//
//  1. exam keywords in title or description
//  2. assignment keywords in the title, or "due" in the description
//  3. "discuss" in the title
//  4. a page or chapter reference in the description
//  5. "discuss" in the description
//  6. otherwise class
//
// A discussion of assigned pages ("Discuss Chapter 4, pp. 50-65") is
// classified as reading because the page reference is the actionable part.
func Classify(title, description string) Type {
	switch {
	case examPattern.MatchString(title) || examPattern.MatchString(description):
		return TypeExam
	case assignmentPattern.MatchString(title) || duePattern.MatchString(description):
		return TypeAssignment
	case discussPattern.MatchString(title):
		return TypeDiscussion
	case pageRefPattern.MatchString(description):
		return TypeReading
	case discussPattern.MatchString(description):
		return TypeDiscussion
	default:
		return TypeClass
	}
}

func resolveType(supplied, title, description string) Type {
	if t, ok := ParseType(supplied); ok {
		return t
	}
	return Classify(title, strings.TrimSpace(description))
}
