package domain

import (
	"fmt"
	"strings"
)

// IssueCode classifies input that the permissive parser normalizes silently
type IssueCode string

const (
	IssueDanglingModifier IssueCode = "dangling_modifier"
	IssueDiscardedLabel   IssueCode = "discarded_label"
	IssueEmptySequence    IssueCode = "empty_sequence"
	IssueExtraChords      IssueCode = "extra_chords"
)

// Issue is one diagnostic for a chord sequence
type Issue struct {
	Chord   int // zero-based chord index, -1 for the whole sequence
	Code    IssueCode
	Message string
}

func (i Issue) String() string {
	if i.Chord < 0 {
		return fmt.Sprintf("%s: %s", i.Code, i.Message)
	}
	return fmt.Sprintf("%s (chord %d): %s", i.Code, i.Chord+1, i.Message)
}

// InspectSequence reports what ParseSequence would discard or guess at.
// It never changes how a sequence parses.
func InspectSequence(code string) []Issue {
	tokens := splitSequence(code)
	if len(tokens) == 0 {
		return []Issue{{
			Chord:   -1,
			Code:    IssueEmptySequence,
			Message: "no chords; parses as an unspecified key",
		}}
	}

	var issues []Issue
	if len(tokens) > 2 {
		issues = append(issues, Issue{
			Chord:   -1,
			Code:    IssueExtraChords,
			Message: fmt.Sprintf("%d chords; only the first two are kept, dropped %q", len(tokens), strings.Join(tokens[2:], " ")),
		})
		tokens = tokens[:2]
	}

	for i, token := range tokens {
		issues = append(issues, inspectChord(i, token)...)
	}
	return issues
}

func inspectChord(index int, token string) []Issue {
	var labels []string
	for _, piece := range splitChord(token) {
		if modifierFromPiece(piece) == ModNone {
			labels = append(labels, piece)
		}
	}

	var issues []Issue
	if len(labels) > 1 {
		issues = append(issues, Issue{
			Chord:   index,
			Code:    IssueDiscardedLabel,
			Message: fmt.Sprintf("%q keeps label %q, discarded %q", token, labels[len(labels)-1], strings.Join(labels[:len(labels)-1], "")),
		})
	}
	if n := len(labels); n > 0 {
		last := labels[n-1]
		if last != "+" && strings.HasSuffix(last, "+") {
			issues = append(issues, Issue{
				Chord:   index,
				Code:    IssueDanglingModifier,
				Message: fmt.Sprintf("%q is not a known modifier and becomes the key label", last),
			})
		}
	}
	return issues
}
