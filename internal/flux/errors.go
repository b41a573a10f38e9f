package flux

import (
	"errors"
	"strings"

	"github.com/agnivade/levenshtein"
)

// Sentinel errors for the state core.
var (
	// ErrUnknownAction is returned when a reducer receives a tag it does not handle.
	ErrUnknownAction = errors.New("unknown action")

	// ErrUnsupportedAction is returned when a combinator receives a tag outside its own set.
	ErrUnsupportedAction = errors.New("action not supported")

	// ErrPublishInProgress is returned when Publish is called while another
	// publish on the same store is still reducing or notifying.
	ErrPublishInProgress = errors.New("publish already in progress")
)

// maxSuggestDistance bounds how far a tag may be from a known one to be suggested.
const maxSuggestDistance = 3

// UnknownActionError reports an unhandled tag together with the tags the
// reducer does handle.
type UnknownActionError struct {
	// Type is the tag that was not recognized.
	Type string

	// Known lists the tags the reducer handles.
	Known []string
}

// UnknownAction returns an error for tag; known is used for suggestions.
func UnknownAction(tag string, known ...string) error {
	return &UnknownActionError{Type: tag, Known: known}
}

// Error implements the error interface.
func (e *UnknownActionError) Error() string {
	msg := "unknown action " + quote(e.Type)
	if s := e.Suggestion(); s != "" {
		msg += ", did you mean " + quote(s) + "?"
	}
	return msg
}

// Suggestion returns the known tag closest to Type, or "" if none is close.
func (e *UnknownActionError) Suggestion() string {
	best, bestDist := "", maxSuggestDistance+1
	for _, k := range e.Known {
		d := levenshtein.ComputeDistance(strings.ToLower(e.Type), strings.ToLower(k))
		if d < bestDist {
			best, bestDist = k, d
		}
	}
	if best == e.Type {
		return ""
	}
	return best
}

// Is allows errors.Is to match UnknownActionError with ErrUnknownAction.
func (e *UnknownActionError) Is(target error) bool {
	return target == ErrUnknownAction
}

// UnsupportedActionError reports a tag a combinator does not dispatch.
type UnsupportedActionError struct {
	Type string
}

// UnsupportedAction returns an error for tag.
func UnsupportedAction(tag string) error {
	return &UnsupportedActionError{Type: tag}
}

// Error implements the error interface.
func (e *UnsupportedActionError) Error() string {
	return "action not supported: " + quote(e.Type)
}

// Is allows errors.Is to match UnsupportedActionError with ErrUnsupportedAction.
func (e *UnsupportedActionError) Is(target error) bool {
	return target == ErrUnsupportedAction
}

func quote(s string) string {
	return "\"" + s + "\""
}
