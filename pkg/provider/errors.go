package provider

import (
	"errors"
	"fmt"
	"strings"
)

// Common errors
var (
	ErrNotSupported       = errors.New("feature not supported by this provider")
	ErrNotFound           = errors.New("resource not found")
	ErrParse              = errors.New("unexpected response format")
	ErrUnknownClusterType = errors.New("cluster type not specified")
	ErrNotConfigured      = errors.New("provider not configured")
)

// ErrorKind classifies a failure of the command layer
type ErrorKind int

const (
	KindExecutionFailed ErrorKind = iota
	KindNotFound
	KindParseFailed
)

func (k ErrorKind) String() string {
	switch k {
	case KindNotFound:
		return "NotFound"
	case KindParseFailed:
		return "ParseFailed"
	default:
		return "ExecutionFailed"
	}
}

// CommandError is returned when the external tool exits unsuccessfully.
// Message is the tool's own output, unaltered.
type CommandError struct {
	Args     []string
	ExitCode int
	Message  string
	Kind     ErrorKind
}

func (e *CommandError) Error() string {
	return e.Message
}

// Is reports NotFound command errors as ErrNotFound
func (e *CommandError) Is(target error) bool {
	return target == ErrNotFound && e.Kind == KindNotFound
}

// ParseError is returned when response text cannot be turned into a record
type ParseError struct {
	Resource string
	Reason   string
	Raw      string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse %s response: %s", e.Resource, e.Reason)
}

func (e *ParseError) Is(target error) bool {
	return target == ErrParse
}

// OrphanError is returned when a create command succeeded but its result
// could not be read back. The resource exists and is not rolled back.
type OrphanError struct {
	Resource string
	ID       string // empty when the command output carried no id
	Err      error
}

func (e *OrphanError) Error() string {
	if e.ID == "" {
		return fmt.Sprintf("%s created but its id could not be read: %v", e.Resource, e.Err)
	}
	return fmt.Sprintf("%s %s created but could not be read back: %v", e.Resource, e.ID, e.Err)
}

func (e *OrphanError) Unwrap() error {
	return e.Err
}

// KindOf returns the classification of err
func KindOf(err error) ErrorKind {
	var cmdErr *CommandError
	switch {
	case errors.As(err, &cmdErr):
		return cmdErr.Kind
	case errors.Is(err, ErrNotFound):
		return KindNotFound
	case errors.Is(err, ErrParse):
		return KindParseFailed
	default:
		return KindExecutionFailed
	}
}

// Classifier maps a raw tool message to an ErrorKind by marker substrings.
// Markers are bound to the resource word of the command ("cluster",
// "image"), so a failed `image show` is only NotFound on an image marker.
type Classifier struct {
	byResource map[string][]string
	shared     []string
}

// DefaultNotFoundMarkers are the markers printed by the cluster tooling,
// keyed by the resource word of the command that prints them
var DefaultNotFoundMarkers = map[string][]string{
	"cluster": {"ClusterNotFound"},
	"image":   {"ImageNotFound"},
	"vm":      {"VmNotFound"},
}

// NewClassifier returns a Classifier, falling back to the default markers.
// A marker written "resource=marker" only applies to that resource; a bare
// marker applies to every resource.
func NewClassifier(markers ...string) Classifier {
	c := Classifier{byResource: map[string][]string{}}
	if len(markers) == 0 {
		for res, ms := range DefaultNotFoundMarkers {
			c.byResource[res] = append([]string(nil), ms...)
		}
		return c
	}
	for _, m := range markers {
		res, marker, bound := strings.Cut(m, "=")
		if !bound {
			c.shared = append(c.shared, strings.TrimSpace(m))
			continue
		}
		res, marker = strings.TrimSpace(res), strings.TrimSpace(marker)
		c.byResource[res] = append(c.byResource[res], marker)
	}
	return c
}

// Classify returns KindNotFound when message carries a not-found marker of
// resource. A resource with no bound markers is matched against all of them.
func (c Classifier) Classify(resource, message string) ErrorKind {
	if markers, ok := c.byResource[resource]; ok {
		return c.match(message, markers)
	}
	for _, markers := range c.byResource {
		if c.match(message, markers) == KindNotFound {
			return KindNotFound
		}
	}
	return c.match(message, nil)
}

func (c Classifier) match(message string, markers []string) ErrorKind {
	for _, set := range [][]string{markers, c.shared} {
		for _, m := range set {
			if m != "" && strings.Contains(message, m) {
				return KindNotFound
			}
		}
	}
	return KindExecutionFailed
}
