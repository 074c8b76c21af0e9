package domain

import "errors"

var (
	// A leg starts or ends at a coordinate the street map does not know.
	ErrInvalidCoordinate = errors.New("one or more depot/delivery coordinates are invalid")
	// The search exhausted the reachable graph without reaching the target.
	ErrNoRouteFound = errors.New("no route can be found to deliver all items")
	ErrUnspecified  = errors.New("an unknown error has occurred")

	// A manifest source has no manifest with the requested name.
	ErrManifestNotFound = errors.New("manifest not found")
)

type FailureKind int

const (
	FailureNone FailureKind = iota
	FailureInvalidCoordinate
	FailureNoRoute
	FailureUnspecified
)

func (k FailureKind) String() string {
	switch k {
	case FailureNone:
		return "none"
	case FailureInvalidCoordinate:
		return "InvalidCoordinate"
	case FailureNoRoute:
		return "NoRouteFound"
	default:
		return "Unspecified"
	}
}

// KindOf classifies an error returned by route search or planning.
func KindOf(err error) FailureKind {
	switch {
	case err == nil:
		return FailureNone
	case errors.Is(err, ErrInvalidCoordinate):
		return FailureInvalidCoordinate
	case errors.Is(err, ErrNoRouteFound):
		return FailureNoRoute
	default:
		return FailureUnspecified
	}
}
