// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package engine

import (
	"errors"

	"github.com/danielhkuo/livepoll/tally"
)

var (
	ErrUnknownPoll     = errors.New("poll not found")
	ErrForbidden       = errors.New("only the poll owner can do this")
	ErrUnauthenticated = errors.New("authentication required")
)

// Kind groups errors by how a caller should react to them
type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindConflict
	KindAuthorization
	KindNotFound
	KindUnauthenticated
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindConflict:
		return "conflict"
	case KindAuthorization:
		return "authorization"
	case KindNotFound:
		return "not_found"
	case KindUnauthenticated:
		return "unauthenticated"
	default:
		return "internal"
	}
}

// KindOf classifies err. Anything unrecognized is internal.
func KindOf(err error) Kind {
	switch {
	case errors.Is(err, tally.ErrUnknownOption):
		return KindValidation
	case errors.Is(err, tally.ErrAlreadyVoted),
		errors.Is(err, tally.ErrPollClosed),
		errors.Is(err, tally.ErrAlreadyClosed):
		return KindConflict
	case errors.Is(err, ErrForbidden):
		return KindAuthorization
	case errors.Is(err, ErrUnknownPoll):
		return KindNotFound
	case errors.Is(err, ErrUnauthenticated):
		return KindUnauthenticated
	default:
		return KindInternal
	}
}
