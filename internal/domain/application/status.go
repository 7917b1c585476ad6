package application

import (
	"errors"
	"fmt"
	"strings"
)

type Status string

const (
	StatusApplied   Status = "Applied"
	StatusReviewed  Status = "Reviewed"
	StatusInterview Status = "Interview"
	StatusOffer     Status = "Offer"
	StatusRejected  Status = "Rejected"
)

var ErrInvalidStatus = errors.New("invalid status")

func AllStatuses() []Status {
	return []Status{StatusApplied, StatusReviewed, StatusInterview, StatusOffer, StatusRejected}
}

func TerminalStatuses() []Status {
	return []Status{StatusOffer, StatusRejected}
}

// ParseStatus accepts the canonical spelling only; surrounding whitespace is ignored.
func ParseStatus(raw string) (Status, error) {
	s := Status(strings.TrimSpace(raw))
	if !s.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidStatus, raw)
	}
	return s, nil
}

func (s Status) Valid() bool {
	switch s {
	case StatusApplied, StatusReviewed, StatusInterview, StatusOffer, StatusRejected:
		return true
	default:
		return false
	}
}

func (s Status) Terminal() bool {
	return s == StatusOffer || s == StatusRejected
}

func (s Status) String() string {
	return string(s)
}
