package application

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrTerminalStatus    = errors.New("application is in a terminal status")
	ErrIllegalTransition = errors.New("illegal status transition")
	ErrUnknownActor      = errors.New("unknown actor role")
)

// Mode selects which rule set the engine applies. Manual updates may set any
// known status; automated updates follow the linear pipeline only.
type Mode uint8

const (
	ModeManual Mode = iota + 1
	ModeAutomated
)

type Request struct {
	Current     Status
	Requested   Status
	Actor       Role
	IsTechnical bool
	Mode        Mode
}

// Decision is the engine's verdict. Err is set only when Allowed is false.
type Decision struct {
	Allowed bool
	Reason  string
	Err     error
}

func (d Decision) Error() error {
	if d.Allowed {
		return nil
	}
	if d.Err != nil {
		return fmt.Errorf("%w: %s", d.Err, d.Reason)
	}
	return errors.New(d.Reason)
}

func allow() Decision { return Decision{Allowed: true} }

func deny(err error, format string, args ...any) Decision {
	return Decision{Allowed: false, Reason: fmt.Sprintf(format, args...), Err: err}
}

// Evaluate decides whether Requested may follow Current for the given actor.
func Evaluate(req Request) Decision {
	if !req.Requested.Valid() {
		return deny(ErrInvalidStatus, "unknown status %q", req.Requested)
	}
	if !req.Actor.Valid() {
		return deny(ErrUnknownActor, "role %s cannot change status", req.Actor)
	}

	switch req.Mode {
	case ModeManual:
		return allow()
	case ModeAutomated:
		if req.Current.Terminal() {
			return deny(ErrTerminalStatus, "status %s accepts no further transitions", req.Current)
		}
		if !req.IsTechnical {
			return deny(ErrIllegalTransition, "automated transitions apply to technical applications only")
		}
		for _, next := range automatedNext(req.Current) {
			if next == req.Requested {
				return allow()
			}
		}
		return deny(ErrIllegalTransition, "%s -> %s is not an automated step", req.Current, req.Requested)
	default:
		return deny(ErrIllegalTransition, "unknown transition mode %d", req.Mode)
	}
}

func automatedNext(current Status) []Status {
	switch current {
	case StatusApplied:
		return []Status{StatusReviewed}
	case StatusReviewed:
		return []Status{StatusInterview}
	case StatusInterview:
		return []Status{StatusOffer, StatusRejected}
	default:
		return nil
	}
}

type Transition struct {
	Action  string
	To      Status
	By      Role
	Comment string
	At      time.Time
}

// Apply returns a copy of app moved to t.To with exactly one log entry
// appended, plus one comment when t.Comment is non-empty. app itself is left
// untouched so a failed write never leaves a half-updated value behind.
func Apply(app Application, t Transition) Application {
	at := t.At.UTC()
	old := app.Status

	logComment := t.Comment
	if logComment == "" {
		if t.Action == ActionManualUpdate {
			logComment = fmt.Sprintf("Status manually changed from %s to %s", old, t.To)
		} else {
			logComment = fmt.Sprintf("Status changed from %s to %s", old, t.To)
		}
	}

	next := app
	next.Logs = make([]LogEntry, len(app.Logs), len(app.Logs)+1)
	copy(next.Logs, app.Logs)
	next.Logs = append(next.Logs, LogEntry{
		Action:    t.Action,
		OldStatus: old,
		NewStatus: t.To,
		ByRole:    t.By,
		Timestamp: at,
		Comment:   logComment,
	})

	next.Comments = make([]Comment, len(app.Comments), len(app.Comments)+1)
	copy(next.Comments, app.Comments)
	if t.Comment != "" {
		next.Comments = append(next.Comments, Comment{Text: t.Comment, AuthorRole: t.By, Timestamp: at})
	}

	next.Skills = append([]string(nil), app.Skills...)
	next.Status = t.To
	next.UpdatedAt = at
	return next
}
