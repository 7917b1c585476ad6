package application

const (
	BotReviewedComment  = "Application automatically reviewed by bot system"
	BotInterviewComment = "Interview scheduled automatically"
	BotOfferComment     = "Interview passed - Offer extended automatically"
	BotRejectedComment  = "Interview did not meet requirements"
)

type AutomatedStep struct {
	From    Status
	To      Status
	Comment string
}

// NextAutomatedStep returns the single step the bot takes from current.
// offer is consulted exactly once, and only from Interview. ok is false for
// every status the bot does not advance.
func NextAutomatedStep(current Status, offer func() bool) (step AutomatedStep, ok bool) {
	switch current {
	case StatusApplied:
		return AutomatedStep{From: current, To: StatusReviewed, Comment: BotReviewedComment}, true
	case StatusReviewed:
		return AutomatedStep{From: current, To: StatusInterview, Comment: BotInterviewComment}, true
	case StatusInterview:
		if offer != nil && offer() {
			return AutomatedStep{From: current, To: StatusOffer, Comment: BotOfferComment}, true
		}
		return AutomatedStep{From: current, To: StatusRejected, Comment: BotRejectedComment}, true
	default:
		return AutomatedStep{}, false
	}
}
