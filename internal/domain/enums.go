package domain

// SubmissionStatus represents the state of the order submission workflow
type SubmissionStatus string

const (
	SubmissionIdle       SubmissionStatus = "IDLE"
	SubmissionSubmitting SubmissionStatus = "SUBMITTING"
	SubmissionConfirmed  SubmissionStatus = "CONFIRMED"
	SubmissionFailed     SubmissionStatus = "FAILED"
)

// IsValid checks if the submission status is valid
func (s SubmissionStatus) IsValid() bool {
	switch s {
	case SubmissionIdle, SubmissionSubmitting, SubmissionConfirmed, SubmissionFailed:
		return true
	default:
		return false
	}
}

// CanTransitionTo checks if a status transition is valid. A failed
// submission may re-enter SUBMITTING (retry with the preserved cart);
// CONFIRMED is terminal for the session.
func (s SubmissionStatus) CanTransitionTo(newStatus SubmissionStatus) bool {
	switch s {
	case SubmissionIdle:
		return newStatus == SubmissionSubmitting
	case SubmissionSubmitting:
		return newStatus == SubmissionConfirmed || newStatus == SubmissionFailed
	case SubmissionFailed:
		return newStatus == SubmissionSubmitting
	case SubmissionConfirmed:
		return false
	default:
		return false
	}
}

// PromptState represents the state of the suggestion prompt throttle
type PromptState string

const (
	PromptIdle PromptState = "IDLE"
	PromptOpen PromptState = "OPEN"
)
