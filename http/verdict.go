package http

import "potability/ml"

// Visual states of a rendered outcome.
const (
	StateSuccess = "success"
	StateError   = "error"
	StateInvalid = "invalid"
)

const (
	potableMessage    = "The water is Potable! It is safe for drinking."
	notPotableMessage = "The water is Not Potable! It is unsafe for drinking."
)

// Verdict is the human-readable outcome of one prediction.
type Verdict struct {
	State     string `json:"state"`
	Message   string `json:"message"`
	Celebrate bool   `json:"celebrate"`
}

func VerdictFor(label ml.Label) Verdict {
	if label == ml.Potable {
		return Verdict{State: StateSuccess, Message: potableMessage, Celebrate: true}
	}
	return Verdict{State: StateError, Message: notPotableMessage}
}
