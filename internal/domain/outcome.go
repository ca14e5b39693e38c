package domain

// OutcomeType is the top level classification of a finished checkout.
type OutcomeType string

const (
	OutcomeSuccess OutcomeType = "success"
	OutcomeFailure OutcomeType = "failure"
)

// Outcome is returned to the client when a subscription was created. Code is
// the "<subscription status>|<payment intent status>" pair it was derived from.
type Outcome struct {
	Type  OutcomeType
	Code  string
	Title string
}

const (
	TitleThanks        = "Thanks!"
	TitlePaymentFailed = "Payment failed"
)
