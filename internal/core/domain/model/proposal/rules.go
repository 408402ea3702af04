package proposal

import (
	"strings"
	"time"

	"marketplace/internal/core/domain/model/lifecycle"
)

// Subject is the input of the submit rules.
type Subject struct {
	Proposal *Proposal
	Now      time.Time
}

var (
	PricePositive = lifecycle.NewRule("price-positive", func(s Subject) (bool, string) {
		return s.Proposal.price.IsPositive(), "price must be greater than zero"
	})

	DeliveryDaysPositive = lifecycle.NewRule("delivery-days-positive", func(s Subject) (bool, string) {
		return s.Proposal.deliveryDays > 0, "delivery time must be at least one day"
	})

	CoverLetterRequired = lifecycle.NewRule("cover-letter-required", func(s Subject) (bool, string) {
		return strings.TrimSpace(s.Proposal.coverLetter) != "", "cover letter must not be empty"
	})
)

var submitChain = lifecycle.NewChain(PricePositive, DeliveryDaysPositive, CoverLetterRequired)
