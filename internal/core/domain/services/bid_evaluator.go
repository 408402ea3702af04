package services

import (
	"errors"
	"fmt"
	"slices"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/sourcing"
	"marketplace/internal/pkg/errs"
)

// ErrNoBids is returned when there is nothing to evaluate.
var ErrNoBids = errors.New("no bids to evaluate")

const maxScore = 100

// Bid is a supplier's response to a sourcing event. Quality, delivery and
// service are scores between 0 and 100 assigned by the buyer.
type Bid struct {
	SupplierID kernel.UUID
	Price      kernel.Money
	Quality    int
	Delivery   int
	Service    int
}

// ScoredBid is a Bid with its weighted score.
type ScoredBid struct {
	Bid
	PriceScore float64
	Score      float64
}

// BidEvaluator ranks bids with the evaluation weights of a policy entry.
//
// The cheapest bid gets a price score of 100; every other bid scores
// cheapest/price*100. The final score is the weighted average of the four
// criteria.
type BidEvaluator struct{}

func NewBidEvaluator() BidEvaluator {
	return BidEvaluator{}
}

// Rank scores every bid and orders them best first. Ties keep input order.
// All bids must use the same currency and have a positive price.
func (BidEvaluator) Rank(weights sourcing.EvaluationWeights, bids []Bid) ([]ScoredBid, error) {
	if err := weights.Validate(); err != nil {
		return nil, err
	}
	if len(bids) == 0 {
		return nil, ErrNoBids
	}

	cheapest := bids[0].Price
	for i, b := range bids {
		if err := validateBid(i, b); err != nil {
			return nil, err
		}
		lower, err := cheapest.Exceeds(b.Price)
		if err != nil {
			return nil, fmt.Errorf("bids[%d]: %w", i, err)
		}
		if lower {
			cheapest = b.Price
		}
	}

	scored := make([]ScoredBid, len(bids))
	for i, b := range bids {
		priceScore := float64(cheapest.Amount()) / float64(b.Price.Amount()) * maxScore
		total := float64(weights.Price())*priceScore +
			float64(weights.Quality()*b.Quality) +
			float64(weights.Delivery()*b.Delivery) +
			float64(weights.Service()*b.Service)

		scored[i] = ScoredBid{Bid: b, PriceScore: priceScore, Score: total / maxScore}
	}

	slices.SortStableFunc(scored, func(a, b ScoredBid) int {
		switch {
		case a.Score > b.Score:
			return -1
		case a.Score < b.Score:
			return 1
		}
		return 0
	})

	return scored, nil
}

// Best returns the highest ranked bid.
func (e BidEvaluator) Best(weights sourcing.EvaluationWeights, bids []Bid) (ScoredBid, error) {
	ranked, err := e.Rank(weights, bids)
	if err != nil {
		return ScoredBid{}, err
	}
	return ranked[0], nil
}

func validateBid(i int, b Bid) error {
	param := func(name string) string { return fmt.Sprintf("bids[%d].%s", i, name) }

	if err := b.SupplierID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause(param("supplierId"), err)
	}
	if err := b.Price.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause(param("price"), err)
	}
	if !b.Price.IsPositive() {
		return errs.NewValueIsInvalidError(param("price"))
	}
	for name, score := range map[string]int{"quality": b.Quality, "delivery": b.Delivery, "service": b.Service} {
		if score < 0 || score > maxScore {
			return errs.NewValueIsOutOfRangeError(param(name), score, 0, maxScore)
		}
	}
	return nil
}
