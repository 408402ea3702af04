package sourcing

import (
	"fmt"

	"marketplace/internal/pkg/errs"
)

// EventType discriminates the kind of procurement event.
type EventType int

const (
	UnknownType EventType = iota
	RFI
	RFQ
	RFP
	ReverseAuction
	DutchAuction
	SealedBid
	Negotiation
	Tender
)

var eventTypeNames = map[EventType]string{
	RFI:            "RFI",
	RFQ:            "RFQ",
	RFP:            "RFP",
	ReverseAuction: "ReverseAuction",
	DutchAuction:   "DutchAuction",
	SealedBid:      "SealedBid",
	Negotiation:    "Negotiation",
	Tender:         "Tender",
}

// EventTypes lists every valid type in declaration order.
func EventTypes() []EventType {
	return []EventType{RFI, RFQ, RFP, ReverseAuction, DutchAuction, SealedBid, Negotiation, Tender}
}

func ParseEventType(name string) (EventType, error) {
	for t, n := range eventTypeNames {
		if n == name {
			return t, nil
		}
	}
	return UnknownType, errs.NewValueIsInvalidErrorWithCause("eventType", fmt.Errorf("unknown event type %q", name))
}

func (t EventType) Validate() error {
	if _, ok := eventTypeNames[t]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("eventType", fmt.Errorf("%d is not a valid event type", t))
	}
	return nil
}

func (t EventType) String() string {
	if n, ok := eventTypeNames[t]; ok {
		return n
	}
	return "Unknown"
}

// Visibility controls who may respond to an event.
type Visibility int

const (
	UnknownVisibility Visibility = iota
	Public
	InviteOnly
)

func ParseVisibility(name string) (Visibility, error) {
	switch name {
	case "Public":
		return Public, nil
	case "InviteOnly":
		return InviteOnly, nil
	}
	return UnknownVisibility, errs.NewValueIsInvalidErrorWithCause("visibility", fmt.Errorf("unknown visibility %q", name))
}

func (v Visibility) Validate() error {
	if v != Public && v != InviteOnly {
		return errs.NewValueIsInvalidErrorWithCause("visibility", fmt.Errorf("%d is not a valid visibility", v))
	}
	return nil
}

func (v Visibility) String() string {
	switch v {
	case Public:
		return "Public"
	case InviteOnly:
		return "InviteOnly"
	case UnknownVisibility:
	}
	return "Unknown"
}

// QualificationTier is the minimum supplier vetting level an event requires.
// Tiers are ordered: a Premium supplier also satisfies Verified.
type QualificationTier int

const (
	UnknownTier QualificationTier = iota
	Basic
	Standard
	Verified
	Premium
)

var tierNames = map[QualificationTier]string{
	Basic:    "Basic",
	Standard: "Standard",
	Verified: "Verified",
	Premium:  "Premium",
}

func ParseQualificationTier(name string) (QualificationTier, error) {
	for t, n := range tierNames {
		if n == name {
			return t, nil
		}
	}
	return UnknownTier, errs.NewValueIsInvalidErrorWithCause("tier", fmt.Errorf("unknown tier %q", name))
}

func (q QualificationTier) Validate() error {
	if _, ok := tierNames[q]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("tier", fmt.Errorf("%d is not a valid tier", q))
	}
	return nil
}

func (q QualificationTier) String() string {
	if n, ok := tierNames[q]; ok {
		return n
	}
	return "Unknown"
}

// Satisfies reports whether a supplier at tier q may take part in an event
// requiring tier required.
func (q QualificationTier) Satisfies(required QualificationTier) bool {
	return q.Validate() == nil && q >= required
}
