package scenario

import (
	"math"

	"github.com/agbru/rootcalc/internal/rootfind"
)

// Advice is the blackjack recommendation for a hand total.
type Advice string

const (
	AdviceHit       Advice = "Consider taking another card"
	AdviceHitAlways Advice = "Definitely take more cards"
	AdviceStand     Advice = "Perfect: stand"
	AdviceBust      Advice = "Over the target: bust"
)

// Risk is the bust risk attached to an Advice.
type Risk string

const (
	RiskNone    Risk = "none"
	RiskVeryLow Risk = "very low"
	RiskLow     Risk = "low"
	RiskMaximum Risk = "maximum"
)

// hitDistanceLimit separates a cautious hit from an unconditional one.
const hitDistanceLimit = 10

// StandTolerance is how close to the target a total must be to count as
// reaching it exactly.
const StandTolerance = 1e-6

// Interpretation reads a numeric root as a blackjack decision.
type Interpretation struct {
	CardsValue float64 `json:"cards"`
	// Needed is the value still to draw, i.e. the root.
	Needed   float64 `json:"needed"`
	Total    float64 `json:"total"`
	Distance float64 `json:"distance"`
	Advice   Advice  `json:"advice"`
	Risk     Risk    `json:"risk"`
}

// Interpret evaluates the hand total CardsValue + root against the target.
func Interpret(p rootfind.Problem, root float64) Interpretation {
	total := p.CardsValue + root
	in := Interpretation{
		CardsValue: p.CardsValue,
		Needed:     root,
		Total:      total,
		Distance:   math.Abs(p.Target - total),
	}
	switch {
	case in.Distance <= StandTolerance:
		in.Advice, in.Risk = AdviceStand, RiskNone
	case total < p.Target && p.Target-total <= hitDistanceLimit:
		in.Advice, in.Risk = AdviceHit, RiskLow
	case total < p.Target:
		in.Advice, in.Risk = AdviceHitAlways, RiskVeryLow
	default:
		in.Advice, in.Risk = AdviceBust, RiskMaximum
	}
	return in
}

// ReadHand interprets the current hand before drawing: the root tells how
// much is missing (positive) or how far the hand is over the target.
func ReadHand(p rootfind.Problem) Interpretation {
	return Interpret(p, 0)
}
