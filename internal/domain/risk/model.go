package risk

// Alert categories.
const (
	CategorySafety      = "Safety"
	CategoryDataQuality = "Data Quality"
)

// HeartRateCeiling is the physiological plausibility bound. Heart rates
// strictly above it raise a safety alert.
const HeartRateCeiling = 300

// Alert is one explainable finding against a canonical record. Every alert
// carries the reasoning behind it and the action the site should take, so a
// reviewer never has to guess why it fired.
type Alert struct {
	SubjectID         string `json:"USUBJID"`
	Category          string `json:"risk_category"`
	Issue             string `json:"issue"`
	Reasoning         string `json:"reasoning"`
	RecommendedAction string `json:"recommended_action"`
}
