package domain

// CandidateScore is a transient scoring result for one rider against one
// order. Never persisted; the factor breakdown is kept for explainability.
type CandidateScore struct {
	RiderID string
	OrderID string
	Score   float64

	DistanceKm        float64
	DistanceFactor    float64
	LoadFactor        float64
	PerformanceFactor float64
}
