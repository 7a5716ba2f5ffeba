package scoring

import (
	"sort"
	"time"

	"rider-dispatch/internal/apperr"
	"rider-dispatch/internal/domain"
)

// Config stores scoring weights and eligibility thresholds.
type Config struct {
	DistanceWeight    float64
	LoadWeight        float64
	PerformanceWeight float64
	MaxRadiusKm       float64
	LocationFreshness time.Duration
}

// neutralPerformance is used for riders with no offer history, so new
// riders are never starved by a zero performance factor.
const neutralPerformance = 0.5

// Scorer computes suitability scores for riders against a ready order.
// It is pure: every call works on the rider pool snapshot it is given.
type Scorer struct {
	cfg Config
}

// NewScorer creates a Scorer.
func NewScorer(cfg Config) *Scorer {
	if cfg.MaxRadiusKm <= 0 {
		cfg.MaxRadiusKm = 10
	}
	if cfg.LocationFreshness <= 0 {
		cfg.LocationFreshness = 5 * time.Minute
	}
	return &Scorer{cfg: cfg}
}

// Score filters the pool down to eligible riders and returns their scores
// sorted best-first. An empty result is a valid outcome, not an error.
//
// Eligibility is a hard filter: offline riders, riders at capacity, riders
// with stale or invalid locations and riders beyond the dispatch radius are
// excluded entirely, never scored with a penalty.
func (s *Scorer) Score(order domain.Order, pool []domain.Rider, now time.Time) ([]domain.CandidateScore, error) {
	if !order.Dispatchable() {
		return nil, apperr.ErrInvalidOrderState
	}
	if !order.Restaurant.Valid() {
		return nil, apperr.ErrInvalidCoordinates
	}

	byID := make(map[string]domain.Rider, len(pool))
	scores := make([]domain.CandidateScore, 0, len(pool))

	for _, r := range pool {
		if !s.eligible(r, now) {
			continue
		}
		distKm := domain.HaversineKm(r.Location, order.Restaurant)
		if distKm > s.cfg.MaxRadiusKm {
			continue
		}

		sc := domain.CandidateScore{
			RiderID:           r.ID,
			OrderID:           order.ID,
			DistanceKm:        distKm,
			DistanceFactor:    1 - distKm/s.cfg.MaxRadiusKm,
			LoadFactor:        1 - float64(r.ActiveOrders)/float64(r.Capacity),
			PerformanceFactor: performance(r),
		}
		sc.Score = s.cfg.DistanceWeight*sc.DistanceFactor +
			s.cfg.LoadWeight*sc.LoadFactor +
			s.cfg.PerformanceWeight*sc.PerformanceFactor

		byID[r.ID] = r
		scores = append(scores, sc)
	}

	sort.SliceStable(scores, func(i, j int) bool {
		a, b := scores[i], scores[j]
		if a.Score != b.Score {
			return a.Score > b.Score
		}
		ra, rb := byID[a.RiderID], byID[b.RiderID]
		// fewer active orders first, then the rider who has waited longest
		if ra.ActiveOrders != rb.ActiveOrders {
			return ra.ActiveOrders < rb.ActiveOrders
		}
		return ra.LastAssignedAt.Before(rb.LastAssignedAt)
	})

	return scores, nil
}

func (s *Scorer) eligible(r domain.Rider, now time.Time) bool {
	return r.Online &&
		r.SpareCapacity() &&
		r.Location.Valid() &&
		r.LocationFresh(now, s.cfg.LocationFreshness)
}

func performance(r domain.Rider) float64 {
	if !r.HasHistory {
		return neutralPerformance
	}
	return 0.5*r.AcceptanceRate + 0.5*r.CompletionRate
}
