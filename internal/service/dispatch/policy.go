package dispatch

import "rider-dispatch/internal/domain"

// BuildOfferQueue turns scored candidates into the ordered offer queue for
// one dispatch cycle. Scores arrive best-first from the scorer; the policy
// applies the hard business filters on top:
//
//   - a rider who already rejected this order within the cycle is never
//     re-offered it;
//   - duplicates are dropped, first occurrence wins;
//   - the queue is capped at maxLen to bound worst-case dispatch latency.
//
// An empty result tells the caller to go straight to manual fallback.
func BuildOfferQueue(scores []domain.CandidateScore, rejected map[string]struct{}, maxLen int) []domain.CandidateScore {
	if maxLen <= 0 {
		maxLen = 10
	}

	queue := make([]domain.CandidateScore, 0, min(len(scores), maxLen))
	seen := make(map[string]struct{}, len(scores))

	for _, sc := range scores {
		if len(queue) == maxLen {
			break
		}
		if _, ok := rejected[sc.RiderID]; ok {
			continue
		}
		if _, ok := seen[sc.RiderID]; ok {
			continue
		}
		seen[sc.RiderID] = struct{}{}
		queue = append(queue, sc)
	}
	return queue
}
