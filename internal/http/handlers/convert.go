package handlers

import (
	"rider-dispatch/internal/domain"
	"rider-dispatch/internal/service/analytics"
	"rider-dispatch/internal/service/dispatch"
)

func cycleStatusToResponse(st dispatch.CycleStatus) dispatchOrderResponse {
	return dispatchOrderResponse{
		OrderID:    st.OrderID,
		State:      string(st.State),
		AttemptID:  st.AttemptID,
		RiderID:    st.RiderID,
		OffersMade: st.OffersMade,
	}
}

func assignResultToResponse(res domain.AssignResult) manualAssignResponse {
	return manualAssignResponse{
		OrderID:    res.OrderID,
		RiderID:    res.RiderID,
		AssignedAt: res.AssignedAt,
		Manual:     res.Manual,
		OperatorID: res.OperatorID,
	}
}

func reportToResponse(r analytics.Report) analyticsResponse {
	return analyticsResponse{
		From:                r.From,
		To:                  r.To,
		TotalAssignments:    r.TotalAssignments,
		ManualAssignments:   r.ManualAssignments,
		OffersExtended:      r.OffersExtended,
		ExhaustedCycles:     r.ExhaustedCycles,
		AvgTimeToAcceptSecs: r.AvgTimeToAccept.Seconds(),
		RejectionRate:       r.RejectionRate,
		TimeoutRate:         r.TimeoutRate,
		FallbackRate:        r.FallbackRate,
	}
}
