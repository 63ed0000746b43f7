package solver

import (
	"context"

	log "github.com/sirupsen/logrus"

	"roster-backend/internal/model"
	"roster-backend/internal/store"
)

// ApplyFailure records one proposal the store rejected.
type ApplyFailure struct {
	ShiftID  string `json:"shiftId"`
	WorkerID string `json:"workerId"`
	Reason   string `json:"reason"`
}

// ApplyReport tallies the outcome of replaying a solver response.
type ApplyReport struct {
	Applied  int            `json:"applied"`
	Failed   int            `json:"failed"`
	Failures []ApplyFailure `json:"failures,omitempty"`
}

// Apply replays each solver proposal through the regular assignment
// transaction with source=solver. Each assignment is independently
// atomic; a rejected proposal is tallied and the rest continue. There
// is deliberately no all-or-nothing guarantee across the batch.
func Apply(ctx context.Context, st store.Store, resp *OptimizeResponse) ApplyReport {
	var report ApplyReport

	if !resp.Status.Applicable() {
		log.Printf("not applying solver response with status %s", resp.Status)
		return report
	}

	for _, proposal := range resp.Assignments {
		if _, err := st.AssignShift(ctx, proposal.ShiftID, proposal.EmployeeID, model.SourceSolver); err != nil {
			log.Printf("failed to apply assignment for shift %s: %v", proposal.ShiftID, err)
			report.Failed++
			report.Failures = append(report.Failures, ApplyFailure{
				ShiftID:  proposal.ShiftID,
				WorkerID: proposal.EmployeeID,
				Reason:   err.Error(),
			})
			continue
		}
		report.Applied++
	}

	log.Printf("applied solver result: %d successful, %d failed", report.Applied, report.Failed)
	return report
}
