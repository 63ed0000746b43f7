package roster

import (
	"roster-backend/internal/model"
)

// CheckAssignment runs the three assignment constraints for a candidate
// (shift, worker) pair against a snapshot of the worker's availability
// windows and other shifts. Checks run cheapest first and short-circuit
// on the first failure. A nil return means the assignment is allowed.
//
// The snapshot must be read inside the same transaction that will write
// the assignment; the detector itself touches no storage.
func CheckAssignment(shift *model.Shift, worker *model.Worker, windows []model.AvailabilityWindow, otherShifts []model.Shift) error {
	if err := checkSkills(shift, worker); err != nil {
		return err
	}
	if err := checkBlackout(shift, worker, windows); err != nil {
		return err
	}
	return checkDoubleBooking(shift, worker, otherShifts)
}

func checkSkills(shift *model.Shift, worker *model.Worker) error {
	if len(shift.RequiredSkills) == 0 {
		return nil
	}
	held := worker.SkillCodes()
	var missing []string
	for _, code := range shift.RequiredSkills {
		if _, ok := held[code]; !ok {
			missing = append(missing, code)
		}
	}
	if len(missing) > 0 {
		return &MissingSkillsError{WorkerID: worker.ID, Missing: missing}
	}
	return nil
}

// checkBlackout only rejects blackout windows that fully contain the
// shift's interval. A blackout that covers part of the shift does not
// conflict; blackouts are declared at shift granularity.
func checkBlackout(shift *model.Shift, worker *model.Worker, windows []model.AvailabilityWindow) error {
	for i := range windows {
		w := &windows[i]
		if w.Kind == model.KindBlackout && w.Contains(shift.StartAt, shift.EndAt) {
			return &BlackoutConflictError{WorkerID: worker.ID, WindowID: w.ID}
		}
	}
	return nil
}

func checkDoubleBooking(shift *model.Shift, worker *model.Worker, otherShifts []model.Shift) error {
	for i := range otherShifts {
		other := &otherShifts[i]
		if other.ID == shift.ID || other.Status == model.StatusCancelled {
			continue
		}
		if other.OverlapsRange(shift.StartAt, shift.EndAt) {
			return &DoubleBookingError{WorkerID: worker.ID, ConflictingShiftID: other.ID}
		}
	}
	return nil
}
