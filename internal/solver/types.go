package solver

// OptimizeStatus is the solver's verdict on a request.
type OptimizeStatus string

const (
	StatusOptimal    OptimizeStatus = "OPTIMAL"
	StatusFeasible   OptimizeStatus = "FEASIBLE"
	StatusInfeasible OptimizeStatus = "INFEASIBLE"
	StatusTimeout    OptimizeStatus = "TIMEOUT"
	StatusError      OptimizeStatus = "ERROR"
)

// Applicable reports whether assignments from a response with this
// status may be replayed into the store.
func (s OptimizeStatus) Applicable() bool {
	return s == StatusOptimal || s == StatusFeasible
}

// Window is one availability entry in the solver payload.
type Window struct {
	Start string `json:"start"` // RFC3339
	End   string `json:"end"`   // RFC3339
	Type  string `json:"type"`  // PREFERRED, NEUTRAL, AVOIDED, BLACKOUT
}

// Employee describes one candidate worker to the solver.
type Employee struct {
	ID           string             `json:"id"`
	Skills       []string           `json:"skills"`
	Availability []Window           `json:"availability"`
	Preferences  map[string]float64 `json:"preferences"`
}

// OpenShift describes one unfilled shift to the solver.
type OpenShift struct {
	ID             string   `json:"id"`
	Day            string   `json:"day"` // YYYY-MM-DD
	ShiftCode      string   `json:"shift_code"`
	RequiredSkills []string `json:"required_skills"`
	DurationHours  float64  `json:"duration_hours"`
	StartTime      string   `json:"start_time,omitempty"`
	EndTime        string   `json:"end_time,omitempty"`
}

// Weights score the availability kinds during optimization.
type Weights struct {
	Preferred int `json:"preferred"`
	Neutral   int `json:"neutral"`
	Avoided   int `json:"avoided"`
}

// Settings tune the solver run.
type Settings struct {
	UnassignedPenalty int     `json:"unassigned_penalty"`
	MaxShiftsPerDay   int     `json:"max_shifts_per_day"`
	TimeoutSeconds    int     `json:"timeout_seconds"`
	Weights           Weights `json:"weights"`
}

// OptimizeRequest is the full payload sent to the solver service.
type OptimizeRequest struct {
	TeamID     string      `json:"team_id"`
	DateFrom   string      `json:"date_from"`
	DateTo     string      `json:"date_to"`
	Employees  []Employee  `json:"employees"`
	OpenShifts []OpenShift `json:"open_shifts"`
	Settings   Settings    `json:"settings"`
}

// Assignment is one (shift, worker) proposal from the solver.
type Assignment struct {
	ShiftID    string `json:"shift_id"`
	EmployeeID string `json:"employee_id"`
	Start      string `json:"start,omitempty"`
	End        string `json:"end,omitempty"`
	Notes      string `json:"notes,omitempty"`
}

// Diagnostics carries the solver's explanation of its result.
type Diagnostics struct {
	Relaxed        bool     `json:"relaxed"`
	UnsatCore      []string `json:"unsat_core,omitempty"`
	Reason         string   `json:"reason,omitempty"`
	SolveTimeMs    int      `json:"solve_time_ms,omitempty"`
	TotalShifts    int      `json:"total_shifts,omitempty"`
	AssignedShifts int      `json:"assigned_shifts,omitempty"`
	UnfilledShifts int      `json:"unfilled_shifts,omitempty"`
}

// Suggestion is solver advice on how to make an infeasible problem
// solvable.
type Suggestion struct {
	Type        string `json:"type"`
	Description string `json:"description"`
	Impact      string `json:"impact,omitempty"`
}

// OptimizeResponse is the solver's reply.
type OptimizeResponse struct {
	Status      OptimizeStatus `json:"status"`
	Assignments []Assignment   `json:"assignments"`
	Fitness     *float64       `json:"fitness"`
	Diagnostics Diagnostics    `json:"diagnostics"`
	Suggestions []Suggestion   `json:"suggestions,omitempty"`
}

// HealthResponse reports the solver service's liveness.
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}
