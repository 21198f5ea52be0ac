package trace

// TraceLevel controls the verbosity of decision tracing.
type TraceLevel string

const (
	// TraceLevelNone disables tracing.
	TraceLevelNone TraceLevel = "none"
	// TraceLevelDecisions captures every picking and vehicle assignment decision.
	TraceLevelDecisions TraceLevel = "decisions"
)

// validTraceLevels maps accepted trace level strings.
var validTraceLevels = map[TraceLevel]bool{
	TraceLevelNone:      true,
	TraceLevelDecisions: true,
	"":                  true, // empty defaults to none
}

// IsValidTraceLevel returns true if the given level string is a recognized trace level.
func IsValidTraceLevel(level string) bool {
	return validTraceLevels[TraceLevel(level)]
}

// TraceConfig controls trace collection behavior.
type TraceConfig struct {
	Level TraceLevel
}

// Enabled reports whether decisions should be recorded.
func (c TraceConfig) Enabled() bool {
	return c.Level == TraceLevelDecisions
}

// SimulationTrace collects decision records during a run.
type SimulationTrace struct {
	Config      TraceConfig        `json:"-"`
	Pickings    []PickingRecord    `json:"pickings"`
	Assignments []AssignmentRecord `json:"assignments"`
}

// NewSimulationTrace creates a SimulationTrace ready for recording.
func NewSimulationTrace(config TraceConfig) *SimulationTrace {
	return &SimulationTrace{
		Config:      config,
		Pickings:    make([]PickingRecord, 0),
		Assignments: make([]AssignmentRecord, 0),
	}
}

// RecordPicking appends a picking decision record.
func (st *SimulationTrace) RecordPicking(record PickingRecord) {
	st.Pickings = append(st.Pickings, record)
}

// RecordAssignment appends a vehicle assignment record.
func (st *SimulationTrace) RecordAssignment(record AssignmentRecord) {
	st.Assignments = append(st.Assignments, record)
}
