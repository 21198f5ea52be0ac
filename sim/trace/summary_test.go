package trace

import "testing"

func TestSummarize_EmptyTrace_ZeroValues(t *testing.T) {
	// GIVEN an empty trace
	st := NewSimulationTrace(TraceConfig{Level: TraceLevelDecisions})

	// WHEN summarized
	summary := Summarize(st)

	// THEN all counts are zero
	if summary.TotalDecisions != 0 {
		t.Errorf("expected 0 total decisions, got %d", summary.TotalDecisions)
	}
	if summary.AdmittedCount != 0 || summary.DeferredCount != 0 {
		t.Error("expected 0 admitted and deferred")
	}
	if summary.UniqueVehicles != 0 {
		t.Errorf("expected 0 unique vehicles, got %d", summary.UniqueVehicles)
	}
	if summary.MeanRegret != 0 || summary.MaxRegret != 0 {
		t.Error("expected 0 regret values")
	}
	if len(summary.VehicleDistribution) != 0 {
		t.Error("expected empty vehicle distribution")
	}
}

func TestSummarize_NilTrace_ZeroValues(t *testing.T) {
	summary := Summarize(nil)
	if summary.TotalDecisions != 0 || summary.VehicleDistribution == nil {
		t.Errorf("expected zero summary with empty map, got %+v", summary)
	}
}

func TestSummarize_PopulatedTrace_CorrectCounts(t *testing.T) {
	// GIVEN a trace with mixed picking and assignment records
	st := NewSimulationTrace(TraceConfig{Level: TraceLevelDecisions})
	st.RecordPicking(PickingRecord{OrderID: "o1", Admitted: true})
	st.RecordPicking(PickingRecord{OrderID: "o2", Admitted: false, Reason: "capacity exceeded"})
	st.RecordPicking(PickingRecord{OrderID: "o3", Admitted: true})
	st.RecordAssignment(AssignmentRecord{CustomerID: "c1", ChosenVehicle: "v1", Regret: 10})
	st.RecordAssignment(AssignmentRecord{CustomerID: "c2", ChosenVehicle: "v2", Regret: 30})
	st.RecordAssignment(AssignmentRecord{CustomerID: "c3"})

	// WHEN summarized
	summary := Summarize(st)

	// THEN counts match
	if summary.TotalDecisions != 3 {
		t.Errorf("expected 3 total decisions, got %d", summary.TotalDecisions)
	}
	if summary.AdmittedCount != 2 {
		t.Errorf("expected 2 admitted, got %d", summary.AdmittedCount)
	}
	if summary.DeferredCount != 1 {
		t.Errorf("expected 1 deferred, got %d", summary.DeferredCount)
	}
	if summary.UniqueVehicles != 2 {
		t.Errorf("expected 2 unique vehicles, got %d", summary.UniqueVehicles)
	}
	if summary.Unassigned != 1 {
		t.Errorf("expected 1 unassigned group, got %d", summary.Unassigned)
	}
}

func TestSummarize_RegretStatistics_CorrectMeanAndMax(t *testing.T) {
	// GIVEN assignment records with known regrets and one unassigned group
	st := NewSimulationTrace(TraceConfig{Level: TraceLevelDecisions})
	st.RecordAssignment(AssignmentRecord{CustomerID: "c1", ChosenVehicle: "v1", Regret: 10})
	st.RecordAssignment(AssignmentRecord{CustomerID: "c2", ChosenVehicle: "v1", Regret: 50})
	st.RecordAssignment(AssignmentRecord{CustomerID: "c3", ChosenVehicle: "v2", Regret: 20})
	st.RecordAssignment(AssignmentRecord{CustomerID: "c4"})

	// WHEN summarized
	summary := Summarize(st)

	// THEN mean regret = (10 + 50 + 20) / 3, the unassigned group excluded
	expectedMean := 80.0 / 3.0
	if summary.MeanRegret < expectedMean-0.001 || summary.MeanRegret > expectedMean+0.001 {
		t.Errorf("expected mean regret ~%.4f, got %.4f", expectedMean, summary.MeanRegret)
	}

	// THEN max regret = 50
	if summary.MaxRegret != 50 {
		t.Errorf("expected max regret 50, got %d", summary.MaxRegret)
	}
}

func TestSummarize_VehicleDistribution_CountsPerVehicle(t *testing.T) {
	// GIVEN the same vehicle chosen several times
	st := NewSimulationTrace(TraceConfig{Level: TraceLevelDecisions})
	st.RecordAssignment(AssignmentRecord{CustomerID: "c1", ChosenVehicle: "VH04"})
	st.RecordAssignment(AssignmentRecord{CustomerID: "c2", ChosenVehicle: "VH04"})
	st.RecordAssignment(AssignmentRecord{CustomerID: "c3", ChosenVehicle: "VH02"})

	// WHEN summarized
	summary := Summarize(st)

	// THEN vehicle distribution reflects counts
	if summary.VehicleDistribution["VH04"] != 2 {
		t.Errorf("expected VH04 count 2, got %d", summary.VehicleDistribution["VH04"])
	}
	if summary.VehicleDistribution["VH02"] != 1 {
		t.Errorf("expected VH02 count 1, got %d", summary.VehicleDistribution["VH02"])
	}
}
