package condition

import "testing"

func testRules() RuleTable {
	return RuleTable{
		{Indicator: "Fe", Direction: "ALTA", Severity: "Crítico", Cause: "Desgaste de camisas o anillos", Action: "Inspección de componentes"},
		{Indicator: "Viscosidad", Direction: "BAJA", Severity: "Precaución", Cause: "Dilución por combustible", Action: "Verificar inyectores"},
		{Indicator: "TBN", Direction: "BAJA", Severity: "Atención", Cause: "Agotamiento de aditivos", Action: "Programar cambio de aceite"},
	}
}

func TestEnrichMatchesRule(t *testing.T) {
	sample := Sample{Equipment: "EX-201", Values: map[string]float64{"Fe": 85}}
	enriched := Enrich(Detect(sample, testParams()), testRules())
	if len(enriched) != 1 {
		t.Fatalf("expected 1 enriched violation, got %d", len(enriched))
	}
	ev := enriched[0]
	if !ev.SeverityKnown {
		t.Fatal("expected severity to be known")
	}
	if ev.Severity != "Crítico" || ev.Priority != 3 {
		t.Errorf("expected Crítico/3, got %s/%d", ev.Severity, ev.Priority)
	}
	if ev.Cause == "" || ev.Action == "" {
		t.Error("expected cause and action texts from the matched rule")
	}
	if ev.DisplayIndicator != "Hierro (Fe) (Alta)" {
		t.Errorf("unexpected display indicator %q", ev.DisplayIndicator)
	}
}

func TestEnrichUnknownRuleIsDistinctState(t *testing.T) {
	sample := Sample{Equipment: "EX-201", Values: map[string]float64{"Fe": 85}}
	enriched := Enrich(Detect(sample, testParams()), RuleTable{})
	if len(enriched) != 1 {
		t.Fatalf("expected 1 enriched violation, got %d", len(enriched))
	}
	ev := enriched[0]
	if ev.SeverityKnown {
		t.Fatal("expected severity to be unknown with an empty rule table")
	}
	if ev.Severity != SeverityUnknownLabel {
		t.Errorf("expected %q, got %q", SeverityUnknownLabel, ev.Severity)
	}
	if ev.Priority != 0 {
		t.Errorf("unknown severity must rank 0, got %d", ev.Priority)
	}
}

func TestEnrichDirectionCaseInsensitive(t *testing.T) {
	rules := RuleTable{{Indicator: "Fe", Direction: "alta", Severity: "Crítico"}}
	sample := Sample{Equipment: "EX-201", Values: map[string]float64{"Fe": 85}}
	enriched := Enrich(Detect(sample, testParams()), rules)
	if len(enriched) != 1 || !enriched[0].SeverityKnown {
		t.Fatal("lowercase rule direction must still match")
	}
}

func TestRuleTableFirstMatchWins(t *testing.T) {
	rules := RuleTable{
		{Indicator: "Fe", Direction: "ALTA", Severity: "Atención"},
		{Indicator: "Fe", Direction: "ALTA", Severity: "Crítico"},
	}
	rule, ok := rules.Lookup("Fe", DirectionHigh)
	if !ok {
		t.Fatal("expected a match")
	}
	if rule.Severity != "Atención" {
		t.Errorf("expected the first duplicate to win, got %q", rule.Severity)
	}
}

func TestComputeRowMetrics(t *testing.T) {
	sample := Sample{
		Equipment: "EX-201",
		Values:    map[string]float64{"Viscosidad": 11, "Fe": 85, "TBN": 4},
	}
	metrics := ComputeRowMetrics(sample, testParams(), testRules())
	if metrics.Count != 3 {
		t.Fatalf("expected 3 violations, got %d", metrics.Count)
	}
	if metrics.MaxPriority != 3 {
		t.Errorf("expected max priority 3, got %d", metrics.MaxPriority)
	}

	again := ComputeRowMetrics(sample, testParams(), testRules())
	if again.MaxPriority != metrics.MaxPriority || again.Count != metrics.Count {
		t.Error("recomputation over the same sample must yield identical metrics")
	}
}

func TestComputeRowMetricsHealthy(t *testing.T) {
	sample := Sample{Equipment: "EX-201", Values: map[string]float64{"Viscosidad": 15, "Fe": 30, "TBN": 8}}
	metrics := ComputeRowMetrics(sample, testParams(), testRules())
	if metrics.Count != 0 || metrics.MaxPriority != 0 {
		t.Fatalf("expected healthy metrics, got count=%d max=%d", metrics.Count, metrics.MaxPriority)
	}
}
