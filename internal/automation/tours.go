package automation

func ptr[T any](v T) *T { return &v }

// DefaultScenario tours one planet and the sun: focus, follow, user override,
// reset, and the guarded edge cases.
func DefaultScenario() *Scenario {
	return &Scenario{
		Name:        "grand-tour",
		Description: "focus a planet, follow it, take over, reset, then visit the sun",
		Steps: []Step{
			{Action: "tick", Ticks: 10, Expect: &Expectation{State: "free", Focused: ptr("")}},
			{Action: "click", Body: "Bumi", Expect: &Expectation{State: "transition_in", Focused: ptr("Bumi")}},
			{Action: "tick", Ticks: 19, Expect: &Expectation{State: "transition_in"}},
			{Action: "tick", Ticks: 1, Expect: &Expectation{State: "following", Distance: ptr(6.5)}},
			{Action: "tick", Ticks: 60, Expect: &Expectation{State: "following", Overrode: ptr(false), Distance: ptr(6.5)}},
			{Action: "drag", DX: 80, DY: 10, Expect: &Expectation{Overrode: ptr(true)}},
			{Action: "tick", Ticks: 30, Expect: &Expectation{State: "following", Focused: ptr("Bumi")}},
			{Action: "zoom", Notches: 2},
			{Action: "tick", Ticks: 5},
			{Action: "click", Body: "Bumi", Expect: &Expectation{State: "transition_out", Focused: ptr("")}},
			{Action: "tick", Ticks: 20, Expect: &Expectation{State: "free", Overrode: ptr(false)}},
			{Action: "click", X: 2, Y: 2, Expect: &Expectation{State: "free", Focused: ptr("")}},
			{Action: "resize", Width: 0, Height: 0},
			{Action: "click", Body: "Matahari", Expect: &Expectation{State: "transition_in", Focused: ptr("Matahari")}},
			{Action: "tick", Ticks: 20, Expect: &Expectation{State: "following", Distance: ptr(25.0)}},
			{Action: "click", Body: "Matahari", Expect: &Expectation{State: "transition_out"}},
			{Action: "tick", Ticks: 20, Expect: &Expectation{State: "free", Focused: ptr("")}},
		},
	}
}

// Scenarios are the built-in tours by name.
var Scenarios = map[string]func() *Scenario{
	"grand-tour": DefaultScenario,
	"planets":    PlanetsScenario,
}

// PlanetsScenario focuses every default planet in turn, replacing each
// transition halfway through.
func PlanetsScenario() *Scenario {
	names := []string{"Merkurius", "Venus", "Bumi", "Mars", "Jupiter", "Saturnus", "Uranus", "Neptunus"}
	sc := &Scenario{Name: "planets", Description: "hop between planets mid-transition"}
	for _, n := range names {
		sc.Steps = append(sc.Steps,
			Step{Action: "focus", Body: n, Expect: &Expectation{State: "transition_in", Focused: ptr(n)}},
			Step{Action: "tick", Ticks: 10, Expect: &Expectation{State: "transition_in"}},
		)
	}
	sc.Steps = append(sc.Steps,
		Step{Action: "tick", Ticks: 10, Expect: &Expectation{State: "following", Focused: ptr("Neptunus"), Distance: ptr(10.0)}},
		Step{Action: "reset", Expect: &Expectation{State: "transition_out"}},
		Step{Action: "tick", Ticks: 20, Expect: &Expectation{State: "free"}},
	)
	return sc
}
