package harness

import (
	"testing"

	"github.com/sebdah/goldie/v2"
)

// RunWithGolden executes a scenario and checks its outcome. Successful
// scenarios compare their output stream against the golden file in
// testdata/golden/{scenario.Name}.golden; failing scenarios must end with
// the expected error code and produce no golden comparison.
//
// To regenerate golden files, run:
//
//	go test ./internal/harness -update
func RunWithGolden(t *testing.T, scenario *Scenario) {
	t.Helper()

	result := Run(scenario)

	if scenario.ExpectError != "" {
		if result.Err == nil {
			t.Fatalf("scenario %s: expected error code %s, run succeeded", scenario.Name, scenario.ExpectError)
		}
		if got := ErrorCode(result.Err); got != scenario.ExpectError {
			t.Fatalf("scenario %s: expected error code %s, got %s (%v)",
				scenario.Name, scenario.ExpectError, got, result.Err)
		}
		return
	}

	if result.Err != nil {
		t.Fatalf("scenario %s: unexpected error: %v", scenario.Name, result.Err)
	}

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, scenario.Name, result.Output)
}
