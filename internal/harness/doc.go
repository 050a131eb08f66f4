// Package harness runs end-to-end selection scenarios for testing.
//
// A scenario is a YAML file bundling an inline archive, a selection list,
// and the policy options for one run. Scenarios execute the real engine
// against in-memory inputs; expected output is compared against golden
// files, and expected failures are matched by error code. Fragment
// fan-out is exercised by the fragment and engine package tests instead,
// since it writes real files.
package harness
