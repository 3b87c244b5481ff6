package domain

import (
	"errors"
	"strings"
	"testing"

	apperrors "cvp/internal/platform/errors"
)

func TestFormCanSubmit(t *testing.T) {
	t.Parallel()
	cases := []struct {
		name string
		form Form
		want bool
	}{
		{name: "reject without feedback", form: Form{Action: ActionReject}, want: false},
		{name: "reject with blank feedback", form: Form{Action: ActionReject, Feedback: " \n\t"}, want: false},
		{name: "reject with feedback", form: Form{Action: ActionReject, Feedback: "Missing examples"}, want: true},
		{name: "approve without feedback", form: Form{Action: ActionApprove}, want: true},
		{name: "approve while submitting", form: Form{Action: ActionApprove, Submitting: true}, want: false},
		{name: "no action selected", form: Form{}, want: false},
	}
	for _, tc := range cases {
		if got := tc.form.CanSubmit(); got != tc.want {
			t.Fatalf("%s: CanSubmit() = %v, want %v", tc.name, got, tc.want)
		}
	}
	if err := (Form{Action: ActionReject}).Check(); !errors.Is(err, apperrors.ErrFeedbackRequired) {
		t.Fatalf("expected feedback required, got %v", err)
	}
}

func TestParseAction(t *testing.T) {
	t.Parallel()
	if a, err := ParseAction(" Reject "); err != nil || a != ActionReject {
		t.Fatalf("unexpected %q %v", a, err)
	}
	if _, err := ParseAction("defer"); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("expected invalid input, got %v", err)
	}
}

func TestReport(t *testing.T) {
	t.Parallel()
	var pending *ValidationResult
	if !strings.Contains(pending.Report(), "pending") {
		t.Fatalf("nil result should report pending")
	}
	v := &ValidationResult{
		ConsensusScore: 7.3,
		Recommendation: "APPROVE",
		Round1Results: []ProviderScore{
			{Provider: "openai", Score: 7, Feedback: "Clear | concise", Criteria: map[string]float64{"clarity": 8, "accuracy": 6}},
		},
	}
	report := v.Report()
	for _, want := range []string{"**Consensus score:** 7.3 (APPROVE)", "### Round 1", "| openai | 7.0 | Clear \\| concise |", "_accuracy 6.0, clarity 8.0_"} {
		if !strings.Contains(report, want) {
			t.Fatalf("report missing %q:\n%s", want, report)
		}
	}
	if strings.Contains(report, "Round 2") {
		t.Fatalf("empty round must be omitted")
	}
}
