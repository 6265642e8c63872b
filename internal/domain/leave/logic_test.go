package leave

import "testing"

func TestApplyDecisionApprove(t *testing.T) {
	lv := Leave{Status: StatusPending}
	ApplyDecision(&lv, ActionApprove, "ok")

	if lv.Status != StatusApproved {
		t.Fatalf("expected status Approved, got %q", lv.Status)
	}
	if lv.Comment != "ok" {
		t.Fatalf("expected comment ok, got %q", lv.Comment)
	}
}

func TestApplyDecisionRejectClearsComment(t *testing.T) {
	lv := Leave{Status: StatusPending, Comment: "previous note"}
	ApplyDecision(&lv, ActionReject, "")

	if lv.Status != StatusRejected {
		t.Fatalf("expected status Rejected, got %q", lv.Status)
	}
	if lv.Comment != "" {
		t.Fatalf("expected comment cleared, got %q", lv.Comment)
	}
}

func TestApplyDecisionUnknownActionKeepsStatus(t *testing.T) {
	// An unrecognized action is a no-op on status but still applies the
	// comment change.
	lv := Leave{Status: StatusPending, Comment: "old"}
	ApplyDecision(&lv, "Escalate", "new comment")

	if lv.Status != StatusPending {
		t.Fatalf("expected status untouched, got %q", lv.Status)
	}
	if lv.Comment != "new comment" {
		t.Fatalf("expected comment applied, got %q", lv.Comment)
	}
}
