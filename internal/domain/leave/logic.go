package leave

// ApplyDecision records an approval action on a leave. "Approve" and
// "Reject" set the status; any other action leaves the status untouched.
// The comment is always overwritten -- an absent comment clears it.
func ApplyDecision(lv *Leave, action, comment string) {
	switch action {
	case ActionApprove:
		lv.Status = StatusApproved
	case ActionReject:
		lv.Status = StatusRejected
	}
	lv.Comment = comment
}
