package authController

import "worldone/models"

// StatusDecision is the outcome of reconciling a profile status with the
// email verification state at login time.
type StatusDecision struct {
	Allow   bool
	Promote bool   // flip status to active before proceeding
	Reason  string // user-readable denial message
}

// ReconcileStatus decides whether a login may proceed. Profiles start
// inactive at registration and are only promoted once email verification is
// observed; login is the checkpoint where that promotion happens.
//
//	blocked               -> deny, always
//	inactive + unverified -> deny, ask for verification
//	inactive + verified   -> promote to active, proceed
//	active                -> proceed
func ReconcileStatus(status string, emailVerified bool) StatusDecision {
	switch status {
	case models.StatusBlocked:
		return StatusDecision{Reason: "Account blocked. Contact support."}
	case models.StatusInactive:
		if !emailVerified {
			return StatusDecision{Reason: "Please verify your email before login."}
		}
		return StatusDecision{Allow: true, Promote: true}
	default:
		return StatusDecision{Allow: true}
	}
}
