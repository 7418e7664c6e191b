package authController

import (
	"testing"

	"worldone/models"

	"github.com/stretchr/testify/assert"
)

func TestReconcileStatus(t *testing.T) {
	tests := []struct {
		name     string
		status   string
		verified bool
		allow    bool
		promote  bool
		reason   string
	}{
		{
			name:   "blocked is always denied",
			status: models.StatusBlocked,
			reason: "Account blocked. Contact support.",
		},
		{
			name:     "blocked stays denied even when verified",
			status:   models.StatusBlocked,
			verified: true,
			reason:   "Account blocked. Contact support.",
		},
		{
			name:   "inactive and unverified must verify first",
			status: models.StatusInactive,
			reason: "Please verify your email before login.",
		},
		{
			name:     "inactive and verified is promoted",
			status:   models.StatusInactive,
			verified: true,
			allow:    true,
			promote:  true,
		},
		{
			name:   "active proceeds without promotion",
			status: models.StatusActive,
			allow:  true,
		},
		{
			name:     "active ignores verification state",
			status:   models.StatusActive,
			verified: true,
			allow:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			decision := ReconcileStatus(tt.status, tt.verified)
			assert.Equal(t, tt.allow, decision.Allow)
			assert.Equal(t, tt.promote, decision.Promote)
			assert.Equal(t, tt.reason, decision.Reason)
		})
	}
}
