package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeFoldsLegacySynonyms(t *testing.T) {
	cases := map[string]RequestStatus{
		"pending":   StatusPending,
		"accepted":  StatusApproved,
		"approved":  StatusApproved,
		"ready":     StatusApproved,
		"collected": StatusCollected,
		"cancelled": StatusDeclined,
		"declined":  StatusDeclined,
		"rejected":  StatusDeclined,
	}

	for raw, want := range cases {
		assert.Equal(t, want, Normalize(raw), "token %q", raw)
	}
}

func TestNormalizeKeepsUnknownTokens(t *testing.T) {
	assert.Equal(t, RequestStatus("weird"), Normalize("weird"))
}

func TestStatusFamilies(t *testing.T) {
	for _, raw := range []string{"accepted", "approved", "ready", "collected"} {
		assert.True(t, InApprovalFamily(raw), "token %q", raw)
		assert.False(t, InDeclineFamily(raw), "token %q", raw)
	}

	for _, raw := range []string{"cancelled", "declined", "rejected"} {
		assert.True(t, InDeclineFamily(raw), "token %q", raw)
		assert.False(t, InApprovalFamily(raw), "token %q", raw)
	}

	assert.False(t, InApprovalFamily("pending"))
	assert.False(t, InDeclineFamily("pending"))
}
