package models

// RequestStatus is the canonical status vocabulary for book requests.
// Older deployments wrote several synonyms for the same semantic state;
// Normalize folds those onto the canonical tokens so the lifecycle logic
// only ever reasons about four states.
type RequestStatus string

const (
	StatusPending   RequestStatus = "pending"
	StatusApproved  RequestStatus = "approved"
	StatusDeclined  RequestStatus = "declined"
	StatusCollected RequestStatus = "collected"
)

// legacy synonyms still present in old rows
var statusSynonyms = map[string]RequestStatus{
	"pending":   StatusPending,
	"accepted":  StatusApproved,
	"approved":  StatusApproved,
	"ready":     StatusApproved,
	"collected": StatusCollected,
	"cancelled": StatusDeclined,
	"declined":  StatusDeclined,
	"rejected":  StatusDeclined,
}

// Normalize maps a stored status token onto the canonical vocabulary.
// Unknown tokens are returned as-is so they surface in listings instead
// of being silently reclassified.
func Normalize(raw string) RequestStatus {
	if s, ok := statusSynonyms[raw]; ok {
		return s
	}
	return RequestStatus(raw)
}

// InApprovalFamily reports whether the token means "admin approved the request".
func InApprovalFamily(raw string) bool {
	s := Normalize(raw)
	return s == StatusApproved || s == StatusCollected
}

// InDeclineFamily reports whether the token means "admin rejected the request".
func InDeclineFamily(raw string) bool {
	return Normalize(raw) == StatusDeclined
}

func (s RequestStatus) String() string {
	return string(s)
}
