package enums

import "fmt"

// RequestStatus tracks the lifecycle stage of an e-waste request.
type RequestStatus string

const (
	RequestStatusPending   RequestStatus = "PENDING"
	RequestStatusApproved  RequestStatus = "APPROVED"
	RequestStatusRejected  RequestStatus = "REJECTED"
	RequestStatusScheduled RequestStatus = "SCHEDULED"
	RequestStatusCompleted RequestStatus = "COMPLETED"
)

var validRequestStatuses = []RequestStatus{
	RequestStatusPending,
	RequestStatusApproved,
	RequestStatusRejected,
	RequestStatusScheduled,
	RequestStatusCompleted,
}

// String returns the literal string for the status.
func (s RequestStatus) String() string {
	return string(s)
}

// IsValid reports whether the status is known.
func (s RequestStatus) IsValid() bool {
	for _, candidate := range validRequestStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseRequestStatus converts raw input into a RequestStatus.
func ParseRequestStatus(value string) (RequestStatus, error) {
	for _, candidate := range validRequestStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid request status %q", value)
}

// RequestStatuses returns every known status in declaration order.
func RequestStatuses() []RequestStatus {
	return append([]RequestStatus(nil), validRequestStatuses...)
}
