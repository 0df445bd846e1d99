package booking

type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusOngoing   Status = "ongoing"
	StatusCompleted Status = "completed"
	StatusCanceled  Status = "canceled"
)

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusOngoing, StatusCompleted, StatusCanceled:
		return true
	default:
		return false
	}
}

// IsActive reports whether the booking still occupies its rental window.
func (s Status) IsActive() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusOngoing:
		return true
	default:
		return false
	}
}
