package metadata

import "fmt"

type Status string

const (
	StatusAvailable   Status = "available"
	StatusAssigned    Status = "assigned"
	StatusMaintenance Status = "maintenance"
	StatusInRepair    Status = "in-repair"
	StatusRetired     Status = "retired"
)

func NewStatus(value string) (Status, error) {
	status := Status(value)
	if !status.isValid() {
		return "", fmt.Errorf("invalid status: %s", value)
	}
	return status, nil
}

func (s Status) isValid() bool {
	switch s {
	case StatusAvailable, StatusAssigned, StatusMaintenance, StatusInRepair, StatusRetired:
		return true
	default:
		return false
	}
}

func (s Status) String() string {
	return string(s)
}
