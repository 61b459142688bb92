package pet

import "fmt"

// Status is the listing state of a pet.
type Status string

const (
	StatusAvailable Status = "available"
	StatusAdopted   Status = "adopted"
	StatusMissing   Status = "missing"
	StatusFound     Status = "found"
	StatusFostered  Status = "fostered"
)

var validTransitions = map[Status][]Status{
	StatusAvailable: {StatusAdopted, StatusFostered, StatusMissing},
	StatusFostered:  {StatusAvailable, StatusAdopted, StatusMissing},
	StatusMissing:   {StatusFound},
	StatusFound:     {StatusAvailable, StatusMissing},
	StatusAdopted:   {},
}

// IsValid returns true if the status is recognized.
func (s Status) IsValid() bool {
	_, ok := validTransitions[s]
	return ok
}

// CanTransitionTo returns true if moving from s to target is allowed.
func (s Status) CanTransitionTo(target Status) bool {
	for _, t := range validTransitions[s] {
		if t == target {
			return true
		}
	}
	return false
}

// IsTerminal returns true when no further transitions exist.
func (s Status) IsTerminal() bool {
	return len(validTransitions[s]) == 0
}

func (s Status) String() string { return string(s) }

// ParseStatus converts a string to a Status.
func ParseStatus(s string) (Status, error) {
	status := Status(s)
	if !status.IsValid() {
		return "", fmt.Errorf("invalid pet status: %s", s)
	}
	return status, nil
}
