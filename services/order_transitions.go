package services

import "github.com/Felmyb/SistemaSKC/entity"

// orderTransitions is the whole state machine. Anything not listed is
// rejected; DELIVERED and CANCELLED have no way out.
var orderTransitions = map[string][]string{
	entity.StatusPending:    {entity.StatusConfirmed, entity.StatusCancelled},
	entity.StatusConfirmed:  {entity.StatusInProgress, entity.StatusCancelled},
	entity.StatusInProgress: {entity.StatusReady, entity.StatusCancelled},
	entity.StatusReady:      {entity.StatusDelivered},
	entity.StatusDelivered:  {},
	entity.StatusCancelled:  {},
}

// ValidateTransition checks the requested move against the table.
func ValidateTransition(from, to string) error {
	for _, allowed := range orderTransitions[from] {
		if allowed == to {
			return nil
		}
	}
	return &InvalidTransitionError{From: from, To: to}
}
