package positionhandler

import "hrrecords/internal/domain/position"

type request struct {
	Name string `json:"name" validate:"required,max=255"`
}

type response struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

func toResponse(p position.Position) response {
	return response{ID: p.ID, Name: p.Name}
}

// assignment is the audit snapshot of an employee to position link.
type assignment struct {
	EmployeeID int64    `json:"employeeId"`
	Position   response `json:"position"`
}
