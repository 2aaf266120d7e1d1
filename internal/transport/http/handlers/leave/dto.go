package leavehandler

import (
	"hrrecords/internal/domain/leave"
	"hrrecords/internal/transport/http/shared"
)

type request struct {
	StartDate string `json:"startDate" validate:"required,datetime=2006-01-02"`
	EndDate   string `json:"endDate" validate:"required,datetime=2006-01-02"`
}

func (r request) toModel() leave.Leave {
	start, _ := shared.ParseDate(r.StartDate)
	end, _ := shared.ParseDate(r.EndDate)
	return leave.Leave{StartDate: start, EndDate: end}
}

type response struct {
	ID         int64  `json:"id"`
	EmployeeID int64  `json:"employeeId"`
	StartDate  string `json:"startDate"`
	EndDate    string `json:"endDate"`
	Days       int    `json:"days"`
}

func toResponse(l leave.Leave) response {
	days, _ := leave.Days(l.StartDate, l.EndDate)
	return response{
		ID:         l.ID,
		EmployeeID: l.EmployeeID,
		StartDate:  shared.FormatDate(l.StartDate),
		EndDate:    shared.FormatDate(l.EndDate),
		Days:       days,
	}
}
