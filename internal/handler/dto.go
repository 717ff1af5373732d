package handler

import (
	"github.com/msomdec/employee-pass/internal/domain"
	"github.com/msomdec/employee-pass/internal/view"
)

// EmployeeDTO is the JSON representation of an employee. The photo payload
// is left out; PassImageURL serves the rendered card.
type EmployeeDTO struct {
	ID               string `json:"id"`
	Name             string `json:"name"`
	EmployeeID       string `json:"employeeId"`
	RegistrationDate string `json:"registrationDate"`
	PassURL          string `json:"passUrl"`
	PassImageURL     string `json:"passImageUrl"`
}

func toEmployeeDTO(e domain.Employee) EmployeeDTO {
	return EmployeeDTO{
		ID:               e.ID,
		Name:             e.Name,
		EmployeeID:       e.EmployeeID,
		RegistrationDate: e.RegistrationDate,
		PassURL:          view.PassURL(e.ID),
		PassImageURL:     view.ImageURL(e.ID),
	}
}

func toEmployeeDTOs(list []domain.Employee) []EmployeeDTO {
	out := make([]EmployeeDTO, len(list))
	for i, e := range list {
		out[i] = toEmployeeDTO(e)
	}
	return out
}
