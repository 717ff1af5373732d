package domain

// Employee is one registered employee. The JSON keys are the persisted
// collection format and must stay stable.
type Employee struct {
	ID               string `json:"id"`
	Name             string `json:"name"`
	EmployeeID       string `json:"employeeId"`
	Photo            string `json:"photo"` // data URL: data:image/png;base64,...
	RegistrationDate string `json:"registrationDate"`
}

// EmployeeSlot is the name of the slot holding the serialized collection.
const EmployeeSlot = "employees"

// RegistrationDateLayout formats the human-readable registration date (month/day/year).
const RegistrationDateLayout = "1/2/2006"
