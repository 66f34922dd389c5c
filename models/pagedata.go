package models

import "encoding/json"

// FormPage is the data for the simple form templates (signup, login,
// create-employee, update-user).
type FormPage struct {
	Error string
	User  *User
	Next  string
}

type DashboardPage struct {
	User  *User
	Flash string
}

// Employee and Contract carry only the fields the selection page lists;
// the backend may send more, which we ignore.
type Employee struct {
	ID           json.Number `json:"id"`
	EmployeeName string      `json:"employee_name"`
}

type Contract struct {
	ID   json.Number `json:"id"`
	Name string      `json:"name"`
}

// ContractPage renders the contract-selection view. The two listings fail
// independently, so each carries its own error string.
type ContractPage struct {
	Employees      []Employee
	Contracts      []Contract
	ErrorEmployees string
	ErrorContracts string
	Error          string
}
