package handlers

import (
	"fmt"
	"log"
	"net/http"

	"ecfrontend/backend"
	"ecfrontend/models"
	"ecfrontend/utils"
)

// CreateEmployee shows the employee form and forwards submissions to the
// backend. The form covers every contract type, so most fields are optional
// on this side; the backend validates the combination.
func CreateEmployee(w http.ResponseWriter, r *http.Request, store utils.SessionStore, api *backend.Client, secret []byte) {
	sess := utils.CurrentSession(r, store, secret)
	if sess == nil {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	if r.Method != http.MethodPost {
		render(w, "create-employee.html", models.FormPage{})
		return
	}

	form := backend.EmployeeForm{
		EmployeeName:          r.FormValue("employee_name"),
		CompanyName:           r.FormValue("company_name"),
		StartDate:             r.FormValue("start_date"),
		JobTitle:              r.FormValue("job_title"),
		JobResponsibilities:   r.FormValue("job_responsibilities"),
		Salary:                r.FormValue("salary"),
		Benefits:              r.FormValue("benefits"),
		WorkHours:             r.FormValue("work_hours"),
		LeaveDays:             r.FormValue("leave_days"),
		NoticePeriod:          r.FormValue("notice_period"),
		HourlyRate:            r.FormValue("hourly_rate"),
		NumberOfHours:         r.FormValue("number_of_hours"),
		DescriptionOfServices: r.FormValue("description_of_services"),
		FeeAmount:             r.FormValue("fee_amount"),
		PaymentSchedule:       r.FormValue("payment_schedule"),
		OwnershipTerms:        r.FormValue("ownership_terms"),
		CompanyRepresentative: r.FormValue("company_representative"),
		ClientRepresentative:  r.FormValue("client_representative"),
	}

	if err := api.CreateEmployee(sess.AccessToken, form); err != nil {
		log.Println("create employee failed:", err)
		render(w, "create-employee.html", models.FormPage{
			Error: backendErrorMessage(err, "An error occurred while creating the employee."),
		})
		return
	}

	if err := utils.SetFlash(r.Context(), store, sess, fmt.Sprintf("Employee %s created successfully.", form.EmployeeName)); err != nil {
		log.Println("failed to set flash:", err)
	}
	http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
}
