package handlers

import (
	"log"
	"net/http"
	"sync"

	"ecfrontend/backend"
	"ecfrontend/models"
	"ecfrontend/utils"
)

// CreateContract handles the contract-selection page. GET fetches the
// employees still without a contract and the available contract types in
// parallel; each listing reports its own failure without blanking the other.
// POST is the programmatic submission target: it answers JSON, not HTML.
func CreateContract(w http.ResponseWriter, r *http.Request, store utils.SessionStore, api *backend.Client, secret []byte) {
	sess := utils.CurrentSession(r, store, secret)
	if sess == nil {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	if r.Method == http.MethodPost {
		submitContract(w, r, sess.AccessToken, api)
		return
	}

	var (
		wg        sync.WaitGroup
		employees []models.Employee
		contracts []models.Contract
		empErr    error
		conErr    error
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		employees, empErr = api.Employees(sess.AccessToken)
	}()
	go func() {
		defer wg.Done()
		contracts, conErr = api.Contracts(sess.AccessToken)
	}()
	wg.Wait()

	page := models.ContractPage{Employees: employees, Contracts: contracts}
	if empErr != nil {
		log.Println("failed to fetch employees:", empErr)
		page.ErrorEmployees = backendErrorMessage(empErr, "Failed to retrieve employees")
	}
	if conErr != nil {
		log.Println("failed to fetch contracts:", conErr)
		page.ErrorContracts = backendErrorMessage(conErr, "Failed to retrieve contracts")
	}

	render(w, "create-contract.html", page)
}

func submitContract(w http.ResponseWriter, r *http.Request, token string, api *backend.Client) {
	employeeID := r.FormValue("employee_id")
	contractTypeID := r.FormValue("contract_type_id")
	if employeeID == "" || contractTypeID == "" {
		writeJSONError(w, http.StatusBadRequest, "employee_id and contract_type_id are required")
		return
	}

	pdfURL, err := api.CreateContract(token, contractTypeID, employeeID)
	if err != nil {
		log.Println("contract generation failed:", err)
		writeJSONError(w, http.StatusBadGateway, backendErrorMessage(err, "An error occurred while generating the contract."))
		return
	}

	// The backend answers with the location of the generated document.
	http.Redirect(w, r, pdfURL, http.StatusSeeOther)
}
