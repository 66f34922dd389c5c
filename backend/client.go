package backend

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"ecfrontend/models"
)

// DefaultBaseURL is used when BACKEND_API_URL is not set.
const DefaultBaseURL = "https://ecgenerator-backend.onrender.com"

// ErrInvalidResponse means the backend answered with a body that was not the
// JSON we expected.
var ErrInvalidResponse = errors.New("invalid response from the server")

// APIError is a non-2xx backend response whose JSON body carried an "error"
// field. Message may be empty when the field was absent; call sites supply
// their own fallback text in that case.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("backend returned %d", e.Status)
	}
	return fmt.Sprintf("backend returned %d: %s", e.Status, e.Message)
}

type Client struct {
	BaseURL string
	HTTP    *http.Client
}

func New(baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{BaseURL: baseURL, HTTP: &http.Client{Timeout: 10 * time.Second}}
}

type SignupRequest struct {
	Name      string `json:"name"`
	Email     string `json:"email"`
	Username  string `json:"username"`
	Password1 string `json:"password1"`
	Password2 string `json:"password2"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResult is the 200 response to /login.
type LoginResult struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

type UpdateUserRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// EmployeeForm mirrors the create-employee form field for field. The backend
// decides which subset applies to the chosen contract type, so everything is
// forwarded as-is.
type EmployeeForm struct {
	EmployeeName          string `json:"employee_name"`
	CompanyName           string `json:"company_name"`
	StartDate             string `json:"start_date"`
	JobTitle              string `json:"job_title"`
	JobResponsibilities   string `json:"job_responsibilities"`
	Salary                string `json:"salary"`
	Benefits              string `json:"benefits"`
	WorkHours             string `json:"work_hours"`
	LeaveDays             string `json:"leave_days"`
	NoticePeriod          string `json:"notice_period"`
	HourlyRate            string `json:"hourly_rate"`
	NumberOfHours         string `json:"number_of_hours"`
	DescriptionOfServices string `json:"description_of_services"`
	FeeAmount             string `json:"fee_amount"`
	PaymentSchedule       string `json:"payment_schedule"`
	OwnershipTerms        string `json:"ownership_terms"`
	CompanyRepresentative string `json:"company_representative"`
	ClientRepresentative  string `json:"client_representative"`
}

// do performs one backend call. token may be empty for unauthenticated
// endpoints. wantStatus is the single status code that counts as success;
// on success the body is decoded into out (when out is non-nil). Any other
// status becomes an *APIError carrying the body's "error" field, or
// ErrInvalidResponse when the body is not JSON at all.
func (c *Client) do(method, path, token string, body, out any, wantStatus int) error {
	var reqBody io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding request: %w", err)
		}
		reqBody = bytes.NewReader(b)
	}

	req, err := http.NewRequest(method, c.BaseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return fmt.Errorf("backend unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != wantStatus {
		var e struct {
			Error string `json:"error"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&e); err != nil {
			return ErrInvalidResponse
		}
		return &APIError{Status: resp.StatusCode, Message: e.Error}
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return ErrInvalidResponse
		}
	}
	return nil
}

// Signup reports success only when the backend both answers 200 and sets the
// success flag; a 200 with success=false carries the error in the body.
func (c *Client) Signup(req SignupRequest) error {
	var out struct {
		Success bool   `json:"success"`
		Error   string `json:"error"`
	}
	if err := c.do(http.MethodPost, "/signup", "", req, &out, http.StatusOK); err != nil {
		return err
	}
	if !out.Success {
		return &APIError{Status: http.StatusOK, Message: out.Error}
	}
	return nil
}

// Login exchanges credentials for a bearer token. A 200 without a token in
// the body is treated as an invalid response.
func (c *Client) Login(req LoginRequest) (*LoginResult, error) {
	var out LoginResult
	if err := c.do(http.MethodPost, "/login", "", req, &out, http.StatusOK); err != nil {
		return nil, err
	}
	if out.Token == "" {
		return nil, ErrInvalidResponse
	}
	return &out, nil
}

// GetUser resolves a principal by id. Deliberately lenient: any non-200 means
// "no such principal" (nil, nil) rather than an error, whether the cause was
// an expired token or a missing user. Callers log the raw failure.
func (c *Client) GetUser(token, userID string) (*models.User, error) {
	req, err := http.NewRequest(http.MethodGet, c.BaseURL+"/users/"+userID, nil)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, fmt.Errorf("backend unreachable: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, nil
	}
	var user models.User
	if err := json.NewDecoder(resp.Body).Decode(&user); err != nil {
		return nil, ErrInvalidResponse
	}
	return &user, nil
}

func (c *Client) CreateEmployee(token string, form EmployeeForm) error {
	return c.do(http.MethodPost, "/create_employee", token, form, nil, http.StatusCreated)
}

// Employees lists employees that do not have a contract yet.
func (c *Client) Employees(token string) ([]models.Employee, error) {
	var out []models.Employee
	if err := c.do(http.MethodGet, "/employees", token, nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return out, nil
}

// Contracts lists the available contract types.
func (c *Client) Contracts(token string) ([]models.Contract, error) {
	var out []models.Contract
	if err := c.do(http.MethodGet, "/contracts", token, nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateContract triggers contract generation for the given employee and
// contract type, returning the URL of the generated document.
func (c *Client) CreateContract(token, contractTypeID, employeeID string) (string, error) {
	var out struct {
		PDFURL string `json:"pdf_url"`
	}
	path := fmt.Sprintf("/create_contract/%s/%s", contractTypeID, employeeID)
	if err := c.do(http.MethodPost, path, token, nil, &out, http.StatusCreated); err != nil {
		return "", err
	}
	if out.PDFURL == "" {
		return "", ErrInvalidResponse
	}
	return out.PDFURL, nil
}

func (c *Client) UpdateUser(token, userID string, req UpdateUserRequest) error {
	return c.do(http.MethodPut, "/update_user/"+userID, token, req, nil, http.StatusOK)
}
