package backend

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestLogin(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/login" || r.Method != http.MethodPost {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"token":"t1","user":{"id":7,"name":"Ada","email":"ada@example.com"}}`))
	}))
	defer ts.Close()

	c := New(ts.URL)
	result, err := c.Login(LoginRequest{Username: "ada", Password: "pw"})
	if err != nil {
		t.Fatalf("Login error: %v", err)
	}
	if result.Token != "t1" {
		t.Errorf("token = %q, want t1", result.Token)
	}
	if result.User == nil || result.User.ID.String() != "7" {
		t.Errorf("unexpected user: %+v", result.User)
	}
}

func TestLoginFailures(t *testing.T) {
	tests := []struct {
		name        string
		status      int
		body        string
		wantMessage string
		wantInvalid bool
	}{
		{
			name:        "Backend error field is surfaced",
			status:      http.StatusUnauthorized,
			body:        `{"error":"bad creds"}`,
			wantMessage: "bad creds",
		},
		{
			name:        "Backend error without message",
			status:      http.StatusInternalServerError,
			body:        `{}`,
			wantMessage: "",
		},
		{
			name:        "Non-JSON error body",
			status:      http.StatusBadGateway,
			body:        `<html>upstream down</html>`,
			wantInvalid: true,
		},
		{
			name:        "200 without a token",
			status:      http.StatusOK,
			body:        `{"user":{"id":7}}`,
			wantInvalid: true,
		},
		{
			name:        "200 with non-JSON body",
			status:      http.StatusOK,
			body:        `not json`,
			wantInvalid: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer ts.Close()

			_, err := New(ts.URL).Login(LoginRequest{Username: "ada", Password: "pw"})
			if err == nil {
				t.Fatal("expected an error")
			}
			if tt.wantInvalid {
				if !errors.Is(err, ErrInvalidResponse) {
					t.Errorf("error = %v, want ErrInvalidResponse", err)
				}
				return
			}
			var apiErr *APIError
			if !errors.As(err, &apiErr) {
				t.Fatalf("error = %v, want *APIError", err)
			}
			if apiErr.Status != tt.status {
				t.Errorf("status = %d, want %d", apiErr.Status, tt.status)
			}
			if apiErr.Message != tt.wantMessage {
				t.Errorf("message = %q, want %q", apiErr.Message, tt.wantMessage)
			}
		})
	}
}

func TestTransportErrorIsNotAPIError(t *testing.T) {
	ts := httptest.NewServer(http.NotFoundHandler())
	ts.Close() // connection refused from here on

	_, err := New(ts.URL).Login(LoginRequest{Username: "ada", Password: "pw"})
	if err == nil {
		t.Fatal("expected an error")
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		t.Errorf("transport failure classified as APIError: %v", err)
	}
	if errors.Is(err, ErrInvalidResponse) {
		t.Errorf("transport failure classified as invalid response: %v", err)
	}
}

func TestCreateContract(t *testing.T) {
	var gotPath, gotAuth string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"pdf_url":"https://x/doc.pdf"}`))
	}))
	defer ts.Close()

	url, err := New(ts.URL).CreateContract("t1", "3", "12")
	if err != nil {
		t.Fatalf("CreateContract error: %v", err)
	}
	if url != "https://x/doc.pdf" {
		t.Errorf("pdf url = %q, want https://x/doc.pdf", url)
	}
	if gotPath != "/create_contract/3/12" {
		t.Errorf("path = %q, want /create_contract/3/12", gotPath)
	}
	if gotAuth != "Bearer t1" {
		t.Errorf("auth header = %q, want Bearer t1", gotAuth)
	}
}

func TestCreateContractMissingPDFURL(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"success":true}`))
	}))
	defer ts.Close()

	_, err := New(ts.URL).CreateContract("t1", "3", "12")
	if !errors.Is(err, ErrInvalidResponse) {
		t.Errorf("error = %v, want ErrInvalidResponse", err)
	}
}

func TestGetUser(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		body     string
		wantUser bool
	}{
		{
			name:     "200 resolves the principal",
			status:   http.StatusOK,
			body:     `{"id":7,"name":"Ada"}`,
			wantUser: true,
		},
		{
			name:   "404 means no such principal",
			status: http.StatusNotFound,
			body:   `{"error":"not found"}`,
		},
		{
			name:   "401 also means no principal",
			status: http.StatusUnauthorized,
			body:   `{"error":"token expired"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.URL.Path != "/users/7" {
					t.Errorf("path = %q, want /users/7", r.URL.Path)
				}
				if got := r.Header.Get("Authorization"); got != "Bearer t1" {
					t.Errorf("auth header = %q, want Bearer t1", got)
				}
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer ts.Close()

			user, err := New(ts.URL).GetUser("t1", "7")
			if err != nil {
				t.Fatalf("GetUser error: %v", err)
			}
			if tt.wantUser && (user == nil || user.ID.String() != "7") {
				t.Errorf("unexpected user: %+v", user)
			}
			if !tt.wantUser && user != nil {
				t.Errorf("user = %+v, want nil", user)
			}
		})
	}
}

func TestCreateEmployeeSendsBearerAndJSON(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer t1" {
			t.Errorf("auth header = %q, want Bearer t1", got)
		}
		if got := r.Header.Get("Content-Type"); got != "application/json" {
			t.Errorf("content type = %q, want application/json", got)
		}
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"success":true}`))
	}))
	defer ts.Close()

	err := New(ts.URL).CreateEmployee("t1", EmployeeForm{EmployeeName: "Grace"})
	if err != nil {
		t.Fatalf("CreateEmployee error: %v", err)
	}
}

func TestSignupRejectedDespite200(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"success":false,"error":"username taken"}`))
	}))
	defer ts.Close()

	err := New(ts.URL).Signup(SignupRequest{Username: "ada"})
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("error = %v, want *APIError", err)
	}
	if apiErr.Message != "username taken" {
		t.Errorf("message = %q, want %q", apiErr.Message, "username taken")
	}
}

func TestNewDefaultsBaseURL(t *testing.T) {
	if got := New("").BaseURL; got != DefaultBaseURL {
		t.Errorf("BaseURL = %q, want %q", got, DefaultBaseURL)
	}
}
