package handlers

import (
	"log"
	"net/http"

	"ecfrontend/backend"
	"ecfrontend/models"
	"ecfrontend/utils"
)

func Home(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	render(w, "home.html", nil)
}

func Signup(w http.ResponseWriter, r *http.Request, api *backend.Client) {
	if r.Method != http.MethodPost {
		render(w, "signup.html", models.FormPage{})
		return
	}

	req := backend.SignupRequest{
		Name:      r.FormValue("name"),
		Email:     r.FormValue("email"),
		Username:  r.FormValue("username"),
		Password1: r.FormValue("password1"),
		Password2: r.FormValue("password2"),
	}

	if err := api.Signup(req); err != nil {
		log.Println("signup failed:", err)
		render(w, "signup.html", models.FormPage{
			Error: backendErrorMessage(err, "An error occurred during signup."),
		})
		return
	}

	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

func Login(w http.ResponseWriter, r *http.Request, store utils.SessionStore, api *backend.Client, secret []byte) {
	if r.Method != http.MethodPost {
		render(w, "login.html", models.FormPage{Next: r.URL.Query().Get("next")})
		return
	}

	req := backend.LoginRequest{
		Username: r.FormValue("username"),
		Password: r.FormValue("password"),
	}

	result, err := api.Login(req)
	if err != nil {
		log.Println("login failed:", err)
		render(w, "login.html", models.FormPage{
			Error: backendErrorMessage(err, "Invalid credentials or an error occurred."),
			Next:  r.FormValue("next"),
		})
		return
	}

	sess := utils.NewSession(r, result.Token, result.User)
	if err := store.Save(r.Context(), sess, utils.SessionTTL); err != nil {
		log.Println("failed to save session:", err)
		render(w, "login.html", models.FormPage{Error: "Internal error. Please try again."})
		return
	}
	utils.SetSessionCookie(w, sess.Token, secret)

	target := utils.SafeNext(r.FormValue("next"))
	if target == "" {
		target = "/dashboard"
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}

func Dashboard(w http.ResponseWriter, r *http.Request, store utils.SessionStore, api *backend.Client, secret []byte) {
	sess := utils.CurrentSession(r, store, secret)
	if sess == nil {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	// Login may answer 200 with a token but little or no profile. Ask the
	// backend who the token belongs to and cache the answer so later
	// renders skip the lookup.
	if sess.User == nil || sess.User.Name == "" {
		id := ""
		if sess.User != nil {
			id = sess.User.ID.String()
		}
		user, err := api.GetUser(sess.AccessToken, id)
		if err != nil {
			log.Println("error resolving current user:", err)
		}
		if user != nil {
			sess.User = user
			if err := store.Save(r.Context(), *sess, utils.SessionTTL); err != nil {
				log.Println("failed to cache resolved user:", err)
			}
		}
	}

	render(w, "dashboard.html", models.DashboardPage{
		User:  sess.User,
		Flash: utils.PopFlash(r.Context(), store, sess),
	})
}

// LogOut tears the whole session down, cached profile included, so nothing
// leaks into the next login on this browser.
func LogOut(w http.ResponseWriter, r *http.Request, store utils.SessionStore, secret []byte) {
	sess := utils.CurrentSession(r, store, secret)
	if sess != nil {
		if err := store.Delete(r.Context(), sess.Token); err != nil {
			log.Println("failed to delete session:", err)
		}
	}
	utils.ClearSessionCookie(w)
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}
