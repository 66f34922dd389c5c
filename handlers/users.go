package handlers

import (
	"log"
	"net/http"
	"path"

	"ecfrontend/backend"
	"ecfrontend/models"
	"ecfrontend/utils"
)

// UpdateUser shows and submits the profile form for /update_user/{id}.
// Updates go to the backend as a PUT; the page itself prefers the freshly
// resolved profile and falls back to the session's cached copy.
func UpdateUser(w http.ResponseWriter, r *http.Request, store utils.SessionStore, api *backend.Client, secret []byte) {
	sess := utils.CurrentSession(r, store, secret)
	if sess == nil {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	userID := path.Base(r.URL.Path)
	if userID == "" || userID == "update_user" {
		http.NotFound(w, r)
		return
	}

	if r.Method != http.MethodPost {
		user, err := api.GetUser(sess.AccessToken, userID)
		if err != nil {
			log.Println("error resolving user", userID, ":", err)
		}
		if user == nil {
			// No such principal, or the token no longer authorizes the
			// lookup; the backend does not tell us which.
			log.Println("user", userID, "not resolved, using cached profile")
			user = sess.User
		}
		render(w, "update-user.html", models.FormPage{User: user})
		return
	}

	req := backend.UpdateUserRequest{
		Name:     r.FormValue("name"),
		Email:    r.FormValue("email"),
		Password: r.FormValue("password"),
	}

	if err := api.UpdateUser(sess.AccessToken, userID, req); err != nil {
		log.Println("update user failed:", err)
		render(w, "update-user.html", models.FormPage{
			Error: backendErrorMessage(err, "An error occurred while updating the user."),
			User:  sess.User,
		})
		return
	}

	if err := utils.SetFlash(r.Context(), store, sess, "User information updated successfully."); err != nil {
		log.Println("failed to set flash:", err)
	}
	http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
}
