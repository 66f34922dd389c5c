package utils

import (
	"net/http"
	"net/url"
)

// RequireToken guards a route behind the session's bearer token. Without one
// the browser is sent to the login page carrying the originally requested URL
// so it can be returned there after authenticating.
func RequireToken(store SessionStore, secret []byte, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess := CurrentSession(r, store, secret)
		if sess == nil || sess.AccessToken == "" {
			v := url.Values{}
			v.Set("next", r.URL.RequestURI())
			http.Redirect(w, r, "/login?"+v.Encode(), http.StatusSeeOther)
			return
		}
		next(w, r)
	}
}

// SafeNext accepts a post-login redirect target only when it is a local path.
func SafeNext(next string) string {
	if next == "" || next[0] != '/' {
		return ""
	}
	if len(next) > 1 && next[1] == '/' {
		return ""
	}
	return next
}
