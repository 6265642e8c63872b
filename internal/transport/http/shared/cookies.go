package shared

import "net/http"

// Session tokens travel as HttpOnly cookies and are echoed in the JSON body.

func SetAuthCookies(w http.ResponseWriter, accessToken, refreshToken string, secure bool) {
	http.SetCookie(w, authCookie("accessToken", accessToken, secure, 0))
	http.SetCookie(w, authCookie("refreshToken", refreshToken, secure, 0))
}

func ClearAuthCookies(w http.ResponseWriter, secure bool) {
	http.SetCookie(w, authCookie("accessToken", "", secure, -1))
	http.SetCookie(w, authCookie("refreshToken", "", secure, -1))
}

func authCookie(name, value string, secure bool, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   maxAge,
	}
}
