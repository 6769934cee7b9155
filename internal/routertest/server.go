// Package routertest provides a fake router web UI for tests: the login
// handshake with credential checking and the status pages behind it.
package routertest

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
)

const (
	// Token is the challenge handed out on every login attempt.
	Token = "4f1c2a9be07d"
	// AuthenticatedSID is the cookie value the router upgrades a session to.
	AuthenticatedSID = "authenticated-0001"
)

// Router is an httptest server mimicking the router's /login endpoint and
// status pages. Pages are only served to a session that logged in.
type Router struct {
	*httptest.Server

	Username string
	Password string

	mu       sync.Mutex
	pages    map[string]string
	requests []string
	logins   []LoginAttempt
}

// LoginAttempt records one credential submission.
type LoginAttempt struct {
	Zsid     string
	Hash     string
	Cookie   string
	XHR      bool
	Accepted bool
}

// New starts a fake router accepting username/password.
func New(username, password string) *Router {
	r := &Router{
		Username: username,
		Password: password,
		pages:    Pages(),
	}
	r.Server = httptest.NewServer(http.HandlerFunc(r.serve))
	return r
}

// SetPage replaces the body served at path.
func (r *Router) SetPage(path, body string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.pages[path] = body
}

// Requests returns "METHOD /path" for every request received, in order.
func (r *Router) Requests() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.requests...)
}

// Logins returns every credential submission received.
func (r *Router) Logins() []LoginAttempt {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]LoginAttempt(nil), r.logins...)
}

func (r *Router) serve(w http.ResponseWriter, req *http.Request) {
	r.mu.Lock()
	r.requests = append(r.requests, req.Method+" "+req.URL.Path)
	r.mu.Unlock()

	if req.URL.Path == "/login" {
		r.serveLogin(w, req)
		return
	}

	if req.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	cookie, err := req.Cookie("sid")
	if err != nil || cookie.Value != AuthenticatedSID {
		http.Error(w, "forbidden", http.StatusForbidden)
		return
	}

	r.mu.Lock()
	body, ok := r.pages[req.URL.Path]
	r.mu.Unlock()
	if !ok {
		http.NotFound(w, req)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	fmt.Fprint(w, body)
}

func (r *Router) serveLogin(w http.ResponseWriter, req *http.Request) {
	if req.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if err := req.ParseForm(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if req.PostForm.Get("action") == "challenge" {
		w.Header().Set("Content-Type", "text/xml")
		fmt.Fprintf(w, `<?xml version="1.0" encoding="UTF-8"?>`+"\n"+`<zwsd><challenge>%s</challenge></zwsd>`, Token)
		return
	}

	attempt := LoginAttempt{
		Zsid: req.PostForm.Get("zsid"),
		Hash: req.PostForm.Get("hash"),
		XHR:  req.Header.Get("X-Requested-With") == "XMLHttpRequest",
	}
	if cookie, err := req.Cookie("sid"); err == nil {
		attempt.Cookie = cookie.Value
	}

	want := Digest(r.Username, Token) + Digest(r.Password, Token)
	attempt.Accepted = req.PostForm.Get("method") == "passwd" &&
		attempt.Zsid == Token &&
		attempt.Cookie == Token &&
		attempt.Hash == want

	r.mu.Lock()
	r.logins = append(r.logins, attempt)
	r.mu.Unlock()

	if attempt.Accepted {
		http.SetCookie(w, &http.Cookie{Name: "sid", Value: AuthenticatedSID, Path: "/"})
	}
	// The firmware answers the same page whether or not the login worked.
	w.Header().Set("Content-Type", "text/html")
	fmt.Fprint(w, "<html><body>login</body></html>")
}

// Digest is the router's own view of the credential hash.
func Digest(secret, token string) string {
	inner := sha256.Sum256([]byte(secret))
	mac := hmac.New(sha256.New, []byte(token))
	mac.Write([]byte(hex.EncodeToString(inner[:])))
	return hex.EncodeToString(mac.Sum(nil))
}
