package router

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/antchfx/xmlquery"
	"github.com/gocolly/colly/v2"
	"github.com/sirupsen/logrus"

	"github.com/alvmarrod/boxmon/internal/config"
	boxerrors "github.com/alvmarrod/boxmon/internal/errors"
	"github.com/alvmarrod/boxmon/internal/metrics"
)

// LoginPath is the router endpoint serving both the challenge and the
// credential submission
const LoginPath = "/login"

// SessionCookie is the cookie the router identifies a session with. Before
// login it carries the raw challenge token.
const SessionCookie = "sid"

// Context keys used to hand data from colly callbacks back to the caller
const (
	bodyKey    = "body"
	startedKey = "started"
)

// Session is a logged-in connection to the router web UI. It owns the
// collector and its in-memory cookie jar for the whole process.
type Session struct {
	baseURL       string
	username      string
	password      string
	collector     *colly.Collector
	tracker       *metrics.Tracker
	token         string
	authenticated bool
}

// NewSession creates a session that has not logged in yet
func NewSession(ctx context.Context, cfg *config.Config, tracker *metrics.Tracker) *Session {
	if tracker == nil {
		tracker = metrics.NewTracker()
	}

	s := &Session{
		baseURL:  cfg.RouterURL,
		username: cfg.Username,
		password: cfg.Password,
		tracker:  tracker,
	}

	s.setupColly(ctx, cfg.Timeout)
	return s
}

// Login creates a session and performs the challenge handshake
func Login(ctx context.Context, cfg *config.Config, tracker *metrics.Tracker) (*Session, error) {
	s := NewSession(ctx, cfg, tracker)
	if err := s.Login(); err != nil {
		return nil, err
	}
	return s, nil
}

// setupColly configures a synchronous collector with request bookkeeping
func (s *Session) setupColly(ctx context.Context, timeout time.Duration) {
	s.collector = colly.NewCollector(
		colly.AllowURLRevisit(),
		colly.StdlibContext(ctx),
	)

	s.collector.SetRequestTimeout(timeout)

	s.collector.OnRequest(func(r *colly.Request) {
		r.Ctx.Put(startedKey, time.Now())
		s.tracker.IncrementRequestsMade()
		logrus.Debugf("%s %s", r.Method, r.URL.Path)
	})

	s.collector.OnResponse(func(r *colly.Response) {
		r.Ctx.Put(bodyKey, r.Body)
		elapsed := s.recordElapsed(r.Ctx)
		logrus.Debugf("%s %s: status=%d bytes=%d in %s",
			r.Request.Method, r.Request.URL.Path, r.StatusCode, len(r.Body), elapsed)
	})

	s.collector.OnError(func(r *colly.Response, err error) {
		s.tracker.IncrementRequestsFailed()
		if r != nil && r.Request != nil {
			s.recordElapsed(r.Ctx)
			logrus.Debugf("%s %s failed: %v (status: %d)", r.Request.Method, r.Request.URL.Path, err, r.StatusCode)
		} else {
			logrus.Debugf("Request failed with nil response: %v", err)
		}
	})
}

func (s *Session) recordElapsed(ctx *colly.Context) time.Duration {
	if ctx == nil {
		return 0
	}
	started, ok := ctx.GetAny(startedKey).(time.Time)
	if !ok {
		return 0
	}
	elapsed := time.Since(started)
	s.tracker.RecordFetchTime(elapsed)
	return elapsed
}

// Login runs the handshake: fetch a challenge, adopt it as session cookie and
// submit the HMAC credentials. The router answers login without a usable
// status, so success is only confirmed by the pages fetched afterwards.
func (s *Session) Login() error {
	if s.authenticated {
		return nil
	}

	hdr := http.Header{}
	hdr.Set("X-Requested-With", "XMLHttpRequest")
	hdr.Set("Content-Type", "application/x-www-form-urlencoded")

	body, err := s.do(http.MethodPost, LoginPath, "action=challenge", hdr)
	if err != nil {
		return boxerrors.NewAuthError("challenge request failed", err)
	}

	token, err := parseChallenge(body)
	if err != nil {
		return boxerrors.NewAuthError("no challenge in login response", err)
	}
	s.token = token

	if err := s.collector.SetCookies(s.baseURL, []*http.Cookie{{Name: SessionCookie, Value: token}}); err != nil {
		return boxerrors.NewAuthError("cannot set session cookie", err)
	}

	credentials := Digest(s.username, token) + Digest(s.password, token)
	fields := url.Values{
		"method": {"passwd"},
		"zsid":   {token},
		"hash":   {credentials},
	}.Encode()

	if _, err := s.do(http.MethodPost, LoginPath, fields, hdr); err != nil {
		return boxerrors.NewAuthError("credential submission failed", err)
	}

	s.authenticated = true
	logrus.Debugf("Logged in to %s as %s", s.baseURL, s.username)
	return nil
}

// Authenticated reports whether the handshake has been attempted to completion
func (s *Session) Authenticated() bool {
	return s.authenticated
}

// Token returns the challenge token of the current session
func (s *Session) Token() string {
	return s.token
}

// Tracker returns the request statistics of this session
func (s *Session) Tracker() *metrics.Tracker {
	return s.tracker
}

// Get fetches path with the session cookies and parses it as HTML
func (s *Session) Get(path string) (*Document, error) {
	if !s.authenticated {
		return nil, boxerrors.NewAuthError("GET "+path+" before login", nil)
	}

	body, err := s.do(http.MethodGet, path, "", nil)
	if err != nil {
		return nil, boxerrors.NewFetchError("GET "+path, err)
	}
	if len(bytes.TrimSpace(body)) == 0 {
		return nil, boxerrors.NewFetchError("GET "+path, fmt.Errorf("empty response body"))
	}

	return ParseDocument(path, body)
}

// do issues one blocking request and returns the response body
func (s *Session) do(method, path, payload string, hdr http.Header) ([]byte, error) {
	var data io.Reader
	if payload != "" {
		data = strings.NewReader(payload)
	}

	ctx := colly.NewContext()
	if err := s.collector.Request(method, s.baseURL+path, data, ctx, hdr); err != nil {
		return nil, err
	}

	body, _ := ctx.GetAny(bodyKey).([]byte)
	return body, nil
}

// Digest computes the router's credential hash: the lowercase hex
// HMAC-SHA256 keyed by the challenge token over the hex SHA256 of secret
func Digest(secret, token string) string {
	sum := sha256.Sum256([]byte(secret))
	mac := hmac.New(sha256.New, []byte(token))
	mac.Write([]byte(hex.EncodeToString(sum[:])))
	return hex.EncodeToString(mac.Sum(nil))
}

// parseChallenge reads the token from an XML <challenge> element, falling
// back to a JSON "challenge" field
func parseChallenge(body []byte) (string, error) {
	if doc, err := xmlquery.Parse(bytes.NewReader(body)); err == nil {
		if node := xmlquery.FindOne(doc, "//challenge"); node != nil {
			if token := strings.TrimSpace(node.InnerText()); token != "" {
				return token, nil
			}
		}
	}

	var payload struct {
		Challenge string `json:"challenge"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return "", fmt.Errorf("response is neither XML nor JSON with a challenge: %q", truncate(body, 80))
	}

	token := strings.TrimSpace(payload.Challenge)
	if token == "" {
		return "", fmt.Errorf("empty challenge")
	}
	logrus.Debugf("Challenge read from JSON response")
	return token, nil
}

func truncate(b []byte, n int) string {
	if len(b) > n {
		return string(b[:n]) + "..."
	}
	return string(b)
}
