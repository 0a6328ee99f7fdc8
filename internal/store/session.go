package store

import (
	"encoding/gob"
	"net/http"

	"github.com/gorilla/securecookie"
	"github.com/gorilla/sessions"

	"github.com/efreitasn/despensa/internal/domain"
)

const formKey = "form"

func init() {
	gob.Register(&domain.Form{})
}

// SessionOptions configures the session cookie.
type SessionOptions struct {
	Name   string
	Secret string // empty means a random key for this process
	Secure bool
}

// SessionStore keeps each visitor's form in a signed cookie. The cookie
// has no max age, so the form is discarded when the browser session ends.
type SessionStore struct {
	name  string
	store *sessions.CookieStore
}

// NewSessionStore creates a SessionStore.
func NewSessionStore(opts SessionOptions) *SessionStore {
	key := []byte(opts.Secret)
	if len(key) == 0 {
		key = securecookie.GenerateRandomKey(32)
	}

	cs := sessions.NewCookieStore(key)
	cs.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   0,
		Secure:   opts.Secure,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}

	return &SessionStore{
		name:  opts.Name,
		store: cs,
	}
}

// Load returns the form stored in the request's session. It returns
// false when there is none or the cookie could not be decoded.
func (s *SessionStore) Load(r *http.Request) (*domain.Form, bool) {
	session, err := s.store.Get(r, s.name)
	if err != nil {
		return nil, false
	}
	f, ok := session.Values[formKey].(*domain.Form)
	if !ok || f == nil {
		return nil, false
	}
	return f, true
}

// Save writes the form into the response's session cookie.
func (s *SessionStore) Save(w http.ResponseWriter, r *http.Request, f *domain.Form) error {
	// Get returns a usable new session alongside a decode error.
	session, _ := s.store.Get(r, s.name)
	session.Values[formKey] = f
	return session.Save(r, w)
}
