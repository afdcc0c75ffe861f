package admin

import (
	"crypto/rand"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/sessions"
)

const (
	sessionName       = "trello_admin"
	sessionOperatorID = "operator_id"
)

// NewSessionStore builds the signed cookie store backing admin sessions. The
// first key signs new cookies; the rest are only accepted when verifying, so
// keys can be rotated by prepending. With no keys a random one is generated,
// so sessions do not survive a restart.
func NewSessionStore(keys []string, maxAge time.Duration, secure bool) (sessions.Store, error) {
	signingKeys := make([][]byte, 0, len(keys))
	for _, k := range keys {
		signingKeys = append(signingKeys, []byte(k))
	}

	if len(signingKeys) == 0 {
		key := make([]byte, 32)
		if _, err := rand.Read(key); err != nil {
			return nil, fmt.Errorf("could not generate cookie signing key: %w", err)
		}
		signingKeys = append(signingKeys, key)
	}

	// gorilla takes hash/block pairs; a nil block key means sign only.
	keyPairs := make([][]byte, 0, 2*len(signingKeys))
	for _, k := range signingKeys {
		keyPairs = append(keyPairs, k, nil)
	}

	store := sessions.NewCookieStore(keyPairs...)
	store.MaxAge(int(maxAge.Seconds()))
	store.Options.Path = "/admin/"
	store.Options.HttpOnly = true
	store.Options.Secure = secure
	store.Options.SameSite = http.SameSiteLaxMode

	return store, nil
}

type SessionManager struct {
	store sessions.Store
}

func NewSessionManager(store sessions.Store) *SessionManager {
	return &SessionManager{store: store}
}

func (m *SessionManager) Login(c *gin.Context, op *Operator) error {
	session, _ := m.store.Get(c.Request, sessionName)
	session.Values[sessionOperatorID] = op.ID
	return session.Save(c.Request, c.Writer)
}

func (m *SessionManager) Logout(c *gin.Context) error {
	session, _ := m.store.Get(c.Request, sessionName)
	delete(session.Values, sessionOperatorID)
	session.Options.MaxAge = -1
	return session.Save(c.Request, c.Writer)
}

// OperatorID returns the operator stored in the request's session, if any.
// Tampered or expired cookies read as no session.
func (m *SessionManager) OperatorID(c *gin.Context) (uint64, bool) {
	session, err := m.store.Get(c.Request, sessionName)
	if err != nil {
		return 0, false
	}
	id, ok := session.Values[sessionOperatorID].(uint64)
	return id, ok && id != 0
}
