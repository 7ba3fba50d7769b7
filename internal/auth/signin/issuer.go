package signin

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"credauth/internal/session"
)

// The sign-in event fires for every provider and every stage. Both markers
// must appear in the originating URL before a session is issued: one names
// the credentials mechanism, the other the callback-completion stage.
// Substring sniffing is kept for compatibility with the existing routes.
const (
	markerCredentials = "credentials"
	markerCallback    = "callback"
)

// Issuer mints persisted session records for credential-flow sign-ins.
// Every other sign-in source must pass through it unchanged, so the
// preconditions in OnSignIn fail silently rather than erroring.
type Issuer struct {
	store  session.Store
	secure bool
}

// NewIssuer builds an Issuer. secure gates the cookie's Secure attribute
// and should be true only in production deployments.
func NewIssuer(store session.Store, secure bool) *Issuer {
	return &Issuer{store: store, secure: secure}
}

// OnSignIn inspects a post-sign-in event and, when it originated from the
// credential flow's callback POST, persists a fresh session record and sets
// the session cookie on w. The record is durably written before the cookie:
// a cookie must never reference a token with no backing record. A store
// failure aborts the sign-in.
//
// Each qualifying event issues its own record. Nothing dedups a
// double-fired event and nothing revokes a user's older sessions;
// concurrent sessions per user are allowed.
func (i *Issuer) OnSignIn(
	ctx context.Context,
	evt Event,
	w http.ResponseWriter,
) error {

	if evt.Request == nil {
		return nil
	}

	if evt.Request.Method != http.MethodPost {
		return nil
	}

	if !strings.Contains(evt.Request.URL, markerCredentials) {
		return nil
	}

	if !strings.Contains(evt.Request.URL, markerCallback) {
		return nil
	}

	token, err := session.GenerateToken()
	if err != nil {
		return err
	}

	var userID string
	if evt.Identity != nil {
		userID = evt.Identity.ID
	}

	expiresAt := time.Now().Add(session.Validity)

	err = i.store.Create(ctx, session.Session{
		Token:     token,
		UserID:    userID,
		ExpiresAt: expiresAt,
	})
	if err != nil {
		return fmt.Errorf("signin: failed to persist session: %w", err)
	}

	session.SetCookie(w, token, expiresAt, session.CookieOptions{
		Path:     "/",
		HttpOnly: true,
		Secure:   i.secure,
		SameSite: http.SameSiteLaxMode,
	})

	return nil
}
