package strategy

import (
	"context"

	"credauth/internal/auth"
)

// TokenStrategy is the stateless-token mechanism the orchestrator would use
// to carry session state inside a client-held token. Implementations return
// identity facts only and must not touch the session store.
type TokenStrategy interface {
	// EncodeToken renders an identity into a client-held token.
	EncodeToken(ctx context.Context, identity *auth.Identity) (string, error)

	// DecodeToken parses a client-held token back into an identity,
	// returning nil when the token yields none.
	DecodeToken(ctx context.Context, token string) (*auth.Identity, error)
}

// Disabled neuters the stateless-token strategy for the whole process:
// encode always produces the empty token, decode never yields an identity.
// The service runs two session mechanisms, and the persisted session record
// must stay authoritative for credential sign-ins; a live stateless token
// would be a second, unchecked path around it. This is a static wiring
// choice, not a per-request decision.
type Disabled struct{}

func (Disabled) EncodeToken(ctx context.Context, identity *auth.Identity) (string, error) {
	return "", nil
}

func (Disabled) DecodeToken(ctx context.Context, token string) (*auth.Identity, error) {
	return nil, nil
}
