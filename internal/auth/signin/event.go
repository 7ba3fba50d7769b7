package signin

import "credauth/internal/auth"

// RequestContext is the slice of the originating HTTP request the issuer
// needs to decide whether a sign-in came from the credential flow.
type RequestContext struct {
	Method string
	URL    string
}

// Event is the post-sign-in notification fired after any provider
// succeeds. Request is nil when the flow ran without a live request,
// e.g. a server-side replay; the issuer treats that as a no-op.
type Event struct {
	Identity *auth.Identity
	Request  *RequestContext
}
