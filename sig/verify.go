package sig

import (
	"context"
	"crypto/hmac"
	"errors"
	"net/http"
	"strings"

	"github.com/stowhouse/server-auth/credentials"
)

// ErrInvalidAuthentication is the single rejection returned for every way a
// verification can fail: unresolvable credential, wrong key id, or wrong
// signature. Collapsing them keeps a caller from probing which check tripped.
var ErrInvalidAuthentication = errors.New("invalid_authentication")

// ParseAuthHeader splits an Authorization header value of the form
// "STOW <key_id>:<signature>" into its parts. ok is false if the value
// doesn't carry this scheme's tag or either part is empty.
func ParseAuthHeader(value string) (keyID, signature string, ok bool) {
	rest, found := strings.CutPrefix(value, AuthScheme+" ")
	if !found {
		return "", "", false
	}
	keyID, signature, found = strings.Cut(rest, ":")
	if !found || keyID == "" || signature == "" {
		return "", "", false
	}
	return keyID, signature, true
}

// Authenticator verifies presented signatures against the single admin
// credential this deployment trusts. It holds no state beyond the credential
// provider and is safe for concurrent use.
type Authenticator struct {
	provider credentials.Provider
}

func NewAuthenticator(provider credentials.Provider) *Authenticator {
	return &Authenticator{
		provider: provider,
	}
}

// Authenticate recomputes the signature for the presented request data and
// compares it, along with the key id, against what the peer presented. The
// credential is resolved through the provider on every call. Any failure,
// including a failed lookup, surfaces as ErrInvalidAuthentication.
func (a *Authenticator) Authenticate(ctx context.Context, method string, header http.Header, resource, keyID, signature string) error {
	c, err := a.provider.GetAdminCredential(ctx)
	if err != nil {
		return ErrInvalidAuthentication
	}
	expected := Sign(Canonical(method, header, resource), c.Secret)
	if keyID != c.KeyID {
		return ErrInvalidAuthentication
	}
	if !hmac.Equal([]byte(signature), []byte(expected)) {
		return ErrInvalidAuthentication
	}
	return nil
}

// AuthenticateRequest verifies an inbound HTTP request in place: it parses
// the Authorization header, derives the signed resource from the request URL,
// and delegates to Authenticate.
func (a *Authenticator) AuthenticateRequest(req *http.Request) error {
	keyID, signature, ok := ParseAuthHeader(req.Header.Get("Authorization"))
	if !ok {
		return ErrInvalidAuthentication
	}
	return a.Authenticate(req.Context(), req.Method, req.Header, CanonicalResource(req.URL), keyID, signature)
}
