package entry

import (
	"net/http"

	"github.com/stowhouse/server-auth/sig"
)

// RequireSignature wraps an HTTP handler so that only requests carrying a
// valid STOW Authorization header reach it. Every way verification can fail
// (missing or malformed header, unknown key id, bad signature, unresolvable
// credential) produces the same 401 response, so a caller can't tell which
// check rejected it.
func RequireSignature(authenticator *sig.Authenticator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if err := authenticator.AuthenticateRequest(r); err != nil {
				Log(r).Info("Rejecting request that failed signature verification")
				http.Error(w, sig.ErrInvalidAuthentication.Error(), http.StatusUnauthorized)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
