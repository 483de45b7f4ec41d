package sig

import (
	"crypto/hmac"
	"crypto/sha1"
	"encoding/base64"
	"fmt"
	"net/http"

	"github.com/stowhouse/server-auth/credentials"
)

// Sign computes the signature for a canonical string: the base64-encoded
// HMAC-SHA1 digest of the canonical bytes, keyed by the shared secret. The
// result is recomputed fresh on every call; neither the canonical string nor
// the secret is retained or logged.
func Sign(canonical []byte, secret string) string {
	mac := hmac.New(sha1.New, []byte(secret))
	mac.Write(canonical)
	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}

// BuildAuthHeader produces the Authorization header value for an outbound
// request, in the form "STOW <key_id>:<signature>". The caller supplies the
// resource it intends to sign (see CanonicalResource) along with the headers
// the request will carry at transmission time.
func BuildAuthHeader(method string, header http.Header, resource string, c *credentials.Credential) string {
	signature := Sign(Canonical(method, header, resource), c.Secret)
	return fmt.Sprintf("%s %s:%s", AuthScheme, c.KeyID, signature)
}
