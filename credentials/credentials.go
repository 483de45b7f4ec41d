// Package credentials resolves the admin credential that the STOW signing
// scheme operates on. A deployment trusts exactly one key-id/secret pair; how
// that pair is stored (fixed config value, credentials file, database row) is
// a property of the surrounding service, so the signing code only sees the
// Provider interface.
package credentials

import (
	"context"
	"errors"
)

// ErrNotFound indicates that no admin credential is configured in the backing
// store.
var ErrNotFound = errors.New("admin credential not found")

// Credential is a key id paired with the shared secret used to sign requests
// presented under that id.
type Credential struct {
	KeyID  string
	Secret string
}

// Provider resolves the single admin credential a deployment is configured to
// trust. Implementations may block (file read, database query); callers
// invoke the provider once per signing or verification attempt and never
// cache the result, so a changed secret takes effect on the next request.
type Provider interface {
	GetAdminCredential(ctx context.Context) (*Credential, error)
}

// NewStatic returns a Provider that always resolves the same fixed pair.
func NewStatic(keyID, secret string) Provider {
	return &static{
		credential: Credential{
			KeyID:  keyID,
			Secret: secret,
		},
	}
}

type static struct {
	credential Credential
}

func (p *static) GetAdminCredential(ctx context.Context) (*Credential, error) {
	if p.credential.KeyID == "" || p.credential.Secret == "" {
		return nil, ErrNotFound
	}
	c := p.credential
	return &c, nil
}

var _ Provider = (*static)(nil)
