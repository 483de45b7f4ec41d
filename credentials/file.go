package credentials

import (
	"context"
	"fmt"

	"github.com/go-ini/ini"
)

// NewFileProvider returns a Provider that reads the admin credential from an
// ini-format credentials file, from the named profile section:
//
//	[default]
//	key_id = stow-admin
//	secret = ...
//
// The file is re-read on every lookup, so replacing it on disk takes effect
// without a restart.
func NewFileProvider(path, profile string) Provider {
	return &fileProvider{
		path:    path,
		profile: profile,
	}
}

type fileProvider struct {
	path    string
	profile string
}

func (p *fileProvider) GetAdminCredential(ctx context.Context) (*Credential, error) {
	cfg, err := ini.Load(p.path)
	if err != nil {
		return nil, fmt.Errorf("failed to load credentials file %s: %w", p.path, err)
	}
	section, err := cfg.GetSection(p.profile)
	if err != nil {
		return nil, ErrNotFound
	}
	keyID := section.Key("key_id").String()
	secret := section.Key("secret").String()
	if keyID == "" || secret == "" {
		return nil, ErrNotFound
	}
	return &Credential{
		KeyID:  keyID,
		Secret: secret,
	}, nil
}

var _ Provider = (*fileProvider)(nil)
