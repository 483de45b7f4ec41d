package credentials

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_FileProvider(t *testing.T) {
	path := filepath.Join(t.TempDir(), "credentials")
	contents := `[default]
key_id = stow-admin
secret = 5cBqTroxygWVJW1AHVZ4SJPb3f0Y0K7R

[staging]
key_id = stow-staging
secret = another-secret
`
	assert.NoError(t, os.WriteFile(path, []byte(contents), 0o600))

	t.Run("reads the requested profile", func(t *testing.T) {
		p := NewFileProvider(path, "default")
		c, err := p.GetAdminCredential(context.Background())
		assert.NoError(t, err)
		assert.Equal(t, &Credential{KeyID: "stow-admin", Secret: "5cBqTroxygWVJW1AHVZ4SJPb3f0Y0K7R"}, c)

		p = NewFileProvider(path, "staging")
		c, err = p.GetAdminCredential(context.Background())
		assert.NoError(t, err)
		assert.Equal(t, &Credential{KeyID: "stow-staging", Secret: "another-secret"}, c)
	})

	t.Run("a missing profile resolves to ErrNotFound", func(t *testing.T) {
		p := NewFileProvider(path, "production")
		c, err := p.GetAdminCredential(context.Background())
		assert.Nil(t, c)
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("a profile with missing keys resolves to ErrNotFound", func(t *testing.T) {
		partial := filepath.Join(t.TempDir(), "credentials")
		assert.NoError(t, os.WriteFile(partial, []byte("[default]\nkey_id = stow-admin\n"), 0o600))
		p := NewFileProvider(partial, "default")
		c, err := p.GetAdminCredential(context.Background())
		assert.Nil(t, c)
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("an unreadable file surfaces a load error", func(t *testing.T) {
		p := NewFileProvider(filepath.Join(t.TempDir(), "no-such-file"), "default")
		c, err := p.GetAdminCredential(context.Background())
		assert.Nil(t, c)
		assert.Error(t, err)
		assert.NotErrorIs(t, err, ErrNotFound)
	})

	t.Run("edits take effect on the next lookup", func(t *testing.T) {
		rotated := filepath.Join(t.TempDir(), "credentials")
		assert.NoError(t, os.WriteFile(rotated, []byte("[default]\nkey_id = stow-admin\nsecret = before\n"), 0o600))
		p := NewFileProvider(rotated, "default")

		c, err := p.GetAdminCredential(context.Background())
		assert.NoError(t, err)
		assert.Equal(t, "before", c.Secret)

		assert.NoError(t, os.WriteFile(rotated, []byte("[default]\nkey_id = stow-admin\nsecret = after\n"), 0o600))
		c, err = p.GetAdminCredential(context.Background())
		assert.NoError(t, err)
		assert.Equal(t, "after", c.Secret)
	})
}
