package credentials

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/url"

	_ "github.com/lib/pq"
)

// FormatConnectionString formats the provided database connection details
// into a 'postgres://' URI that can be passed to OpenPostgres
func FormatConnectionString(host string, port int, dbname, user, password, sslmode string) string {
	urlencodedPassword := url.QueryEscape(password)
	s := fmt.Sprintf("postgres://%s:%s@%s:%d/%s", user, urlencodedPassword, host, port, dbname)
	if sslmode != "" {
		s += fmt.Sprintf("?sslmode=%s", sslmode)
	}
	return s
}

// OpenPostgres opens a database handle for the given connection string using
// the lib/pq driver.
func OpenPostgres(connectionString string) (*sql.DB, error) {
	return sql.Open("postgres", connectionString)
}

// NewPostgresProvider returns a Provider that resolves the admin credential
// from the admin_credential table on every lookup. The table is expected to
// hold at most one row; an empty table resolves to ErrNotFound.
func NewPostgresProvider(db *sql.DB) Provider {
	return &postgresProvider{
		db: db,
	}
}

type postgresProvider struct {
	db *sql.DB
}

func (p *postgresProvider) GetAdminCredential(ctx context.Context) (*Credential, error) {
	row := p.db.QueryRowContext(ctx, "SELECT key_id, secret FROM admin_credential LIMIT 1")
	var c Credential
	if err := row.Scan(&c.KeyID, &c.Secret); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to query admin credential: %w", err)
	}
	return &c, nil
}

var _ Provider = (*postgresProvider)(nil)
