package database

import (
	"net/url"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"

	"github.com/pawtel/collar-telemetry/internal/config"
)

func Connect() (*sqlx.DB, error) {
	dsn := config.DSN()
	if config.RequireTLS() {
		dsn = forceTLS(dsn)
	}
	return sqlx.Connect("pgx", dsn)
}

// forceTLS rewrites the DSN so the server certificate is required.
func forceTLS(dsn string) string {
	u, err := url.Parse(dsn)
	if err != nil {
		return dsn
	}
	q := u.Query()
	q.Set("sslmode", "require")
	u.RawQuery = q.Encode()
	return u.String()
}
