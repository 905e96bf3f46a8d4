package storage

import (
	"context"
	"database/sql"
	"fmt"
	"net"
	"net/url"
	"os"
	"strings"
	"time"

	_ "github.com/lib/pq"

	"github.com/yourusername/groupbuy-backend/internal/domain/entity"
	"github.com/yourusername/groupbuy-backend/internal/domain/repository"
)

const (
	postgresConnectAttempts = 5
	postgresConnectDelay    = 2 * time.Second
)

type postgresOrderArchive struct {
	db *sql.DB
}

// NewPostgresOrderArchive opens the optional durable order log. It is
// enabled only when the POSTGRES_* environment variables are present;
// otherwise (nil, nil) is returned and archiving is skipped. The sheet
// stays the authoritative store either way.
func NewPostgresOrderArchive() (repository.OrderArchive, error) {
	dsn := buildPostgresDSNFromEnv()
	if dsn == "" {
		return nil, nil
	}

	db, err := openPostgresWithRetry(dsn)
	if err != nil {
		return nil, fmt.Errorf("postgres archive: %w", err)
	}
	if err := ensureOrdersTable(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("postgres archive: %w", err)
	}
	return &postgresOrderArchive{db: db}, nil
}

// SaveOrder inserts one submitted order. Duplicate ids are ignored; the
// resync path may archive the same order twice.
func (a *postgresOrderArchive) SaveOrder(ctx context.Context, order entity.RecentOrder) error {
	_, err := a.db.ExecContext(ctx, `
		INSERT INTO group_orders (id, buyer, real_name, email, address, notes, product, quantity, group_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (id) DO NOTHING`,
		order.ID, order.Buyer, order.RealName, order.Email, order.Address,
		order.Notes, order.Product, order.Quantity, order.GroupID, order.Timestamp,
	)
	return err
}

func (a *postgresOrderArchive) Close() error {
	return a.db.Close()
}

func ensureOrdersTable(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS group_orders (
			id         TEXT PRIMARY KEY,
			buyer      TEXT NOT NULL,
			real_name  TEXT,
			email      TEXT,
			address    TEXT,
			notes      TEXT,
			product    TEXT,
			quantity   INTEGER NOT NULL DEFAULT 1,
			group_id   TEXT,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`)
	return err
}

func openPostgresWithRetry(dsn string) (*sql.DB, error) {
	var lastErr error
	for attempt := 1; attempt <= postgresConnectAttempts; attempt++ {
		db, err := sql.Open("postgres", dsn)
		if err == nil {
			if pingErr := db.Ping(); pingErr == nil {
				return db, nil
			} else {
				err = pingErr
			}
		}
		if db != nil {
			_ = db.Close()
		}
		lastErr = err
		if attempt < postgresConnectAttempts {
			time.Sleep(postgresConnectDelay)
		}
	}
	if lastErr == nil {
		lastErr = fmt.Errorf("connection failed")
	}
	return nil, lastErr
}

func buildPostgresDSNFromEnv() string {
	host := strings.TrimSpace(os.Getenv("POSTGRES_HOST"))
	user := strings.TrimSpace(os.Getenv("POSTGRES_USER"))
	password := os.Getenv("POSTGRES_PASSWORD")
	db := strings.TrimSpace(os.Getenv("POSTGRES_DB"))
	port := strings.TrimSpace(os.Getenv("POSTGRES_PORT"))
	sslmode := strings.TrimSpace(os.Getenv("POSTGRES_SSLMODE"))

	if host == "" || user == "" || db == "" {
		return ""
	}
	if port == "" {
		port = "5432"
	}
	if sslmode == "" {
		sslmode = "disable"
	}

	db = strings.TrimPrefix(db, "/")
	u := url.URL{
		Scheme: "postgres",
		Host:   net.JoinHostPort(host, port),
		Path:   "/" + db,
	}
	if password == "" {
		u.User = url.User(user)
	} else {
		u.User = url.UserPassword(user, password)
	}
	q := u.Query()
	q.Set("sslmode", sslmode)
	u.RawQuery = q.Encode()
	return u.String()
}
