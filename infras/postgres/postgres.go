package postgres

//nolint:revive
import (
	"fmt"
	"net"
	"net/url"
	"time"

	"resort/config"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/rs/zerolog/log"
)

const (
	postgresMaxIdleConnection = 10
	postgresMaxOpenConnection = 10
	postgresConnMaxLifetime   = 30 * time.Minute
)

// Connection splits reads and writes. Transactions always run on Write.
type Connection struct {
	Read  *sqlx.DB
	Write *sqlx.DB
}

type target struct {
	name     string
	host     string
	port     string
	username string
	password string
	database string
	sslMode  string
}

func New(cfg *config.Config) *Connection {
	pg := cfg.DB.Postgres

	write := target{"write", pg.Write.Host, pg.Write.Port, pg.Write.Username, pg.Write.Password, pg.Prefix + pg.Write.Name, pg.Write.SSLMode}
	read := target{"read", pg.Read.Host, pg.Read.Port, pg.Read.Username, pg.Read.Password, pg.Prefix + pg.Read.Name, pg.Read.SSLMode}

	writeDB := connect(write, pg.MaxRetry, pg.RetryWaitTime)

	// A missing read replica falls back to the primary.
	readDB := writeDB
	if pg.Read.Host != "" {
		readDB = connect(read, pg.MaxRetry, pg.RetryWaitTime)
	}

	return &Connection{
		Read:  readDB,
		Write: writeDB,
	}
}

// DSN builds a lib/pq URL, escaping credentials. Sessions run in UTC so DATE
// columns keep the calendar day they were written with.
func DSN(username, password, host, port, database, sslMode string) string {
	if sslMode == "" {
		sslMode = "disable"
	}

	dsn := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(username, password),
		Host:     net.JoinHostPort(host, port),
		Path:     database,
		RawQuery: "sslmode=" + url.QueryEscape(sslMode) + "&timezone=UTC",
	}

	return dsn.String()
}

func connect(t target, maxRetry, waitSeconds int) *sqlx.DB {
	dsn := DSN(t.username, t.password, t.host, t.port, t.database, t.sslMode)

	attempts := max(maxRetry, 1)

	for attempt := 1; attempt <= attempts; attempt++ {
		db, err := sqlx.Connect("postgres", dsn)
		if err == nil {
			db.SetMaxIdleConns(postgresMaxIdleConnection)
			db.SetMaxOpenConns(postgresMaxOpenConnection)
			db.SetConnMaxLifetime(postgresConnMaxLifetime)

			log.Info().
				Str("name", t.name).
				Str("host", t.host).
				Str("port", t.port).
				Str("dbName", t.database).
				Msg("Connected to database")

			return db
		}

		log.Error().
			Err(err).
			Str("name", t.name).
			Str("host", t.host).
			Int("attempt", attempt).
			Msg("Failed connecting to database, retrying")

		time.Sleep(time.Duration(waitSeconds) * time.Second)
	}

	log.Fatal().Str("name", t.name).Str("host", t.host).Msg(fmt.Sprintf("Giving up on database after %d attempts", attempts))

	return nil
}
