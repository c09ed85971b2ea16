package database

import (
	"net"
	"net/url"
	"strconv"

	"github.com/rickgao/oligopoly/internal/config"
)

// BuildConnString builds a PostgreSQL connection URL from config. Pool
// sizes are carried as pgxpool query parameters.
func BuildConnString(cfg config.DBConfig) string {
	sslMode := cfg.SSLMode
	if sslMode == "" {
		sslMode = config.DefaultDBSSLMode
	}

	q := url.Values{}
	q.Set("sslmode", sslMode)
	if cfg.MaxConns > 0 {
		q.Set("pool_max_conns", strconv.Itoa(cfg.MaxConns))
	}
	if cfg.MinConns > 0 {
		q.Set("pool_min_conns", strconv.Itoa(cfg.MinConns))
	}

	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(cfg.User, cfg.Password),
		Host:     net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port)),
		Path:     "/" + cfg.Name,
		RawQuery: q.Encode(),
	}
	return u.String()
}
