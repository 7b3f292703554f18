package store

import (
	"context"
	"database/sql"
	"fmt"
	"net"
	"strconv"
	"time"

	"github.com/go-sql-driver/mysql"
)

// MySQLConfig locates a MySQL catalog database.
type MySQLConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Database string
	Timeout  time.Duration
}

// DefaultMySQLConfig matches a local development server.
func DefaultMySQLConfig() MySQLConfig {
	return MySQLConfig{
		Host:     "127.0.0.1",
		Port:     3306,
		User:     "root",
		Database: "skripsi",
		Timeout:  10 * time.Second,
	}
}

// DSN renders the configuration in go-sql-driver/mysql format.
func (c MySQLConfig) DSN() string {
	cfg := mysql.NewConfig()
	cfg.User = c.User
	cfg.Passwd = c.Password
	cfg.Net = "tcp"
	cfg.Addr = net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
	cfg.DBName = c.Database
	cfg.ParseTime = true
	cfg.Timeout = c.Timeout
	return cfg.FormatDSN()
}

// OpenMySQL connects to MySQL using a DSN and verifies the connection.
func OpenMySQL(ctx context.Context, dsn string) (*sql.DB, error) {
	if _, err := mysql.ParseDSN(dsn); err != nil {
		return nil, fmt.Errorf("invalid mysql dsn: %w", err)
	}
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open mysql connection: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping mysql: %w", err)
	}
	return db, nil
}
