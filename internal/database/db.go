// Package database opens the MySQL pool shared by the repositories.
package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql"
)

// Open builds the DSN, opens the pool and verifies connectivity with a
// short ping. parseTime maps DATETIME columns onto time.Time; loc=UTC
// keeps plan timestamps in a single zone end to end, matching the UTC
// timestamps the planner writes.
func Open(user, pass, host, port, name string) (*sql.DB, error) {
	creds := user
	if pass != "" {
		creds += ":" + pass
	}
	dsn := fmt.Sprintf("%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=true&loc=UTC",
		creds, host, port, name)

	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, err
	}

	// A plan flush rewrites every surface and seat row of the plan in one
	// transaction, so writes are chunky but rare. A small pool with hourly
	// recycling is plenty.
	db.SetMaxOpenConns(16)
	db.SetMaxIdleConns(8)
	db.SetConnMaxLifetime(time.Hour)

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}
