package database

import (
	"context"
	"fmt"
	"log"
	"time"
)

var (
	maxRetries    = 30
	retryInterval = 2 * time.Second
)

// Pinger is satisfied by *sql.DB
type Pinger interface {
	PingContext(ctx context.Context) error
}

// WaitForDatabase pings the store until it answers, the attempts run out or ctx ends
func WaitForDatabase(ctx context.Context, db Pinger) error {
	log.Println("Waiting for database to be ready...")

	for i := 0; i < maxRetries; i++ {
		err := db.PingContext(ctx)
		if err == nil {
			log.Println("Database is ready!")
			return nil
		}

		log.Printf("Database not ready (attempt %d/%d): %v", i+1, maxRetries, err)

		if i == maxRetries-1 {
			break
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(retryInterval):
		}
	}

	return fmt.Errorf("database not ready after %d attempts", maxRetries)
}
