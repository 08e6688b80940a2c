package rdx

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// NewClient builds the shared Redis client used for booking events.
func NewClient(addr, password string, db int) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     password,
		DB:           db,
		ReadTimeout:  500 * time.Millisecond,
		WriteTimeout: 500 * time.Millisecond,
	})
}

// Connect creates the client and pings it once.
func Connect(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	conn := NewClient(addr, password, db)
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := conn.Ping(ctx).Err(); err != nil {
		conn.Close()
		return nil, err
	}
	return conn, nil
}
