package config

import (
	"fmt"

	"github.com/redis/rueidis"
)

// NewRedisClient connects to the session store. Client side caching is off
// so revoked sessions are seen immediately.
func NewRedisClient(addr string) (rueidis.Client, error) {
	redisClient, err := rueidis.NewClient(
		rueidis.ClientOption{
			InitAddress:  []string{addr},
			DisableCache: true,
		},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create redis client: %w", err)
	}

	return redisClient, nil
}
