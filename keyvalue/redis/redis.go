// Package redis provides a keyvalue.Store backed by a Redis instance,
// separate from the main application database.
package redis

import (
	"errors"
	"fmt"
	"time"

	"github.com/gomodule/redigo/redis"
	"github.com/jpillora/backoff"

	"github.com/alphacoop/gateway-settings-api/keyvalue"
)

const dialMaxAttempts = 5

type Store struct {
	pool   *redis.Pool
	prefix string
}

// NewStore connects to the Redis instance at url. The initial dial is
// retried with backoff as the instance may still be starting up.
func NewStore(url string) *Store {
	pool := &redis.Pool{
		MaxIdle:   80,
		MaxActive: 1000,
		Dial: func() (redis.Conn, error) {
			b := &backoff.Backoff{
				Min:    100 * time.Millisecond,
				Max:    2 * time.Second,
				Factor: 2,
				Jitter: true,
			}
			for {
				c, err := redis.DialURL(url)
				if err == nil {
					return c, nil
				}
				if int(b.Attempt()) >= dialMaxAttempts-1 {
					return nil, err
				}
				time.Sleep(b.Duration())
			}
		},
	}

	return &Store{pool: pool, prefix: "gatewaysettings"}
}

func (s *Store) prefixedKey(key string) string {
	return fmt.Sprintf("%s:%s", s.prefix, key)
}

func (s *Store) Get(key string) (string, error) {
	conn := s.pool.Get()
	defer conn.Close()

	v, err := redis.String(conn.Do("GET", s.prefixedKey(key)))
	if errors.Is(err, redis.ErrNil) {
		return "", keyvalue.ErrNotFound
	} else if err != nil {
		return "", err
	}

	return v, nil
}

func (s *Store) Set(key, value string) error {
	conn := s.pool.Get()
	defer conn.Close()

	res, err := redis.String(conn.Do("SET", s.prefixedKey(key), value))
	if err != nil {
		return err
	}

	if res != "OK" {
		return fmt.Errorf("failed to set key: %v", res)
	}

	return nil
}

func (s *Store) Close() error {
	return s.pool.Close()
}
