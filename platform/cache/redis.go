package cache

import (
	"time"

	"github.com/gomodule/redigo/redis"
)

// ConnSource hands out connections; *redis.Pool satisfies it.
type ConnSource interface {
	Get() redis.Conn
}

func CreateRedisPool(addr string) *redis.Pool {
	return &redis.Pool{
		MaxIdle:     10,
		IdleTimeout: 60 * time.Second,
		Dial:        func() (redis.Conn, error) { return redis.Dial("tcp", addr) },
		TestOnBorrow: func(c redis.Conn, t time.Time) error {
			if time.Since(t) < time.Minute {
				return nil
			}
			_, err := c.Do("PING")
			return err
		},
	}
}

// Ping checks that the server is reachable.
func Ping(conns ConnSource) error {
	conn := conns.Get()
	defer conn.Close()
	_, err := conn.Do("PING")
	return err
}
