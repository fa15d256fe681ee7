package cache

import (
	"github.com/gomodule/redigo/redis"
)

// Get returns redis.ErrNil when the key does not exist.
func Get(key string, conn redis.Conn) ([]byte, error) {
	return redis.Bytes(conn.Do("GET", key))
}

// LGET returns the whole list.
func LGET(key string, conn redis.Conn) ([]string, error) {
	return redis.Strings(conn.Do("LRANGE", key, 0, -1))
}

func LREM(key string, val string, conn redis.Conn) error {
	_, err := conn.Do("LREM", key, 0, val)
	return err
}
