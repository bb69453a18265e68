package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/emrgen/bioref/internal/compress"
	redis "github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

var _ Cache = (*Redis)(nil)

type Redis struct {
	client  *redis.Client
	encoder compress.Compress
	ttl     time.Duration
}

// Options configures the redis connection and payload encoding.
type Options struct {
	Addr     string
	Password string
	DB       int
	TTL      time.Duration
	Encoder  compress.Compress
}

func NewRedis(opts Options) *Redis {
	client := redis.NewClient(&redis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
		Protocol: 2,
	})

	return newRedis(client, opts)
}

func newRedis(client *redis.Client, opts Options) *Redis {
	if opts.Encoder == nil {
		opts.Encoder = compress.NewNop()
	}
	if opts.TTL <= 0 {
		opts.TTL = DefaultTTL
	}

	return &Redis{client: client, encoder: opts.Encoder, ttl: opts.TTL}
}

// Ping checks the connection, used at startup to fall back to no cache.
func (r *Redis) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

func (r *Redis) Get(ctx context.Context, key string, v any) (bool, error) {
	res := r.client.Get(ctx, key)
	if res.Err() != nil {
		if errors.Is(res.Err(), redis.Nil) {
			return false, nil
		}
		return false, res.Err()
	}

	buf, err := res.Bytes()
	if err != nil {
		return false, err
	}

	data, err := r.encoder.Decode(buf)
	if err == nil {
		err = json.Unmarshal(data, v)
	}
	if err != nil {
		// written by another codec or an older schema
		logrus.Warnf("dropping undecodable cache entry %s: %v", key, err)
		return false, r.client.Del(ctx, key).Err()
	}

	return true, nil
}

func (r *Redis) Set(ctx context.Context, key string, v any) error {
	marshal, err := json.Marshal(v)
	if err != nil {
		return err
	}

	data, err := r.encoder.Encode(marshal)
	if err != nil {
		return err
	}

	return r.client.Set(ctx, key, data, r.ttl).Err()
}

// SetMany writes all entries in one pipeline round trip.
func (r *Redis) SetMany(ctx context.Context, entries map[string]any) error {
	_, err := r.client.TxPipelined(ctx, func(p redis.Pipeliner) error {
		for key, v := range entries {
			marshal, err := json.Marshal(v)
			if err != nil {
				return err
			}
			data, err := r.encoder.Encode(marshal)
			if err != nil {
				return err
			}
			if err := p.Set(ctx, key, data, r.ttl).Err(); err != nil {
				return err
			}
		}
		return nil
	})

	return err
}

func (r *Redis) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	return r.client.Del(ctx, keys...).Err()
}

func (r *Redis) Close() error {
	return r.client.Close()
}
