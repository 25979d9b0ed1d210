package session

import (
	"bytes"
	"context"
	"encoding/json"
	"time"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "chatshop:session:"

// RedisStore keeps each session in a hash of JSON-encoded slot values.
// Every write refreshes the key's expiry.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl}
}

func redisKey(sessionID string) string {
	return redisKeyPrefix + sessionID
}

func (r *RedisStore) Load(ctx context.Context, sessionID string) (Slots, error) {
	raw, err := r.client.HGetAll(ctx, redisKey(sessionID)).Result()
	if err != nil {
		return nil, errors.Wrapf(ErrSessionStore, "load %s: %v", sessionID, err)
	}
	slots := make(Slots, len(raw))
	for k, v := range raw {
		val, err := decodeValue(v)
		if err != nil {
			continue
		}
		slots[k] = val
	}
	return slots, nil
}

func (r *RedisStore) Get(ctx context.Context, sessionID, key string) (any, error) {
	raw, err := r.client.HGet(ctx, redisKey(sessionID), key).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrapf(ErrSessionStore, "get %s.%s: %v", sessionID, key, err)
	}
	val, err := decodeValue(raw)
	if err != nil {
		return nil, nil
	}
	return val, nil
}

func (r *RedisStore) Apply(ctx context.Context, sessionID string, events []SlotSet) error {
	if len(events) == 0 {
		return nil
	}
	key := redisKey(sessionID)
	set := map[string]interface{}{}
	var del []string
	for _, ev := range events {
		if ev.Value == nil {
			delete(set, ev.Name)
			del = append(del, ev.Name)
			continue
		}
		data, err := json.Marshal(ev.Value)
		if err != nil {
			return errors.Wrapf(err, "encode slot %s", ev.Name)
		}
		set[ev.Name] = string(data)
		del = removeString(del, ev.Name)
	}

	_, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		if len(del) > 0 {
			pipe.HDel(ctx, key, del...)
		}
		if len(set) > 0 {
			pipe.HSet(ctx, key, set)
		}
		if r.ttl > 0 {
			pipe.Expire(ctx, key, r.ttl)
		}
		return nil
	})
	if err != nil {
		return errors.Wrapf(ErrSessionStore, "apply %s: %v", sessionID, err)
	}
	return nil
}

func decodeValue(raw string) (any, error) {
	dec := json.NewDecoder(bytes.NewBufferString(raw))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	return v, nil
}

func removeString(list []string, s string) []string {
	out := list[:0]
	for _, v := range list {
		if v != s {
			out = append(out, v)
		}
	}
	return out
}
