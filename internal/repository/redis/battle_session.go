package redis

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/freeeve/war-simulator/pkg/combat"
)

// sessionKey holds the single battle session shared by every server instance.
const sessionKey = "battle:session"

type stringGetter interface {
	Get(ctx context.Context, key string) *redis.StringCmd
}

// Load returns the stored battle session. A missing key is an idle session.
func (c *Client) Load(ctx context.Context) (combat.Session, error) {
	return loadSession(ctx, c.rdb)
}

// CompareAndSwap replaces the stored session with next if it still matches
// prev. The key is watched, so a write from another instance between the
// read and the commit aborts the swap. Idle sessions remove the key.
func (c *Client) CompareAndSwap(ctx context.Context, prev, next combat.Session) (bool, error) {
	var data []byte
	if !next.Idle() {
		var err error
		if data, err = json.Marshal(next); err != nil {
			return false, fmt.Errorf("encode battle session: %w", err)
		}
	}

	swapped := false
	err := c.rdb.Watch(ctx, func(tx *redis.Tx) error {
		current, err := loadSession(ctx, tx)
		if err != nil {
			return err
		}
		if !current.Matches(prev) {
			return nil
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			if data == nil {
				pipe.Del(ctx, sessionKey)
			} else {
				pipe.Set(ctx, sessionKey, data, 0)
			}
			return nil
		})
		if err != nil {
			return err
		}
		swapped = true
		return nil
	}, sessionKey)
	if err == redis.TxFailedErr {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("swap battle session: %w", err)
	}
	return swapped, nil
}

func loadSession(ctx context.Context, rdb stringGetter) (combat.Session, error) {
	data, err := rdb.Get(ctx, sessionKey).Bytes()
	if err == redis.Nil {
		return combat.Session{}, nil
	}
	if err != nil {
		return combat.Session{}, fmt.Errorf("get battle session: %w", err)
	}
	var sess combat.Session
	if err := json.Unmarshal(data, &sess); err != nil {
		return combat.Session{}, fmt.Errorf("decode battle session: %w", err)
	}
	return sess, nil
}
