package model

import (
	"fmt"
	"time"
)

// SlotLock is a short-lived advisory lock document. The _id doubles as the
// lock key; a duplicate key error on insert means another writer holds the
// slot. A TTL index on expires_at reaps abandoned locks.
type SlotLock struct {
	ID        string    `bson:"_id"`
	ExpiresAt time.Time `bson:"expires_at"`
}

// SlotLockKey builds the lock key for one resource at one instant. Start
// time is truncated to the minute so racing writers of the same slot always
// collide.
func SlotLockKey(resourceID string, start time.Time) string {
	return fmt.Sprintf("slot_lock_%s_%d", resourceID, start.Truncate(time.Minute).Unix())
}
