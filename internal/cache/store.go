// Package cache stores raw fetched pages under a (bucket, name) key.
//
// Stores never expire anything. Freshness is decided by the caller through
// key construction: index pages use a minute-granularity name, so a new key
// appears every minute, while thread pages are keyed by thread and page.
package cache

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strconv"
	"time"
)

// ErrMiss reports that nothing is stored under a key. It is not a failure.
var ErrMiss = errors.New("cache: key not found")

type Store interface {
	Read(ctx context.Context, bucket, name string) (string, error)
	Write(ctx context.Context, bucket, name, content string) error
}

// Key addresses one cached snapshot.
type Key struct {
	Bucket string
	Name   string
}

func (k Key) String() string {
	return path.Join(k.Bucket, k.Name)
}

const indexTimeLayout = "200601021504"

// IndexKey returns the key of the channel index snapshot for the minute
// containing now.
func IndexKey(now time.Time) Key {
	return Key{Bucket: "topics", Name: now.Format(indexTimeLayout)}
}

// ShowKey returns the key of one page of a thread.
func ShowKey(threadID string, page int) Key {
	return Key{Bucket: path.Join("show", threadID), Name: "show_" + strconv.Itoa(page)}
}

func validateKey(bucket, name string) error {
	if name == "" {
		return fmt.Errorf("cache: empty name in bucket %q", bucket)
	}
	return nil
}
