package catalog

import (
	"context"
	"time"

	"github.com/pkg/errors"
	bolt "go.etcd.io/bbolt"
)

// BoltBackend keeps the payload in a bbolt file.
type BoltBackend struct {
	db     *bolt.DB
	bucket []byte
	key    []byte
}

// OpenBolt opens (or creates) the bolt file at path and makes sure the bucket exists.
func OpenBolt(path, bucket, key string) (*BoltBackend, error) {
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: 3 * time.Second})
	if err != nil {
		return nil, errors.Wrapf(err, "open bolt file %s", path)
	}
	b := &BoltBackend{db: db, bucket: []byte(bucket), key: []byte(key)}
	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(b.bucket)
		return err
	})
	if err != nil {
		_ = db.Close()
		return nil, errors.Wrapf(err, "create bucket %s", bucket)
	}
	return b, nil
}

func (b *BoltBackend) Load(ctx context.Context) ([]byte, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}
	var payload []byte
	err := b.db.View(func(tx *bolt.Tx) error {
		bk := tx.Bucket(b.bucket)
		if bk == nil {
			return nil
		}
		if v := bk.Get(b.key); v != nil {
			// bolt memory is only valid inside the transaction
			payload = append([]byte{}, v...)
		}
		return nil
	})
	if err != nil {
		return nil, false, errors.Wrap(err, "read catalog payload")
	}
	return payload, payload != nil, nil
}

func (b *BoltBackend) Save(ctx context.Context, payload []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	err := b.db.Update(func(tx *bolt.Tx) error {
		bk, err := tx.CreateBucketIfNotExists(b.bucket)
		if err != nil {
			return err
		}
		return bk.Put(b.key, payload)
	})
	return errors.Wrap(err, "write catalog payload")
}

func (b *BoltBackend) Close() error {
	return b.db.Close()
}
