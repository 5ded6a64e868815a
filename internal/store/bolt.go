package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/propnest/realty/backend/internal/model/admin"
	"github.com/propnest/realty/backend/internal/model/lead"
	"github.com/propnest/realty/backend/internal/model/property"
)

var (
	propertiesBucket = []byte("properties")
	adminsBucket     = []byte("admins")
	leadsBucket      = []byte("leads")
)

// BoltStore persists listings, admin accounts and leads in a single bbolt file.
type BoltStore struct {
	db *bolt.DB
}

var (
	_ property.Repository        = (*BoltStore)(nil)
	_ admin.CredentialRepository = (*BoltStore)(nil)
	_ lead.Repository            = (*BoltStore)(nil)
)

func NewBoltStore(path string) (*BoltStore, error) {
	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("opening bolt db: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		for _, name := range [][]byte{propertiesBucket, adminsBucket, leadsBucket} {
			if _, err := tx.CreateBucketIfNotExists(name); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("creating buckets: %w", err)
	}

	return &BoltStore{db: db}, nil
}

// SeedProperties inserts the given listings when the catalogue is empty.
func (s *BoltStore) SeedProperties(items []property.Property) (int, error) {
	inserted := 0
	err := s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(propertiesBucket)
		if b.Stats().KeyN > 0 {
			return nil
		}
		for _, p := range items {
			data, err := json.Marshal(p)
			if err != nil {
				return err
			}
			if err := b.Put([]byte(p.ID), data); err != nil {
				return err
			}
			inserted++
		}
		return nil
	})
	return inserted, err
}

func (s *BoltStore) List(_ context.Context, filter property.Filter) ([]property.Property, error) {
	var out []property.Property
	err := s.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket(propertiesBucket).ForEach(func(_, v []byte) error {
			var p property.Property
			if err := json.Unmarshal(v, &p); err != nil {
				return err
			}
			if filter.Matches(p) {
				out = append(out, p)
			}
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	property.SortListings(out)
	return out, nil
}

func (s *BoltStore) Get(_ context.Context, id string) (property.Property, error) {
	var p property.Property
	err := s.db.View(func(tx *bolt.Tx) error {
		v := tx.Bucket(propertiesBucket).Get([]byte(id))
		if v == nil {
			return property.ErrNotFound
		}
		return json.Unmarshal(v, &p)
	})
	return p, err
}

func (s *BoltStore) Create(_ context.Context, p property.Property) (property.Property, error) {
	p = property.Prepare(p, time.Now().UTC())
	err := s.db.Update(func(tx *bolt.Tx) error {
		data, err := json.Marshal(p)
		if err != nil {
			return err
		}
		return tx.Bucket(propertiesBucket).Put([]byte(p.ID), data)
	})
	if err != nil {
		return property.Property{}, err
	}
	return p, nil
}

func (s *BoltStore) Update(_ context.Context, p property.Property) (property.Property, error) {
	err := s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(propertiesBucket)
		v := b.Get([]byte(p.ID))
		if v == nil {
			return property.ErrNotFound
		}
		var existing property.Property
		if err := json.Unmarshal(v, &existing); err != nil {
			return err
		}
		prepared := property.Prepare(p, time.Now().UTC())
		prepared.CreatedAt = existing.CreatedAt
		p = prepared

		data, err := json.Marshal(p)
		if err != nil {
			return err
		}
		return b.Put([]byte(p.ID), data)
	})
	if err != nil {
		return property.Property{}, err
	}
	return p, nil
}

func (s *BoltStore) Delete(_ context.Context, id string) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(propertiesBucket)
		if b.Get([]byte(id)) == nil {
			return property.ErrNotFound
		}
		return b.Delete([]byte(id))
	})
}

func (s *BoltStore) GetCredential(_ context.Context, username string) (admin.Credential, error) {
	var c admin.Credential
	err := s.db.View(func(tx *bolt.Tx) error {
		v := tx.Bucket(adminsBucket).Get([]byte(username))
		if v == nil {
			return admin.ErrCredentialNotFound
		}
		return json.Unmarshal(v, &c)
	})
	return c, err
}

func (s *BoltStore) SaveCredential(_ context.Context, c admin.Credential) error {
	if c.Username == "" {
		return errors.New("username is required")
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		data, err := json.Marshal(c)
		if err != nil {
			return err
		}
		return tx.Bucket(adminsBucket).Put([]byte(c.Username), data)
	})
}

func (s *BoltStore) SaveLead(_ context.Context, l lead.Lead) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		data, err := json.Marshal(l)
		if err != nil {
			return err
		}
		return tx.Bucket(leadsBucket).Put([]byte(l.ID), data)
	})
}

func (s *BoltStore) ListLeads(_ context.Context) ([]lead.Lead, error) {
	var out []lead.Lead
	err := s.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket(leadsBucket).ForEach(func(_, v []byte) error {
			var l lead.Lead
			if err := json.Unmarshal(v, &l); err != nil {
				return err
			}
			out = append(out, l)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	lead.SortNewestFirst(out)
	return out, nil
}

func (s *BoltStore) Close() error {
	return s.db.Close()
}
