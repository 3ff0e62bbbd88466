// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package credstore

import (
	"context"
	"sync"
	"time"

	"github.com/MKhiriev/go-ramp-client/internal/crypto"
	"github.com/MKhiriev/go-ramp-client/internal/logger"
	"github.com/MKhiriev/go-ramp-client/internal/store"
	"github.com/MKhiriev/go-ramp-client/models"
)

// loadTimeout bounds the one-time decrypt-on-load pass so a wedged storage
// backend cannot block every reader forever.
const loadTimeout = 5 * time.Second

type credentialStore struct {
	keychain crypto.KeyChain
	records  store.RecordStore
	log      *logger.Logger

	// key is nil when crypto is unavailable; the store then degrades to
	// memory-only: reads start empty, writes skip storage.
	key []byte

	initOnce sync.Once
	initDone chan struct{}

	mu     sync.RWMutex
	bundle models.CredentialBundle
}

// New constructs a [Store] over the given keychain and record store. The
// vault key is derived once here — derivation is deliberately slow.
//
// A nil keychain or record store means crypto/storage is unavailable: the
// store still works in memory-only mode, logged once at construction.
func New(keychain crypto.KeyChain, records store.RecordStore, appSecret string, log *logger.Logger) Store {
	cs := &credentialStore{
		keychain: keychain,
		records:  records,
		log:      log,
		initDone: make(chan struct{}),
	}

	if keychain == nil || records == nil {
		cs.log.Error().Msg("credential vault unavailable, degrading to memory-only storage")
		return cs
	}

	cs.key = keychain.DeriveKey(appSecret)
	return cs
}

// ensureInit launches the single load pass. Late callers attach to the same
// initDone channel instead of triggering redundant decrypt work.
func (c *credentialStore) ensureInit() {
	c.initOnce.Do(func() {
		go func() {
			defer close(c.initDone)
			c.loadFromStorage()
		}()
	})
}

func (c *credentialStore) awaitInit(ctx context.Context) error {
	c.ensureInit()
	select {
	case <-c.initDone:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// loadFromStorage decrypts the persisted records into memory. Every failure
// (missing record, storage error, undecryptable blob) resolves to "absent":
// the user simply appears signed out.
func (c *credentialStore) loadFromStorage() {
	if c.key == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), loadTimeout)
	defer cancel()

	var bundle models.CredentialBundle

	if record, ok := c.readRecord(ctx, store.RecordAccessToken); ok {
		var access string
		if c.keychain.Open(c.key, record, &access) {
			bundle.AccessToken = access
		}
	}
	if record, ok := c.readRecord(ctx, store.RecordRefreshToken); ok {
		var refresh string
		if c.keychain.Open(c.key, record, &refresh) {
			bundle.RefreshToken = refresh
		}
	}
	if record, ok := c.readRecord(ctx, store.RecordUserProfile); ok {
		var user models.UserProfile
		if c.keychain.Open(c.key, record, &user) {
			bundle.User = &user
		}
	}

	// Mutators all await the load pass, so nothing can have written the
	// bundle yet; plain assignment is safe.
	c.mu.Lock()
	c.bundle = bundle
	c.mu.Unlock()

	c.log.Debug().Bool("hasTokens", bundle.AccessToken != "").Msg("credential vault loaded")
}

func (c *credentialStore) readRecord(ctx context.Context, name string) (string, bool) {
	record, ok, err := c.records.Get(ctx, name)
	if err != nil {
		c.log.Err(err).Str("record", name).Msg("error reading credential record")
		return "", false
	}
	return record, ok
}

func (c *credentialStore) GetTokens(ctx context.Context) (models.TokenPair, error) {
	if err := c.awaitInit(ctx); err != nil {
		return models.TokenPair{}, err
	}

	c.mu.RLock()
	defer c.mu.RUnlock()
	return models.TokenPair{
		AccessToken:  c.bundle.AccessToken,
		RefreshToken: c.bundle.RefreshToken,
	}, nil
}

func (c *credentialStore) SetTokens(ctx context.Context, access, refresh string) error {
	if err := c.awaitInit(ctx); err != nil {
		return err
	}

	c.mu.Lock()
	c.bundle.AccessToken = access
	c.bundle.RefreshToken = refresh
	c.mu.Unlock()

	if err := c.writeRecord(ctx, store.RecordAccessToken, access); err != nil {
		return err
	}
	return c.writeRecord(ctx, store.RecordRefreshToken, refresh)
}

func (c *credentialStore) GetUser() *models.UserProfile {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.bundle.User == nil {
		return nil
	}
	user := *c.bundle.User
	return &user
}

func (c *credentialStore) SetUser(ctx context.Context, user *models.UserProfile) error {
	if err := c.awaitInit(ctx); err != nil {
		return err
	}

	c.mu.Lock()
	c.bundle.User = user
	c.mu.Unlock()

	return c.writeRecord(ctx, store.RecordUserProfile, user)
}

// writeRecord seals and persists one value. In memory-only mode the write is
// dropped; that was already logged once at construction.
func (c *credentialStore) writeRecord(ctx context.Context, name string, value any) error {
	if c.key == nil {
		return nil
	}

	record, err := c.keychain.Seal(c.key, value)
	if err != nil {
		c.log.Err(err).Str("record", name).Msg("error sealing credential record")
		return nil
	}
	if err = c.records.Put(ctx, name, record); err != nil {
		c.log.Err(err).Str("record", name).Msg("error persisting credential record")
		return nil
	}
	return nil
}

func (c *credentialStore) Clear(ctx context.Context) {
	// Wait for the load pass so it cannot resurrect what we wipe below.
	// A cancelled ctx still wipes memory; only the record delete is skipped.
	if err := c.awaitInit(ctx); err != nil {
		c.mu.Lock()
		c.bundle = models.CredentialBundle{}
		c.mu.Unlock()
		return
	}

	c.mu.Lock()
	c.bundle = models.CredentialBundle{}
	c.mu.Unlock()

	if c.key == nil {
		return
	}

	err := c.records.Delete(ctx,
		store.RecordAccessToken,
		store.RecordRefreshToken,
		store.RecordUserProfile,
	)
	if err != nil {
		c.log.Err(err).Msg("error deleting credential records")
	}
}
