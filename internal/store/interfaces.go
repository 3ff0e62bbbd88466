package store

import "context"

//go:generate mockgen -source=interfaces.go -destination=../mock/record_store_mock.go -package=mock

// Fixed record names. Every persisted client-side value lives under one of
// these; no other component writes storage directly.
const (
	RecordAccessToken   = "access_token"
	RecordRefreshToken  = "refresh_token"
	RecordUserProfile   = "user_profile"
	RecordOrderSnapshot = "order_snapshot"
)

// RecordStore is the client's persistent key-value storage for small string
// records (encrypted credential blobs and the order snapshot). Values are
// opaque strings; encryption happens above this layer.
type RecordStore interface {
	// Get returns the stored value for name. The second return is false when
	// no record exists; that is not an error.
	Get(ctx context.Context, name string) (string, bool, error)

	// Put inserts or replaces the record under name.
	Put(ctx context.Context, name, value string) error

	// Delete removes the named records. Missing records are ignored.
	Delete(ctx context.Context, names ...string) error
}
