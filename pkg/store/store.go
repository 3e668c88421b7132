// Package store persists group definitions.
//
// A [Record] pairs a definition with a generated ID and timestamps. The HTTP
// API keeps every created group in a [Store] so that groups survive a
// restart, and rebuilds their stabilizer chains on demand.
//
// Backends:
//   - memory: in-process map, for tests and ephemeral servers
//   - file: one JSON file per record
//   - sqlite: a single database file
//   - redis: shared storage for multi-instance deployments
//   - mongo: document storage
//
// Use [Open] to pick a backend from configuration.
package store

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/matzehuels/permgroup/pkg/errors"
	groupio "github.com/matzehuels/permgroup/pkg/io"
)

// ErrNotFound is returned when a record does not exist.
var ErrNotFound = errors.New(errors.ErrCodeGroupNotFound, "group not found")

// Record is a stored group definition.
type Record struct {
	ID         string             `json:"id" bson:"_id"`
	Definition groupio.Definition `json:"definition" bson:"definition"`
	CreatedAt  time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt  time.Time          `json:"updated_at" bson:"updated_at"`
}

// NewRecord returns a record for def with a fresh ID.
func NewRecord(def groupio.Definition) *Record {
	return &Record{ID: NewID(), Definition: def}
}

// NewID returns a random record ID.
func NewID() string {
	return uuid.NewString()
}

// ValidID reports whether id has the shape of an ID from NewID.
func ValidID(id string) bool {
	return uuid.Validate(id) == nil
}

// Store is the interface for definition storage backends.
type Store interface {
	// Get returns the record with the given ID, or an error wrapping
	// ErrNotFound.
	Get(ctx context.Context, id string) (*Record, error)

	// Put inserts or replaces a record. It sets UpdatedAt, and CreatedAt
	// when it is zero.
	Put(ctx context.Context, rec *Record) error

	// Delete removes a record, returning an error wrapping ErrNotFound if it
	// does not exist.
	Delete(ctx context.Context, id string) error

	// List returns all records, oldest first.
	List(ctx context.Context) ([]*Record, error)

	// Close releases backend resources.
	Close() error
}

// Backend names accepted by Open.
const (
	BackendMemory = "memory"
	BackendFile   = "file"
	BackendSQLite = "sqlite"
	BackendRedis  = "redis"
	BackendMongo  = "mongo"
)

// Backends lists the backend names.
func Backends() []string {
	return []string{BackendMemory, BackendFile, BackendSQLite, BackendRedis, BackendMongo}
}

// Config selects and configures a backend.
type Config struct {
	Backend string `toml:"backend"`

	// Path is the directory of the file backend or the database file of
	// the sqlite backend.
	Path string `toml:"path"`

	RedisAddr string `toml:"redis_addr"`

	MongoURI      string `toml:"mongo_uri"`
	MongoDatabase string `toml:"mongo_database"`
}

// Open returns the backend named by cfg.Backend. An empty name selects the
// memory backend.
func Open(ctx context.Context, cfg Config) (Store, error) {
	switch strings.ToLower(cfg.Backend) {
	case "", BackendMemory:
		return NewMemoryStore(), nil
	case BackendFile:
		return NewFileStore(cfg.Path)
	case BackendSQLite:
		return NewSQLiteStore(ctx, cfg.Path)
	case BackendRedis:
		return NewRedisStore(ctx, cfg.RedisAddr)
	case BackendMongo:
		return NewMongoStore(ctx, cfg.MongoURI, cfg.MongoDatabase)
	}
	return nil, errors.New(errors.ErrCodeUnsupported, "unknown store backend %q (want one of %s)",
		cfg.Backend, strings.Join(Backends(), ", "))
}

func stamp(rec *Record) {
	now := time.Now().UTC()
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = now
	}
	rec.UpdatedAt = now
}

// storageErr marks a backend failure so callers can tell it from bad input.
func storageErr(cause error, format string, args ...any) error {
	return errors.Wrap(errors.ErrCodeStorage, cause, format, args...)
}

func notFound(id string) error {
	return fmt.Errorf("%w: %s", ErrNotFound, id)
}

func sortRecords(recs []*Record) {
	slices.SortFunc(recs, func(a, b *Record) int {
		if c := a.CreatedAt.Compare(b.CreatedAt); c != 0 {
			return c
		}
		return strings.Compare(a.ID, b.ID)
	})
}
