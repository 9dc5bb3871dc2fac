// Package cache is a content-addressed result cache backed by SQLite.
// Results are keyed by the SHA-256 of the raw document bytes, so a
// re-upload of the same manual skips the whole pipeline.
package cache

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"encoding/json"
	"log/slog"
	"time"

	_ "modernc.org/sqlite"

	"github.com/joseph-ayodele/modbus-extractor/internal/common"
	"github.com/joseph-ayodele/modbus-extractor/internal/entity"
)

const schema = `
CREATE TABLE IF NOT EXISTS extraction_cache (
	doc_hash    TEXT PRIMARY KEY,
	payload     BLOB NOT NULL,
	inserted_at INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_extraction_cache_inserted_at
	ON extraction_cache (inserted_at);
`

// Store is a TTL-and-capacity bounded cache. Expiry is lazy: a stale row
// is deleted when Get touches it, not by a background sweeper.
type Store struct {
	db         *sql.DB
	ttl        time.Duration
	maxEntries int
	logger     *slog.Logger
	now        func() time.Time
}

// NewStore opens (or creates) the cache database at path. Use ":memory:"
// for an ephemeral cache.
func NewStore(path string, cfg common.CacheConfig, logger *slog.Logger) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, common.WrapError(err, "open cache database")
	}
	// modernc/sqlite is not safe for concurrent writers on one connection
	// pool beyond this; a result cache has no need for more.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, common.WrapError(err, "create cache schema")
	}
	return &Store{
		db:         db,
		ttl:        cfg.TTL.Std(),
		maxEntries: cfg.MaxEntries,
		logger:     logger,
		now:        time.Now,
	}, nil
}

// Close releases the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Hash returns the content address for a document.
func (s *Store) Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// Get returns the cached result for docHash, if present and fresh. An
// expired row is deleted on the way out and reported as a miss.
func (s *Store) Get(ctx context.Context, docHash string) (*entity.Result, bool, error) {
	var payload []byte
	var insertedAt int64
	err := s.db.QueryRowContext(ctx,
		`SELECT payload, inserted_at FROM extraction_cache WHERE doc_hash = ?`,
		docHash).Scan(&payload, &insertedAt)
	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, common.WrapError(err, "cache lookup")
	}

	if s.ttl > 0 && s.now().Sub(time.Unix(insertedAt, 0)) > s.ttl {
		if _, err := s.db.ExecContext(ctx,
			`DELETE FROM extraction_cache WHERE doc_hash = ?`, docHash); err != nil {
			s.logger.Warn("cache.expire_fail", "doc_hash", docHash, "error", err)
		}
		return nil, false, nil
	}

	var res entity.Result
	if err := json.Unmarshal(payload, &res); err != nil {
		// A corrupt row is unrecoverable; drop it and miss.
		s.logger.Warn("cache.corrupt_payload", "doc_hash", docHash, "error", err)
		s.db.ExecContext(ctx, `DELETE FROM extraction_cache WHERE doc_hash = ?`, docHash)
		return nil, false, nil
	}
	return &res, true, nil
}

// Set stores a result under docHash, evicting the oldest-inserted rows
// when the cache is at capacity.
func (s *Store) Set(ctx context.Context, docHash string, res *entity.Result) error {
	payload, err := json.Marshal(res)
	if err != nil {
		return common.WrapError(err, "encode cache payload")
	}

	if s.maxEntries > 0 {
		if err := s.evictFor(ctx, docHash); err != nil {
			return err
		}
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO extraction_cache (doc_hash, payload, inserted_at)
		 VALUES (?, ?, ?)
		 ON CONFLICT(doc_hash) DO UPDATE SET payload = excluded.payload,
		                                     inserted_at = excluded.inserted_at`,
		docHash, payload, s.now().Unix())
	return common.WrapError(err, "cache store")
}

// evictFor makes room for one more row, oldest insertion first. Replacing
// an existing hash needs no eviction.
func (s *Store) evictFor(ctx context.Context, docHash string) error {
	var exists int
	if err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM extraction_cache WHERE doc_hash = ?`, docHash).Scan(&exists); err != nil {
		return common.WrapError(err, "cache existence check")
	}
	if exists > 0 {
		return nil
	}

	var count int
	if err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM extraction_cache`).Scan(&count); err != nil {
		return common.WrapError(err, "cache size check")
	}
	for count >= s.maxEntries {
		res, err := s.db.ExecContext(ctx,
			`DELETE FROM extraction_cache WHERE doc_hash IN (
				SELECT doc_hash FROM extraction_cache ORDER BY inserted_at ASC LIMIT 1)`)
		if err != nil {
			return common.WrapError(err, "cache eviction")
		}
		n, _ := res.RowsAffected()
		if n == 0 {
			break
		}
		count--
	}
	return nil
}
