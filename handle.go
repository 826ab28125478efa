package blastdb

import (
	"context"
	"fmt"
	"sync"

	"github.com/grailbio/base/errors"
)

// Handle is a lazy, read-only reference to one sequence in a DB.  No
// residue data is held until Text or Len forces a whole-sequence read,
// whose result is then cached for the life of the handle.  Truncate and
// Subseq read their range from the database on every call and never touch
// that cache.
type Handle struct {
	db   *DB
	id   string
	desc string

	mu    sync.Mutex
	whole Seq // set at most once, under mu
}

// ID returns the identifier the handle was looked up with.
func (h *Handle) ID() string { return h.id }

// Description returns the defline description recorded at Lookup time, or
// "" if the entry has no definition line.
func (h *Handle) Description() string { return h.desc }

// Alphabet reports the residue alphabet of the owning database.
func (h *Handle) Alphabet() (Alphabet, error) { return h.db.Alphabet() }

func (h *Handle) materialize(ctx context.Context) (Seq, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.whole != nil {
		return h.whole, nil
	}
	seq, err := h.db.fetchSeq(ctx, Request{ID: h.id}, 0)
	if err != nil {
		return nil, err
	}
	if seq == nil {
		// Lookup saw this entry; the database changed underneath us.
		return nil, errors.E(fmt.Sprintf("sequence %s disappeared from database %s", h.id, h.db.Path))
	}
	h.whole = seq
	return seq, nil
}

// Text returns the full residue string.  The first call retrieves and
// caches the whole sequence; later calls are served from the cache.
func (h *Handle) Text(ctx context.Context) (string, error) {
	seq, err := h.materialize(ctx)
	if err != nil {
		return "", err
	}
	return seq.Text(), nil
}

// Len returns the total residue count.  blastdbcmd has no length-only
// query, so this forces the same full materialization as Text.
func (h *Handle) Len(ctx context.Context) (int64, error) {
	seq, err := h.materialize(ctx)
	if err != nil {
		return 0, err
	}
	return seq.Len(), nil
}

// Truncate retrieves the 1-based closed range [start, end] with a fresh
// bounded retrieval.  The representation of the result is chosen from the
// requested span length.  Returns a nil Seq (and nil error) if the entry
// has vanished from the database.
func (h *Handle) Truncate(ctx context.Context, start, end int64) (Seq, error) {
	if start < 1 || start > end {
		return nil, fmt.Errorf("invalid range %d-%d: start must be positive and no greater than end", start, end)
	}
	return h.db.fetchSeq(ctx, Request{ID: h.id, Start: start, End: end}, end-start+1)
}

// Subseq is shorthand for Truncate followed by a full read of the result.
// It returns "" with a nil error if the entry is absent.
func (h *Handle) Subseq(ctx context.Context, start, end int64) (string, error) {
	seq, err := h.Truncate(ctx, start, end)
	if err != nil || seq == nil {
		return "", err
	}
	return seq.Text(), nil
}
