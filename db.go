package blastdb

import (
	"context"
	"fmt"

	"github.com/grailbio/base/errors"
)

// Alphabet classifies the residue alphabet of a database's sequences.
type Alphabet string

const (
	DNA     Alphabet = "dna"
	Protein Alphabet = "protein"
)

// DB hands out lazy handles to sequences in one BLAST database.  It holds
// no sequence data itself.
type DB struct {
	// Path is the database basename (the makeblastdb -out value, without
	// extension).
	Path string

	// Type is the database molecule type, "nucl" or "prot", as reported
	// by the database metadata.
	Type string

	// Fetcher produces retrieval streams.  NewDB wires a CmdFetcher;
	// tests substitute their own.
	Fetcher Fetcher
}

// NewDB returns a DB that retrieves through blastdbcmd found on $PATH.
func NewDB(path, dbtype string) *DB {
	return &DB{Path: path, Type: dbtype, Fetcher: &CmdFetcher{DB: path}}
}

// Alphabet maps the database molecule type to a residue alphabet.  Any type
// outside {"nucl", "prot"} means the database metadata is inconsistent.
func (db *DB) Alphabet() (Alphabet, error) {
	switch db.Type {
	case "nucl":
		return DNA, nil
	case "prot":
		return Protein, nil
	}
	return "", errors.E(fmt.Sprintf("database %s: unrecognized molecule type %q", db.Path, db.Type))
}

// Lookup returns a handle for the named sequence, or a nil handle (and nil
// error) if the database has no such entry.  The handle's description is
// populated here by retrieving a single residue; no other data is read.
func (db *DB) Lookup(ctx context.Context, id string) (*Handle, error) {
	if id == "" {
		return nil, errors.E("empty sequence id")
	}
	seq, err := db.fetchSeq(ctx, Request{ID: id, Start: 1, End: 1}, 1)
	if err != nil {
		return nil, err
	}
	if seq == nil {
		return nil, nil
	}
	return &Handle{db: db, id: id, desc: seq.Description()}, nil
}

// fetchSeq performs one scoped retrieval: open the stream, ingest it, and
// release the underlying process on every path.
func (db *DB) fetchSeq(ctx context.Context, req Request, span int64) (Seq, error) {
	stream, err := db.Fetcher.Fetch(ctx, req)
	if err != nil {
		return nil, err
	}
	defer stream.Close() // nolint: errcheck
	return readSeq(stream, span)
}
