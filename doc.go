// Package blastdb provides lazy, memory-bounded, read-only access to
// individual sequences stored in an NCBI BLAST database.  Sequence data is
// never indexed or loaded up front; each read is served by running the
// external blastdbcmd tool and streaming its output.  For example:
//
//	db := blastdb.NewDB("/path/to/ecoli", "nucl")
//	h, err := db.Lookup(ctx, "NC_000913.3")   // nil handle if absent
//	sub, err := h.Subseq(ctx, 100, 200)       // 1-based inclusive
//
// Whole-sequence reads are cached per handle; ranged reads (Truncate,
// Subseq) always hit the database.  Sequences larger than a fixed threshold
// are held as a sequence of pages rather than one contiguous buffer, so a
// chromosome-sized retrieval never requires a matching contiguous
// allocation.
package blastdb
