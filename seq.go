package blastdb

import (
	"fmt"
	"strings"
)

// Seq is a read-only view of one sequence (or one retrieved range of a
// sequence).  Coordinates are 1-based closed intervals, matching the
// blastdbcmd -range convention.  Implementations are immutable once handed
// to a caller; there are no mutators.
type Seq interface {
	// ID returns the sequence identifier from the defline.
	ID() string

	// Description returns the free-text portion of the defline, or "" if
	// the database records no definition line for the entry.
	Description() string

	// Len returns the number of residues.
	Len() int64

	// Text returns all residues as a single string.
	Text() string

	// Subseq returns the residues in the closed interval [start, end].
	Subseq(start, end int64) (string, error)
}

func checkRange(start, end, length int64) error {
	if start < 1 || start > end {
		return fmt.Errorf("invalid range %d-%d: start must be positive and no greater than end", start, end)
	}
	if end > length {
		return fmt.Errorf("end is past end of sequence: %d > %d", end, length)
	}
	return nil
}

// contiguousSeq holds all residues in one buffer.  Used for ranges small
// enough that a single allocation is harmless.
type contiguousSeq struct {
	id   string
	desc string
	text string
}

func (s *contiguousSeq) ID() string          { return s.id }
func (s *contiguousSeq) Description() string { return s.desc }
func (s *contiguousSeq) Len() int64          { return int64(len(s.text)) }
func (s *contiguousSeq) Text() string        { return s.text }

func (s *contiguousSeq) Subseq(start, end int64) (string, error) {
	if err := checkRange(start, end, int64(len(s.text))); err != nil {
		return "", err
	}
	return s.text[start-1 : end], nil
}

// chunkedSeq holds residues as an ordered list of pages so that no single
// allocation needs to match the sequence size.  Concatenating the pages in
// order reproduces the sequence exactly.  Pages are appended during ingest
// and never modified afterwards; appendPage never stores an empty page.
type chunkedSeq struct {
	id     string
	desc   string
	pages  []string
	length int64
}

func (s *chunkedSeq) appendPage(page string) {
	if len(page) == 0 {
		return
	}
	s.pages = append(s.pages, page)
	s.length += int64(len(page))
}

func (s *chunkedSeq) ID() string          { return s.id }
func (s *chunkedSeq) Description() string { return s.desc }
func (s *chunkedSeq) Len() int64          { return s.length }

func (s *chunkedSeq) Text() string {
	return strings.Join(s.pages, "")
}

func (s *chunkedSeq) Subseq(start, end int64) (string, error) {
	if err := checkRange(start, end, s.length); err != nil {
		return "", err
	}
	// Walk the pages, copying the overlap of each with the 0-based
	// half-open window [lo, hi).
	lo, hi := start-1, end
	var b strings.Builder
	b.Grow(int(end - start + 1))
	var off int64
	for _, page := range s.pages {
		pageEnd := off + int64(len(page))
		if pageEnd > lo {
			from, to := int64(0), int64(len(page))
			if lo > off {
				from = lo - off
			}
			if hi < pageEnd {
				to = hi - off
			}
			b.WriteString(page[from:to])
		}
		off = pageEnd
		if off >= hi {
			break
		}
	}
	return b.String(), nil
}
