package blastdb

import (
	"bufio"
	"io"
	"io/ioutil"

	"github.com/pkg/errors"
)

const (
	// maxContiguous is the largest requested span, in residues, stored as
	// a single buffer.  Longer spans, and whole-sequence reads whose size
	// is unknown until the stream ends, are stored as pages instead.
	maxContiguous = 4000000

	// ingestChunkSize bounds how many raw bytes are buffered at a time on
	// the chunked path, so peak working memory is one chunk regardless of
	// sequence size.
	ingestChunkSize = 4000000
)

// stripSpace removes all whitespace bytes in place and returns the
// compacted prefix.  blastdbcmd wraps residues at a fixed width, so line
// breaks (and any stray blanks) must not survive into the residue text.
func stripSpace(b []byte) []byte {
	j := 0
	for _, c := range b {
		switch c {
		case ' ', '\t', '\n', '\v', '\f', '\r':
		default:
			b[j] = c
			j++
		}
	}
	return b[:j]
}

// readSeq consumes one blastdbcmd output stream: a defline followed by
// wrapped residue lines.  span is the requested span length in residues;
// span <= 0 means the whole sequence was requested and the true size is
// unknown.  The representation is chosen from span alone, since the data
// size is not known until the stream has been fully read.
//
// Returns (nil, nil) when the first line is an entry-not-found message.
func readSeq(r io.Reader, span int64) (Seq, error) {
	br := bufio.NewReader(r)
	line, err := br.ReadString('\n')
	if err != nil && err != io.EOF {
		return nil, errors.Wrap(err, "couldn't read defline")
	}
	if line == "" {
		return nil, errors.New("empty retrieval output")
	}
	id, desc, ok, err := parseDefline(line)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}

	if span > 0 && span <= maxContiguous {
		body, err := ioutil.ReadAll(br)
		if err != nil {
			return nil, errors.Wrap(err, "couldn't read sequence data")
		}
		return &contiguousSeq{id: id, desc: desc, text: string(stripSpace(body))}, nil
	}

	seq := &chunkedSeq{id: id, desc: desc}
	buf := make([]byte, ingestChunkSize)
	for {
		n, err := io.ReadFull(br, buf)
		if n > 0 {
			seq.appendPage(string(stripSpace(buf[:n])))
		}
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			return seq, nil
		}
		if err != nil {
			return nil, errors.Wrap(err, "couldn't read sequence data")
		}
	}
}
