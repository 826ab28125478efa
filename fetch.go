package blastdb

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"

	"github.com/grailbio/base/log"
)

// Request names one sequence, or a 1-based closed range of one, to
// retrieve.  Start and End of zero request the whole sequence, whose size is
// then unknown until the stream has been read to completion.
type Request struct {
	ID    string
	Start int64
	End   int64
}

// Fetcher produces the raw retrieval stream for a request.  The stream
// carries blastdbcmd-shaped text: a defline (or an entry-not-found message)
// on the first line, then wrapped residue lines.  Callers must close the
// stream on every path so the underlying process is reaped.
type Fetcher interface {
	Fetch(ctx context.Context, req Request) (io.ReadCloser, error)
}

// CmdFetcher retrieves sequences by running the blastdbcmd executable.
type CmdFetcher struct {
	// Path locates the executable.  Empty means "blastdbcmd", resolved
	// via $PATH.
	Path string

	// DB is the database basename, as given to makeblastdb -out.
	DB string
}

// Fetch implements Fetcher.  Stdout and stderr are merged into the returned
// stream: blastdbcmd reports a missing entry on stderr, and the defline
// parser needs to see that line.
func (f *CmdFetcher) Fetch(ctx context.Context, req Request) (io.ReadCloser, error) {
	path := f.Path
	if path == "" {
		path = "blastdbcmd"
	}
	args := []string{"-db", f.DB, "-entry", req.ID}
	if req.Start > 0 {
		args = append(args, "-range", fmt.Sprintf("%d-%d", req.Start, req.End))
	}
	cmd := exec.CommandContext(ctx, path, args...)
	pr, pw, err := os.Pipe()
	if err != nil {
		return nil, err
	}
	cmd.Stdout = pw
	cmd.Stderr = pw
	log.Debug.Printf("run: %s %v", path, args)
	if err := cmd.Start(); err != nil {
		pr.Close() // nolint: errcheck
		pw.Close() // nolint: errcheck
		return nil, err
	}
	// The child holds its own copy of the write end.
	pw.Close() // nolint: errcheck
	return &cmdStream{pr: pr, cmd: cmd}, nil
}

// cmdStream is a running retrieval.  Close releases the read end and reaps
// the child; closing before EOF aborts the child mid-write, which is the
// normal path after a not-found first line.
type cmdStream struct {
	pr  *os.File
	cmd *exec.Cmd
}

func (s *cmdStream) Read(p []byte) (int, error) { return s.pr.Read(p) }

func (s *cmdStream) Close() error {
	err := s.pr.Close()
	if werr := s.cmd.Wait(); werr != nil {
		// blastdbcmd exits nonzero for a missing entry; the first
		// output line already told us everything we need.
		log.Debug.Printf("blastdbcmd: %v", werr)
	}
	return err
}
