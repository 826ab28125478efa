package main

/*
blastdb-fetch retrieves sequences, or 1-based inclusive ranges of sequences,
from a BLAST database by driving blastdbcmd.  Output is FASTA by default, or
a TSV of identifier and length with -lengths.  Output paths go through
grailbio/base/file, so s3:// destinations work.
*/

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/grailbio/base/file"
	"github.com/grailbio/base/grail"
	"github.com/grailbio/base/log"
	"github.com/grailbio/base/traverse"
	"github.com/grailbio/base/tsv"
	"github.com/grailbio/base/vcontext"
	"github.com/grailbio/blastdb"
)

var (
	dbType    = flag.String("dbtype", "nucl", `Database molecule type ("nucl" or "prot")`)
	entryFlag = flag.String("entry", "", "Comma-separated sequence identifiers to fetch (required)")
	rangeFlag = flag.String("range", "", "1-based inclusive range <start>-<end> to fetch instead of whole sequences")
	lengths   = flag.Bool("lengths", false, "Write a TSV of identifier and sequence length instead of FASTA")
	wrap      = flag.Int("wrap", 80, "FASTA output line width")
	outFlag   = flag.String("out", "", "Output path; empty means stdout")
	cmdPath   = flag.String("blastdbcmd", "", "Path to the blastdbcmd executable (default: $PATH lookup)")
)

func fetchUsage() {
	fmt.Printf("Usage: %s [OPTIONS] dbpath\n", os.Args[0])
	fmt.Printf("Other options:\n")
	flag.PrintDefaults()
}

// parseRange parses "start-end" as a 1-based closed interval.
func parseRange(s string) (start, end int64, err error) {
	i := strings.IndexByte(s, '-')
	if i < 0 {
		return 0, 0, fmt.Errorf("range %q not in <start>-<end> form", s)
	}
	if start, err = strconv.ParseInt(s[:i], 10, 64); err != nil {
		return 0, 0, err
	}
	if end, err = strconv.ParseInt(s[i+1:], 10, 64); err != nil {
		return 0, 0, err
	}
	return start, end, nil
}

func writeFasta(w io.Writer, id, desc, text string, width int) error {
	defline := ">" + id
	if desc != "" {
		defline += " " + desc
	}
	if _, err := fmt.Fprintln(w, defline); err != nil {
		return err
	}
	for len(text) > 0 {
		n := width
		if n <= 0 || n > len(text) {
			n = len(text)
		}
		if _, err := fmt.Fprintln(w, text[:n]); err != nil {
			return err
		}
		text = text[n:]
	}
	return nil
}

func main() {
	flag.Usage = fetchUsage
	shutdown := grail.Init()
	defer shutdown()

	if flag.NArg() != 1 {
		log.Fatalf("Exactly one positional argument (dbpath) expected; got %v", flag.Args())
	}
	dbPath := flag.Arg(0)
	if *entryFlag == "" {
		log.Fatalf("-entry is required")
	}
	var rangeStart, rangeEnd int64
	if *rangeFlag != "" {
		var err error
		if rangeStart, rangeEnd, err = parseRange(*rangeFlag); err != nil {
			log.Fatalf("-range: %v", err)
		}
	}

	ctx := vcontext.Background()
	db := blastdb.NewDB(dbPath, *dbType)
	if *cmdPath != "" {
		db.Fetcher = &blastdb.CmdFetcher{Path: *cmdPath, DB: dbPath}
	}

	// Probe all entries in parallel; each probe reads one residue.
	ids := strings.Split(*entryFlag, ",")
	handles := make([]*blastdb.Handle, len(ids))
	err := traverse.Each(len(ids), func(i int) error {
		h, err := db.Lookup(ctx, ids[i])
		if err != nil {
			return err
		}
		handles[i] = h
		return nil
	})
	if err != nil {
		log.Fatalf("%s: %v", dbPath, err)
	}

	var (
		w   io.Writer = os.Stdout
		out file.File
	)
	if *outFlag != "" {
		if out, err = file.Create(ctx, *outFlag); err != nil {
			log.Fatalf("create %s: %v", *outFlag, err)
		}
		w = out.Writer(ctx)
	}

	missing := 0
	if *lengths {
		tw := tsv.NewWriter(w)
		for i, h := range handles {
			if h == nil {
				log.Error.Printf("entry not found: %s", ids[i])
				missing++
				continue
			}
			n, err := h.Len(ctx)
			if err != nil {
				log.Fatalf("%s: %v", h.ID(), err)
			}
			tw.WriteString(h.ID())
			tw.WriteInt64(n)
			if err := tw.EndLine(); err != nil {
				log.Fatalf("write: %v", err)
			}
		}
		if err := tw.Flush(); err != nil {
			log.Fatalf("write: %v", err)
		}
	} else {
		for i, h := range handles {
			if h == nil {
				log.Error.Printf("entry not found: %s", ids[i])
				missing++
				continue
			}
			var text string
			var err error
			if *rangeFlag != "" {
				text, err = h.Subseq(ctx, rangeStart, rangeEnd)
			} else {
				text, err = h.Text(ctx)
			}
			if err != nil {
				log.Fatalf("%s: %v", h.ID(), err)
			}
			if err := writeFasta(w, h.ID(), h.Description(), text, *wrap); err != nil {
				log.Fatalf("write: %v", err)
			}
		}
	}
	if out != nil {
		if err := out.Close(ctx); err != nil {
			log.Fatalf("close %s: %v", *outFlag, err)
		}
	}
	if missing > 0 {
		os.Exit(1)
	}
	log.Debug.Printf("exiting")
}
