package main_test

import (
	"io/ioutil"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"v.io/x/lib/gosh"
)

const fakeBlastdbcmd = `#!/bin/sh
db=""; entry=""; range=""
while [ $# -gt 0 ]; do
  case "$1" in
    -db) db="$2"; shift 2;;
    -entry) entry="$2"; shift 2;;
    -range) range="$2"; shift 2;;
    *) shift;;
  esac
done
case "$entry" in
  seq1) seq="ACGTACGTACGT"; desc="Example sequence one";;
  seq2) seq="MKVLAAGIVQ"; desc="No definition line found";;
  *) echo "Error: [blastdbcmd] Entry not found: $entry" >&2; exit 1;;
esac
if [ -n "$range" ]; then
  a=${range%-*}
  b=${range#*-}
  seq=$(printf '%s' "$seq" | cut -c"$a"-"$b")
fi
printf '>lcl|%s %s\n' "$entry" "$desc"
printf '%s\n' "$seq"
`

func TestFetch(t *testing.T) {
	sh := gosh.NewShell(nil)
	defer sh.Cleanup()
	binPath := gosh.BuildGoPkg(sh, sh.MakeTempDir(), "github.com/grailbio/blastdb/cmd/blastdb-fetch")
	require.NoError(t, sh.Err)
	cmdPath := filepath.Join(sh.MakeTempDir(), "blastdbcmd")
	require.NoError(t, ioutil.WriteFile(cmdPath, []byte(fakeBlastdbcmd), 0755))

	out := sh.Cmd(binPath, "-entry", "seq1", "-blastdbcmd", cmdPath, "testdb").Stdout()
	assert.NoError(t, sh.Err)
	assert.Equal(t, ">seq1 Example sequence one\nACGTACGTACGT\n", out)

	out = sh.Cmd(binPath, "-entry", "seq1", "-range", "2-5", "-blastdbcmd", cmdPath, "testdb").Stdout()
	assert.NoError(t, sh.Err)
	assert.Equal(t, ">seq1 Example sequence one\nCGTA\n", out)

	out = sh.Cmd(binPath, "-entry", "seq1", "-wrap", "5", "-blastdbcmd", cmdPath, "testdb").Stdout()
	assert.NoError(t, sh.Err)
	assert.Equal(t, ">seq1 Example sequence one\nACGTA\nCGTAC\nGT\n", out)

	out = sh.Cmd(binPath, "-entry", "seq1,seq2", "-lengths", "-blastdbcmd", cmdPath, "testdb").Stdout()
	assert.NoError(t, sh.Err)
	assert.Equal(t, "seq1\t12\nseq2\t10\n", out)
}

func TestFetchToFile(t *testing.T) {
	sh := gosh.NewShell(nil)
	defer sh.Cleanup()
	binPath := gosh.BuildGoPkg(sh, sh.MakeTempDir(), "github.com/grailbio/blastdb/cmd/blastdb-fetch")
	require.NoError(t, sh.Err)
	dir := sh.MakeTempDir()
	cmdPath := filepath.Join(dir, "blastdbcmd")
	require.NoError(t, ioutil.WriteFile(cmdPath, []byte(fakeBlastdbcmd), 0755))

	outPath := filepath.Join(dir, "out.fasta")
	sh.Cmd(binPath, "-entry", "seq2", "-blastdbcmd", cmdPath, "-out", outPath, "testdb").Run()
	assert.NoError(t, sh.Err)
	data, err := ioutil.ReadFile(outPath)
	require.NoError(t, err)
	assert.Equal(t, ">seq2\nMKVLAAGIVQ\n", string(data))
}
