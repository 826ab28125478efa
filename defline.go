package blastdb

import (
	"regexp"
	"strings"

	"github.com/grailbio/base/errors"
)

// blastdbcmd deflines look like ">lcl|seq1 optional description".  The lcl|
// tag appears for databases built without externally assigned identifiers.
// Identifiers never contain whitespace; everything after the first run of
// whitespace is the description.
var deflineRegExp = regexp.MustCompile(`^>(?:lcl\|)?(\S+)(?:\s+(.*))?$`)

// A missing entry is reported on the first output line rather than through a
// distinct channel.  Both the blastdbcmd and the legacy fastacmd message
// shapes are recognized.
var notFoundRegExp = regexp.MustCompile(`^Error: \[blastdbcmd\] Entry not found|^ERROR: +Entry "[^"]*" not found`)

// blastdbcmd substitutes this text for the description when an entry has no
// definition line.  It is a placeholder, not a real description.
const noDeflineSentinel = "No definition line found"

// parseDefline extracts the identifier and description from the first line
// of a retrieval stream.  ok is false, with a nil error, when the line is a
// recognized entry-not-found message.  Any other line that does not match
// the defline shape is an error: the tool is violating its output contract.
func parseDefline(line string) (id, desc string, ok bool, err error) {
	line = strings.TrimRight(line, "\r\n")
	if notFoundRegExp.MatchString(line) {
		return "", "", false, nil
	}
	m := deflineRegExp.FindStringSubmatch(line)
	if m == nil {
		return "", "", false, errors.E("malformed defline: " + line)
	}
	desc = strings.TrimRight(m[2], " \t")
	if desc == noDeflineSentinel || desc == noDeflineSentinel+"." {
		desc = ""
	}
	return m[1], desc, true, nil
}
