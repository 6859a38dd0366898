package descriptor

import (
	"bufio"
	"io"
	"strings"
)

const (
	escapeChar  = '\\'
	commentChar = '#'
)

// lineReader yields logical lines from a descriptor stream.
type lineReader struct {
	r *bufio.Reader
}

func newLineReader(r io.Reader) *lineReader {
	return &lineReader{r: bufio.NewReader(r)}
}

// next returns the next logical line with continuations folded, the comment
// removed and one level of escaping stripped. It returns io.EOF once the
// stream is exhausted.
func (lr *lineReader) next() (string, error) {
	var joined strings.Builder
	read := false

	for {
		line, err := lr.r.ReadString('\n')
		if err != nil && err != io.EOF {
			return "", err
		}
		if err == io.EOF && line == "" {
			if !read {
				return "", io.EOF
			}
			break
		}
		read = true

		line = strings.TrimSuffix(line, "\n")
		line = strings.TrimSuffix(line, "\r")

		if continued(line) && err == nil {
			joined.WriteString(line[:len(line)-1])
			continue
		}
		joined.WriteString(line)
		break
	}

	return unescape(joined.String()), nil
}

// continued reports whether line ends in an unescaped escape character.
func continued(line string) bool {
	n := 0
	for i := len(line) - 1; i >= 0 && line[i] == escapeChar; i-- {
		n++
	}
	return n%2 == 1
}

// unescape drops everything from the first unescaped comment character and
// removes one level of escaping from the rest.
func unescape(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == escapeChar && i+1 < len(s):
			i++
			b.WriteByte(s[i])
		case c == escapeChar:
			// dangling escape at end of input
		case c == commentChar:
			return b.String()
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}
