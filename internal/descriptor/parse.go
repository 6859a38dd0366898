package descriptor

import (
	"fmt"
	"io"
	"os"
	"strings"
)

// Parse reads every logical line from r into a single Descriptor. Later
// assignments to the same key overwrite earlier ones. The only error source is
// the reader itself.
func Parse(r io.Reader) (*Descriptor, error) {
	d := &Descriptor{}
	lr := newLineReader(r)
	for {
		line, err := lr.next()
		if err == io.EOF {
			return d, nil
		}
		if err != nil {
			return nil, fmt.Errorf("reading descriptor: %w", err)
		}
		applyLine(d, line)
	}
}

// ParseFile opens path and parses it. The returned descriptor has Source set
// to path.
func ParseFile(path string) (*Descriptor, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	d, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	d.Source = path
	return d, nil
}

// applyLine splits one logical line on '=' and assigns the second token to
// the key named by the first when the key is known. Empty tokens are skipped,
// so "name==x" and "=name=x" both set name, and tokens after the second are
// discarded. A line without a value leaves the field unset.
func applyLine(d *Descriptor, line string) {
	tokens := strings.FieldsFunc(line, func(r rune) bool { return r == '=' })
	if len(tokens) < 2 {
		return
	}

	key := strings.TrimSpace(tokens[0])
	value := strings.TrimRight(tokens[1], "\r")
	if key == "" || value == "" {
		return
	}
	d.Set(key, value)
}
