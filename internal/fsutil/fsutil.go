// Package fsutil provides file system utility functions shared by the
// registry loader and the playground provisioner.
package fsutil

import (
	"errors"
	"io"
	"os"
)

// ChunkSize is the buffer size used when copying file contents.
const ChunkSize = 1024

// PrivateDirMode is the permission used for every directory created on behalf
// of a player: owner read/write/execute only.
const PrivateDirMode os.FileMode = 0700

// Exists reports whether something is present at path. Symlinks are followed,
// so a dangling link does not exist.
func Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// MkdirPrivate creates a single directory with PrivateDirMode. An already
// existing directory is not an error.
func MkdirPrivate(path string) error {
	err := os.Mkdir(path, PrivateDirMode)
	if err != nil && errors.Is(err, os.ErrExist) {
		return nil
	}
	return err
}

// AppendCopy copies all of src to the end of dst in ChunkSize pieces and
// returns the number of bytes written. The destination is never truncated.
func AppendCopy(dst io.Writer, src io.Reader) (int64, error) {
	buf := make([]byte, ChunkSize)
	var written int64
	for {
		n, rerr := src.Read(buf)
		if n > 0 {
			w, werr := dst.Write(buf[:n])
			written += int64(w)
			if werr != nil {
				return written, werr
			}
			if w != n {
				return written, io.ErrShortWrite
			}
		}
		if rerr == io.EOF {
			return written, nil
		}
		if rerr != nil {
			return written, rerr
		}
	}
}
