package executor

import (
	"bytes"
	"errors"
	"io"
	"io/fs"
	"os"

	"github.com/h2non/filetype"
)

// sniffLen is enough for filetype to recognise executable headers.
const sniffLen = 261

// Known executable binary types
var binaryTypes = map[string]bool{
	"elf":   true, // Linux
	"macho": true, // macOS
	"exe":   true, // Windows PE
}

// checkLauncher returns an empty string when the launcher at path can be
// invoked, otherwise the reason the entry has to be skipped.
func checkLauncher(path string) string {
	fi, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return "launcher missing"
	}
	if err != nil {
		return "launcher unreadable: " + err.Error()
	}
	if !fi.Mode().IsRegular() {
		return "launcher is not a regular file"
	}
	if fi.Mode().Perm()&0111 == 0 {
		return "launcher is not executable"
	}
	ok, err := isRunnable(path)
	if err != nil {
		return "launcher unreadable: " + err.Error()
	}
	if !ok {
		return "launcher is neither a script nor a binary"
	}
	return ""
}

// isRunnable reports whether the file starts with an interpreter line or is
// a native executable.
func isRunnable(path string) (bool, error) {
	file, err := os.Open(path)
	if err != nil {
		return false, err
	}
	defer file.Close()

	header := make([]byte, sniffLen)
	n, err := io.ReadFull(file, header)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return false, err
	}
	header = header[:n]
	if bytes.HasPrefix(header, []byte("#!")) {
		return true, nil
	}
	if n == 0 {
		return false, nil
	}

	kind, err := filetype.Match(header)
	if err != nil || kind == filetype.Unknown {
		return false, nil
	}
	return binaryTypes[kind.Extension], nil
}
