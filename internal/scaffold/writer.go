package scaffold

import (
	"bytes"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"golang.org/x/text/cases"

	"github.com/polyglot-hello/polyglot/internal/common/apperrors"
)

// fileWriter writes generated artifacts. Unless force is set, a file whose
// bytes already match is left alone, so an unchanged manifest produces no
// writes.
type fileWriter struct {
	force   bool
	changed []string
}

func (w *fileWriter) write(path string, content []byte) apperrors.Error {
	if !w.force {
		if existing, err := os.ReadFile(path); err == nil && len(existing) > 0 && bytes.Equal(existing, content) {
			return nil
		}
	}
	if err := os.WriteFile(path, content, 0644); err != nil {
		return ErrWrite.Err(errors.Wrapf(err, "writing %s", path))
	}
	w.changed = append(w.changed, path)
	return nil
}

// writeAlways replaces path unconditionally.
func (w *fileWriter) writeAlways(path string, content []byte) apperrors.Error {
	if err := os.WriteFile(path, content, 0644); err != nil {
		return ErrWrite.Err(errors.Wrapf(err, "writing %s", path))
	}
	return nil
}

func (w *fileWriter) mkdir(dir string) apperrors.Error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return ErrWrite.Err(errors.Wrapf(err, "creating %s", dir))
	}
	return nil
}

func makeExecutable(path string) apperrors.Error {
	fi, err := os.Stat(path)
	if err != nil {
		return ErrWrite.Err(errors.Wrapf(err, "stat %s", path))
	}
	if fi.Mode()&0111 == 0111 {
		return nil
	}
	if err := os.Chmod(path, fi.Mode()|0111); err != nil {
		return ErrWrite.Err(errors.Wrapf(err, "chmod %s", path))
	}
	return nil
}

// removeCaseConflicts deletes files in dir whose names equal target under
// Unicode case folding but differ from it byte-wise, then target itself.
func removeCaseConflicts(dir, target string) {
	fold := cases.Fold()
	want := fold.String(target)

	entries, err := os.ReadDir(dir)
	if err == nil {
		for _, ent := range entries {
			if !ent.Type().IsRegular() {
				continue
			}
			name := ent.Name()
			if name != target && fold.String(name) == want {
				_ = os.Remove(filepath.Join(dir, name))
			}
		}
	}
	_ = os.Remove(filepath.Join(dir, target))
}
