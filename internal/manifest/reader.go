package manifest

import (
	"bufio"
	"io"
	"strings"
)

const noIndex = -1

// maxLineSize bounds a single manifest row. Rows carrying heredoc install
// scripts are long, so the bufio default of 64KiB is not enough.
const maxLineSize = 4 << 20

// fieldAccessor locates a column by header name when the manifest has a
// header, and by fixed position otherwise. It is built once per manifest from
// the first significant line.
type fieldAccessor struct {
	header bool
	index  map[string]int
}

func newFieldAccessor(first []string) *fieldAccessor {
	f := &fieldAccessor{index: map[string]int{}}
	if len(first) == 0 || strings.ToLower(strings.TrimSpace(StripBOM(first[0]))) != ColSlug {
		return f
	}
	f.header = true
	for i, col := range first {
		key := strings.ToLower(strings.TrimSpace(StripBOM(col)))
		if key == "" {
			continue
		}
		// a repeated column name refers to its last occurrence
		f.index[key] = i
	}
	return f
}

func (f *fieldAccessor) get(cols []string, name string, fallback int) string {
	if f.header {
		if i, ok := f.index[name]; ok && i < len(cols) {
			return cols[i]
		}
		return ""
	}
	if fallback != noIndex && fallback < len(cols) {
		return cols[fallback]
	}
	return ""
}

// Reader yields manifest entries in file order.
type Reader struct {
	sc     *bufio.Scanner
	fields *fieldAccessor
	line   int
}

// NewReader returns a Reader over r.
func NewReader(r io.Reader) *Reader {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	return &Reader{sc: sc}
}

// HasHeader reports whether the manifest started with a header row. It is
// only meaningful after the first call to Next.
func (r *Reader) HasHeader() bool {
	return r.fields != nil && r.fields.header
}

// Next returns the next data row. Blank and comment lines are skipped. A row
// that fails validation is returned together with an error derived from
// ErrMalformedRow so the caller can report it and keep going. At the end of
// the manifest Next returns io.EOF.
func (r *Reader) Next() (*Entry, error) {
	for r.sc.Scan() {
		r.line++
		raw := r.sc.Text()
		if r.line == 1 {
			raw = StripBOM(raw)
		}
		trimmed := strings.TrimSpace(raw)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}

		cols := strings.Split(raw, "\t")
		if r.fields == nil {
			r.fields = newFieldAccessor(cols)
			if r.fields.header {
				continue
			}
		}
		return r.parse(cols, raw)
	}
	if err := r.sc.Err(); err != nil {
		return nil, ErrRead.Err(err)
	}
	return nil, io.EOF
}

func (r *Reader) parse(cols []string, raw string) (*Entry, error) {
	get := func(name string, fallback int) string {
		return strings.TrimSpace(r.fields.get(cols, name, fallback))
	}
	e := &Entry{
		Slug:       get(ColSlug, 0),
		File:       get(ColFile, 1),
		BaseImage:  get(ColBaseImage, 2),
		InstallCmd: get(ColInstallCmd, noIndex),
		EnvPath:    get(ColEnvPath, noIndex),
		BuildCmd:   get(ColBuildCmd, 3),
		RunCmd:     get(ColRunCmd, 4),
		Hello:      get(ColHello, 5),
		Line:       r.line,
		Raw:        raw,
	}
	e.normalize()
	if err := e.Validate(); err != nil {
		return e, err
	}
	return e, nil
}
