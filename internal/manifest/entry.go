// Package manifest reads the tab-separated language manifest and turns each
// row into a normalized Entry: fields located by header name or position,
// escapes expanded, byte-order marks removed, fixups applied and the source
// file name resolved.
package manifest

import (
	"fmt"
	"reflect"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
)

// Column names recognised in a header row.
const (
	ColSlug       = "slug"
	ColFile       = "file"
	ColBaseImage  = "base_image"
	ColInstallCmd = "install_cmd"
	ColEnvPath    = "env_path"
	ColBuildCmd   = "build_cmd"
	ColRunCmd     = "run_cmd"
	ColHello      = "hello"
)

// Entry is one validated manifest row.
type Entry struct {
	Slug       string `tsv:"slug" validate:"required,slug"`
	File       string `tsv:"file" validate:"required"`
	BaseImage  string `tsv:"base_image" validate:"required"`
	InstallCmd string `tsv:"install_cmd"`
	EnvPath    string `tsv:"env_path"`
	BuildCmd   string `tsv:"build_cmd"`
	RunCmd     string `tsv:"run_cmd" validate:"required"`
	Hello      string `tsv:"hello"`

	Line int    `tsv:"-"` // 1-based line number in the manifest
	Raw  string `tsv:"-"` // line as read, for diagnostics
}

// slugUnsafe holds the characters a slug may not contain: path separators,
// and the quotes and expansion characters that would break out of the
// double-quoted IMG assignment in the launcher.
const slugUnsafe = "/\\\"'`$"

// validSlug accepts slugs that are safe both as a directory name under the
// languages root and inside a double-quoted shell string.
func validSlug(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	if s == "." || s == ".." {
		return false
	}
	for _, r := range s {
		if strings.ContainsRune(slugUnsafe, r) || unicode.IsSpace(r) || unicode.IsControl(r) {
			return false
		}
	}
	return true
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	_ = v.RegisterValidation("slug", validSlug)
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		if name := f.Tag.Get("tsv"); name != "" && name != "-" {
			return name
		}
		return f.Name
	})
	return v
}

// Validate reports the columns that are missing or unusable.
func (e *Entry) Validate() error {
	err := validate.Struct(e)
	if err == nil {
		return nil
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return ErrMalformedRow.Msg(err.Error())
	}
	var missing, invalid []string
	for _, fe := range verrs {
		if fe.Tag() == "required" {
			missing = append(missing, fe.Field())
		} else {
			invalid = append(invalid, fe.Field())
		}
	}
	var parts []string
	if len(missing) > 0 {
		parts = append(parts, "missing "+strings.Join(missing, ", "))
	}
	if len(invalid) > 0 {
		parts = append(parts, "invalid "+strings.Join(invalid, ", "))
	}
	return ErrMalformedRow.Msg(fmt.Sprintf("line %d: %s", e.Line, strings.Join(parts, "; ")))
}

// normalize expands escapes and strips a leading byte-order mark in every
// free-text field.
func (e *Entry) normalize() {
	for _, f := range []*string{
		&e.Slug, &e.File, &e.BaseImage, &e.InstallCmd,
		&e.EnvPath, &e.BuildCmd, &e.RunCmd, &e.Hello,
	} {
		*f = StripBOM(Unescape(*f))
	}
}
