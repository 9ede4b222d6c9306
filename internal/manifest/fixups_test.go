package manifest

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCobolFixup(t *testing.T) {
	tests := []struct {
		name  string
		build string
		want  string
	}{
		{"flags", "cobc -x hello.cob", "cobc -free -x hello.cob"},
		{"no flags", "cobc hello.cob", "cobc -free hello.cob"},
		{"already free", "cobc -x -free hello.cob", "cobc -x -free hello.cob"},
		{"already free upper case", "cobc -FREE -x hello.cob", "cobc -FREE -x hello.cob"},
		{"chained", "true && cobc -x hello.cob", "true && cobc -free -x hello.cob"},
		{"no cobc", "make", "make"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := &Entry{Slug: "cobol", BuildCmd: tt.build}
			ApplyFixups(e)
			assert.Equal(t, tt.want, e.BuildCmd)
		})
	}
}

func TestCobolFixupOnlyForCobol(t *testing.T) {
	e := &Entry{Slug: "cobol-fixed", BuildCmd: "cobc -x hello.cob"}
	ApplyFixups(e)
	assert.Equal(t, "cobc -x hello.cob", e.BuildCmd)
}

func TestEmojicodeFixup(t *testing.T) {
	e := &Entry{Slug: "emojicode", BaseImage: "debian:12", InstallCmd: "apt-get install emojicode", EnvPath: "/opt"}
	ApplyFixups(e)
	assert.Equal(t, "ubuntu:20.04", e.BaseImage)
	assert.Equal(t, "/usr/local/bin", e.EnvPath)
	assert.True(t, strings.HasPrefix(e.InstallCmd, "<<'EOF'\n"))
	assert.True(t, strings.HasSuffix(e.InstallCmd, "\nEOF"))
	assert.Contains(t, e.InstallCmd, "llvm-8-dev")
	assert.Contains(t, e.InstallCmd, "make install")

	before := *e
	ApplyFixups(e)
	assert.Equal(t, before, *e, "fixups are idempotent")
}

func TestJuliaPathFixup(t *testing.T) {
	tests := []struct {
		name    string
		image   string
		envPath string
		want    string
	}{
		{"julia image", "julia:1.10", "", "/usr/local/julia/bin"},
		{"explicit path kept", "julia:1.10", "/opt/julia/bin", "/opt/julia/bin"},
		{"other image", "python:3", "", ""},
		{"prefix only", "myjulia:1", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := &Entry{Slug: "julia", BaseImage: tt.image, EnvPath: tt.envPath}
			ApplyFixups(e)
			assert.Equal(t, tt.want, e.EnvPath)
		})
	}
}

func TestHasFixup(t *testing.T) {
	assert.True(t, HasFixup("cobol"))
	assert.True(t, HasFixup("emojicode"))
	assert.False(t, HasFixup("julia"))
}
