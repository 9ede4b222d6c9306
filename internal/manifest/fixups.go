package manifest

import "strings"

// Fixup corrects a known problem with one entry's environment preparation.
// Fixups are pure transformations of the entry and must be idempotent.
type Fixup func(e *Entry)

// slugFixups is keyed by slug. Add new entries here rather than branching in
// the compile pipeline.
var slugFixups = map[string]Fixup{
	"cobol":     freeFormatCobol,
	"emojicode": emojicodeToolchain,
}

// genericFixups run for every entry, after the slug specific one.
var genericFixups = []Fixup{
	juliaPath,
}

// ApplyFixups applies the slug specific fixup, if any, followed by the
// generic ones.
func ApplyFixups(e *Entry) {
	if fix, ok := slugFixups[e.Slug]; ok {
		fix(e)
	}
	for _, fix := range genericFixups {
		fix(e)
	}
}

// HasFixup reports whether slug has a dedicated fixup.
func HasFixup(slug string) bool {
	_, ok := slugFixups[slug]
	return ok
}

func icontains(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

// freeFormatCobol makes cobc read free-format source. GnuCOBOL defaults to
// fixed format, which rejects code starting in column 1.
func freeFormatCobol(e *Entry) {
	if !icontains(e.BuildCmd, "cobc") || icontains(e.BuildCmd, "-free") {
		return
	}
	e.BuildCmd = strings.ReplaceAll(e.BuildCmd, "cobc -", "cobc -free -")
	if strings.HasPrefix(e.BuildCmd, "cobc ") && !icontains(e.BuildCmd, "cobc -free") {
		e.BuildCmd = strings.ReplaceAll(e.BuildCmd, "cobc ", "cobc -free ")
	}
	if !icontains(e.BuildCmd, "-free") {
		rest := ""
		if len(e.BuildCmd) > len("cobc ") {
			rest = e.BuildCmd[len("cobc "):]
		}
		e.BuildCmd = "cobc -free " + rest
	}
}

const emojicodeInstall = `<<'EOF'
set -e
export DEBIAN_FRONTEND=noninteractive
apt-get update

# Toolchain + deps
apt-get install -y --no-install-recommends \
  ca-certificates \
  build-essential \
  cmake \
  git \
  libffi-dev \
  libedit-dev \
  zlib1g-dev \
  clang-8 \
  llvm-8 \
  llvm-8-dev \
  llvm-8-tools

rm -rf /var/lib/apt/lists/*

# Make the v8 tools the defaults when present
if [ -x /usr/bin/llvm-config-8 ]; then
  update-alternatives --install /usr/bin/llvm-config llvm-config /usr/bin/llvm-config-8 100 || true
fi
if [ -x /usr/bin/clang-8 ]; then
  update-alternatives --install /usr/bin/clang clang /usr/bin/clang-8 100 || true
fi
if [ -x /usr/bin/clang++-8 ]; then
  update-alternatives --install /usr/bin/clang++ clang++ /usr/bin/clang++-8 100 || true
fi

# Build emojicode
git clone --depth=1 https://github.com/emojicode/emojicode.git /tmp/emojic
mkdir -p /tmp/emojic/build
cd /tmp/emojic/build

LLVM_DIR="$(llvm-config --cmakedir 2>/dev/null || true)"
if [ -z "$LLVM_DIR" ]; then
  LLVM_DIR="$(llvm-config --prefix)/lib/cmake/llvm"
fi

cmake -DLLVM_DIR="$LLVM_DIR" ..
make -j"$(nproc)"
make install
rm -rf /tmp/emojic
EOF`

// emojicodeToolchain pins an image where LLVM 8 is installable and replaces
// the install step wholesale with a heredoc that builds the compiler.
func emojicodeToolchain(e *Entry) {
	e.BaseImage = "ubuntu:20.04"
	e.EnvPath = "/usr/local/bin"
	e.InstallCmd = emojicodeInstall
}

// juliaPath puts the julia binary on PATH for the official julia images
// unless the manifest chose a path itself.
func juliaPath(e *Entry) {
	if e.EnvPath == "" && strings.HasPrefix(e.BaseImage, "julia:") {
		e.EnvPath = "/usr/local/julia/bin"
	}
}
