package domain

import "go.trai.ch/zerr"

// OS is the operating system component of a target triple.
type OS string

const (
	OSLinux   OS = "linux"
	OSWindows OS = "windows"
	OSDarwin  OS = "darwin"
)

// Arch is the source architecture token of a target (e.g. "x86_64").
type Arch string

const (
	ArchX8664   Arch = "x86_64"
	ArchAarch64 Arch = "aarch64"
	// ArchAny marks artifacts that are not architecture specific, such as
	// source build recipes.
	ArchAny Arch = "any"
)

// Target is one (architecture, triple, OS) entry of the build matrix. The
// matrix is statically enumerated, never discovered at runtime.
type Target struct {
	Arch   Arch
	Triple string
	OS     OS
	// Cross marks targets built through a cross-compilation wrapper rather
	// than the native toolchain.
	Cross bool
}

// Name returns the short identifier used in logs and failure reports.
func (t Target) Name() string {
	return string(t.Arch) + "-" + string(t.OS)
}

// DefaultTargets is the fixed matrix the tool is released for.
func DefaultTargets() []Target {
	return []Target{
		{Arch: ArchX8664, Triple: "x86_64-unknown-linux-gnu", OS: OSLinux},
		{Arch: ArchAarch64, Triple: "aarch64-unknown-linux-gnu", OS: OSLinux, Cross: true},
		{Arch: ArchX8664, Triple: "x86_64-pc-windows-gnu", OS: OSWindows, Cross: true},
		{Arch: ArchX8664, Triple: "x86_64-apple-darwin", OS: OSDarwin},
		{Arch: ArchAarch64, Triple: "aarch64-apple-darwin", OS: OSDarwin},
	}
}

// debianArchs is the fixed mapping from source architecture tokens to Debian
// architecture names used in control files.
var debianArchs = map[Arch]string{
	ArchX8664:   "amd64",
	ArchAarch64: "arm64",
}

// DebianArch maps a source architecture to its Debian control-file name.
func DebianArch(a Arch) (string, error) {
	deb, ok := debianArchs[a]
	if !ok {
		return "", zerr.With(ErrUnknownArch, "arch", string(a))
	}
	return deb, nil
}

// Family is a packaging ecosystem with its own distributable format.
type Family string

const (
	FamilyDebian  Family = "debian"
	FamilyArch    Family = "arch"
	FamilyWindows Family = "windows"
	FamilyMacOS   Family = "macos"
)

// Families returns all platform families in a stable order.
func Families() []Family {
	return []Family{FamilyDebian, FamilyArch, FamilyWindows, FamilyMacOS}
}

// ParseFamily converts a selector string into a Family. An unrecognized
// selector is a caller error, never a silent no-op.
func ParseFamily(s string) (Family, error) {
	switch Family(s) {
	case FamilyDebian, FamilyArch, FamilyWindows, FamilyMacOS:
		return Family(s), nil
	default:
		return "", zerr.With(ErrUnknownFamily, "selector", s)
	}
}

// OS returns the operating system whose build artifacts the family consumes.
func (f Family) OS() OS {
	switch f {
	case FamilyWindows:
		return OSWindows
	case FamilyMacOS:
		return OSDarwin
	default:
		return OSLinux
	}
}
