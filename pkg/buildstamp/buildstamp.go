package buildstamp

import (
	"fmt"
	"io"
	"runtime"
	"strings"
)

// ldflags will provide these values, e.g.
//
//	go build -ldflags "-X go.jetpack.io/kubecert/pkg/buildstamp.VersionNumber=0.2.0"
var (
	// BuildTimestamp is the timestamp at which the binary was built in ISO 8601
	// format.
	BuildTimestamp string

	// Branch is the name of the git branch used to build the binary.
	Branch string

	// Commit is the git commit hash of the revision used to build the binary.
	Commit string

	// CommitTimestamp is the timestamp of the commit used to build the binary in
	// ISO 8601 format.
	CommitTimestamp string

	// ReleaseTag is the tag of the revision used to build the binary as provided
	// by `git describe`. In general, it's something like: "a968903-dirty"
	ReleaseTag string

	// VersionNumber is the version number in semver format MAJOR.MINOR.PATCH
	VersionNumber string

	// PrereleaseTag marks pre-release builds. Usually, "dev".
	PrereleaseTag string
)

const unknownVersion = "0.0.0"

type BuildStamper interface {
	Version() string
	IsDevBinary() bool
}

type buildStamp struct{}

func Get() *buildStamp {
	return &buildStamp{}
}

// Version returns a short version string of the form: 0.1.0-dev+379c1d11-dirty
func (b *buildStamp) Version() string {
	version := VersionNumber
	if strings.TrimSpace(version) == "" {
		version = unknownVersion
	}
	if strings.TrimSpace(PrereleaseTag) == "" {
		return version
	}
	if ReleaseTag == "" {
		return fmt.Sprintf("%s-%s", version, PrereleaseTag)
	}
	return fmt.Sprintf("%s-%s+%s", version, PrereleaseTag, ReleaseTag)
}

// IsDevBinary is true for binaries built without a version number or with a
// pre-release tag.
func (b *buildStamp) IsDevBinary() bool {
	return VersionNumber == "" || PrereleaseTag != ""
}

// PrintVerboseVersion prints a verbose listing of the version variables
// to the io.Writer argument
func PrintVerboseVersion(w io.Writer) {
	fmt.Fprint(w, "\n")
	fmt.Fprintf(w, "Version Number: %v\n", VersionNumber)
	fmt.Fprintf(w, "Prerelease Tag: %v\n", PrereleaseTag)
	fmt.Fprintf(w, "Release:        %v\n", ReleaseTag)
	fmt.Fprintf(w, "Commit:         %v\n", Commit)
	fmt.Fprintf(w, "Branch:         %v\n", Branch)
	fmt.Fprintf(w, "Commit Date:    %v\n", CommitTimestamp)
	fmt.Fprint(w, "\n")
	fmt.Fprintf(w, "Build Date:  %v\n", BuildTimestamp)
	fmt.Fprintf(w, "Runtime:     %v\n", runtime.Version())
}
