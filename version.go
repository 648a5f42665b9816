package inkwell

import (
	_ "embed"
	"regexp"
	"strings"
)

// Product is the name reported by the CLI and the transfer server.
const Product = "inkwell"

// devVersion stands in for a VERSION file that is not SemVer.
const devVersion = "0.0.0-dev"

//go:embed VERSION
var embeddedVersion string

var semverRE = regexp.MustCompile(`^(0|[1-9]\d*)\.(0|[1-9]\d*)\.(0|[1-9]\d*)(?:-[0-9A-Za-z-]+(?:\.[0-9A-Za-z-]+)*)?(?:\+[0-9A-Za-z-]+(?:\.[0-9A-Za-z-]+)*)?$`)

// Version returns the firmware version without the leading v.
func Version() string {
	return parseVersion(embeddedVersion)
}

func parseVersion(raw string) string {
	v := strings.TrimSpace(raw)
	if !semverRE.MatchString(v) {
		return devVersion
	}
	return v
}

// VersionTag is Version in git tag form.
func VersionTag() string {
	return "v" + Version()
}

// UserAgent returns "inkwell/<version>" for the Server header and logs.
func UserAgent() string {
	return Product + "/" + Version()
}
