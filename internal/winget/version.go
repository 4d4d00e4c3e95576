package winget

import "regexp"

// versionPattern matches tokens that start with a digit run followed by at
// least one ".digits" group ("1.2", "10.0.19045.3693"). Deliberately
// permissive: suffixed tokens like "1.0.0-beta" still match on the numeric
// prefix. Both the inventory and upgrade parsers share this one definition;
// they must agree on what counts as a version for id matching to line up.
var versionPattern = regexp.MustCompile(`^\d+(\.\d+)+`)

// LooksLikeVersion reports whether a whitespace-delimited token reads as a
// version string.
func LooksLikeVersion(token string) bool {
	return versionPattern.MatchString(token)
}
