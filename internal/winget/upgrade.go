package winget

import "strings"

// bannerTokens mark the summary lines winget sometimes injects inside the
// data region of the upgrade listing ("2 upgrades available.", localized
// variants). Such lines are noise, not records.
var bannerTokens = []string{"upgrade", "アップグレード"}

// ParseUpgrades converts `winget upgrade` output into a mapping of package
// identifier to the version available for install.
//
// A row qualifies only when it carries at least two version-classified
// tokens: the current version and the available one, listed side by side.
// The identifier is the token immediately before the first version token;
// rows where the first token is itself a version have no identifier and
// are dropped. Duplicate identifiers resolve last-write-wins.
func ParseUpgrades(raw string) UpgradeMap {
	updates := make(UpgradeMap)

	for _, line := range DataLines(raw) {
		if isBannerLine(line) {
			continue
		}

		parts := strings.Fields(line)
		if len(parts) < 3 {
			continue
		}

		var versionIdx []int
		for i, part := range parts {
			if LooksLikeVersion(part) {
				versionIdx = append(versionIdx, i)
			}
		}
		if len(versionIdx) < 2 {
			continue
		}

		idIdx := versionIdx[0] - 1
		if idIdx < 0 {
			continue
		}
		updates[parts[idIdx]] = parts[versionIdx[1]]
	}

	return updates
}

func isBannerLine(line string) bool {
	lower := strings.ToLower(line)
	for _, tok := range bannerTokens {
		if strings.Contains(lower, tok) {
			return true
		}
	}
	return false
}
