package winget

import "strings"

// ParseInventory converts `winget list` output into package records.
//
// Each data row is split on whitespace and scanned left to right for the
// first version-classified token: that token is the installed version, the
// token immediately before it is the package id, and everything before the
// id is the display name (space-joined). Rows that yield no version or no
// name are dropped; a malformed row must never abort the scan.
func ParseInventory(raw string) []*PackageRecord {
	var records []*PackageRecord

	for _, line := range DataLines(raw) {
		parts := strings.Fields(line)
		if len(parts) < 2 {
			continue
		}

		var nameParts []string
		var id, version string
		for i, part := range parts {
			if LooksLikeVersion(part) {
				version = part
				if i > 0 {
					id = parts[i-1]
					nameParts = parts[:i-1]
				}
				break
			}
			nameParts = append(nameParts, part)
		}

		if version == "" || len(nameParts) == 0 {
			continue
		}

		if id == "" {
			// Columns collapsed due to a missing field; reuse the trailing
			// name token as a best-effort identity.
			id = nameParts[len(nameParts)-1]
		}

		records = append(records, &PackageRecord{
			Name:             strings.Join(nameParts, " "),
			ID:               id,
			InstalledVersion: version,
			Source:           "winget",
		})
	}

	return records
}
