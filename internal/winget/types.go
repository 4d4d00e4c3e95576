package winget

// PackageRecord represents one installed software entry as reported by the
// package manager listing. A full inventory scan replaces the entire record
// set; identity does not survive a rescan.
type PackageRecord struct {
	Name             string // display name, may contain spaces
	ID               string // package manager identifier, unique within one scan
	InstalledVersion string // opaque version text, never parsed semantically
	AvailableVersion string // empty until an upgrade check has resolved it
	Source           string // provenance tag, e.g. "winget"
}

// HasUpdate reports whether a newer version is known to be available.
// Always derived from the two version fields so the flag cannot drift out
// of sync after a partial update.
func (r *PackageRecord) HasUpdate() bool {
	return r.AvailableVersion != "" && r.AvailableVersion != r.InstalledVersion
}

// Update status values used for display and filtering.
const (
	StatusUnknown  = "unknown"
	StatusUpToDate = "uptodate"
	StatusUpdate   = "update"
)

// Status classifies the record as unknown (never checked), up to date, or
// updatable.
func (r *PackageRecord) Status() string {
	switch {
	case r.AvailableVersion == "":
		return StatusUnknown
	case r.HasUpdate():
		return StatusUpdate
	default:
		return StatusUpToDate
	}
}

// UpgradeMap maps a package identifier (or display name, depending on how
// the tool keyed the row) to the version available for install. Produced by
// ParseUpgrades, consumed once during reconciliation, then discarded.
type UpgradeMap map[string]string
