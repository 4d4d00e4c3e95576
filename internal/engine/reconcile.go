package engine

import "github.com/blackwell-systems/wingup/internal/winget"

// Reconcile merges an upgrade map into the record set in place and returns
// the number of records that matched an entry.
//
// Lookup is by id first, then by display name: winget keys upgrade rows by
// either, depending on the package source, and id takes priority. A match
// sets the available version. A miss on a record whose status is still
// unknown defaults the available version to the installed one, marking it
// confirmed up to date. A record resolved in an earlier pass is never reset
// by a later miss: matches only add information, they never retract it.
// A full rescan is the only way a record leaves the resolved state.
func Reconcile(records []*winget.PackageRecord, updates winget.UpgradeMap) int {
	matched := 0
	for _, rec := range records {
		if v, ok := updates[rec.ID]; ok {
			rec.AvailableVersion = v
			matched++
			continue
		}
		if v, ok := updates[rec.Name]; ok {
			rec.AvailableVersion = v
			matched++
			continue
		}
		if rec.AvailableVersion == "" {
			rec.AvailableVersion = rec.InstalledVersion
		}
	}
	return matched
}

// UpdateCount returns how many records currently have an update available.
func UpdateCount(records []*winget.PackageRecord) int {
	n := 0
	for _, rec := range records {
		if rec.HasUpdate() {
			n++
		}
	}
	return n
}

// UpdatableIDs returns the ids of every record with an update available,
// in record order.
func UpdatableIDs(records []*winget.PackageRecord) []string {
	var ids []string
	for _, rec := range records {
		if rec.HasUpdate() {
			ids = append(ids, rec.ID)
		}
	}
	return ids
}
