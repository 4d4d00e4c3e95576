package winget

import (
	"reflect"
	"testing"
)

// Sample winget list output with a multi-word display name, a row whose
// version carries a suffix, and a truncated row without any version.
const mockInventoryOutput = `Name                          Id                           Version
------------------------------------------------------------------
7-Zip                         7-Zip.7zip                   23.01
Microsoft Visual Studio Code  Microsoft.VisualStudioCode   1.85.0
Some Broken Entry             Vendor.Broken                unknown
Git                           Git.Git                      2.43.0
`

func TestParseInventory(t *testing.T) {
	records := ParseInventory(mockInventoryOutput)

	want := []*PackageRecord{
		{Name: "7-Zip", ID: "7-Zip.7zip", InstalledVersion: "23.01", Source: "winget"},
		{Name: "Microsoft Visual Studio Code", ID: "Microsoft.VisualStudioCode", InstalledVersion: "1.85.0", Source: "winget"},
		{Name: "Git", ID: "Git.Git", InstalledVersion: "2.43.0", Source: "winget"},
	}

	if !reflect.DeepEqual(records, want) {
		t.Errorf("ParseInventory() = %+v, want %+v", records, want)
	}
}

func TestParseInventorySingleLine(t *testing.T) {
	out := "Name Id Version\n----\n7-Zip 7-Zip.7zip 23.01\n"
	records := ParseInventory(out)

	if len(records) != 1 {
		t.Fatalf("ParseInventory() returned %d records, want 1", len(records))
	}
	rec := records[0]
	if rec.Name != "7-Zip" || rec.ID != "7-Zip.7zip" || rec.InstalledVersion != "23.01" {
		t.Errorf("record = %+v, want {7-Zip 7-Zip.7zip 23.01}", rec)
	}
	if rec.HasUpdate() {
		t.Error("freshly scanned record should not report an update")
	}
	if rec.Status() != StatusUnknown {
		t.Errorf("Status() = %q, want %q", rec.Status(), StatusUnknown)
	}
}

func TestParseInventoryDropsMalformedLines(t *testing.T) {
	tests := []struct {
		name string
		line string
	}{
		{"no version token", "Some Tool Vendor.Tool installed"},
		{"single token", "orphan"},
		{"version only", "1.2.3"},
		{"version first", "1.2.3 Vendor.Tool trailing"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := "Name Id Version\n----\n" + tt.line + "\n"
			if records := ParseInventory(out); len(records) != 0 {
				t.Errorf("ParseInventory(%q) = %+v, want no records", tt.line, records)
			}
		})
	}
}

func TestParseInventoryNoHeader(t *testing.T) {
	if records := ParseInventory("winget: unexpected error\n"); len(records) != 0 {
		t.Errorf("ParseInventory() on headerless output = %+v, want none", records)
	}
}
