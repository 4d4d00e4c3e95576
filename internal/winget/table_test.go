package winget

import (
	"reflect"
	"testing"
)

const mockListOutput = `Name                 Id                   Version
--------------------------------------------------
7-Zip                7-Zip.7zip           23.01
Git                  Git.Git              2.43.0
`

const mockListOutputJapanese = `名前                 ID                   バージョン
--------------------------------------------------
7-Zip                7-Zip.7zip           23.01
`

func TestDataLines(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{
			name:  "english header with ruler",
			input: mockListOutput,
			want: []string{
				"7-Zip                7-Zip.7zip           23.01",
				"Git                  Git.Git              2.43.0",
			},
		},
		{
			name:  "japanese header",
			input: mockListOutputJapanese,
			want:  []string{"7-Zip                7-Zip.7zip           23.01"},
		},
		{
			name:  "no header yields empty result",
			input: "something went wrong\nno table here\n",
			want:  nil,
		},
		{
			name:  "empty input",
			input: "",
			want:  nil,
		},
		{
			name:  "header on last line yields empty result",
			input: "warning banner\nName  Id  Version",
			want:  nil,
		},
		{
			name:  "blank and separator lines inside data are dropped",
			input: "Name  Id  Version\n-----\nA  A.A  1.0\n\n----\nB  B.B  2.0",
			want:  []string{"A  A.A  1.0", "B  B.B  2.0"},
		},
		{
			name:  "no ruler after header",
			input: "Name  Id  Version\nA  A.A  1.0",
			want:  []string{"A  A.A  1.0"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DataLines(tt.input)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("DataLines() = %#v, want %#v", got, tt.want)
			}
		})
	}
}
