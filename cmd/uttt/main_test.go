package main

import "testing"

func TestParseCoordLine(t *testing.T) {
	cases := []struct {
		line             string
		wantRow, wantCol int
		wantErr          bool
	}{
		{"-1 -1", -1, -1, false},
		{"0 0", 0, 0, false},
		{"8 8", 8, 8, false},
		{"4 4", 4, 4, false},
		{"9 0", 0, 0, true},
		{"0 9", 0, 0, true},
		{"garbage", 0, 0, true},
		{"1 2 3", 0, 0, true},
	}
	for _, c := range cases {
		row, col, err := parseCoordLine(c.line)
		if c.wantErr {
			if err == nil {
				t.Errorf("parseCoordLine(%q): expected error, got none", c.line)
			}
			continue
		}
		if err != nil {
			t.Errorf("parseCoordLine(%q): unexpected error %v", c.line, err)
			continue
		}
		if row != c.wantRow || col != c.wantCol {
			t.Errorf("parseCoordLine(%q) = (%d, %d), want (%d, %d)", c.line, row, col, c.wantRow, c.wantCol)
		}
	}
}
