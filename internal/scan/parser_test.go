package scan

import "testing"

func TestParseQRData(t *testing.T) {
	cases := []struct {
		name string
		data string
		want Lookup
	}{
		{"json id", `{"id": 42, "article": "Hinge"}`, Lookup{ItemID: 42}},
		{"json article without id", `{"article": "Hinge A"}`, Lookup{ArticleTerm: "Hinge A"}},
		{"json with neither falls through", `{"action": "scan_update"}`, Lookup{SearchTerm: `{"action": "scan_update"}`}},
		{"bare numeric", "123", Lookup{ItemID: 123}},
		{"numeric with whitespace", "  123\n", Lookup{ItemID: 123}},
		{"item barcode", "ITEM000123", Lookup{ItemID: 123}},
		{"bulk barcode", "WH000042", Lookup{ItemID: 42}},
		{"generic letters then digits", "abc7", Lookup{ItemID: 7}},
		{"zero id falls back to search", "0", Lookup{SearchTerm: "0"}},
		{"all-zero code falls back to search", "ITEM000000", Lookup{SearchTerm: "ITEM000000"}},
		{"free text", "Hinge bracket", Lookup{SearchTerm: "Hinge bracket"}},
		{"mixed code is free text", "A1B2", Lookup{SearchTerm: "A1B2"}},
		{"letters only", "HINGE", Lookup{SearchTerm: "HINGE"}},
		{"empty", "", Lookup{SearchTerm: ""}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ParseQRData(tc.data)
			if got != tc.want {
				t.Errorf("ParseQRData(%q) = %+v, want %+v", tc.data, got, tc.want)
			}
		})
	}
}
