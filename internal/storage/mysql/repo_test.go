package mysql

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestHousesPrefix(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want []int
	}{
		{"null column", "", nil},
		{"valid", "[200,600,1400,1700]", []int{200, 600, 1400, 1700}},
		{"string entry ends list", `[200,600,"x",1700]`, []int{200, 600}},
		{"fraction ends list", "[10,30.5,90,160]", []int{10}},
		{"not an array", `{"a":1}`, nil},
		{"json null", "null", nil},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if diff := cmp.Diff(tc.want, housesPrefix([]byte(tc.in))); diff != "" {
				t.Fatalf("housesPrefix(%q) mismatch (-want +got):\n%s", tc.in, diff)
			}
		})
	}
}
