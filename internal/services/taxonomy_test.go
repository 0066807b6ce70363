package services

import "testing"

func TestSlugify(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Fiordo del Sur", "fiordo-del-sur"},
		{"  Castello Aragonese  ", "castello-aragonese"},
		{"Sant'Angelo in Formis", "sant-angelo-in-formis"},
		{"Villa Romana (II sec.)", "villa-romana-ii-sec"},
		{"---", ""},
		{"Già UNESCO 1997", "gi-unesco-1997"},
	}
	for _, tc := range cases {
		if got := Slugify(tc.in); got != tc.want {
			t.Fatalf("Slugify(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
