package textenc

import "testing"

func TestLatin1(t *testing.T) {
	testCases := []struct {
		in   string
		want string
	}{
		{in: "", want: ""},
		{in: "Presentation Investisseurs", want: "Presentation Investisseurs"},
		{in: "Au-delà du réseau", want: "Au-delà du réseau"},
		{in: "• Au-dela", want: "? Au-dela"},
		{in: "Emoji 🚀 ok", want: "Emoji ? ok"},
		{in: "€100", want: "?100"},
	}
	for _, tc := range testCases {
		if got := Latin1(tc.in); got != tc.want {
			t.Errorf("Latin1(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
