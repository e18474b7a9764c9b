package layout

import (
	"testing"
	"unicode/utf8"

	"github.com/google/go-cmp/cmp"
)

func runeWidth(s string) float64 { return float64(utf8.RuneCountInString(s)) }

func contents(lines []TextLine) []string {
	out := make([]string, len(lines))
	for i, l := range lines {
		out[i] = l.Content
	}
	return out
}

func TestWrapGreedy(t *testing.T) {
	testCases := []struct {
		name    string
		content string
		width   float64
		want    []string
	}{
		{name: "fits", content: "hello world", width: 20, want: []string{"hello world"}},
		{name: "breaks at space", content: "hello world again", width: 11, want: []string{"hello world", "again"}},
		{name: "exact width then newline", content: "SAMPLE-A\nSAMPLE-B", width: 8, want: []string{"SAMPLE-A", "SAMPLE-B"}},
		{name: "blank line kept", content: "foo\n\nbar", width: 100, want: []string{"foo", "", "bar"}},
		{name: "long word split", content: "abcdefghij", width: 4, want: []string{"abcd", "efgh", "ij"}},
		{name: "no limit", content: "a b c d e f", width: 0, want: []string{"a b c d e f"}},
		{name: "empty", content: "", width: 10, want: []string{""}},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := contents(WrapGreedy(tc.content, tc.width, runeWidth))
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Errorf("WrapGreedy mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestWrapGreedyWidthLimit(t *testing.T) {
	lines := WrapGreedy("Pilotage dans le retroviseur : on agit souvent trop tard.", 12, runeWidth)
	for i, l := range lines {
		if l.Width > 12 {
			t.Fatalf("line %d %q is %g wide, over the limit", i, l.Content, l.Width)
		}
	}
}
