package layout

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestSplitBlocks(t *testing.T) {
	testCases := []struct {
		name  string
		lines []string
		want  []ContentBlock
	}{
		{
			name:  "empty",
			lines: nil,
			want:  nil,
		},
		{
			name: "markers",
			lines: []string{
				"• Au-dela du monitoring",
				"- ReaKt ne se contente pas de surveiller.",
				"- Un veritable pilote automatique.",
				"  •   Technologie de Deep Learning  ",
				"Notre reseau predit.",
			},
			want: []ContentBlock{
				{Title: "Au-dela du monitoring", Body: "- ReaKt ne se contente pas de surveiller.\n- Un veritable pilote automatique."},
				{Title: "Technologie de Deep Learning", Body: "Notre reseau predit."},
			},
		},
		{
			name:  "leading text without marker",
			lines: []string{"intro", "• Title"},
			want: []ContentBlock{
				{Body: "intro"},
				{Title: "Title"},
			},
		},
		{
			name:  "no markers at all",
			lines: []string{"one", "two"},
			want:  []ContentBlock{{Body: "one\ntwo"}},
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := SplitBlocks(tc.lines, "•")
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Errorf("SplitBlocks mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestHasMarker(t *testing.T) {
	if !HasMarker([]string{"plain", "  • block"}, "•") {
		t.Error("expected marker to be found after leading spaces")
	}
	if HasMarker([]string{"plain", "mid • line"}, "•") {
		t.Error("marker in the middle of a line must not count")
	}
	if HasMarker([]string{"• block"}, "") {
		t.Error("empty marker never matches")
	}
}
