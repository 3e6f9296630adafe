package tools

import (
	"testing"

	"github.com/DevDeepakBhattarai/file-forge/pkg/formats"
)

func TestParseKind(t *testing.T) {
	cases := map[string]Kind{
		"image":       KindImage,
		"ImageMagick": KindImage,
		"magick":      KindImage,
		"ffmpeg":      KindMedia,
		"media":       KindMedia,
		"pandoc":      KindMarkup,
		"soffice":     KindOffice,
		"LibreOffice": KindOffice,
	}
	for name, want := range cases {
		got, ok := ParseKind(name)
		if !ok || got != want {
			t.Errorf("ParseKind(%q) = %q/%v, want %q", name, got, ok, want)
		}
	}

	if _, ok := ParseKind("photoshop"); ok {
		t.Error("ParseKind accepted an unknown tool name")
	}
}

func TestKindCategory(t *testing.T) {
	cases := []struct {
		kind Kind
		ext  string
		want formats.Category
	}{
		{KindImage, "heic", formats.CategoryImage},
		{KindImage, "whatever", formats.CategoryImage},
		{KindMedia, "mp3", formats.CategoryAudio},
		{KindMedia, "mov", formats.CategoryVideo},
		{KindMedia, "srt", formats.CategoryUnknown},
		{KindMarkup, "md", formats.CategoryDocument},
		{KindOffice, "docx", formats.CategoryDocument},
	}
	for _, tc := range cases {
		if got := tc.kind.Category(tc.ext); got != tc.want {
			t.Errorf("%s.Category(%q) = %s, want %s", tc.kind, tc.ext, got, tc.want)
		}
	}
}

func TestKindsPriorityOrder(t *testing.T) {
	kinds := Kinds()
	want := []Kind{KindImage, KindMedia, KindMarkup, KindOffice}
	if len(kinds) != len(want) {
		t.Fatalf("got %d kinds, want %d", len(kinds), len(want))
	}
	for i := range want {
		if kinds[i] != want[i] {
			t.Fatalf("kind %d = %s, want %s", i, kinds[i], want[i])
		}
	}
}
