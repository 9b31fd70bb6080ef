package resolve

import (
	"strings"
	"testing"
)

func TestFormatLinks(t *testing.T) {
	if got := formatLinks(nil); got != noLinksMessage {
		t.Errorf("formatLinks(nil) = %q, want sentinel", got)
	}

	got := formatLinks([]string{"https://a.example", "https://b.example"})
	want := "Смотреть: \nhttps://a.example\nhttps://b.example"
	if got != want {
		t.Errorf("formatLinks = %q, want %q", got, want)
	}
}

func TestBuildCaptionUnderLimitUnchanged(t *testing.T) {
	got := buildCaption("Веном", 2018, 6.6, 6.9, "Короткое описание.", noLinksMessage)
	want := "🎬 Веном, 2018\n\n⭐️ IMDB: 6.6\n⭐ Кинопоиск: 6.9\n\nКороткое описание.\n\n" + noLinksMessage
	if got != want {
		t.Errorf("caption = %q, want %q", got, want)
	}
}

func TestBuildCaptionOmitsEmptyFields(t *testing.T) {
	got := buildCaption("Веном", 0, 0, 6.9, "", noLinksMessage)
	want := "🎬 Веном\n\n⭐️ IMDB: —\n⭐ Кинопоиск: 6.9\n\n" + noLinksMessage
	if got != want {
		t.Errorf("caption = %q, want %q", got, want)
	}
}

func TestBuildCaptionTruncatesDescriptionOnly(t *testing.T) {
	longDesc := strings.Repeat("очень длинное описание ", 100)
	links := "Смотреть: \nhttps://a.example\nhttps://b.example"

	full := renderCaption("Веном", 2018, 6.6, 6.9, longDesc, links)
	if len([]rune(full)) <= captionLimit {
		t.Fatal("test fixture is not over the limit")
	}

	got := buildCaption("Веном", 2018, 6.6, 6.9, longDesc, links)
	if n := len([]rune(got)); n > captionLimit {
		t.Errorf("caption length = %d runes, want <= %d", n, captionLimit)
	}

	// Everything before the description must be byte-identical to the
	// untruncated rendering, and the links block must survive untouched.
	head := "🎬 Веном, 2018\n\n⭐️ IMDB: 6.6\n⭐ Кинопоиск: 6.9\n\n"
	if !strings.HasPrefix(got, head) {
		t.Errorf("caption head mangled: %q", got[:len(head)])
	}
	if !strings.HasSuffix(got, "\n\n"+links) {
		t.Errorf("links block mangled: %q", got)
	}

	desc := strings.TrimSuffix(strings.TrimPrefix(got, head), "\n\n"+links)
	if !strings.HasSuffix(desc, ellipsis) {
		t.Errorf("truncated description does not end in ellipsis: %q", desc)
	}
	if !strings.HasPrefix(longDesc, strings.TrimSuffix(desc, ellipsis)) {
		t.Error("truncated description is not a prefix of the original")
	}
}

func TestBuildCaptionDropsDescriptionThatCannotFit(t *testing.T) {
	hugeTitle := strings.Repeat("Т", captionLimit)
	links := noLinksMessage

	got := buildCaption(hugeTitle, 2018, 6.6, 6.9, "описание", links)
	want := renderCaption(hugeTitle, 2018, 6.6, 6.9, "", links)
	if got != want {
		t.Errorf("expected description to be dropped entirely")
	}
}

func TestFormatRating(t *testing.T) {
	if got := formatRating(0); got != "—" {
		t.Errorf("formatRating(0) = %q, want —", got)
	}
	if got := formatRating(6.6); got != "6.6" {
		t.Errorf("formatRating(6.6) = %q", got)
	}
	if got := formatRating(8); got != "8" {
		t.Errorf("formatRating(8) = %q", got)
	}
}
