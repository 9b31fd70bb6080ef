package match

import (
	"testing"

	"github.com/kvasnikov/cinebot/internal/provider"
)

func TestSelectBestEmptyList(t *testing.T) {
	if _, ok := SelectBest("веном", nil); ok {
		t.Fatal("expected ok=false for empty candidate list")
	}
	if _, ok := SelectBest("веном", []provider.Movie{}); ok {
		t.Fatal("expected ok=false for zero-length candidate list")
	}
}

func TestSelectBestExactMatchWins(t *testing.T) {
	candidates := []provider.Movie{
		{Name: "Venom"},
		{Name: "Веном", Year: 2018, RatingIMDB: 6.6, RatingKP: 6.9},
	}

	res, ok := SelectBest("веном", candidates)
	if !ok {
		t.Fatal("expected a match")
	}
	if res.Title != "Веном" {
		t.Errorf("Title = %q, want %q", res.Title, "Веном")
	}
	if res.Movie.Year != 2018 {
		t.Errorf("Year = %d, want 2018", res.Movie.Year)
	}
	if res.Movie.RatingIMDB != 6.6 || res.Movie.RatingKP != 6.9 {
		t.Errorf("ratings = %v/%v, want 6.6/6.9", res.Movie.RatingIMDB, res.Movie.RatingKP)
	}
}

func TestSelectBestTieKeepsFirst(t *testing.T) {
	// Both names are one edit away from the query; the first seen must win.
	candidates := []provider.Movie{
		{Name: "кот", Year: 2001},
		{Name: "рол", Year: 2002},
	}

	res, ok := SelectBest("кол", candidates)
	if !ok {
		t.Fatal("expected a match")
	}
	if res.Movie.Year != 2001 {
		t.Errorf("tie not broken by order: got year %d, want 2001", res.Movie.Year)
	}
}

func TestSelectBestDeterministic(t *testing.T) {
	candidates := []provider.Movie{
		{Name: "12 стульев", Year: 1971},
		{Name: "13 стульев", Year: 1969},
	}

	first, _ := SelectBest("12 cтульев", candidates)
	for i := 0; i < 5; i++ {
		got, _ := SelectBest("12 cтульев", candidates)
		if got != first {
			t.Fatalf("repeated call returned %+v, want %+v", got, first)
		}
	}
}

func TestSelectBestLatinTypoStillClosest(t *testing.T) {
	// Latin "c" typo against the Cyrillic title: nonzero distance, but still
	// the minimum among the candidates.
	candidates := []provider.Movie{
		{Name: "Стулья"},
		{Name: "12 стульев", Year: 1971},
	}

	res, ok := SelectBest("12 cтульев", candidates)
	if !ok {
		t.Fatal("expected a match")
	}
	if res.Title != "12 стульев" {
		t.Errorf("Title = %q, want %q", res.Title, "12 стульев")
	}
}

func TestSelectBestTitleFallback(t *testing.T) {
	t.Run("alternative name", func(t *testing.T) {
		res, ok := SelectBest("nevermind", []provider.Movie{
			{Name: "", AlternativeName: "Nevermind", Year: 1994},
		})
		if !ok {
			t.Fatal("expected a match")
		}
		if res.Title != "Nevermind" {
			t.Errorf("Title = %q, want %q", res.Title, "Nevermind")
		}
	})

	t.Run("original query", func(t *testing.T) {
		res, ok := SelectBest(" Веном 2 ", []provider.Movie{
			{Name: "", AlternativeName: "", Year: 2021},
		})
		if !ok {
			t.Fatal("expected a match")
		}
		// The fallback is the original query, unnormalized.
		if res.Title != " Веном 2 " {
			t.Errorf("Title = %q, want the untouched query", res.Title)
		}
	})
}

func TestSelectBestPunctuationOnlyNameCanWin(t *testing.T) {
	// A name that normalizes to "" is still a legal winner and carries its
	// metadata forward.
	candidates := []provider.Movie{
		{Name: "!!!", Year: 2015, Description: "noise rock"},
	}

	res, ok := SelectBest("chk chk chk", candidates)
	if !ok {
		t.Fatal("expected a match")
	}
	if res.Title != "!!!" {
		t.Errorf("Title = %q, want %q", res.Title, "!!!")
	}
	if res.Movie.Description != "noise rock" {
		t.Errorf("Description not carried: %q", res.Movie.Description)
	}
}
