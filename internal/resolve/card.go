package resolve

import (
	"strconv"
	"strings"
)

// captionLimit is the Telegram photo-caption ceiling in characters. The
// assembled caption must never exceed it; only the description is
// shortened to make it fit.
const (
	captionLimit = 1024
	ellipsis     = "..."
)

// Sentinel messages shown to the user.
const (
	noLinksMessage = "К сожалению, ссылки не были найдены"
	linksHeader    = "Смотреть: \n"
)

// Card is the resolved display payload for one query.
type Card struct {
	Title      string
	Year       int
	RatingIMDB float64
	RatingKP   float64
	PosterURL  string
	// Caption is the fully assembled message text, at most captionLimit
	// characters.
	Caption string
}

// formatLinks renders the watch-link list, or the sentinel when empty.
func formatLinks(links []string) string {
	if len(links) == 0 {
		return noLinksMessage
	}
	return linksHeader + strings.Join(links, "\n")
}

// buildCaption assembles the display text and enforces the caption limit.
// When the full text is too long, only the description is cut: the
// truncated caption lands exactly on the limit with an ellipsis marker,
// and every other field stays byte-identical. A description that cannot
// fit at all is dropped along with its separator.
func buildCaption(title string, year int, imdb, kp float64, description, links string) string {
	caption := renderCaption(title, year, imdb, kp, description, links)
	excess := len([]rune(caption)) - captionLimit
	if excess <= 0 {
		return caption
	}

	desc := []rune(description)
	keep := len(desc) - excess - len([]rune(ellipsis))
	if keep <= 0 {
		return renderCaption(title, year, imdb, kp, "", links)
	}
	return renderCaption(title, year, imdb, kp, string(desc[:keep])+ellipsis, links)
}

func renderCaption(title string, year int, imdb, kp float64, description, links string) string {
	var b strings.Builder
	b.WriteString("🎬 ")
	b.WriteString(title)
	if year != 0 {
		b.WriteString(", ")
		b.WriteString(strconv.Itoa(year))
	}
	b.WriteString("\n\n⭐️ IMDB: ")
	b.WriteString(formatRating(imdb))
	b.WriteString("\n⭐ Кинопоиск: ")
	b.WriteString(formatRating(kp))
	if description != "" {
		b.WriteString("\n\n")
		b.WriteString(description)
	}
	b.WriteString("\n\n")
	b.WriteString(links)
	return b.String()
}

// formatRating prints a rating without trailing zeros; a zero rating means
// the catalog had none.
func formatRating(v float64) string {
	if v == 0 {
		return "—"
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
