package bot

import (
	"fmt"
	"strings"

	"github.com/kvasnikov/cinebot/internal/storage"
)

// User-facing messages. The bot speaks Russian.
const (
	msgStart = "Привет! Напиши название фильма или сериала, и я найду информацию и ссылки на просмотр 🔍"
	msgHelp = "👨‍💻 Просто отправь название фильма или сериала, например:\n\n12 cтульев\nВеном\n\nКоманды:\n" +
		"/start — начать\n/help — помощь\n/history — история запросов\n/stats — статистика по фильмам\n" +
		"/get_favorites — список избранных\n/add_favorite — добавить в избранные\n/remove_favorite — удалить из избранных"
	msgNothingFound   = "Ничего не найдено 😔"
	msgHistoryEmpty   = "История пуста."
	msgFavoritesEmpty = "Список избранных пуст."
	msgStatsEmpty     = "Нет статистики."
	msgAskRemoveTitle = "⌛ Введите название фильма, который хотите удалить из избранного:"
)

func formatSearching(query string) string {
	return fmt.Sprintf("Ищу «%s»... 🔍", query)
}

// formatHistory renders the recent-queries view, newest first.
func formatHistory(records []storage.QueryRecord) string {
	lines := make([]string, 0, len(records))
	for _, rec := range records {
		lines = append(lines, fmt.Sprintf("🔸 %s → %s", rec.Query, rec.ResultTitle))
	}
	return fmt.Sprintf("📜 Последние %d запросов:\n%s", len(records), strings.Join(lines, "\n"))
}

// formatStats renders per-title resolution counts.
func formatStats(stats []storage.TitleCount) string {
	lines := make([]string, 0, len(stats))
	for _, tc := range stats {
		lines = append(lines, fmt.Sprintf("🎬 %s — %d раз", tc.Title, tc.Count))
	}
	return "📊 Твоя статистика:\n" + strings.Join(lines, "\n")
}

// formatFavorites renders the numbered favorites list.
func formatFavorites(titles []string) string {
	lines := make([]string, 0, len(titles))
	for i, t := range titles {
		lines = append(lines, fmt.Sprintf("%d) %s", i+1, t))
	}
	return "⭐ Список избранных:\n" + strings.Join(lines, "\n")
}

func formatFavoriteAdded(title string) string {
	return fmt.Sprintf("⭐ Фильм «%s» добавлен в список избранных!", title)
}

func formatFavoriteExists(title string) string {
	return fmt.Sprintf("⚠️ Фильм «%s» уже находится в списке избранных!", title)
}

func formatFavoriteRemoved(title string) string {
	return fmt.Sprintf("❌ Фильм «%s» успешно удалён из избранного.", title)
}

func formatFavoriteMissing(title string) string {
	return fmt.Sprintf("⚠️ Фильм «%s» не найден в списке избранных.", title)
}
