package models

// Поля, по которым разрешена сортировка каталога.
const (
	MovieSortByRating      = "rating"
	MovieSortByReleaseDate = "release_date"
	MovieSortByTitle       = "title"
)

// Направления сортировки каталога.
const (
	SortOrderAsc  = "asc"
	SortOrderDesc = "desc"
)

// MovieFilter представляет параметры фильтрации, сортировки и пагинации,
// которые передаются в слой доступа к данным при выборке каталога.
// Указатели nil означают отсутствие фильтра.
type MovieFilter struct {
	Genre           *string  // Подстрочный поиск по жанру
	Country         *string  // Подстрочный поиск по стране
	Type            *string  // Подстрочный поиск по типу
	Search          *string  // Поиск по названию и описанию
	ReleaseYearFrom *int     // Нижняя граница года выхода
	ReleaseYearTo   *int     // Верхняя граница года выхода
	RatingMin       *float64 // Нижняя граница рейтинга
	RatingMax       *float64 // Верхняя граница рейтинга
	SortBy          string   // Поле сортировки из списка разрешённых
	Order           string   // asc или desc
	Limit           int
	Offset          int
}

// SubscriptionActivatedEvent публикуется в очередь уведомлений,
// когда вебхук платёжного шлюза активирует подписку.
type SubscriptionActivatedEvent struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	Plan     string `json:"plan"`
	EndDate  string `json:"end_date,omitempty"`
}
