package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/magabrotheeeer/movie-streaming/internal/models"
)

// movieColumns — общий список колонок для выборок фильма.
const movieColumns = `id, title, description, release_date, duration_minutes, rating,
			      genre, country, type, age_rating, required_subscription,
			      created_at, updated_at`

// movieSortColumns — список разрешённых полей сортировки каталога.
// Ключи совпадают со значениями models.MovieSortBy*.
var movieSortColumns = map[string]string{
	models.MovieSortByRating:      "rating",
	models.MovieSortByReleaseDate: "release_date",
	models.MovieSortByTitle:       "title",
}

// CreateMovie вставляет новый фильм и возвращает его ID.
func (s *Storage) CreateMovie(ctx context.Context, movie models.Movie) (int, error) {
	const op = "storage.CreateMovie"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO movies (title, description, release_date, duration_minutes,
			      rating, genre, country, type, age_rating, required_subscription)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
			  RETURNING id`
	var newID int
	err := s.DB.QueryRowContext(ctx, query,
		movie.Title, movie.Description, movie.ReleaseDate, movie.DurationMinutes,
		movie.Rating, movie.Genre, movie.Country, movie.Type, movie.AgeRating,
		movie.RequiredSubscription).Scan(&newID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// GetMovieByID возвращает фильм по его ID.
func (s *Storage) GetMovieByID(ctx context.Context, id int) (*models.Movie, error) {
	const op = "storage.GetMovieByID"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + movieColumns + ` FROM movies WHERE id = $1`
	row := s.DB.QueryRowContext(ctx, query, id)

	m, err := scanMovie(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, models.ErrMovieNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return m, nil
}

// UpdateMovie применяет частичное обновление фильма: nil-поля не меняются.
func (s *Storage) UpdateMovie(ctx context.Context, id int, upd models.MovieUpdate) (*models.Movie, error) {
	const op = "storage.UpdateMovie"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE movies
			  SET title = COALESCE($1, title),
			      description = COALESCE($2, description),
			      release_date = COALESCE($3, release_date),
			      duration_minutes = COALESCE($4, duration_minutes),
			      rating = COALESCE($5, rating),
			      genre = COALESCE($6, genre),
			      country = COALESCE($7, country),
			      type = COALESCE($8, type),
			      age_rating = COALESCE($9, age_rating),
			      required_subscription = COALESCE($10, required_subscription),
			      updated_at = now()
			  WHERE id = $11
			  RETURNING ` + movieColumns
	row := s.DB.QueryRowContext(ctx, query,
		upd.Title, upd.Description, upd.ReleaseDate, upd.DurationMinutes,
		upd.Rating, upd.Genre, upd.Country, upd.Type, upd.AgeRating,
		upd.RequiredSubscription, id)

	m, err := scanMovie(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, models.ErrMovieNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return m, nil
}

// ListMovies возвращает фильмы каталога по фильтру с сортировкой и пагинацией.
// Фильтры и сортировка выполняются на стороне базы данных.
func (s *Storage) ListMovies(ctx context.Context, filter models.MovieFilter) ([]*models.Movie, error) {
	const op = "storage.ListMovies"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	var conditions []string
	var args []any
	addArg := func(cond string, value any) {
		args = append(args, value)
		conditions = append(conditions, fmt.Sprintf(cond, len(args)))
	}

	if filter.Genre != nil {
		addArg("genre ILIKE '%%' || $%d || '%%'", escapeLike(*filter.Genre))
	}
	if filter.Country != nil {
		addArg("country ILIKE '%%' || $%d || '%%'", escapeLike(*filter.Country))
	}
	if filter.Type != nil {
		addArg("type ILIKE '%%' || $%d || '%%'", escapeLike(*filter.Type))
	}
	if filter.Search != nil {
		args = append(args, escapeLike(*filter.Search))
		conditions = append(conditions, fmt.Sprintf(
			"(title ILIKE '%%' || $%d || '%%' OR description ILIKE '%%' || $%d || '%%')",
			len(args), len(args)))
	}
	if filter.ReleaseYearFrom != nil {
		addArg("release_date >= make_date($%d, 1, 1)", *filter.ReleaseYearFrom)
	}
	if filter.ReleaseYearTo != nil {
		addArg("release_date <= make_date($%d, 12, 31)", *filter.ReleaseYearTo)
	}
	if filter.RatingMin != nil {
		addArg("rating >= $%d", *filter.RatingMin)
	}
	if filter.RatingMax != nil {
		addArg("rating <= $%d", *filter.RatingMax)
	}

	sortColumn, ok := movieSortColumns[filter.SortBy]
	if !ok {
		return nil, fmt.Errorf("%s: %w", op, models.ErrInvalidSortField)
	}
	direction := "ASC"
	if filter.Order == models.SortOrderDesc {
		direction = "DESC"
	}

	query := `SELECT ` + movieColumns + ` FROM movies`
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	args = append(args, filter.Limit, filter.Offset)
	query += fmt.Sprintf(" ORDER BY %s %s, id LIMIT $%d OFFSET $%d",
		sortColumn, direction, len(args)-1, len(args))

	rows, err := s.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.Movie
	for rows.Next() {
		m, err := scanMovie(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, m)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// escapeLike экранирует спецсимволы шаблона LIKE в пользовательском вводе:
// без этого фильтр "%" совпадает с любой строкой каталога.
func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

// scanner покрывает *sql.Row и *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanMovie(row scanner) (*models.Movie, error) {
	m := &models.Movie{}
	var description, genre, country, movieType, requiredSubscription sql.NullString
	var releaseDate sql.NullTime
	var ageRating sql.NullInt64
	if err := row.Scan(&m.ID, &m.Title, &description, &releaseDate, &m.DurationMinutes,
		&m.Rating, &genre, &country, &movieType, &ageRating, &requiredSubscription,
		&m.CreatedAt, &m.UpdatedAt); err != nil {
		return nil, err
	}
	if description.Valid {
		m.Description = &description.String
	}
	if releaseDate.Valid {
		m.ReleaseDate = &releaseDate.Time
	}
	if genre.Valid {
		m.Genre = &genre.String
	}
	if country.Valid {
		m.Country = &country.String
	}
	if movieType.Valid {
		m.Type = &movieType.String
	}
	if ageRating.Valid {
		rating := int(ageRating.Int64)
		m.AgeRating = &rating
	}
	if requiredSubscription.Valid {
		m.RequiredSubscription = &requiredSubscription.String
	}
	return m, nil
}
