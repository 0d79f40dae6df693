package pg

import (
	"context"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/cryptopulse/newsfeed/internal/domain"
	"github.com/cryptopulse/newsfeed/internal/storage"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// uniqueViolation is the postgres SQLSTATE for unique constraint errors.
const uniqueViolation = "23505"

var articleColumns = []string{
	"id", "title", "summary", "content", "url", "image_url",
	"source", "source_name", "author", "category", "tags",
	"sentiment", "sentiment_score", "impact_score",
	"published_at", "crawled_at", "is_active",
}

// Store persists articles in the news_articles table.
type Store struct {
	db *pgxpool.Pool
}

var _ storage.Store = (*Store)(nil)

func NewStore(pool *ConnectionPool) *Store {
	return &Store{db: pool.conn}
}

func (s *Store) ExistsByURL(ctx context.Context, url string) (bool, error) {
	var exists bool
	err := s.db.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM news_articles WHERE url = $1)`, url,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check url existence: %w", err)
	}
	return exists, nil
}

func (s *Store) Insert(ctx context.Context, article domain.Article) error {
	if article.ID == uuid.Nil {
		article.ID = uuid.New()
	}
	if article.CrawledAt.IsZero() {
		article.CrawledAt = time.Now().UTC()
	}

	query, args, err := sq.Insert("news_articles").
		Columns(articleColumns...).
		Values(
			article.ID,
			article.Title,
			article.Summary,
			article.Content,
			article.URL,
			article.ImageURL,
			article.Source,
			article.SourceName,
			article.Author,
			string(article.Category),
			article.Tags,
			string(article.Sentiment),
			article.SentimentScore,
			article.ImpactScore,
			article.PublishedAt,
			article.CrawledAt,
			article.IsActive,
		).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build insert: %w", err)
	}

	if _, err := s.db.Exec(ctx, query, args...); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return storage.ErrDuplicateURL
		}
		return fmt.Errorf("failed to insert article: %w", err)
	}
	return nil
}

func (s *Store) List(ctx context.Context, f storage.Filter, sort storage.Sort, dir storage.Direction, limit, offset int) ([]domain.Article, error) {
	builder := sq.Select(articleColumns...).
		From("news_articles").
		Where(sq.Eq{"is_active": true}).
		PlaceholderFormat(sq.Dollar)

	builder = applyFilter(builder, f)
	builder = builder.OrderBy(orderClause(sort, dir)).
		Limit(uint64(limit)).
		Offset(uint64(offset))

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list query: %w", err)
	}

	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list articles: %w", err)
	}
	defer rows.Close()

	var articles []domain.Article
	for rows.Next() {
		article, err := scanArticle(rows)
		if err != nil {
			return nil, err
		}
		articles = append(articles, article)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return articles, nil
}

func (s *Store) Count(ctx context.Context, f storage.Filter) (int64, error) {
	builder := sq.Select("COUNT(*)").
		From("news_articles").
		Where(sq.Eq{"is_active": true}).
		PlaceholderFormat(sq.Dollar)

	builder = applyFilter(builder, f)

	query, args, err := builder.ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build count query: %w", err)
	}

	var count int64
	if err := s.db.QueryRow(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count articles: %w", err)
	}
	return count, nil
}

func (s *Store) DistinctCategories(ctx context.Context) ([]string, error) {
	return s.distinctColumn(ctx, "category")
}

func (s *Store) DistinctSources(ctx context.Context) ([]storage.Facet, error) {
	rows, err := s.db.Query(ctx, `
		SELECT DISTINCT source, source_name
		FROM news_articles
		WHERE is_active = true
		ORDER BY source
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query distinct sources: %w", err)
	}
	defer rows.Close()

	var facets []storage.Facet
	for rows.Next() {
		var f storage.Facet
		if err := rows.Scan(&f.Value, &f.DisplayName); err != nil {
			return nil, fmt.Errorf("failed to scan source facet: %w", err)
		}
		facets = append(facets, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}
	return facets, nil
}

// LastCrawledAt deliberately ignores is_active so stats report the real
// last crawl even when everything newest is soft-deleted.
func (s *Store) LastCrawledAt(ctx context.Context) (time.Time, error) {
	var last *time.Time
	err := s.db.QueryRow(ctx,
		`SELECT MAX(crawled_at) FROM news_articles`,
	).Scan(&last)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to query last crawl time: %w", err)
	}
	if last == nil {
		return time.Time{}, nil
	}
	return *last, nil
}

func (s *Store) distinctColumn(ctx context.Context, column string) ([]string, error) {
	query := fmt.Sprintf(`
		SELECT DISTINCT %s
		FROM news_articles
		WHERE is_active = true
		ORDER BY %s
	`, column, column)

	rows, err := s.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query distinct %s: %w", column, err)
	}
	defer rows.Close()

	var values []string
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, fmt.Errorf("failed to scan %s: %w", column, err)
		}
		values = append(values, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}
	return values, nil
}

func applyFilter(builder sq.SelectBuilder, f storage.Filter) sq.SelectBuilder {
	if len(f.Sources) > 0 {
		builder = builder.Where(sq.Eq{"source": f.Sources})
	}
	if len(f.Categories) > 0 {
		builder = builder.Where(sq.Eq{"category": f.Categories})
	}
	if f.Sentiment != nil {
		if *f.Sentiment == "" {
			builder = builder.Where(sq.Or{
				sq.Eq{"sentiment": ""},
				sq.Eq{"sentiment": nil},
			})
		} else {
			builder = builder.Where(sq.Eq{"sentiment": *f.Sentiment})
		}
	}
	if f.DateFrom != nil {
		builder = builder.Where(sq.GtOrEq{"published_at": *f.DateFrom})
	}
	if f.DateTo != nil {
		builder = builder.Where(sq.LtOrEq{"published_at": *f.DateTo})
	}
	if f.Search != "" {
		pattern := "%" + f.Search + "%"
		builder = builder.Where(sq.Or{
			sq.ILike{"title": pattern},
			sq.ILike{"summary": pattern},
		})
	}
	return builder
}

func orderClause(sort storage.Sort, dir storage.Direction) string {
	column := "published_at"
	switch sort {
	case storage.SortImpact:
		column = "impact_score"
	case storage.SortSentiment:
		column = "sentiment_score"
	case storage.SortSource:
		column = "source"
	case storage.SortPublishedAt:
		column = "published_at"
	}

	direction := "DESC"
	if dir == storage.Asc {
		direction = "ASC"
	}

	return fmt.Sprintf("%s %s", column, direction)
}

func scanArticle(rows pgx.Rows) (domain.Article, error) {
	var (
		article   domain.Article
		category  string
		sentiment string
	)
	if err := rows.Scan(
		&article.ID,
		&article.Title,
		&article.Summary,
		&article.Content,
		&article.URL,
		&article.ImageURL,
		&article.Source,
		&article.SourceName,
		&article.Author,
		&category,
		&article.Tags,
		&sentiment,
		&article.SentimentScore,
		&article.ImpactScore,
		&article.PublishedAt,
		&article.CrawledAt,
		&article.IsActive,
	); err != nil {
		return domain.Article{}, fmt.Errorf("failed to scan article: %w", err)
	}
	article.Category = domain.Category(category)
	article.Sentiment = domain.Sentiment(sentiment)
	return article, nil
}
