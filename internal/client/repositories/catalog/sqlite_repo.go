package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/brocat-app/brocat/internal/client/models"
	"github.com/brocat-app/brocat/internal/dbx"
)

const refreshedAtKey = "catalog_refreshed_at"

// SQLiteRepository implements Repository on a local SQLite database.
type SQLiteRepository struct {
	db *sql.DB
}

// NewSQLiteRepository returns a repository bound to the given database.
func NewSQLiteRepository(db *sql.DB) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

// ReplaceAll swaps the cached rows inside one transaction, so readers never
// observe a half-written feed.
func (r *SQLiteRepository) ReplaceAll(ctx context.Context, rows []models.RawRow) error {
	return dbx.WithTx(ctx, r.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if _, err := tx.ExecContext(ctx, `delete from catalog_rows`); err != nil {
			return fmt.Errorf("failed to clear catalog cache: %w", err)
		}

		query := `insert into catalog_rows
			(topic_id, topic_name, subtopic_id, subtopic_name, sub_title_id, sub_title, image_id, image_url, sort_order)
			values (?, ?, ?, ?, ?, ?, ?, ?, ?)`
		for _, row := range rows {
			_, err := tx.ExecContext(ctx, query,
				row.TopicID, row.TopicName, row.SubTopicID, row.SubTopicName,
				row.SubTitleID, row.SubTitle, row.ImageID, row.ImageURL, row.SortOrder)
			if err != nil {
				return fmt.Errorf("failed to insert catalog row: %w", err)
			}
		}

		stamp := time.Now().UTC().Format(time.RFC3339)
		_, err := tx.ExecContext(ctx,
			`insert into cache_meta (key, value) values (?, ?)
			 on conflict(key) do update set value = excluded.value`,
			refreshedAtKey, stamp)
		if err != nil {
			return fmt.Errorf("failed to record refresh time: %w", err)
		}
		return nil
	})
}

// GetAll returns the cached rows in the order they were written.
func (r *SQLiteRepository) GetAll(ctx context.Context) ([]models.RawRow, error) {
	query := `select topic_id, topic_name, subtopic_id, subtopic_name, sub_title_id, sub_title, image_id, image_url, sort_order
		from catalog_rows order by rowid`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to select catalog rows: %w", err)
	}
	defer rows.Close()

	var result []models.RawRow
	for rows.Next() {
		var item models.RawRow
		err := rows.Scan(&item.TopicID, &item.TopicName, &item.SubTopicID, &item.SubTopicName,
			&item.SubTitleID, &item.SubTitle, &item.ImageID, &item.ImageURL, &item.SortOrder)
		if err != nil {
			return nil, err
		}
		result = append(result, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// LastRefreshed reads the stored refresh stamp.
func (r *SQLiteRepository) LastRefreshed(ctx context.Context) (time.Time, error) {
	row := r.db.QueryRowContext(ctx, `select value from cache_meta where key = ?`, refreshedAtKey)

	var value string
	if err := row.Scan(&value); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return time.Time{}, nil
		}
		return time.Time{}, fmt.Errorf("failed to read refresh time: %w", err)
	}

	ts, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("malformed refresh time %q: %w", value, err)
	}
	return ts, nil
}
