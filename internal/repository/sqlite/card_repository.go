package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/wojciechlas/blendsphere-srs/internal/logger"
	"github.com/wojciechlas/blendsphere-srs/internal/models"
	"github.com/wojciechlas/blendsphere-srs/internal/repository"
)

var sqlBuilder = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question)

const cardColumns = "id, deck_id, user_id, front_text, back_text, state, ease_factor, interval_days, review_count, lapse_count, last_review, next_review, created_at"

type cardRepository struct {
	db *sql.DB
}

// NewCardRepository creates a new CardRepository implementation
func NewCardRepository(db *sql.DB) repository.CardRepository {
	return &cardRepository{db: db}
}

func (r *cardRepository) Get(ctx context.Context, id string) (*models.Card, error) {
	log := logger.FromContext(ctx).WithPrefix("card_repo")
	log.Debug("getting card: id=%s", id)

	row := r.db.QueryRowContext(ctx, `SELECT `+cardColumns+` FROM cards WHERE id = ?`, id)
	card, err := scanCard(row)
	if errors.Is(err, sql.ErrNoRows) {
		log.Debug("card not found: id=%s", id)
		return nil, nil
	}
	if err != nil {
		log.Error("failed to get card: %v", err)
		return nil, err
	}
	return card, nil
}

func (r *cardRepository) ListByUser(ctx context.Context, filter models.CardFilter) ([]models.Card, error) {
	log := logger.FromContext(ctx).WithPrefix("card_repo")
	log.Debug("listing cards: user_id=%s, deck_id=%s", filter.UserID, filter.DeckID)

	query := sqlBuilder.
		Select(cardColumns).
		From("cards").
		Where(squirrel.Eq{"user_id": filter.UserID}).
		OrderBy("next_review IS NULL DESC", "next_review ASC", "created_at ASC")

	if filter.DeckID != "" {
		query = query.Where(squirrel.Eq{"deck_id": filter.DeckID})
	}
	if filter.State.IsValid() {
		query = query.Where(squirrel.Eq{"state": filter.State.String()})
	}
	if filter.Limit > 0 {
		query = query.Limit(uint64(filter.Limit))
	}

	sqlStr, args, err := query.ToSql()
	if err != nil {
		log.Error("failed to build card query: %v", err)
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		log.Error("failed to query cards: %v", err)
		return nil, err
	}
	defer rows.Close()

	var cards []models.Card
	for rows.Next() {
		card, err := scanCard(rows)
		if err != nil {
			log.Error("failed to scan card row: %v", err)
			return nil, err
		}
		cards = append(cards, *card)
	}
	log.Debug("found %d cards", len(cards))
	return cards, rows.Err()
}

func (r *cardRepository) Insert(ctx context.Context, c models.Card) error {
	log := logger.FromContext(ctx).WithPrefix("card_repo")
	log.Debug("inserting card: id=%s, deck_id=%s", c.ID, c.DeckID)

	_, err := r.db.ExecContext(ctx, `
INSERT INTO cards (id, deck_id, user_id, front_text, back_text, state, ease_factor, interval_days, review_count, lapse_count, last_review, next_review)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
`, c.ID, c.DeckID, c.UserID, c.FrontText, c.BackText, c.State.String(), c.EaseFactor, c.IntervalDays, c.ReviewCount, c.LapseCount, nullableTime(c.LastReview), nullableTime(c.NextReview))
	if err != nil {
		log.Error("failed to insert card: %v", err)
	}
	return err
}

func (r *cardRepository) InsertBatch(ctx context.Context, cards []models.Card) error {
	log := logger.FromContext(ctx).WithPrefix("card_repo")
	log.Debug("inserting %d cards", len(cards))

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		log.Error("failed to begin card batch transaction: %v", err)
		return err
	}
	for _, c := range cards {
		if _, err := tx.ExecContext(ctx, `
INSERT INTO cards (id, deck_id, user_id, front_text, back_text, state, ease_factor, interval_days, review_count, lapse_count, last_review, next_review)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
`, c.ID, c.DeckID, c.UserID, c.FrontText, c.BackText, c.State.String(), c.EaseFactor, c.IntervalDays, c.ReviewCount, c.LapseCount, nullableTime(c.LastReview), nullableTime(c.NextReview)); err != nil {
			_ = tx.Rollback()
			log.Error("failed to insert card in batch: %v", err)
			return err
		}
	}
	if err := tx.Commit(); err != nil {
		log.Error("failed to commit card batch: %v", err)
		return err
	}
	return nil
}

func (r *cardRepository) UpdateScheduling(ctx context.Context, c models.Card) error {
	log := logger.FromContext(ctx).WithPrefix("card_repo")
	log.Debug("updating card scheduling: id=%s, state=%s, interval=%.2f, ease=%.2f", c.ID, c.State, c.IntervalDays, c.EaseFactor)

	res, err := r.db.ExecContext(ctx, `
UPDATE cards
SET state = ?, ease_factor = ?, interval_days = ?, review_count = ?, lapse_count = ?, last_review = ?, next_review = ?
WHERE id = ?
`, c.State.String(), c.EaseFactor, c.IntervalDays, c.ReviewCount, c.LapseCount, nullableTime(c.LastReview), nullableTime(c.NextReview), c.ID)
	if err != nil {
		log.Error("failed to update card: %v", err)
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		log.Warn("card update matched no rows: id=%s", c.ID)
		return sql.ErrNoRows
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCard(row rowScanner) (*models.Card, error) {
	var c models.Card
	var state string
	var lastReview, nextReview sql.NullTime
	err := row.Scan(&c.ID, &c.DeckID, &c.UserID, &c.FrontText, &c.BackText, &state, &c.EaseFactor, &c.IntervalDays, &c.ReviewCount, &c.LapseCount, &lastReview, &nextReview, &c.CreatedAt)
	if err != nil {
		return nil, err
	}
	if c.State, err = models.ParseCardState(state); err != nil {
		return nil, err
	}
	if lastReview.Valid {
		t := lastReview.Time
		c.LastReview = &t
	}
	if nextReview.Valid {
		t := nextReview.Time
		c.NextReview = &t
	}
	return &c, nil
}

func nullableTime(t *time.Time) any {
	if t == nil {
		return nil
	}
	return *t
}
