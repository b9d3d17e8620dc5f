package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/wojciechlas/blendsphere-srs/internal/logger"
	"github.com/wojciechlas/blendsphere-srs/internal/models"
	"github.com/wojciechlas/blendsphere-srs/internal/repository"
)

type deckRepository struct {
	db *sql.DB
}

// NewDeckRepository creates a new DeckRepository implementation
func NewDeckRepository(db *sql.DB) repository.DeckRepository {
	return &deckRepository{db: db}
}

func (r *deckRepository) Get(ctx context.Context, id string) (*models.Deck, error) {
	log := logger.FromContext(ctx).WithPrefix("deck_repo")
	log.Debug("getting deck: id=%s", id)

	var d models.Deck
	err := r.db.QueryRowContext(ctx, `
SELECT id, user_id, name, created_at FROM decks WHERE id = ?
`, id).Scan(&d.ID, &d.UserID, &d.Name, &d.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		log.Debug("deck not found: id=%s", id)
		return nil, nil
	}
	if err != nil {
		log.Error("failed to get deck: %v", err)
		return nil, err
	}
	return &d, nil
}

func (r *deckRepository) ListByUser(ctx context.Context, userID string) ([]models.Deck, error) {
	log := logger.FromContext(ctx).WithPrefix("deck_repo")
	log.Debug("listing decks: user_id=%s", userID)

	rows, err := r.db.QueryContext(ctx, `
SELECT id, user_id, name, created_at FROM decks WHERE user_id = ? ORDER BY name
`, userID)
	if err != nil {
		log.Error("failed to query decks: %v", err)
		return nil, err
	}
	defer rows.Close()

	var decks []models.Deck
	for rows.Next() {
		var d models.Deck
		if err := rows.Scan(&d.ID, &d.UserID, &d.Name, &d.CreatedAt); err != nil {
			log.Error("failed to scan deck row: %v", err)
			return nil, err
		}
		decks = append(decks, d)
	}
	return decks, rows.Err()
}

func (r *deckRepository) Insert(ctx context.Context, d models.Deck) error {
	log := logger.FromContext(ctx).WithPrefix("deck_repo")
	log.Debug("inserting deck: id=%s, name=%s", d.ID, d.Name)

	_, err := r.db.ExecContext(ctx, `
INSERT INTO decks (id, user_id, name) VALUES (?, ?, ?)
`, d.ID, d.UserID, d.Name)
	if err != nil {
		log.Error("failed to insert deck: %v", err)
	}
	return err
}
