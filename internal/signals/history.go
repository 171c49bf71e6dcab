package signals

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"creator-pricing-workers/internal/scoring/brandvet"
)

const collaborationHistoryQuery = `
SELECT
	COUNT(*),
	COUNT(*) FILTER (WHERE rating >= 4),
	COUNT(*) FILTER (WHERE rating IS NOT NULL AND rating <= 2)
FROM brand_collaborations
WHERE LOWER(brand_name) = LOWER($1)`

// HistoryRepository reads past creator collaborations recorded for a brand.
// Ratings are 1 to 5; 4 and above count as positive, 2 and below as negative.
type HistoryRepository struct {
	db *sql.DB
}

func NewHistoryRepository(db *sql.DB) *HistoryRepository {
	return &HistoryRepository{db: db}
}

func (r *HistoryRepository) CollaborationHistory(ctx context.Context, in brandvet.Input) (*brandvet.HistorySignals, error) {
	var h brandvet.HistorySignals
	err := r.db.QueryRowContext(ctx, collaborationHistoryQuery, strings.TrimSpace(in.BrandName)).
		Scan(&h.Collaborations, &h.PositiveReviews, &h.NegativeReviews)
	if err != nil {
		return nil, fmt.Errorf("collaboration history for %q: %w", in.BrandName, err)
	}
	return &h, nil
}
