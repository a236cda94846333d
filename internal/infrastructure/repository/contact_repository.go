package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/moraleja/portfolio/internal/domain"
)

type contactRepository struct {
	db *sql.DB
}

func NewContactRepository(db *sql.DB) domain.ContactRepository {
	return &contactRepository{db: db}
}

func (r *contactRepository) Create(ctx context.Context, req domain.ContactInquiry) (int, error) {
	insertQuery := `
	INSERT INTO contact_inquiries (name, email, company, budget, message, status, created_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7)
	RETURNING id
`
	var id int
	err := r.db.QueryRowContext(ctx, insertQuery,
		req.Name, req.Email, req.Company, req.Budget, req.Message, string(domain.InquiryNew), now(),
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert inquiry: %w", err)
	}
	return id, nil
}

func (r *contactRepository) List(ctx context.Context) ([]domain.Contact, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, email, company, budget, message, status, created_at, responded_at
		FROM contact_inquiries ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	contacts := []domain.Contact{}
	for rows.Next() {
		var (
			c         domain.Contact
			responded sql.NullTime
		)
		if err := rows.Scan(
			&c.ID, &c.Name, &c.Email, &c.Company, &c.Budget,
			&c.Message, &c.Status, &c.CreatedAt, &responded,
		); err != nil {
			return nil, err
		}
		if responded.Valid {
			t := responded.Time
			c.RespondedAt = &t
		}
		contacts = append(contacts, c)
	}
	return contacts, rows.Err()
}

func (r *contactRepository) UpdateStatus(ctx context.Context, id int, status domain.InquiryStatus) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE contact_inquiries SET status = $1, responded_at = $2 WHERE id = $3`,
		string(status), now(), id)
	if err != nil {
		return fmt.Errorf("update inquiry: %w", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return fmt.Errorf("inquiry %d: %w", id, domain.ErrNotFound)
	}
	return nil
}
