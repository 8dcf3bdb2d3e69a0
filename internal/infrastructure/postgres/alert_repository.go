package postgres

import (
	"context"
	"fmt"

	"github.com/ramzib/dukan-pos/internal/domain"
	"github.com/ramzib/dukan-pos/internal/domain/entity"
	"github.com/ramzib/dukan-pos/internal/domain/repository"
)

var _ repository.AlertRepository = (*AlertRepo)(nil)

const alertColumns = `id, user_id, type, severity, title, message, read, product_id, customer_id, created_at`

// AlertRepo implémentation du port AlertRepository sur PostgreSQL.
// Le remplacement intégral (DeleteByUser puis BulkInsert) est orchestré par le
// cas d'usage; ici chaque moitié est une opération indépendante.
type AlertRepo struct {
	q Querier
}

// NewAlertRepository construit l'adaptateur de persistance des alertes.
func NewAlertRepository(q Querier) *AlertRepo {
	return &AlertRepo{q: q}
}

// DeleteByUser purge toutes les alertes du propriétaire.
func (r *AlertRepo) DeleteByUser(ctx context.Context, userID string) error {
	_, err := r.q.Exec(ctx, `DELETE FROM alerts WHERE user_id = $1`, userID)
	if err != nil {
		return fmt.Errorf("delete alerts: %w", err)
	}
	return nil
}

// BulkInsert insère le lot d'alertes généré par le moteur.
func (r *AlertRepo) BulkInsert(ctx context.Context, alerts []entity.Alert) error {
	for i := range alerts {
		a := &alerts[i]
		_, err := r.q.Exec(ctx,
			`INSERT INTO alerts (`+alertColumns+`)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
			a.ID, a.UserID, a.Type, a.Severity, a.Title, a.Message, a.Read,
			a.ProductID, a.CustomerID, a.CreatedAt,
		)
		if err != nil {
			return fmt.Errorf("insert alert: %w", err)
		}
	}
	return nil
}

// ListByUser renvoie les alertes du propriétaire, les plus récentes d'abord.
func (r *AlertRepo) ListByUser(ctx context.Context, userID string, onlyUnread bool) ([]entity.Alert, error) {
	query := `SELECT ` + alertColumns + ` FROM alerts WHERE user_id = $1`
	if onlyUnread {
		query += ` AND read = false`
	}
	query += ` ORDER BY created_at DESC, severity`
	rows, err := r.q.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("list alerts: %w", err)
	}
	defer rows.Close()
	var list []entity.Alert
	for rows.Next() {
		var a entity.Alert
		if err := rows.Scan(&a.ID, &a.UserID, &a.Type, &a.Severity, &a.Title, &a.Message,
			&a.Read, &a.ProductID, &a.CustomerID, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan alert: %w", err)
		}
		list = append(list, a)
	}
	return list, rows.Err()
}

// MarkRead marque une alerte comme lue. ErrNotFound si l'alerte n'existe pas
// ou n'appartient pas au propriétaire.
func (r *AlertRepo) MarkRead(ctx context.Context, userID, id string) error {
	tag, err := r.q.Exec(ctx, `UPDATE alerts SET read = true WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("mark alert read: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// MarkAllRead marque toutes les alertes du propriétaire comme lues.
func (r *AlertRepo) MarkAllRead(ctx context.Context, userID string) error {
	_, err := r.q.Exec(ctx, `UPDATE alerts SET read = true WHERE user_id = $1`, userID)
	if err != nil {
		return fmt.Errorf("mark all alerts read: %w", err)
	}
	return nil
}

// Delete supprime une alerte du propriétaire par ID.
func (r *AlertRepo) Delete(ctx context.Context, userID, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM alerts WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("delete alert: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
