// ABOUTME: Communication method reference data
// ABOUTME: Seeds and reads the static list of contact methods
package db

import (
	"context"
	"database/sql"
	"errors"

	"github.com/harperreed/touchbase/models"
)

// SeedCommunicationMethods inserts the default methods, skipping ones already present.
func SeedCommunicationMethods(ctx context.Context, db *sql.DB) error {
	for _, m := range models.DefaultCommunicationMethods() {
		_, err := db.ExecContext(ctx, `
			INSERT INTO communication_methods (id, name) VALUES (?, ?)
			ON CONFLICT(id) DO NOTHING
		`, m.ID, m.Name)
		if err != nil {
			return err
		}
	}
	return nil
}

func ListCommunicationMethods(ctx context.Context, db *sql.DB) ([]models.CommunicationMethod, error) {
	rows, err := db.QueryContext(ctx, `SELECT id, name FROM communication_methods ORDER BY seq`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var methods []models.CommunicationMethod
	for rows.Next() {
		var m models.CommunicationMethod
		if err := rows.Scan(&m.ID, &m.Name); err != nil {
			return nil, err
		}
		methods = append(methods, m)
	}

	return methods, rows.Err()
}

func GetCommunicationMethod(ctx context.Context, db *sql.DB, id string) (*models.CommunicationMethod, error) {
	m := &models.CommunicationMethod{}
	err := db.QueryRowContext(ctx, `SELECT id, name FROM communication_methods WHERE id = ?`, id).Scan(&m.ID, &m.Name)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return m, err
}
