// ABOUTME: Communication database operations
// ABOUTME: Inserts and lists logged and planned communications
package db

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/harperreed/touchbase/models"
)

func CreateCommunication(ctx context.Context, db *sql.DB, comm *models.Communication) error {
	_, err := db.ExecContext(ctx, `
		INSERT INTO communications (id, company_id, method_id, date, notes, completed)
		VALUES (?, ?, ?, ?, ?, ?)
	`, comm.ID, comm.CompanyID.String(), comm.MethodID, comm.Date, comm.Notes, comm.Completed)

	return err
}

// ListCommunications returns every communication in insertion order.
func ListCommunications(ctx context.Context, db *sql.DB) ([]models.Communication, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT id, company_id, method_id, date, notes, completed
		FROM communications
		ORDER BY seq
	`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var comms []models.Communication
	for rows.Next() {
		var (
			c         models.Communication
			companyID string
		)
		if err := rows.Scan(&c.ID, &companyID, &c.MethodID, &c.Date, &c.Notes, &c.Completed); err != nil {
			return nil, err
		}

		c.CompanyID, err = uuid.Parse(companyID)
		if err != nil {
			return nil, fmt.Errorf("failed to parse company ID: %w", err)
		}

		comms = append(comms, c)
	}

	return comms, rows.Err()
}
