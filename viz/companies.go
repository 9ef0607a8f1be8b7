// ABOUTME: Companies list view model
// ABOUTME: Flattens companies into display rows with primary contact details
package viz

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

type CompanyRow struct {
	ID          uuid.UUID
	Name        string
	ProfileURL  string
	Location    string
	Email       string
	Phone       string
	Comments    string
	Periodicity string
}

func BuildCompanies(ctx context.Context, src Source) ([]CompanyRow, error) {
	snap, err := src.Snapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load companies: %w", err)
	}

	rows := make([]CompanyRow, 0, len(snap.Companies))
	for _, c := range snap.Companies {
		rows = append(rows, CompanyRow{
			ID:          c.ID,
			Name:        c.Name,
			ProfileURL:  c.ProfileURL,
			Location:    c.Location,
			Email:       c.PrimaryEmail(),
			Phone:       c.PrimaryPhone(),
			Comments:    c.Comments,
			Periodicity: fmt.Sprintf("Every %d days", c.CommunicationPeriodicity),
		})
	}
	return rows, nil
}
