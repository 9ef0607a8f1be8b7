// ABOUTME: Company database operations
// ABOUTME: Inserts and reads companies, encoding email and phone lists as JSON
package db

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/harperreed/touchbase/models"
)

func CreateCompany(ctx context.Context, db *sql.DB, company *models.Company) error {
	emails, err := json.Marshal(company.Emails)
	if err != nil {
		return fmt.Errorf("failed to encode emails: %w", err)
	}
	phones, err := json.Marshal(company.PhoneNumbers)
	if err != nil {
		return fmt.Errorf("failed to encode phone numbers: %w", err)
	}

	_, err = db.ExecContext(ctx, `
		INSERT INTO companies (id, name, location, profile_url, emails, phone_numbers, comments, communication_periodicity)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, company.ID.String(), company.Name, company.Location, company.ProfileURL,
		string(emails), string(phones), company.Comments, company.CommunicationPeriodicity)

	return err
}

func GetCompany(ctx context.Context, db *sql.DB, id uuid.UUID) (*models.Company, error) {
	row := db.QueryRowContext(ctx, `
		SELECT id, name, location, profile_url, emails, phone_numbers, comments, communication_periodicity
		FROM companies WHERE id = ?
	`, id.String())

	company, err := scanCompany(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return company, err
}

// ListCompanies returns every company in insertion order.
func ListCompanies(ctx context.Context, db *sql.DB) ([]models.Company, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT id, name, location, profile_url, emails, phone_numbers, comments, communication_periodicity
		FROM companies
		ORDER BY seq
	`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var companies []models.Company
	for rows.Next() {
		c, err := scanCompany(rows)
		if err != nil {
			return nil, err
		}
		companies = append(companies, *c)
	}

	return companies, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanCompany(s scanner) (*models.Company, error) {
	var (
		c              models.Company
		idStr          string
		emails, phones string
	)
	if err := s.Scan(&idStr, &c.Name, &c.Location, &c.ProfileURL, &emails, &phones, &c.Comments, &c.CommunicationPeriodicity); err != nil {
		return nil, err
	}

	id, err := uuid.Parse(idStr)
	if err != nil {
		return nil, fmt.Errorf("failed to parse company ID: %w", err)
	}
	c.ID = id

	if err := json.Unmarshal([]byte(emails), &c.Emails); err != nil {
		return nil, fmt.Errorf("failed to decode emails: %w", err)
	}
	if err := json.Unmarshal([]byte(phones), &c.PhoneNumbers); err != nil {
		return nil, fmt.Errorf("failed to decode phone numbers: %w", err)
	}

	return &c, nil
}
