// ABOUTME: Sample data for trying touchbase out
// ABOUTME: Adds companies and communications through the same handlers the forms use
package cli

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/harperreed/touchbase/handlers"
	"github.com/harperreed/touchbase/models"
)

type demoCompany struct {
	input handlers.AddCompanyInput
	// Completed contacts, in days relative to today.
	logged []int
	// Planned contact relative to today; nil for none.
	planned *int
}

func days(n int) *int { return &n }

var demoCompanies = []demoCompany{
	{
		input: handlers.AddCompanyInput{
			Name:         "Acme Robotics",
			Location:     "Chicago, IL",
			ProfileURL:   "https://www.linkedin.com/company/acme-robotics",
			Emails:       []string{"partnerships@acme-robotics.example"},
			PhoneNumbers: []string{"+1 312 555 0100"},
			Comments:     "Met at the automation expo",
			Periodicity:  14,
		},
		logged:  []int{-30, -16},
		planned: days(-2),
	},
	{
		input: handlers.AddCompanyInput{
			Name:        "Globex Analytics",
			Location:    "Austin, TX",
			ProfileURL:  "https://www.linkedin.com/company/globex-analytics",
			Emails:      []string{"hello@globex.example", "cto@globex.example"},
			Periodicity: 7,
		},
		logged:  []int{-7},
		planned: days(0),
	},
	{
		input: handlers.AddCompanyInput{
			Name:       "Initech",
			Location:   "Remote",
			ProfileURL: "https://www.linkedin.com/company/initech",
			Comments:   "Warm intro via a former colleague",
		},
		planned: days(5),
	},
}

// SeedDemoData fills the store with a few companies in every status.
func SeedDemoData(ctx context.Context, rt *Runtime) error {
	companyH := handlers.NewCompanyHandlers(rt.Store, rt.Config.DefaultPeriodicity)
	commH := handlers.NewCommunicationHandlers(rt.Store, rt.Classifier)
	today := rt.Classifier.Today()

	for _, demo := range demoCompanies {
		company, err := companyH.AddCompany(ctx, demo.input)
		if err != nil {
			return fmt.Errorf("failed to add demo company %s: %w", demo.input.Name, err)
		}

		for _, offset := range demo.logged {
			_, err := commH.LogCommunication(ctx, handlers.LogCommunicationInput{
				CompanyID: company.ID.String(),
				MethodID:  models.MethodEmail,
				Date:      today.AddDate(0, 0, offset).Format("2006-01-02"),
				Notes:     "Check-in",
			})
			if err != nil {
				return fmt.Errorf("failed to log demo communication: %w", err)
			}
		}

		if demo.planned != nil {
			_, err := commH.PlanCommunication(ctx, handlers.PlanCommunicationInput{
				CompanyID: company.ID.String(),
				MethodID:  models.MethodLinkedInMessage,
				Date:      today.AddDate(0, 0, *demo.planned).Format("2006-01-02"),
				Notes:     "Share product update",
			})
			if err != nil {
				return fmt.Errorf("failed to plan demo communication: %w", err)
			}
		}
	}

	log.Info().Int("companies", len(demoCompanies)).Msg("demo data loaded")
	return nil
}
