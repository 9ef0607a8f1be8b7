// ABOUTME: Form submission endpoints for the web UI
// ABOUTME: Parse posted forms, call the shared handlers and redirect or re-render with errors
package web

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog/log"

	"github.com/harperreed/touchbase/handlers"
)

func (s *Server) handleAddCompany(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form", http.StatusBadRequest)
		return
	}

	input := handlers.AddCompanyInput{
		Name:         r.PostForm.Get("name"),
		Location:     r.PostForm.Get("location"),
		ProfileURL:   r.PostForm.Get("profile_url"),
		Emails:       r.PostForm["email"],
		PhoneNumbers: r.PostForm["phone"],
		Comments:     r.PostForm.Get("comments"),
	}

	if raw := strings.TrimSpace(r.PostForm.Get("periodicity")); raw != "" {
		days, err := strconv.Atoi(raw)
		if err != nil {
			s.renderCompanies(w, r, http.StatusBadRequest, "Periodicity must be a whole number of days", input)
			return
		}
		input.Periodicity = days
	}

	company, err := s.companies.AddCompany(r.Context(), input)
	if err != nil {
		status := statusFor(err)
		if status == http.StatusInternalServerError {
			s.serverError(w, err)
			return
		}
		s.renderCompanies(w, r, status, err.Error(), input)
		return
	}

	log.Info().Str("company_id", company.ID.String()).Msg("company added via web")
	http.Redirect(w, r, "/companies", http.StatusSeeOther)
}

func (s *Server) handleLogCommunication(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form", http.StatusBadRequest)
		return
	}

	companyID := mux.Vars(r)["id"]
	input := handlers.LogCommunicationInput{
		CompanyID:    companyID,
		MethodID:     r.PostForm.Get("method_id"),
		Date:         r.PostForm.Get("date"),
		Notes:        r.PostForm.Get("notes"),
		ScheduleNext: r.PostForm.Get("schedule_next") != "",
	}

	if _, err := s.comms.LogCommunication(r.Context(), input); err != nil {
		s.formError(w, r, err, companyID)
		return
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) handlePlanCommunication(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form", http.StatusBadRequest)
		return
	}

	companyID := mux.Vars(r)["id"]
	input := handlers.PlanCommunicationInput{
		CompanyID: companyID,
		MethodID:  r.PostForm.Get("method_id"),
		Date:      r.PostForm.Get("date"),
		Notes:     r.PostForm.Get("notes"),
	}

	if _, err := s.comms.PlanCommunication(r.Context(), input); err != nil {
		s.formError(w, r, err, companyID)
		return
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) formError(w http.ResponseWriter, r *http.Request, err error, companyID string) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		s.serverError(w, err)
		return
	}
	s.renderDashboard(w, r, status, err.Error(), companyID)
}
