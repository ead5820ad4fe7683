package http

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/Musyoka2020-eng/Contriflow/internal/access"
	"github.com/Musyoka2020-eng/Contriflow/internal/core"
	"github.com/Musyoka2020-eng/Contriflow/internal/log"
	"github.com/Musyoka2020-eng/Contriflow/internal/report"
	"github.com/Musyoka2020-eng/Contriflow/internal/view"
	"github.com/Musyoka2020-eng/Contriflow/internal/workflow"
)

func (s *Server) affordances(r *http.Request) access.Affordances {
	return access.For(s.roles.Role(r.Context()))
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	plan, err := s.controller.Plan(r.Context())
	if err != nil {
		s.logger.ErrorContext(r.Context(), "Index render failed", log.FieldError, err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	body, err := s.renderTemplate("index.html", buildAppData(plan, s.affordances(r)))
	if err != nil {
		s.logger.ErrorContext(r.Context(), "Index template failed", log.FieldError, err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(body)
}

func (s *Server) handleApp(w http.ResponseWriter, r *http.Request) {
	plan, err := s.controller.Plan(r.Context())
	if err != nil {
		s.respondError(w, r, http.StatusInternalServerError, err)
		return
	}
	s.respondApp(w, r, plan, nil)
}

func (s *Server) handleSelectView(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		s.respondError(w, r, http.StatusBadRequest, err)
		return
	}
	v := core.View(strings.TrimSpace(r.Form.Get("view")))
	plan, err := s.controller.SelectView(r.Context(), v)
	if err != nil {
		s.respondError(w, r, http.StatusUnprocessableEntity, err)
		return
	}
	s.respondApp(w, r, plan, nil)
}

func (s *Server) handleChangePeriod(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		s.respondError(w, r, http.StatusBadRequest, err)
		return
	}
	year, month := periodFromForm(r)
	plan, err := s.controller.ChangePeriod(r.Context(), year, month)
	if err != nil {
		s.respondError(w, r, http.StatusUnprocessableEntity, err)
		return
	}
	s.respondApp(w, r, plan, nil)
}

func (s *Server) handleRequestCreateMonth(w http.ResponseWriter, r *http.Request) {
	if !s.requireEdit(w, r) {
		return
	}
	if err := r.ParseForm(); err != nil {
		s.respondError(w, r, http.StatusBadRequest, err)
		return
	}
	year, month := periodFromForm(r)
	prompt, notice, err := s.controller.RequestCreateMonth(r.Context(), year, month)
	s.respondWorkflowRequest(w, r, prompt, notice, err)
}

func (s *Server) handleRequestCloneMonth(w http.ResponseWriter, r *http.Request) {
	if !s.requireEdit(w, r) {
		return
	}
	prompt, notice, err := s.controller.RequestCloneMonth(r.Context())
	s.respondWorkflowRequest(w, r, prompt, notice, err)
}

// respondWorkflowRequest renders either the confirmation dialog or the
// refreshed app fragment carrying the notice.
func (s *Server) respondWorkflowRequest(w http.ResponseWriter, r *http.Request, prompt *workflow.Prompt, notice *workflow.Notice, err error) {
	if err != nil {
		s.respondError(w, r, http.StatusUnprocessableEntity, err)
		return
	}
	if prompt != nil {
		body, rerr := s.renderPrompt(prompt)
		if rerr != nil {
			s.respondError(w, r, http.StatusInternalServerError, rerr)
			return
		}
		_ = newHTMXResponse().Body(body).Send(w)
		return
	}
	plan, perr := s.controller.Plan(r.Context())
	if perr != nil {
		s.respondError(w, r, http.StatusInternalServerError, perr)
		return
	}
	s.respondApp(w, r, plan, notice)
}

func (s *Server) handleConfirm(w http.ResponseWriter, r *http.Request) {
	if !s.requireEdit(w, r) {
		return
	}
	if err := r.ParseForm(); err != nil {
		s.respondError(w, r, http.StatusBadRequest, err)
		return
	}
	promptID := strings.TrimSpace(r.Form.Get("prompt_id"))
	accepted := boolField(r, "accepted")

	plan, notice, err := s.controller.Confirm(r.Context(), promptID, accepted)
	if err != nil {
		s.respondError(w, r, http.StatusUnprocessableEntity, err)
		return
	}
	s.respondApp(w, r, plan, notice)
}

func (s *Server) handleMergeNewMembers(w http.ResponseWriter, r *http.Request) {
	if !s.requireEdit(w, r) {
		return
	}
	plan, notice, err := s.controller.MergeNewMembers(r.Context())
	s.respondMutation(w, r, plan, notice, err)
}

func (s *Server) handleAddContribution(w http.ResponseWriter, r *http.Request) {
	if !s.requireEdit(w, r) {
		return
	}
	if err := r.ParseForm(); err != nil {
		s.respondError(w, r, http.StatusBadRequest, err)
		return
	}
	name := sanitizeInput(r.Form.Get("member"))
	amount, err := parseAmount(r.Form.Get("amount"))
	if err != nil {
		s.respondError(w, r, http.StatusUnprocessableEntity, err)
		return
	}
	plan, notice, err := s.controller.AddContribution(r.Context(), name, amount, boolField(r, "paid"))
	s.respondMutation(w, r, plan, notice, err)
}

func (s *Server) handleUpdateContribution(w http.ResponseWriter, r *http.Request) {
	if !s.requireEdit(w, r) {
		return
	}
	if err := r.ParseForm(); err != nil {
		s.respondError(w, r, http.StatusBadRequest, err)
		return
	}
	index, err := parseIndex(r.PathValue("index"))
	if err != nil {
		s.respondError(w, r, http.StatusUnprocessableEntity, err)
		return
	}
	name := sanitizeInput(r.Form.Get("member"))
	amount, err := parseAmount(r.Form.Get("amount"))
	if err != nil {
		s.respondError(w, r, http.StatusUnprocessableEntity, err)
		return
	}
	plan, notice, err := s.controller.UpdateContribution(r.Context(), index, name, amount, boolField(r, "paid"))
	s.respondMutation(w, r, plan, notice, err)
}

func (s *Server) handleTogglePaid(w http.ResponseWriter, r *http.Request) {
	if !s.requireEdit(w, r) {
		return
	}
	index, err := parseIndex(r.PathValue("index"))
	if err != nil {
		s.respondError(w, r, http.StatusUnprocessableEntity, err)
		return
	}
	plan, notice, err := s.controller.TogglePaid(r.Context(), index)
	s.respondMutation(w, r, plan, notice, err)
}

func (s *Server) handleRemoveContribution(w http.ResponseWriter, r *http.Request) {
	if !s.requireEdit(w, r) {
		return
	}
	index, err := parseIndex(r.PathValue("index"))
	if err != nil {
		s.respondError(w, r, http.StatusUnprocessableEntity, err)
		return
	}
	plan, notice, err := s.controller.RemoveContribution(r.Context(), index)
	s.respondMutation(w, r, plan, notice, err)
}

func (s *Server) handleBlacklistAdd(w http.ResponseWriter, r *http.Request) {
	if !s.requireBlacklist(w, r) {
		return
	}
	if err := r.ParseForm(); err != nil {
		s.respondError(w, r, http.StatusBadRequest, err)
		return
	}
	name := sanitizeInput(r.Form.Get("member"))
	plan, notice, err := s.controller.AddBlacklistMember(r.Context(), name)
	s.respondMutation(w, r, plan, notice, err)
}

func (s *Server) handleBlacklistRemove(w http.ResponseWriter, r *http.Request) {
	if !s.requireBlacklist(w, r) {
		return
	}
	// PathValue already returns the decoded segment.
	member := sanitizeInput(r.PathValue("member"))
	plan, notice, err := s.controller.RemoveBlacklistMember(r.Context(), member)
	s.respondMutation(w, r, plan, notice, err)
}

func (s *Server) handleUpsertCampaign(w http.ResponseWriter, r *http.Request) {
	if !s.requireEdit(w, r) {
		return
	}
	if err := r.ParseForm(); err != nil {
		s.respondError(w, r, http.StatusBadRequest, err)
		return
	}
	target, err := parseAmount(r.Form.Get("target"))
	if err != nil {
		s.respondError(w, r, http.StatusUnprocessableEntity, err)
		return
	}
	campaign := core.Campaign{
		ID:     sanitizeInput(r.Form.Get("id")),
		Name:   sanitizeInput(r.Form.Get("name")),
		Target: target,
		Status: core.CampaignStatus(strings.TrimSpace(r.Form.Get("status"))),
	}
	plan, notice, err := s.controller.UpsertCampaign(r.Context(), campaign)
	s.respondMutation(w, r, plan, notice, err)
}

func (s *Server) handleCampaignGift(w http.ResponseWriter, r *http.Request) {
	if !s.requireEdit(w, r) {
		return
	}
	if err := r.ParseForm(); err != nil {
		s.respondError(w, r, http.StatusBadRequest, err)
		return
	}
	amount, err := parseAmount(r.Form.Get("amount"))
	if err != nil {
		s.respondError(w, r, http.StatusUnprocessableEntity, err)
		return
	}
	plan, notice, err := s.controller.AddCampaignGift(r.Context(), r.PathValue("id"), amount)
	s.respondMutation(w, r, plan, notice, err)
}

func (s *Server) handleDeleteCampaign(w http.ResponseWriter, r *http.Request) {
	if !s.requireEdit(w, r) {
		return
	}
	plan, notice, err := s.controller.DeleteCampaign(r.Context(), r.PathValue("id"))
	s.respondMutation(w, r, plan, notice, err)
}

func (s *Server) reportRequest(r *http.Request) report.Request {
	q := r.URL.Query()
	return report.Request{
		Type:   report.Type(strings.TrimSpace(q.Get("type"))),
		Year:   strings.TrimSpace(q.Get("year")),
		Month:  strings.TrimSpace(q.Get("month")),
		Member: sanitizeInput(q.Get("member")),
	}
}

func (s *Server) generateReport(req report.Request) (*report.Report, error) {
	var (
		rep *report.Report
		err error
	)
	s.controller.ReadState(func(st *core.AppState) {
		rep, err = report.Generate(st.Contributions, req)
	})
	return rep, err
}

func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	req := s.reportRequest(r)
	rep, err := s.generateReport(req)
	if err != nil {
		s.respondError(w, r, http.StatusUnprocessableEntity, err)
		return
	}

	exportURL := "/reports/export?" + url.Values{
		"type":   {string(req.Type)},
		"year":   {req.Year},
		"month":  {req.Month},
		"member": {req.Member},
	}.Encode()
	body, err := s.renderReport(rep, exportURL)
	if err != nil {
		s.respondError(w, r, http.StatusInternalServerError, err)
		return
	}
	_ = newHTMXResponse().Body(body).Send(w)
}

func (s *Server) handleReportExport(w http.ResponseWriter, r *http.Request) {
	req := s.reportRequest(r)

	key := fmt.Sprintf("%s|%s|%s|%s|r%d", req.Type, req.Year, req.Month, req.Member, s.controller.Revision())
	raw, ok := s.reportCache.Get(key)
	if !ok {
		rep, err := s.generateReport(req)
		if err != nil {
			s.respondError(w, r, http.StatusUnprocessableEntity, err)
			return
		}
		raw, err = report.XLSX(rep)
		if err != nil {
			s.respondError(w, r, http.StatusInternalServerError, err)
			return
		}
		s.reportCache.Set(key, raw)
	} else {
		s.logger.DebugContext(r.Context(), "Report export cache hit", log.FieldOperation, log.OpReport)
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="contriflow-report.xlsx"`)
	_, _ = w.Write(raw)
}

// respondMutation is the shared tail of every mutation handler.
func (s *Server) respondMutation(w http.ResponseWriter, r *http.Request, plan view.Plan, notice *workflow.Notice, err error) {
	if err != nil {
		s.respondError(w, r, http.StatusUnprocessableEntity, err)
		return
	}
	s.respondApp(w, r, plan, notice)
}

func (s *Server) respondApp(w http.ResponseWriter, r *http.Request, plan view.Plan, notice *workflow.Notice) {
	body, err := s.renderApp(plan, s.affordances(r))
	if err != nil {
		s.respondError(w, r, http.StatusInternalServerError, err)
		return
	}
	_ = newHTMXResponse().
		TriggerNotice(notice).
		TriggerStateChanged(s.controller.Version()).
		Body(body).
		Send(w)
}

func (s *Server) respondError(w http.ResponseWriter, r *http.Request, status int, err error) {
	s.logger.ErrorContext(r.Context(), "Request failed",
		log.FieldPath, r.URL.Path,
		log.FieldStatusCode, status,
		log.FieldError, err)
	_ = newHTMXResponse().
		Status(status).
		TriggerNotice(&workflow.Notice{Level: workflow.NoticeError, Title: "Request Failed", Message: err.Error()}).
		Body(errorFragment(err.Error())).
		Send(w)
}

func (s *Server) requireEdit(w http.ResponseWriter, r *http.Request) bool {
	if !s.affordances(r).EditContributions {
		s.respondForbidden(w, r)
		return false
	}
	return true
}

func (s *Server) requireBlacklist(w http.ResponseWriter, r *http.Request) bool {
	if !s.affordances(r).ManageBlacklist {
		s.respondForbidden(w, r)
		return false
	}
	return true
}

func (s *Server) respondForbidden(w http.ResponseWriter, r *http.Request) {
	s.logger.WarnContext(r.Context(), "Forbidden",
		log.FieldPath, r.URL.Path,
		log.FieldRole, string(s.roles.Role(r.Context())))
	_ = newHTMXResponse().
		Status(http.StatusForbidden).
		Body(errorFragment("You do not have permission for this action.")).
		Send(w)
}
