package http

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/Musyoka2020-eng/Contriflow/internal/access"
	"github.com/Musyoka2020-eng/Contriflow/internal/core"
	"github.com/Musyoka2020-eng/Contriflow/internal/report"
	"github.com/Musyoka2020-eng/Contriflow/internal/view"
	"github.com/Musyoka2020-eng/Contriflow/internal/workflow"
)

// viewTab is one entry of the tab bar. Visibility already has the access
// policy applied, so templates never re-derive permissions.
type viewTab struct {
	ID      string
	Label   string
	Active  bool
	Visible bool
}

// appData feeds the index page and the app fragment.
type appData struct {
	Plan   view.Plan
	Aff    access.Affordances
	Months []string
	Tabs   []viewTab
}

var tabLabels = []struct {
	id    core.View
	label string
}{
	{core.ViewMonthly, "Monthly"},
	{core.ViewYearly, "Yearly"},
	{core.ViewBlacklist, "Blacklist"},
	{core.ViewBudget, "Budget"},
	{core.ViewReports, "Reports"},
	{core.ViewSpecialGiving, "Special Giving"},
	{core.ViewSettings, "Settings"},
}

func buildAppData(plan view.Plan, aff access.Affordances) appData {
	data := appData{
		Plan:   plan,
		Aff:    aff,
		Months: core.Months,
	}
	for _, t := range tabLabels {
		data.Tabs = append(data.Tabs, viewTab{
			ID:      string(t.id),
			Label:   t.label,
			Active:  plan.Active == t.id,
			Visible: aff.AllowsView(t.id),
		})
	}
	return data
}

func (s *Server) renderTemplate(name string, data any) ([]byte, error) {
	if s.templates == nil {
		return nil, fmt.Errorf("templates not loaded")
	}
	var buf bytes.Buffer
	if err := s.templates.ExecuteTemplate(&buf, name, data); err != nil {
		return nil, fmt.Errorf("render %s: %w", name, err)
	}
	return buf.Bytes(), nil
}

func (s *Server) renderApp(plan view.Plan, aff access.Affordances) ([]byte, error) {
	return s.renderTemplate("app", buildAppData(plan, aff))
}

// promptData feeds the confirmation dialog fragment.
type promptData struct {
	Prompt *workflow.Prompt
}

func (s *Server) renderPrompt(p *workflow.Prompt) ([]byte, error) {
	return s.renderTemplate("confirm", promptData{Prompt: p})
}

// reportData feeds the report table fragment.
type reportData struct {
	Report    *report.Report
	ExportURL template.URL
}

func (s *Server) renderReport(rep *report.Report, exportURL string) ([]byte, error) {
	return s.renderTemplate("report", reportData{Report: rep, ExportURL: template.URL(exportURL)})
}

func errorFragment(msg string) []byte {
	return []byte(`<div class="error">` + template.HTMLEscapeString(msg) + `</div>`)
}
