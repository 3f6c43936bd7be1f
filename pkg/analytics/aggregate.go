package analytics

import (
	"math"

	"github.com/leadpilot/leadpilot/pkg/domain"
	"github.com/leadpilot/leadpilot/pkg/scoring"
)

// PipelineEntry is the lead count for one pipeline stage.
type PipelineEntry struct {
	Status domain.LeadStatus `json:"status"`
	Count  int               `json:"count"`
}

// SourceEntry is the lead count for one lead source.
type SourceEntry struct {
	Source domain.LeadSource `json:"source"`
	Count  int               `json:"count"`
}

// FunnelStage is one step of the forward-progress funnel.
type FunnelStage struct {
	Stage string `json:"stage"`
	Count int    `json:"count"`
}

// Overview summarizes the lead collection for the dashboard cards.
type Overview struct {
	TotalLeads          int `json:"total_leads"`
	HotLeads            int `json:"hot_leads"`
	WarmLeads           int `json:"warm_leads"`
	ColdLeads           int `json:"cold_leads"`
	ConversionRate      int `json:"conversion_rate"`
	CallsScheduledToday int `json:"calls_scheduled_today"`
}

// AggregatePipeline counts leads per status. The result always has exactly
// one entry per status, zero-filled, in canonical pipeline order.
func AggregatePipeline(leads []domain.Lead) []PipelineEntry {
	counts := make(map[domain.LeadStatus]int, len(domain.PipelineOrder))
	for _, l := range leads {
		counts[l.Status]++
	}

	pipeline := make([]PipelineEntry, 0, len(domain.PipelineOrder))
	for _, status := range domain.PipelineOrder {
		pipeline = append(pipeline, PipelineEntry{Status: status, Count: counts[status]})
	}
	return pipeline
}

// AggregateSources counts leads per source, omitting sources with no leads.
func AggregateSources(leads []domain.Lead) []SourceEntry {
	counts := make(map[domain.LeadSource]int, len(domain.Sources))
	for _, l := range leads {
		counts[l.Source]++
	}

	sources := make([]SourceEntry, 0, len(domain.Sources))
	for _, source := range domain.Sources {
		if counts[source] > 0 {
			sources = append(sources, SourceEntry{Source: source, Count: counts[source]})
		}
	}
	return sources
}

// Funnel derives the forward-progress funnel from pipeline data. Lost is not
// a forward-progress stage and is excluded.
func Funnel(pipeline []PipelineEntry) []FunnelStage {
	total := 0
	counts := make(map[domain.LeadStatus]int, len(pipeline))
	for _, entry := range pipeline {
		total += entry.Count
		counts[entry.Status] = entry.Count
	}

	return []FunnelStage{
		{Stage: "Total", Count: total},
		{Stage: string(domain.StatusContacted), Count: counts[domain.StatusContacted]},
		{Stage: string(domain.StatusQualified), Count: counts[domain.StatusQualified]},
		{Stage: string(domain.StatusProposal), Count: counts[domain.StatusProposal]},
		{Stage: string(domain.StatusWon), Count: counts[domain.StatusWon]},
	}
}

// ConversionRate is the percentage of leads marked Won, rounded to the
// nearest whole number. Zero when there are no leads.
func ConversionRate(leads []domain.Lead) int {
	if len(leads) == 0 {
		return 0
	}

	won := 0
	for _, l := range leads {
		if l.Status == domain.StatusWon {
			won++
		}
	}
	return int(math.Round(float64(won) / float64(len(leads)) * 100))
}

// ComputeOverview aggregates a lead collection snapshot. A missing score
// counts as 0, i.e. Cold.
func ComputeOverview(leads []domain.Lead) Overview {
	overview := Overview{
		TotalLeads:     len(leads),
		ConversionRate: ConversionRate(leads),
	}

	for _, l := range leads {
		switch scoring.Bucket(l.ScoreValue()) {
		case domain.LabelHot:
			overview.HotLeads++
		case domain.LabelWarm:
			overview.WarmLeads++
		default:
			overview.ColdLeads++
		}

		if l.CallStatus == domain.CallScheduled {
			overview.CallsScheduledToday++
		}
	}

	return overview
}
