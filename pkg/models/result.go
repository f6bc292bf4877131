/*
 * Copyright 2025 Carver Automation Corporation.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package models

import "time"

// Facet names one independently reconciled aspect of a host.
type Facet string

const (
	FacetRecord     Facet = "record"
	FacetHost       Facet = "host"
	FacetName       Facet = "name"
	FacetStatus     Facet = "status"
	FacetHostgroups Facet = "hostgroups"
	FacetTemplates  Facet = "templates"
	FacetInterface  Facet = "interface"
	FacetProxy      Facet = "proxy"
	FacetTags       Facet = "tags"
	FacetUsermacros Facet = "usermacros"
	FacetInventory  Facet = "inventory"
)

// OutcomeStatus is the outcome of reconciling one facet.
type OutcomeStatus string

const (
	FacetApplied OutcomeStatus = "applied"
	FacetInSync  OutcomeStatus = "in_sync"
	FacetSkipped OutcomeStatus = "skipped"
	FacetFailed  OutcomeStatus = "failed"
	// FacetPlanned is reported instead of applied in dry-run mode.
	FacetPlanned OutcomeStatus = "planned"
)

// FacetOutcome records what happened to one facet.
type FacetOutcome struct {
	Facet  Facet         `json:"facet"`
	Status OutcomeStatus `json:"status"`
	Reason string        `json:"reason,omitempty"`
	Err    error         `json:"-"`
}

// ReconciliationResult is the per-host result of one run.
type ReconciliationResult struct {
	RecordID int            `json:"record_id"`
	Host     string         `json:"host"`
	Outcomes []FacetOutcome `json:"outcomes"`
	Warnings []string       `json:"warnings,omitempty"`
}

// Add appends an outcome.
func (r *ReconciliationResult) Add(facet Facet, status OutcomeStatus, reason string, err error) {
	r.Outcomes = append(r.Outcomes, FacetOutcome{Facet: facet, Status: status, Reason: reason, Err: err})
}

// Warn appends a non-fatal warning.
func (r *ReconciliationResult) Warn(msg string) {
	r.Warnings = append(r.Warnings, msg)
}

// Failed reports whether any facet failed.
func (r *ReconciliationResult) Failed() bool {
	for _, o := range r.Outcomes {
		if o.Status == FacetFailed {
			return true
		}
	}

	return false
}

// Changed reports whether any facet was written, or would be in dry-run.
func (r *ReconciliationResult) Changed() bool {
	for _, o := range r.Outcomes {
		if o.Status == FacetApplied || o.Status == FacetPlanned {
			return true
		}
	}

	return false
}

// Outcome returns the first outcome recorded for the facet.
func (r *ReconciliationResult) Outcome(facet Facet) (FacetOutcome, bool) {
	for _, o := range r.Outcomes {
		if o.Facet == facet {
			return o, true
		}
	}

	return FacetOutcome{}, false
}

// RunSummary aggregates the results of one reconciliation run.
type RunSummary struct {
	RunID    string                  `json:"run_id"`
	Started  time.Time               `json:"started"`
	Finished time.Time               `json:"finished"`
	DryRun   bool                    `json:"dry_run"`
	Records  int                     `json:"records"`
	Changed  int                     `json:"changed"`
	Failed   int                     `json:"failed"`
	Skipped  int                     `json:"skipped"`
	Results  []*ReconciliationResult `json:"results"`
}

// Tally fills the counters from Results.
func (s *RunSummary) Tally() {
	s.Records = len(s.Results)
	s.Changed, s.Failed, s.Skipped = 0, 0, 0

	for _, r := range s.Results {
		switch {
		case r.Failed():
			s.Failed++
		case r.Changed():
			s.Changed++
		case len(r.Outcomes) == 1 && r.Outcomes[0].Status == FacetSkipped:
			s.Skipped++
		}
	}
}
