package domain

import (
	"strings"
	"time"
)

// MemberStatus is the single source of truth for where a member sits in
// the lifecycle. Rejected applicants are members whose status is Rejected;
// there is no parallel classification field.
type MemberStatus string

const (
	StatusPending  MemberStatus = "Pending"
	StatusActive   MemberStatus = "Active"
	StatusRejected MemberStatus = "Rejected"
	StatusResigned MemberStatus = "Resigned"
)

// AllStatuses lists the statuses in display order
var AllStatuses = []MemberStatus{StatusPending, StatusActive, StatusRejected, StatusResigned}

// legacyStatusLabels maps labels written by the old system onto statuses.
// "Lulus" (passed) was written on approval.
var legacyStatusLabels = map[string]MemberStatus{
	"lulus": StatusActive,
}

// ParseStatus parses a status name case-insensitively
func ParseStatus(raw string) (MemberStatus, error) {
	key := strings.ToLower(strings.TrimSpace(raw))
	for _, s := range AllStatuses {
		if strings.ToLower(string(s)) == key {
			return s, nil
		}
	}
	if s, ok := legacyStatusLabels[key]; ok {
		return s, nil
	}
	return "", ErrInvalidStatus
}

// Valid reports whether s is one of the four lifecycle statuses
func (s MemberStatus) Valid() bool {
	for _, v := range AllStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// transitions holds the allowed status changes. Resigned is terminal.
var transitions = map[MemberStatus][]MemberStatus{
	StatusPending:  {StatusActive, StatusRejected},
	StatusRejected: {StatusActive, StatusPending},
	StatusActive:   {StatusResigned},
}

// CanTransition reports whether a member may move from one status to another
func CanTransition(from, to MemberStatus) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// TransitionKind labels what a status change meant to the operator
type TransitionKind string

const (
	TransitionApproved      TransitionKind = "approved"
	TransitionMigrated      TransitionKind = "migrated"
	TransitionRejected      TransitionKind = "rejected"
	TransitionReopened      TransitionKind = "reopened"
	TransitionResigned      TransitionKind = "resigned"
	TransitionResignRequest TransitionKind = "resignation_requested"
)

// ResignationState is the approval state of a resignation request
type ResignationState string

const (
	ResignationPending    ResignationState = "pending"
	ResignationApproved   ResignationState = "approved"
	ResignationSuperseded ResignationState = "superseded"
)

// Identity is the authenticated admin acting on a request
type Identity struct {
	AdminID   uint
	Username  string
	IPAddress string
}

// IsZero reports whether no admin is authenticated
func (i Identity) IsZero() bool {
	return i.AdminID == 0
}

// Period selects the window for dashboard metrics
type Period string

const (
	PeriodToday Period = "today"
	PeriodWeek  Period = "week"
	PeriodMonth Period = "month"
	PeriodYear  Period = "year"
)

// ParsePeriod returns the period for raw, defaulting to month
func ParsePeriod(raw string) Period {
	switch Period(strings.ToLower(strings.TrimSpace(raw))) {
	case PeriodToday:
		return PeriodToday
	case PeriodWeek:
		return PeriodWeek
	case PeriodYear:
		return PeriodYear
	default:
		return PeriodMonth
	}
}

// Start returns the first instant of the period containing now
func (p Period) Start(now time.Time) time.Time {
	y, m, d := now.Date()
	day := time.Date(y, m, d, 0, 0, 0, 0, now.Location())
	switch p {
	case PeriodToday:
		return day
	case PeriodWeek:
		offset := (int(day.Weekday()) + 6) % 7 // weeks start on Monday
		return day.AddDate(0, 0, -offset)
	case PeriodYear:
		return time.Date(y, time.January, 1, 0, 0, 0, 0, now.Location())
	default:
		return time.Date(y, m, 1, 0, 0, 0, 0, now.Location())
	}
}
