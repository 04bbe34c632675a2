// Package moderation decides whether a task draft is published right away
// or held for manual review.
package moderation

import (
	"strings"
	"unicode/utf16"

	"github.com/shopspring/decimal"

	"task-market.com/task-market/internal/constants"
)

const (
	IssueTitleTooShort       = "title too short"
	IssueDescriptionTooShort = "description too short"
	IssuePriceTooLow         = "price suspiciously low"
	IssueBannedContent       = "contains content requiring moderation"
	IssueNewProfile          = "new profile requires initial review"
)

const (
	MinTitleLength       = 10
	MinDescriptionLength = 50
	// TrustedTaskCount is the number of prior tasks after which an
	// unverified profile skips the initial review.
	TrustedTaskCount = 5
)

var MinPrice = decimal.NewFromInt(5)

type Draft struct {
	Title       string
	Description string
	Conditions  string
	Price       decimal.Decimal
}

type TrustProfile struct {
	Verified       bool `json:"verified"`
	PriorTaskCount int  `json:"priorTaskCount"`
}

type Decision struct {
	Status constants.TaskStatus `json:"status"`
	Issues []string             `json:"issues"`
}

// Approved reports whether the task goes live without review.
func (d Decision) Approved() bool {
	return d.Status == constants.TaskActive
}

type Engine struct {
	patterns []BannedPattern
}

func NewEngine(patterns []BannedPattern) *Engine {
	if patterns == nil {
		patterns = DefaultBannedPatterns
	}
	return &Engine{patterns: patterns}
}

// Evaluate collects every rule violation; any issue holds the task as pending.
func (e *Engine) Evaluate(draft Draft, trust TrustProfile) Decision {
	issues := []string{}

	if textLength(draft.Title) < MinTitleLength {
		issues = append(issues, IssueTitleTooShort)
	}
	if textLength(draft.Description) < MinDescriptionLength {
		issues = append(issues, IssueDescriptionTooShort)
	}
	if draft.Price.LessThan(MinPrice) {
		issues = append(issues, IssuePriceTooLow)
	}
	if MatchBanned(e.patterns, draft.Title, draft.Description, draft.Conditions) != "" {
		issues = append(issues, IssueBannedContent)
	}
	if !trust.Verified && trust.PriorTaskCount < TrustedTaskCount {
		issues = append(issues, IssueNewProfile)
	}

	status := constants.TaskActive
	if len(issues) > 0 {
		status = constants.TaskPending
	}
	return Decision{Status: status, Issues: issues}
}

// textLength counts UTF-16 code units of the trimmed text, the unit browser
// clients use for their own length checks.
func textLength(s string) int {
	n := 0
	for _, r := range strings.TrimSpace(s) {
		if l := utf16.RuneLen(r); l > 0 {
			n += l
		} else {
			n++
		}
	}
	return n
}
