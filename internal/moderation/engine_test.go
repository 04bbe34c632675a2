package moderation

import (
	"reflect"
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"task-market.com/task-market/internal/constants"
)

var trusted = TrustProfile{Verified: true}

func cleanDraft() Draft {
	return Draft{
		Title:       "Assemble a wardrobe",
		Description: "Looking for someone to assemble a large wardrobe from a flat pack kit this weekend.",
		Price:       decimal.NewFromInt(40),
	}
}

func TestEngine_CleanDraftIsApproved(t *testing.T) {
	d := NewEngine(nil).Evaluate(cleanDraft(), trusted)

	if d.Status != constants.TaskActive {
		t.Fatalf("expected status %s, got %s", constants.TaskActive, d.Status)
	}
	if len(d.Issues) != 0 {
		t.Fatalf("expected no issues, got %v", d.Issues)
	}
	if !d.Approved() {
		t.Fatal("expected decision to be approved")
	}
}

func TestEngine_SingleViolations(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Draft)
		trust  TrustProfile
		want   string
	}{
		{"short title", func(d *Draft) { d.Title = "  Help me  " }, trusted, IssueTitleTooShort},
		{"short description", func(d *Draft) { d.Description = "Too short to say anything." }, trusted, IssueDescriptionTooShort},
		{"low price", func(d *Draft) { d.Price = decimal.RequireFromString("4.999") }, trusted, IssuePriceTooLow},
		{"url in description", func(d *Draft) { d.Description += " Details at https://example.com/job" }, trusted, IssueBannedContent},
		{"messenger in title", func(d *Draft) { d.Title = "Wardrobe job, WhatsApp only" }, trusted, IssueBannedContent},
		{"email in conditions", func(d *Draft) { d.Conditions = "write to jobs@example.org" }, trusted, IssueBannedContent},
		{"new profile", func(d *Draft) {}, TrustProfile{Verified: false, PriorTaskCount: 4}, IssueNewProfile},
	}

	engine := NewEngine(nil)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			draft := cleanDraft()
			tt.mutate(&draft)

			d := engine.Evaluate(draft, tt.trust)
			if d.Status != constants.TaskPending {
				t.Errorf("expected status %s, got %s", constants.TaskPending, d.Status)
			}
			if !reflect.DeepEqual(d.Issues, []string{tt.want}) {
				t.Errorf("expected issues [%s], got %v", tt.want, d.Issues)
			}
		})
	}
}

func TestEngine_Boundaries(t *testing.T) {
	engine := NewEngine(nil)

	draft := cleanDraft()
	draft.Price = decimal.NewFromInt(5)
	draft.Title = "  " + strings.Repeat("a", MinTitleLength) + "\t"
	draft.Description = strings.Repeat("b", MinDescriptionLength)

	d := engine.Evaluate(draft, trusted)
	if !d.Approved() {
		t.Fatalf("boundary values must not be flagged, got %v", d.Issues)
	}

	draft.Title = strings.Repeat("a", MinTitleLength-1)
	d = engine.Evaluate(draft, trusted)
	if !reflect.DeepEqual(d.Issues, []string{IssueTitleTooShort}) {
		t.Fatalf("expected title issue, got %v", d.Issues)
	}
}

func TestEngine_TrustGate(t *testing.T) {
	engine := NewEngine(nil)

	d := engine.Evaluate(cleanDraft(), TrustProfile{Verified: false, PriorTaskCount: 5})
	if !d.Approved() {
		t.Errorf("five prior tasks should pass the trust gate, got %v", d.Issues)
	}

	d = engine.Evaluate(cleanDraft(), TrustProfile{Verified: false, PriorTaskCount: 0})
	if d.Approved() {
		t.Error("a brand new unverified profile must be held for review")
	}
}

func TestEngine_BannedContentReportedOnce(t *testing.T) {
	draft := cleanDraft()
	draft.Title = "Call me on telegram"
	draft.Description += " or email me at someone@example.com"
	draft.Conditions = "see www.example.com"

	d := NewEngine(nil).Evaluate(draft, trusted)
	count := 0
	for _, issue := range d.Issues {
		if issue == IssueBannedContent {
			count++
		}
	}
	if count != 1 {
		t.Fatalf("expected banned content issue exactly once, got %d in %v", count, d.Issues)
	}
}

func TestEngine_MovingScenario(t *testing.T) {
	draft := Draft{
		Title:       "Need help moving",
		Description: "Two boxes and a couch to carry upstairs",
		Price:       decimal.NewFromInt(3),
	}

	d := NewEngine(nil).Evaluate(draft, TrustProfile{})
	want := []string{IssueDescriptionTooShort, IssuePriceTooLow, IssueNewProfile}
	if !reflect.DeepEqual(d.Issues, want) {
		t.Fatalf("expected %v, got %v", want, d.Issues)
	}
	if d.Status != constants.TaskPending {
		t.Fatalf("expected pending, got %s", d.Status)
	}
}

func TestMatchBanned_CaseInsensitive(t *testing.T) {
	if label := MatchBanned(DefaultBannedPatterns, "reach me on VIBER"); label != "messenger" {
		t.Errorf("expected messenger label, got %q", label)
	}
	if label := MatchBanned(DefaultBannedPatterns, "", "plain text about a garden"); label != "" {
		t.Errorf("expected no match, got %q", label)
	}
}

func TestEngine_CustomPatterns(t *testing.T) {
	engine := NewEngine([]BannedPattern{})
	draft := cleanDraft()
	draft.Description += " https://example.com"

	if d := engine.Evaluate(draft, trusted); !d.Approved() {
		t.Fatalf("empty pattern table should not flag content, got %v", d.Issues)
	}
}

func TestMatchBanned_OrdinaryTextIsClean(t *testing.T) {
	for _, text := range []string{
		"budget between 100 - 150 (2024 prices)",
		"needs to be done by 12 05 2024",
		"start on 12.05.2024 10:30, finish by 2024-05-14 18:00",
		"The wifi signal in the back room is weak",
		"order 3 x 1200 mm boards and 40 screws",
	} {
		if label := MatchBanned(DefaultBannedPatterns, text); label != "" {
			t.Errorf("%q: unexpected %q match", text, label)
		}
	}
}

func TestMatchBanned_ContactDetails(t *testing.T) {
	tests := []struct {
		text  string
		label string
	}{
		{"reach me at +1 555 123 4567", "phone"},
		{"number is (555) 123-4567", "phone"},
		{"555.123.4567 after six", "phone"},
		{"from 12.05.2024 555 123 4567", "phone"},
		{"message me on Signal", "messenger"},
		{"signal me when you arrive", "messenger"},
		{"whatsapp only", "messenger"},
	}

	for _, tt := range tests {
		if label := MatchBanned(DefaultBannedPatterns, tt.text); label != tt.label {
			t.Errorf("%q: expected %q, got %q", tt.text, tt.label, label)
		}
	}
}

func TestEngine_LengthCountsUTF16Units(t *testing.T) {
	draft := cleanDraft()
	draft.Title = strings.Repeat("\U0001F527", 5)

	for _, issue := range NewEngine(nil).Evaluate(draft, trusted).Issues {
		if issue == IssueTitleTooShort {
			t.Fatalf("five emoji are ten UTF-16 units and must not be flagged")
		}
	}

	draft.Title = strings.Repeat("\U0001F527", 4) + "a"
	if d := NewEngine(nil).Evaluate(draft, trusted); d.Approved() {
		t.Fatal("nine UTF-16 units must be flagged as too short")
	}
}
