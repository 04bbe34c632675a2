package moderation

import "regexp"

// BannedPattern is one entry of the contact-channel scan. Text matching
// Ignore is blanked out before Pattern is applied.
type BannedPattern struct {
	Label   string
	Pattern *regexp.Regexp
	Ignore  *regexp.Regexp
}

// DefaultBannedPatterns catches attempts to move the conversation to an
// external channel before an application is accepted.
var DefaultBannedPatterns = []BannedPattern{
	{Label: "url", Pattern: regexp.MustCompile(`(?i)\b(?:https?://|www\.)\S+`)},
	{Label: "domain", Pattern: regexp.MustCompile(`(?i)\b[a-z0-9-]+\.(?:com|net|org|ru|io|me|info|biz)\b`)},
	// ten or more digits with at most two separators between each
	{
		Label:   "phone",
		Pattern: regexp.MustCompile(`\+?(?:\d[\s\-.()]{0,2}){9,}\d`),
		Ignore:  regexp.MustCompile(`\b\d{1,4}[./\-]\d{1,2}[./\-]\d{2,4}\b`),
	},
	{Label: "phone keyword", Pattern: regexp.MustCompile(`(?i)\b(?:phone|call me|text me|sms)\b`)},
	{Label: "messenger", Pattern: regexp.MustCompile(`(?i)\b(?:whats\s?app|telegram|viber|wechat|skype|tg)\b|\b(?:on|via|over|in|use) signal\b|\bsignal (?:me|app|messenger)\b`)},
	{Label: "email", Pattern: regexp.MustCompile(`(?i)[a-z0-9._%+\-]+@[a-z0-9.\-]+\.[a-z]{2,}`)},
	{Label: "email keyword", Pattern: regexp.MustCompile(`(?i)\b(?:e-?mail|gmail|mail me)\b`)},
}

// MatchBanned returns the label of the first pattern matching any field,
// or "" when all fields are clean.
func MatchBanned(patterns []BannedPattern, fields ...string) string {
	for _, field := range fields {
		if field == "" {
			continue
		}
		for _, p := range patterns {
			if p.matches(field) {
				return p.Label
			}
		}
	}
	return ""
}

func (p BannedPattern) matches(field string) bool {
	if p.Ignore != nil {
		field = p.Ignore.ReplaceAllString(field, "|")
	}
	return p.Pattern.MatchString(field)
}
