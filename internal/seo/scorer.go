package seo

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/Bahjat/seo-insight/internal/model"
)

const (
	maxScore           = 100
	minTitleLength     = 10
	maxContentSize     = 50_000
	maxResponseSeconds = 5.0
)

// ScoreInput is everything the scoring rules look at.
type ScoreInput struct {
	Title           *string
	MetaDescription *string
	RobotsContent   *string
	ContentSize     int
	Elapsed         time.Duration
}

type rule struct {
	name    string
	points  int
	reason  string
	applies func(ScoreInput) bool
}

// Every rule is evaluated; several may fire for one page.
var rules = []rule{
	{
		name:   "title",
		points: 10,
		reason: "Title is missing or shorter than 10 characters.",
		applies: func(in ScoreInput) bool {
			return in.Title == nil || utf8.RuneCountInString(*in.Title) < minTitleLength
		},
	},
	{
		name:    "meta_description",
		points:  10,
		reason:  "Meta description is missing.",
		applies: func(in ScoreInput) bool { return in.MetaDescription == nil },
	},
	{
		name:   "noindex",
		points: 20,
		reason: "Robots meta tag asks search engines not to index the page.",
		applies: func(in ScoreInput) bool {
			return in.RobotsContent != nil && strings.Contains(*in.RobotsContent, "noindex")
		},
	},
	{
		name:    "content_size",
		points:  10,
		reason:  "Page is larger than 50,000 bytes.",
		applies: func(in ScoreInput) bool { return in.ContentSize > maxContentSize },
	},
	{
		name:    "response_time",
		points:  20,
		reason:  "Server took longer than 5 seconds to respond.",
		applies: func(in ScoreInput) bool { return in.Elapsed.Seconds() > maxResponseSeconds },
	},
}

// Score applies the deduction rules and returns the clamped score together
// with the deductions that fired, in rule order.
func Score(in ScoreInput) (int, []model.Deduction) {
	score := maxScore
	deductions := make([]model.Deduction, 0, len(rules))

	for _, r := range rules {
		if !r.applies(in) {
			continue
		}
		score -= r.points
		deductions = append(deductions, model.Deduction{
			Rule:   r.name,
			Points: r.points,
			Reason: r.reason,
		})
	}

	return max(score, 0), deductions
}
