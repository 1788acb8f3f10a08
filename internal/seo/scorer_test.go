package seo

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/Bahjat/seo-insight/internal/model"
)

func rulesOf(deductions []model.Deduction) []string {
	names := make([]string, 0, len(deductions))
	for _, d := range deductions {
		names = append(names, d.Rule)
	}
	return names
}

func TestScore(t *testing.T) {
	good := ScoreInput{
		Title:           ptr("A descriptive page title"),
		MetaDescription: ptr("desc"),
		ContentSize:     1000,
		Elapsed:         500 * time.Millisecond,
	}

	tests := []struct {
		name      string
		mutate    func(*ScoreInput)
		wantScore int
		wantRules []string
	}{
		{name: "perfect page", mutate: func(*ScoreInput) {}, wantScore: 100, wantRules: []string{}},
		{
			name: "short title and no description",
			mutate: func(in *ScoreInput) {
				in.Title = ptr("SEO")
				in.MetaDescription = nil
			},
			wantScore: 80,
			wantRules: []string{"title", "meta_description"},
		},
		{name: "missing title", mutate: func(in *ScoreInput) { in.Title = nil }, wantScore: 90, wantRules: []string{"title"}},
		{name: "title of exactly ten runes", mutate: func(in *ScoreInput) { in.Title = ptr("ÄÖÜäöüßéèà") }, wantScore: 100, wantRules: []string{}},
		{name: "empty description is present", mutate: func(in *ScoreInput) { in.MetaDescription = ptr("") }, wantScore: 100, wantRules: []string{}},
		{name: "noindex", mutate: func(in *ScoreInput) { in.RobotsContent = ptr("noindex, nofollow") }, wantScore: 80, wantRules: []string{"noindex"}},
		{name: "noindex is case sensitive", mutate: func(in *ScoreInput) { in.RobotsContent = ptr("NOINDEX") }, wantScore: 100, wantRules: []string{}},
		{name: "robots without noindex", mutate: func(in *ScoreInput) { in.RobotsContent = ptr("index, follow") }, wantScore: 100, wantRules: []string{}},
		{name: "content exactly at limit", mutate: func(in *ScoreInput) { in.ContentSize = 50_000 }, wantScore: 100, wantRules: []string{}},
		{name: "content over limit", mutate: func(in *ScoreInput) { in.ContentSize = 50_001 }, wantScore: 90, wantRules: []string{"content_size"}},
		{name: "response exactly five seconds", mutate: func(in *ScoreInput) { in.Elapsed = 5 * time.Second }, wantScore: 100, wantRules: []string{}},
		{name: "slow response", mutate: func(in *ScoreInput) { in.Elapsed = 5*time.Second + time.Millisecond }, wantScore: 80, wantRules: []string{"response_time"}},
		{
			name: "everything wrong",
			mutate: func(in *ScoreInput) {
				in.Title = nil
				in.MetaDescription = nil
				in.RobotsContent = ptr("noindex")
				in.ContentSize = 1 << 20
				in.Elapsed = 10 * time.Second
			},
			wantScore: 30,
			wantRules: []string{"title", "meta_description", "noindex", "content_size", "response_time"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := good
			tt.mutate(&in)

			score, deductions := Score(in)
			assert.Equal(t, tt.wantScore, score)
			assert.Equal(t, tt.wantRules, rulesOf(deductions))

			total := 0
			for _, d := range deductions {
				total += d.Points
			}
			assert.Equal(t, max(100-total, 0), score)
		})
	}
}

func TestScore_AlwaysWithinBounds(t *testing.T) {
	titles := []*string{nil, ptr("short"), ptr("a long enough title")}
	descs := []*string{nil, ptr("d")}
	robots := []*string{nil, ptr("noindex"), ptr("all")}
	sizes := []int{0, 50_001}
	elapsed := []time.Duration{0, 6 * time.Second}

	for _, ti := range titles {
		for _, d := range descs {
			for _, r := range robots {
				for _, sz := range sizes {
					for _, el := range elapsed {
						score, _ := Score(ScoreInput{Title: ti, MetaDescription: d, RobotsContent: r, ContentSize: sz, Elapsed: el})
						assert.GreaterOrEqual(t, score, 0)
						assert.LessOrEqual(t, score, 100)
					}
				}
			}
		}
	}
}
