package gallery

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func filterFixture() []Asset {
	a1 := image(1, "Branding", "Logos")
	a1.Title = strPtr("Coffee brand refresh")
	a2 := video(2, "Animation")
	a2.Description = strPtr("Looping logo sting")
	a3 := image(3, " branding ")
	a3.ProjectTitle = strPtr("Harbor Coffee")
	a4 := image(4, "Print")
	a4.AltText = strPtr("Poster on a wall")
	return []Asset{a1, a2, a3, a4}
}

func ids(assets []Asset) []int {
	out := make([]int, 0, len(assets))
	for _, a := range assets {
		out = append(out, a.ID)
	}
	return out
}

func TestApply(t *testing.T) {
	assets := filterFixture()
	tests := []struct {
		name string
		f    FilterState
		want []int
	}{
		{"no filters", FilterState{MediaType: MediaAll}, []int{1, 2, 3, 4}},
		{"images", FilterState{MediaType: MediaImage}, []int{1, 3, 4}},
		{"videos", FilterState{MediaType: MediaVideo}, []int{2}},
		{"tag normalised", FilterState{Tags: []string{"BRANDING"}}, []int{1, 3}},
		{"tags or", FilterState{Tags: []string{"print", "animation"}}, []int{2, 4}},
		{"search title", FilterState{Search: "coffee"}, []int{1, 3}},
		{"search alt", FilterState{Search: "POSTER"}, []int{4}},
		{"search tag", FilterState{Search: "logo"}, []int{1, 2}},
		{"and composition", FilterState{Search: "coffee", Tags: []string{"logos"}, MediaType: MediaImage}, []int{1}},
		{"no match", FilterState{Search: "zebra"}, []int{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ids(Apply(assets, tt.f)))
		})
	}
}

func TestApplyIsIntersectionOfFilters(t *testing.T) {
	assets := filterFixture()
	f := FilterState{Search: "o", Tags: []string{"branding", "animation"}, MediaType: MediaImage}

	bySearch := Apply(assets, FilterState{Search: f.Search})
	byTags := Apply(assets, FilterState{Tags: f.Tags})
	byType := Apply(assets, FilterState{MediaType: f.MediaType})

	var want []int
	for _, a := range assets {
		if contains(ids(bySearch), a.ID) && contains(ids(byTags), a.ID) && contains(ids(byType), a.ID) {
			want = append(want, a.ID)
		}
	}
	assert.Equal(t, want, ids(Apply(assets, f)))
}

func contains(xs []int, x int) bool {
	for _, v := range xs {
		if v == x {
			return true
		}
	}
	return false
}

func TestApplyReturnsNewSlice(t *testing.T) {
	assets := filterFixture()
	out := Apply(assets, FilterState{})
	out[0].ID = 100
	assert.Equal(t, 1, assets[0].ID)
}

func TestFilterState(t *testing.T) {
	f := FilterState{MediaType: MediaAll}
	assert.False(t, f.HasActiveFilters())

	f = f.ToggleTag("Branding")
	assert.True(t, f.IsTagSelected(" branding "))
	assert.True(t, f.HasActiveFilters())

	f = f.ToggleTag("BRANDING ")
	assert.Empty(t, f.Tags)

	f.MediaType = MediaVideo
	assert.True(t, f.HasActiveFilters())
	assert.Equal(t, FilterState{MediaType: MediaAll}, f.Clear())
}

func TestParseMediaFilter(t *testing.T) {
	assert.Equal(t, MediaImage, ParseMediaFilter(" Image "))
	assert.Equal(t, MediaVideo, ParseMediaFilter("video"))
	assert.Equal(t, MediaAll, ParseMediaFilter(""))
	assert.Equal(t, MediaAll, ParseMediaFilter("gif"))
}

func TestTagFormatting(t *testing.T) {
	assert.Equal(t, "motion graphics", NormalizeTag("  Motion Graphics "))
	assert.Equal(t, "Character Design", FormatTagForDisplay("character design"))
	assert.Equal(t, "Ai", FormatTagForDisplay("AI"))
}

func TestAvailableTags(t *testing.T) {
	got := AvailableTags([]string{"zines", "print", "branding", "3d"}, PredefinedTags)
	assert.Equal(t, []string{"Branding", "Print", "zines", "3d"}, got)
}
