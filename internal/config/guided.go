package config

import "github.com/akyairhashvil/spiritualpath/internal/models"

// GuidedMeditations is the built-in catalog offered in the guided tab.
var GuidedMeditations = []models.GuidedMeditation{
	{
		ID:              "breathing",
		Title:           "Mindful Breathing",
		Description:     "A simple meditation focusing on the breath to anchor you in the present moment.",
		DurationSeconds: 300,
	},
	{
		ID:              "loving-kindness",
		Title:           "Loving-Kindness",
		Description:     "Cultivate compassion for yourself and others through this heart-centered practice.",
		DurationSeconds: 600,
	},
	{
		ID:              "body-scan",
		Title:           "Body Scan",
		Description:     "A progressive relaxation technique to release tension throughout your body.",
		DurationSeconds: 900,
	},
}

// FindGuided looks up a guided meditation by ID.
func FindGuided(id string) (models.GuidedMeditation, bool) {
	for _, g := range GuidedMeditations {
		if g.ID == id {
			return g, true
		}
	}
	return models.GuidedMeditation{}, false
}

// GuidedDuration returns the session length for a guided meditation,
// falling back to the default when the entry is unknown or has no duration.
func GuidedDuration(id string) int {
	if g, ok := FindGuided(id); ok && g.DurationSeconds > 0 {
		return g.DurationSeconds
	}
	return DefaultDurationSeconds
}
