package services

import (
	"time"

	"github.com/adlift/marketing-ops-backend/internal/models"
)

// ValidationResult is the structured pass/fail outcome of the completeness
// check. Missing preserves the adapter's declared field order so error
// messages are reproducible.
type ValidationResult struct {
	OK      bool     `json:"ok"`
	Missing []string `json:"missing"`
}

// fieldPredicates maps a required-field label, as declared by a platform
// adapter's RequiredFields, to its populated check. A label without a
// predicate counts as missing, so an adapter requirement this table does not
// know about can never be approved past.
var fieldPredicates = map[string]func(c *models.Campaign) bool{
	"Campaign Name":   func(c *models.Campaign) bool { return c.Name != "" },
	"Ad Group Name":   func(c *models.Campaign) bool { return c.AdGroupName != "" },
	"Budget":          func(c *models.Campaign) bool { return isPositive(c.Budget) },
	"Destination URL": func(c *models.Campaign) bool { return c.DestinationURL != "" },
	"Objective":       func(c *models.Campaign) bool { return c.Objective != "" },
	"Daily Budget":    func(c *models.Campaign) bool { return isPositive(c.DailyBudget) },
	"Total Budget":    func(c *models.Campaign) bool { return isPositive(c.TotalBudget) },
	"Start Date":      func(c *models.Campaign) bool { return isDateSet(c.StartDate) },
	"End Date":        func(c *models.Campaign) bool { return isDateSet(c.EndDate) },
	"Target Location": func(c *models.Campaign) bool { return c.TargetLocation != "" },
	"Target Language": func(c *models.Campaign) bool { return c.TargetLanguage != "" },
}

// ValidateCompleteness checks that every field the campaign's platform
// requires is populated. required comes from the platform adapter, the single
// authority on the list and its order. Pure: no side effects, deterministic
// output. Budget coherence (daily vs total) is an edit-form concern, not
// checked here.
func ValidateCompleteness(c *models.Campaign, required []string) ValidationResult {
	missing := []string{}
	for _, label := range required {
		isSet, known := fieldPredicates[label]
		if !known || !isSet(c) {
			missing = append(missing, label)
		}
	}

	return ValidationResult{OK: len(missing) == 0, Missing: missing}
}

func isPositive(v *float64) bool {
	return v != nil && *v > 0
}

func isDateSet(t *time.Time) bool {
	return t != nil && !t.IsZero()
}
