package delivery

import (
	"strings"

	"github.com/arkodas/banglamart-backend/pkg/db/models"
)

// ConfigSnapshot is the read-only delivery configuration the estimator works
// from. Rules are in stored order; matching walks them front to back so the
// first stored match wins when duplicates exist.
type ConfigSnapshot struct {
	Tiers    []models.DeliveryTier
	Rules    []models.LocationRule
	Settings models.DeliverySetting
}

// TierByID returns the tier with the given id, active or not.
func (s ConfigSnapshot) TierByID(id int) (models.DeliveryTier, bool) {
	for _, tier := range s.Tiers {
		if tier.ID == id {
			return tier, true
		}
	}
	return models.DeliveryTier{}, false
}

// ClassifyPlace maps a district/city pair to a tier id.
//
// Precedence: an exact district match beats a city substring match, which
// beats the default tier. Rule values are stored lowercased; inputs are
// lowercased here so matching is case-insensitive. Pincode-type rules are
// not consulted.
func ClassifyPlace(district, city string, snapshot ConfigSnapshot) int {
	district = strings.ToLower(strings.TrimSpace(district))
	city = strings.ToLower(strings.TrimSpace(city))

	if district != "" {
		for _, rule := range snapshot.Rules {
			if !rule.IsActive || rule.Type != models.RuleTypeDistrict {
				continue
			}
			if rule.Value == district {
				return rule.TierID
			}
		}
	}

	if city != "" {
		for _, rule := range snapshot.Rules {
			if !rule.IsActive || rule.Type != models.RuleTypeCity {
				continue
			}
			if rule.Value != "" && strings.Contains(city, rule.Value) {
				return rule.TierID
			}
		}
	}

	return snapshot.Settings.DefaultTierID
}
