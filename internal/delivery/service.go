package delivery

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/arkodas/banglamart-backend/pkg/db/models"
	pkgerrors "github.com/arkodas/banglamart-backend/pkg/errors"
	"github.com/arkodas/banglamart-backend/pkg/postal"
)

// expressTierID is the tier the storefront advertises as express-eligible.
const expressTierID = 1

var pincodeRe = regexp.MustCompile(`^[0-9]{6}$`)

type configRepository interface {
	Snapshot(ctx context.Context) (ConfigSnapshot, error)
}

type pincodeLookup interface {
	Lookup(ctx context.Context, pincode string) (*postal.PostOffice, error)
}

type locationCache interface {
	Save(ctx context.Context, clientID string, loc ResolvedLocation) error
	Get(ctx context.Context, clientID string) (*ResolvedLocation, error)
	Clear(ctx context.Context, clientID string) error
	CountEstimate(ctx context.Context) error
}

// EstimateInput carries the shopper's pincode check.
type EstimateInput struct {
	Pincode  string
	ClientID string
}

// PreviewInput is the admin console's direct place lookup.
type PreviewInput struct {
	District string
	City     string
}

// Service exposes delivery estimation to the storefront and admin console.
type Service interface {
	EstimateByPincode(ctx context.Context, input EstimateInput) (*EstimateDTO, error)
	PreviewPlace(ctx context.Context, input PreviewInput) (*EstimateDTO, error)
	SavedLocation(ctx context.Context, clientID string) (*SavedLocationDTO, error)
	ClearSavedLocation(ctx context.Context, clientID string) error
}

type service struct {
	repo   configRepository
	postal pincodeLookup
	cache  locationCache
	now    func() time.Time
}

// NewService builds the estimator. The cache may be nil; estimates still work,
// they just are not remembered between visits.
func NewService(repo configRepository, lookup pincodeLookup, cache locationCache) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("delivery config repository required")
	}
	if lookup == nil {
		return nil, fmt.Errorf("pincode lookup required")
	}
	return &service{
		repo:   repo,
		postal: lookup,
		cache:  cache,
		now:    time.Now,
	}, nil
}

func (s *service) EstimateByPincode(ctx context.Context, input EstimateInput) (*EstimateDTO, error) {
	pincode := strings.TrimSpace(input.Pincode)
	if !pincodeRe.MatchString(pincode) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "please enter a valid 6-digit pincode")
	}

	snapshot, err := s.repo.Snapshot(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load delivery configuration")
	}

	office, err := s.postal.Lookup(ctx, pincode)
	if err != nil {
		return nil, err
	}

	restrictTo := strings.TrimSpace(snapshot.Settings.RestrictToState)
	if restrictTo != "" && strings.TrimSpace(office.State) != restrictTo {
		return nil, pkgerrors.New(pkgerrors.CodeUnsupportedRegion, fmt.Sprintf("sorry, we only deliver within %s", restrictTo))
	}

	locationName := fmt.Sprintf("%s, %s", office.Name, office.District)
	tierID := ClassifyPlace(office.District, office.Name, snapshot)

	tier, err := resolveUsableTier(snapshot, tierID)
	if err != nil {
		return nil, err
	}

	dto := s.buildEstimate(snapshot.Settings, tier, locationName)
	dto.Pincode = pincode

	if s.cache != nil {
		// Best effort: a cache outage must not block the estimate.
		_ = s.cache.CountEstimate(ctx)
		if clientID := strings.TrimSpace(input.ClientID); clientID != "" {
			_ = s.cache.Save(ctx, clientID, ResolvedLocation{
				Pincode:         pincode,
				LocationName:    locationName,
				DeliveryTier:    tier.ID,
				DeliveryMessage: TierLabel(tier),
			})
		}
	}

	return dto, nil
}

func (s *service) PreviewPlace(ctx context.Context, input PreviewInput) (*EstimateDTO, error) {
	district := strings.TrimSpace(input.District)
	city := strings.TrimSpace(input.City)
	if district == "" && city == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "district or city is required")
	}

	snapshot, err := s.repo.Snapshot(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load delivery configuration")
	}

	tierID := ClassifyPlace(district, city, snapshot)
	tier, err := resolveUsableTier(snapshot, tierID)
	if err != nil {
		return nil, err
	}

	locationName := district
	if locationName == "" {
		locationName = city
	} else if city != "" {
		locationName = fmt.Sprintf("%s, %s", city, district)
	}

	return s.buildEstimate(snapshot.Settings, tier, locationName), nil
}

func (s *service) SavedLocation(ctx context.Context, clientID string) (*SavedLocationDTO, error) {
	clientID = strings.TrimSpace(clientID)
	if clientID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "client_id is required")
	}

	if s.cache != nil {
		loc, err := s.cache.Get(ctx, clientID)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "read cached location")
		}
		if loc != nil {
			return &SavedLocationDTO{ResolvedLocation: *loc, Cached: true}, nil
		}
	}

	// Nothing cached: fall back to the configured service area and default tier.
	snapshot, err := s.repo.Snapshot(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load delivery configuration")
	}
	tier, err := resolveUsableTier(snapshot, snapshot.Settings.DefaultTierID)
	if err != nil {
		return nil, err
	}

	return &SavedLocationDTO{
		ResolvedLocation: ResolvedLocation{
			LocationName:    snapshot.Settings.RestrictToState,
			DeliveryTier:    tier.ID,
			DeliveryMessage: TierLabel(tier),
		},
		Cached: false,
	}, nil
}

func (s *service) ClearSavedLocation(ctx context.Context, clientID string) error {
	clientID = strings.TrimSpace(clientID)
	if clientID == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "client_id is required")
	}
	if s.cache == nil {
		return nil
	}
	if err := s.cache.Clear(ctx, clientID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "clear cached location")
	}
	return nil
}

func (s *service) buildEstimate(settings models.DeliverySetting, tier models.DeliveryTier, locationName string) *EstimateDTO {
	window := ComputeWindow(tier.MinDays, tier.MaxDays, s.now(), settings)
	return &EstimateDTO{
		LocationName:     locationName,
		Tier:             TierSummary{ID: tier.ID, Name: tier.Name},
		DeliveryMessage:  TierLabel(tier),
		DayRangeText:     window.DayRangeText,
		MinDate:          FormatLongDate(window.MinDate),
		MaxDate:          FormatLongDate(window.MaxDate),
		ExpressAvailable: settings.EnableExpressDelivery && tier.ID == expressTierID,
	}
}

// resolveUsableTier re-validates the classified tier and falls back to the
// default when it is missing or inactive. A broken default means the
// configuration no longer satisfies the one-tier invariant.
func resolveUsableTier(snapshot ConfigSnapshot, tierID int) (models.DeliveryTier, error) {
	if tier, ok := snapshot.TierByID(tierID); ok && tier.IsActive {
		return tier, nil
	}
	if tier, ok := snapshot.TierByID(snapshot.Settings.DefaultTierID); ok {
		return tier, nil
	}
	return models.DeliveryTier{}, pkgerrors.New(pkgerrors.CodeInternal, "delivery configuration incomplete")
}
