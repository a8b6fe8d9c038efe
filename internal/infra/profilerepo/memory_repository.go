package profilerepo

import (
	"context"
	"sort"
	"sync"

	"github.com/yanqian/trip-advisor/internal/domain/profile"
)

// MemoryRepository is the in-process profile lookup used by default and in tests.
type MemoryRepository struct {
	mu       sync.RWMutex
	profiles map[string]profile.UserProfile
}

// NewMemoryRepository seeds a repository with the given profiles.
func NewMemoryRepository(profiles ...profile.UserProfile) *MemoryRepository {
	repo := &MemoryRepository{profiles: make(map[string]profile.UserProfile, len(profiles))}
	for _, p := range profiles {
		p.ID = profile.NormalizeID(p.ID)
		repo.profiles[p.ID] = p.Clone()
	}
	return repo
}

// Get returns a copy of the stored profile.
func (r *MemoryRepository) Get(_ context.Context, id string) (profile.UserProfile, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.profiles[id]
	if !ok {
		return profile.UserProfile{}, false, nil
	}
	return p.Clone(), true, nil
}

// List returns the known identifiers in sorted order.
func (r *MemoryRepository) List(_ context.Context) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ids := make([]string, 0, len(r.profiles))
	for id := range r.profiles {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}

// DefaultProfiles are the built-in demo travelers: a budget traveler with
// flexible dates, a heat-averse comfort seeker and a brand-loyal luxury traveler.
func DefaultProfiles() []profile.UserProfile {
	return []profile.UserProfile{
		{
			ID:              "alex",
			Name:            "Alex Chen",
			TempMinF:        72,
			TempMaxF:        85,
			FlightBudget:    profile.FlightBudget{Soft: 450, Hard: 650},
			HotelBudget:     profile.HotelBudget{Min: 120, Max: 250},
			PreferredBrands: []string{"Marriott", "Hilton"},
			TripNights:      7,
			FlexibilityDays: 5,
			ComfortPriority: 6,
		},
		{
			ID:              "jordan",
			Name:            "Jordan Rivera",
			TempMinF:        68,
			TempMaxF:        80,
			FlightBudget:    profile.FlightBudget{Soft: 600, Hard: 900},
			HotelBudget:     profile.HotelBudget{Min: 200, Max: 400},
			PreferredBrands: []string{"Hyatt", "Four Seasons"},
			TripNights:      5,
			FlexibilityDays: 2,
			ComfortPriority: 9,
		},
		{
			ID:              "sam",
			Name:            "Sam Patel",
			TempMinF:        75,
			TempMaxF:        90,
			FlightBudget:    profile.FlightBudget{Soft: 800, Hard: 1200},
			HotelBudget:     profile.HotelBudget{Min: 300, Max: 600},
			PreferredBrands: []string{"Four Seasons", "Ritz-Carlton"},
			TripNights:      10,
			FlexibilityDays: 7,
			ComfortPriority: 8,
		},
	}
}

var _ profile.Repository = (*MemoryRepository)(nil)
