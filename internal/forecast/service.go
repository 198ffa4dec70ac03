package forecast

import (
	"context"
	"errors"
	"fmt"
	"time"

	"nordcast/internal/store"
	"nordcast/pkg/locationforecast"
)

// RecordStore is the contract the in-memory store (and any future
// persistent store) must satisfy.
type RecordStore interface {
	Save(key string, record *locationforecast.Response)
	Latest(key string) (*locationforecast.Response, error)
}

// Service orchestrates fetching forecast records for tracked locations and
// caching them across refreshes. It threads the stored record back into
// every fetch, so the client's freshness check and conditional
// revalidation actually engage.
type Service struct {
	fetcher locationforecast.Fetcher
	store   RecordStore
}

// NewService creates a new Service.
func NewService(fetcher locationforecast.Fetcher, recordStore RecordStore) *Service {
	return &Service{
		fetcher: fetcher,
		store:   recordStore,
	}
}

// Refresh fetches the forecast for a location and stores the resulting
// record. While the stored record is still fresh the fetch is a no-op
// returning it unchanged; once expired, the origin is asked to revalidate.
// On failure the stored record is left untouched.
func (s *Service) Refresh(ctx context.Context, loc Location) error {
	params, err := s.params(loc)
	if err != nil {
		return err
	}

	if prior, err := s.store.Latest(loc.Key()); err == nil {
		params = params.WithLastResponse(prior)
	} else if !errors.Is(err, store.ErrNotFound) {
		return err
	}

	record, err := s.fetcher.Fetch(ctx, params)
	if err != nil {
		return fmt.Errorf("refreshing %s: %w", loc.Name, err)
	}

	s.store.Save(loc.Key(), record)
	return nil
}

// Daily returns at most days per-day summaries for a location, in the
// display timezone tz. The stored record's body is decoded on demand.
func (s *Service) Daily(loc Location, days int, tz *time.Location) ([]DaySummary, error) {
	body, err := s.body(loc)
	if err != nil {
		return nil, err
	}
	return BuildDaily(body, tz, days), nil
}

// Current returns the instant conditions from the most recent record for a
// location.
func (s *Service) Current(loc Location) (*CurrentConditions, error) {
	body, err := s.body(loc)
	if err != nil {
		return nil, err
	}

	current := buildCurrent(body)
	if current == nil {
		return nil, store.ErrNotFound
	}
	return current, nil
}

func (s *Service) body(loc Location) (*locationforecast.Body, error) {
	record, err := s.store.Latest(loc.Key())
	if err != nil {
		return nil, err
	}
	return record.Body()
}

func (s *Service) params(loc Location) (locationforecast.Params, error) {
	if loc.Alt != nil {
		return locationforecast.NewParamsWithAltitude(loc.Lat, loc.Lon, *loc.Alt)
	}
	return locationforecast.NewParams(loc.Lat, loc.Lon)
}
