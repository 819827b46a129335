package service

import (
	"context"
	"errors"

	"github.com/pawtel/collar-telemetry/internal/domain"
)

// Store is the persistence surface the service needs. *repository.Repos
// satisfies it; tests substitute a fake.
type Store interface {
	InsertReading(ctx context.Context, rd *domain.Reading) error
	InsertMetric(ctx context.Context, m *domain.Metric) error
	InsertReadingWithMetric(ctx context.Context, rd *domain.Reading, m *domain.Metric) error
	LatestMetric(ctx context.Context, collarID string) (*domain.Metric, error)
	LatestReading(ctx context.Context, collarID string) (*domain.Reading, error)
	History(ctx context.Context, collarID string, limit, offset int) ([]domain.HistoryRow, error)
}

var (
	ErrMissingDogName  = errors.New("missing required field: dog_name")
	ErrMissingCollarID = errors.New("missing required field: collar_id")
	ErrNoMetricFields  = errors.New("no metric fields supplied")
	ErrNotFound        = errors.New("no metrics recorded for this collar")
)

const maxPageSize = 1000

// DefaultPageSize applies when a history request carries no limit.
const DefaultPageSize = 50

type Services struct {
	Telemetry *TelemetryService
}

func New(store Store) *Services {
	return &Services{Telemetry: &TelemetryService{store: store}}
}

type TelemetryService struct {
	store Store
}

// ReadingInput carries the raw, still-untyped fields of an intake request.
type ReadingInput struct {
	CollarID          string
	DogName           string
	Breed             string
	CoatType          string
	Height            string
	Weight            string
	Sex               string
	TemperatureIRGun  string
	CollarOrientation string
}

func (in ReadingInput) toReading() *domain.Reading {
	return &domain.Reading{
		CollarID:          domain.Str(in.CollarID),
		DogName:           in.DogName,
		Breed:             domain.Str(in.Breed),
		CoatType:          domain.Str(in.CoatType),
		Height:            domain.Num(in.Height),
		Weight:            domain.Num(in.Weight),
		Sex:               domain.Str(in.Sex),
		TemperatureIRGun:  domain.Num(in.TemperatureIRGun),
		CollarOrientation: domain.Str(in.CollarOrientation),
	}
}

// MetricInput carries the raw fields of a measurement request.
type MetricInput struct {
	CollarID     string
	Temperature  string
	StepCount    string
	CalorieCount string
	AccelX       string
	AccelY       string
	AccelZ       string
	GyroX        string
	GyroY        string
	GyroZ        string
	NPLTime      string
}

func (in MetricInput) toMetric() *domain.Metric {
	return &domain.Metric{
		CollarID:     domain.Str(in.CollarID),
		Temperature:  domain.Num(in.Temperature),
		StepCount:    domain.Count(in.StepCount),
		CalorieCount: domain.Num(in.CalorieCount),
		AccelX:       domain.Num(in.AccelX),
		AccelY:       domain.Num(in.AccelY),
		AccelZ:       domain.Num(in.AccelZ),
		GyroX:        domain.Num(in.GyroX),
		GyroY:        domain.Num(in.GyroY),
		GyroZ:        domain.Num(in.GyroZ),
		NPLTime:      domain.When(in.NPLTime),
	}
}

// Ingest writes a reading and, when any measurement field survived coercion,
// a metric row linked by collar_id, atomically. The returned metric is nil
// when no metric row was written.
func (s *TelemetryService) Ingest(ctx context.Context, rin ReadingInput, min MetricInput) (*domain.Reading, *domain.Metric, error) {
	if rin.DogName == "" {
		return nil, nil, ErrMissingDogName
	}
	rd := rin.toReading()
	m := min.toMetric()
	if !m.HasData() {
		m = nil
	}
	if err := s.store.InsertReadingWithMetric(ctx, rd, m); err != nil {
		return nil, nil, err
	}
	return rd, m, nil
}

// RecordReading writes a reading with no metric attached.
func (s *TelemetryService) RecordReading(ctx context.Context, rin ReadingInput) (*domain.Reading, error) {
	if rin.DogName == "" {
		return nil, ErrMissingDogName
	}
	rd := rin.toReading()
	if err := s.store.InsertReading(ctx, rd); err != nil {
		return nil, err
	}
	return rd, nil
}

// RecordMetric writes a standalone metric keyed by collar_id. Requests that
// carry no measurement at all are refused as unsupported rather than invalid;
// the endpoint exists only to insert.
func (s *TelemetryService) RecordMetric(ctx context.Context, min MetricInput) (*domain.Metric, error) {
	if min.CollarID == "" {
		return nil, ErrMissingCollarID
	}
	m := min.toMetric()
	if !m.HasData() {
		return nil, ErrNoMetricFields
	}
	if err := s.store.InsertMetric(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

// Latest returns the newest metric for a collar together with the newest
// reading sharing that collar_id. A missing reading is tolerated (nil); a
// missing metric is ErrNotFound.
func (s *TelemetryService) Latest(ctx context.Context, collarID string) (*domain.Metric, *domain.Reading, error) {
	m, err := s.store.LatestMetric(ctx, collarID)
	if err != nil {
		return nil, nil, err
	}
	if m == nil {
		return nil, nil, ErrNotFound
	}
	rd, err := s.store.LatestReading(ctx, collarID)
	if err != nil {
		return nil, nil, err
	}
	return m, rd, nil
}

// History returns a page of joined reading/metric rows for a collar, newest
// first. Limit is clamped to [1, 1000], offset to [0, inf).
func (s *TelemetryService) History(ctx context.Context, collarID string, limit, offset int) ([]domain.HistoryRow, error) {
	if collarID == "" {
		return nil, ErrMissingCollarID
	}
	if limit < 1 {
		limit = 1
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}
	if offset < 0 {
		offset = 0
	}
	return s.store.History(ctx, collarID, limit, offset)
}
