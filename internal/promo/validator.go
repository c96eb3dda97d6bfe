package promo

import (
	"context"
	"fmt"
	"sync"

	"homewares/internal/model"

	"github.com/rs/zerolog"
)

// validator implements Validator over a fixed collection of code sets loaded
// at start-up. Sets are read-only after initialisation, so lookups need no
// locking.
type validator struct {
	codeSets []*Set
	minMatch int
	logger   zerolog.Logger
}

// ValidatorConfig holds configuration for the promo validator.
type ValidatorConfig struct {
	// Paths is the list of code list paths (or S3 keys) to load.
	Paths []string

	// MinMatchCount is the minimum number of lists a code must appear in.
	// Default: 2
	MinMatchCount int
}

// DefaultValidatorConfig returns the default validator configuration.
func DefaultValidatorConfig() *ValidatorConfig {
	return &ValidatorConfig{
		Paths: []string{
			"data/promo/codes1.gz",
			"data/promo/codes2.gz",
			"data/promo/codes3.gz",
		},
		MinMatchCount: 2,
	}
}

// NewValidator creates a new promo validator. All code lists are loaded
// concurrently at initialisation time.
func NewValidator(ctx context.Context, config *ValidatorConfig, loader Loader, logger zerolog.Logger) (Validator, error) {
	if config == nil {
		config = DefaultValidatorConfig()
	}
	minMatch := config.MinMatchCount
	if minMatch <= 0 {
		minMatch = 2
	}

	logger = logger.With().Str("component", "promo-validator").Logger()

	logger.Info().
		Int("list_count", len(config.Paths)).
		Int("min_match_count", minMatch).
		Msg("initialising promo validator")

	sets := make([]*Set, len(config.Paths))
	errs := make([]error, len(config.Paths))

	var wg sync.WaitGroup
	for i, path := range config.Paths {
		wg.Add(1)
		go func(index int, p string) {
			defer wg.Done()
			sets[index], errs[index] = loader.Load(ctx, p)
		}(i, path)
	}
	wg.Wait()

	for i, err := range errs {
		if err != nil {
			logger.Error().Err(err).Str("list", config.Paths[i]).Msg("failed to load code list")
			return nil, fmt.Errorf("failed to load code list %s: %w", config.Paths[i], err)
		}
	}

	total := 0
	for _, set := range sets {
		total += set.Size()
	}
	logger.Info().Int("total_codes", total).Msg("promo validator initialised")

	return &validator{
		codeSets: sets,
		minMatch: minMatch,
		logger:   logger,
	}, nil
}

// Validate checks if a promo code is valid: 8 to 10 characters and present
// in at least minMatch code lists.
func (v *validator) Validate(ctx context.Context, code string) error {
	if len(code) < 8 || len(code) > 10 {
		v.logger.Debug().
			Str("promo_code", code).
			Int("length", len(code)).
			Msg("promo code length invalid")
		return model.ErrInvalidPromoLength
	}

	matches := 0
	for _, set := range v.codeSets {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if set.Contains(code) {
			matches++
			if matches >= v.minMatch {
				v.logger.Debug().
					Str("promo_code", code).
					Int("match_count", matches).
					Msg("promo code validated")
				return nil
			}
		}
	}

	v.logger.Debug().
		Str("promo_code", code).
		Int("match_count", matches).
		Msg("promo code not found in sufficient lists")
	return model.ErrInvalidPromoCode
}

// Close releases resources held by the validator.
func (v *validator) Close() error {
	v.codeSets = nil
	v.logger.Info().Msg("promo validator closed")
	return nil
}

// disabledValidator rejects every code. Used when promo codes are turned off.
type disabledValidator struct{}

// NewDisabledValidator creates a validator that rejects every code.
func NewDisabledValidator() Validator {
	return disabledValidator{}
}

// Validate always rejects.
func (disabledValidator) Validate(ctx context.Context, code string) error {
	return model.ErrInvalidPromoCode
}

// Close is a no-op.
func (disabledValidator) Close() error {
	return nil
}
