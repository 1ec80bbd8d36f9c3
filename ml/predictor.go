package ml

import (
	"fmt"
	"sync/atomic"

	lru "github.com/hashicorp/golang-lru/v2"
)

// Predictor runs a FeatureVector through the bundle's scaler and classifier.
// Results are a pure function of the vector, so they may be memoized.
type Predictor struct {
	bundle *Bundle
	cache  *lru.Cache[FeatureVector, Label]
	hits   atomic.Uint64
	misses atomic.Uint64
}

// NewPredictor builds a predictor over bundle. cacheSize <= 0 disables the
// result cache.
func NewPredictor(bundle *Bundle, cacheSize int) (*Predictor, error) {
	if bundle == nil || bundle.Scaler == nil || bundle.Classifier == nil {
		return nil, fmt.Errorf("predictor: incomplete bundle")
	}
	p := &Predictor{bundle: bundle}
	if cacheSize > 0 {
		cache, err := lru.New[FeatureVector, Label](cacheSize)
		if err != nil {
			return nil, fmt.Errorf("predictor cache: %w", err)
		}
		p.cache = cache
	}
	return p, nil
}

func (p *Predictor) Predict(v FeatureVector) (Label, error) {
	if p.cache != nil {
		if label, ok := p.cache.Get(v); ok {
			p.hits.Add(1)
			return label, nil
		}
		p.misses.Add(1)
	}

	scaled, err := p.bundle.Scaler.Transform(v.Slice())
	if err != nil {
		return NotPotable, fmt.Errorf("scale features: %w", err)
	}
	label, err := p.bundle.Classifier.Predict(scaled)
	if err != nil {
		return NotPotable, fmt.Errorf("classify features: %w", err)
	}
	if label != Potable && label != NotPotable {
		return NotPotable, fmt.Errorf("%w: %d", ErrInvalidLabel, int(label))
	}

	if p.cache != nil {
		p.cache.Add(v, label)
	}
	return label, nil
}

func (p *Predictor) PredictMeasurement(m RawMeasurement) (Label, error) {
	return p.Predict(BuildFeatureVector(m))
}

func (p *Predictor) Bundle() *Bundle {
	return p.bundle
}

// CacheStats reports cache hits and misses since construction.
func (p *Predictor) CacheStats() (hits, misses uint64) {
	return p.hits.Load(), p.misses.Load()
}
