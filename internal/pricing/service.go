package pricing

import (
	"context"
	"errors"
	"strings"
	"time"

	lru "github.com/hashicorp/golang-lru"
	"github.com/rs/zerolog"
)

const defaultCacheSize = 64

// Service resolves prices through a primary feed with an optional fallback,
// caching quotes in a bounded LRU for a fixed TTL.
type Service struct {
	primary  Feed
	fallback Feed
	cache    *lru.Cache
	ttl      time.Duration
	now      func() time.Time
	log      zerolog.Logger
}

// ServiceOptions configures a pricing Service.
type ServiceOptions struct {
	Primary   Feed
	Fallback  Feed
	TTL       time.Duration
	CacheSize int
	Now       func() time.Time
	Logger    zerolog.Logger
}

// NewService wires the cached price service.
func NewService(opts ServiceOptions) (*Service, error) {
	if opts.Primary == nil {
		return nil, errors.New("pricing: primary feed is required")
	}
	size := opts.CacheSize
	if size <= 0 {
		size = defaultCacheSize
	}
	cache, err := lru.New(size)
	if err != nil {
		return nil, err
	}
	ttl := opts.TTL
	if ttl <= 0 {
		ttl = time.Minute
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &Service{
		primary:  opts.Primary,
		fallback: opts.Fallback,
		cache:    cache,
		ttl:      ttl,
		now:      now,
		log:      opts.Logger,
	}, nil
}

// Price returns the cached quote when fresh, otherwise fetches from the
// primary feed and falls back to the secondary on failure.
func (s *Service) Price(ctx context.Context, symbol string) (Quote, error) {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	now := s.now()

	if v, ok := s.cache.Get(symbol); ok {
		quote := v.(Quote)
		if now.Sub(quote.FetchedAt) < s.ttl {
			return quote, nil
		}
	}

	quote, err := s.primary.Price(ctx, symbol)
	if err != nil {
		if s.fallback == nil {
			return Quote{}, err
		}
		s.log.Warn().Err(err).Str("symbol", symbol).Msg("pricing: primary feed failed, using fallback")
		quote, err = s.fallback.Price(ctx, symbol)
		if err != nil {
			return Quote{}, err
		}
	}

	s.cache.Add(symbol, quote)
	return quote, nil
}

// Refresh warms the cache for the given symbols. Failures are logged per
// symbol and do not abort the rest of the batch.
func (s *Service) Refresh(ctx context.Context, symbols []string) {
	for _, symbol := range symbols {
		if _, err := s.Price(ctx, symbol); err != nil {
			s.log.Warn().Err(err).Str("symbol", symbol).Msg("pricing: refresh failed")
		}
	}
}

var _ Feed = (*Service)(nil)
