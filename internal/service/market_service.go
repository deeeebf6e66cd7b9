package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"stablecoin-scout/internal/domain"
	"stablecoin-scout/internal/provider"

	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/otel/trace"
)

const (
	chartCacheTTL = 90 * time.Second
	priceCacheTTL = 90 * time.Second
	distCacheTTL  = 5 * time.Minute
)

// ChartProvider is the market-data provider surface the service consumes.
type ChartProvider interface {
	FetchSeries(ctx context.Context, symbol string) provider.Result[[]domain.ChartPoint]
	FetchPrice(ctx context.Context, symbol string) provider.Result[domain.PriceSnapshot]
}

// DistributionProvider fetches per-chain circulation breakdowns.
type DistributionProvider interface {
	FetchDistribution(ctx context.Context, symbol string) provider.Result[domain.ChainBreakdown]
}

type RedisClient interface {
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Get(ctx context.Context, key string) *redis.StringCmd
}

// MarketService fronts the market-data providers with a Redis cache. Provider
// no-data results surface as plain errors here; the caller decides what
// fallback to apply.
type MarketService struct {
	tracer trace.Tracer
	charts ChartProvider
	dist   DistributionProvider
	redis  RedisClient
}

func NewMarketService(
	tracer trace.Tracer,
	charts ChartProvider,
	dist DistributionProvider,
	redisClient RedisClient,
) *MarketService {
	return &MarketService{
		tracer: tracer,
		charts: charts,
		dist:   dist,
		redis:  redisClient,
	}
}

// ChartSeries returns the 30-day daily price series for a symbol, cached for
// chartCacheTTL.
func (s *MarketService) ChartSeries(ctx context.Context, symbol string) ([]domain.ChartPoint, error) {
	ctx, span := s.tracer.Start(ctx, "market-service.chart-series")
	defer span.End()

	key := "chart:" + symbol
	var cached []domain.ChartPoint
	if s.readCache(ctx, key, &cached) && len(cached) > 0 {
		return cached, nil
	}

	res := s.charts.FetchSeries(ctx, symbol)
	if !res.OK {
		return nil, fmt.Errorf("chart series for %s: %s", symbol, res.ErrKind)
	}
	s.writeCache(ctx, key, res.Data, chartCacheTTL)
	return res.Data, nil
}

// PriceSnapshot returns the current price for a symbol, cached for
// priceCacheTTL.
func (s *MarketService) PriceSnapshot(ctx context.Context, symbol string) (*domain.PriceSnapshot, error) {
	ctx, span := s.tracer.Start(ctx, "market-service.price-snapshot")
	defer span.End()

	key := "price:" + symbol
	var cached domain.PriceSnapshot
	if s.readCache(ctx, key, &cached) && cached.Symbol != "" {
		return &cached, nil
	}

	res := s.charts.FetchPrice(ctx, symbol)
	if !res.OK {
		return nil, fmt.Errorf("price for %s: %s", symbol, res.ErrKind)
	}
	s.writeCache(ctx, key, res.Data, priceCacheTTL)
	snap := res.Data
	return &snap, nil
}

// Distribution returns the per-chain circulation breakdown for a symbol,
// cached for distCacheTTL. The registry refreshes slowly, so the TTL is
// longer than for prices.
func (s *MarketService) Distribution(ctx context.Context, symbol string) (*domain.ChainBreakdown, error) {
	ctx, span := s.tracer.Start(ctx, "market-service.distribution")
	defer span.End()

	key := "dist:" + symbol
	var cached domain.ChainBreakdown
	if s.readCache(ctx, key, &cached) && cached.Symbol != "" {
		return &cached, nil
	}

	res := s.dist.FetchDistribution(ctx, symbol)
	if !res.OK {
		return nil, fmt.Errorf("distribution for %s: %s", symbol, res.ErrKind)
	}
	s.writeCache(ctx, key, res.Data, distCacheTTL)
	breakdown := res.Data
	return &breakdown, nil
}

// readCache reports whether key was present and decoded into dst. Cache
// errors are logged and treated as misses.
func (s *MarketService) readCache(ctx context.Context, key string, dst interface{}) bool {
	if s.redis == nil {
		return false
	}
	data, err := s.redis.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return false
	}
	if err != nil {
		log.Printf("redis cache read error for %s: %v", key, err)
		return false
	}
	if err := json.Unmarshal(data, dst); err != nil {
		log.Printf("redis cache decode error for %s: %v", key, err)
		return false
	}
	return true
}

func (s *MarketService) writeCache(ctx context.Context, key string, value interface{}, ttl time.Duration) {
	if s.redis == nil {
		return
	}
	data, err := json.Marshal(value)
	if err != nil {
		return
	}
	if err := s.redis.Set(ctx, key, data, ttl).Err(); err != nil {
		log.Printf("redis cache write error for %s: %v", key, err)
	}
}
