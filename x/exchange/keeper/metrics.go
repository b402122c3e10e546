package keeper

import (
	"context"
	"sync"
	"time"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/paw-chain/pawswap/x/exchange/types"
)

// ExchangeMetrics holds all Prometheus metrics for the exchange module
type ExchangeMetrics struct {
	// Swap metrics
	SwapsTotal  *prometheus.CounterVec
	SwapVolume  *prometheus.CounterVec
	SwapLatency *prometheus.HistogramVec

	// Routing metrics
	RoutesTotal *prometheus.CounterVec

	// Liquidity metrics
	LiquidityAdded   *prometheus.CounterVec
	LiquidityRemoved *prometheus.CounterVec
	Reserves         *prometheus.GaugeVec
	ShareSupply      *prometheus.GaugeVec
}

var (
	exchangeMetricsOnce sync.Once
	exchangeMetrics     *ExchangeMetrics
)

// NewExchangeMetrics creates and registers exchange metrics (singleton pattern)
func NewExchangeMetrics() *ExchangeMetrics {
	exchangeMetricsOnce.Do(func() {
		exchangeMetrics = &ExchangeMetrics{
			SwapsTotal: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Namespace: "pawswap",
					Subsystem: "exchange",
					Name:      "swaps_total",
					Help:      "Total number of swaps attempted",
				},
				[]string{"direction", "mode", "status"},
			),
			SwapVolume: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Namespace: "pawswap",
					Subsystem: "exchange",
					Name:      "swap_volume_total",
					Help:      "Total amount sold into exchanges in base units",
				},
				[]string{"token", "direction"},
			),
			SwapLatency: promauto.NewHistogramVec(
				prometheus.HistogramOpts{
					Namespace: "pawswap",
					Subsystem: "exchange",
					Name:      "swap_latency_seconds",
					Help:      "Swap execution latency",
					Buckets:   prometheus.ExponentialBuckets(0.0001, 2, 12),
				},
				[]string{"direction", "mode"},
			),
			RoutesTotal: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Namespace: "pawswap",
					Subsystem: "exchange",
					Name:      "routes_total",
					Help:      "Total number of token to token routes attempted",
				},
				[]string{"mode", "status"},
			),
			LiquidityAdded: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Namespace: "pawswap",
					Subsystem: "exchange",
					Name:      "liquidity_added_total",
					Help:      "Total number of liquidity deposits",
				},
				[]string{"token"},
			),
			LiquidityRemoved: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Namespace: "pawswap",
					Subsystem: "exchange",
					Name:      "liquidity_removed_total",
					Help:      "Total number of liquidity withdrawals",
				},
				[]string{"token"},
			),
			Reserves: promauto.NewGaugeVec(
				prometheus.GaugeOpts{
					Namespace: "pawswap",
					Subsystem: "exchange",
					Name:      "reserves",
					Help:      "Exchange reserves after the last operation",
				},
				[]string{"token", "asset"},
			),
			ShareSupply: promauto.NewGaugeVec(
				prometheus.GaugeOpts{
					Namespace: "pawswap",
					Subsystem: "exchange",
					Name:      "share_supply",
					Help:      "Outstanding liquidity shares",
				},
				[]string{"token"},
			),
		}
	})
	return exchangeMetrics
}

func (k Keeper) observeSwap(direction, mode string, start time.Time, err error) {
	status := "success"
	if err != nil {
		status = "failure"
	}
	k.metrics.SwapsTotal.WithLabelValues(direction, mode, status).Inc()
	k.metrics.SwapLatency.WithLabelValues(direction, mode).Observe(time.Since(start).Seconds())
}

func (k Keeper) observeRoute(mode string, err error) {
	status := "success"
	if err != nil {
		status = "failure"
	}
	k.metrics.RoutesTotal.WithLabelValues(mode, status).Inc()
}

func (k Keeper) recordSwap(ctx context.Context, exchange sdk.AccAddress, token string, sold math.Int, direction string) {
	k.metrics.SwapVolume.WithLabelValues(token, direction).Add(floatOf(sold))
	k.recordReserves(ctx, exchange, token)
}

func (k Keeper) recordReserves(ctx context.Context, exchange sdk.AccAddress, token string) {
	ethReserve, tokenReserve := k.Reserves(ctx, exchange, token)
	k.metrics.Reserves.WithLabelValues(token, types.NativeDenom).Set(floatOf(ethReserve))
	k.metrics.Reserves.WithLabelValues(token, token).Set(floatOf(tokenReserve))
	k.metrics.ShareSupply.WithLabelValues(token).Set(floatOf(k.TotalShares(ctx, exchange)))
}

func floatOf(amount math.Int) float64 {
	f, _ := amount.BigInt().Float64()
	return f
}
