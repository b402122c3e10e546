package keeper_test

import (
	"context"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	keepertest "github.com/paw-chain/pawswap/testutil/keeper"
	"github.com/paw-chain/pawswap/x/exchange/keeper"
	"github.com/paw-chain/pawswap/x/exchange/types"
	ledgertypes "github.com/paw-chain/pawswap/x/ledger/types"
)

// reenterOn installs a transfer hook that calls reenter against every listed
// exchange a transfer touches, and records what each call returned.
func (s *KeeperTestSuite) reenterOn(exchanges []sdk.AccAddress, reenter func(ctx context.Context, exchange sdk.AccAddress) error) *[]error {
	var errs []error
	var inside bool
	s.f.LedgerKeeper.SetHooks(ledgertypes.TransferHookFunc(
		func(ctx context.Context, _ string, from, to sdk.AccAddress, _ math.Int) error {
			if inside {
				return nil
			}
			for _, exchange := range exchanges {
				if from.Equals(exchange) || to.Equals(exchange) {
					inside = true
					errs = append(errs, reenter(ctx, exchange))
					inside = false
				}
			}
			return nil
		},
	))
	return &errs
}

func (s *KeeperTestSuite) requireReentryRejected(errs []error) {
	s.T().Helper()
	s.Require().NotEmpty(errs)
	for _, err := range errs {
		s.Require().ErrorIs(err, types.ErrReentrancy)
	}
}

func (s *KeeperTestSuite) constantProduct(exchange sdk.AccAddress) math.Int {
	eth, tokens := s.k.Reserves(s.ctx, exchange, s.k.TokenAddress(s.ctx, exchange))
	return eth.Mul(tokens)
}

func (s *KeeperTestSuite) requireInvariants() {
	s.T().Helper()
	msg, broken := keeper.AllInvariants(*s.k)(s.ctx)
	s.Require().False(broken, msg)
}

// reentrantTrader funds the trader for both directions on exchange.
func (s *KeeperTestSuite) reentrantTrader(exchange sdk.AccAddress) {
	s.f.Fund(s.T(), s.trader, types.NativeDenom, 5000)
	s.f.Fund(s.T(), s.trader, tokenA, 5000)
	s.f.Approve(s.T(), s.trader, exchange, tokenA, 5000)
}

func (s *KeeperTestSuite) sellTokens(amount int64) func(ctx context.Context, exchange sdk.AccAddress) error {
	return func(ctx context.Context, exchange sdk.AccAddress) error {
		_, err := s.k.TokenToEthSwapInput(ctx, exchange, s.trader, math.NewInt(amount), math.OneInt(), keepertest.Deadline)
		return err
	}
}

func (s *KeeperTestSuite) sellEth(amount int64) func(ctx context.Context, exchange sdk.AccAddress) error {
	return func(ctx context.Context, exchange sdk.AccAddress) error {
		_, err := s.k.EthToTokenSwapInput(ctx, exchange, s.trader, math.NewInt(amount), math.OneInt(), keepertest.Deadline)
		return err
	}
}

func (s *KeeperTestSuite) TestTokenToEthInputRejectsReentry() {
	exchange := s.pool(tokenA, 1000, 2000)
	s.reentrantTrader(exchange)
	k := s.constantProduct(exchange)

	quote, err := s.k.GetTokenToEthInputPrice(s.ctx, exchange, math.NewInt(1000))
	s.Require().NoError(err)
	errs := s.reenterOn([]sdk.AccAddress{exchange}, s.sellTokens(1000))

	bought, err := s.k.TokenToEthSwapInput(s.ctx, exchange, s.trader, math.NewInt(1000), math.OneInt(), keepertest.Deadline)
	s.Require().NoError(err)
	s.Require().Equal(quote, bought)
	s.Require().Equal(math.NewInt(332), bought)
	s.requireReentryRejected(*errs)

	s.requireReserves(exchange, 668, 3000)
	s.Require().True(s.constantProduct(exchange).GTE(k))
	s.requireInvariants()

	// a second sale after the first settles is priced on the new reserves
	next, err := s.k.GetTokenToEthInputPrice(s.ctx, exchange, math.NewInt(1000))
	s.Require().NoError(err)
	s.Require().Equal(math.NewInt(166), next)
}

func (s *KeeperTestSuite) TestTokenToEthOutputRejectsReentry() {
	exchange := s.pool(tokenA, 1000, 2000)
	s.reentrantTrader(exchange)
	k := s.constantProduct(exchange)

	quote, err := s.k.GetTokenToEthOutputPrice(s.ctx, exchange, math.NewInt(300))
	s.Require().NoError(err)
	errs := s.reenterOn([]sdk.AccAddress{exchange}, s.sellTokens(1000))

	sold, err := s.k.TokenToEthSwapOutput(s.ctx, exchange, s.trader, math.NewInt(300), math.NewInt(5000), keepertest.Deadline)
	s.Require().NoError(err)
	s.Require().Equal(quote, sold)
	s.requireReentryRejected(*errs)

	s.requireReserves(exchange, 700, 2000+sold.Int64())
	s.Require().True(s.constantProduct(exchange).GTE(k))
	s.requireInvariants()
}

func (s *KeeperTestSuite) TestEthToTokenInputRejectsReentry() {
	exchange := s.pool(tokenA, 1000, 2000)
	s.reentrantTrader(exchange)
	k := s.constantProduct(exchange)

	quote, err := s.k.GetEthToTokenInputPrice(s.ctx, exchange, math.NewInt(500))
	s.Require().NoError(err)
	errs := s.reenterOn([]sdk.AccAddress{exchange}, s.sellTokens(1000))

	bought, err := s.k.EthToTokenSwapInput(s.ctx, exchange, s.trader, math.NewInt(500), math.OneInt(), keepertest.Deadline)
	s.Require().NoError(err)
	s.Require().Equal(quote, bought)
	s.requireReentryRejected(*errs)

	s.requireReserves(exchange, 1500, 2000-bought.Int64())
	s.Require().True(s.constantProduct(exchange).GTE(k))
	s.requireInvariants()
}

func (s *KeeperTestSuite) TestEthToTokenOutputRejectsReentry() {
	exchange := s.pool(tokenA, 1000, 2000)
	s.reentrantTrader(exchange)
	k := s.constantProduct(exchange)

	quote, err := s.k.GetEthToTokenOutputPrice(s.ctx, exchange, math.NewInt(500))
	s.Require().NoError(err)
	errs := s.reenterOn([]sdk.AccAddress{exchange}, s.sellEth(500))

	// the refund of the unspent 3000 max is one of the hook points
	sold, err := s.k.EthToTokenSwapOutput(s.ctx, exchange, s.trader, math.NewInt(3000), math.NewInt(500), keepertest.Deadline)
	s.Require().NoError(err)
	s.Require().Equal(quote, sold)
	s.requireReentryRejected(*errs)

	s.requireReserves(exchange, 1000+sold.Int64(), 1500)
	s.requireBalance(s.trader, types.NativeDenom, 5000-sold.Int64())
	s.Require().True(s.constantProduct(exchange).GTE(k))
	s.requireInvariants()
}

func (s *KeeperTestSuite) TestTokenToTokenInputRejectsReentry() {
	a, b := s.routePools()
	s.f.Fund(s.T(), s.trader, types.NativeDenom, 1000)
	kA, kB := s.constantProduct(a), s.constantProduct(b)

	ethBought, err := s.k.GetTokenToEthInputPrice(s.ctx, a, math.NewInt(100))
	s.Require().NoError(err)
	quote, err := s.k.GetEthToTokenInputPrice(s.ctx, b, ethBought)
	s.Require().NoError(err)
	errs := s.reenterOn([]sdk.AccAddress{a, b}, s.sellEth(10))

	bought, err := s.k.TokenToTokenSwapInput(s.ctx, a, s.trader, math.NewInt(100), math.OneInt(), math.OneInt(), keepertest.Deadline, tokenB)
	s.Require().NoError(err)
	s.Require().Equal(quote, bought)
	s.requireReentryRejected(*errs)

	s.requireReserves(a, 1000-ethBought.Int64(), 2100)
	s.requireReserves(b, 1000+ethBought.Int64(), 2000-bought.Int64())
	s.Require().True(s.constantProduct(a).GTE(kA))
	s.Require().True(s.constantProduct(b).GTE(kB))
	s.requireInvariants()
}

func (s *KeeperTestSuite) TestTokenToTokenOutputRejectsReentry() {
	a, b := s.routePools()
	s.f.Fund(s.T(), s.trader, types.NativeDenom, 1000)
	kA, kB := s.constantProduct(a), s.constantProduct(b)

	ethNeeded, err := s.k.GetEthToTokenOutputPrice(s.ctx, b, math.NewInt(89))
	s.Require().NoError(err)
	quote, err := s.k.GetTokenToEthOutputPrice(s.ctx, a, ethNeeded)
	s.Require().NoError(err)
	errs := s.reenterOn([]sdk.AccAddress{a, b}, s.sellEth(10))

	sold, err := s.k.TokenToTokenSwapOutput(s.ctx, a, s.trader, math.NewInt(89), math.NewInt(1000), math.NewInt(1000), keepertest.Deadline, tokenB)
	s.Require().NoError(err)
	s.Require().Equal(quote, sold)
	s.requireReentryRejected(*errs)

	s.requireReserves(a, 1000-ethNeeded.Int64(), 2000+sold.Int64())
	s.requireReserves(b, 1000+ethNeeded.Int64(), 1911)
	s.requireBalance(s.trader, tokenB, 89)
	s.Require().True(s.constantProduct(a).GTE(kA))
	s.Require().True(s.constantProduct(b).GTE(kB))
	s.requireInvariants()
}

func (s *KeeperTestSuite) TestLiquidityRejectsReentry() {
	exchange := s.pool(tokenA, 1000, 2000)
	s.f.Fund(s.T(), s.provider, types.NativeDenom, 500)
	s.f.Fund(s.T(), s.provider, tokenA, 1000)
	s.f.Approve(s.T(), s.provider, exchange, tokenA, 1000)

	errs := s.reenterOn([]sdk.AccAddress{exchange}, func(ctx context.Context, exchange sdk.AccAddress) error {
		_, _, err := s.k.RemoveLiquidity(ctx, exchange, s.provider, math.NewInt(100), math.OneInt(), math.OneInt(), keepertest.Deadline)
		return err
	})

	minted, err := s.k.AddLiquidity(s.ctx, exchange, s.provider, math.NewInt(500), math.OneInt(), math.NewInt(1000), keepertest.Deadline)
	s.Require().NoError(err)
	s.Require().Equal(math.NewInt(500), minted)
	s.requireReentryRejected(*errs)
	s.requireReserves(exchange, 1500, 3000)

	*errs = nil
	_, _, err = s.k.RemoveLiquidity(s.ctx, exchange, s.provider, math.NewInt(300), math.OneInt(), math.OneInt(), keepertest.Deadline)
	s.Require().NoError(err)
	s.requireReentryRejected(*errs)
	s.requireReserves(exchange, 1200, 2400)
	s.requireInvariants()
}

func (s *KeeperTestSuite) TestPriceViewsRejectUnsettledReserves() {
	exchange := s.pool(tokenA, 1000, 2000)
	s.reentrantTrader(exchange)

	errs := s.reenterOn([]sdk.AccAddress{exchange}, func(ctx context.Context, exchange sdk.AccAddress) error {
		_, err := s.k.GetTokenToEthInputPrice(ctx, exchange, math.NewInt(1000))
		return err
	})

	_, err := s.k.TokenToEthSwapInput(s.ctx, exchange, s.trader, math.NewInt(1000), math.OneInt(), keepertest.Deadline)
	s.Require().NoError(err)
	s.requireReentryRejected(*errs)

	// the lock is released once the trade settles
	_, err = s.k.GetTokenToEthInputPrice(s.ctx, exchange, math.NewInt(1000))
	s.Require().NoError(err)
	_, err = s.k.TokenToEthSwapInput(s.ctx, exchange, s.trader, math.NewInt(1000), math.OneInt(), keepertest.Deadline)
	s.Require().NoError(err)
}
