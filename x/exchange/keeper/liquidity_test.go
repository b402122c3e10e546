package keeper_test

import (
	"context"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	keepertest "github.com/paw-chain/pawswap/testutil/keeper"
	"github.com/paw-chain/pawswap/x/exchange/types"
	ledgertypes "github.com/paw-chain/pawswap/x/ledger/types"
)

func (s *KeeperTestSuite) TestAddLiquidityInitialDeposit() {
	exchange := s.pool(tokenA, 1000, 2000)

	s.requireReserves(exchange, 1000, 2000)
	s.Require().Equal(math.NewInt(1000), s.k.TotalShares(s.ctx, exchange))
	s.Require().Equal(math.NewInt(1000), s.k.ShareBalanceOf(s.ctx, exchange, s.provider))
	s.requireBalance(s.provider, types.NativeDenom, 0)
	s.requireBalance(s.provider, tokenA, 0)

	events := s.eventsOfType(types.EventTypeAddLiquidity)
	s.Require().Len(events, 1)
	s.Require().Equal(s.provider.String(), attribute(events[0], types.AttributeKeyProvider))
	s.Require().Equal("1000", attribute(events[0], types.AttributeKeyEthAmount))
	s.Require().Equal("2000", attribute(events[0], types.AttributeKeyTokenAmount))
}

func (s *KeeperTestSuite) TestAddLiquidityMinimumInitialDeposit() {
	exchange := s.f.CreateExchange(s.T(), tokenA)
	s.f.Fund(s.T(), s.provider, types.NativeDenom, 2_000_000_000)
	s.f.Fund(s.T(), s.provider, tokenA, 1000)
	s.f.Approve(s.T(), s.provider, exchange, tokenA, 1000)

	_, err := s.k.AddLiquidity(s.ctx, exchange, s.provider, math.NewInt(999_999_999), math.OneInt(), math.NewInt(1000), keepertest.Deadline)
	s.Require().ErrorIs(err, types.ErrInsufficientDeposit)
	s.requireBalance(s.provider, types.NativeDenom, 2_000_000_000)

	minted, err := s.k.AddLiquidity(s.ctx, exchange, s.provider, types.DefaultMinInitialDeposit, math.ZeroInt(), math.NewInt(1000), keepertest.Deadline)
	s.Require().NoError(err)
	s.Require().Equal(types.DefaultMinInitialDeposit, minted)
}

func (s *KeeperTestSuite) TestAddLiquidityProportional() {
	exchange := s.pool(tokenA, 1000, 2000)
	s.f.Fund(s.T(), s.trader, types.NativeDenom, 100)
	_, err := s.k.EthToTokenSwapInput(s.ctx, exchange, s.trader, math.NewInt(100), math.OneInt(), keepertest.Deadline)
	s.Require().NoError(err)
	s.requireReserves(exchange, 1100, 1819)

	lp := keepertest.Addr("lp")
	s.f.Fund(s.T(), lp, types.NativeDenom, 100)
	s.f.Fund(s.T(), lp, tokenA, 500)
	s.f.Approve(s.T(), lp, exchange, tokenA, 500)

	minted, err := s.k.AddLiquidity(s.ctx, exchange, lp, math.NewInt(100), math.NewInt(90), math.NewInt(500), keepertest.Deadline)
	s.Require().NoError(err)
	// floor(100*1000/1100) shares, floor(100*1819/1100) tokens
	s.Require().Equal(math.NewInt(90), minted)
	s.requireBalance(lp, tokenA, 500-165)
	s.requireReserves(exchange, 1200, 1819+165)
	s.Require().Equal(math.NewInt(1090), s.k.TotalShares(s.ctx, exchange))
	s.Require().Equal(math.NewInt(335), s.f.LedgerKeeper.Allowance(s.ctx, tokenA, lp, exchange))
}

func (s *KeeperTestSuite) TestAddLiquidityBounds() {
	exchange := s.pool(tokenA, 1000, 2000)
	lp := keepertest.Addr("lp")
	s.f.Fund(s.T(), lp, types.NativeDenom, 1000)
	s.f.Fund(s.T(), lp, tokenA, 1000)
	s.f.Approve(s.T(), lp, exchange, tokenA, 1000)

	tests := []struct {
		name      string
		ethIn     int64
		minShares int64
		maxTokens int64
		err       error
	}{
		{"zero base amount", 0, 1, 1000, types.ErrInvalidAmount},
		{"zero max tokens", 100, 1, 0, types.ErrInvalidAmount},
		{"zero min shares", 100, 0, 1000, types.ErrInvalidAmount},
		{"max tokens below requirement", 100, 1, 199, types.ErrExceededSold},
		{"min shares above minted", 100, 101, 1000, types.ErrInsufficientMinted},
		{"base amount above balance", 1001, 1, 1000, ledgertypes.ErrInsufficientFunds},
	}

	for _, tc := range tests {
		s.Run(tc.name, func() {
			_, err := s.k.AddLiquidity(s.ctx, exchange, lp,
				math.NewInt(tc.ethIn), math.NewInt(tc.minShares), math.NewInt(tc.maxTokens), keepertest.Deadline)
			s.Require().ErrorIs(err, tc.err)
			s.requireReserves(exchange, 1000, 2000)
			s.requireBalance(lp, types.NativeDenom, 1000)
			s.Require().True(s.k.ShareBalanceOf(s.ctx, exchange, lp).IsZero())
		})
	}

	minted, err := s.k.AddLiquidity(s.ctx, exchange, lp, math.NewInt(100), math.NewInt(100), math.NewInt(200), keepertest.Deadline)
	s.Require().NoError(err)
	s.Require().Equal(math.NewInt(100), minted)
	s.requireReserves(exchange, 1100, 2200)
}

func (s *KeeperTestSuite) TestAddLiquidityWithoutApprovalRollsBack() {
	exchange := s.f.CreateExchange(s.T(), tokenA)
	s.Require().NoError(s.k.SetParams(s.ctx, types.Params{MinInitialDeposit: math.OneInt()}))
	s.f.Fund(s.T(), s.provider, types.NativeDenom, 1000)
	s.f.Fund(s.T(), s.provider, tokenA, 2000)

	eventsBefore := len(s.ctx.EventManager().Events())
	_, err := s.k.AddLiquidity(s.ctx, exchange, s.provider, math.NewInt(1000), math.OneInt(), math.NewInt(2000), keepertest.Deadline)
	s.Require().ErrorIs(err, ledgertypes.ErrInsufficientAllowance)

	// the base asset credit and the minted shares are both undone
	s.requireBalance(s.provider, types.NativeDenom, 1000)
	s.requireReserves(exchange, 0, 0)
	s.Require().True(s.k.TotalShares(s.ctx, exchange).IsZero())
	s.Require().Len(s.ctx.EventManager().Events(), eventsBefore)
}

func (s *KeeperTestSuite) TestAddLiquidityMiswiredRegistryPanics() {
	s.Require().NoError(s.k.SetParams(s.ctx, types.Params{MinInitialDeposit: math.OneInt()}))

	// set up outside the registry, so the registry has no record for the token
	exchange, err := s.k.Instantiate(s.ctx, []byte("rogue"))
	s.Require().NoError(err)
	s.Require().NoError(s.k.Setup(s.ctx, exchange, s.f.Registry, tokenA))

	s.f.Fund(s.T(), s.provider, types.NativeDenom, 1000)
	s.f.Fund(s.T(), s.provider, tokenA, 2000)
	s.f.Approve(s.T(), s.provider, exchange, tokenA, 2000)

	s.Require().Panics(func() {
		_, _ = s.k.AddLiquidity(s.ctx, exchange, s.provider, math.NewInt(1000), math.OneInt(), math.NewInt(2000), keepertest.Deadline)
	})
	s.requireBalance(s.provider, types.NativeDenom, 1000)
}

func (s *KeeperTestSuite) TestRemoveLiquidity() {
	exchange := s.pool(tokenA, 1000, 2000)

	ethOut, tokenOut, err := s.k.RemoveLiquidity(s.ctx, exchange, s.provider, math.NewInt(250), math.OneInt(), math.OneInt(), keepertest.Deadline)
	s.Require().NoError(err)
	s.Require().Equal(math.NewInt(250), ethOut)
	s.Require().Equal(math.NewInt(500), tokenOut)
	s.requireReserves(exchange, 750, 1500)
	s.requireBalance(s.provider, types.NativeDenom, 250)
	s.requireBalance(s.provider, tokenA, 500)
	s.Require().Equal(math.NewInt(750), s.k.TotalShares(s.ctx, exchange))

	events := s.eventsOfType(types.EventTypeRemoveLiquidity)
	s.Require().Len(events, 1)
	s.Require().Equal("250", attribute(events[0], types.AttributeKeyEthAmount))
	s.Require().Equal("500", attribute(events[0], types.AttributeKeyTokenAmount))
}

func (s *KeeperTestSuite) TestRemoveLiquidityBounds() {
	exchange := s.pool(tokenA, 1000, 2000)

	tests := []struct {
		name      string
		shares    int64
		minEth    int64
		minTokens int64
		err       error
	}{
		{"zero shares", 0, 1, 1, types.ErrInvalidAmount},
		{"zero min base amount", 100, 0, 1, types.ErrInvalidAmount},
		{"zero min tokens", 100, 1, 0, types.ErrInvalidAmount},
		{"base amount below min", 100, 101, 1, types.ErrInsufficientBought},
		{"tokens below min", 100, 1, 201, types.ErrInsufficientBought},
		{"more shares than held", 1001, 1, 1, types.ErrInsufficientShares},
	}

	for _, tc := range tests {
		s.Run(tc.name, func() {
			_, _, err := s.k.RemoveLiquidity(s.ctx, exchange, s.provider,
				math.NewInt(tc.shares), math.NewInt(tc.minEth), math.NewInt(tc.minTokens), keepertest.Deadline)
			s.Require().ErrorIs(err, tc.err)
			s.requireReserves(exchange, 1000, 2000)
			s.Require().Equal(math.NewInt(1000), s.k.ShareBalanceOf(s.ctx, exchange, s.provider))
		})
	}

	// shares held by someone else cannot be burned
	_, _, err := s.k.RemoveLiquidity(s.ctx, exchange, s.trader, math.NewInt(10), math.OneInt(), math.OneInt(), keepertest.Deadline)
	s.Require().ErrorIs(err, types.ErrInsufficientShares)
}

func (s *KeeperTestSuite) TestRemoveLiquidityEmptyPool() {
	exchange := s.f.CreateExchange(s.T(), tokenA)

	_, _, err := s.k.RemoveLiquidity(s.ctx, exchange, s.provider, math.OneInt(), math.OneInt(), math.OneInt(), keepertest.Deadline)
	s.Require().ErrorIs(err, types.ErrInsufficientLiquidity)
}

// Burning every share empties the pool. Base asset or tokens that reach an
// exchange with no shares outstanding have no claimant and stay in the
// reserves, where the next bootstrap deposit absorbs them.
func (s *KeeperTestSuite) TestRemoveAllLiquidityLeavesResidueInReserves() {
	exchange := s.pool(tokenA, 1000, 2000)
	s.f.Fund(s.T(), s.trader, types.NativeDenom, 100)
	_, err := s.k.EthToTokenSwapInput(s.ctx, exchange, s.trader, math.NewInt(100), math.OneInt(), keepertest.Deadline)
	s.Require().NoError(err)

	ethOut, tokenOut, err := s.k.RemoveLiquidity(s.ctx, exchange, s.provider, math.NewInt(1000), math.OneInt(), math.OneInt(), keepertest.Deadline)
	s.Require().NoError(err)
	s.Require().Equal(math.NewInt(1100), ethOut)
	s.Require().Equal(math.NewInt(1819), tokenOut)
	s.Require().True(s.k.TotalShares(s.ctx, exchange).IsZero())
	s.requireReserves(exchange, 0, 0)

	// a stray transfer into the empty exchange
	s.f.Fund(s.T(), s.trader, tokenA, 7)
	s.Require().NoError(s.f.LedgerKeeper.Transfer(s.ctx, tokenA, s.trader, exchange, math.NewInt(7)))

	_, _, err = s.k.RemoveLiquidity(s.ctx, exchange, s.provider, math.OneInt(), math.OneInt(), math.OneInt(), keepertest.Deadline)
	s.Require().ErrorIs(err, types.ErrInsufficientLiquidity)

	// the pool bootstraps again; shares track the new deposit only
	s.f.Approve(s.T(), s.provider, exchange, tokenA, 1000)
	minted, err := s.k.AddLiquidity(s.ctx, exchange, s.provider, math.NewInt(500), math.OneInt(), math.NewInt(1000), keepertest.Deadline)
	s.Require().NoError(err)
	s.Require().Equal(math.NewInt(500), minted)
	s.requireReserves(exchange, 500, 1007)
}

func (s *KeeperTestSuite) TestRemoveLiquidityBurnsBeforePaying() {
	exchange := s.pool(tokenA, 1000, 2000)

	attacker := keepertest.Addr("attacker")
	s.Require().NoError(s.k.TransferShares(s.ctx, exchange, s.provider, attacker, math.NewInt(100)))

	var reentered bool
	var reentryErr error
	s.f.LedgerKeeper.SetHooks(ledgertypes.TransferHookFunc(
		func(ctx context.Context, denom string, from, to sdk.AccAddress, amount math.Int) error {
			if reentered || denom != types.NativeDenom || !from.Equals(exchange) || !to.Equals(attacker) {
				return nil
			}
			reentered = true
			reentryErr = s.k.TransferShares(ctx, exchange, attacker, s.provider, math.NewInt(100))
			return nil
		},
	))

	ethOut, tokenOut, err := s.k.RemoveLiquidity(s.ctx, exchange, attacker, math.NewInt(100), math.OneInt(), math.OneInt(), keepertest.Deadline)
	s.Require().NoError(err)
	s.Require().True(reentered)
	s.Require().ErrorIs(reentryErr, types.ErrInsufficientShares)

	s.Require().Equal(math.NewInt(100), ethOut)
	s.Require().Equal(math.NewInt(200), tokenOut)
	s.requireBalance(attacker, types.NativeDenom, 100)
	s.requireBalance(attacker, tokenA, 200)
	s.requireReserves(exchange, 900, 1800)
}
