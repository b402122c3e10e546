package keeper_test

import (
	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	keepertest "github.com/paw-chain/pawswap/testutil/keeper"
	"github.com/paw-chain/pawswap/x/exchange/types"
)

func (s *KeeperTestSuite) routePools() (sdk.AccAddress, sdk.AccAddress) {
	a := s.pool(tokenA, 1000, 2000)
	b := s.pool(tokenB, 1000, 2000)
	s.f.Fund(s.T(), s.trader, tokenA, 1000)
	s.f.Approve(s.T(), s.trader, a, tokenA, 1000)
	return a, b
}

func (s *KeeperTestSuite) TestTokenToTokenSwapInput() {
	a, b := s.routePools()

	bought, err := s.k.TokenToTokenSwapInput(s.ctx, a, s.trader, math.NewInt(100), math.NewInt(89), math.NewInt(47), keepertest.Deadline, tokenB)
	s.Require().NoError(err)
	s.Require().Equal(math.NewInt(89), bought)

	// the 47 base units sold on A are spent unmodified on B
	s.requireReserves(a, 953, 2100)
	s.requireReserves(b, 1047, 1911)
	s.requireBalance(s.trader, tokenA, 900)
	s.requireBalance(s.trader, tokenB, 89)
	s.requireBalance(s.trader, types.NativeDenom, 0)

	purchases := s.eventsOfType(types.EventTypeTokenPurchase)
	s.Require().NotEmpty(purchases)
	last := purchases[len(purchases)-1]
	s.Require().Equal(b.String(), attribute(last, types.AttributeKeyExchange))
	s.Require().Equal(a.String(), attribute(last, types.AttributeKeyBuyer))
	s.Require().Equal("47", attribute(last, types.AttributeKeyEthSold))
}

func (s *KeeperTestSuite) TestTokenToTokenTransferInput() {
	a, _ := s.routePools()
	recipient := keepertest.Addr("recipient")

	_, err := s.k.TokenToTokenTransferInput(s.ctx, a, s.trader, math.NewInt(100), math.OneInt(), math.OneInt(), keepertest.Deadline, recipient, tokenB)
	s.Require().NoError(err)
	s.requireBalance(recipient, tokenB, 89)
	s.requireBalance(s.trader, tokenB, 0)

	_, err = s.k.TokenToTokenTransferInput(s.ctx, a, s.trader, math.NewInt(100), math.OneInt(), math.OneInt(), keepertest.Deadline, a, tokenB)
	s.Require().ErrorIs(err, types.ErrInvalidRecipient)
}

func (s *KeeperTestSuite) TestTokenToTokenSwapOutput() {
	a, b := s.routePools()

	sold, err := s.k.TokenToTokenSwapOutput(s.ctx, a, s.trader, math.NewInt(89), math.NewInt(99), math.NewInt(47), keepertest.Deadline, tokenB)
	s.Require().NoError(err)
	s.Require().Equal(math.NewInt(99), sold)

	s.requireReserves(a, 953, 2099)
	s.requireReserves(b, 1047, 1911)
	s.requireBalance(s.trader, tokenA, 901)
	s.requireBalance(s.trader, tokenB, 89)
}

func (s *KeeperTestSuite) TestTokenToTokenOutputBounds() {
	a, b := s.routePools()

	_, err := s.k.TokenToTokenSwapOutput(s.ctx, a, s.trader, math.NewInt(89), math.NewInt(98), math.NewInt(47), keepertest.Deadline, tokenB)
	s.Require().ErrorIs(err, types.ErrExceededSold)

	_, err = s.k.TokenToTokenSwapOutput(s.ctx, a, s.trader, math.NewInt(89), math.NewInt(99), math.NewInt(46), keepertest.Deadline, tokenB)
	s.Require().ErrorIs(err, types.ErrExceededSold)

	s.requireReserves(a, 1000, 2000)
	s.requireReserves(b, 1000, 2000)
	s.requireBalance(s.trader, tokenA, 1000)
}

func (s *KeeperTestSuite) TestTokenToTokenTransferOutput() {
	a, _ := s.routePools()
	recipient := keepertest.Addr("recipient")

	_, err := s.k.TokenToTokenTransferOutput(s.ctx, a, s.trader, math.NewInt(89), math.NewInt(1000), math.NewInt(1000), keepertest.Deadline, recipient, tokenB)
	s.Require().NoError(err)
	s.requireBalance(recipient, tokenB, 89)
}

func (s *KeeperTestSuite) TestRouteTargetValidation() {
	a, _ := s.routePools()
	d := keepertest.Deadline

	// the registry lists no exchange for an unknown token
	_, err := s.k.TokenToTokenSwapInput(s.ctx, a, s.trader, math.NewInt(100), math.OneInt(), math.OneInt(), d, "aunknown")
	s.Require().ErrorIs(err, types.ErrInvalidExchange)

	// routing a token into its own exchange
	_, err = s.k.TokenToTokenSwapInput(s.ctx, a, s.trader, math.NewInt(100), math.OneInt(), math.OneInt(), d, tokenA)
	s.Require().ErrorIs(err, types.ErrInvalidExchange)
	_, err = s.k.TokenToExchangeSwapOutput(s.ctx, a, s.trader, math.NewInt(10), math.NewInt(100), math.NewInt(100), d, a)
	s.Require().ErrorIs(err, types.ErrInvalidExchange)
	_, err = s.k.TokenToExchangeSwapInput(s.ctx, a, s.trader, math.NewInt(100), math.OneInt(), math.OneInt(), d, sdk.AccAddress{})
	s.Require().ErrorIs(err, types.ErrInvalidExchange)

	// an address that is not an exchange
	_, err = s.k.TokenToExchangeSwapInput(s.ctx, a, s.trader, math.NewInt(100), math.OneInt(), math.OneInt(), d, keepertest.Addr("nowhere"))
	s.Require().ErrorIs(err, types.ErrExchangeNotFound)
	_, err = s.k.TokenToExchangeSwapOutput(s.ctx, a, s.trader, math.NewInt(10), math.NewInt(100), math.NewInt(100), d, keepertest.Addr("nowhere"))
	s.Require().ErrorIs(err, types.ErrExchangeNotFound)

	s.requireReserves(a, 1000, 2000)
	s.requireBalance(s.trader, tokenA, 1000)
}

func (s *KeeperTestSuite) TestTokenToExchangeOutsideRegistry() {
	a, _ := s.routePools()

	alt, err := s.f.FactoryKeeper.CreateRegistry(s.ctx, "alt")
	s.Require().NoError(err)
	c, err := s.f.FactoryKeeper.CreateExchange(s.ctx, alt, "atokc")
	s.Require().NoError(err)

	s.f.Fund(s.T(), s.provider, types.NativeDenom, 1000)
	s.f.Fund(s.T(), s.provider, "atokc", 2000)
	s.f.Approve(s.T(), s.provider, c, "atokc", 2000)
	_, err = s.k.AddLiquidity(s.ctx, c, s.provider, math.NewInt(1000), math.OneInt(), math.NewInt(2000), keepertest.Deadline)
	s.Require().NoError(err)

	// A's registry does not know atokc
	_, err = s.k.TokenToTokenSwapInput(s.ctx, a, s.trader, math.NewInt(100), math.OneInt(), math.OneInt(), keepertest.Deadline, "atokc")
	s.Require().ErrorIs(err, types.ErrInvalidExchange)

	bought, err := s.k.TokenToExchangeSwapInput(s.ctx, a, s.trader, math.NewInt(100), math.OneInt(), math.OneInt(), keepertest.Deadline, c)
	s.Require().NoError(err)
	s.Require().Equal(math.NewInt(89), bought)
	s.requireBalance(s.trader, "atokc", 89)

	recipient := keepertest.Addr("recipient")
	_, err = s.k.TokenToExchangeTransferOutput(s.ctx, a, s.trader, math.NewInt(10), math.NewInt(1000), math.NewInt(1000), keepertest.Deadline, recipient, c)
	s.Require().NoError(err)
	s.requireBalance(recipient, "atokc", 10)

	_, err = s.k.TokenToExchangeTransferInput(s.ctx, a, s.trader, math.NewInt(10), math.OneInt(), math.OneInt(), keepertest.Deadline, recipient, c)
	s.Require().NoError(err)
}
