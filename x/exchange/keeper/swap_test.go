package keeper_test

import (
	"cosmossdk.io/math"

	keepertest "github.com/paw-chain/pawswap/testutil/keeper"
	"github.com/paw-chain/pawswap/x/exchange/types"
	ledgertypes "github.com/paw-chain/pawswap/x/ledger/types"
)

func (s *KeeperTestSuite) TestEthToTokenSwapInput() {
	exchange := s.pool(tokenA, 1000, 2000)
	s.f.Fund(s.T(), s.trader, types.NativeDenom, 100)

	bought, err := s.k.EthToTokenSwapInput(s.ctx, exchange, s.trader, math.NewInt(100), math.NewInt(181), keepertest.Deadline)
	s.Require().NoError(err)
	s.Require().Equal(math.NewInt(181), bought)
	s.requireBalance(s.trader, tokenA, 181)
	s.requireBalance(s.trader, types.NativeDenom, 0)
	s.requireReserves(exchange, 1100, 1819)

	events := s.eventsOfType(types.EventTypeTokenPurchase)
	s.Require().Len(events, 1)
	s.Require().Equal(s.trader.String(), attribute(events[0], types.AttributeKeyBuyer))
	s.Require().Equal("100", attribute(events[0], types.AttributeKeyEthSold))
	s.Require().Equal("181", attribute(events[0], types.AttributeKeyTokensBought))
}

func (s *KeeperTestSuite) TestEthToTokenTransferInput() {
	exchange := s.pool(tokenA, 1000, 2000)
	recipient := keepertest.Addr("recipient")
	s.f.Fund(s.T(), s.trader, types.NativeDenom, 100)

	bought, err := s.k.EthToTokenTransferInput(s.ctx, exchange, s.trader, math.NewInt(100), math.OneInt(), keepertest.Deadline, recipient)
	s.Require().NoError(err)
	s.Require().Equal(math.NewInt(181), bought)
	s.requireBalance(recipient, tokenA, 181)
	s.requireBalance(s.trader, tokenA, 0)
	s.requireBalance(s.trader, types.NativeDenom, 0)
}

func (s *KeeperTestSuite) TestEthToTokenSwapOutputRefundsExcess() {
	exchange := s.pool(tokenA, 1000, 2000)
	s.f.Fund(s.T(), s.trader, types.NativeDenom, 150)

	sold, err := s.k.EthToTokenSwapOutput(s.ctx, exchange, s.trader, math.NewInt(150), math.NewInt(181), keepertest.Deadline)
	s.Require().NoError(err)
	s.Require().Equal(math.NewInt(100), sold)
	s.requireBalance(s.trader, types.NativeDenom, 50)
	s.requireBalance(s.trader, tokenA, 181)
	s.requireReserves(exchange, 1100, 1819)
}

func (s *KeeperTestSuite) TestEthToTokenTransferOutput() {
	exchange := s.pool(tokenA, 1000, 2000)
	recipient := keepertest.Addr("recipient")
	s.f.Fund(s.T(), s.trader, types.NativeDenom, 100)

	sold, err := s.k.EthToTokenTransferOutput(s.ctx, exchange, s.trader, math.NewInt(100), math.NewInt(181), keepertest.Deadline, recipient)
	s.Require().NoError(err)
	s.Require().Equal(math.NewInt(100), sold)
	s.requireBalance(recipient, tokenA, 181)
	s.requireBalance(s.trader, types.NativeDenom, 0)
}

func (s *KeeperTestSuite) TestTokenToEthSwapInput() {
	exchange := s.pool(tokenA, 1000, 2000)
	s.f.Fund(s.T(), s.trader, tokenA, 100)
	s.f.Approve(s.T(), s.trader, exchange, tokenA, 100)

	bought, err := s.k.TokenToEthSwapInput(s.ctx, exchange, s.trader, math.NewInt(100), math.NewInt(47), keepertest.Deadline)
	s.Require().NoError(err)
	s.Require().Equal(math.NewInt(47), bought)
	s.requireBalance(s.trader, types.NativeDenom, 47)
	s.requireBalance(s.trader, tokenA, 0)
	s.requireReserves(exchange, 953, 2100)

	events := s.eventsOfType(types.EventTypeEthPurchase)
	s.Require().Len(events, 1)
	s.Require().Equal("100", attribute(events[0], types.AttributeKeyTokensSold))
	s.Require().Equal("47", attribute(events[0], types.AttributeKeyEthBought))
}

func (s *KeeperTestSuite) TestTokenToEthTransferInput() {
	exchange := s.pool(tokenA, 1000, 2000)
	recipient := keepertest.Addr("recipient")
	s.f.Fund(s.T(), s.trader, tokenA, 100)
	s.f.Approve(s.T(), s.trader, exchange, tokenA, 100)

	_, err := s.k.TokenToEthTransferInput(s.ctx, exchange, s.trader, math.NewInt(100), math.OneInt(), keepertest.Deadline, recipient)
	s.Require().NoError(err)
	s.requireBalance(recipient, types.NativeDenom, 47)
	s.requireBalance(s.trader, types.NativeDenom, 0)
}

func (s *KeeperTestSuite) TestTokenToEthSwapOutput() {
	exchange := s.pool(tokenA, 1000, 2000)
	s.f.Fund(s.T(), s.trader, tokenA, 100)
	s.f.Approve(s.T(), s.trader, exchange, tokenA, 100)

	sold, err := s.k.TokenToEthSwapOutput(s.ctx, exchange, s.trader, math.NewInt(40), math.NewInt(100), keepertest.Deadline)
	s.Require().NoError(err)
	s.Require().Equal(math.NewInt(84), sold)
	s.requireBalance(s.trader, types.NativeDenom, 40)
	s.requireBalance(s.trader, tokenA, 16)
	s.requireReserves(exchange, 960, 2084)
	s.Require().Equal(math.NewInt(16), s.f.LedgerKeeper.Allowance(s.ctx, tokenA, s.trader, exchange))
}

func (s *KeeperTestSuite) TestTokenToEthTransferOutput() {
	exchange := s.pool(tokenA, 1000, 2000)
	recipient := keepertest.Addr("recipient")
	s.f.Fund(s.T(), s.trader, tokenA, 100)
	s.f.Approve(s.T(), s.trader, exchange, tokenA, 100)

	sold, err := s.k.TokenToEthTransferOutput(s.ctx, exchange, s.trader, math.NewInt(40), math.NewInt(84), keepertest.Deadline, recipient)
	s.Require().NoError(err)
	s.Require().Equal(math.NewInt(84), sold)
	s.requireBalance(recipient, types.NativeDenom, 40)
	s.requireBalance(s.trader, tokenA, 16)
}

func (s *KeeperTestSuite) TestReceiveSwapsWithMinimumOfOne() {
	exchange := s.pool(tokenA, 1000, 2000)
	s.f.Fund(s.T(), s.trader, types.NativeDenom, 101)

	bought, err := s.k.Receive(s.ctx, exchange, s.trader, math.NewInt(100))
	s.Require().NoError(err)
	s.Require().Equal(math.NewInt(181), bought)

	// dust that buys nothing fails the one token minimum
	_, err = s.k.Receive(s.ctx, exchange, s.trader, math.OneInt())
	s.Require().ErrorIs(err, types.ErrInsufficientBought)
	s.requireBalance(s.trader, types.NativeDenom, 1)

	_, err = s.k.Receive(s.ctx, exchange, s.trader, math.ZeroInt())
	s.Require().ErrorIs(err, types.ErrInvalidAmount)
}

func (s *KeeperTestSuite) TestSwapBounds() {
	exchange := s.pool(tokenA, 1000, 2000)
	s.f.Fund(s.T(), s.trader, types.NativeDenom, 1000)
	s.f.Fund(s.T(), s.trader, tokenA, 1000)
	s.f.Approve(s.T(), s.trader, exchange, tokenA, 1000)
	d := keepertest.Deadline

	tests := []struct {
		name string
		swap func() error
		err  error
	}{
		{"eth in: zero value", func() error {
			_, err := s.k.EthToTokenSwapInput(s.ctx, exchange, s.trader, math.ZeroInt(), math.OneInt(), d)
			return err
		}, types.ErrInvalidAmount},
		{"eth in: zero min", func() error {
			_, err := s.k.EthToTokenSwapInput(s.ctx, exchange, s.trader, math.NewInt(100), math.ZeroInt(), d)
			return err
		}, types.ErrInvalidAmount},
		{"eth in: below min", func() error {
			_, err := s.k.EthToTokenSwapInput(s.ctx, exchange, s.trader, math.NewInt(100), math.NewInt(182), d)
			return err
		}, types.ErrInsufficientBought},
		{"eth in: unfunded", func() error {
			_, err := s.k.EthToTokenSwapInput(s.ctx, exchange, s.trader, math.NewInt(1001), math.OneInt(), d)
			return err
		}, ledgertypes.ErrInsufficientFunds},
		{"eth out: zero tokens", func() error {
			_, err := s.k.EthToTokenSwapOutput(s.ctx, exchange, s.trader, math.NewInt(100), math.ZeroInt(), d)
			return err
		}, types.ErrInvalidAmount},
		{"eth out: max too low", func() error {
			_, err := s.k.EthToTokenSwapOutput(s.ctx, exchange, s.trader, math.NewInt(99), math.NewInt(181), d)
			return err
		}, types.ErrExceededSold},
		{"eth out: whole reserve", func() error {
			_, err := s.k.EthToTokenSwapOutput(s.ctx, exchange, s.trader, math.NewInt(1000), math.NewInt(2000), d)
			return err
		}, types.ErrArithmetic},
		{"token in: zero tokens", func() error {
			_, err := s.k.TokenToEthSwapInput(s.ctx, exchange, s.trader, math.ZeroInt(), math.OneInt(), d)
			return err
		}, types.ErrInvalidAmount},
		{"token in: below min", func() error {
			_, err := s.k.TokenToEthSwapInput(s.ctx, exchange, s.trader, math.NewInt(100), math.NewInt(48), d)
			return err
		}, types.ErrInsufficientBought},
		{"token in: over allowance", func() error {
			_, err := s.k.TokenToEthSwapInput(s.ctx, exchange, s.trader, math.NewInt(1001), math.OneInt(), d)
			return err
		}, ledgertypes.ErrInsufficientAllowance},
		{"token out: zero max", func() error {
			_, err := s.k.TokenToEthSwapOutput(s.ctx, exchange, s.trader, math.NewInt(40), math.ZeroInt(), d)
			return err
		}, types.ErrInvalidAmount},
		{"token out: max too low", func() error {
			_, err := s.k.TokenToEthSwapOutput(s.ctx, exchange, s.trader, math.NewInt(40), math.NewInt(83), d)
			return err
		}, types.ErrExceededSold},
		{"token out: whole reserve", func() error {
			_, err := s.k.TokenToEthSwapOutput(s.ctx, exchange, s.trader, math.NewInt(1000), math.NewInt(1000), d)
			return err
		}, types.ErrArithmetic},
		{"unknown exchange", func() error {
			_, err := s.k.EthToTokenSwapInput(s.ctx, keepertest.Addr("nowhere"), s.trader, math.NewInt(100), math.OneInt(), d)
			return err
		}, types.ErrExchangeNotFound},
	}

	for _, tc := range tests {
		s.Run(tc.name, func() {
			eventsBefore := len(s.ctx.EventManager().Events())
			s.Require().ErrorIs(tc.swap(), tc.err)

			s.requireReserves(exchange, 1000, 2000)
			s.requireBalance(s.trader, types.NativeDenom, 1000)
			s.requireBalance(s.trader, tokenA, 1000)
			s.Require().Len(s.ctx.EventManager().Events(), eventsBefore)
		})
	}
}

func (s *KeeperTestSuite) TestSwapInvalidRecipient() {
	exchange := s.pool(tokenA, 1000, 2000)
	s.f.Fund(s.T(), s.trader, types.NativeDenom, 1000)
	s.f.Fund(s.T(), s.trader, tokenA, 1000)
	s.f.Approve(s.T(), s.trader, exchange, tokenA, 1000)

	for _, recipient := range [][]byte{exchange, nil} {
		_, err := s.k.EthToTokenTransferInput(s.ctx, exchange, s.trader, math.NewInt(100), math.OneInt(), keepertest.Deadline, recipient)
		s.Require().ErrorIs(err, types.ErrInvalidRecipient)
		_, err = s.k.EthToTokenTransferOutput(s.ctx, exchange, s.trader, math.NewInt(100), math.NewInt(10), keepertest.Deadline, recipient)
		s.Require().ErrorIs(err, types.ErrInvalidRecipient)
		_, err = s.k.TokenToEthTransferInput(s.ctx, exchange, s.trader, math.NewInt(100), math.OneInt(), keepertest.Deadline, recipient)
		s.Require().ErrorIs(err, types.ErrInvalidRecipient)
		_, err = s.k.TokenToEthTransferOutput(s.ctx, exchange, s.trader, math.NewInt(10), math.NewInt(100), keepertest.Deadline, recipient)
		s.Require().ErrorIs(err, types.ErrInvalidRecipient)
	}
	s.requireReserves(exchange, 1000, 2000)
}

func (s *KeeperTestSuite) TestSwapsGrowConstantProduct() {
	exchange := s.pool(tokenA, 1_000_000, 3_000_000)
	s.f.Fund(s.T(), s.trader, types.NativeDenom, 1_000_000)
	s.f.Fund(s.T(), s.trader, tokenA, 1_000_000)
	s.f.Approve(s.T(), s.trader, exchange, tokenA, 1_000_000)

	k := func() math.Int {
		eth, tok := s.k.Reserves(s.ctx, exchange, tokenA)
		return eth.Mul(tok)
	}

	steps := []func() error{
		func() error {
			_, err := s.k.EthToTokenSwapInput(s.ctx, exchange, s.trader, math.NewInt(12_345), math.OneInt(), keepertest.Deadline)
			return err
		},
		func() error {
			_, err := s.k.TokenToEthSwapInput(s.ctx, exchange, s.trader, math.NewInt(54_321), math.OneInt(), keepertest.Deadline)
			return err
		},
		func() error {
			_, err := s.k.EthToTokenSwapOutput(s.ctx, exchange, s.trader, math.NewInt(100_000), math.NewInt(7_777), keepertest.Deadline)
			return err
		},
		func() error {
			_, err := s.k.TokenToEthSwapOutput(s.ctx, exchange, s.trader, math.NewInt(999), math.NewInt(100_000), keepertest.Deadline)
			return err
		},
	}

	prev := k()
	for i, step := range steps {
		s.Require().NoError(step(), "step %d", i)
		next := k()
		s.Require().True(next.GT(prev), "step %d: k went from %s to %s", i, prev, next)
		prev = next
	}
}
