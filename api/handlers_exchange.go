package api

import (
	"context"
	"fmt"
	"net/http"

	errorsmod "cosmossdk.io/errors"
	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/gin-gonic/gin"

	exchangetypes "github.com/paw-chain/pawswap/x/exchange/types"
	factorykeeper "github.com/paw-chain/pawswap/x/factory/keeper"
	factorytypes "github.com/paw-chain/pawswap/x/factory/types"
	ledgertypes "github.com/paw-chain/pawswap/x/ledger/types"
)

// Price kinds accepted by the price route
const (
	PriceEthToTokenInput  = "eth-to-token-input"
	PriceEthToTokenOutput = "eth-to-token-output"
	PriceTokenToEthInput  = "token-to-eth-input"
	PriceTokenToEthOutput = "token-to-eth-output"
)

type priceFunc func(ctx context.Context, exchange sdk.AccAddress, amount math.Int) (math.Int, error)

func (s *Server) priceFuncs() map[string]priceFunc {
	k := s.app.ExchangeKeeper
	return map[string]priceFunc{
		PriceEthToTokenInput:  k.GetEthToTokenInputPrice,
		PriceEthToTokenOutput: k.GetEthToTokenOutputPrice,
		PriceTokenToEthInput:  k.GetTokenToEthInputPrice,
		PriceTokenToEthOutput: k.GetTokenToEthOutputPrice,
	}
}

// handleGetRegistryExchanges lists every exchange of a registry, addressed
// either by bech32 address or by label.
func (s *Server) handleGetRegistryExchanges(c *gin.Context) {
	registry, err := sdk.AccAddressFromBech32(c.Param("registry"))
	if err != nil {
		registry = factorykeeper.RegistryAddress(c.Param("registry"))
	}

	var resp RegistryExchangesResponse
	err = s.app.Query(func(ctx sdk.Context) error {
		fk := s.app.FactoryKeeper
		if !fk.HasRegistry(ctx, registry) {
			return factorytypes.ErrRegistryNotFound.Wrapf("registry %s", c.Param("registry"))
		}

		resp = RegistryExchangesResponse{
			Registry:   registry.String(),
			Label:      fk.RegistryLabel(ctx, registry),
			TokenCount: fk.TokenCount(ctx, registry),
			Exchanges:  []RegistryExchange{},
		}

		var iterErr error
		fk.IterateExchanges(ctx, registry, func(record factorytypes.ExchangeRecord) bool {
			info, err := s.app.ExchangeKeeper.GetExchangeInfo(ctx, record.Exchange)
			if err != nil {
				iterErr = err
				return true
			}
			resp.Exchanges = append(resp.Exchanges, RegistryExchange{ID: record.ID, ExchangeInfo: info})
			return false
		})
		return iterErr
	})
	if err != nil {
		s.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// handleGetExchange returns an exchange snapshot
func (s *Server) handleGetExchange(c *gin.Context) {
	exchange, ok := s.addressParam(c, "exchange")
	if !ok {
		return
	}

	var info exchangetypes.ExchangeInfo
	err := s.app.Query(func(ctx sdk.Context) (err error) {
		info, err = s.app.ExchangeKeeper.GetExchangeInfo(ctx, exchange)
		return err
	})
	if err != nil {
		s.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, info)
}

// handleGetPrice quotes a trade of amount against current reserves
func (s *Server) handleGetPrice(c *gin.Context) {
	exchange, ok := s.addressParam(c, "exchange")
	if !ok {
		return
	}

	kind := c.Param("kind")
	quote, found := s.priceFuncs()[kind]
	if !found {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error: fmt.Sprintf("unknown price kind %q", kind),
			Code:  "INVALID_KIND",
		})
		return
	}

	amount, found := math.NewIntFromString(c.Param("amount"))
	if !found {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error: fmt.Sprintf("invalid amount %q", c.Param("amount")),
			Code:  "INVALID_AMOUNT",
		})
		return
	}

	var price math.Int
	err := s.app.Query(func(ctx sdk.Context) (err error) {
		price, err = quote(ctx, exchange, amount)
		return err
	})
	if err != nil {
		s.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, PriceResponse{
		Exchange: exchange.String(),
		Kind:     kind,
		Amount:   amount.String(),
		Price:    price.String(),
	})
}

// handleGetBalance returns a ledger balance
func (s *Server) handleGetBalance(c *gin.Context) {
	owner, ok := s.addressParam(c, "owner")
	if !ok {
		return
	}
	denom := c.Param("denom")
	if err := sdk.ValidateDenom(denom); err != nil {
		s.writeError(c, ledgertypes.ErrInvalidDenom.Wrap(err.Error()))
		return
	}

	var balance math.Int
	_ = s.app.Query(func(ctx sdk.Context) error {
		balance = s.app.LedgerKeeper.BalanceOf(ctx, denom, owner)
		return nil
	})

	c.JSON(http.StatusOK, BalanceResponse{
		Owner:   owner.String(),
		Denom:   denom,
		Balance: balance.String(),
	})
}

func (s *Server) addressParam(c *gin.Context, name string) (sdk.AccAddress, bool) {
	addr, err := sdk.AccAddressFromBech32(c.Param(name))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   fmt.Sprintf("invalid %s address", name),
			Code:    "INVALID_ADDRESS",
			Details: err.Error(),
		})
		return nil, false
	}
	return addr, true
}

// writeError maps module errors onto HTTP statuses
func (s *Server) writeError(c *gin.Context, err error) {
	switch {
	case errorsmod.IsOf(err,
		exchangetypes.ErrExchangeNotFound,
		factorytypes.ErrRegistryNotFound,
	):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error(), Code: "NOT_FOUND"})
	case errorsmod.IsOf(err,
		exchangetypes.ErrNotInitialized,
		exchangetypes.ErrInvalidAmount,
		exchangetypes.ErrInsufficientInputReserve,
		exchangetypes.ErrInsufficientOutputReserve,
		exchangetypes.ErrArithmetic,
		ledgertypes.ErrInvalidDenom,
	):
		c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Error: err.Error(), Code: "UNPROCESSABLE"})
	default:
		s.logger.Error("query failed", "path", c.Request.URL.Path, "err", err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Internal server error", Code: "INTERNAL_ERROR"})
	}
}
