package types

import (
	"math/big"

	"cosmossdk.io/math"
)

// Fee is embedded as FeeNumerator/FeeDenominator of every input (0.3%).
const (
	FeeNumerator   = 997
	FeeDenominator = 1000
)

var (
	feeNumerator   = big.NewInt(FeeNumerator)
	feeDenominator = big.NewInt(FeeDenominator)
)

// MulDiv returns floor(a*b/d). The product is computed at full width so it
// never overflows before the division; only a quotient wider than 256 bits
// is an error.
func MulDiv(a, b, d math.Int) (math.Int, error) {
	if a.IsNil() || b.IsNil() || d.IsNil() {
		return math.Int{}, ErrArithmetic.Wrap("nil operand")
	}
	if a.IsNegative() || b.IsNegative() || !d.IsPositive() {
		return math.Int{}, ErrArithmetic.Wrapf("muldiv(%s, %s, %s): operands must be non-negative with a positive divisor", a, b, d)
	}

	product := new(big.Int).Mul(a.BigInt(), b.BigInt())
	return toInt(product.Quo(product, d.BigInt()))
}

// GetInputPrice returns how much of the output asset inputAmount buys
// against the given reserves, after the fee:
//
//	floor(in*997*outRes / (inRes*1000 + in*997))
func GetInputPrice(inputAmount, inputReserve, outputReserve math.Int) (math.Int, error) {
	if err := checkReserves(inputReserve, outputReserve); err != nil {
		return math.Int{}, err
	}
	if inputAmount.IsNil() || inputAmount.IsNegative() {
		return math.Int{}, ErrArithmetic.Wrapf("input amount %s must be non-negative", inputAmount)
	}

	inputWithFee := new(big.Int).Mul(inputAmount.BigInt(), feeNumerator)
	numerator := new(big.Int).Mul(inputWithFee, outputReserve.BigInt())
	denominator := new(big.Int).Mul(inputReserve.BigInt(), feeDenominator)
	denominator.Add(denominator, inputWithFee)

	return toInt(numerator.Quo(numerator, denominator))
}

// GetOutputPrice returns the input required to buy exactly outputAmount
// against the given reserves, after the fee:
//
//	floor(inRes*out*1000 / ((outRes-out)*997)) + 1
//
// The trailing unit guarantees the returned input buys at least outputAmount
// when fed back through GetInputPrice.
func GetOutputPrice(outputAmount, inputReserve, outputReserve math.Int) (math.Int, error) {
	if err := checkReserves(inputReserve, outputReserve); err != nil {
		return math.Int{}, err
	}
	if outputAmount.IsNil() || outputAmount.IsNegative() {
		return math.Int{}, ErrArithmetic.Wrapf("output amount %s must be non-negative", outputAmount)
	}
	if outputAmount.GTE(outputReserve) {
		return math.Int{}, ErrArithmetic.Wrapf("output amount %s must be below output reserve %s", outputAmount, outputReserve)
	}

	numerator := new(big.Int).Mul(inputReserve.BigInt(), outputAmount.BigInt())
	numerator.Mul(numerator, feeDenominator)
	denominator := new(big.Int).Sub(outputReserve.BigInt(), outputAmount.BigInt())
	denominator.Mul(denominator, feeNumerator)

	quotient := numerator.Quo(numerator, denominator)
	return toInt(quotient.Add(quotient, big.NewInt(1)))
}

func checkReserves(inputReserve, outputReserve math.Int) error {
	if inputReserve.IsNil() || !inputReserve.IsPositive() {
		return ErrInsufficientInputReserve.Wrapf("input reserve is %s", inputReserve)
	}
	if outputReserve.IsNil() || !outputReserve.IsPositive() {
		return ErrInsufficientOutputReserve.Wrapf("output reserve is %s", outputReserve)
	}
	return nil
}

func toInt(x *big.Int) (math.Int, error) {
	if x.BitLen() > math.MaxBitLen {
		return math.Int{}, ErrArithmetic.Wrapf("result exceeds %d bits", math.MaxBitLen)
	}
	return math.NewIntFromBigIntMut(x), nil
}
