package programmer

import (
	"fmt"
	"math/bits"

	"go-calculator/internal/calcerr"
)

// DefaultWidth is the rotate window used when none is given.
const DefaultWidth = 32

func And(a, b int32) int32 { return a & b }

func Or(a, b int32) int32 { return a | b }

func Xor(a, b int32) int32 { return a ^ b }

func Not(v int32) int32 { return ^v }

// LeftShift shifts v left, discarding bits past bit 31.
func LeftShift(v int32, positions uint) int32 {
	return v << (positions & 31)
}

// RightShift is an arithmetic shift: the sign bit is replicated.
func RightShift(v int32, positions uint) int32 {
	return v >> (positions & 31)
}

func widthMask(width uint) (uint32, error) {
	if width == 0 || width > 32 {
		return 0, fmt.Errorf("%w: %d", calcerr.ErrInvalidBitWidth, width)
	}
	return uint32(uint64(1)<<width - 1), nil
}

// RotateLeft rotates the low width bits of v. Bits above the window are
// dropped before and after rotating.
func RotateLeft(v uint32, positions, width uint) (uint32, error) {
	mask, err := widthMask(width)
	if err != nil {
		return 0, err
	}
	v &= mask
	positions %= width
	if positions == 0 {
		return v, nil
	}
	return (v<<positions | v>>(width-positions)) & mask, nil
}

// RotateRight rotates the low width bits of v.
func RotateRight(v uint32, positions, width uint) (uint32, error) {
	mask, err := widthMask(width)
	if err != nil {
		return 0, err
	}
	v &= mask
	positions %= width
	if positions == 0 {
		return v, nil
	}
	return (v>>positions | v<<(width-positions)) & mask, nil
}

// TwosComplement negates v with 32-bit wraparound, so MinInt32 maps to itself.
func TwosComplement(v int32) int32 {
	return ^v + 1
}

// GetBit returns the bit at position (0 is least significant).
func GetBit(v int32, position uint) int32 {
	return (v >> (position & 31)) & 1
}

// SetBit sets or clears the bit at position.
func SetBit(v int32, position uint, on bool) int32 {
	if on {
		return v | 1<<(position&31)
	}
	return v &^ (1 << (position & 31))
}

// CountSetBits returns the population count of v's 32-bit pattern.
func CountSetBits(v int32) int {
	return bits.OnesCount32(uint32(v))
}
