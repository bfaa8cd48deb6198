package xip

import (
	"fmt"
	"math/bits"

	"github.com/omeyang/ipkit/pkg/addr/xbits"
)

// PrefixMask4 把前缀长度转换为 32 位掩码（高 length 位为 1）。
// length 越界返回 [ErrRange]。length 为 0 时掩码为 0。
func PrefixMask4(length int) (uint32, error) {
	if length < 0 || length > 32 {
		return 0, fmt.Errorf("%w: prefix length %d out of range 0-32", ErrRange, length)
	}
	if length == 0 {
		return 0, nil
	}
	return ^uint32(0) << (32 - length), nil
}

// PrefixMask6 把前缀长度转换为 128 位掩码（高 length 位为 1）。
// length 越界返回 [ErrRange]。length 为 0 时掩码为 0。
func PrefixMask6(length int) (xbits.Uint128, error) {
	if length < 0 || length > 128 {
		return xbits.Uint128{}, fmt.Errorf("%w: prefix length %d out of range 0-128", ErrRange, length)
	}
	return xbits.Max().Lsh(uint(128 - length)), nil
}

// MaskLength4 统计 32 位掩码的前导一比特数。
// 掩码不是连续前导一的形态时返回 [ErrFormat]。
func MaskLength4(mask uint32) (int, error) {
	// 连续性检验：合法掩码取反后是 2^k - 1 的形态。
	inv := ^mask
	if inv&(inv+1) != 0 {
		return 0, fmt.Errorf("%w: bad mask format", ErrFormat)
	}
	return bits.OnesCount32(mask), nil
}

// MaskLength6 统计 128 位掩码的前导一比特数。
// 掩码不是连续前导一的形态时返回 [ErrFormat]。
func MaskLength6(mask xbits.Uint128) (int, error) {
	inv := mask.Not()
	if !inv.And(inv.AddUint64(1)).IsZero() {
		return 0, fmt.Errorf("%w: bad mask format", ErrFormat)
	}
	return mask.OnesCount(), nil
}
