package xip

import (
	"errors"
	"fmt"
	"math/big"
	"strconv"

	"github.com/omeyang/ipkit/pkg/addr/xbits"
)

// IPv6 是一个 IPv6 地址+掩码值对象。
//
// 与 [IPv4] 遵循同样的不变量和事务性修改契约，但适配到 128 位
// 和 IPv6 分区表。所有文本输出使用 RFC 5952 规范压缩形式。
//
// 零值不满足不变量，请通过 [NewIPv6] 或 [ParseIPv6] 创建。
type IPv6 struct {
	addr xbits.Uint128
	mask xbits.Uint128
}

// NewIPv6 返回默认值对象：地址 ::，掩码 /128。
func NewIPv6() *IPv6 {
	return &IPv6{mask: xbits.Max()}
}

// ParseIPv6 从地址文本（任一 RFC 4291 惯用形式，可携带 "/N"）构造值对象。
// 文本无 "/N" 时掩码为 /128。失败返回 nil 和错误。
func ParseIPv6(s string) (*IPv6, error) {
	v := NewIPv6()
	if err := v.SetAddress(s); err != nil {
		return nil, err
	}
	return v, nil
}

// SetAddress 解析地址文本并提交。携带 "/N" 时一并更新掩码，
// 否则保留当前掩码。候选块跨分区时返回 [ErrPartition] 且状态不变。
func (v *IPv6) SetAddress(s string) error {
	addr, length, err := ParseV6(s)
	if err != nil {
		return err
	}
	mask := v.mask
	if length >= 0 {
		if mask, err = PrefixMask6(length); err != nil {
			return err
		}
	}
	if err := ValidateMask6(addr, mask); err != nil {
		return err
	}
	v.addr, v.mask = addr, mask
	return nil
}

// SetOffset 把主机部分设置为十进制偏移量：addr = (addr & mask) | offset。
// 非数字文本返回 [ErrFormat]，偏移超过主机位容量返回 [ErrRange]。
// 网络部分不变，无需重新校验分区。
func (v *IPv6) SetOffset(s string) error {
	off, err := xbits.ParseDecimal(s)
	if err != nil {
		if errors.Is(err, xbits.ErrOverflow) {
			return fmt.Errorf("%w: offset %s exceeds host capacity", ErrRange, s)
		}
		return fmt.Errorf("%w: invalid integer %q", ErrFormat, s)
	}
	if off.Cmp(v.mask.Not()) > 0 {
		return fmt.Errorf("%w: offset %s exceeds host capacity of /%d", ErrRange, s, v.length())
	}
	v.addr = v.addr.And(v.mask).Or(off)
	return nil
}

// SetPrefix 解析 "network/N" 并提交地址+掩码。
// 给定地址必须等于自身在给定掩码下的网络，否则返回 [ErrFormat]。
func (v *IPv6) SetPrefix(s string) error {
	addr, length, err := ParseV6(s)
	if err != nil {
		return err
	}
	if length < 0 {
		return fmt.Errorf("%w: prefix %q lacks a length", ErrFormat, s)
	}
	mask, err := PrefixMask6(length)
	if err != nil {
		return err
	}
	if addr.And(mask).Cmp(addr) != 0 {
		return fmt.Errorf("%w: bad prefix range %q", ErrFormat, s)
	}
	if err := ValidateMask6(addr, mask); err != nil {
		return err
	}
	v.addr, v.mask = addr, mask
	return nil
}

// SetNetLength 把掩码设置为十进制前缀长度（0–128）。
func (v *IPv6) SetNetLength(s string) error {
	if !isDigits(s) || s == "" {
		return fmt.Errorf("%w: invalid integer %q", ErrFormat, s)
	}
	n, err := strconv.Atoi(s)
	if err != nil || n > 128 {
		return fmt.Errorf("%w: prefix length %s out of range 0-128", ErrRange, s)
	}
	mask, err := PrefixMask6(n)
	if err != nil {
		return err
	}
	if err := ValidateMask6(v.addr, mask); err != nil {
		return err
	}
	v.mask = mask
	return nil
}

// SetNetwork 在当前掩码下迁移网络部分，主机偏移保持不变。
// 参数必须等于自身在当前掩码下的网络，否则返回 [ErrFormat]。
func (v *IPv6) SetNetwork(s string) error {
	net, length, err := ParseV6(s)
	if err != nil {
		return err
	}
	if length >= 0 {
		return fmt.Errorf("%w: unexpected prefix length in %q", ErrFormat, s)
	}
	if net.And(v.mask).Cmp(net) != 0 {
		return fmt.Errorf("%w: bad network range %q", ErrFormat, s)
	}
	addr := net.Or(v.addr.And(v.mask.Not()))
	if err := ValidateMask6(addr, v.mask); err != nil {
		return err
	}
	v.addr = addr
	return nil
}

func (v *IPv6) length() int { return v.mask.OnesCount() }

func (v *IPv6) network() xbits.Uint128 { return v.addr.And(v.mask) }
func (v *IPv6) upper() xbits.Uint128   { return v.addr.Or(v.mask.Not()) }

// Address 返回 RFC 5952 规范压缩形式的地址（不含前缀长度）。
func (v *IPv6) Address() string { return compressUint128(v.addr, -1) }

// Expanded 返回全长展开形式的地址（不含前缀长度）。
func (v *IPv6) Expanded() string { return expandUint128(v.addr, -1) }

// Offset 返回主机部分的十进制偏移量。
func (v *IPv6) Offset() string {
	return v.addr.And(v.mask.Not()).String()
}

// NetLength 返回掩码的十进制前缀长度。
func (v *IPv6) NetLength() string { return strconv.Itoa(v.length()) }

// Network 返回规范压缩形式的网络地址（主机位清零）。
func (v *IPv6) Network() string { return compressUint128(v.network(), -1) }

// Prefix 返回 "network/length" 形式。
func (v *IPv6) Prefix() string { return compressUint128(v.network(), v.length()) }

// First 返回块的首地址。IPv6 没有广播保留概念，即网络地址本身。
func (v *IPv6) First() string { return compressUint128(v.network(), -1) }

// Last 返回块的末地址（广播等价地址）。
func (v *IPv6) Last() string { return compressUint128(v.upper(), -1) }

// HostQty 返回块内地址数量 2^(128-length) 的十进制表示。
// /0 时结果为 2^128，超出 128 位一比特，因此在 math/big 中计算。
func (v *IPv6) HostQty() string {
	return new(big.Int).Lsh(big.NewInt(1), uint(128-v.length())).String()
}

// String 返回 Prefix 形式，便于日志输出。
func (v *IPv6) String() string { return v.Prefix() }
