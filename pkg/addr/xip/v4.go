package xip

import (
	"errors"
	"fmt"
	"math/bits"
	"strconv"
	"strings"
)

// IPv4 是一个 IPv4 地址+掩码值对象。
//
// 不变量：掩码是连续前导一形态；(addr, mask) 覆盖的整个地址块
// 落在同一个地址空间分区内。所有修改操作都是事务性的：
// 解析 → 计算候选值 → 校验 → 提交，任一环节失败时已存状态保持不变。
//
// 零值不满足不变量，请通过 [NewIPv4] 或 [ParseIPv4] 创建。
// 值对象不含内部锁，跨 goroutine 共享需外部同步。
type IPv4 struct {
	addr uint32
	mask uint32
}

// NewIPv4 返回默认值对象：地址 0.0.0.0，掩码 /32。
func NewIPv4() *IPv4 {
	return &IPv4{mask: ^uint32(0)}
}

// ParseIPv4 从地址文本（可携带 "/N"）构造值对象。
// 文本无 "/N" 时掩码为 /32。失败返回 nil 和错误。
func ParseIPv4(s string) (*IPv4, error) {
	v := NewIPv4()
	if err := v.SetAddress(s); err != nil {
		return nil, err
	}
	return v, nil
}

// ParseIPv4Pair 从地址文本和点分掩码文本构造值对象（双参数形式）。
// 地址文本不允许携带 "/N"。失败返回 nil 和错误。
func ParseIPv4Pair(addr, mask string) (*IPv4, error) {
	if strings.IndexByte(addr, '/') >= 0 {
		return nil, fmt.Errorf("%w: unexpected prefix length in %q", ErrFormat, addr)
	}
	v := NewIPv4()
	if err := v.SetAddress(addr); err != nil {
		return nil, err
	}
	if err := v.SetNetMask(mask); err != nil {
		return nil, err
	}
	return v, nil
}

// SetAddress 解析地址文本并提交。携带 "/N" 时一并更新掩码，
// 否则保留当前掩码。候选块跨分区时返回 [ErrPartition] 且状态不变。
func (v *IPv4) SetAddress(s string) error {
	addr, length, err := ParseV4(s)
	if err != nil {
		return err
	}
	mask := v.mask
	if length >= 0 {
		if mask, err = PrefixMask4(length); err != nil {
			return err
		}
	}
	if err := ValidateMask4(addr, mask); err != nil {
		return err
	}
	v.addr, v.mask = addr, mask
	return nil
}

// SetNetMask 解析点分掩码文本并提交。掩码必须是连续前导一形态。
func (v *IPv4) SetNetMask(s string) error {
	mask, err := v.parseMaskText(s)
	if err != nil {
		return err
	}
	if err := ValidateMask4(v.addr, mask); err != nil {
		return err
	}
	v.mask = mask
	return nil
}

// SetHostMask 解析点分主机掩码文本（网络掩码的按位取反）并提交。
func (v *IPv4) SetHostMask(s string) error {
	hostMask, length, err := ParseV4(s)
	if err != nil {
		return err
	}
	if length >= 0 {
		return fmt.Errorf("%w: bad mask format %q", ErrFormat, s)
	}
	mask := ^hostMask
	if _, err := MaskLength4(mask); err != nil {
		return err
	}
	if err := ValidateMask4(v.addr, mask); err != nil {
		return err
	}
	v.mask = mask
	return nil
}

// SetOffset 把主机部分设置为十进制偏移量：addr = (addr & mask) | offset。
// 非数字文本返回 [ErrFormat]，偏移超过主机位容量返回 [ErrRange]。
// 网络部分不变，无需重新校验分区。
func (v *IPv4) SetOffset(s string) error {
	n, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		if errors.Is(err, strconv.ErrRange) {
			return fmt.Errorf("%w: offset %s exceeds host capacity", ErrRange, s)
		}
		return fmt.Errorf("%w: invalid integer %q", ErrFormat, s)
	}
	if n > uint64(^v.mask) {
		return fmt.Errorf("%w: offset %d exceeds host capacity of /%d", ErrRange, n, v.length())
	}
	v.addr = v.addr&v.mask | uint32(n)
	return nil
}

// SetPrefix 解析 "network/N" 并提交地址+掩码。
// 给定地址必须等于自身在给定掩码下的网络，否则返回 [ErrFormat]。
func (v *IPv4) SetPrefix(s string) error {
	addr, length, err := ParseV4(s)
	if err != nil {
		return err
	}
	if length < 0 {
		return fmt.Errorf("%w: prefix %q lacks a length", ErrFormat, s)
	}
	mask, err := PrefixMask4(length)
	if err != nil {
		return err
	}
	if addr&mask != addr {
		return fmt.Errorf("%w: bad prefix range %q", ErrFormat, s)
	}
	if err := ValidateMask4(addr, mask); err != nil {
		return err
	}
	v.addr, v.mask = addr, mask
	return nil
}

// SetNetLength 把掩码设置为十进制前缀长度（0–32）。
func (v *IPv4) SetNetLength(s string) error {
	if !isDigits(s) || s == "" {
		return fmt.Errorf("%w: invalid integer %q", ErrFormat, s)
	}
	n, err := strconv.Atoi(s)
	if err != nil || n > 32 {
		return fmt.Errorf("%w: prefix length %s out of range 0-32", ErrRange, s)
	}
	mask, err := PrefixMask4(n)
	if err != nil {
		return err
	}
	if err := ValidateMask4(v.addr, mask); err != nil {
		return err
	}
	v.mask = mask
	return nil
}

// SetNetwork 在当前掩码下迁移网络部分，主机偏移保持不变。
// 参数必须等于自身在当前掩码下的网络，否则返回 [ErrFormat]。
func (v *IPv4) SetNetwork(s string) error {
	net, length, err := ParseV4(s)
	if err != nil {
		return err
	}
	if length >= 0 {
		return fmt.Errorf("%w: unexpected prefix length in %q", ErrFormat, s)
	}
	if net&v.mask != net {
		return fmt.Errorf("%w: bad network range %q", ErrFormat, s)
	}
	addr := net | v.addr&^v.mask
	if err := ValidateMask4(addr, v.mask); err != nil {
		return err
	}
	v.addr = addr
	return nil
}

// parseMaskText 解析点分掩码文本并校验连续性。
func (v *IPv4) parseMaskText(s string) (uint32, error) {
	mask, length, err := ParseV4(s)
	if err != nil {
		return 0, err
	}
	if length >= 0 {
		return 0, fmt.Errorf("%w: bad mask format %q", ErrFormat, s)
	}
	if _, err := MaskLength4(mask); err != nil {
		return 0, err
	}
	return mask, nil
}

func (v *IPv4) length() int { return bits.OnesCount32(v.mask) }

func (v *IPv4) network() uint32   { return v.addr & v.mask }
func (v *IPv4) broadcast() uint32 { return v.addr | ^v.mask }

// Address 返回点分十进制地址（不含前缀长度）。
func (v *IPv4) Address() string { return quadString(v.addr) }

// NetMask 返回点分十进制网络掩码。
func (v *IPv4) NetMask() string { return quadString(v.mask) }

// HostMask 返回点分十进制主机掩码（网络掩码的按位取反）。
func (v *IPv4) HostMask() string { return quadString(^v.mask) }

// Offset 返回主机部分的十进制偏移量。
func (v *IPv4) Offset() string {
	return strconv.FormatUint(uint64(v.addr&^v.mask), 10)
}

// NetLength 返回掩码的十进制前缀长度。
func (v *IPv4) NetLength() string { return strconv.Itoa(v.length()) }

// Network 返回点分十进制网络地址（主机位清零）。
func (v *IPv4) Network() string { return quadString(v.network()) }

// Prefix 返回 "network/length" 形式。
func (v *IPv4) Prefix() string { return v.Network() + "/" + v.NetLength() }

// Broadcast 返回点分十进制广播地址。
// 保留空间没有广播概念，/32 没有主机位，两种情况都返回 "N/A"。
func (v *IPv4) Broadcast() string {
	if Category4(v.network()) == CategoryReserved || v.mask == ^uint32(0) {
		return "N/A"
	}
	return quadString(v.broadcast())
}

// First 返回首个可用主机地址（网络+1）。
// 掩码长度 ≥31 或块不属于单播空间时返回网络地址本身。
func (v *IPv4) First() string {
	if v.length() >= 31 || Category4(v.network()) != CategoryUnicast {
		return quadString(v.network())
	}
	return quadString(v.network() + 1)
}

// Last 返回末个可用主机地址（广播-1）。
// 掩码长度 ≥31 或块不属于单播空间时返回广播等价地址本身。
func (v *IPv4) Last() string {
	if v.length() >= 31 || Category4(v.network()) != CategoryUnicast {
		return quadString(v.broadcast())
	}
	return quadString(v.broadcast() - 1)
}

// HostQty 返回可用主机数量：(^mask)+1，
// 单播空间且掩码长度 <31 时再减去网络地址和广播地址两个。
func (v *IPv4) HostQty() string {
	qty := uint64(^v.mask) + 1
	if Category4(v.network()) == CategoryUnicast && v.length() < 31 {
		qty -= 2
	}
	return strconv.FormatUint(qty, 10)
}

// String 返回 Prefix 形式，便于日志输出。
func (v *IPv4) String() string { return v.Prefix() }
