package xip

import (
	"fmt"

	"github.com/omeyang/ipkit/pkg/addr/xbits"
)

// Category 表示地址空间三分区中的一类。
type Category uint8

const (
	// CategoryUnicast 单播地址空间。
	CategoryUnicast Category = iota
	// CategoryMulticast 多播地址空间。
	CategoryMulticast
	// CategoryReserved 保留地址空间。
	CategoryReserved
)

// String 返回分类的字符串表示。
func (c Category) String() string {
	switch c {
	case CategoryUnicast:
		return "Unicast"
	case CategoryMulticast:
		return "Multicast"
	case CategoryReserved:
		return "Reserved"
	default:
		return "unknown"
	}
}

// IPv4 分区边界（左闭右开）。
const (
	v4MulticastBase uint32 = 0xE0000000 // 224.0.0.0
	v4ReservedBase  uint32 = 0xF0000000 // 240.0.0.0
)

// v6Row 是 IPv6 分区表的一行：从 base 起到下一行 base 止。
type v6Row struct {
	base xbits.Uint128
	cat  Category
}

// IPv6 分区表，按 base 升序。行间边界即分类边界：
// ::/3 保留，2000::/3 全局单播，4000::–fc00:: 保留，fc00::/7 唯一本地单播，
// fe00::–fe80:: 保留，fe80::/10 链路本地单播，fec0::–ff00:: 保留，ff00::/8 多播。
var v6Rows = [...]v6Row{
	{xbits.From(0x0000000000000000, 0), CategoryReserved},
	{xbits.From(0x2000000000000000, 0), CategoryUnicast},
	{xbits.From(0x4000000000000000, 0), CategoryReserved},
	{xbits.From(0xfc00000000000000, 0), CategoryUnicast},
	{xbits.From(0xfe00000000000000, 0), CategoryReserved},
	{xbits.From(0xfe80000000000000, 0), CategoryUnicast},
	{xbits.From(0xfec0000000000000, 0), CategoryReserved},
	{xbits.From(0xff00000000000000, 0), CategoryMulticast},
}

// v4RowIndex 返回 32 位地址所属的分区行号（0 单播 / 1 多播 / 2 保留）。
func v4RowIndex(addr uint32) int {
	switch {
	case addr < v4MulticastBase:
		return 0
	case addr < v4ReservedBase:
		return 1
	default:
		return 2
	}
}

// v6RowIndex 返回 128 位地址所属的分区行号。
func v6RowIndex(a xbits.Uint128) int {
	for i := len(v6Rows) - 1; i >= 0; i-- {
		if a.Cmp(v6Rows[i].base) >= 0 {
			return i
		}
	}
	return 0
}

// Category4 返回 IPv4 地址所属的地址空间分类。
func Category4(addr uint32) Category {
	switch v4RowIndex(addr) {
	case 0:
		return CategoryUnicast
	case 1:
		return CategoryMulticast
	default:
		return CategoryReserved
	}
}

// Category6 返回 IPv6 地址所属的地址空间分类。
func Category6(a xbits.Uint128) Category {
	return v6Rows[v6RowIndex(a)].cat
}

// IsUnicast4 报告 IPv4 地址是否属于单播空间。
func IsUnicast4(addr uint32) bool { return Category4(addr) == CategoryUnicast }

// IsMulticast4 报告 IPv4 地址是否属于多播空间。
func IsMulticast4(addr uint32) bool { return Category4(addr) == CategoryMulticast }

// IsReserved4 报告 IPv4 地址是否属于保留空间。
func IsReserved4(addr uint32) bool { return Category4(addr) == CategoryReserved }

// IsUnicast6 报告 IPv6 地址是否属于单播空间。
func IsUnicast6(a xbits.Uint128) bool { return Category6(a) == CategoryUnicast }

// IsMulticast6 报告 IPv6 地址是否属于多播空间。
func IsMulticast6(a xbits.Uint128) bool { return Category6(a) == CategoryMulticast }

// IsReserved6 报告 IPv6 地址是否属于保留空间。
func IsReserved6(a xbits.Uint128) bool { return Category6(a) == CategoryReserved }

// InRange4 报告 addr 是否落在 prefix 描述的 IPv4 网络内。
// prefix 必须携带前缀长度（"a.b.c.d/N"），否则返回 [ErrFormat]。
func InRange4(addr uint32, prefix string) (bool, error) {
	net, length, err := ParseV4(prefix)
	if err != nil {
		return false, err
	}
	if length < 0 {
		return false, fmt.Errorf("%w: prefix %q lacks a length", ErrFormat, prefix)
	}
	mask, err := PrefixMask4(length)
	if err != nil {
		return false, err
	}
	return addr&mask == net&mask, nil
}

// InRange6 报告 a 是否落在 prefix 描述的 IPv6 网络内。
// prefix 必须携带前缀长度，否则返回 [ErrFormat]。
func InRange6(a xbits.Uint128, prefix string) (bool, error) {
	net, length, err := ParseV6(prefix)
	if err != nil {
		return false, err
	}
	if length < 0 {
		return false, fmt.Errorf("%w: prefix %q lacks a length", ErrFormat, prefix)
	}
	mask, err := PrefixMask6(length)
	if err != nil {
		return false, err
	}
	return a.And(mask).Cmp(net.And(mask)) == 0, nil
}

// ValidateMask4 校验 (addr, mask) 覆盖的整个地址块
// [addr&mask, addr|^mask] 完整落在同一个分区行内。
// 跨越分区边界返回 [ErrPartition]，错误信息以块网络侧的分类命名。
func ValidateMask4(addr, mask uint32) error {
	start := addr & mask
	end := addr | ^mask
	if v4RowIndex(start) != v4RowIndex(end) {
		return fmt.Errorf("%w: bad %s range", ErrPartition, Category4(start))
	}
	return nil
}

// ValidateMask6 校验 (addr, mask) 覆盖的整个地址块完整落在同一个分区行内。
// 跨越分区边界返回 [ErrPartition]，错误信息以块网络侧的分类命名。
func ValidateMask6(addr, mask xbits.Uint128) error {
	start := addr.And(mask)
	end := addr.Or(mask.Not())
	if v6RowIndex(start) != v6RowIndex(end) {
		return fmt.Errorf("%w: bad %s range", ErrPartition, Category6(start))
	}
	return nil
}
