package xip

import (
	"encoding/binary"
	"net/netip"

	"go4.org/netipx"

	"github.com/omeyang/ipkit/pkg/addr/xbits"
)

// 与标准库 [net/netip] 和社区库 [go4.org/netipx] 的互转桥。
// 互转只从已提交的合法状态导出，或在导入时走常规校验路径，
// 不会绕过值对象的不变量。

// AddrFromUint32 从 IPv4 的 uint32 表示创建 [netip.Addr]（网络字节序）。
func AddrFromUint32(v uint32) netip.Addr {
	var b [4]byte
	binary.BigEndian.PutUint32(b[:], v)
	return netip.AddrFrom4(b)
}

// Uint32FromAddr 把 IPv4 地址转换为 uint32（网络字节序）。
// 非 IPv4 地址返回 (0, false)，IPv4 映射地址先解映射。
func Uint32FromAddr(addr netip.Addr) (uint32, bool) {
	if !addr.Is4() && !addr.Is4In6() {
		return 0, false
	}
	b := addr.Unmap().As4()
	return binary.BigEndian.Uint32(b[:]), true
}

// AddrFromUint128 从 128 位值创建 IPv6 [netip.Addr]。
func AddrFromUint128(u xbits.Uint128) netip.Addr {
	return netip.AddrFrom16(u.To16())
}

// Uint128FromAddr 把 IPv6 地址转换为 128 位值。
// 无效地址返回 (零值, false)，IPv4 地址按 IPv4 映射形式展开到 128 位。
func Uint128FromAddr(addr netip.Addr) (xbits.Uint128, bool) {
	if !addr.IsValid() {
		return xbits.Uint128{}, false
	}
	return xbits.From16(addr.As16()), true
}

// NetipAddr 返回值对象地址的 [netip.Addr] 表示。
func (v *IPv4) NetipAddr() netip.Addr { return AddrFromUint32(v.addr) }

// NetipAddr 返回值对象地址的 [netip.Addr] 表示。
func (v *IPv6) NetipAddr() netip.Addr { return AddrFromUint128(v.addr) }

// NetipPrefix 返回值对象网络的 [netip.Prefix] 表示。
func (v *IPv4) NetipPrefix() netip.Prefix {
	return netip.PrefixFrom(AddrFromUint32(v.network()), v.length())
}

// NetipPrefix 返回值对象网络的 [netip.Prefix] 表示。
func (v *IPv6) NetipPrefix() netip.Prefix {
	return netip.PrefixFrom(AddrFromUint128(v.network()), v.length())
}

// IPRange 返回值对象覆盖地址块的 [netipx.IPRange]（网络到广播等价地址）。
func (v *IPv4) IPRange() netipx.IPRange {
	return netipx.IPRangeFrom(AddrFromUint32(v.network()), AddrFromUint32(v.broadcast()))
}

// IPRange 返回值对象覆盖地址块的 [netipx.IPRange]（网络到末地址）。
func (v *IPv6) IPRange() netipx.IPRange {
	return netipx.IPRangeFrom(AddrFromUint128(v.network()), AddrFromUint128(v.upper()))
}
