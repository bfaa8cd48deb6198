package xip

import (
	"github.com/omeyang/ipkit/pkg/addr/xbits"
)

// IANA 特殊用途地址注册表的静态有序子集。
// 表项只依赖核心的语法解析和掩码原语，查询按最长前缀匹配。

type v4RegistryEntry struct {
	net    uint32
	mask   uint32
	length int
	name   string
}

type v6RegistryEntry struct {
	net    xbits.Uint128
	mask   xbits.Uint128
	length int
	name   string
}

var v4Registry = buildV4Registry()
var v6Registry = buildV6Registry()

func buildV4Registry() []v4RegistryEntry {
	specs := []struct {
		prefix string
		name   string
	}{
		{"0.0.0.0/8", "This host on this network"},
		{"10.0.0.0/8", "Private-Use"},
		{"100.64.0.0/10", "Shared Address Space"},
		{"127.0.0.0/8", "Loopback"},
		{"169.254.0.0/16", "Link Local"},
		{"172.16.0.0/12", "Private-Use"},
		{"192.0.0.0/24", "IETF Protocol Assignments"},
		{"192.0.2.0/24", "Documentation (TEST-NET-1)"},
		{"192.88.99.0/24", "6to4 Relay Anycast"},
		{"192.168.0.0/16", "Private-Use"},
		{"198.18.0.0/15", "Benchmarking"},
		{"198.51.100.0/24", "Documentation (TEST-NET-2)"},
		{"203.0.113.0/24", "Documentation (TEST-NET-3)"},
		{"224.0.0.0/24", "Local Network Control Block"},
		{"233.0.0.0/8", "GLOP Block"},
		{"239.0.0.0/8", "Administratively Scoped Multicast"},
		{"240.0.0.0/4", "Reserved (Class E)"},
		{"255.255.255.255/32", "Limited Broadcast"},
	}
	entries := make([]v4RegistryEntry, 0, len(specs))
	for _, sp := range specs {
		net, length, err := ParseV4(sp.prefix)
		if err != nil || length < 0 {
			panic("xip: bad v4 registry entry " + sp.prefix)
		}
		mask, _ := PrefixMask4(length)
		entries = append(entries, v4RegistryEntry{net: net & mask, mask: mask, length: length, name: sp.name})
	}
	return entries
}

func buildV6Registry() []v6RegistryEntry {
	specs := []struct {
		prefix string
		name   string
	}{
		{"::/128", "Unspecified"},
		{"::1/128", "Loopback"},
		{"::ffff:0.0.0.0/96", "IPv4-mapped"},
		{"64:ff9b::/96", "IPv4-IPv6 Translation (NAT64)"},
		{"100::/64", "Discard-Only"},
		{"2001::/32", "Teredo"},
		{"2001:2::/48", "Benchmarking"},
		{"2001:db8::/32", "Documentation"},
		{"2002::/16", "6to4"},
		{"fc00::/7", "Unique-Local Unicast"},
		{"fe80::/10", "Link-Local Unicast"},
		{"ff00::/8", "Multicast"},
	}
	entries := make([]v6RegistryEntry, 0, len(specs))
	for _, sp := range specs {
		net, length, err := ParseV6(sp.prefix)
		if err != nil || length < 0 {
			panic("xip: bad v6 registry entry " + sp.prefix)
		}
		mask, _ := PrefixMask6(length)
		entries = append(entries, v6RegistryEntry{net: net.And(mask), mask: mask, length: length, name: sp.name})
	}
	return entries
}

// Lookup4 返回 IPv4 地址在特殊用途注册表中最具体（前缀最长）
// 匹配项的名称。没有匹配时退回三分区分类名。
func Lookup4(addr uint32) string {
	best := -1
	name := ""
	for _, e := range v4Registry {
		if addr&e.mask == e.net && e.length > best {
			best, name = e.length, e.name
		}
	}
	if best < 0 {
		return Category4(addr).String()
	}
	return name
}

// Lookup6 返回 IPv6 地址在特殊用途注册表中最具体（前缀最长）
// 匹配项的名称。没有匹配时退回三分区分类名。
func Lookup6(a xbits.Uint128) string {
	best := -1
	name := ""
	for _, e := range v6Registry {
		if a.And(e.mask).Cmp(e.net) == 0 && e.length > best {
			best, name = e.length, e.name
		}
	}
	if best < 0 {
		return Category6(a).String()
	}
	return name
}

// Designation 返回值对象地址在特殊用途注册表中的名称。
func (v *IPv4) Designation() string { return Lookup4(v.addr) }

// Designation 返回值对象地址在特殊用途注册表中的名称。
func (v *IPv6) Designation() string { return Lookup6(v.addr) }
