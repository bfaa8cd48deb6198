package xip

import (
	"strconv"
)

// WirePrefix 是地址+前缀长度的序列化格式。
// 使用 JSON/BSON/YAML 标签 {"address":"...","length":N}。
// 反序列化得到的值通过常规构造路径重新校验，不会绕过不变量。
type WirePrefix struct {
	Address string `json:"address" bson:"address" yaml:"address"`
	Length  int    `json:"length" bson:"length" yaml:"length"`
}

// WireFromIPv4 从 IPv4 值对象创建 WirePrefix。
// 地址字段保留主机位，往返后偏移量不丢失。
func WireFromIPv4(v *IPv4) WirePrefix {
	return WirePrefix{Address: v.Address(), Length: v.length()}
}

// WireFromIPv6 从 IPv6 值对象创建 WirePrefix。
// 地址字段保留主机位，往返后偏移量不丢失。
func WireFromIPv6(v *IPv6) WirePrefix {
	return WirePrefix{Address: v.Address(), Length: v.length()}
}

// ToIPv4 把 WirePrefix 转换回 IPv4 值对象，走完整解析+校验路径。
func (w WirePrefix) ToIPv4() (*IPv4, error) {
	return ParseIPv4(w.String())
}

// ToIPv6 把 WirePrefix 转换回 IPv6 值对象，走完整解析+校验路径。
func (w WirePrefix) ToIPv6() (*IPv6, error) {
	return ParseIPv6(w.String())
}

// IsZero 报告 w 是否为零值。
func (w WirePrefix) IsZero() bool {
	return w.Address == "" && w.Length == 0
}

// String 返回 "address/length" 形式。
func (w WirePrefix) String() string {
	return w.Address + "/" + strconv.Itoa(w.Length)
}
