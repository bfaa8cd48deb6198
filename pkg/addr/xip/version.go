package xip

// Version 表示 IP 协议版本。
type Version uint8

const (
	// V0 表示无效或未知的 IP 版本。
	V0 Version = 0
	// V4 表示 IPv4。
	V4 Version = 4
	// V6 表示 IPv6。
	V6 Version = 6
)

// String 返回版本的字符串表示。
func (v Version) String() string {
	switch v {
	case V4:
		return "IPv4"
	case V6:
		return "IPv6"
	default:
		return "unknown"
	}
}

// TextVersion 报告文本 s 能被哪个版本的地址语法接受。
// 两个语法都不接受时返回 V0。
func TextVersion(s string) Version {
	if _, _, err := ParseV4(s); err == nil {
		return V4
	}
	if _, _, err := ParseV6(s); err == nil {
		return V6
	}
	return V0
}
