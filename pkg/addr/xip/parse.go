package xip

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/omeyang/ipkit/pkg/addr/xbits"
)

// ParseV4 按 IPv4 文本语法解析 s，返回地址比特和可选前缀长度。
// 语法：四个点分十进制八位组（0–255，禁止前导零），
// 可选尾随 "/N"（0 ≤ N ≤ 32）。无前缀长度时返回 -1。
//
// 语法不匹配返回 [ErrFormat]，前缀长度数值越界返回 [ErrRange]。
func ParseV4(s string) (uint32, int, error) {
	addrPart, length, err := splitPrefixLen(s, 32)
	if err != nil {
		return 0, 0, err
	}
	addr, err := parseQuad(addrPart)
	if err != nil {
		return 0, 0, err
	}
	return addr, length, nil
}

// ParseV6 按 IPv6 文本语法解析 s（大小写不敏感），返回地址比特和可选前缀长度。
// 接受三种 RFC 4291 惯用形式：
//   - 展开形式：八个冒号分隔的 1–4 位十六进制组
//   - 压缩形式：恰好一个 "::" 替换一段或多段连续全零组
//   - 混合形式：末 32 位写作嵌入的点分十进制四元组
//
// 可选尾随 "/N"（0 ≤ N ≤ 128）。无前缀长度时返回 -1。
// 语法不匹配返回 [ErrFormat]，前缀长度数值越界返回 [ErrRange]。
func ParseV6(s string) (xbits.Uint128, int, error) {
	addrPart, length, err := splitPrefixLen(s, 128)
	if err != nil {
		return xbits.Uint128{}, 0, err
	}
	addr, err := parseV6Groups(strings.ToLower(addrPart))
	if err != nil {
		return xbits.Uint128{}, 0, err
	}
	return addr, length, nil
}

// splitPrefixLen 剥离可选的 "/N" 后缀。无后缀时 length 为 -1。
// 长度字段必须是纯十进制数字；数值超过 max 返回 [ErrRange]。
func splitPrefixLen(s string, max int) (addrPart string, length int, err error) {
	idx := strings.IndexByte(s, '/')
	if idx < 0 {
		return s, -1, nil
	}
	addrPart, lenStr := s[:idx], s[idx+1:]
	if lenStr == "" || !isDigits(lenStr) {
		return "", 0, fmt.Errorf("%w: bad prefix length %q", ErrFormat, lenStr)
	}
	n, err := strconv.Atoi(lenStr)
	if err != nil || n > max {
		return "", 0, fmt.Errorf("%w: prefix length %s out of range 0-%d", ErrRange, lenStr, max)
	}
	return addrPart, n, nil
}

// parseQuad 解析严格的点分十进制四元组为 32 位地址。
func parseQuad(s string) (uint32, error) {
	var addr uint32
	rest := s
	for i := 0; i < 4; i++ {
		if i > 0 {
			if rest == "" || rest[0] != '.' {
				return 0, fmt.Errorf("%w: bad address format %q", ErrFormat, s)
			}
			rest = rest[1:]
		}
		var tok string
		if dot := strings.IndexByte(rest, '.'); dot >= 0 && i < 3 {
			tok, rest = rest[:dot], rest[dot:]
		} else {
			tok, rest = rest, ""
		}
		oct, err := parseOctet(tok)
		if err != nil {
			return 0, fmt.Errorf("%w: bad address format %q", ErrFormat, s)
		}
		addr = addr<<8 | uint32(oct)
	}
	if rest != "" {
		return 0, fmt.Errorf("%w: bad address format %q", ErrFormat, s)
	}
	return addr, nil
}

// parseOctet 解析一个八位组：1–3 位十进制数字，0–255，禁止前导零。
func parseOctet(tok string) (uint8, error) {
	if tok == "" || len(tok) > 3 || !isDigits(tok) {
		return 0, ErrFormat
	}
	if len(tok) > 1 && tok[0] == '0' {
		return 0, ErrFormat
	}
	n, err := strconv.Atoi(tok)
	if err != nil || n > 255 {
		return 0, ErrFormat
	}
	return uint8(n), nil
}

// parseV6Groups 把（已小写的）IPv6 地址文本解析为 128 位值。
//
// "::" 省略按显式小状态机处理：统计省略号两侧的显式组数，
// 在记录的省略位置插入 8-显式组数 个零组，而不是做文本替换。
func parseV6Groups(s string) (xbits.Uint128, error) {
	invalid := func() (xbits.Uint128, error) {
		return xbits.Uint128{}, fmt.Errorf("%w: invalid address %q", ErrFormat, s)
	}

	if s == "" || strings.Count(s, "::") > 1 {
		return invalid()
	}

	head, tail, hasElision := strings.Cut(s, "::")
	headGroups, err := parseGroupRun(head, !hasElision)
	if err != nil {
		return invalid()
	}
	var tailGroups []uint16
	if hasElision {
		tailGroups, err = parseGroupRun(tail, true)
		if err != nil {
			return invalid()
		}
	}

	explicit := len(headGroups) + len(tailGroups)
	if hasElision {
		// 省略号必须至少替代一个全零组。
		if explicit > 7 {
			return invalid()
		}
	} else if explicit != 8 {
		return invalid()
	}

	var g [8]uint16
	copy(g[:], headGroups)
	copy(g[8-len(tailGroups):], tailGroups)
	return xbits.FromGroups(g), nil
}

// parseGroupRun 解析一段冒号分隔的组序列。空字符串产生零个组。
// quadAllowed 控制末组是否允许写作嵌入的 IPv4 四元组（占两个组）。
func parseGroupRun(s string, quadAllowed bool) ([]uint16, error) {
	if s == "" {
		return nil, nil
	}
	toks := strings.Split(s, ":")
	groups := make([]uint16, 0, len(toks)+1)
	for i, tok := range toks {
		if strings.IndexByte(tok, '.') >= 0 {
			// 嵌入四元组只能出现在整个地址的最末组。
			if !quadAllowed || i != len(toks)-1 {
				return nil, ErrFormat
			}
			v4, err := parseQuad(tok)
			if err != nil {
				return nil, ErrFormat
			}
			return append(groups, uint16(v4>>16), uint16(v4)), nil
		}
		g, err := parseHexGroup(tok)
		if err != nil {
			return nil, err
		}
		groups = append(groups, g)
	}
	return groups, nil
}

// parseHexGroup 解析一个 1–4 位十六进制组。
func parseHexGroup(tok string) (uint16, error) {
	if tok == "" || len(tok) > 4 {
		return 0, ErrFormat
	}
	n, err := strconv.ParseUint(tok, 16, 16)
	if err != nil {
		return 0, ErrFormat
	}
	return uint16(n), nil
}

func isDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
