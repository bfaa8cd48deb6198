package xip

import (
	"strconv"
	"strings"

	"github.com/omeyang/ipkit/pkg/addr/xbits"
)

// Expand 把任一可接受形式的 IPv6 文本展开为唯一的全长形式：
// 八个冒号分隔、零填充到 4 位的小写十六进制组，
// 输入携带 "/N" 时原样保留。
func Expand(s string) (string, error) {
	a, length, err := ParseV6(s)
	if err != nil {
		return "", err
	}
	return expandUint128(a, length), nil
}

// Compress 把任一可接受形式的 IPv6 文本压缩为 RFC 5952 规范形式：
// 组内去前导零、小写，IPv4 映射前缀（::ffff:0:0/96）的末 32 位
// 渲染为点分四元组，最长全零组段压缩为 "::"（同长取最左，
// 单个零组不压缩），输入携带 "/N" 时原样保留。
func Compress(s string) (string, error) {
	a, length, err := ParseV6(s)
	if err != nil {
		return "", err
	}
	return compressUint128(a, length), nil
}

// expandUint128 渲染全长形式。length 为 -1 时不附加前缀长度。
func expandUint128(a xbits.Uint128, length int) string {
	g := a.Groups()
	var b strings.Builder
	b.Grow(43)
	for i, v := range g {
		if i > 0 {
			b.WriteByte(':')
		}
		b.WriteString(hexGroupPadded(v))
	}
	appendLen(&b, length)
	return b.String()
}

// compressUint128 渲染 RFC 5952 规范形式。length 为 -1 时不附加前缀长度。
func compressUint128(a xbits.Uint128, length int) string {
	g := a.Groups()

	// IPv4 映射特例：前六组恰为 0:0:0:0:0:ffff 时末 32 位用四元组渲染。
	mapped := g[0] == 0 && g[1] == 0 && g[2] == 0 && g[3] == 0 && g[4] == 0 && g[5] == 0xffff

	toks := make([]string, 0, 8)
	searchable := 8
	if mapped {
		searchable = 6
		for i := 0; i < 6; i++ {
			toks = append(toks, strconv.FormatUint(uint64(g[i]), 16))
		}
		toks = append(toks, quadString(uint32(g[6])<<16|uint32(g[7])))
	} else {
		for _, v := range g {
			toks = append(toks, strconv.FormatUint(uint64(v), 16))
		}
	}

	start, runLen := longestZeroRun(g[:searchable])
	var b strings.Builder
	b.Grow(50)
	if runLen < 2 {
		b.WriteString(strings.Join(toks, ":"))
	} else {
		b.WriteString(strings.Join(toks[:start], ":"))
		b.WriteString("::")
		b.WriteString(strings.Join(toks[start+runLen:], ":"))
	}
	appendLen(&b, length)
	return b.String()
}

// longestZeroRun 返回最长连续全零组段的起点和长度，同长时取最左。
// 没有零组时长度为 0。
func longestZeroRun(g []uint16) (start, length int) {
	bestStart, bestLen := 0, 0
	i := 0
	for i < len(g) {
		if g[i] != 0 {
			i++
			continue
		}
		j := i
		for j < len(g) && g[j] == 0 {
			j++
		}
		if j-i > bestLen {
			bestStart, bestLen = i, j-i
		}
		i = j
	}
	return bestStart, bestLen
}

// hexGroupPadded 渲染一个零填充到 4 位的小写十六进制组。
func hexGroupPadded(v uint16) string {
	const digits = "0123456789abcdef"
	return string([]byte{
		digits[v>>12],
		digits[v>>8&0xf],
		digits[v>>4&0xf],
		digits[v&0xf],
	})
}

// quadString 渲染 32 位值的点分十进制形式。
func quadString(v uint32) string {
	var b strings.Builder
	b.Grow(15)
	for i := 3; i >= 0; i-- {
		if i < 3 {
			b.WriteByte('.')
		}
		b.WriteString(strconv.FormatUint(uint64(v>>(8*i)&0xff), 10))
	}
	return b.String()
}

func appendLen(b *strings.Builder, length int) {
	if length >= 0 {
		b.WriteByte('/')
		b.WriteString(strconv.Itoa(length))
	}
}
