package xbits

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math/bits"
	"strconv"
)

var (
	// ErrInvalidInteger 表示十进制文本不是合法的无符号整数。
	ErrInvalidInteger = errors.New("xbits: invalid integer")

	// ErrOverflow 表示数值超出 128 位无符号整数范围。
	ErrOverflow = errors.New("xbits: value overflows 128 bits")
)

// Uint128 是 128 位无符号整数的双字表示（两个 64 位字，高位在前）。
//
// 所有运算精确到 128 位：位运算逐字进行，加减法通过 [math/bits]
// 显式传播进位/借位，移位跨字搬运。不依赖任意精度类型，
// "恰好 128 位" 由类型本身保证。
type Uint128 struct {
	Hi, Lo uint64
}

// Zero 返回全零值。
func Zero() Uint128 { return Uint128{} }

// Max 返回全一值（2^128 - 1）。
func Max() Uint128 { return Uint128{Hi: ^uint64(0), Lo: ^uint64(0)} }

// From 从高低两个 64 位字创建 Uint128。
func From(hi, lo uint64) Uint128 { return Uint128{Hi: hi, Lo: lo} }

// From16 从 16 字节大端序列创建 Uint128。
func From16(b [16]byte) Uint128 {
	return Uint128{
		Hi: binary.BigEndian.Uint64(b[0:8]),
		Lo: binary.BigEndian.Uint64(b[8:16]),
	}
}

// To16 返回 16 字节大端序列。
func (x Uint128) To16() [16]byte {
	var b [16]byte
	binary.BigEndian.PutUint64(b[0:8], x.Hi)
	binary.BigEndian.PutUint64(b[8:16], x.Lo)
	return b
}

// FromGroups 从 8 个 16 位组（大端顺序，组 0 为最高位）创建 Uint128。
func FromGroups(g [8]uint16) Uint128 {
	var x Uint128
	for i := 0; i < 4; i++ {
		x.Hi = x.Hi<<16 | uint64(g[i])
	}
	for i := 4; i < 8; i++ {
		x.Lo = x.Lo<<16 | uint64(g[i])
	}
	return x
}

// Groups 返回 8 个 16 位组（大端顺序，组 0 为最高位）。
func (x Uint128) Groups() [8]uint16 {
	var g [8]uint16
	for i := 0; i < 4; i++ {
		g[i] = uint16(x.Hi >> (48 - 16*i))
	}
	for i := 4; i < 8; i++ {
		g[i] = uint16(x.Lo >> (48 - 16*(i-4)))
	}
	return g
}

// And 返回按位与 x & y。
func (x Uint128) And(y Uint128) Uint128 {
	return Uint128{Hi: x.Hi & y.Hi, Lo: x.Lo & y.Lo}
}

// Or 返回按位或 x | y。
func (x Uint128) Or(y Uint128) Uint128 {
	return Uint128{Hi: x.Hi | y.Hi, Lo: x.Lo | y.Lo}
}

// Xor 返回按位异或 x ^ y。
func (x Uint128) Xor(y Uint128) Uint128 {
	return Uint128{Hi: x.Hi ^ y.Hi, Lo: x.Lo ^ y.Lo}
}

// Not 返回按位取反 ^x。
func (x Uint128) Not() Uint128 {
	return Uint128{Hi: ^x.Hi, Lo: ^x.Lo}
}

// Lsh 返回逻辑左移 x << k。k >= 128 时返回零。
func (x Uint128) Lsh(k uint) Uint128 {
	switch {
	case k >= 128:
		return Uint128{}
	case k >= 64:
		return Uint128{Hi: x.Lo << (k - 64)}
	case k == 0:
		return x
	default:
		return Uint128{Hi: x.Hi<<k | x.Lo>>(64-k), Lo: x.Lo << k}
	}
}

// Rsh 返回逻辑右移 x >> k。k >= 128 时返回零。
func (x Uint128) Rsh(k uint) Uint128 {
	switch {
	case k >= 128:
		return Uint128{}
	case k >= 64:
		return Uint128{Lo: x.Hi >> (k - 64)}
	case k == 0:
		return x
	default:
		return Uint128{Hi: x.Hi >> k, Lo: x.Lo>>k | x.Hi<<(64-k)}
	}
}

// Add 返回模 2^128 的和 x + y。
func (x Uint128) Add(y Uint128) Uint128 {
	lo, carry := bits.Add64(x.Lo, y.Lo, 0)
	hi, _ := bits.Add64(x.Hi, y.Hi, carry)
	return Uint128{Hi: hi, Lo: lo}
}

// Sub 返回模 2^128 的差 x - y。
func (x Uint128) Sub(y Uint128) Uint128 {
	lo, borrow := bits.Sub64(x.Lo, y.Lo, 0)
	hi, _ := bits.Sub64(x.Hi, y.Hi, borrow)
	return Uint128{Hi: hi, Lo: lo}
}

// AddUint64 返回 x + v（模 2^128）。
func (x Uint128) AddUint64(v uint64) Uint128 {
	return x.Add(Uint128{Lo: v})
}

// SubUint64 返回 x - v（模 2^128）。
func (x Uint128) SubUint64(v uint64) Uint128 {
	return x.Sub(Uint128{Lo: v})
}

// Cmp 比较 x 和 y：x < y 返回 -1，相等返回 0，x > y 返回 1。
func (x Uint128) Cmp(y Uint128) int {
	switch {
	case x.Hi < y.Hi:
		return -1
	case x.Hi > y.Hi:
		return 1
	case x.Lo < y.Lo:
		return -1
	case x.Lo > y.Lo:
		return 1
	default:
		return 0
	}
}

// Less 报告 x < y。
func (x Uint128) Less(y Uint128) bool { return x.Cmp(y) < 0 }

// Equal 报告 x == y。
func (x Uint128) Equal(y Uint128) bool { return x == y }

// IsZero 报告 x 是否为零。
func (x Uint128) IsZero() bool { return x.Hi == 0 && x.Lo == 0 }

// OnesCount 返回置位比特数。
func (x Uint128) OnesCount() int {
	return bits.OnesCount64(x.Hi) + bits.OnesCount64(x.Lo)
}

// LeadingZeros 返回前导零比特数（零值返回 128）。
func (x Uint128) LeadingZeros() int {
	if x.Hi != 0 {
		return bits.LeadingZeros64(x.Hi)
	}
	return 64 + bits.LeadingZeros64(x.Lo)
}

// String 返回十进制表示。
func (x Uint128) String() string {
	if x.Hi == 0 {
		return strconv.FormatUint(x.Lo, 10)
	}
	// 逐次除以 10，借助 bits.Div64 跨字传递余数。
	var buf [39]byte // 2^128-1 是 39 位十进制数
	i := len(buf)
	for !x.IsZero() {
		hi := x.Hi / 10
		lo, rem := bits.Div64(x.Hi%10, x.Lo, 10)
		x = Uint128{Hi: hi, Lo: lo}
		i--
		buf[i] = byte('0' + rem)
	}
	return string(buf[i:])
}

// Hex 返回 32 位小写十六进制表示（零填充，无分隔符）。
func (x Uint128) Hex() string {
	var buf [32]byte
	b := x.To16()
	const digits = "0123456789abcdef"
	for i, v := range b {
		buf[2*i] = digits[v>>4]
		buf[2*i+1] = digits[v&0xf]
	}
	return string(buf[:])
}

// ParseDecimal 解析十进制文本为 Uint128。
// 非数字文本返回 [ErrInvalidInteger]，超出 128 位范围返回 [ErrOverflow]。
func ParseDecimal(s string) (Uint128, error) {
	if s == "" {
		return Uint128{}, fmt.Errorf("%w: empty string", ErrInvalidInteger)
	}
	if len(s) > 39 {
		return Uint128{}, fmt.Errorf("%w: %q", ErrOverflow, s)
	}
	var x Uint128
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c < '0' || c > '9' {
			return Uint128{}, fmt.Errorf("%w: %q", ErrInvalidInteger, s)
		}
		y, ok := x.mul10Add(uint64(c - '0'))
		if !ok {
			return Uint128{}, fmt.Errorf("%w: %q", ErrOverflow, s)
		}
		x = y
	}
	return x, nil
}

// mul10Add 返回 x*10 + d，溢出 128 位时 ok 为 false。
func (x Uint128) mul10Add(d uint64) (Uint128, bool) {
	carryLo, lo := bits.Mul64(x.Lo, 10)
	carryHi, hi := bits.Mul64(x.Hi, 10)
	if carryHi != 0 {
		return Uint128{}, false
	}
	hi, c := bits.Add64(hi, carryLo, 0)
	if c != 0 {
		return Uint128{}, false
	}
	lo, c = bits.Add64(lo, d, 0)
	hi, c = bits.Add64(hi, 0, c)
	if c != 0 {
		return Uint128{}, false
	}
	return Uint128{Hi: hi, Lo: lo}, true
}
