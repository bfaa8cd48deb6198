package xip

import "errors"

var (
	// ErrFormat 表示文本不符合对应字段的地址/前缀/偏移语法。
	ErrFormat = errors.New("xip: format error")

	// ErrRange 表示数值超出字段的合法范围（如前缀长度、主机偏移）。
	ErrRange = errors.New("xip: range error")

	// ErrPartition 表示地址+掩码覆盖的地址块跨越了地址空间分区边界。
	ErrPartition = errors.New("xip: partition error")
)
