// Package xbits 提供定宽无符号整数运算。
//
// 核心类型是 [Uint128]：以两个 64 位字表示的 128 位无符号整数，
// 提供按位运算、逻辑移位、比较、模 2^128 加减法，
// 以及十进制/十六进制文本转换。进位与借位通过 [math/bits]
// 显式传播，全部运算精确到 128 位，无精度损失。
//
// IPv4 地址的 32 位运算直接使用内建 uint32，无需额外封装。
//
// # 快速示例
//
//	mask := xbits.Max().Lsh(128 - 64)        // 前 64 位掩码
//	net := addr.And(mask)                    // 网络部分
//	bcast := addr.Or(mask.Not())             // 广播等价地址
//
// # 设计决策
//
//   - 采用双字定宽表示而非 math/big：宽度约束由类型保证，
//     无需运行时检查，也避免任意精度带来的堆分配
//   - 值类型、零分配，可直接比较、可作 map key
//   - 文本解析返回预定义错误变量，支持 errors.Is 分流
//     （[ErrInvalidInteger] 语法错误 / [ErrOverflow] 超出范围）
package xbits
