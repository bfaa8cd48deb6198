// Package xip 提供 IPv4/IPv6 地址与前缀操作库。
//
// xip 在精确的 32 位 / 128 位无符号运算（[xbits.Uint128]）之上，
// 实现文本 ⇄ 二进制转换、前缀/网络/偏移运算、地址空间三分区
// （单播/多播/保留）分类，以及 RFC 5952 规范形式的 IPv6 文本输出。
//
// # 核心功能
//
//   - parse.go: 严格文本语法解析（IPv4 禁止前导零；IPv6 接受
//     RFC 4291 的展开、"::"压缩和嵌入 IPv4 混合三种形式）
//   - mask.go: 前缀长度 ⇄ 掩码编解码，含连续性校验
//   - space.go: 分区表、IsUnicast/IsMulticast/IsReserved 分类、
//     InRange 前缀归属判断、ValidateMask 跨分区校验
//   - v4.go / v6.go: [IPv4] / [IPv6] 值对象，事务性字符串属性面
//   - canon.go: [Expand] / [Compress]，RFC 4291 展开与 RFC 5952 压缩
//   - registry.go: IANA 特殊用途前缀注册表，最长前缀匹配查询
//   - convert.go: 与 [net/netip] / [go4.org/netipx] 的互转桥
//   - wire.go: [WirePrefix] JSON/BSON/YAML 序列化结构
//
// # 快速示例
//
// 值对象的属性面：
//
//	v, _ := xip.ParseIPv4("192.168.1.10/24")
//	fmt.Println(v.Network())    // 192.168.1.0
//	fmt.Println(v.Broadcast())  // 192.168.1.255
//	fmt.Println(v.First())      // 192.168.1.1
//	fmt.Println(v.Last())       // 192.168.1.254
//	fmt.Println(v.HostQty())    // 254
//
// IPv6 规范化：
//
//	xip.Expand("2001:db8::1")    // 2001:0db8:0000:0000:0000:0000:0000:0001
//	xip.Compress("2001:0DB8::0:1")  // 2001:db8::1
//
// # 事务性修改契约
//
// 值对象的每个 Set* 方法都遵循 解析 → 计算候选值 → 校验 → 提交：
// 任一环节失败时返回错误且已存的 (addr, mask) 保持不变，不存在
// 部分更新。校验包括掩码连续性和 [ValidateMask4]/[ValidateMask6]
// 的跨分区检查——覆盖块 [addr&mask, addr|^mask] 必须完整落在
// 分区表的同一行内。
//
// # 错误处理
//
// 三个预定义错误变量支持 errors.Is 分流：
//
//	_, err := xip.ParseIPv4("10.0.0.0/33")
//	if errors.Is(err, xip.ErrRange) {
//	    // 数值越界
//	}
//
//   - [ErrFormat]: 文本不符合字段语法（含非法掩码、前导零八位组）
//   - [ErrRange]: 数值越界（前缀长度、主机偏移）
//   - [ErrPartition]: 地址块跨越分区边界
//
// 任何输入都不会触发 panic；失败的修改操作是原子的。
//
// # 并发
//
// 包级分区表和注册表在初始化后只读，可被任意多的并发调用方共享。
// 值对象本身不含内部锁，跨 goroutine 共享需外部同步或按值复制。
//
// # 设计决策
//
//   - 自带语法解析器而非复用 [netip.ParseAddr]：语法和错误分类本身
//     就是契约（区分格式/越界、嵌入四元组同样禁止前导零），
//     netip 仅用于 convert.go 的互转出口和测试中的交叉验证
//   - "::" 省略按组计数状态机展开（8 - 显式组数），不做文本替换
//   - IPv6 用双字定宽 [xbits.Uint128] 而非 math/big，
//     128 位不变量由类型保证；仅 /0 的主机数 2^128 在 math/big 中计算
package xip
