package xip

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/omeyang/ipkit/pkg/addr/xbits"
)

func TestParseV4(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantAddr uint32
		wantLen  int
		wantErr  error
	}{
		{name: "plain", input: "192.168.1.10", wantAddr: 0xC0A8010A, wantLen: -1},
		{name: "zero", input: "0.0.0.0", wantAddr: 0, wantLen: -1},
		{name: "broadcast", input: "255.255.255.255", wantAddr: 0xFFFFFFFF, wantLen: -1},
		{name: "with length", input: "10.0.0.0/8", wantAddr: 0x0A000000, wantLen: 8},
		{name: "length zero", input: "10.0.0.0/0", wantAddr: 0x0A000000, wantLen: 0},
		{name: "length 32", input: "10.0.0.1/32", wantAddr: 0x0A000001, wantLen: 32},
		{name: "single zero octet", input: "0.1.2.3", wantAddr: 0x00010203, wantLen: -1},
		{name: "leading zero first octet", input: "01.2.3.4", wantErr: ErrFormat},
		{name: "leading zero last octet", input: "1.2.3.04", wantErr: ErrFormat},
		{name: "octet too large", input: "256.1.1.1", wantErr: ErrFormat},
		{name: "octet four digits", input: "1000.1.1.1", wantErr: ErrFormat},
		{name: "three octets", input: "1.2.3", wantErr: ErrFormat},
		{name: "five octets", input: "1.2.3.4.5", wantErr: ErrFormat},
		{name: "empty octet", input: "1..2.3", wantErr: ErrFormat},
		{name: "trailing dot", input: "1.2.3.4.", wantErr: ErrFormat},
		{name: "leading space", input: " 1.2.3.4", wantErr: ErrFormat},
		{name: "signed octet", input: "1.2.3.-4", wantErr: ErrFormat},
		{name: "hex octet", input: "0x1.2.3.4", wantErr: ErrFormat},
		{name: "empty", input: "", wantErr: ErrFormat},
		{name: "length out of range", input: "10.0.0.0/33", wantErr: ErrRange},
		{name: "length huge", input: "10.0.0.0/4294967296", wantErr: ErrRange},
		{name: "length empty", input: "10.0.0.0/", wantErr: ErrFormat},
		{name: "length non numeric", input: "10.0.0.0/ab", wantErr: ErrFormat},
		{name: "length signed", input: "10.0.0.0/-1", wantErr: ErrFormat},
		{name: "missing address", input: "/24", wantErr: ErrFormat},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			addr, length, err := ParseV4(tt.input)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantAddr, addr)
			assert.Equal(t, tt.wantLen, length)
		})
	}
}

func g6(groups ...uint16) xbits.Uint128 {
	var g [8]uint16
	copy(g[:], groups)
	return xbits.FromGroups(g)
}

func TestParseV6(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantAddr xbits.Uint128
		wantLen  int
		wantErr  error
	}{
		{name: "expanded", input: "2001:0db8:0000:0000:0000:0000:0000:0001",
			wantAddr: g6(0x2001, 0x0db8, 0, 0, 0, 0, 0, 1), wantLen: -1},
		{name: "expanded short groups", input: "2001:db8:0:0:0:0:0:1",
			wantAddr: g6(0x2001, 0x0db8, 0, 0, 0, 0, 0, 1), wantLen: -1},
		{name: "compressed middle", input: "2001:db8::1",
			wantAddr: g6(0x2001, 0x0db8, 0, 0, 0, 0, 0, 1), wantLen: -1},
		{name: "compressed start", input: "::1",
			wantAddr: g6(0, 0, 0, 0, 0, 0, 0, 1), wantLen: -1},
		{name: "compressed end", input: "2001:db8::",
			wantAddr: g6(0x2001, 0x0db8), wantLen: -1},
		{name: "sole elision", input: "::",
			wantAddr: xbits.Zero(), wantLen: -1},
		{name: "elision one group", input: "1:2:3:4:5:6:7::",
			wantAddr: g6(1, 2, 3, 4, 5, 6, 7, 0), wantLen: -1},
		{name: "elision one group start", input: "::2:3:4:5:6:7:8",
			wantAddr: g6(0, 2, 3, 4, 5, 6, 7, 8), wantLen: -1},
		{name: "uppercase", input: "2001:DB8::A",
			wantAddr: g6(0x2001, 0x0db8, 0, 0, 0, 0, 0, 0xa), wantLen: -1},
		{name: "mapped quad", input: "::ffff:192.0.2.128",
			wantAddr: g6(0, 0, 0, 0, 0, 0xffff, 0xc000, 0x0280), wantLen: -1},
		{name: "compatible quad", input: "::192.0.2.1",
			wantAddr: g6(0, 0, 0, 0, 0, 0, 0xc000, 0x0201), wantLen: -1},
		{name: "expanded quad", input: "0:0:0:0:0:ffff:192.0.2.1",
			wantAddr: g6(0, 0, 0, 0, 0, 0xffff, 0xc000, 0x0201), wantLen: -1},
		{name: "with length", input: "2001:db8::/32",
			wantAddr: g6(0x2001, 0x0db8), wantLen: 32},
		{name: "length zero", input: "::/0", wantAddr: xbits.Zero(), wantLen: 0},
		{name: "length 128", input: "::1/128",
			wantAddr: g6(0, 0, 0, 0, 0, 0, 0, 1), wantLen: 128},
		{name: "double elision", input: "1::2::3", wantErr: ErrFormat},
		{name: "triple colon", input: ":::", wantErr: ErrFormat},
		{name: "lone colon", input: ":", wantErr: ErrFormat},
		{name: "group too long", input: "12345::", wantErr: ErrFormat},
		{name: "bad hex digit", input: "2001:dg8::1", wantErr: ErrFormat},
		{name: "nine groups", input: "1:2:3:4:5:6:7:8:9", wantErr: ErrFormat},
		{name: "seven groups no elision", input: "1:2:3:4:5:6:7", wantErr: ErrFormat},
		{name: "eight groups plus elision", input: "1:2:3:4:5:6:7:8::", wantErr: ErrFormat},
		{name: "quad not final", input: "::1.2.3.4:5", wantErr: ErrFormat},
		{name: "quad before elision", input: "1.2.3.4::", wantErr: ErrFormat},
		{name: "quad leading zero", input: "::ffff:192.0.02.1", wantErr: ErrFormat},
		{name: "plain quad", input: "192.0.2.1", wantErr: ErrFormat},
		{name: "zone id", input: "fe80::1%eth0", wantErr: ErrFormat},
		{name: "empty", input: "", wantErr: ErrFormat},
		{name: "trailing colon", input: "1::2:", wantErr: ErrFormat},
		{name: "leading colon", input: ":1::2", wantErr: ErrFormat},
		{name: "length out of range", input: "::1/129", wantErr: ErrRange},
		{name: "length non numeric", input: "::1/x", wantErr: ErrFormat},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			addr, length, err := ParseV6(tt.input)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantAddr, addr)
			assert.Equal(t, tt.wantLen, length)
		})
	}
}

func BenchmarkParseV4(b *testing.B) {
	for i := 0; i < b.N; i++ {
		_, _, _ = ParseV4("192.168.1.10/24")
	}
}

func BenchmarkParseV6(b *testing.B) {
	for i := 0; i < b.N; i++ {
		_, _, _ = ParseV6("2001:db8::ffff:192.0.2.128")
	}
}

func TestTextVersion(t *testing.T) {
	assert.Equal(t, V4, TextVersion("192.168.1.1"))
	assert.Equal(t, V4, TextVersion("10.0.0.0/8"))
	assert.Equal(t, V6, TextVersion("2001:db8::1"))
	assert.Equal(t, V6, TextVersion("::ffff:192.0.2.1"))
	assert.Equal(t, V0, TextVersion("not an address"))
	assert.Equal(t, V0, TextVersion(""))
}
