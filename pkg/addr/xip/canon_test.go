package xip

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpand(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr error
	}{
		{name: "already expanded", input: "2001:0db8:0000:0000:0000:0000:0000:0001",
			want: "2001:0db8:0000:0000:0000:0000:0000:0001"},
		{name: "compressed", input: "2001:db8::1",
			want: "2001:0db8:0000:0000:0000:0000:0000:0001"},
		{name: "sole elision", input: "::",
			want: "0000:0000:0000:0000:0000:0000:0000:0000"},
		{name: "loopback", input: "::1",
			want: "0000:0000:0000:0000:0000:0000:0000:0001"},
		{name: "uppercase input", input: "2001:DB8::A",
			want: "2001:0db8:0000:0000:0000:0000:0000:000a"},
		{name: "mapped quad", input: "::ffff:192.0.2.128",
			want: "0000:0000:0000:0000:0000:ffff:c000:0280"},
		{name: "with length", input: "2001:db8::/32",
			want: "2001:0db8:0000:0000:0000:0000:0000:0000/32"},
		{name: "invalid", input: "2001::db8::1", wantErr: ErrFormat},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Expand(tt.input)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCompress(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr error
	}{
		{name: "expanded to compressed", input: "2001:0db8:0000:0000:0000:0000:0000:0001",
			want: "2001:db8::1"},
		{name: "strip group zeros", input: "2001:0db8:0001:0002:0003:0004:0005:0006",
			want: "2001:db8:1:2:3:4:5:6"},
		{name: "all zero", input: "0:0:0:0:0:0:0:0", want: "::"},
		{name: "run at start", input: "0:0:0:1:2:3:4:5", want: "::1:2:3:4:5"},
		{name: "run at end", input: "1:2:3:4:5:0:0:0", want: "1:2:3:4:5::"},
		{name: "run in middle", input: "1:2:3:0:0:0:4:5", want: "1:2:3::4:5"},
		{name: "longest run wins", input: "1:0:0:2:0:0:0:3", want: "1:0:0:2::3"},
		{name: "tie prefers leftmost", input: "2001:0:0:1:2:0:0:3", want: "2001::1:2:0:0:3"},
		{name: "lone zero not compressed", input: "2001:db8:0:1:1:1:1:1", want: "2001:db8:0:1:1:1:1:1"},
		{name: "uppercase input", input: "2001:0DB8:0000:0000:0000:0000:0000:00A1", want: "2001:db8::a1"},
		{name: "mapped renders quad", input: "::ffff:192.0.2.128", want: "::ffff:192.0.2.128"},
		{name: "mapped from hex groups", input: "0:0:0:0:0:ffff:c000:0280", want: "::ffff:192.0.2.128"},
		{name: "compatible stays hex", input: "::192.0.2.1", want: "::c000:201"},
		{name: "with length", input: "2001:0db8::0001/64", want: "2001:db8::1/64"},
		{name: "invalid", input: "1:2:3", wantErr: ErrFormat},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Compress(tt.input)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func BenchmarkCompress(b *testing.B) {
	for i := 0; i < b.N; i++ {
		_, _ = Compress("2001:0db8:0000:0000:0000:0000:0000:0001")
	}
}

// 规范化幂等性：Compress(Compress(s)) == Compress(s)，
// 且同一比特模式的所有可接受形式压缩结果一致。
func TestCanonicalIdempotence(t *testing.T) {
	forms := [][]string{
		{"2001:0db8:0000:0000:0000:0000:0000:0001", "2001:db8::1", "2001:DB8::1", "2001:db8:0:0:0:0:0:1"},
		{"::ffff:192.0.2.128", "0:0:0:0:0:ffff:c000:0280", "::FFFF:192.0.2.128"},
		{"::", "0:0:0:0:0:0:0:0", "0000:0000:0000:0000:0000:0000:0000:0000"},
		{"fe80::1", "fe80:0:0:0:0:0:0:1"},
	}
	for _, group := range forms {
		canonical, err := Compress(group[0])
		require.NoError(t, err)

		again, err := Compress(canonical)
		require.NoError(t, err)
		assert.Equal(t, canonical, again, "Compress not idempotent for %q", group[0])

		for _, form := range group[1:] {
			got, err := Compress(form)
			require.NoError(t, err)
			assert.Equal(t, canonical, got, "form %q", form)

			expanded, err := Expand(form)
			require.NoError(t, err)
			gotExpanded, err := Expand(group[0])
			require.NoError(t, err)
			assert.Equal(t, gotExpanded, expanded, "Expand disagreement for %q", form)
		}
	}
}
