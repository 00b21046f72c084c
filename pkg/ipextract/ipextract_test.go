package ipextract

import (
	"math/rand"
	"net/netip"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func Test_All(t *testing.T) {
	t.Parallel()

	testCases := map[string]struct {
		text      string
		extracted []netip.Addr
	}{
		"empty": {},
		"one_ipv4": {
			text:      "1.2.3.4",
			extracted: []netip.Addr{netip.MustParseAddr("1.2.3.4")},
		},
		"forwarded_for_list": {
			text: "203.0.113.7, 10.0.0.1, 2001:db8::1",
			extracted: []netip.Addr{
				netip.MustParseAddr("203.0.113.7"),
				netip.MustParseAddr("10.0.0.1"),
				netip.MustParseAddr("2001:db8::1"),
			},
		},
		"garbage_and_duplicates": {
			text: " 1.2.3.4 x.x.2.2 5.6.7.8.9 1.2.3.4 ::1",
			extracted: []netip.Addr{
				netip.MustParseAddr("1.2.3.4"),
				netip.MustParseAddr("::1"),
			},
		},
		"ipv4_mapped": {
			text:      "::ffff:1.2.3.4",
			extracted: []netip.Addr{netip.MustParseAddr("1.2.3.4")},
		},
	}

	for name, testCase := range testCases {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			extracted := All(testCase.text)

			assert.Equal(t, testCase.extracted, extracted)
		})
	}
}

func Test_FirstPublic(t *testing.T) {
	t.Parallel()

	testCases := map[string]struct {
		text    string
		address netip.Addr
	}{
		"empty": {},
		"only_private": {
			text: "10.0.0.1, 192.168.1.1, 127.0.0.1, fe80::1",
		},
		"private_then_public": {
			text:    "192.168.1.1, 203.0.113.7",
			address: netip.MustParseAddr("203.0.113.7"),
		},
		"public_ipv6": {
			text:    "2606:4700:4700::1111",
			address: netip.MustParseAddr("2606:4700:4700::1111"),
		},
	}

	for name, testCase := range testCases {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			address := FirstPublic(testCase.text)

			assert.Equal(t, testCase.address, address)
		})
	}
}

func Fuzz_All(f *testing.F) {
	f.Fuzz(func(t *testing.T, ipv6A, ipv6B []byte, ipv4 uint32,
		garbageA, garbageB string) {
		var arrayA, arrayB [16]byte
		copy(arrayA[:], ipv6A)
		copy(arrayB[:], ipv6B)
		ipv4Array := [4]byte{byte(ipv4 >> 24), byte(ipv4 >> 16), byte(ipv4 >> 8), byte(ipv4)}

		text := garbageA +
			netip.AddrFrom16(arrayA).String() +
			garbageB +
			netip.AddrFrom4(ipv4Array).String() +
			garbageA +
			netip.AddrFrom16(arrayB).String()

		_ = All(text)
	})
}

func Benchmark_All(b *testing.B) {
	source := rand.NewSource(time.Now().UnixNano())
	generator := rand.New(source) //nolint:gosec

	text := "garbage " +
		generateIPv6(generator) +
		"::99999" +
		generateIPv6(generator) +
		", 1.2.3.4, " +
		generateIPv6(generator) +
		" fac00"

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = All(text)
	}
}

func generateIPv6(generator *rand.Rand) string {
	ipv6Bytes := make([]byte, 16)
	_, err := generator.Read(ipv6Bytes)
	if err != nil {
		panic(err)
	}
	return netip.AddrFrom16([16]byte(ipv6Bytes)).String()
}
