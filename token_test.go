package httpparse

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTrimOWS(t *testing.T) {
	assert.Equal(t, "abc", string(trimOWS([]byte("  abc \t"))))
	assert.Equal(t, "", string(trimOWS([]byte("   "))))
	assert.Equal(t, "a b", string(trimOWS([]byte(" a b "))))
}

func TestForEachCommaToken(t *testing.T) {
	var got []string
	forEachCommaToken([]byte("gzip, chunked ,, identity"), func(tok []byte) {
		got = append(got, string(tok))
	})
	assert.Equal(t, []string{"gzip", "chunked", "identity"}, got)
}

func TestLastCommaToken(t *testing.T) {
	assert.Equal(t, "chunked", string(lastCommaToken([]byte("gzip, chunked"))))
	assert.Nil(t, lastCommaToken([]byte("")))
}

func TestContainsCommaToken(t *testing.T) {
	assert.True(t, containsCommaToken([]byte("Keep-Alive, Close"), []byte("close")))
	assert.False(t, containsCommaToken([]byte("Keep-Alive"), []byte("close")))
}

func TestParseDecimalUint(t *testing.T) {
	tests := []struct {
		in      string
		want    int64
		wantOk  bool
		comment string
	}{
		{"0", 0, true, "zero"},
		{"123", 123, true, "typical"},
		{"", 0, false, "empty"},
		{"12a", 0, false, "trailing junk"},
		{"-1", 0, false, "sign not allowed"},
		{"99999999999999999999", 0, false, "overflow"},
	}
	for _, tc := range tests {
		t.Run(tc.comment, func(t *testing.T) {
			v, ok := parseDecimalUint([]byte(tc.in))
			assert.Equal(t, tc.wantOk, ok)
			if tc.wantOk {
				assert.Equal(t, tc.want, v)
			}
		})
	}
}

func TestParseHexUint(t *testing.T) {
	tests := []struct {
		in     string
		want   uint64
		wantOk bool
	}{
		{"0", 0, true},
		{"ff", 255, true},
		{"FF", 255, true},
		{"1A2b", 0x1a2b, true},
		{"", 0, false},
		{"xyz", 0, false},
	}
	for _, tc := range tests {
		v, ok := parseHexUint([]byte(tc.in))
		assert.Equal(t, tc.wantOk, ok, tc.in)
		if tc.wantOk {
			assert.Equal(t, tc.want, v, tc.in)
		}
	}
}
