package magnetlink

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func paramFromSegment(t *testing.T, segment string) QueryParam {
	t.Helper()

	params := collectParams(ParamsOf(segment))
	assert.Len(t, params, 1)

	return params[0]
}

func Test_IsExactTopic(t *testing.T) {
	tests := []struct {
		name     string
		segment  string
		expected bool
	}{
		{
			name:     "plain xt key",
			segment:  "xt=urn:btih:abc",
			expected: true,
		},
		{
			name:     "numbered xt key",
			segment:  "xt.1=urn:btih:abc",
			expected: true,
		},
		{
			name:     "multi digit numbered xt key",
			segment:  "xt.42=urn:btih:abc",
			expected: true,
		},
		{
			name:     "encoded xt key",
			segment:  "%78%74=urn:btih:abc",
			expected: true,
		},
		{
			name:     "dot without digits is rejected",
			segment:  "xt.=urn:btih:abc",
			expected: false,
		},
		{
			name:     "non-digit suffix is rejected",
			segment:  "xt.a=urn:btih:abc",
			expected: false,
		},
		{
			name:     "digits without dot are rejected",
			segment:  "xt1=urn:btih:abc",
			expected: false,
		},
		{
			name:     "xt as a prefix of a longer key is rejected",
			segment:  "xtra=urn:btih:abc",
			expected: false,
		},
		{
			name:     "unrelated key is rejected",
			segment:  "dn=name",
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, IsExactTopic(paramFromSegment(t, tt.segment)))
		})
	}
}

func Test_IsURLWithKey_AcceptsMatchingKeyWithValidURL(t *testing.T) {
	var buf bytes.Buffer
	accepts := IsURLWithKey("tr", &buf)

	p := paramFromSegment(t, "tr=udp%3A%2F%2Ftracker.example.com%3A80")

	assert.True(t, accepts(p))
	assert.Equal(t, "udp://tracker.example.com:80", buf.String())
}

func Test_IsURLWithKey_KeyMismatchLeavesTheBufferUntouched(t *testing.T) {
	var buf bytes.Buffer
	buf.WriteString("previous decode")
	accepts := IsURLWithKey("tr", &buf)

	p := paramFromSegment(t, "xs=http%3A%2F%2Fcache.example.com%2Ffile")

	assert.False(t, accepts(p))
	assert.Equal(t, "previous decode", buf.String())
}

func Test_IsURLWithKey_RejectsValueThatIsNotAnAbsoluteURL(t *testing.T) {
	var buf bytes.Buffer
	accepts := IsURLWithKey("tr", &buf)

	assert.False(t, accepts(paramFromSegment(t, "tr=not-a-url")))
	assert.False(t, accepts(paramFromSegment(t, "tr=%zz")))
}

func Test_ToURL_ReturnsTheParsedTopicValue(t *testing.T) {
	p := paramFromSegment(t, "xt=urn:btih:c12fe1c06bba254a9dc9f519b335aa7c1367a88a")

	u := ToURL(p)

	assert.Equal(t, "urn", u.Scheme)
	assert.Equal(t, "urn:btih:c12fe1c06bba254a9dc9f519b335aa7c1367a88a", u.String())
}

func Test_ToURL_PanicsOnUnvalidatedValue(t *testing.T) {
	p := paramFromSegment(t, "xt=no-scheme-here")

	assert.Panics(t, func() {
		_ = ToURL(p)
	})
}

func Test_ToInfoHash_And_ToProtocol_SplitAtTheLastColon(t *testing.T) {
	p := paramFromSegment(t, "xt=urn:btih:c12fe1c06bba254a9dc9f519b335aa7c1367a88a")

	assert.Equal(t, InfoHashString("c12fe1c06bba254a9dc9f519b335aa7c1367a88a"), ToInfoHash(p))
	assert.Equal(t, ProtocolString("urn:btih"), ToProtocol(p))
}

func Test_SplitTopic_WithoutColonYieldsAnEmptyProtocol(t *testing.T) {
	protocol, infoHash := SplitTopic("justahash")

	assert.Equal(t, ProtocolString(""), protocol)
	assert.Equal(t, InfoHashString("justahash"), infoHash)
}
