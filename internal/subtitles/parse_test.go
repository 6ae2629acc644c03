package subtitles

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSegmentsFromJSON3(t *testing.T) {
	data := []byte(`{
		"wireMagic": "pb3",
		"events": [
			{"tStartMs": 0, "dDurationMs": 5000, "id": 1, "wpWinPosId": 1},
			{"tStartMs": 120, "dDurationMs": 2880, "segs": [{"utf8": "salut"}, {"utf8": " à", "tOffsetMs": 400}, {"utf8": " tous", "tOffsetMs": 800}]},
			{"tStartMs": 3000, "dDurationMs": 10, "aAppend": 1, "segs": [{"utf8": "\n"}]},
			{"tStartMs": 3010, "dDurationMs": 1990, "segs": [{"utf8": "deuxième ligne"}]}
		]
	}`)

	segs, err := SegmentsFromJSON3(data)
	require.NoError(t, err)
	require.Len(t, segs, 2)

	assert.InDelta(t, 0.12, segs[0].Start, 1e-9)
	assert.InDelta(t, 2.88, segs[0].Duration, 1e-9)
	assert.Equal(t, "salut à tous", segs[0].Text)
	assert.InDelta(t, 3.01, segs[1].Start, 1e-9)
	assert.Equal(t, "deuxième ligne", segs[1].Text)
}

func TestSegmentsFromJSON3Errors(t *testing.T) {
	_, err := SegmentsFromJSON3(nil)
	assert.Error(t, err)

	_, err = SegmentsFromJSON3([]byte("<transcript/>"))
	assert.Error(t, err)
}

func TestIsNewlineOnly(t *testing.T) {
	assert.True(t, rawEvent{Segs: []rawSeg{{Utf8: "\n"}}}.IsNewlineOnly())
	assert.True(t, rawEvent{Segs: []rawSeg{{Utf8: "\\n"}, {Utf8: " "}}}.IsNewlineOnly())
	assert.False(t, rawEvent{Segs: []rawSeg{{Utf8: "\n"}, {Utf8: "mot"}}}.IsNewlineOnly())
	assert.False(t, rawEvent{}.IsNewlineOnly())
}
