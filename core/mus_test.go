package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIndexEntryRoundTrip(t *testing.T) {
	entry := IndexEntry{
		Vector: []float32{0.25, -1.5, 0.0, 3.125},
		Chunk: PassageChunk{
			Id:     IDFromContent("test chunk"),
			Text:   "And seek help through patience and prayer [2:45]",
			Start:  100,
			End:    148,
			Seq:    7,
			Source: "quran_en.txt",
			Ref:    &VerseRef{Surah: 2, Ayah: 45},
		},
	}

	bs := make([]byte, IndexEntryMUS.Size(entry))
	n := IndexEntryMUS.Marshal(entry, bs)
	require.Equal(t, len(bs), n)

	decoded, n, err := IndexEntryMUS.Unmarshal(bs)
	require.NoError(t, err)
	assert.Equal(t, len(bs), n)
	assert.Equal(t, entry, decoded)
}

func TestPassageChunkRoundTrip_NilRef(t *testing.T) {
	chunk := PassageChunk{
		Id:    IDFromContent("no marker"),
		Text:  "a passage without any verse marker",
		Start: 0,
		End:   34,
	}

	bs := make([]byte, PassageChunkMUS.Size(chunk))
	PassageChunkMUS.Marshal(chunk, bs)

	decoded, _, err := PassageChunkMUS.Unmarshal(bs)
	require.NoError(t, err)
	assert.Equal(t, chunk, decoded)
	assert.Nil(t, decoded.Ref)
}

func TestIndexEntrySkip(t *testing.T) {
	entry := IndexEntry{
		Vector: []float32{1, 2, 3},
		Chunk: PassageChunk{
			Id:    42,
			Text:  "passage",
			Start: 0,
			End:   7,
		},
	}

	bs := make([]byte, IndexEntryMUS.Size(entry))
	IndexEntryMUS.Marshal(entry, bs)

	n, err := IndexEntryMUS.Skip(bs)
	require.NoError(t, err)
	assert.Equal(t, len(bs), n)
}

func TestUnmarshalTruncatedData(t *testing.T) {
	entry := IndexEntry{
		Vector: []float32{1, 2, 3},
		Chunk:  PassageChunk{Id: 1, Text: "passage", Start: 0, End: 7},
	}
	bs := make([]byte, IndexEntryMUS.Size(entry))
	IndexEntryMUS.Marshal(entry, bs)

	_, _, err := IndexEntryMUS.Unmarshal(bs[:len(bs)/2])
	assert.Error(t, err)
}
