package core

import (
	"encoding/binary"
	"fmt"
	"time"

	"github.com/go-crypt/x/blake2b"
)

// ID is a unique identifier for domain entities.
// It is generated using content-based hashing so that identical content
// always produces identical IDs.
type ID uint64

// IDFromContent generates a deterministic ID from text content using BLAKE2b hashing.
func IDFromContent(text string) ID {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(text))
	sum := h.Sum(nil)
	return ID(binary.LittleEndian.Uint64(sum))
}

// VerseRef is a structured citation pointing into the source text,
// expressed as division:unit (surah:ayah).
type VerseRef struct {
	Surah int
	Ayah  int
}

// String renders the reference in its canonical "surah:ayah" form.
func (r VerseRef) String() string {
	return fmt.Sprintf("%d:%d", r.Surah, r.Ayah)
}

// SourceDocument is the immutable raw text given to ingestion,
// together with its origin identifier.
type SourceDocument struct {
	Name string
	Text string
}

// PassageChunk is a bounded contiguous slice of source text, the atomic
// retrieval unit. Start and End are rune offsets into the source text.
// Ref is the first verse marker found within the chunk, if any; a passage
// may legitimately span multiple references, and tagging the first one is
// the documented attribution policy.
type PassageChunk struct {
	Id     ID
	Text   string
	Start  int
	End    int
	Seq    int    // position of the chunk within its document, 0-based
	Source string // origin document name (populated by ingestion)
	Ref    *VerseRef
}

// IndexEntry pairs a passage chunk with its embedding vector.
// Entries are append-only during the build phase and never mutated after
// insertion into a VectorIndex.
type IndexEntry struct {
	Vector []float32
	Chunk  PassageChunk
}

// RetrievedPassage is one similarity-search hit: a chunk and its
// Euclidean distance to the query vector (lower = more relevant).
type RetrievedPassage struct {
	Chunk    PassageChunk
	Distance float64
}

// QueryIntent is the classified category of a user query. It is a closed
// set; classification resolves overlapping cues by a fixed priority order
// (IntentVerseLookup > IntentHistoricalContext > IntentInterpretation >
// IntentGeneral).
type QueryIntent int

const (
	// IntentGeneral is the fallback intent when no cue matches.
	IntentGeneral QueryIntent = iota
	// IntentVerseLookup asks for passages from the indexed source text.
	IntentVerseLookup
	// IntentHistoricalContext asks about circumstances of revelation.
	IntentHistoricalContext
	// IntentInterpretation asks for scholarly interpretation (tafsir).
	IntentInterpretation
)

// String returns the intent name used in logs and routing rationales.
func (i QueryIntent) String() string {
	switch i {
	case IntentVerseLookup:
		return "verse_lookup"
	case IntentHistoricalContext:
		return "historical_context"
	case IntentInterpretation:
		return "interpretation"
	default:
		return "general"
	}
}

// RoutingPlan names the retrieval paths to invoke for a classified query.
type RoutingPlan struct {
	Intent           QueryIntent
	UseRetriever     bool
	UseContextSearch bool
	Rationale        string
}

// ContextSource is one ranked snippet returned by the external
// context-search collaborator.
type ContextSource struct {
	Title   string
	Snippet string
	URL     string
	Score   float64
}

// Answer is the structured result of one query, with provenance.
// Annotations record degradations applied while answering (retrieval
// unavailable, a collaborator failing, no grounded sources).
type Answer struct {
	Text        string
	Citations   []VerseRef
	Sources     []ContextSource
	Intent      QueryIntent
	Annotations []string
	Latency     time.Duration
}

// Degraded reports whether any degradation annotation was applied.
func (a *Answer) Degraded() bool {
	return len(a.Annotations) > 0
}
