// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package core

import (
	"github.com/mus-format/mus-go/ord"
	"github.com/mus-format/mus-go/raw"
	"github.com/mus-format/mus-go/varint"
)

// Hand-written MUS serializers for the types the storage layer persists.
// Vectors use the raw float32 encoding (4 bytes per component) so the
// persisted form round-trips bit-exactly.
var (
	IDMUS           = idMUS{}
	VerseRefMUS     = verseRefMUS{}
	PassageChunkMUS = passageChunkMUS{}
	IndexEntryMUS   = indexEntryMUS{}

	vectorMUS = ord.NewSliceSer[float32](raw.Float32)
	refMUS    = ord.NewPtrSer[VerseRef](verseRefMUS{})
)

type idMUS struct{}

func (idMUS) Marshal(id ID, bs []byte) int {
	return varint.Uint64.Marshal(uint64(id), bs)
}

func (idMUS) Unmarshal(bs []byte) (ID, int, error) {
	v, n, err := varint.Uint64.Unmarshal(bs)
	return ID(v), n, err
}

func (idMUS) Size(id ID) int {
	return varint.Uint64.Size(uint64(id))
}

func (idMUS) Skip(bs []byte) (int, error) {
	return varint.Uint64.Skip(bs)
}

type verseRefMUS struct{}

func (verseRefMUS) Marshal(ref VerseRef, bs []byte) (n int) {
	n = varint.Int.Marshal(ref.Surah, bs)
	n += varint.Int.Marshal(ref.Ayah, bs[n:])
	return
}

func (verseRefMUS) Unmarshal(bs []byte) (ref VerseRef, n int, err error) {
	ref.Surah, n, err = varint.Int.Unmarshal(bs)
	if err != nil {
		return
	}
	var n1 int
	ref.Ayah, n1, err = varint.Int.Unmarshal(bs[n:])
	n += n1
	return
}

func (verseRefMUS) Size(ref VerseRef) int {
	return varint.Int.Size(ref.Surah) + varint.Int.Size(ref.Ayah)
}

func (verseRefMUS) Skip(bs []byte) (n int, err error) {
	n, err = varint.Int.Skip(bs)
	if err != nil {
		return
	}
	var n1 int
	n1, err = varint.Int.Skip(bs[n:])
	n += n1
	return
}

type passageChunkMUS struct{}

func (passageChunkMUS) Marshal(chunk PassageChunk, bs []byte) (n int) {
	n = IDMUS.Marshal(chunk.Id, bs)
	n += ord.String.Marshal(chunk.Text, bs[n:])
	n += varint.Int.Marshal(chunk.Start, bs[n:])
	n += varint.Int.Marshal(chunk.End, bs[n:])
	n += varint.Int.Marshal(chunk.Seq, bs[n:])
	n += ord.String.Marshal(chunk.Source, bs[n:])
	n += refMUS.Marshal(chunk.Ref, bs[n:])
	return
}

func (passageChunkMUS) Unmarshal(bs []byte) (chunk PassageChunk, n int, err error) {
	var n1 int
	chunk.Id, n, err = IDMUS.Unmarshal(bs)
	if err != nil {
		return
	}
	chunk.Text, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	chunk.Start, n1, err = varint.Int.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	chunk.End, n1, err = varint.Int.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	chunk.Seq, n1, err = varint.Int.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	chunk.Source, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	chunk.Ref, n1, err = refMUS.Unmarshal(bs[n:])
	n += n1
	return
}

func (passageChunkMUS) Size(chunk PassageChunk) int {
	return IDMUS.Size(chunk.Id) +
		ord.String.Size(chunk.Text) +
		varint.Int.Size(chunk.Start) +
		varint.Int.Size(chunk.End) +
		varint.Int.Size(chunk.Seq) +
		ord.String.Size(chunk.Source) +
		refMUS.Size(chunk.Ref)
}

func (passageChunkMUS) Skip(bs []byte) (n int, err error) {
	var n1 int
	n, err = IDMUS.Skip(bs)
	if err != nil {
		return
	}
	for _, skip := range []func([]byte) (int, error){
		ord.String.Skip, varint.Int.Skip, varint.Int.Skip,
		varint.Int.Skip, ord.String.Skip, refMUS.Skip,
	} {
		n1, err = skip(bs[n:])
		n += n1
		if err != nil {
			return
		}
	}
	return
}

type indexEntryMUS struct{}

func (indexEntryMUS) Marshal(entry IndexEntry, bs []byte) (n int) {
	n = vectorMUS.Marshal(entry.Vector, bs)
	n += PassageChunkMUS.Marshal(entry.Chunk, bs[n:])
	return
}

func (indexEntryMUS) Unmarshal(bs []byte) (entry IndexEntry, n int, err error) {
	entry.Vector, n, err = vectorMUS.Unmarshal(bs)
	if err != nil {
		return
	}
	var n1 int
	entry.Chunk, n1, err = PassageChunkMUS.Unmarshal(bs[n:])
	n += n1
	return
}

func (indexEntryMUS) Size(entry IndexEntry) int {
	return vectorMUS.Size(entry.Vector) + PassageChunkMUS.Size(entry.Chunk)
}

func (indexEntryMUS) Skip(bs []byte) (n int, err error) {
	n, err = vectorMUS.Skip(bs)
	if err != nil {
		return
	}
	var n1 int
	n1, err = PassageChunkMUS.Skip(bs[n:])
	n += n1
	return
}
