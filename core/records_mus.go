package core

import (
	"time"

	"github.com/mus-format/mus-go/ord"
	"github.com/mus-format/mus-go/varint"
)

// Hand-written MUS serializers for the domain records. Field order is part
// of the on-disk format and must not change without a storage migration.
var (
	IDMUS             = idMUS{}
	DocumentMUS       = documentMUS{}
	ChunkMUS          = chunkMUS{}
	ChunkEmbeddingMUS = chunkEmbeddingMUS{}

	vectorMUS = ord.NewSliceSer[float32](varint.Float32)
)

type idMUS struct{}

func (idMUS) Marshal(v ID, bs []byte) (n int) {
	return ord.String.Marshal(string(v), bs)
}

func (idMUS) Unmarshal(bs []byte) (v ID, n int, err error) {
	s, n, err := ord.String.Unmarshal(bs)
	return ID(s), n, err
}

func (idMUS) Size(v ID) (size int) {
	return ord.String.Size(string(v))
}

func (idMUS) Skip(bs []byte) (n int, err error) {
	return ord.String.Skip(bs)
}

// Timestamps are stored as Unix microseconds.
type timeMicroMUS struct{}

var timeMUS = timeMicroMUS{}

func (timeMicroMUS) Marshal(v time.Time, bs []byte) (n int) {
	return varint.Int64.Marshal(v.UnixMicro(), bs)
}

func (timeMicroMUS) Unmarshal(bs []byte) (v time.Time, n int, err error) {
	micro, n, err := varint.Int64.Unmarshal(bs)
	if err != nil {
		return
	}
	return time.UnixMicro(micro).UTC(), n, nil
}

func (timeMicroMUS) Size(v time.Time) (size int) {
	return varint.Int64.Size(v.UnixMicro())
}

func (timeMicroMUS) Skip(bs []byte) (n int, err error) {
	return varint.Int64.Skip(bs)
}

type documentMUS struct{}

func (documentMUS) Marshal(v Document, bs []byte) (n int) {
	n = IDMUS.Marshal(v.Id, bs)
	n += ord.String.Marshal(v.Content, bs[n:])
	n += timeMUS.Marshal(v.InsertedAt, bs[n:])
	return
}

func (documentMUS) Unmarshal(bs []byte) (v Document, n int, err error) {
	var n1 int
	v.Id, n, err = IDMUS.Unmarshal(bs)
	if err != nil {
		return
	}
	v.Content, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.InsertedAt, n1, err = timeMUS.Unmarshal(bs[n:])
	n += n1
	return
}

func (documentMUS) Size(v Document) (size int) {
	size = IDMUS.Size(v.Id)
	size += ord.String.Size(v.Content)
	size += timeMUS.Size(v.InsertedAt)
	return
}

func (documentMUS) Skip(bs []byte) (n int, err error) {
	var n1 int
	n, err = IDMUS.Skip(bs)
	if err != nil {
		return
	}
	n1, err = ord.String.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = timeMUS.Skip(bs[n:])
	n += n1
	return
}

type chunkMUS struct{}

func (chunkMUS) Marshal(v Chunk, bs []byte) (n int) {
	n = IDMUS.Marshal(v.Id, bs)
	n += IDMUS.Marshal(v.FullDocId, bs[n:])
	n += ord.String.Marshal(v.Content, bs[n:])
	n += varint.Int.Marshal(v.Tokens, bs[n:])
	n += varint.Int.Marshal(v.Order, bs[n:])
	n += timeMUS.Marshal(v.InsertedAt, bs[n:])
	return
}

func (chunkMUS) Unmarshal(bs []byte) (v Chunk, n int, err error) {
	var n1 int
	v.Id, n, err = IDMUS.Unmarshal(bs)
	if err != nil {
		return
	}
	v.FullDocId, n1, err = IDMUS.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Content, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Tokens, n1, err = varint.Int.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Order, n1, err = varint.Int.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.InsertedAt, n1, err = timeMUS.Unmarshal(bs[n:])
	n += n1
	return
}

func (chunkMUS) Size(v Chunk) (size int) {
	size = IDMUS.Size(v.Id)
	size += IDMUS.Size(v.FullDocId)
	size += ord.String.Size(v.Content)
	size += varint.Int.Size(v.Tokens)
	size += varint.Int.Size(v.Order)
	size += timeMUS.Size(v.InsertedAt)
	return
}

func (chunkMUS) Skip(bs []byte) (n int, err error) {
	var n1 int
	n, err = IDMUS.Skip(bs)
	if err != nil {
		return
	}
	for range 2 {
		n1, err = ord.String.Skip(bs[n:])
		n += n1
		if err != nil {
			return
		}
	}
	for range 2 {
		n1, err = varint.Int.Skip(bs[n:])
		n += n1
		if err != nil {
			return
		}
	}
	n1, err = timeMUS.Skip(bs[n:])
	n += n1
	return
}

type chunkEmbeddingMUS struct{}

func (chunkEmbeddingMUS) Marshal(v ChunkEmbedding, bs []byte) (n int) {
	n = IDMUS.Marshal(v.ChunkId, bs)
	n += IDMUS.Marshal(v.FullDocId, bs[n:])
	n += ord.String.Marshal(v.Content, bs[n:])
	n += vectorMUS.Marshal(v.Vector, bs[n:])
	return
}

func (chunkEmbeddingMUS) Unmarshal(bs []byte) (v ChunkEmbedding, n int, err error) {
	var n1 int
	v.ChunkId, n, err = IDMUS.Unmarshal(bs)
	if err != nil {
		return
	}
	v.FullDocId, n1, err = IDMUS.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Content, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Vector, n1, err = vectorMUS.Unmarshal(bs[n:])
	n += n1
	return
}

func (chunkEmbeddingMUS) Size(v ChunkEmbedding) (size int) {
	size = IDMUS.Size(v.ChunkId)
	size += IDMUS.Size(v.FullDocId)
	size += ord.String.Size(v.Content)
	size += vectorMUS.Size(v.Vector)
	return
}

func (chunkEmbeddingMUS) Skip(bs []byte) (n int, err error) {
	var n1 int
	n, err = IDMUS.Skip(bs)
	if err != nil {
		return
	}
	for range 2 {
		n1, err = ord.String.Skip(bs[n:])
		n += n1
		if err != nil {
			return
		}
	}
	n1, err = vectorMUS.Skip(bs[n:])
	n += n1
	return
}
