// Copyright 2025 MetrodataTeam
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


package chunk

import (
	"errors"
	"fmt"

	"github.com/pkoukk/tiktoken-go"
)

var (
	// ErrInvalidMaxTokens indicates a non-positive maximum chunk size.
	ErrInvalidMaxTokens = errors.New("max tokens must be positive")

	// ErrOverlapTooLarge indicates an overlap that is not strictly smaller
	// than the maximum chunk size. Such a window never advances.
	ErrOverlapTooLarge = errors.New("overlap must be smaller than max tokens")
)

// Piece is one token-bounded segment of a document. Index is the piece's
// position within the document; consecutive pieces share OverlapTokens
// tokens of context.
type Piece struct {
	Content string
	Tokens  int
	Index   int
}

// Splitter cuts document text into overlapping token windows using a
// tiktoken encoding. A Splitter is immutable and safe for concurrent use.
type Splitter struct {
	enc       *tiktoken.Tiktoken
	maxTokens int
	overlap   int
	modelName string
}

// NewSplitter creates a Splitter for the given tiktoken model name.
// overlap must be strictly smaller than maxTokens; violating either bound
// is a construction-time error, not a runtime surprise.
func NewSplitter(model string, maxTokens, overlap int) (*Splitter, error) {
	if maxTokens <= 0 {
		return nil, ErrInvalidMaxTokens
	}
	if overlap < 0 || overlap >= maxTokens {
		return nil, ErrOverlapTooLarge
	}

	enc, err := tiktoken.EncodingForModel(model)
	if err != nil {
		return nil, fmt.Errorf("loading tiktoken encoding for %q: %w", model, err)
	}

	return &Splitter{
		enc:       enc,
		maxTokens: maxTokens,
		overlap:   overlap,
		modelName: model,
	}, nil
}

// MaxTokens returns the configured maximum chunk size in tokens.
func (s *Splitter) MaxTokens() int {
	return s.maxTokens
}

// Overlap returns the configured overlap size in tokens.
func (s *Splitter) Overlap() int {
	return s.overlap
}

// Split cuts text into pieces of at most MaxTokens tokens. Each piece
// starts maxTokens-overlap tokens after its predecessor; the final piece
// may be shorter. Empty text yields no pieces.
func (s *Splitter) Split(text string) []Piece {
	if text == "" {
		return nil
	}

	tokens := s.enc.Encode(text, nil, nil)
	if len(tokens) == 0 {
		return nil
	}

	step := s.maxTokens - s.overlap
	pieces := make([]Piece, 0, (len(tokens)+step-1)/step)
	for start, i := 0, 0; start < len(tokens); start, i = start+step, i+1 {
		end := min(start+s.maxTokens, len(tokens))
		pieces = append(pieces, Piece{
			Content: s.enc.Decode(tokens[start:end]),
			Tokens:  end - start,
			Index:   i,
		})
	}
	return pieces
}

// CountTokens returns the number of tokens in text under this encoding.
func (s *Splitter) CountTokens(text string) int {
	return len(s.enc.Encode(text, nil, nil))
}
