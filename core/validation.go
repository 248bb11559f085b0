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


package core

import (
	"fmt"
	"strings"
)

// ValidateDocument validates a Document according to domain rules.
//
// Validation rules:
//   - Id must carry the document prefix
//   - Content must not be empty or whitespace-only
func ValidateDocument(doc *Document) error {
	if doc == nil {
		return fmt.Errorf("%w: document is nil", ErrInvalidID)
	}

	if !strings.HasPrefix(string(doc.Id), DocumentIDPrefix) {
		return fmt.Errorf("%w: %q is not a document id", ErrInvalidID, doc.Id)
	}

	if strings.TrimSpace(doc.Content) == "" {
		return ErrEmptyContent
	}

	return nil
}

// ValidateChunk validates a Chunk according to domain rules.
//
// Validation rules:
//   - Id must carry the chunk prefix
//   - FullDocId must carry the document prefix
//   - Content must not be empty or whitespace-only
//
// NOT validated:
//   - Tokens and Order (set by the splitter, zero is valid)
func ValidateChunk(chunk *Chunk) error {
	if chunk == nil {
		return fmt.Errorf("%w: chunk is nil", ErrInvalidID)
	}

	if !strings.HasPrefix(string(chunk.Id), ChunkIDPrefix) {
		return fmt.Errorf("%w: %q is not a chunk id", ErrInvalidID, chunk.Id)
	}

	if chunk.FullDocId == "" {
		return ErrMissingDocumentID
	}
	if !strings.HasPrefix(string(chunk.FullDocId), DocumentIDPrefix) {
		return fmt.Errorf("%w: %q is not a document id", ErrInvalidID, chunk.FullDocId)
	}

	if strings.TrimSpace(chunk.Content) == "" {
		return ErrEmptyContent
	}

	return nil
}
