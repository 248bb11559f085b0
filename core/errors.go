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

import "errors"

// Domain validation errors
var (
	// ErrEmptyContent indicates a document's content is empty after trimming.
	ErrEmptyContent = errors.New("content cannot be empty")

	// ErrMissingDocumentID indicates a chunk without a parent document reference.
	ErrMissingDocumentID = errors.New("chunk requires a parent document id")

	// ErrInvalidID indicates an ID that does not carry a recognized prefix.
	ErrInvalidID = errors.New("invalid id")
)
