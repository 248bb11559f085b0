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


// Package storage provides the storage abstraction layer for nano-graphrag.
//
// The package defines two collaborator contracts consumed by the
// orchestrator and the ingestion pipeline:
//
//   - KVStore: namespaced key-value storage with an upsert(mapping) contract,
//     generic over the record type. The system uses two namespaces,
//     "full_docs" for documents and "text_chunks" for chunks.
//   - VectorStore: embeds chunk text through an injected embedding
//     collaborator and indexes the vectors for similarity search.
//
// Implementations live in subpackages; the badger subpackage persists all
// namespaces in a single BadgerDB instance under the orchestrator's
// working directory. Constructors return interfaces so alternative
// backends can be plugged into the orchestrator's configuration without
// touching callers.
//
// All implementations must be thread-safe. There is no cross-store
// transaction: callers that upsert to several stores in sequence get no
// atomicity across them.
package storage
