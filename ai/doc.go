// Package ai defines the interfaces for the external model collaborators:
// completion models (a best and a cheap variant) and a text embedder.
//
// Implementations live in subpackages (openai for OpenAI-compatible
// services, mock for testing). LimitCompleter and LimitEmbedder compose a
// concurrency bound around any implementation; the orchestrator applies a
// separate limiter per collaborator at construction time.
package ai
