// Package chunk splits document text into overlapping token-bounded
// segments. Splitting depends only on the tokenizer's encode/decode
// contract: for a given model name the mapping between text and token
// sequences is deterministic, so a document can be re-chunked identically
// at any time.
package chunk
