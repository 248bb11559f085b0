package badger

import "github.com/MetrodataTeam/nano-graphrag/core"

// Well-known namespaces. KV stores and the vector store live in one
// BadgerDB instance and are partitioned by key prefix.
const (
	NamespaceFullDocs   = "full_docs"
	NamespaceTextChunks = "text_chunks"

	vectorPrefix = "vec"
)

// makeRecordKey generates a namespaced key for a KV record.
// Format: namespace:id
func makeRecordKey(namespace string, id core.ID) []byte {
	buf := make([]byte, 0, len(namespace)+1+len(id))
	buf = append(buf, namespace...)
	buf = append(buf, ':')
	buf = append(buf, id...)
	return buf
}

// makeNamespacePrefix generates the iteration prefix for a namespace.
func makeNamespacePrefix(namespace string) []byte {
	return []byte(namespace + ":")
}

// makeVectorKey generates a key for an indexed chunk embedding.
// Format: vec:namespace:chunkID
func makeVectorKey(namespace string, id core.ID) []byte {
	return makeRecordKey(vectorPrefix+":"+namespace, id)
}

// makeVectorPrefix generates the iteration prefix for a vector namespace.
func makeVectorPrefix(namespace string) []byte {
	return makeNamespacePrefix(vectorPrefix + ":" + namespace)
}

// recordIDFromKey extracts the record id from a namespaced key.
func recordIDFromKey(prefix, key []byte) core.ID {
	return core.ID(key[len(prefix):])
}
