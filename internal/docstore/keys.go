package docstore

import "strings"

const GlobalKeyPrefix = "quizadmin"

// DocumentKey builds the Redis key that holds a single document.
func DocumentKey(collection, key string) string {
	return strings.Join([]string{GlobalKeyPrefix, "doc", collection, key}, ":")
}

// CollectionKey builds the Redis key of the set indexing a collection's
// document keys.
func CollectionKey(collection string) string {
	return strings.Join([]string{GlobalKeyPrefix, "collection", collection}, ":")
}
