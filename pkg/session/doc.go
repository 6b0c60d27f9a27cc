// Package session serializes access to journey contexts. The traversal core
// assumes a single writer per context; this manager provides that guarantee
// with per-journey reference-counted locks inside one process and an
// optional distributed lock across replicas.
package session
