// Package ports defines the interfaces between the journey core and its
// infrastructure collaborators: context persistence and distributed locking.
// Adapters implement them; RunContextStoreContract verifies an
// implementation against the expected semantics.
package ports
