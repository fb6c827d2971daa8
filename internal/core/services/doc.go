// Package services implements the core retrieval use cases: batched
// embedding generation, cosine-similarity retrieval, grounded answer
// generation, and the retrieval service that composes them.
package services
