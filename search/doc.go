// Package search provides the evolutionary build recommender.
//
// # Reading Guide
//
// Start with these files to understand the search kernel:
//   - catalog.go: Component records and the read-only, category-indexed Catalog
//   - build.go: Build (one slot per category, explicitly Filled or Unfilled) and the Sampler
//   - fitness.go: budget hard-cut, socket compatibility gate and the fitness score
//   - operators.go: uniform per-gene crossover and single-slot mutation
//   - engine.go: the generational loop with elitism and top-half truncation
//
// # Architecture
//
// The search package has no I/O. Collaborators live in sub-packages:
//   - search/store/: catalog loaders (YAML files, SQLite, MySQL)
//   - search/report/: console tables and CSV/JSON export of a Result
//
// # Determinism
//
// All randomness comes from a PartitionedRNG passed to Run. Each operator owns
// its own stream, and parallel fitness evaluation draws no randomness, so the
// same SearchKey, catalog and Config give the same Result for any worker count.
package search
