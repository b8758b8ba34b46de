// Package ports defines the interfaces that connect the cleaning pipeline
// (internal/app) to infrastructure adapters (internal/adapters).
//
// # Port Interfaces
//
//   - [DocumentStore]: loads and overwrites the environment file
//   - [Locker]: optional advisory lock held for the duration of a run
//
// The pipeline depends only on these interfaces, so it can be tested against
// in-memory documents without touching the filesystem.
package ports
