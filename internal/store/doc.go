// Package store defines the persistence interfaces consumed by the service
// layer, the shared database abstractions (DBTX, RunInTransaction), and the
// error taxonomy all store implementations map their failures onto.
package store
