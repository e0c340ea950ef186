// Package client contains the device side of replication and the local
// database bootstrap.
//
// # Overview
//
//  1. Transport is the push/pull channel a replicator talks to.
//  2. GRPCClient implements it over gRPC with a hand-declared service
//     (ReplicationServiceName). Messages are structpb values, so no generated
//     code is needed. Every call carries the hashed app id in the
//     AppIDHeaderName metadata header.
//  3. InitDatabase opens the document store for the configured engine
//     (SQLite with embedded goose migrations, or Badger) and builds the
//     repositories on top of it.
//
// # Error Handling
//
// gRPC status codes map to sentinel errors matched with errors.Is:
// ErrUnavailable, ErrUnauthorized, ErrBadResponse.
//
// See Also
//
//   - Transport, GRPCClient, RegisterReplicationServer
//   - InitDatabase, OpenSQLite, RunMigrations
package client
