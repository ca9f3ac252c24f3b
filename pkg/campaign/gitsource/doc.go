// Package gitsource syncs scenario templates from a git repository.
//
// Teams keep campaign manifests and resource documents in a shared
// repository; gitsource maintains a local read-only checkout of it,
// tracking a branch head or a pinned revision. Credentials are inferred
// from the configuration: a token for https remotes, a private key for
// ssh remotes, or none for public repositories.
package gitsource
