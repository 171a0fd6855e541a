//go:build mage

// Package main provides build targets for the shoppr project using Mage.
//
// Usage:
//
//	mage build          Compile the shoppr binary to bin/
//	mage test:all       Run every test
//	mage test:unit      Run tests without the race detector or Postgres
//	mage test:postgres  Run the store tests against a throwaway Postgres container
//	mage lint           Run golangci-lint
//	mage clean          Remove build artifacts
//	mage install        Install shoppr to GOPATH/bin
//	mage stats          Print Go LOC and documentation word counts
package main
