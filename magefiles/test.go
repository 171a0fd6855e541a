// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

//go:build mage

package main

import (
	"fmt"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

// Test groups test targets (all, unit, postgres).
type Test mg.Namespace

// All runs every test with the race detector.
func (Test) All() error {
	return sh.RunV(binGo, "test", "-race", "-v", "./...")
}

// Unit runs the tests in short mode. Postgres tests skip themselves unless
// TEST_DATABASE_URL is set.
func (Test) Unit() error {
	return sh.RunWithV(map[string]string{testDatabaseURLEnv: ""}, binGo, "test", "-short", "./...")
}

// Postgres starts a throwaway Postgres container, runs the store tests
// against it and removes the container.
func (Test) Postgres() error {
	rt := containerRuntime()
	if rt == "" {
		return fmt.Errorf("no usable container runtime (podman or docker)")
	}
	dsn, err := startPostgres(rt)
	if err != nil {
		return err
	}
	defer stopPostgres(rt)

	return sh.RunWithV(map[string]string{testDatabaseURLEnv: dsn}, binGo, "test", "-v", "./internal/store/...")
}
