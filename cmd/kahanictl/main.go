// Copyright (c) 2026 Kahani. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Command kahanictl is the operator CLI for the Kahani catalog.
//
// It reads the same configuration as the API server (environment and an
// optional .env file) and works directly against the catalog document and
// the engagement database, without a running server.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
)

func main() {
	cmd := newRootCommand()
	if err := cmd.Execute(); err != nil {
		if !errors.Is(err, context.Canceled) {
			fmt.Fprintln(os.Stderr, "error:", err)
		}
		os.Exit(1)
	}
}
