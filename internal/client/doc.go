// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package client implements the admin console application runtime.
//
// It runs the terminal UI together with the optional embedded mock backend
// and releases the session and mock stores on exit.
package client
