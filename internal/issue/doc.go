// SPDX-License-Identifier: MPL-2.0

// Package issue provides actionable error handling with user-friendly messages.
//
// This package defines error types that include remediation steps, plus the
// registry of known detection rule codes with Markdown-formatted guidance
// rendered by the explain command.
package issue
