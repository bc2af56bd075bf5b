// Package util provides small helpers shared by the source connectors:
// human-readable size parsing for record limits and secret masking for
// connection strings in logs.
package util
