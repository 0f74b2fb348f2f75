// Package util provides helper data structures for store implementations.
package util
