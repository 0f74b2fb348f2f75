// Package resp implements the subset of the RESP2 wire protocol needed to talk
// to a Redis-compatible store: encoding command token lists as arrays of bulk
// strings, and reading and writing the five RESP2 reply types.
//
// The package focuses on:
//   - Deterministic encoding: identical token lists always produce identical bytes
//   - Argument conversion shared by MarshalCommand and the executor, whose redis
//     client only frames the converted arguments
//   - Strict command parsing on the server side: an array of bulk strings only
//
// Key Components:
//
//   - Value: A decoded RESP value (simple string, error, integer, bulk string or
//     array, with null variants for bulk strings and arrays).
//
//   - MarshalCommand / FormatArgs / ReadCommand: Command encoding, argument
//     conversion and command parsing for the server.
//
//   - MarshalValue / ReadValue: Reply encoding for the server and reply parsing.
//
//   - EncodingError: Wraps every encoding and decoding failure with the step it
//     happened in. ServerError represents an error reply sent by the store.
package resp
