// Package common contains small helpers shared across client layers.
package common

// WipeByteArray overwrites the contents of b with zeros. Used to remove
// passwords from memory after they have been sent to the server.
//
// If the slice is nil, the function does nothing.
func WipeByteArray(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
