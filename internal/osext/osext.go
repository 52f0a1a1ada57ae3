// Package osext provides some helpful os functions.
package osext
