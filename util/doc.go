// Package util holds small helpers shared by the depbatch packages.
package util
