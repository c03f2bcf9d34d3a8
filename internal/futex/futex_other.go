//go:build !linux

package futex

var defaultBlocker Blocker = NewParkingTable()
