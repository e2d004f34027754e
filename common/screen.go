package common

// Base render resolution; the window scales this up.
const (
	BaseWidth  = 960
	BaseHeight = 480
)
