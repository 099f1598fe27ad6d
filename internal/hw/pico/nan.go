//go:build tinygo

package pico

import "math"

func nan() float32 { return float32(math.NaN()) }
