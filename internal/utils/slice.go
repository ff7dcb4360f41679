package utils

import (
	"github.com/duke-git/lancet/v2/slice"
)

// SliceContains reports whether s contains item.
func SliceContains[T comparable](s []T, item T) bool {
	return slice.Contain(s, item)
}

// SliceMap maps every element through fn.
func SliceMap[T any, U any](s []T, fn func(index int, item T) U) []U {
	return slice.Map(s, fn)
}

// SliceFilter keeps the elements fn accepts.
func SliceFilter[T any](s []T, fn func(index int, item T) bool) []T {
	return slice.Filter(s, fn)
}
