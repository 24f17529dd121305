//go:build !debug

package hsm

const debugAssertions = false
