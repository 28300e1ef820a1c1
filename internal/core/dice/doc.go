// Package dice rolls dice against an injectable random source.
//
// Engine code never calls an ambient random function. Every roll goes through
// a Source so callers can seed it for replays or fix faces in tests.
package dice
