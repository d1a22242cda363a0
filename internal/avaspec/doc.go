// Package avaspec decodes binary spectrum files written by Avantes
// AvaSoft 8: regular AVS multichannel files (one spectrum per channel) and
// STR store-to-RAM files (a kinetic series of frames from one channel).
//
// Decoding is a pure function of an in-memory byte buffer. Each call owns
// its own cursor and returns an immutable container, so separate
// goroutines may decode separate buffers with no coordination. The decoder
// never retains the input buffer past the call.
package avaspec
