// Package fixture maps named lighting devices onto channel ranges.
//
// A fixture is a read-only-after-creation view over a contiguous slice
// of one universe's channels: an RGB par at channels 10-12, a moving
// head at 20-35. Controlling a fixture translates its ordered values
// into absolute channel writes on the owning universe.
//
// Fixtures may alias overlapping ranges; the engine does not police
// overlap, and the last writer wins at the channel store. Deleting a
// fixture removes the view only, leaving its channels at their last
// written levels.
package fixture
