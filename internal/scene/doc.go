// Package scene stores named channel snapshots across universes.
//
// A scene is a look: every channel level the operator wants back later,
// captured from live state or defined ahead of time. Loading a scene is
// an instantaneous batch write, never a timed transition; layer a fade
// on top afterwards if a transition is wanted.
//
// Scenes persist through a Repository. MemoryRepository backs tests and
// ephemeral rigs; SQLiteRepository survives engine restarts so a venue's
// looks outlive a power cycle.
package scene
