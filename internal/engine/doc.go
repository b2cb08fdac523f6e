// Package engine contains the world grid, the turn algorithm, and the
// simulation loop. This is the heartbeat of BugBattle.
//
// ARCHITECTURAL RULE: the engine owns all world, creature and organ state
// exclusively on a single goroutine. Displays talk to it only through a
// Link: Snapshots out (latest-wins), Commands in.
package engine
