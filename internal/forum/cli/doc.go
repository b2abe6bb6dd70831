// Package cli implements the forumctl commands. Each invocation runs one
// command given as positional words, for example:
//
//	forumctl -d postgres://... user add ann@example.com Ann
//	forumctl post list
//	forumctl comment add <postID> <authorID> "Nice post" [parentID]
//	forumctl thread <postID>
//	forumctl export snapshots/today.json
package cli
