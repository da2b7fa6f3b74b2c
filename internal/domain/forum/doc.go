// Package forum contains discussion topics, posts, threaded comments and the
// reactions users leave on them.
//
// Comments nest one level deep: a comment without a parent is top-level and
// replies always point at a top-level comment of the same post.
package forum
