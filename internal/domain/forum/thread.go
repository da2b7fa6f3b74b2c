package forum

import (
	"sort"

	"github.com/ryanchowdev/Stock-Market-Imitation/internal/domain/users"
)

// PostSummary is a post listed under its topic
type PostSummary struct {
	*Post
	AuthorName string
}

// PostView is a single post with its topic, author and rendered content
type PostView struct {
	*Post
	Topic       *Topic
	Author      users.Author
	ContentHTML string
}

// CommentView is a comment as shown to a viewer
type CommentView struct {
	*Comment
	Author   users.Author
	Likes    int
	Dislikes int
	// Reaction is the viewer's own reaction
	Reaction int
	Replies  []CommentView
}

// Score is likes minus dislikes.
func (v CommentView) Score() int {
	return v.Likes - v.Dislikes
}

// BuildThread nests replies under their top-level comment and attaches authors and
// reaction counts. comments must be in chronological order. Top-level comments are
// ordered by score, highest first, with ties kept in chronological order; replies
// stay chronological. Replies whose parent is missing are dropped.
func BuildThread(comments []*Comment, reactions []*Reaction, authors map[uint]*users.User, viewerID uint) []CommentView {
	type tally struct{ likes, dislikes, mine int }
	tallies := make(map[uint]*tally, len(comments))
	for _, r := range reactions {
		t, ok := tallies[r.CommentID]
		if !ok {
			t = &tally{}
			tallies[r.CommentID] = t
		}
		switch r.Value {
		case Like:
			t.likes++
		case Dislike:
			t.dislikes++
		}
		if r.UserID == viewerID {
			t.mine = r.Value
		}
	}

	view := func(c *Comment) CommentView {
		v := CommentView{Comment: c, Author: users.AuthorOf(authors[c.UserID])}
		if t, ok := tallies[c.ID]; ok {
			v.Likes, v.Dislikes, v.Reaction = t.likes, t.dislikes, t.mine
		}
		return v
	}

	top := make([]CommentView, 0)
	index := make(map[uint]int)
	for _, c := range comments {
		if c.IsTopLevel() {
			index[c.ID] = len(top)
			top = append(top, view(c))
		}
	}
	for _, c := range comments {
		if c.IsTopLevel() {
			continue
		}
		i, ok := index[*c.ParentID]
		if !ok {
			continue
		}
		top[i].Replies = append(top[i].Replies, view(c))
	}

	sort.SliceStable(top, func(i, j int) bool { return top[i].Score() > top[j].Score() })
	return top
}
