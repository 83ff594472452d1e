// Package api holds the JSON shapes exchanged between the server and its clients.
package api

import (
	"time"

	"github.com/meetiosdev/topics-api/shared/domain"
)

// NewTopicResponse maps a topic to its public shape, without the creation time.
func NewTopicResponse(t domain.Topic) TopicResponse {
	return TopicResponse{Id: t.Id, Name: t.Name, Description: t.Description, Color: t.Color}
}

// NewPostResponse maps a post, formatting the date as RFC 3339 in UTC.
func NewPostResponse(p domain.Post) PostResponse {
	return PostResponse{
		Id:      p.Id,
		Name:    p.Name,
		Likes:   p.Likes,
		Content: p.Content,
		Date:    p.Date.UTC().Format(time.RFC3339Nano),
		TopicId: p.TopicId,
	}
}

// NewTopicListResponse maps one page of topics. Topics is never nil so it encodes as [].
func NewTopicListResponse(page *domain.TopicPage) TopicListResponse {
	topics := make([]TopicResponse, len(page.Topics))
	for i, t := range page.Topics {
		topics[i] = NewTopicResponse(t)
	}
	return TopicListResponse{Topics: topics, Pagination: page.Pagination}
}

// NewTopicPostsResponse maps a topic with its posts. PostCount is recomputed from the mapped posts.
func NewTopicPostsResponse(twp *domain.TopicWithPosts) TopicPostsResponse {
	posts := make([]PostResponse, len(twp.Posts))
	for i, p := range twp.Posts {
		posts[i] = NewPostResponse(p)
	}
	return TopicPostsResponse{Topic: NewTopicResponse(twp.Topic), Posts: posts, PostCount: len(posts)}
}
