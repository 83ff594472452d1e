package api

import "github.com/meetiosdev/topics-api/shared/domain"

// Response is the envelope every JSON endpoint answers with.
// Success responses fill Data and sometimes Message, errors fill Error and Details.
type Response struct {
	Success bool     `json:"success"`
	Message string   `json:"message,omitempty"`
	Data    any      `json:"data,omitempty"`
	Error   string   `json:"error,omitempty"`
	Details []string `json:"details,omitempty"`
}

// TopicResponse is the public topic shape.
type TopicResponse struct {
	Id          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Color       string `json:"color"`
}

// PostResponse is the public post shape. Date is RFC 3339.
type PostResponse struct {
	Id      string `json:"id"`
	Name    string `json:"name"`
	Likes   int    `json:"likes"`
	Content string `json:"content"`
	Date    string `json:"date"`
	TopicId string `json:"topicId"`
}

// TopicListResponse is the data of GET /api/topics.
type TopicListResponse struct {
	Topics     []TopicResponse   `json:"topics"`
	Pagination domain.Pagination `json:"pagination"`
}

// TopicPostsResponse is the data of GET /api/topics/{topicId}/posts.
type TopicPostsResponse struct {
	Topic     TopicResponse  `json:"topic"`
	Posts     []PostResponse `json:"posts"`
	PostCount int            `json:"postCount"`
}

// SeedResponse is the data of POST /api/seed.
type SeedResponse struct {
	TopicsCreated int `json:"topicsCreated"`
	PostsCreated  int `json:"postsCreated"`
}

// HealthResponse is the liveness answer. It is sent as is, not inside Response.
type HealthResponse struct {
	Success     bool    `json:"success"`
	Message     string  `json:"message"`
	Timestamp   string  `json:"timestamp"`
	Uptime      float64 `json:"uptime"`
	Environment string  `json:"environment"`
}

// InfoResponse describes the service on GET /.
type InfoResponse struct {
	Success       bool              `json:"success"`
	Message       string            `json:"message"`
	Version       string            `json:"version"`
	Documentation string            `json:"documentation"`
	Endpoints     map[string]string `json:"endpoints"`
}
