package domain

import "time"

type TopicId = string
type PostId = string

const (
	DefaultTopicDescription = "A community for discussing various topics"
	DefaultTopicColor       = "#FF6B6B"
	// seeded posts without likes get a random value in [0, MaxSeedLikes)
	MaxSeedLikes = 1000
)

type Topic struct {
	Id          TopicId   `json:"id" validate:"required,uuid4"`
	Name        string    `json:"name" validate:"required,max=100"`
	Description string    `json:"description" validate:"required,max=500"`
	Color       string    `json:"color" validate:"required,hexcolor,len=7"`
	CreatedAt   time.Time `json:"-"`
}

type Post struct {
	Id      PostId    `json:"id" validate:"required,uuid4"`
	Name    string    `json:"name" validate:"required,max=100"`
	Likes   int       `json:"likes" validate:"min=0"`
	Content string    `json:"content" validate:"required,max=1000"`
	Date    time.Time `json:"date" validate:"required"`
	TopicId TopicId   `json:"topicId" validate:"required,uuid4"`
}

type Pagination struct {
	CurrentPage int  `json:"currentPage"`
	TotalPages  int  `json:"totalPages"`
	TotalTopics int  `json:"totalTopics"`
	HasNextPage bool `json:"hasNextPage"`
	HasPrevPage bool `json:"hasPrevPage"`
}

type TopicPage struct {
	Topics     []Topic    `json:"topics"`
	Pagination Pagination `json:"pagination"`
}

type TopicWithPosts struct {
	Topic     Topic  `json:"topic"`
	Posts     []Post `json:"posts"`
	PostCount int    `json:"postCount"`
}

type SeedSummary struct {
	TopicsCreated int `json:"topicsCreated"`
	PostsCreated  int `json:"postsCreated"`
}
