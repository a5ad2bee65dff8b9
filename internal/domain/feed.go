package domain

type FeedType string

const FeedTypeWeb FeedType = "WEB"

type FeedOwner struct {
	ID string `json:"id"`
}

type RedditFeedProperties struct {
	SubredditName string `json:"subredditName"`
}

type FeedSchedulePolicy struct {
	RecurrenceType string `json:"recurrenceType"`
	RepeatInterval string `json:"repeatInterval"`
}

// Feed refleja la seleccion de campos de QueryFeeds y CreateFeed.
type Feed struct {
	ID             string                `json:"id"`
	Name           string                `json:"name"`
	CreationDate   string                `json:"creationDate,omitempty"`
	State          string                `json:"state"`
	Type           FeedType              `json:"type"`
	Owner          *FeedOwner            `json:"owner,omitempty"`
	Reddit         *RedditFeedProperties `json:"reddit,omitempty"`
	LastPostDate   string                `json:"lastPostDate,omitempty"`
	LastReadDate   string                `json:"lastReadDate,omitempty"`
	ReadCount      int                   `json:"readCount,omitempty"`
	SchedulePolicy *FeedSchedulePolicy   `json:"schedulePolicy,omitempty"`
}
