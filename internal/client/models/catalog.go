package models

// RawRow is one row of the flat catalog feed returned by the legacy
// /get_data endpoint. The backend serializes column names in upper snake
// case; nullable columns use pointers.
type RawRow struct {
	TopicID      int64   `json:"TOPIC_ID"`
	TopicName    string  `json:"TOPIC_NAME"`
	SubTopicID   *int64  `json:"SUBTOPIC_ID"`
	SubTopicName *string `json:"SUBTOPIC_NAME"`
	SubTitleID   *int64  `json:"SUB_TITLE_ID"`
	SubTitle     *string `json:"SUB_TITLE"`
	ImageID      *int64  `json:"IMAGE_ID"`
	ImageURL     *string `json:"IMAGE_URL"`
	SortOrder    *int64  `json:"SORT_ORDER"`
}

// ImageItem is a single catalog image.
type ImageItem struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

// SubTitle groups the images shown on one detail page.
type SubTitle struct {
	ID     string      `json:"id"`
	Title  string      `json:"title"`
	Images []ImageItem `json:"images"`
}

// SubTopic is the second level of the catalog hierarchy.
type SubTopic struct {
	ID        string     `json:"id"`
	Title     string     `json:"title"`
	SubTitles []SubTitle `json:"subTitles,omitempty"`
	Images    []string   `json:"images"`
}

// Topic is the top level of the catalog hierarchy presented on the home
// screen.
type Topic struct {
	ID        string     `json:"id"`
	Title     string     `json:"title"`
	SubTopics []SubTopic `json:"subtopics"`
	Images    []string   `json:"images"`
}

// MainTopicItem is the admin-facing representation used by the /main-topic
// REST routes. DelStatus is a soft-delete marker.
type MainTopicItem struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	SortOrder int64  `json:"sortOrder,omitempty"`
	DelStatus bool   `json:"delStatus,omitempty"`
}

// SubTopicItem is the admin-facing representation used by the /sub-topic
// REST routes.
type SubTopicItem struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	MainTopicID int64  `json:"mainTopicId,omitempty"`
	SortOrder   int64  `json:"sortOrder,omitempty"`
	DelStatus   bool   `json:"delStatus,omitempty"`
}

// SubTitleItem is the admin-facing representation used by the /sub-title
// REST routes.
type SubTitleItem struct {
	ID         int64    `json:"id"`
	Title      string   `json:"title"`
	SubTopicID int64    `json:"subTopicId,omitempty"`
	SortOrder  int64    `json:"sortOrder,omitempty"`
	DelStatus  bool     `json:"delStatus,omitempty"`
	Images     []string `json:"images,omitempty"`
}
