package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/brocat-app/brocat/internal/client/models"
	"github.com/brocat-app/brocat/internal/common"
)

// Row-feed actions understood by the legacy /get_data and /write_data
// endpoints.
const (
	ActionRead   = "R"
	ActionCreate = "C"
	ActionUpdate = "U"
	ActionDelete = "D"
)

// RowsRequest mirrors the legacy feed's flat request shape. Identifier
// fields are strings because the backend accepts both numbers and "" for
// "not filtered".
type RowsRequest struct {
	Action       string `json:"action"`
	FormID       string `json:"formId"`
	TopicID      string `json:"topicId"`
	SubTopicID   string `json:"subtopicId"`
	SubTitleID   string `json:"subTitleId"`
	TopicName    string `json:"topicName"`
	SubTopicName string `json:"subtopicName"`
	SubTitle     string `json:"subTitle"`
	ImageID      string `json:"imageId"`
	ImageURL     string `json:"imageUrl"`
	SortOrder    string `json:"sortOrder"`
	Preview      bool   `json:"preview"`
	User         string `json:"user"`
}

// FetchRows queries the flat catalog feed. Reads go to /get_data and return
// rows from the envelope; writes go to /write_data, which answers with the
// affected rows directly (no envelope).
func (c *Client) FetchRows(ctx context.Context, req RowsRequest) ([]models.RawRow, error) {
	if req.Action == ActionRead {
		var rows []models.RawRow
		if err := c.call(ctx, http.MethodPost, "/get_data", req, &rows); err != nil {
			return nil, err
		}
		return rows, nil
	}

	_, data, err := c.do(ctx, http.MethodPost, "/write_data", req)
	if err != nil {
		return nil, err
	}
	var rows []models.RawRow
	if len(data) > 0 {
		if err := json.Unmarshal(data, &rows); err != nil {
			return nil, fmt.Errorf("%w: %v", common.ErrInvalidResponse, err)
		}
	}
	return rows, nil
}

/* main-topic admin routes */

// MainTopics lists top-level topics via GET /main-topic.
func (c *Client) MainTopics(ctx context.Context) ([]models.MainTopicItem, error) {
	var items []models.MainTopicItem
	if err := c.call(ctx, http.MethodGet, "/main-topic", nil, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// CreateMainTopic creates a topic. The backend multiplexes create/update/
// delete over POST /main-topic: a request without an id creates.
func (c *Client) CreateMainTopic(ctx context.Context, name string, sortOrder int64) (*models.MainTopicItem, error) {
	req := struct {
		Name      string `json:"name"`
		SortOrder int64  `json:"sortOrder,omitempty"`
	}{name, sortOrder}
	var item models.MainTopicItem
	if err := c.call(ctx, http.MethodPost, "/main-topic", req, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

// UpdateMainTopic renames or reorders an existing topic.
func (c *Client) UpdateMainTopic(ctx context.Context, item models.MainTopicItem) (*models.MainTopicItem, error) {
	var out models.MainTopicItem
	if err := c.call(ctx, http.MethodPost, "/main-topic", item, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteMainTopic soft-deletes a topic by flipping delStatus.
func (c *Client) DeleteMainTopic(ctx context.Context, id int64) error {
	req := struct {
		ID        int64 `json:"id"`
		DelStatus bool  `json:"delStatus"`
	}{id, true}
	return c.call(ctx, http.MethodPost, "/main-topic", req, nil)
}

/* sub-topic admin routes */

// SubTopics lists all sub-topics via GET /sub-topic.
func (c *Client) SubTopics(ctx context.Context) ([]models.SubTopicItem, error) {
	var items []models.SubTopicItem
	if err := c.call(ctx, http.MethodGet, "/sub-topic", nil, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// SubTopicsByMainTopic lists the sub-topics of one topic.
func (c *Client) SubTopicsByMainTopic(ctx context.Context, mainTopicID int64) ([]models.SubTopicItem, error) {
	var items []models.SubTopicItem
	path := fmt.Sprintf("/sub-topic/%d", mainTopicID)
	if err := c.call(ctx, http.MethodGet, path, nil, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// CreateSubTopic creates a sub-topic under a main topic.
func (c *Client) CreateSubTopic(ctx context.Context, name string, mainTopicID int64) (*models.SubTopicItem, error) {
	req := struct {
		Name        string `json:"name"`
		MainTopicID int64  `json:"mainTopicId"`
	}{name, mainTopicID}
	var item models.SubTopicItem
	if err := c.call(ctx, http.MethodPost, "/sub-topic", req, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

// UpdateSubTopic renames, reparents or reorders a sub-topic.
func (c *Client) UpdateSubTopic(ctx context.Context, item models.SubTopicItem) (*models.SubTopicItem, error) {
	var out models.SubTopicItem
	if err := c.call(ctx, http.MethodPost, "/sub-topic", item, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteSubTopic soft-deletes a sub-topic.
func (c *Client) DeleteSubTopic(ctx context.Context, id int64) error {
	req := struct {
		ID        int64 `json:"id"`
		DelStatus bool  `json:"delStatus"`
	}{id, true}
	return c.call(ctx, http.MethodPost, "/sub-topic", req, nil)
}

/* sub-title admin routes */

// SubTitles lists all sub-titles via GET /sub-title.
func (c *Client) SubTitles(ctx context.Context) ([]models.SubTitleItem, error) {
	var items []models.SubTitleItem
	if err := c.call(ctx, http.MethodGet, "/sub-title", nil, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// CreateSubTitle creates a sub-title under a sub-topic.
func (c *Client) CreateSubTitle(ctx context.Context, title string, subTopicID int64) (*models.SubTitleItem, error) {
	req := struct {
		Title      string `json:"title"`
		SubTopicID int64  `json:"subTopicId"`
	}{title, subTopicID}
	var item models.SubTitleItem
	if err := c.call(ctx, http.MethodPost, "/sub-title", req, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

// UpdateSubTitle renames or reorders a sub-title.
func (c *Client) UpdateSubTitle(ctx context.Context, item models.SubTitleItem) (*models.SubTitleItem, error) {
	var out models.SubTitleItem
	if err := c.call(ctx, http.MethodPost, "/sub-title", item, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteSubTitle soft-deletes a sub-title.
func (c *Client) DeleteSubTitle(ctx context.Context, id int64) error {
	req := struct {
		ID        int64 `json:"id"`
		DelStatus bool  `json:"delStatus"`
	}{id, true}
	return c.call(ctx, http.MethodPost, "/sub-title", req, nil)
}

/* media */

// PresignedUpload is the grant for one direct image upload.
type PresignedUpload struct {
	Key string `json:"key"`
	URL string `json:"url"`
}

// PresignImageUpload asks the backend for a presigned PUT URL for an image.
// The actual upload bypasses this client (see netx.UploadPresigned) because
// the signed URL carries its own authorization.
func (c *Client) PresignImageUpload(ctx context.Context, fileName string) (*PresignedUpload, error) {
	req := struct {
		FileName string `json:"fileName"`
	}{fileName}
	var out PresignedUpload
	if err := c.call(ctx, http.MethodPost, "/image/presign", req, &out); err != nil {
		return nil, err
	}
	if out.URL == "" {
		return nil, fmt.Errorf("%w: presign response missing url", common.ErrInvalidResponse)
	}
	return &out, nil
}
