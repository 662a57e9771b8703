// Package catalog turns the flat catalog feed into the topic tree the UI
// renders, and keeps a local cache of the feed for offline use.
package catalog

import (
	"fmt"
	"sort"

	"github.com/brocat-app/brocat/internal/client/models"
)

// URLResolver makes a feed image URL absolute. api.Client.AbsMediaURL
// satisfies it.
type URLResolver func(url string) string

type topicAccum struct {
	title  string
	subs   map[int64]*models.SubTopic
	images []string
}

// RowsToTopics groups the flat feed into topics with their subtopics.
// Rows sharing a TOPIC_ID merge into one topic; rows carrying a
// SUBTOPIC_ID additionally populate that subtopic. Image URLs are made
// absolute. Topics and subtopics come out ordered by ascending id.
func RowsToTopics(rows []models.RawRow, resolve URLResolver) []models.Topic {
	topics := map[int64]*topicAccum{}

	for _, r := range rows {
		t, ok := topics[r.TopicID]
		if !ok {
			title := r.TopicName
			if title == "" {
				title = fmt.Sprintf("Topic %d", r.TopicID)
			}
			t = &topicAccum{title: title, subs: map[int64]*models.SubTopic{}}
			topics[r.TopicID] = t
		}

		if r.ImageURL != nil && *r.ImageURL != "" {
			t.images = append(t.images, resolve(*r.ImageURL))
		}

		if r.SubTopicID == nil {
			continue
		}
		subID := *r.SubTopicID
		sub, ok := t.subs[subID]
		if !ok {
			title := fmt.Sprintf("Sub Topic %d", subID)
			if r.SubTopicName != nil && *r.SubTopicName != "" {
				title = *r.SubTopicName
			}
			sub = &models.SubTopic{ID: fmt.Sprintf("%d", subID), Title: title, Images: []string{}}
			t.subs[subID] = sub
		}
		if r.ImageURL != nil && *r.ImageURL != "" {
			sub.Images = append(sub.Images, resolve(*r.ImageURL))
		}
	}

	ids := make([]int64, 0, len(topics))
	for id := range topics {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	result := make([]models.Topic, 0, len(ids))
	for _, id := range ids {
		t := topics[id]

		subIDs := make([]int64, 0, len(t.subs))
		for sid := range t.subs {
			subIDs = append(subIDs, sid)
		}
		sort.Slice(subIDs, func(i, j int) bool { return subIDs[i] < subIDs[j] })

		subs := make([]models.SubTopic, 0, len(subIDs))
		for _, sid := range subIDs {
			subs = append(subs, *t.subs[sid])
		}

		result = append(result, models.Topic{
			ID:        fmt.Sprintf("%d", id),
			Title:     t.title,
			SubTopics: subs,
			Images:    t.images,
		})
	}
	return result
}

// RowsToSubTitles groups the feed into detail pages. Rows without a
// SUB_TITLE_ID are skipped; an image is attached only when both IMAGE_ID
// and IMAGE_URL are present.
func RowsToSubTitles(rows []models.RawRow, resolve URLResolver) []models.SubTitle {
	pages := map[int64]*models.SubTitle{}

	for _, r := range rows {
		if r.SubTitleID == nil || *r.SubTitleID == 0 {
			continue
		}
		id := *r.SubTitleID

		page, ok := pages[id]
		if !ok {
			title := ""
			if r.SubTitle != nil {
				title = *r.SubTitle
			}
			page = &models.SubTitle{ID: fmt.Sprintf("%d", id), Title: title, Images: []models.ImageItem{}}
			pages[id] = page
		}

		if r.ImageID != nil && *r.ImageID != 0 && r.ImageURL != nil && *r.ImageURL != "" {
			page.Images = append(page.Images, models.ImageItem{
				ID:  fmt.Sprintf("%d", *r.ImageID),
				URL: resolve(*r.ImageURL),
			})
		}
	}

	ids := make([]int64, 0, len(pages))
	for id := range pages {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	result := make([]models.SubTitle, 0, len(ids))
	for _, id := range ids {
		result = append(result, *pages[id])
	}
	return result
}
