package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClampCrawlerLimit(t *testing.T) {
	assert.Equal(t, 1, ClampCrawlerLimit(0))
	assert.Equal(t, 1, ClampCrawlerLimit(-10))
	assert.Equal(t, 1, ClampCrawlerLimit(1))
	assert.Equal(t, 500, ClampCrawlerLimit(500))
	assert.Equal(t, 1000, ClampCrawlerLimit(1000))
	assert.Equal(t, 1000, ClampCrawlerLimit(5000))
}

func TestDocumentCreate_Validate(t *testing.T) {
	t.Run("website requires path", func(t *testing.T) {
		c := DocumentCreate{DocumentType: DocumentTypeWebsite}
		assert.Error(t, c.Validate())

		c.Path = "https://example.com"
		assert.NoError(t, c.Validate())
	})

	t.Run("text requires content", func(t *testing.T) {
		c := DocumentCreate{DocumentType: DocumentTypeText, Title: "note"}
		assert.Error(t, c.Validate())

		c.Content = "body"
		assert.NoError(t, c.Validate())
	})

	t.Run("unknown type", func(t *testing.T) {
		c := DocumentCreate{DocumentType: "mystery", Path: "x"}
		var validationErr *ValidationError
		assert.ErrorAs(t, c.Validate(), &validationErr)
	})

	t.Run("rsspost requires a feed back-reference", func(t *testing.T) {
		c := DocumentCreate{DocumentType: DocumentTypeRSSPost, Path: "https://example.com/post"}
		assert.Error(t, c.Validate())

		c.RSSFeedID = "feed-1"
		assert.NoError(t, c.Validate())
	})

	t.Run("crawler properties rejected on text", func(t *testing.T) {
		c := DocumentCreate{
			DocumentType:      DocumentTypeText,
			Content:           "body",
			CrawlerProperties: &CrawlerProperties{Limit: 10},
		}
		assert.Error(t, c.Validate())
	})
}

func TestParseDocumentType(t *testing.T) {
	for _, s := range []string{"text", "qna", "website", "rssfeed", "rsspost", "file"} {
		_, ok := ParseDocumentType(s)
		assert.True(t, ok, s)
	}

	_, ok := ParseDocumentType("pdf")
	assert.False(t, ok)
}

// The external contract is camelCase, and absent optional counters must stay
// distinguishable from explicit zeros.
func TestDocument_ExternalRepresentation(t *testing.T) {
	t.Run("absent vectors are omitted", func(t *testing.T) {
		data, err := json.Marshal(&Document{DocumentID: "doc-1", DocumentType: DocumentTypeText})
		require.NoError(t, err)

		var fields map[string]any
		require.NoError(t, json.Unmarshal(data, &fields))
		assert.Equal(t, "doc-1", fields["id"])
		assert.Equal(t, "text", fields["type"])
		_, present := fields["vectors"]
		assert.False(t, present)
	})

	t.Run("zero vectors are kept", func(t *testing.T) {
		zero := int64(0)
		data, err := json.Marshal(&Document{DocumentID: "doc-1", Vectors: &zero})
		require.NoError(t, err)

		var fields map[string]any
		require.NoError(t, json.Unmarshal(data, &fields))
		v, present := fields["vectors"]
		assert.True(t, present)
		assert.EqualValues(t, 0, v)
	})

	t.Run("crawler settings nest under crawlerProperties", func(t *testing.T) {
		doc := &Document{
			DocumentID:   "feed-1",
			DocumentType: DocumentTypeRSSFeed,
			CrawlerProperties: &CrawlerProperties{
				FollowLinks: true,
				Limit:       50,
			},
		}
		data, err := json.Marshal(doc)
		require.NoError(t, err)

		var fields map[string]any
		require.NoError(t, json.Unmarshal(data, &fields))
		props, ok := fields["crawlerProperties"].(map[string]any)
		require.True(t, ok)
		assert.Equal(t, true, props["followLinks"])
		assert.EqualValues(t, 50, props["limit"])
	})
}

func TestDocumentType_IsCrawler(t *testing.T) {
	assert.True(t, DocumentTypeWebsite.IsCrawler())
	assert.True(t, DocumentTypeRSSFeed.IsCrawler())
	assert.False(t, DocumentTypeText.IsCrawler())
	assert.False(t, DocumentTypeRSSPost.IsCrawler())
}
