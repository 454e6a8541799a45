package domain

import (
	"context"
	"strings"
	"time"
)

// DocumentType identifies one of the fixed set of catalog document kinds.
type DocumentType string

const (
	DocumentTypeText    DocumentType = "text"
	DocumentTypeQnA     DocumentType = "qna"
	DocumentTypeWebsite DocumentType = "website"
	DocumentTypeRSSFeed DocumentType = "rssfeed"
	DocumentTypeRSSPost DocumentType = "rsspost"
	DocumentTypeFile    DocumentType = "file"
)

// Document sub types
const (
	SubTypeSitemap = "sitemap"
)

// Ingestion status values. The ingestion pipeline owns most transitions;
// the catalog only sets the initial state and the crawler subscription states.
const (
	StatusSubmitted  = "submitted"
	StatusProcessing = "processing"
	StatusProcessed  = "processed"
	StatusError      = "error"
	StatusEnabled    = "enabled"
	StatusDisabled   = "disabled"
)

// Crawler limit bounds. Out-of-range input is clamped, not rejected.
const (
	CrawlerLimitMin = 1
	CrawlerLimitMax = 1000
)

// CrawlerProperties holds crawl configuration for website and rssfeed
// documents. External JSON is camelCase, persisted fields are snake_case.
type CrawlerProperties struct {
	FollowLinks  bool     `json:"followLinks" bson:"follow_links"`
	Limit        int      `json:"limit" bson:"limit"`
	ContentTypes []string `json:"contentTypes,omitempty" bson:"content_types,omitempty"`
}

// Document is a catalog record belonging to exactly one workspace.
// Optional numeric fields are pointers so that "never reported" is
// distinguishable from an explicit zero.
type Document struct {
	WorkspaceID       string             `json:"workspaceId" bson:"workspace_id"`
	DocumentID        string             `json:"id" bson:"document_id"`
	DocumentType      DocumentType       `json:"type" bson:"document_type"`
	DocumentSubType   string             `json:"subType,omitempty" bson:"document_sub_type,omitempty"`
	Status            string             `json:"status" bson:"status"`
	Title             string             `json:"title" bson:"title"`
	Path              string             `json:"path" bson:"path"`
	SizeInBytes       *int64             `json:"sizeInBytes,omitempty" bson:"size_in_bytes,omitempty"`
	Vectors           *int64             `json:"vectors,omitempty" bson:"vectors,omitempty"`
	SubDocuments      *int64             `json:"subDocuments,omitempty" bson:"sub_documents,omitempty"`
	Errors            []string           `json:"errors,omitempty" bson:"errors,omitempty"`
	CrawlerProperties *CrawlerProperties `json:"crawlerProperties,omitempty" bson:"crawler_properties,omitempty"`
	RSSFeedID         string             `json:"rssFeedId,omitempty" bson:"rss_feed_id,omitempty"`
	RSSLastCheckedAt  *time.Time         `json:"rssLastCheckedAt,omitempty" bson:"rss_last_checked,omitempty"`
	CreatedAt         time.Time          `json:"createdAt" bson:"created_at"`
	UpdatedAt         time.Time          `json:"updatedAt" bson:"updated_at"`
}

// IsCrawler reports whether the document type carries a crawl subscription.
func (t DocumentType) IsCrawler() bool {
	return t == DocumentTypeWebsite || t == DocumentTypeRSSFeed
}

// ParseDocumentType maps an external type string onto the closed type set.
func ParseDocumentType(s string) (DocumentType, bool) {
	t := DocumentType(s)
	_, ok := typeRules[t]
	return t, ok
}

// typeRule describes per-type creation requirements. The type set is closed,
// so behavior is table dispatch rather than anything dynamic.
type typeRule struct {
	requiresPath    bool
	requiresContent bool
	crawler         bool
}

var typeRules = map[DocumentType]typeRule{
	DocumentTypeText:    {requiresContent: true},
	DocumentTypeQnA:     {requiresContent: true},
	DocumentTypeWebsite: {requiresPath: true, crawler: true},
	DocumentTypeRSSFeed: {requiresPath: true, crawler: true},
	DocumentTypeRSSPost: {requiresPath: true},
	DocumentTypeFile:    {requiresPath: true},
}

// DocumentCreate carries the fields accepted when adding a document.
type DocumentCreate struct {
	WorkspaceID       string
	DocumentType      DocumentType
	DocumentSubType   string
	Title             string
	Content           string
	ContentComplement string
	Path              string
	CrawlerProperties *CrawlerProperties
	RSSFeedID         string
}

// Validate checks the per-type required fields.
func (c *DocumentCreate) Validate() error {
	rules, ok := typeRules[c.DocumentType]
	if !ok {
		return &ValidationError{Message: "unknown document type: " + string(c.DocumentType)}
	}
	if rules.requiresPath && strings.TrimSpace(c.Path) == "" {
		return &ValidationError{Message: string(c.DocumentType) + " documents require a path"}
	}
	if rules.requiresContent && strings.TrimSpace(c.Content) == "" {
		return &ValidationError{Message: string(c.DocumentType) + " documents require content"}
	}
	if c.CrawlerProperties != nil && !rules.crawler {
		return &ValidationError{Message: "crawler properties are not valid for " + string(c.DocumentType) + " documents"}
	}
	// Posts always point back at their feed; the back-reference drives the
	// parent-filtered listing.
	if c.DocumentType == DocumentTypeRSSPost && strings.TrimSpace(c.RSSFeedID) == "" {
		return &ValidationError{Message: "rsspost documents require an rss feed id"}
	}
	return nil
}

// ClampCrawlerLimit forces the crawl page limit into its allowed range.
func ClampCrawlerLimit(limit int) int {
	if limit < CrawlerLimitMin {
		return CrawlerLimitMin
	}
	if limit > CrawlerLimitMax {
		return CrawlerLimitMax
	}
	return limit
}

// DocumentQuery describes one page request against the metadata store.
// LastDocumentID is an exclusive start cursor valid only for an identical
// query shape.
type DocumentQuery struct {
	WorkspaceID    string
	DocumentType   DocumentType
	LastDocumentID string
	ParentID       string
	PageSize       int
}

// DocumentPage is one page of results. LastDocumentID is non-nil iff more
// pages may exist.
type DocumentPage struct {
	Items          []Document `json:"items"`
	LastDocumentID *string    `json:"lastDocumentId"`
}

// DocumentRepository defines the metadata store operations for documents.
type DocumentRepository interface {
	Put(ctx context.Context, doc *Document) error
	// Get returns (nil, nil) when no record exists.
	Get(ctx context.Context, workspaceID, documentID string) (*Document, error)
	// Delete reports whether a live record was actually removed, so callers
	// can guard follow-up counter adjustments against double deletion.
	Delete(ctx context.Context, workspaceID, documentID string) (bool, error)
	Query(ctx context.Context, q DocumentQuery) (*DocumentPage, error)
	// ListIDs drains the store-native cursor over every document record in
	// the workspace and returns their ids.
	ListIDs(ctx context.Context, workspaceID string) ([]string, error)
	// BatchDelete removes up to one store batch of records in a single call.
	BatchDelete(ctx context.Context, workspaceID string, documentIDs []string) error
	SetStatus(ctx context.Context, workspaceID, documentID, status string, now time.Time) error
	SetCrawlerProperties(ctx context.Context, workspaceID, documentID string, props *CrawlerProperties, now time.Time) error
}
