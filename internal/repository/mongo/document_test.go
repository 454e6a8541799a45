package mongo

import (
	"fmt"
	"testing"

	"github.com/quantive/kb-catalog/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func docsWithIDs(ids ...string) []domain.Document {
	out := make([]domain.Document, len(ids))
	for i, id := range ids {
		out[i] = domain.Document{DocumentID: id}
	}
	return out
}

func TestTrimPage(t *testing.T) {
	t.Run("lookahead record sets the cursor to the last kept id", func(t *testing.T) {
		page := trimPage(docsWithIDs("a", "b", "c"), 2)

		assert.Len(t, page.Items, 2)
		require.NotNil(t, page.LastDocumentID)
		assert.Equal(t, "b", *page.LastDocumentID)
	})

	t.Run("exactly one page has no cursor", func(t *testing.T) {
		page := trimPage(docsWithIDs("a", "b"), 2)

		assert.Len(t, page.Items, 2)
		assert.Nil(t, page.LastDocumentID)
	})

	t.Run("short page has no cursor", func(t *testing.T) {
		page := trimPage(docsWithIDs("a"), 2)

		assert.Len(t, page.Items, 1)
		assert.Nil(t, page.LastDocumentID)
	})

	t.Run("empty page has no cursor", func(t *testing.T) {
		page := trimPage(nil, 2)

		assert.Empty(t, page.Items)
		assert.Nil(t, page.LastDocumentID)
	})
}

// Paging with the exclusive resume cursor must visit every record exactly
// once and terminate. The fetch emulates the store: ascending id order,
// records strictly after the cursor, one lookahead record past the page.
func TestPaginationConverges(t *testing.T) {
	const pageSize = 25

	all := make([]domain.Document, 60)
	for i := range all {
		all[i] = domain.Document{DocumentID: fmt.Sprintf("doc-%03d", i)}
	}

	fetch := func(after string) []domain.Document {
		var out []domain.Document
		for _, d := range all {
			if d.DocumentID <= after {
				continue
			}
			out = append(out, d)
			if len(out) == pageSize+1 {
				break
			}
		}
		return out
	}

	var seen []string
	cursor := ""
	for pages := 0; ; pages++ {
		require.Less(t, pages, 10, "pagination did not converge")

		page := trimPage(fetch(cursor), pageSize)
		for _, d := range page.Items {
			seen = append(seen, d.DocumentID)
		}
		if page.LastDocumentID == nil {
			break
		}
		cursor = *page.LastDocumentID
	}

	require.Len(t, seen, len(all))
	for i, d := range all {
		assert.Equal(t, d.DocumentID, seen[i])
	}
}
