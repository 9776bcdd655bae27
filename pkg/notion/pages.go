package notion

import (
	"context"

	"github.com/jomei/notionapi"
	"github.com/rotisserie/eris"
)

// QueryAll walks database pagination and returns every page. The filter,
// sorts, and page size of the template request are applied to each call;
// nil means an unfiltered query.
func QueryAll(ctx context.Context, c Client, dbID string, template *notionapi.DatabaseQueryRequest) ([]notionapi.Page, error) {
	var (
		all    []notionapi.Page
		cursor notionapi.Cursor
	)
	for {
		req := &notionapi.DatabaseQueryRequest{StartCursor: cursor}
		if template != nil {
			req.Filter = template.Filter
			req.Sorts = template.Sorts
			req.PageSize = template.PageSize
		}

		resp, err := c.QueryDatabase(ctx, dbID, req)
		if err != nil {
			return nil, eris.Wrap(err, "notion: query all")
		}
		all = append(all, resp.Results...)

		if !resp.HasMore {
			return all, nil
		}
		cursor = resp.NextCursor
	}
}
