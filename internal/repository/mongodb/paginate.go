package mongodb

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/davral/tickerdesk/internal/domain"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
)

// paginate runs an aggregation pipeline and assembles a page from the
// result. The next cursor is the cursorField value of the last returned
// document; an empty result or empty cursorField yields no cursor. Total is
// the unconditional count of the whole collection.
func paginate[T any](ctx context.Context, coll *mongo.Collection, pipeline mongo.Pipeline, cursorField string) (domain.Page[T], error) {
	var page domain.Page[T]

	cur, err := coll.Aggregate(ctx, pipeline)
	if err != nil {
		return page, fmt.Errorf("%w: aggregate %s: %v", domain.ErrQueryExecution, coll.Name(), err)
	}

	var raws []bson.Raw
	if err := cur.All(ctx, &raws); err != nil {
		return page, fmt.Errorf("%w: read %s results: %v", domain.ErrQueryExecution, coll.Name(), err)
	}

	page.Result = make([]T, 0, len(raws))
	for _, raw := range raws {
		var item T
		if err := bson.Unmarshal(raw, &item); err != nil {
			return page, fmt.Errorf("decode %s document: %w", coll.Name(), err)
		}
		page.Result = append(page.Result, item)
	}

	total, err := coll.CountDocuments(ctx, bson.D{})
	if err != nil {
		return page, fmt.Errorf("%w: count %s: %v", domain.ErrQueryExecution, coll.Name(), err)
	}
	page.Total = total

	if len(raws) > 0 && cursorField != "" {
		if next, ok := cursorString(raws[len(raws)-1].Lookup(cursorField)); ok {
			page.NextCursor = &next
		}
	}

	return page, nil
}

// cursorString renders a raw BSON value as an opaque cursor.
func cursorString(v bson.RawValue) (string, bool) {
	switch v.Type {
	case bson.TypeString:
		return v.StringValue(), true
	case bson.TypeObjectID:
		return v.ObjectID().Hex(), true
	case bson.TypeInt32:
		return strconv.FormatInt(int64(v.Int32()), 10), true
	case bson.TypeInt64:
		return strconv.FormatInt(v.Int64(), 10), true
	case bson.TypeDouble:
		return strconv.FormatFloat(v.Double(), 'g', -1, 64), true
	case bson.TypeDateTime:
		return v.Time().UTC().Format(time.RFC3339Nano), true
	default:
		return "", false
	}
}
