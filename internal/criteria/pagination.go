package criteria

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// DefaultLimit is the page size used when none is requested.
const DefaultLimit = 5

// dateField carries the inclusive date-range bounds.
const dateField = "created_at"

// Pagination describes hybrid cursor+date pagination. The cursor bound is
// strictly-greater-than on CursorField and applies only when both Cursor and
// CursorField are set; the date range is inclusive on both ends.
type Pagination struct {
	Limit       int64
	Cursor      string
	CursorField string
	StartDate   *time.Time
	EndDate     *time.Time
}

// PageSize returns the effective limit, falling back to DefaultLimit.
func (p Pagination) PageSize() int64 {
	if p.Limit <= 0 {
		return DefaultLimit
	}
	return p.Limit
}

// MatchStage folds the date bounds and the cursor bound into a single $match
// stage. The second return value is false when no bound is set. When the
// cursor field is created_at, its bound joins the date bounds under one key
// so the emitted document never repeats a field.
func (p Pagination) MatchStage() (bson.D, bool) {
	var conditions bson.D

	var dates bson.D
	if p.StartDate != nil {
		dates = append(dates, bson.E{Key: "$gte", Value: *p.StartDate})
	}
	if p.EndDate != nil {
		dates = append(dates, bson.E{Key: "$lte", Value: *p.EndDate})
	}

	cursor := p.Cursor != "" && p.CursorField != ""
	if len(dates) > 0 {
		if cursor && p.CursorField == dateField {
			dates = append(dates, bson.E{Key: "$gt", Value: p.Cursor})
			cursor = false
		}
		conditions = append(conditions, bson.E{Key: dateField, Value: dates})
	}
	if cursor {
		conditions = append(conditions, bson.E{Key: p.CursorField, Value: bson.D{{Key: "$gt", Value: p.Cursor}}})
	}

	if len(conditions) == 0 {
		return nil, false
	}
	return bson.D{{Key: "$match", Value: conditions}}, true
}

// Stages returns the pipeline stages for this page: the optional bound
// $match followed by the mandatory $limit.
func (p Pagination) Stages() []bson.D {
	var stages []bson.D
	if match, ok := p.MatchStage(); ok {
		stages = append(stages, match)
	}
	stages = append(stages, bson.D{{Key: "$limit", Value: p.PageSize()}})
	return stages
}
