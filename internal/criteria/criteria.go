// Package criteria builds MongoDB aggregation pipelines from declarative
// filter, sort, and pagination values. Building a pipeline is a pure data
// transformation: it never fails and is deterministic for identical input.
package criteria

import "go.mongodb.org/mongo-driver/v2/mongo"

// Criteria combines filters, pagination, and sorting for one query. A value
// is built per request and consumed once to produce a pipeline.
type Criteria struct {
	Filters    []Filter
	Pagination Pagination
	Sort       Sort
}

// Pipeline assembles the aggregation pipeline in fixed order: one $match per
// non-empty filter group in declaration order (conjunctive by position), the
// pagination stages, then the sort stage.
func (c Criteria) Pipeline() mongo.Pipeline {
	pipeline := mongo.Pipeline{}

	for _, f := range c.Filters {
		if stage, ok := f.Stage(); ok {
			pipeline = append(pipeline, stage)
		}
	}

	pipeline = append(pipeline, c.Pagination.Stages()...)
	pipeline = append(pipeline, c.Sort.Stage())

	return pipeline
}
