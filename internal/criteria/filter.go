package criteria

import "go.mongodb.org/mongo-driver/v2/bson"

// Operator combines the conditions of a Filter.
type Operator string

const (
	And Operator = "$and"
	Or  Operator = "$or"
	Nor Operator = "$nor"
)

// Filter is one group of predicate conditions combined under a logical
// operator. Conditions are passed through to the pipeline verbatim.
type Filter struct {
	Conditions []bson.M
	Operator   Operator
}

// Stage returns the $match stage for this group. The second return value is
// false when the group has no conditions and contributes no stage at all.
// A single condition is used bare; the operator only matters for two or more.
func (f Filter) Stage() (bson.D, bool) {
	switch len(f.Conditions) {
	case 0:
		return nil, false
	case 1:
		return bson.D{{Key: "$match", Value: f.Conditions[0]}}, true
	default:
		op := f.Operator
		if op == "" {
			op = And
		}
		return bson.D{{Key: "$match", Value: bson.D{{Key: string(op), Value: f.Conditions}}}}, true
	}
}
