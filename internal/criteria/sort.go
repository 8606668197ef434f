package criteria

import "go.mongodb.org/mongo-driver/v2/bson"

// Direction is a sort direction in MongoDB's numeric form.
type Direction int

const (
	Asc  Direction = 1
	Desc Direction = -1
)

// Sort orders results by a single field.
type Sort struct {
	Field     string
	Direction Direction
}

// Stage returns the $sort pipeline stage for this ordering.
func (s Sort) Stage() bson.D {
	return bson.D{{Key: "$sort", Value: bson.D{{Key: s.Field, Value: int(s.Direction)}}}}
}
