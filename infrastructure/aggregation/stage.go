// Package aggregation composes MongoDB aggregation pipelines from typed stage
// descriptors instead of hand-spliced documents.
package aggregation

import "go.mongodb.org/mongo-driver/v2/bson"

// Stage renders itself as a single pipeline stage document.
type Stage interface {
	Render() bson.D
}

// Match filters documents. An empty filter matches everything.
type Match struct {
	Filter bson.D
}

func (s Match) Render() bson.D {
	filter := s.Filter
	if filter == nil {
		filter = bson.D{}
	}
	return bson.D{{Key: "$match", Value: filter}}
}

// Lookup is a left outer join. As always holds an array, possibly empty.
// When Pipeline is set it runs against the joined documents after the
// equality match.
type Lookup struct {
	From         string
	LocalField   string
	ForeignField string
	As           string
	Pipeline     []Stage
}

func (s Lookup) Render() bson.D {
	spec := bson.D{
		{Key: "from", Value: s.From},
		{Key: "localField", Value: s.LocalField},
		{Key: "foreignField", Value: s.ForeignField},
	}
	if len(s.Pipeline) > 0 {
		spec = append(spec, bson.E{Key: "pipeline", Value: render(s.Pipeline)})
	}
	spec = append(spec, bson.E{Key: "as", Value: s.As})
	return bson.D{{Key: "$lookup", Value: spec}}
}

// Unwind flattens an array field. Documents whose array is empty or missing
// are dropped unless PreserveEmpty is set. IndexField, when set, receives the
// element's position in the original array.
type Unwind struct {
	Path          string
	PreserveEmpty bool
	IndexField    string
}

func (s Unwind) Render() bson.D {
	if !s.PreserveEmpty && s.IndexField == "" {
		return bson.D{{Key: "$unwind", Value: "$" + s.Path}}
	}
	spec := bson.D{{Key: "path", Value: "$" + s.Path}}
	if s.IndexField != "" {
		spec = append(spec, bson.E{Key: "includeArrayIndex", Value: s.IndexField})
	}
	if s.PreserveEmpty {
		spec = append(spec, bson.E{Key: "preserveNullAndEmptyArrays", Value: true})
	}
	return bson.D{{Key: "$unwind", Value: spec}}
}

// ReplaceRoot promotes an embedded document to the top level.
type ReplaceRoot struct {
	Field string
}

func (s ReplaceRoot) Render() bson.D {
	return bson.D{{Key: "$replaceRoot", Value: bson.D{{Key: "newRoot", Value: "$" + s.Field}}}}
}

// Count emits a single document holding the number of inputs under Field.
type Count struct {
	Field string
}

func (s Count) Render() bson.D {
	return bson.D{{Key: "$count", Value: s.Field}}
}

// First collapses a joined array to its first element. An empty array leaves
// the field absent rather than failing.
type First struct {
	Field string
}

func (s First) Render() bson.D {
	return bson.D{{Key: "$addFields", Value: bson.D{
		{Key: s.Field, Value: bson.D{{Key: "$first", Value: "$" + s.Field}}},
	}}}
}

// Size replaces an array field with its length, stored under Into.
type Size struct {
	Field string
	Into  string
}

func (s Size) Render() bson.D {
	return bson.D{{Key: "$addFields", Value: bson.D{
		{Key: s.Into, Value: bson.D{{Key: "$size", Value: bson.D{
			{Key: "$ifNull", Value: bson.A{"$" + s.Field, bson.A{}}},
		}}}},
	}}}
}

type AddFields struct {
	Fields bson.D
}

func (s AddFields) Render() bson.D {
	return bson.D{{Key: "$addFields", Value: s.Fields}}
}

// Project whitelists output fields.
type Project struct {
	Fields bson.D
}

func (s Project) Render() bson.D {
	return bson.D{{Key: "$project", Value: s.Fields}}
}

type Sort struct {
	Spec SortSpec
}

func (s Sort) Render() bson.D {
	return bson.D{{Key: "$sort", Value: s.Spec.Document()}}
}

type Skip struct {
	N int64
}

func (s Skip) Render() bson.D {
	return bson.D{{Key: "$skip", Value: s.N}}
}

type Limit struct {
	N int64
}

func (s Limit) Render() bson.D {
	return bson.D{{Key: "$limit", Value: s.N}}
}

// Group folds documents sharing ID into one, computing Fields as accumulators.
type Group struct {
	ID     interface{}
	Fields bson.D
}

func (s Group) Render() bson.D {
	spec := bson.D{{Key: "_id", Value: s.ID}}
	spec = append(spec, s.Fields...)
	return bson.D{{Key: "$group", Value: spec}}
}

func render(stages []Stage) bson.A {
	out := make(bson.A, 0, len(stages))
	for _, st := range stages {
		out = append(out, st.Render())
	}
	return out
}
