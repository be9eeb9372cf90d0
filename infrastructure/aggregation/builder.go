package aggregation

import (
	"regexp"
	"strings"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
)

// CountField is the field a Count stage writes its result to.
const CountField = "total"

// Builder accumulates stages in call order.
type Builder struct {
	stages []Stage
}

func New() *Builder {
	return &Builder{}
}

func (b *Builder) Add(stages ...Stage) *Builder {
	b.stages = append(b.stages, stages...)
	return b
}

func (b *Builder) Match(filter bson.D) *Builder {
	return b.Add(Match{Filter: filter})
}

func (b *Builder) Lookup(from, localField, foreignField, as string, pipeline ...Stage) *Builder {
	return b.Add(Lookup{From: from, LocalField: localField, ForeignField: foreignField, As: as, Pipeline: pipeline})
}

// JoinOne attaches a single related document under as, keeping only the
// projected fields. A missing related document leaves as absent.
func (b *Builder) JoinOne(from, localField, foreignField, as string, project bson.D) *Builder {
	var inner []Stage
	if len(project) > 0 {
		inner = append(inner, Project{Fields: project})
	}
	return b.Lookup(from, localField, foreignField, as, inner...).Add(First{Field: as})
}

// CountJoined stores under into the number of documents in from whose
// foreignField equals localField.
func (b *Builder) CountJoined(from, localField, foreignField, into string) *Builder {
	tmp := "_" + into
	return b.
		Lookup(from, localField, foreignField, tmp, Project{Fields: bson.D{{Key: "_id", Value: 1}}}).
		Add(Size{Field: tmp, Into: into})
}

func (b *Builder) Unwind(path string, preserveEmpty bool) *Builder {
	return b.Add(Unwind{Path: path, PreserveEmpty: preserveEmpty})
}

func (b *Builder) ReplaceRoot(field string) *Builder {
	return b.Add(ReplaceRoot{Field: field})
}

// Count appends a $count stage emitting {total: n}.
func (b *Builder) Count() *Builder {
	return b.Add(Count{Field: CountField})
}

// Clone returns an independent builder with the same stages, so a shared
// prefix can feed both a page query and its count query.
func (b *Builder) Clone() *Builder {
	return &Builder{stages: b.Stages()}
}

func (b *Builder) AddFields(fields bson.D) *Builder {
	return b.Add(AddFields{Fields: fields})
}

func (b *Builder) Project(fields bson.D) *Builder {
	return b.Add(Project{Fields: fields})
}

func (b *Builder) Sort(spec SortSpec) *Builder {
	return b.Add(Sort{Spec: spec})
}

// Paginate skips (page-1)*limit documents and keeps limit.
func (b *Builder) Paginate(page, limit int64) *Builder {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 1
	}
	return b.Add(Skip{N: (page - 1) * limit}, Limit{N: limit})
}

func (b *Builder) Group(id interface{}, fields bson.D) *Builder {
	return b.Add(Group{ID: id, Fields: fields})
}

func (b *Builder) Stages() []Stage {
	return append([]Stage(nil), b.stages...)
}

func (b *Builder) Pipeline() mongo.Pipeline {
	p := make(mongo.Pipeline, 0, len(b.stages))
	for _, st := range b.stages {
		p = append(p, st.Render())
	}
	return p
}

// Filter builds a match predicate from optional clauses. Clauses are ANDed.
type Filter struct {
	d bson.D
}

func NewFilter() *Filter {
	return &Filter{d: bson.D{}}
}

func (f *Filter) Eq(field string, value interface{}) *Filter {
	f.d = append(f.d, bson.E{Key: field, Value: value})
	return f
}

// Owner matches field against id only when id is set.
func (f *Filter) Owner(field string, id *bson.ObjectID) *Filter {
	if id == nil || id.IsZero() {
		return f
	}
	return f.Eq(field, *id)
}

// Search matches term as a case-insensitive literal substring of any of
// fields. A blank term adds nothing.
func (f *Filter) Search(term string, fields ...string) *Filter {
	term = strings.TrimSpace(term)
	if term == "" || len(fields) == 0 {
		return f
	}
	pattern := bson.Regex{Pattern: regexp.QuoteMeta(term), Options: "i"}
	or := make(bson.A, 0, len(fields))
	for _, field := range fields {
		or = append(or, bson.D{{Key: field, Value: pattern}})
	}
	f.d = append(f.d, bson.E{Key: "$or", Value: or})
	return f
}

func (f *Filter) D() bson.D {
	return f.d
}
