package usecase

import (
	"context"
	"sort"
	"strings"

	"go.mongodb.org/mongo-driver/v2/bson"

	"vidtube/domain/apperror"
	"vidtube/domain/dto"
	"vidtube/domain/model"
	"vidtube/domain/repository"
)

// memVideos is an in-memory IVideo applying the listing predicate, newest
// first ordering and paging the way the aggregation does.
type memVideos struct {
	videos map[bson.ObjectID]*model.Video
}

func newMemVideos(videos ...*model.Video) *memVideos {
	m := &memVideos{videos: map[bson.ObjectID]*model.Video{}}
	for _, v := range videos {
		m.videos[v.ID] = v
	}
	return m
}

func (m *memVideos) Create(_ context.Context, video *model.Video) error {
	if video.ID.IsZero() {
		video.ID = bson.NewObjectID()
	}
	m.videos[video.ID] = video
	return nil
}

func (m *memVideos) FindByID(_ context.Context, id bson.ObjectID) (*model.Video, error) {
	v, ok := m.videos[id]
	if !ok {
		return nil, apperror.NewNotFound("Video not found")
	}
	copied := *v
	return &copied, nil
}

func (m *memVideos) Update(ctx context.Context, id bson.ObjectID, fields map[string]interface{}) (*model.Video, error) {
	v, ok := m.videos[id]
	if !ok {
		return nil, apperror.NewNotFound("Video not found")
	}
	for key, value := range fields {
		switch key {
		case "isPublished":
			v.IsPublished = value.(bool)
		case "title":
			v.Title = value.(string)
		case "description":
			v.Description = value.(string)
		case "thumbnail":
			v.Thumbnail = value.(string)
		}
	}
	return m.FindByID(ctx, id)
}

func (m *memVideos) Delete(_ context.Context, id bson.ObjectID) error {
	delete(m.videos, id)
	return nil
}

func (m *memVideos) IncrementViews(_ context.Context, id bson.ObjectID) error {
	if v, ok := m.videos[id]; ok {
		v.Views++
	}
	return nil
}

func (m *memVideos) Detail(_ context.Context, id bson.ObjectID) (*model.VideoView, error) {
	v, ok := m.videos[id]
	if !ok {
		return nil, apperror.NewNotFound("Video not found")
	}
	view := toView(v)
	return &view, nil
}

func (m *memVideos) List(_ context.Context, filter repository.VideoFilter, q dto.ListQuery) ([]model.VideoView, int64, error) {
	var matched []*model.Video
	for _, v := range m.videos {
		if filter.PublishedOnly && !v.IsPublished {
			continue
		}
		if filter.Owner != nil && v.Owner != *filter.Owner {
			continue
		}
		if term := strings.ToLower(filter.Search); term != "" &&
			!strings.Contains(strings.ToLower(v.Title), term) &&
			!strings.Contains(strings.ToLower(v.Description), term) {
			continue
		}
		matched = append(matched, v)
	}
	sort.Slice(matched, func(i, j int) bool {
		if matched[i].CreatedAt.Equal(matched[j].CreatedAt) {
			return matched[i].ID.Hex() > matched[j].ID.Hex()
		}
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	total := int64(len(matched))
	start := q.Skip()
	if start > total {
		start = total
	}
	end := start + q.Limit
	if end > total {
		end = total
	}
	page := []model.VideoView{}
	for _, v := range matched[start:end] {
		page = append(page, toView(v))
	}
	return page, total, nil
}

func toView(v *model.Video) model.VideoView {
	return model.VideoView{
		ID:          v.ID,
		Owner:       v.Owner,
		Title:       v.Title,
		Description: v.Description,
		IsPublished: v.IsPublished,
		Views:       v.Views,
		CreatedAt:   v.CreatedAt,
	}
}
