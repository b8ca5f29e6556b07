package models

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"showcase-api/apperror"
	"showcase-api/helpers"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// YTVideo is an embedded YouTube video of the storefront
type YTVideo struct {
	ID           primitive.ObjectID `json:"id" bson:"_id"`
	Title        string             `json:"title" bson:"title"`
	VideoURL     string             `json:"videoUrl" bson:"videoUrl"`
	VideoID      string             `json:"videoId" bson:"videoId"`           // derived from VideoURL
	ThumbnailURL string             `json:"thumbnailUrl" bson:"thumbnailUrl"` // derived from VideoID
	IsActive     bool               `json:"isActive" bson:"isActive"`
	Order        int                `json:"order" bson:"order"`
	CreatedTS    time.Time          `json:"createdAt" bson:"-"` // CreatedTS is read from Mongo's ObjectID
	UpdatedTS    time.Time          `json:"updatedAt" bson:"updatedAt"`
}

// VideoPatch carries the fields of a create or update request (nil = not sent)
type VideoPatch struct {
	Title    *string `json:"title"`
	VideoURL *string `json:"videoUrl"`
	IsActive *bool   `json:"isActive"`
	Order    *int    `json:"order"`
}

// youtu.be/<id>, /v/<id>, /u/x/<id>, /embed/<id>, watch?v=<id>, &v=<id>
var youTubeURL = regexp.MustCompile(`^.*(youtu.be/|v/|u/\w/|embed/|watch\?v=|&v=)([^#&?]*).*`)

// ExtractVideoID returns the 11 character id of a YouTube URL
func ExtractVideoID(url string) (string, bool) {
	match := youTubeURL.FindStringSubmatch(url)
	if match == nil || len(match[2]) != 11 {
		return "", false
	}
	return match[2], true
}

// ThumbnailURL returns the largest preview image of a video
func ThumbnailURL(videoID string) string {
	return fmt.Sprintf("https://img.youtube.com/vi/%s/maxresdefault.jpg", videoID)
}

// VideoStore persists videos
type VideoStore interface {
	// FindAll lists in display order (order asc, newest first)
	FindAll(activeOnly bool) ([]YTVideo, error)
	FindByID(id primitive.ObjectID) (*YTVideo, error)
	Insert(v *YTVideo) error
	Replace(v *YTVideo) error
	Delete(id primitive.ObjectID) error
}

// VideoCollection is the MongoDB implementation
type VideoCollection struct {
	Collection *mongo.Collection
}

// FindAll lists the videos
func (m VideoCollection) FindAll(activeOnly bool) ([]YTVideo, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel() // nach 10 Sekunden abbrechen

	filter := bson.D{}
	if activeOnly {
		filter = bson.D{{Key: "isActive", Value: true}}
	}

	sort := bson.D{
		{Key: "order", Value: 1},
		{Key: "_id", Value: -1},
	}

	cursor, err := m.Collection.Find(ctx, filter, options.Find().SetSort(sort))
	if err != nil {
		return nil, helpers.WrapError(err, helpers.FuncName())
	}

	videos := []YTVideo{}
	if err = cursor.All(ctx, &videos); err != nil {
		return nil, helpers.WrapError(err, helpers.FuncName())
	}
	return videos, nil
}

// FindByID returns a single video
func (m VideoCollection) FindByID(id primitive.ObjectID) (*YTVideo, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel() // nach 10 Sekunden abbrechen

	var v YTVideo
	err := m.Collection.FindOne(ctx, bson.M{"_id": id}).Decode(&v)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, apperror.ErrNoData
		}
		return nil, helpers.WrapError(err, helpers.FuncName())
	}
	return &v, nil
}

// Insert stores a new video
func (m VideoCollection) Insert(v *YTVideo) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel() // nach 10 Sekunden abbrechen

	if _, err := m.Collection.InsertOne(ctx, v); err != nil {
		return helpers.WrapError(err, helpers.FuncName())
	}
	return nil
}

// Replace overwrites a video
func (m VideoCollection) Replace(v *YTVideo) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel() // nach 10 Sekunden abbrechen

	res, err := m.Collection.ReplaceOne(ctx, bson.M{"_id": v.ID}, v)
	if err != nil {
		return helpers.WrapError(err, helpers.FuncName())
	}
	if res.MatchedCount == 0 {
		return apperror.ErrNoData
	}
	return nil
}

// Delete removes a video
func (m VideoCollection) Delete(id primitive.ObjectID) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel() // nach 10 Sekunden abbrechen

	res, err := m.Collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return helpers.WrapError(err, helpers.FuncName())
	}
	if res.DeletedCount == 0 {
		return apperror.ErrNoData
	}
	return nil
}

// VideoModel provides the logic of the video registry
type VideoModel struct {
	Videos VideoStore
	Now    func() time.Time
}

func (m VideoModel) now() time.Time {
	if m.Now != nil {
		return m.Now()
	}
	return time.Now()
}

// ListPublic returns the active videos
func (m VideoModel) ListPublic() ([]YTVideo, error) {
	return m.list(true)
}

// ListAdmin returns all videos
func (m VideoModel) ListAdmin() ([]YTVideo, error) {
	return m.list(false)
}

func (m VideoModel) list(activeOnly bool) ([]YTVideo, error) {
	videos, err := m.Videos.FindAll(activeOnly)
	if err != nil {
		return nil, err
	}
	for i := range videos {
		videos[i].CreatedTS = createdTS(videos[i].ID)
	}
	return videos, nil
}

// Get returns a single video (admin)
func (m VideoModel) Get(id string) (*YTVideo, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrInvalidID
	}
	v, err := m.Videos.FindByID(oid)
	if err != nil {
		return nil, err
	}
	v.CreatedTS = createdTS(v.ID)
	return v, nil
}

// Create validates the URL and stores a new video
func (m VideoModel) Create(patch VideoPatch) (*YTVideo, error) {
	v := &YTVideo{IsActive: true}

	if patch.Title == nil {
		return nil, ErrVideoTitleMissing
	}
	if patch.VideoURL == nil || strings.TrimSpace(*patch.VideoURL) == "" {
		return nil, ErrVideoURLMissing
	}

	if err := m.apply(v, patch); err != nil {
		return nil, err
	}

	v.ID = primitive.NewObjectID()
	v.UpdatedTS = m.now()

	if err := m.Videos.Insert(v); err != nil {
		return nil, err
	}
	v.CreatedTS = createdTS(v.ID)
	return v, nil
}

// Update changes the sent fields; id and thumbnail follow a changed URL
func (m VideoModel) Update(id string, patch VideoPatch) (*YTVideo, error) {
	v, err := m.Get(id)
	if err != nil {
		return nil, err
	}

	if err = m.apply(v, patch); err != nil {
		return nil, err
	}
	v.UpdatedTS = m.now()

	if err = m.Videos.Replace(v); err != nil {
		return nil, err
	}
	return v, nil
}

// Delete removes a video
func (m VideoModel) Delete(id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrInvalidID
	}
	return m.Videos.Delete(oid)
}

// apply copies the patch and validates the result (before anything is stored)
func (m VideoModel) apply(v *YTVideo, p VideoPatch) error {
	if p.Title != nil {
		v.Title = strings.TrimSpace(*p.Title)
	}
	if v.Title == "" {
		return ErrVideoTitleMissing
	}
	if utf8.RuneCountInString(v.Title) > 200 {
		return ErrVideoTitleTooLong
	}

	if p.VideoURL != nil {
		url := strings.TrimSpace(*p.VideoURL)
		if url != v.VideoURL || v.VideoID == "" {
			videoID, ok := ExtractVideoID(url)
			if !ok {
				return ErrInvalidVideoURL
			}
			v.VideoURL = url
			v.VideoID = videoID
			v.ThumbnailURL = ThumbnailURL(videoID)
		}
	}

	if p.IsActive != nil {
		v.IsActive = *p.IsActive
	}
	if p.Order != nil {
		if *p.Order < 0 {
			return ErrNegativeOrder
		}
		v.Order = *p.Order
	}
	return nil
}
