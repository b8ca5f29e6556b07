package controllers

import (
	"net/http"

	"showcase-api/environment"
	"showcase-api/models"

	"github.com/gin-gonic/gin"
)

// ListVideos returns the active videos
func ListVideos(c *gin.Context) {
	videos, err := environment.Env.VideoModel.ListPublic()
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, VideoList{Success: true, Count: len(videos), Videos: videos})
}

// ListAdminVideos returns all videos
func ListAdminVideos(c *gin.Context) {
	videos, err := environment.Env.VideoModel.ListAdmin()
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, VideoList{Success: true, Count: len(videos), Videos: videos})
}

// GetVideo returns a single video (active or not)
func GetVideo(c *gin.Context) {
	video, err := environment.Env.VideoModel.Get(c.Param("id"))
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, VideoItem{Success: true, Video: video})
}

// CreateVideo registers a YouTube video
func CreateVideo(c *gin.Context) {
	var patch models.VideoPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		abortInvalidJSON(c, err)
		return
	}

	video, err := environment.Env.VideoModel.Create(patch)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, VideoItem{Success: true, Message: "Video created successfully", Video: video})
}

// UpdateVideo changes the fields present in the body
func UpdateVideo(c *gin.Context) {
	var patch models.VideoPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		abortInvalidJSON(c, err)
		return
	}

	video, err := environment.Env.VideoModel.Update(c.Param("id"), patch)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, VideoItem{Success: true, Message: "Video updated successfully", Video: video})
}

// DeleteVideo removes a video
func DeleteVideo(c *gin.Context) {
	if err := environment.Env.VideoModel.Delete(c.Param("id")); err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, Message{Success: true, Message: "Video deleted successfully"})
}
