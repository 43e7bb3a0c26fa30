package controllers

import (
	"fmt"
	"log"
	"net/http"
	"os"
	"path/filepath"

	"github.com/gin-gonic/gin"

	"github.com/lonestar/statuary-server/utils"
)

// POST /api/files/:dir/upload
func UploadFile(v *utils.FileValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		dir := c.Param("dir")
		destDir, err := utils.UploadPath(dir)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		fileHeader, err := c.FormFile("file")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "No file uploaded"})
			return
		}

		if _, err := v.ValidateFile(fileHeader); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		fileName := utils.SafeFileName(fileHeader.Filename)
		dst := filepath.Join(destDir, fileName)
		if err := c.SaveUploadedFile(fileHeader, dst); err != nil {
			log.Println("save upload:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "File save failed"})
			return
		}

		// Verify the file actually landed before reporting success.
		info, err := os.Stat(dst)
		if err != nil {
			log.Println("upload verification:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "File save failed"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"message": "File uploaded successfully",
			"fileUrl": fmt.Sprintf("/uploads/%s/%s", dir, fileName),
			"details": gin.H{
				"path": dst,
				"size": info.Size(),
			},
		})
	}
}

// GET /api/files/:dir
func ListFiles() gin.HandlerFunc {
	return func(c *gin.Context) {
		dir := c.Param("dir")
		destDir, err := utils.UploadPath(dir)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		entries, err := os.ReadDir(destDir)
		if err != nil {
			log.Println("list files:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list files"})
			return
		}

		files := make([]gin.H, 0, len(entries))
		for _, entry := range entries {
			if entry.IsDir() {
				continue
			}
			files = append(files, gin.H{
				"name": entry.Name(),
				"url":  fmt.Sprintf("/uploads/%s/%s", dir, entry.Name()),
			})
		}

		c.JSON(http.StatusOK, gin.H{"files": files})
	}
}
