package handler

import (
	"mime/multipart"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/mineral-licensing-api/internal/auth"
	"github.com/noah-isme/mineral-licensing-api/internal/middleware"
	"github.com/noah-isme/mineral-licensing-api/internal/service"
)

func identityFromContext(c *gin.Context) *auth.AuthContext {
	identity, ok := middleware.Identity(c)
	if !ok {
		return nil
	}
	return identity
}

// openUpload opens a multipart file. The caller closes the returned file.
func openUpload(header *multipart.FileHeader) (service.Upload, multipart.File, error) {
	src, err := header.Open()
	if err != nil {
		return service.Upload{}, nil, err
	}
	return service.Upload{
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Size:        header.Size,
		Content:     src,
	}, src, nil
}

func firstValue(values map[string][]string, key string) (string, bool) {
	list, ok := values[key]
	if !ok || len(list) == 0 {
		return "", false
	}
	return list[0], true
}
