package services

import (
	"fmt"
	"time"

	"bazar/internal/apperr"
	"bazar/internal/images"
)

// ImageHost is the upload side of the image host client.
type ImageHost interface {
	Upload(filename string, data []byte) (string, error)
}

type UploadService struct {
	Host ImageHost
}

func NewUploadService(host ImageHost) *UploadService { return &UploadService{Host: host} }

// UploadImage shrinks a picture to the host's size target and uploads it,
// returning the public URL.
func (s *UploadService) UploadImage(data []byte) (string, error) {
	small, err := images.Shrink(data)
	if err != nil {
		return "", apperr.Wrap(apperr.Validation, "upload.image", "not a valid image", err)
	}
	name := fmt.Sprintf("image_%d.jpg", time.Now().UnixMilli())
	url, err := s.Host.Upload(name, small)
	if err != nil {
		return "", apperr.Wrap(apperr.Remote, "upload.image", "image upload failed", err)
	}
	return url, nil
}

// UploadAll uploads pictures sequentially; the first failure aborts and is
// returned, with no partial-result reporting.
func (s *UploadService) UploadAll(pictures [][]byte) ([]string, error) {
	urls := make([]string, 0, len(pictures))
	for _, data := range pictures {
		url, err := s.UploadImage(data)
		if err != nil {
			return nil, err
		}
		urls = append(urls, url)
	}
	return urls, nil
}
