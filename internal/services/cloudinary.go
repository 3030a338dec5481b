package services

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

// CropImageFolder is where catalog images land unless the caller picks
// another folder.
const CropImageFolder = "crops"

// ImageService uploads crop catalog images to Cloudinary and hands back
// the hosted URL stored on the crop row.
type ImageService struct {
	cld *cloudinary.Cloudinary
}

func NewImageService(cloudName, apiKey, apiSecret string) (*ImageService, error) {
	cld, err := cloudinary.NewFromParams(cloudName, apiKey, apiSecret)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Cloudinary: %w", err)
	}
	return &ImageService{cld: cld}, nil
}

// Upload sends the file to Cloudinary and returns its secure URL.
func (s *ImageService) Upload(ctx context.Context, file multipart.File, folder string) (string, error) {
	if folder == "" {
		folder = CropImageFolder
	}
	fileBytes, err := io.ReadAll(file)
	if err != nil {
		return "", fmt.Errorf("failed to read file: %w", err)
	}

	result, err := s.cld.Upload.Upload(ctx, fileBytes, uploader.UploadParams{
		Folder:       folder,
		ResourceType: "image",
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload to Cloudinary: %w", err)
	}
	return result.SecureURL, nil
}

// UploadHeader opens a multipart header and uploads its content.
func (s *ImageService) UploadHeader(ctx context.Context, fh *multipart.FileHeader, folder string) (string, error) {
	file, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()
	return s.Upload(ctx, file, folder)
}
