package services

import (
	"context"
	"fmt"
	"mime/multipart"
	"strings"
	"time"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

type CloudinaryService struct {
	cld *cloudinary.Cloudinary
}

var Cloudinary *CloudinaryService

func InitializeCloudinary(cloudinaryURL string) error {
	if cloudinaryURL == "" {
		return fmt.Errorf("cloudinary URL is required")
	}

	cld, err := cloudinary.NewFromURL(cloudinaryURL)
	if err != nil {
		return fmt.Errorf("failed to initialize Cloudinary: %w", err)
	}

	Cloudinary = &CloudinaryService{cld: cld}
	return nil
}

// UploadImage uploads a product image and returns its HTTPS URL.
func (cs *CloudinaryService) UploadImage(file multipart.File, folder string) (string, error) {
	ctx := context.Background()

	useFilename := true
	uniqueFilename := true
	overwrite := false

	result, err := cs.cld.Upload.Upload(ctx, file, uploader.UploadParams{
		PublicID:       fmt.Sprintf("%s/%d", folder, time.Now().UnixNano()),
		Folder:         folder,
		UseFilename:    &useFilename,
		UniqueFilename: &uniqueFilename,
		Overwrite:      &overwrite,
		ResourceType:   "image",
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload image: %w", err)
	}

	url := result.SecureURL
	if url == "" {
		url = forceHTTPS(result.URL)
	}
	return url, nil
}

// DeleteImage removes an uploaded image by public id.
func (cs *CloudinaryService) DeleteImage(publicID string) error {
	ctx := context.Background()

	_, err := cs.cld.Upload.Destroy(ctx, uploader.DestroyParams{
		PublicID:     publicID,
		ResourceType: "image",
	})
	if err != nil {
		return fmt.Errorf("failed to delete image: %w", err)
	}
	return nil
}

// forceHTTPS ensures Cloudinary URLs use the https scheme
func forceHTTPS(in string) string {
	if in == "" {
		return in
	}
	return strings.Replace(strings.TrimSpace(in), "http://", "https://", 1)
}
