package service

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"github.com/runmacros/backend/config"
)

// ImageService stores recipe images in S3.
type ImageService struct {
	s3Config *config.S3Config
}

// NewImageService creates a new ImageService instance
func NewImageService(s3Config *config.S3Config) *ImageService {
	return &ImageService{s3Config: s3Config}
}

// UploadRecipeImage uploads image bytes under a fresh key and returns the
// public URL together with the object key.
func (s *ImageService) UploadRecipeImage(ctx context.Context, imageData []byte, contentType string) (string, string, error) {
	if contentType == "" {
		contentType = "image/jpeg"
	}
	key := fmt.Sprintf("recipe-images/%s", uuid.New().String())

	_, err := s.s3Config.Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.s3Config.BucketName),
		Key:         aws.String(key),
		Body:        bytes.NewReader(imageData),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", "", fmt.Errorf("failed to upload to S3: %w", err)
	}

	publicURL := fmt.Sprintf("https://%s.s3.amazonaws.com/%s", s.s3Config.BucketName, key)
	log.Printf("[ImageService] Successfully uploaded image to S3: %s", publicURL)
	return publicURL, key, nil
}

// RecipeImageURL signs a short-lived download URL for a stored image key.
func (s *ImageService) RecipeImageURL(ctx context.Context, key string) (string, error) {
	return s.s3Config.GeneratePresignedURL(ctx, key, 15*time.Minute)
}
