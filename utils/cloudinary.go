package utils

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"time"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

var CloudinaryClient *cloudinary.Cloudinary

func InitCloudinary() error {
	cloudinaryURL := os.Getenv("CLOUDINARY_URL")
	if cloudinaryURL == "" {
		return fmt.Errorf("CLOUDINARY_URL not set in environment")
	}

	var err error
	CloudinaryClient, err = cloudinary.NewFromURL(cloudinaryURL)
	if err != nil {
		return fmt.Errorf("failed to initialize Cloudinary: %v", err)
	}

	return nil
}

// UploadReportImage stores one evidence photo and returns its secure
// URL and public id.
func UploadReportImage(imageData []byte, userID string) (string, string, error) {
	if CloudinaryClient == nil {
		return "", "", fmt.Errorf("cloudinary not initialized")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	publicID := fmt.Sprintf("report_%s_%d", userID, time.Now().UnixNano())
	overwrite := false

	uploadResult, err := CloudinaryClient.Upload.Upload(ctx, bytes.NewReader(imageData), uploader.UploadParams{
		Folder:         "safestay/report-images",
		PublicID:       publicID,
		ResourceType:   "image",
		Overwrite:      &overwrite,
		Transformation: "c_limit,h_1080,w_1440,q_auto",
	})
	if err != nil {
		return "", "", fmt.Errorf("cloudinary upload failed: %v", err)
	}

	return uploadResult.SecureURL, uploadResult.PublicID, nil
}

// DeleteReportImage destroys an uploaded evidence photo by public id.
func DeleteReportImage(publicID string) error {
	if CloudinaryClient == nil {
		return fmt.Errorf("cloudinary not initialized")
	}
	if publicID == "" {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	_, err := CloudinaryClient.Upload.Destroy(ctx, uploader.DestroyParams{
		PublicID:     publicID,
		ResourceType: "image",
	})
	if err != nil {
		return fmt.Errorf("failed to delete image from cloudinary: %v", err)
	}

	return nil
}
