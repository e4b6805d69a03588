package services

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	appcontext "github.com/alphabatem/common/context"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	log "github.com/sirupsen/logrus"
)

// MinIOService turns stored asset references into URLs a browser can load.
// Absolute URLs pass through; relative keys are presigned against the bucket
// when MinIO is enabled, otherwise joined to PUBLIC_ASSET_BASE_URL.
type MinIOService struct {
	appcontext.DefaultService
	client     *minio.Client
	bucketName string
	endpoint   string
	accessKey  string
	secretKey  string
	useSSL     bool
	enabled    bool

	expiry        time.Duration
	publicBaseURL string
}

const MINIO_SVC = "minio_svc"

func (svc MinIOService) Id() string {
	return MINIO_SVC
}

func (svc *MinIOService) Configure(ctx *appcontext.Context) error {
	svc.enabled = os.Getenv("MINIO_ENABLED") == "true"

	svc.endpoint = envOr("MINIO_ENDPOINT", "localhost:9000")
	svc.accessKey = envOr("MINIO_ACCESS_KEY", "admin")
	svc.secretKey = envOr("MINIO_SECRET_KEY", "password123")
	svc.useSSL = os.Getenv("MINIO_USE_SSL") == "true"
	svc.bucketName = envOr("MINIO_BUCKET_NAME", "vooky-media")

	svc.expiry = time.Hour
	if v := os.Getenv("ASSET_URL_EXPIRY"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid ASSET_URL_EXPIRY: %w", err)
		}
		svc.expiry = d
	}

	svc.publicBaseURL = strings.TrimSuffix(os.Getenv("PUBLIC_ASSET_BASE_URL"), "/")

	return svc.DefaultService.Configure(ctx)
}

func (svc *MinIOService) Start() error {
	if !svc.enabled {
		log.WithField("base_url", svc.publicBaseURL).Info("MinIO disabled, serving asset paths from the public base URL")
		return nil
	}

	client, err := minio.New(svc.endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(svc.accessKey, svc.secretKey, ""),
		Secure: svc.useSSL,
	})
	if err != nil {
		return fmt.Errorf("failed to create MinIO client: %v", err)
	}
	svc.client = client

	exists, err := client.BucketExists(context.Background(), svc.bucketName)
	if err != nil {
		return fmt.Errorf("failed to check bucket existence: %v", err)
	}
	if !exists {
		log.WithField("bucket", svc.bucketName).Warn("MinIO bucket does not exist, asset URLs will not resolve")
	}

	log.WithField("endpoint", svc.endpoint).Info("MinIO service started")
	return nil
}

func (svc *MinIOService) Shutdown() {}

func (svc *MinIOService) GetFileURL(ctx context.Context, objectName string) (string, error) {
	presignedURL, err := svc.client.PresignedGetObject(ctx, svc.bucketName, objectName, svc.expiry, nil)
	if err != nil {
		return "", fmt.Errorf("failed to generate presigned URL: %v", err)
	}
	return presignedURL.String(), nil
}

// ResolveURL never fails; on presign errors it falls back to the public URL.
func (svc *MinIOService) ResolveURL(ctx context.Context, ref string) string {
	if ref == "" || strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://") {
		return ref
	}

	key := strings.TrimPrefix(ref, "/")
	if svc.enabled && svc.client != nil {
		objectName := strings.TrimPrefix(key, "storage/")
		url, err := svc.GetFileURL(ctx, objectName)
		if err == nil {
			return url
		}
		log.WithError(err).WithField("object", objectName).Warn("Falling back to public asset URL")
	}

	if svc.publicBaseURL == "" {
		return "/" + key
	}
	return svc.publicBaseURL + "/" + key
}
