package storage

import (
	"context"
	"fmt"
	"mime"
	"mime/multipart"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

// R2 uploads product images to an S3-compatible bucket (Cloudflare R2). Public
// URLs are built from the bucket's public domain.
type R2 struct {
	Client       *s3.Client
	Bucket       string
	PublicDomain string
}

type R2Config struct {
	Bucket       string
	AccessKeyID  string
	SecretKey    string
	Endpoint     string
	PublicDomain string
}

func NewR2(ctx context.Context, cfg R2Config) (*R2, error) {
	if cfg.Bucket == "" || cfg.AccessKeyID == "" || cfg.SecretKey == "" || cfg.Endpoint == "" {
		return nil, fmt.Errorf("missing R2 env vars (R2_BUCKET, R2_ACCESS_KEY_ID, R2_SECRET_ACCESS_KEY, R2_ENDPOINT)")
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretKey, ""),
		),
		awsconfig.WithRegion("auto"),
	)
	if err != nil {
		return nil, fmt.Errorf("r2 config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(cfg.Endpoint)
		o.UsePathStyle = true // required for R2
	})

	return &R2{
		Client:       client,
		Bucket:       cfg.Bucket,
		PublicDomain: strings.TrimRight(cfg.PublicDomain, "/"),
	}, nil
}

func (r *R2) Save(ctx context.Context, file *multipart.FileHeader) (string, error) {
	extension, err := validateImage(file)
	if err != nil {
		return "", err
	}

	objectName := fmt.Sprintf("products/%d-%s%s", time.Now().UTC().Unix(), uuid.New().String(), extension)

	ct := file.Header.Get("Content-Type")
	if ct == "" {
		ct = mime.TypeByExtension(extension)
	}
	if ct == "" {
		ct = "application/octet-stream"
	}

	f, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("open file: %w", err)
	}
	defer f.Close()

	_, err = r.Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(r.Bucket),
		Key:         aws.String(objectName),
		Body:        f,
		ContentType: aws.String(ct),
	})
	if err != nil {
		return "", fmt.Errorf("upload %s: %w", file.Filename, err)
	}

	return r.publicURL(objectName), nil
}

func (r *R2) Delete(ctx context.Context, publicPath string) error {
	objectName, err := r.objectName(publicPath)
	if err != nil {
		return err
	}

	_, err = r.Client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(r.Bucket),
		Key:    aws.String(objectName),
	})
	if err != nil {
		return fmt.Errorf("delete %s: %w", objectName, err)
	}
	return nil
}

func (r *R2) publicURL(objectName string) string {
	return fmt.Sprintf("%s/%s/%s", r.PublicDomain, r.Bucket, objectName)
}

// objectName parses either a custom-domain URL or an r2.dev style URL back
// into the bucket key.
func (r *R2) objectName(raw string) (string, error) {
	if r.PublicDomain != "" && strings.HasPrefix(raw, r.PublicDomain+"/"+r.Bucket+"/") {
		return strings.TrimPrefix(raw, r.PublicDomain+"/"+r.Bucket+"/"), nil
	}

	for _, prefix := range []string{"https://", "http://"} {
		if strings.HasPrefix(raw, prefix) {
			withoutScheme := strings.TrimPrefix(raw, prefix)
			slash := strings.Index(withoutScheme, "/")
			if slash == -1 {
				return "", fmt.Errorf("no object path in url")
			}
			return withoutScheme[slash+1:], nil
		}
	}

	return "", fmt.Errorf("not a recognised R2 public url")
}
