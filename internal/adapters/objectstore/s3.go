// Package objectstore is the S3-compatible object-store adapter: presigned
// URL minting and multipart orchestration. Grounded on
// jrepp-hermes/pkg/workspace/adapters/s3/adapter.go's client construction
// (custom endpoint, path-style addressing, static credentials) generalized
// from Hermes' document-revision storage to this service's object/location
// model.
package objectstore

import (
	"context"
	"fmt"
	"time"

	"github.com/scidatahub/vault/common/mlog"
	"github.com/scidatahub/vault/internal/domain/objectgroup"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/pkg/errors"
)

// presignTTL is the fixed 1-hour lifetime spec.md §4.2 requires for every
// presigned URL.
const presignTTL = 1 * time.Hour

// Config describes how to reach the S3-compatible backend.
type Config struct {
	Endpoint        string
	Region          string
	Bucket          string
	AccessKeyID     string
	SecretAccessKey string
	PathStyle       bool
}

// Adapter is the object-store adapter. It does not retry; any backend
// error is mapped to internal by its callers.
type Adapter struct {
	client  *s3.Client
	presign *s3.PresignClient
	bucket  string
	logger  mlog.Logger
}

// NewAdapter constructs an Adapter against cfg.
func NewAdapter(ctx context.Context, cfg Config, logger mlog.Logger) (*Adapter, error) {
	if cfg.Bucket == "" {
		return nil, errors.New("object store bucket must be configured")
	}

	awsCfg, err := createAWSConfig(ctx, cfg)
	if err != nil {
		return nil, errors.Wrap(err, "failed to build aws config")
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}

		o.UsePathStyle = cfg.PathStyle
	})

	return &Adapter{
		client:  client,
		presign: s3.NewPresignClient(client),
		bucket:  cfg.Bucket,
		logger:  logger,
	}, nil
}

func createAWSConfig(ctx context.Context, cfg Config) (aws.Config, error) {
	region := cfg.Region
	if region == "" {
		region = "us-east-1"
	}

	return awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AccessKeyID, cfg.SecretAccessKey, "",
		)),
	)
}

// MakeLocation builds the key convention of spec.md §4.2:
// {project_id}/{dataset_id}/{object_id}/{filename}.
func (a *Adapter) MakeLocation(projectID, datasetID, objectID, filename string) objectgroup.Location {
	key := fmt.Sprintf("%s/%s/%s/%s", projectID, datasetID, objectID, filename)

	return objectgroup.Location{
		Bucket: a.bucket,
		Key:    key,
	}
}

// PresignGet issues a 1-hour presigned GET URL for loc.
func (a *Adapter) PresignGet(ctx context.Context, loc objectgroup.Location) (string, error) {
	req, err := a.presign.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(loc.Bucket),
		Key:    aws.String(loc.Key),
	}, s3.WithPresignExpires(presignTTL))
	if err != nil {
		return "", errors.Wrap(err, "failed to presign get")
	}

	return req.URL, nil
}

// PresignPut issues a 1-hour presigned PUT URL for loc.
func (a *Adapter) PresignPut(ctx context.Context, loc objectgroup.Location) (string, error) {
	req, err := a.presign.PresignPutObject(ctx, &s3.PutObjectInput{
		Bucket: aws.String(loc.Bucket),
		Key:    aws.String(loc.Key),
	}, s3.WithPresignExpires(presignTTL))
	if err != nil {
		return "", errors.Wrap(err, "failed to presign put")
	}

	return req.URL, nil
}

// MultipartInit calls the backend CreateMultipartUpload and returns the
// assigned upload id.
func (a *Adapter) MultipartInit(ctx context.Context, loc objectgroup.Location) (string, error) {
	out, err := a.client.CreateMultipartUpload(ctx, &s3.CreateMultipartUploadInput{
		Bucket: aws.String(loc.Bucket),
		Key:    aws.String(loc.Key),
	})
	if err != nil {
		return "", errors.Wrap(err, "failed to initiate multipart upload")
	}

	return aws.ToString(out.UploadId), nil
}

// MultipartPresignPart issues a presigned PUT URL for a single part of an
// in-flight multipart upload.
func (a *Adapter) MultipartPresignPart(ctx context.Context, loc objectgroup.Location, uploadID string, partNo int32) (string, error) {
	req, err := a.presign.PresignUploadPart(ctx, &s3.UploadPartInput{
		Bucket:     aws.String(loc.Bucket),
		Key:        aws.String(loc.Key),
		UploadId:   aws.String(uploadID),
		PartNumber: aws.Int32(partNo),
	}, s3.WithPresignExpires(presignTTL))
	if err != nil {
		return "", errors.Wrap(err, "failed to presign upload part")
	}

	return req.URL, nil
}

// UploadPart describes one completed part of a multipart upload, in the
// caller's chosen order.
type UploadPart struct {
	ETag   string
	PartNo int32
}

// MultipartComplete finalizes a multipart upload with parts in caller order.
func (a *Adapter) MultipartComplete(ctx context.Context, loc objectgroup.Location, uploadID string, parts []UploadPart) error {
	completed := make([]types.CompletedPart, 0, len(parts))
	for _, p := range parts {
		completed = append(completed, types.CompletedPart{
			ETag:       aws.String(p.ETag),
			PartNumber: aws.Int32(p.PartNo),
		})
	}

	_, err := a.client.CompleteMultipartUpload(ctx, &s3.CompleteMultipartUploadInput{
		Bucket:   aws.String(loc.Bucket),
		Key:      aws.String(loc.Key),
		UploadId: aws.String(uploadID),
		MultipartUpload: &types.CompletedMultipartUpload{
			Parts: completed,
		},
	})
	if err != nil {
		return errors.Wrap(err, "failed to complete multipart upload")
	}

	return nil
}

// Delete removes the object at loc.
func (a *Adapter) Delete(ctx context.Context, loc objectgroup.Location) error {
	_, err := a.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(loc.Bucket),
		Key:    aws.String(loc.Key),
	})
	if err != nil {
		return errors.Wrap(err, "failed to delete object")
	}

	return nil
}
