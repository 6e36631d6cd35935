package layerdb

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/aws/aws-sdk-go/aws/request"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3/s3manager"
)

var ErrNoBucket = errors.New("no S3 bucket configured")

// S3Key is the object key for an exported layer.
func S3Key(id string) string {
	return "geomap/layers/" + id + ".geojson.gz"
}

// UploadS3 uploads gzipped layer bytes to bucket.
// The AWS library uses environment variables to configure itself.
func UploadS3(ctx context.Context, bucket, key string, gz []byte) error {
	if bucket == "" {
		return ErrNoBucket
	}
	sess, err := session.NewSession()
	if err != nil {
		return err
	}
	uploader := s3manager.NewUploader(sess)

	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err = uploader.UploadWithContext(ctx, &s3manager.UploadInput{
		Bucket:          aws.String(bucket),
		Key:             aws.String(key),
		Body:            bytes.NewReader(gz),
		ContentType:     aws.String("application/geo+json"),
		ContentEncoding: aws.String("gzip"),
	})
	if err != nil {
		var aerr awserr.Error
		if errors.As(err, &aerr) && aerr.Code() == request.CanceledErrorCode {
			slog.Error("AWS S3 upload canceled due to timeout", "error", err)
		} else {
			slog.Error("Failed to upload layer", "error", err)
		}
		return err
	}
	slog.Info("Uploaded layer to AWS S3", "bucket", bucket, "key", key)
	return nil
}
