package remote

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
	smithyhttp "github.com/aws/smithy-go/transport/http"

	"github.com/accion2025/buencuidar/internal/common"
)

// partSize is the resumable-leg chunk size. 5 MiB is the S3 minimum for
// non-final parts.
const partSize = 5 * 1024 * 1024

// UploadResumable performs a multipart upload so an interrupted transfer
// only loses the in-flight part. Progress is reported after each part.
// On context cancellation or a part failure the multipart session is
// aborted server-side before returning.
func (c *Client) UploadResumable(ctx context.Context, bucket, path string, blob []byte, opts UploadOptions) error {
	if !opts.Overwrite {
		if err := c.failIfExists(ctx, bucket, path); err != nil {
			return err
		}
	}

	create, err := c.s3.CreateMultipartUpload(ctx, &s3.CreateMultipartUploadInput{
		Bucket:      aws.String(bucket),
		Key:         aws.String(path),
		ContentType: contentTypeOrDefault(opts.ContentType),
	})
	if err != nil {
		return mapStorageErr(err)
	}
	uploadID := create.UploadId

	total := int64(len(blob))
	var completed []types.CompletedPart

	for offset, partNumber := 0, int32(1); offset < len(blob); partNumber++ {
		if err := ctx.Err(); err != nil {
			c.abortMultipart(bucket, path, uploadID)
			return err
		}

		end := offset + partSize
		if end > len(blob) {
			end = len(blob)
		}

		part, err := c.s3.UploadPart(ctx, &s3.UploadPartInput{
			Bucket:     aws.String(bucket),
			Key:        aws.String(path),
			UploadId:   uploadID,
			PartNumber: aws.Int32(partNumber),
			Body:       bytes.NewReader(blob[offset:end]),
		})
		if err != nil {
			c.abortMultipart(bucket, path, uploadID)
			return mapStorageErr(err)
		}

		completed = append(completed, types.CompletedPart{
			ETag:       part.ETag,
			PartNumber: aws.Int32(partNumber),
		})

		offset = end
		if opts.Progress != nil {
			opts.Progress(int64(offset), total)
		}
	}

	_, err = c.s3.CompleteMultipartUpload(ctx, &s3.CompleteMultipartUploadInput{
		Bucket:          aws.String(bucket),
		Key:             aws.String(path),
		UploadId:        uploadID,
		MultipartUpload: &types.CompletedMultipartUpload{Parts: completed},
	})
	if err != nil {
		c.abortMultipart(bucket, path, uploadID)
		return mapStorageErr(err)
	}
	return nil
}

// UploadStandard uploads the whole blob in one PutObject call.
func (c *Client) UploadStandard(ctx context.Context, bucket, path string, blob []byte, opts UploadOptions) error {
	if !opts.Overwrite {
		if err := c.failIfExists(ctx, bucket, path); err != nil {
			return err
		}
	}

	_, err := c.s3.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(bucket),
		Key:         aws.String(path),
		Body:        bytes.NewReader(blob),
		ContentType: contentTypeOrDefault(opts.ContentType),
	})
	if err != nil {
		return mapStorageErr(err)
	}
	return nil
}

// PublicURL joins the storage endpoint, bucket and object path.
func (c *Client) PublicURL(bucket, path string) string {
	base := strings.TrimRight(c.cfg.StorageEndpoint, "/")
	return fmt.Sprintf("%s/%s/%s", base, bucket, strings.TrimLeft(path, "/"))
}

func (c *Client) failIfExists(ctx context.Context, bucket, path string) error {
	_, err := c.s3.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(path),
	})
	if err == nil {
		return fmt.Errorf("object %s already exists", path)
	}
	var nf *types.NotFound
	if errors.As(err, &nf) {
		return nil
	}
	var respErr *smithyhttp.ResponseError
	if errors.As(err, &respErr) && respErr.HTTPStatusCode() == http.StatusNotFound {
		return nil
	}
	return mapStorageErr(err)
}

// abortMultipart is a cleanup path: it runs on its own short deadline so an
// already-cancelled upload context cannot block the abort.
func (c *Client) abortMultipart(bucket, path string, uploadID *string) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, err := c.s3.AbortMultipartUpload(ctx, &s3.AbortMultipartUploadInput{
		Bucket:   aws.String(bucket),
		Key:      aws.String(path),
		UploadId: uploadID,
	})
	if err != nil {
		c.log.Warn(ctx, "aborting multipart upload failed", "path", path, "error", err)
	}
}

func contentTypeOrDefault(ct string) *string {
	if ct == "" {
		ct = "application/octet-stream"
	}
	return aws.String(ct)
}

// mapStorageErr translates storage API rejections into the project's
// sentinel errors so upper layers can classify without importing S3 types.
func mapStorageErr(err error) error {
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.ErrorCode() {
		case "AccessDenied", "Forbidden", "InvalidAccessKeyId", "SignatureDoesNotMatch":
			return fmt.Errorf("%w: %s", common.ErrPermissionDenied, apiErr.ErrorMessage())
		}
	}
	var respErr *smithyhttp.ResponseError
	if errors.As(err, &respErr) && respErr.HTTPStatusCode() == http.StatusForbidden {
		return fmt.Errorf("%w: %v", common.ErrPermissionDenied, err)
	}
	return err
}
