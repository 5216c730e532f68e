// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package storage holds processed avatars in S3-compatible object
// storage. It wraps the AWS SDK v2 with path-style addressing so it
// works against MinIO and Hetzner as well as AWS.
package storage

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/google/uuid"

	"linkhub/internal/imaging"
)

// Client wraps an S3 client for avatar storage in a single public bucket.
type Client struct {
	s3        *s3.Client
	bucket    string
	endpoint  string
	publicURL string // optional CDN/direct URL in front of the bucket
}

// New creates the storage client. Returns (nil, nil) when endpoint or
// credentials are missing so the app can run without avatar uploads.
func New(endpoint, region, accessKey, secretKey, bucket, publicURL string) (*Client, error) {
	if endpoint == "" || accessKey == "" || secretKey == "" {
		return nil, nil
	}

	endpoint = strings.TrimRight(endpoint, "/")

	s3Client := s3.New(s3.Options{
		Region:       region,
		BaseEndpoint: aws.String(endpoint),
		Credentials:  credentials.NewStaticCredentialsProvider(accessKey, secretKey, ""),
		UsePathStyle: true,
	})

	return &Client{
		s3:        s3Client,
		bucket:    bucket,
		endpoint:  endpoint,
		publicURL: strings.TrimRight(publicURL, "/"),
	}, nil
}

// UploadAvatar stores a processed avatar under a fresh random key and
// returns its public URL. Old avatars are left for DeleteAvatar so a
// cached page never references a missing object.
func (c *Client) UploadAvatar(ctx context.Context, profileID string, avatar *imaging.Avatar) (string, error) {
	key := fmt.Sprintf("avatars/%s/%s.jpg", profileID, uuid.NewString())

	_, err := c.s3.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(c.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(avatar.Data),
		ContentLength: aws.Int64(int64(len(avatar.Data))),
		ContentType:   aws.String(avatar.ContentType),
		ACL:           s3types.ObjectCannedACLPublicRead,
	})
	if err != nil {
		return "", fmt.Errorf("s3 upload %s: %w", key, err)
	}
	return c.fileURL(key), nil
}

// DeleteAvatar removes a previously uploaded avatar given its public
// URL. URLs that don't belong to this bucket are ignored.
func (c *Client) DeleteAvatar(ctx context.Context, rawURL string) error {
	key, ok := c.extractKey(rawURL)
	if !ok {
		return nil
	}
	_, err := c.s3.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(c.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("s3 delete %s: %w", key, err)
	}
	return nil
}

func (c *Client) fileURL(key string) string {
	if c.publicURL != "" {
		return c.publicURL + "/" + key
	}
	return c.endpoint + "/" + c.bucket + "/" + key
}

// extractKey maps a public file URL back to its object key.
func (c *Client) extractKey(rawURL string) (string, bool) {
	if c.publicURL != "" {
		if prefix := c.publicURL + "/"; strings.HasPrefix(rawURL, prefix) {
			return rawURL[len(prefix):], true
		}
	}
	if prefix := c.endpoint + "/" + c.bucket + "/"; strings.HasPrefix(rawURL, prefix) {
		return rawURL[len(prefix):], true
	}
	return "", false
}
