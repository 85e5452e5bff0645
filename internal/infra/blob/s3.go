package blob

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	awsCfg "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/rehabfolio/portfolio-api/internal/config"
)

type S3Deps struct {
	Client    *s3.Client
	Presigner *s3.PresignClient
	Bucket    string
	SSE       *s3types.ServerSideEncryption
	// BaseURL is the credential-free prefix of every object URL, without a trailing slash.
	BaseURL string
	// Skew backdates the signing time of presigned URLs to tolerate client clock drift.
	Skew time.Duration
}

func NewS3(ctx context.Context, cfg *config.Config) (*S3Deps, error) {
	if cfg.S3.Bucket == "" {
		return nil, errors.New("s3 bucket is empty")
	}

	loadOpts := []func(*awsCfg.LoadOptions) error{
		awsCfg.WithRegion(cfg.S3.Region),
	}
	if cfg.S3.AccessKey != "" && cfg.S3.SecretKey != "" {
		loadOpts = append(loadOpts, awsCfg.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.S3.AccessKey, cfg.S3.SecretKey, ""),
		))
	}

	acfg, err := awsCfg.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, err
	}

	endpoint := normalizeEndpoint(cfg.S3.Endpoint)
	s3Opts := func(o *s3.Options) {
		if endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
		}
		o.UsePathStyle = cfg.S3.UsePathStyle
		// presigned PUTs from browsers cannot carry SDK-computed checksums
		o.RequestChecksumCalculation = aws.RequestChecksumCalculationWhenRequired
	}

	client := s3.NewFromConfig(acfg, s3Opts)
	presigner := s3.NewPresignClient(client)

	var sse *s3types.ServerSideEncryption
	if cfg.S3.SSE != "" {
		v := s3types.ServerSideEncryption(cfg.S3.SSE)
		sse = &v
	}

	return &S3Deps{
		Client:    client,
		Presigner: presigner,
		Bucket:    cfg.S3.Bucket,
		SSE:       sse,
		BaseURL:   baseURL(cfg.S3, endpoint),
		Skew:      time.Duration(cfg.S3.PresignSkewSec) * time.Second,
	}, nil
}

func normalizeEndpoint(ep string) string {
	ep = strings.TrimSpace(ep)
	if ep == "" {
		return ""
	}
	if !strings.HasPrefix(ep, "http://") && !strings.HasPrefix(ep, "https://") {
		ep = "https://" + ep
	}
	u, err := url.Parse(ep)
	if err != nil {
		return ""
	}
	return strings.TrimRight(u.String(), "/")
}

func baseURL(c config.S3Cfg, endpoint string) string {
	if c.PublicBaseURL != "" {
		return strings.TrimRight(c.PublicBaseURL, "/")
	}
	if endpoint != "" {
		if c.UsePathStyle {
			return endpoint + "/" + c.Bucket
		}
		if u, err := url.Parse(endpoint); err == nil {
			u.Host = c.Bucket + "." + u.Host
			return strings.TrimRight(u.String(), "/")
		}
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com", c.Bucket, c.Region)
}

// PresignPut returns a URL that allows exactly one operation: PUT of key with
// the given content type, for expire starting now.
func (s *S3Deps) PresignPut(ctx context.Context, key, contentType string, expire time.Duration) (string, error) {
	if key == "" {
		return "", errors.New("key is empty")
	}
	params := &s3.PutObjectInput{
		Bucket:      &s.Bucket,
		Key:         &key,
		ContentType: &contentType,
	}
	if s.SSE != nil {
		params.ServerSideEncryption = *s.SSE
	}
	ps, err := s.Presigner.PresignPutObject(ctx, params, func(po *s3.PresignOptions) {
		// the signature starts Skew in the past, so extend the lifetime to keep expiry at now+expire
		po.Expires = expire + s.Skew
		po.Presigner = skewedPresigner{inner: newV4Signer(), skew: s.Skew}
	})
	if err != nil {
		return "", err
	}
	return ps.URL, nil
}

// ObjectURL is the plain URL of key, with no credential attached.
func (s *S3Deps) ObjectURL(key string) string {
	return s.BaseURL + "/" + strings.TrimLeft(key, "/")
}

// KeyFromURL strips the base URL prefix from an object URL. ok is false when
// the URL does not point into this bucket.
func (s *S3Deps) KeyFromURL(raw string) (string, bool) {
	prefix := s.BaseURL + "/"
	if !strings.HasPrefix(raw, prefix) {
		return "", false
	}
	rest := strings.TrimPrefix(raw, prefix)
	if i := strings.IndexAny(rest, "?#"); i >= 0 {
		rest = rest[:i]
	}
	key, err := url.PathUnescape(rest)
	if err != nil || key == "" {
		return "", false
	}
	return key, true
}

func (s *S3Deps) DeleteObject(ctx context.Context, key string) error {
	_, err := s.Client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: &s.Bucket,
		Key:    &key,
	})
	if err != nil {
		return fmt.Errorf("delete object %s: %w", key, err)
	}
	return nil
}

func newV4Signer() *v4.Signer {
	return v4.NewSigner(func(so *v4.SignerOptions) {
		// S3 object keys are signed unescaped
		so.DisableURIPathEscaping = true
	})
}

type skewedPresigner struct {
	inner s3.HTTPPresignerV4
	skew  time.Duration
}

func (p skewedPresigner) PresignHTTP(
	ctx context.Context, credentials aws.Credentials, r *http.Request,
	payloadHash string, service string, region string, signingTime time.Time,
	optFns ...func(*v4.SignerOptions),
) (string, http.Header, error) {
	return p.inner.PresignHTTP(ctx, credentials, r, payloadHash, service, region, signingTime.Add(-p.skew), optFns...)
}
