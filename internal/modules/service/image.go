package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rehabfolio/portfolio-api/internal/pkg/utils"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// ObjectStore is the part of the blob store the image flow needs.
type ObjectStore interface {
	PresignPut(ctx context.Context, key, contentType string, expire time.Duration) (string, error)
	ObjectURL(key string) string
	KeyFromURL(raw string) (string, bool)
	DeleteObject(ctx context.Context, key string) error
}

const deleteConcurrency = 8

// uploadRequest requires a subtype after "image/".
type uploadRequest struct {
	FileName    string `validate:"required"`
	ContentType string `validate:"required,startswith=image/,gt=6"`
}

type UploadToken struct {
	SasURL    string    `json:"sasUrl"`
	BlobURL   string    `json:"blobUrl"`
	BlobName  string    `json:"blobName"`
	ExpiresOn time.Time `json:"expiresOn"`
}

type DeleteResult struct {
	URL     string `json:"url"`
	Deleted bool   `json:"deleted"`
	Error   string `json:"error,omitempty"`
}

type ImageService interface {
	IssueUploadToken(ctx context.Context, fileName, contentType string) (*UploadToken, error)
	DeleteImages(ctx context.Context, urls []string) []DeleteResult
	OwnsURL(raw string) bool
}

type imageService struct {
	store  ObjectStore
	expire time.Duration
	log    *zap.Logger
	now    func() time.Time
}

func NewImageService(store ObjectStore, expire time.Duration, log *zap.Logger) ImageService {
	return &imageService{
		store:  store,
		expire: expire,
		log:    log,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// IssueUploadToken grants a single PUT of a freshly named object. The
// returned blob URL carries no credential.
func (s *imageService) IssueUploadToken(ctx context.Context, fileName, contentType string) (*UploadToken, error) {
	req := uploadRequest{
		FileName:    strings.TrimSpace(fileName),
		ContentType: strings.ToLower(strings.TrimSpace(contentType)),
	}
	if errs := validationDetails(validate.Struct(req)); len(errs) > 0 {
		return nil, newValidationError(errs...)
	}
	contentType = req.ContentType

	suffix, err := utils.RandomString(6)
	if err != nil {
		return nil, fmt.Errorf("generate blob name: %w", err)
	}
	now := s.now()
	name := fmt.Sprintf("%d-%s-%s", now.UnixMilli(), suffix, utils.SanitizeUploadName(fileName))

	sasURL, err := s.store.PresignPut(ctx, name, contentType, s.expire)
	if err != nil {
		return nil, fmt.Errorf("presign upload %s: %w", name, err)
	}

	return &UploadToken{
		SasURL:    sasURL,
		BlobURL:   s.store.ObjectURL(name),
		BlobName:  name,
		ExpiresOn: now.Add(s.expire),
	}, nil
}

// DeleteImages removes every object concurrently and waits for all of them.
// Failures are logged and reported per URL, never returned as an error.
func (s *imageService) DeleteImages(ctx context.Context, urls []string) []DeleteResult {
	results := make([]DeleteResult, len(urls))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(deleteConcurrency)
	for i, u := range urls {
		results[i].URL = u
		g.Go(func() error {
			key, ok := s.store.KeyFromURL(u)
			if !ok {
				results[i].Error = "url is outside the image container"
				s.log.Sugar().Warnw("skip image delete", "url", u, "reason", results[i].Error)
				return nil
			}
			if err := s.store.DeleteObject(gctx, key); err != nil {
				results[i].Error = err.Error()
				s.log.Sugar().Warnw("image delete failed", "url", u, "err", err)
				return nil
			}
			results[i].Deleted = true
			return nil
		})
	}
	_ = g.Wait()

	return results
}

func (s *imageService) OwnsURL(raw string) bool {
	_, ok := s.store.KeyFromURL(raw)
	return ok
}
