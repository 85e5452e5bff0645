package service

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestImageService_IssueUploadToken(t *testing.T) {
	tests := []struct {
		name        string
		fileName    string
		contentType string
		setup       func(*MockObjectStore)
		wantDetails []string
		wantErr     bool
	}{
		{
			name:        "issues a scoped token",
			fileName:    "Kitchen Before.PNG",
			contentType: "image/png",
			setup: func(store *MockObjectStore) {
				store.On("PresignPut", mock.Anything, mock.MatchedBy(func(key string) bool {
					return regexp.MustCompile(`^\d{13}-[a-z0-9]{6}-kitchenbefore\.png$`).MatchString(key)
				}), "image/png", 15*time.Minute).Return("https://blob.example.com/c/key?X-Amz-Signature=abc", nil)
				store.On("ObjectURL", mock.Anything).Return("https://blob.example.com/c/key")
			},
		},
		{
			name:        "missing file name and non-image type",
			fileName:    " ",
			contentType: "application/pdf",
			setup:       func(*MockObjectStore) {},
			wantDetails: []string{"File name is required", "Content type must be an image type"},
		},
		{
			name:        "bare image prefix is rejected",
			fileName:    "a.png",
			contentType: "image/",
			setup:       func(*MockObjectStore) {},
			wantDetails: []string{"Content type must be an image type"},
		},
		{
			name:        "presign failure",
			fileName:    "a.png",
			contentType: "image/png",
			setup: func(store *MockObjectStore) {
				store.On("PresignPut", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return("", errors.New("no credentials"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &MockObjectStore{}
			tt.setup(store)
			svc := NewImageService(store, 15*time.Minute, zap.NewNop())

			got, err := svc.IssueUploadToken(context.Background(), tt.fileName, tt.contentType)
			switch {
			case tt.wantDetails != nil:
				var verr *ValidationError
				require.ErrorAs(t, err, &verr)
				assert.Equal(t, tt.wantDetails, verr.Details)
			case tt.wantErr:
				assert.Error(t, err)
			default:
				require.NoError(t, err)
				assert.Equal(t, "https://blob.example.com/c/key", got.BlobURL)
				assert.NotContains(t, got.BlobURL, "?")
				assert.Contains(t, got.SasURL, "X-Amz-Signature")
				assert.WithinDuration(t, time.Now().Add(15*time.Minute), got.ExpiresOn, 5*time.Second)
			}
			store.AssertExpectations(t)
		})
	}
}

func TestImageService_DeleteImages_BestEffort(t *testing.T) {
	store := &MockObjectStore{}
	store.On("KeyFromURL", "https://blob.example.com/c/a.png").Return("a.png", true)
	store.On("KeyFromURL", "https://blob.example.com/c/b.png").Return("b.png", true)
	store.On("KeyFromURL", "https://elsewhere.example.com/x.png").Return("", false)
	store.On("DeleteObject", mock.Anything, "a.png").Return(nil)
	store.On("DeleteObject", mock.Anything, "b.png").Return(errors.New("access denied"))

	svc := NewImageService(store, time.Minute, zap.NewNop())
	results := svc.DeleteImages(context.Background(), []string{
		"https://blob.example.com/c/a.png",
		"https://blob.example.com/c/b.png",
		"https://elsewhere.example.com/x.png",
	})

	require.Len(t, results, 3)
	assert.True(t, results[0].Deleted)
	assert.False(t, results[1].Deleted)
	assert.Equal(t, "access denied", results[1].Error)
	assert.False(t, results[2].Deleted)
	assert.NotEmpty(t, results[2].Error)
	store.AssertExpectations(t)
}

func TestImageService_DeleteImages_Empty(t *testing.T) {
	svc := NewImageService(&MockObjectStore{}, time.Minute, zap.NewNop())
	assert.Empty(t, svc.DeleteImages(context.Background(), nil))
}
